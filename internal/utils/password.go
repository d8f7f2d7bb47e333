package utils

import "golang.org/x/crypto/bcrypt" // Password hashing

// DefaultCost is the bcrypt cost used for stored credentials
const DefaultCost = bcrypt.DefaultCost

// HashPassword hashes a plaintext password with DefaultCost
func HashPassword(password string) (string, error) {
	return HashPasswordWithCost(password, DefaultCost)
}

// HashPasswordWithCost hashes a plaintext password with an explicit bcrypt cost
func HashPasswordWithCost(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a stored hash with a plaintext candidate
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
