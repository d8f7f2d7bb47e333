package domain

import "strings"

// Roles known to the access control gate
const (
	RoleCardOwner = "CARD-OWNER" // May manage their own cash cards
	RoleNonOwner  = "NON-OWNER"  // Authenticated, but owns no cards
)

// User Model (credential store entry)
type User struct {
	ID       uint   `gorm:"primaryKey"`                             // Primary key
	Username string `gorm:"type:varchar(255);uniqueIndex;not null"` // Unique username
	Password string `gorm:"not null"`                               // Hashed password
	Roles    string `gorm:"not null;default:''"`                    // Comma separated role names
}

// RoleList splits the stored roles into a slice
func (u User) RoleList() []string {
	var roles []string
	for _, r := range strings.Split(u.Roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}

// HasRole reports whether the role list contains role
func HasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// JoinRoles is the inverse of RoleList
func JoinRoles(roles ...string) string {
	return strings.Join(roles, ",")
}
