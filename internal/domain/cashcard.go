package domain

// CashCard Model
type CashCard struct {
	ID     uint    `gorm:"primaryKey" json:"id"`                          // Primary key, assigned by the store
	Amount float64 `gorm:"not null" json:"amount"`                        // Card balance
	Owner  string  `gorm:"type:varchar(255);not null;index" json:"owner"` // Username of the owning principal
}

// IsNew reports whether the card has not been persisted yet
func (c CashCard) IsNew() bool {
	return c.ID == 0
}
