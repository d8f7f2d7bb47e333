package db

import (
	"context" // Context for DB operations
	"errors"  // Error inspection
	"fmt"     // Error wrapping

	"cashcard_system/internal/domain" // Importing domain models
	"cashcard_system/internal/utils"  // Password hashing

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// SeedUser is a plaintext identity to be stored hashed
type SeedUser struct {
	Username string
	Password string
	Roles    []string
}

// DemoUsers are the identities the demo data set ships with
var DemoUsers = []SeedUser{
	{Username: "sarah1", Password: "abc123", Roles: []string{domain.RoleCardOwner}},
	{Username: "hank-owns-no-cards", Password: "qrs456", Roles: []string{domain.RoleNonOwner}},
	{Username: "kumar2", Password: "xyz789", Roles: []string{domain.RoleCardOwner}},
}

// DemoCashCards belong to the demo identities above
var DemoCashCards = []domain.CashCard{
	{ID: 99, Amount: 123.45, Owner: "sarah1"},
	{ID: 100, Amount: 1.00, Owner: "sarah1"},
	{ID: 101, Amount: 150.00, Owner: "sarah1"},
	{ID: 102, Amount: 200.00, Owner: "kumar2"},
}

// SeedUsers stores users that are not present yet, hashing with the given bcrypt cost
func SeedUsers(ctx context.Context, gdb *gorm.DB, users []SeedUser, cost int) error {
	for _, u := range users {
		var existing domain.User
		err := gdb.WithContext(ctx).Where("username = ?", u.Username).First(&existing).Error
		if err == nil {
			continue // Already seeded
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lookup user %s: %w", u.Username, err)
		}
		hash, err := utils.HashPasswordWithCost(u.Password, cost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.Username, err)
		}
		user := domain.User{Username: u.Username, Password: hash, Roles: domain.JoinRoles(u.Roles...)}
		if err := gdb.WithContext(ctx).Create(&user).Error; err != nil {
			return fmt.Errorf("create user %s: %w", u.Username, err)
		}
		logrus.WithFields(logrus.Fields{"username": u.Username, "roles": user.Roles}).Info("Seeded user")
	}
	return nil
}

// SeedCashCards stores cards whose ids are not taken yet
func SeedCashCards(ctx context.Context, gdb *gorm.DB, cards []domain.CashCard) error {
	for _, card := range cards {
		var count int64
		if err := gdb.WithContext(ctx).Model(&domain.CashCard{}).Where("id = ?", card.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("lookup cash card %d: %w", card.ID, err)
		}
		if count > 0 {
			continue // Already seeded
		}
		c := card
		if err := gdb.WithContext(ctx).Create(&c).Error; err != nil {
			return fmt.Errorf("create cash card %d: %w", card.ID, err)
		}
	}
	// Explicit ids bypass the postgres sequence; move it past them
	if stmt := idSequenceSQL(gdb.Dialector.Name()); stmt != "" {
		if err := gdb.WithContext(ctx).Exec(stmt).Error; err != nil {
			return fmt.Errorf("advance cash card id sequence: %w", err)
		}
	}
	logrus.WithField("count", len(cards)).Info("Seeded cash cards")
	return nil
}

// idSequenceSQL is the statement that realigns the cash card id generator
// after explicit inserts, or "" when the dialect does that on its own.
func idSequenceSQL(dialect string) string {
	switch dialect {
	case "postgres":
		return "SELECT setval(pg_get_serial_sequence('cash_cards', 'id'), COALESCE(MAX(id), 1)) FROM cash_cards"
	default:
		return "" // AUTO_INCREMENT and sqlite rowids already follow MAX(id)
	}
}

// SeedDemo loads the demo identities and cards
func SeedDemo(ctx context.Context, gdb *gorm.DB) error {
	if err := SeedUsers(ctx, gdb, DemoUsers, utils.DefaultCost); err != nil {
		return err
	}
	return SeedCashCards(ctx, gdb, DemoCashCards)
}
