package repository

import (
	"context" // Context for DB operations
	"errors"  // Error inspection
	"fmt"     // Error wrapping
	"math"    // Offset saturation

	"cashcard_system/internal/domain" // Importing domain models

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // ORDER BY construction
)

// ErrUnsortableProperty is returned for sort properties that are not columns of CashCard
var ErrUnsortableProperty = errors.New("unsortable property")

// sortColumns maps JSON property names to columns
var sortColumns = map[string]string{
	"id":     "id",
	"amount": "amount",
	"owner":  "owner",
}

// IsSortable reports whether property can be used in a Sort
func IsSortable(property string) bool {
	_, ok := sortColumns[property]
	return ok
}

// Sort orders a page by one property
type Sort struct {
	Property   string // JSON property name, see IsSortable
	Descending bool   // Ascending unless set
}

// PageRequest selects a zero based page of a sorted result
type PageRequest struct {
	Page int    // Zero based page index
	Size int    // Maximum cards per page
	Sort []Sort // Applied in order, id breaks remaining ties
}

// Offset is the number of rows skipped before the page, saturating instead of overflowing
func (p PageRequest) Offset() int {
	if p.Size > 0 && p.Page > math.MaxInt/p.Size {
		return math.MaxInt // Past any real result set
	}
	return p.Page * p.Size
}

// Page is one slice of an owner's cards
type Page struct {
	Content []domain.CashCard // Cards on this page
	Total   int64             // Cards the owner has across all pages
}

// CashCardRepository is the persistence gateway for cash cards
type CashCardRepository interface {
	ExistsByIDAndOwner(ctx context.Context, id uint, owner string) (bool, error)
	FindByIDAndOwner(ctx context.Context, id uint, owner string) (*domain.CashCard, error)
	FindByOwner(ctx context.Context, owner string, req PageRequest) (Page, error)
	Save(ctx context.Context, card domain.CashCard) (domain.CashCard, error)
	DeleteByID(ctx context.Context, id uint) error
	// Transaction runs fn against a repository bound to one database transaction
	Transaction(ctx context.Context, fn func(repo CashCardRepository) error) error
}

// GormCashCardRepository implements CashCardRepository with GORM
type GormCashCardRepository struct {
	db *gorm.DB // Database handle, or a transaction inside Transaction
}

// NewCashCardRepository creates a GORM backed gateway
func NewCashCardRepository(db *gorm.DB) *GormCashCardRepository {
	return &GormCashCardRepository{db: db}
}

// ExistsByIDAndOwner reports whether the card with id belongs to owner
func (r *GormCashCardRepository) ExistsByIDAndOwner(ctx context.Context, id uint, owner string) (bool, error) {
	var count int64 // Matching rows, 0 or 1
	err := r.db.WithContext(ctx).Model(&domain.CashCard{}).
		Where("id = ? AND owner = ?", id, owner).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("exists cash card %d: %w", id, err)
	}
	return count > 0, nil
}

// FindByIDAndOwner returns nil when no card with id belongs to owner
func (r *GormCashCardRepository) FindByIDAndOwner(ctx context.Context, id uint, owner string) (*domain.CashCard, error) {
	var card domain.CashCard
	if err := r.db.WithContext(ctx).Where("id = ? AND owner = ?", id, owner).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Missing and foreign cards look the same
		}
		return nil, fmt.Errorf("find cash card %d: %w", id, err)
	}
	return &card, nil
}

// FindByOwner returns one sorted page of owner's cards together with their total count.
// An unknown sort property fails with ErrUnsortableProperty.
func (r *GormCashCardRepository) FindByOwner(ctx context.Context, owner string, req PageRequest) (Page, error) {
	// Fresh statement per query, gorm chains are not reusable
	owned := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&domain.CashCard{}).Where("owner = ?", owner)
	}

	var total int64 // Cards across all pages
	if err := owned().Count(&total).Error; err != nil {
		return Page{}, fmt.Errorf("count cash cards: %w", err)
	}

	ordered := owned() // Query for the page itself
	tiebreak := true   // Cleared when the caller already sorts by id
	for _, s := range req.Sort {
		column, ok := sortColumns[s.Property]
		if !ok {
			return Page{}, fmt.Errorf("%w: %q", ErrUnsortableProperty, s.Property)
		}
		if column == "id" {
			tiebreak = false // id is unique, nothing left to break
		}
		ordered = ordered.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: s.Descending})
	}
	// Equal sort keys must not shuffle between pages
	if tiebreak {
		ordered = ordered.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}

	cards := []domain.CashCard{} // Empty page encodes as []
	if err := ordered.Offset(req.Offset()).Limit(req.Size).Find(&cards).Error; err != nil {
		return Page{}, fmt.Errorf("list cash cards: %w", err)
	}
	return Page{Content: cards, Total: total}, nil
}

// Save inserts a new card (assigning its id) or overwrites the row with the same id
func (r *GormCashCardRepository) Save(ctx context.Context, card domain.CashCard) (domain.CashCard, error) {
	db := r.db.WithContext(ctx)
	var err error
	if card.IsNew() {
		err = db.Create(&card).Error // INSERT, fills card.ID
	} else {
		err = db.Save(&card).Error // UPDATE of every column
	}
	if err != nil {
		return domain.CashCard{}, fmt.Errorf("save cash card: %w", err)
	}
	return card, nil
}

// DeleteByID removes the card with id; callers check ownership first
func (r *GormCashCardRepository) DeleteByID(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&domain.CashCard{}, id).Error; err != nil {
		return fmt.Errorf("delete cash card %d: %w", id, err)
	}
	return nil
}

// Transaction commits when fn returns nil and rolls back otherwise
func (r *GormCashCardRepository) Transaction(ctx context.Context, fn func(repo CashCardRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormCashCardRepository{db: tx}) // Same gateway, bound to tx
	})
}
