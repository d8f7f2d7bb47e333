package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"cashcard_system/internal/domain"     // Importing domain models
	"cashcard_system/internal/middleware" // Principal lookup
	"cashcard_system/internal/repository" // Persistence gateway

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// CashCardRequest is the body accepted by create and update.
// Any id or owner sent by the client is ignored.
type CashCardRequest struct {
	Amount *float64 `json:"amount" binding:"required"` // New amount, zero and negatives allowed
}

var errCashCardNotFound = errors.New("cash card not found") // Missing or owned by someone else

// parseID reads the :id path parameter
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, strconv.IntSize) // Non-negative integers only
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cash card id"})
		return 0, false
	}
	return uint(id), true
}

// notFound answers 404 without telling missing and foreign cards apart
func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Cash card not found"})
}

// storeFailure logs err and answers 500
func storeFailure(c *gin.Context, msg string, fields logrus.Fields, err error) {
	fields["error"] = err.Error() // Logged only, never sent to the client
	logrus.WithFields(fields).Error(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// GetCashCardHandler returns one card of the authenticated owner.
// Cards of other owners answer 404 exactly like missing ones.
func GetCashCardHandler(repo repository.CashCardRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return // 400 already written
		}
		owner := middleware.Username(c) // Authenticated principal
		card, err := repo.FindByIDAndOwner(c.Request.Context(), id, owner)
		if err != nil {
			storeFailure(c, "Failed to fetch cash card", logrus.Fields{"owner": owner, "cash_card_id": id}, err)
			return
		}
		if card == nil {
			notFound(c) // Missing or foreign
			return
		}
		c.JSON(http.StatusOK, card) // Return the card
	}
}

// CreateCashCardHandler stores a new card owned by the caller and points Location at it
func CreateCashCardHandler(repo repository.CashCardRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CashCardRequest // Request body
		// Bind JSON body to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"}) // Malformed or no amount
			return
		}
		owner := middleware.Username(c) // New card always belongs to the caller
		saved, err := repo.Save(c.Request.Context(), domain.CashCard{Amount: *req.Amount, Owner: owner})
		if err != nil {
			storeFailure(c, "Failed to create cash card", logrus.Fields{"owner": owner, "amount": *req.Amount}, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"owner":        owner,
			"cash_card_id": saved.ID,
			"amount":       saved.Amount,
		}).Info("Cash card created")
		c.Header("Location", "/cashcards/"+strconv.FormatUint(uint64(saved.ID), 10)) // Where the new card lives
		c.Status(http.StatusCreated)                                                 // Empty body
	}
}

// ListCashCardsHandler returns one page of the caller's cards as a bare array
func ListCashCardsHandler(repo repository.CashCardRepository, maxPageSize int) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := ParsePageRequest(c, maxPageSize) // page, size and sort query parameters
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()}) // Return on invalid paging
			return
		}
		owner := middleware.Username(c) // Only the caller's cards are listed
		page, err := repo.FindByOwner(c.Request.Context(), owner, req)
		if err != nil {
			storeFailure(c, "Failed to fetch cash cards", logrus.Fields{"owner": owner, "page": req.Page, "size": req.Size}, err)
			return
		}
		content := page.Content
		if content == nil {
			content = []domain.CashCard{} // Encode an empty page as []
		}
		c.Header("X-Total-Count", strconv.FormatInt(page.Total, 10)) // Total across all pages
		c.JSON(http.StatusOK, content)                               // Bare array, no envelope
	}
}

// UpdateCashCardHandler replaces the amount of a card the caller owns
func UpdateCashCardHandler(repo repository.CashCardRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return // 400 already written
		}
		var req CashCardRequest // Request body
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"}) // Malformed or no amount
			return
		}
		owner := middleware.Username(c) // Ownership never changes on update
		ctx := c.Request.Context()      // Request scoped context
		// Find and save see the same snapshot
		err := repo.Transaction(ctx, func(tx repository.CashCardRepository) error {
			existing, err := tx.FindByIDAndOwner(ctx, id, owner)
			if err != nil {
				return err
			}
			if existing == nil {
				return errCashCardNotFound // Rolls back, nothing written
			}
			_, err = tx.Save(ctx, domain.CashCard{ID: existing.ID, Amount: *req.Amount, Owner: owner}) // Only the amount changes
			return err
		})
		if errors.Is(err, errCashCardNotFound) {
			notFound(c)
			return
		}
		if err != nil {
			storeFailure(c, "Failed to update cash card", logrus.Fields{"owner": owner, "cash_card_id": id}, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"owner":        owner,
			"cash_card_id": id,
			"amount":       *req.Amount,
		}).Info("Cash card updated")
		c.Status(http.StatusNoContent)
	}
}

// DeleteCashCardHandler removes a card the caller owns
func DeleteCashCardHandler(repo repository.CashCardRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return // 400 already written
		}
		owner := middleware.Username(c) // Authenticated principal
		ctx := c.Request.Context()      // Request scoped context
		// Ownership check and delete see the same snapshot
		err := repo.Transaction(ctx, func(tx repository.CashCardRepository) error {
			exists, err := tx.ExistsByIDAndOwner(ctx, id, owner)
			if err != nil {
				return err
			}
			if !exists {
				return errCashCardNotFound // Missing or foreign
			}
			return tx.DeleteByID(ctx, id) // Hard delete
		})
		if errors.Is(err, errCashCardNotFound) {
			notFound(c)
			return
		}
		if err != nil {
			storeFailure(c, "Failed to delete cash card", logrus.Fields{"owner": owner, "cash_card_id": id}, err)
			return
		}
		logrus.WithFields(logrus.Fields{"owner": owner, "cash_card_id": id}).Info("Cash card deleted")
		c.Status(http.StatusNoContent) // Empty body
	}
}
