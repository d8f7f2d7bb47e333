package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"cashcard_system/internal/config"
	"cashcard_system/internal/db"
	"cashcard_system/internal/domain"
	"cashcard_system/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testJWTSecret = "test-secret"

// setupServer builds the full route table over a seeded in-memory SQLite database.
func setupServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	cfg := &config.Config{
		DBDriver:   config.DriverSQLite,
		SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", url.PathEscape(t.Name())),
	}
	gdb, err := db.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, db.Migrate(gdb))

	ctx := context.Background()
	require.NoError(t, db.SeedUsers(ctx, gdb, db.DemoUsers, bcrypt.MinCost))
	require.NoError(t, db.SeedCashCards(ctx, gdb, db.DemoCashCards))

	r := gin.New()
	RegisterRoutes(r, Dependencies{
		DB:          gdb,
		CashCards:   repository.NewCashCardRepository(gdb),
		Users:       repository.NewUserRepository(gdb),
		JWTSecret:   testJWTSecret,
		JWTTTL:      time.Minute,
		MaxPageSize: 100,
	})
	return r, gdb
}

// call performs one request, authenticating with Basic credentials when user is set.
func call(r http.Handler, method, target, user, pass, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.SetBasicAuth(user, pass)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func asSarah(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	return call(r, method, target, "sarah1", "abc123", body)
}

func asKumar(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	return call(r, method, target, "kumar2", "xyz789", body)
}

func decodeCard(t *testing.T, w *httptest.ResponseRecorder) domain.CashCard {
	t.Helper()
	var card domain.CashCard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &card))
	return card
}

func decodeCards(t *testing.T, w *httptest.ResponseRecorder) []domain.CashCard {
	t.Helper()
	var cards []domain.CashCard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))
	return cards
}
