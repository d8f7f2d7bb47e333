package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnknownCashCardPath_RequiresAuthentication(t *testing.T) {
	r, _ := setupServer(t)

	for _, target := range []string{"/cashcards/99/extra", "/cashcards/99/extra/more"} {
		w := call(r, http.MethodGet, target, "", "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, target)
		assert.Equal(t, `Basic realm="cashcards"`, w.Header().Get("WWW-Authenticate"), target)
	}

	w := call(r, http.MethodGet, "/cashcards/99/extra", "sarah1", "BAD-PASSWORD", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnknownCashCardPath_RequiresCardOwner(t *testing.T) {
	r, _ := setupServer(t)

	w := call(r, http.MethodGet, "/cashcards/99/extra", "hank-owns-no-cards", "qrs456", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUnknownCashCardPath_NotFoundForOwner(t *testing.T) {
	r, _ := setupServer(t)

	w := asSarah(r, http.MethodGet, "/cashcards/99/extra", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())

	// Unrouted methods on a card path go through the same gate
	w = call(r, http.MethodPatch, "/cashcards/99", "", "", `{"amount":1}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = asSarah(r, http.MethodPatch, "/cashcards/99", `{"amount":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnknownPath_OutsideCashCards(t *testing.T) {
	r, _ := setupServer(t)

	for _, target := range []string{"/elsewhere", "/cashcardsx", "/cashcardsx/1"} {
		w := call(r, http.MethodGet, target, "", "", "")
		assert.Equal(t, http.StatusNotFound, w.Code, target)
		assert.Empty(t, w.Header().Get("WWW-Authenticate"), target)
	}
}
