package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	r, gdb := setupServer(t)

	w := call(r, http.MethodGet, "/healthz", "", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w = call(r, http.MethodGet, "/healthz", "", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
