package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Logout-everywhere must resolve the caller's identity before touching
// the token store; Tokens is nil here, so reaching the store would
// panic.
func TestLogoutAllRequiresIdentity(t *testing.T) {
	h := &AuthHandler{}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/logout-all", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.LogoutAll(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
