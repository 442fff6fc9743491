package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openjustice/crimetrack/internal/query"
)

func deleteCtx(t *testing.T, callerID any, targetID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/admin/users/"+targetID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(targetID)
	if callerID != nil {
		c.Set("user_id", callerID)
	}
	return c, rec
}

// Deleting your own account must be rejected before any repository
// call; Users is nil here, so reaching the store would panic.
func TestAdminDeleteSelfGuard(t *testing.T) {
	h := NewAdminUserHandler(nil)

	c, rec := deleteCtx(t, uint64(7), "7")
	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cannot delete own account")
}

func TestAdminDeleteRequiresIdentity(t *testing.T) {
	h := NewAdminUserHandler(nil)

	c, rec := deleteCtx(t, nil, "7")
	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminDeleteBadID(t *testing.T) {
	h := NewAdminUserHandler(nil)

	c, rec := deleteCtx(t, uint64(7), "not-a-number")
	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStoreErrorMapping(t *testing.T) {
	cases := []struct {
		err      error
		status   int
		contains string
	}{
		{query.ErrNoFieldsToUpdate, http.StatusBadRequest, "no fields to update"},
		{query.ErrNotFound, http.StatusNotFound, "not found"},
		{query.ErrDuplicate, http.StatusConflict, "duplicate"},
		{query.ErrInvalidReference, http.StatusBadRequest, "invalid reference"},
		{query.ErrInvalidData, http.StatusBadRequest, "invalid data"},
		{query.ErrStoreUnavailable, http.StatusServiceUnavailable, "store unavailable"},
		{errors.New("driver exploded"), http.StatusInternalServerError, "internal error"},
	}
	for _, tc := range cases {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		require.NoError(t, storeError(c, tc.err))
		assert.Equal(t, tc.status, rec.Code, "for %v", tc.err)
		assert.Contains(t, rec.Body.String(), tc.contains)
		// Wrapped errors must map the same as bare sentinels.
		if tc.status != http.StatusInternalServerError {
			rec2 := httptest.NewRecorder()
			c2 := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec2)
			require.NoError(t, storeError(c2, wrap(tc.err)))
			assert.Equal(t, tc.status, rec2.Code)
		}
	}
}

func wrap(err error) error {
	return fmt.Errorf("outer: %w", err)
}

func TestPageLimitDefaults(t *testing.T) {
	e := echo.New()

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?page=3&limit=50", nil), httptest.NewRecorder())
	page, limit := pageLimit(c)
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, limit)

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	page, limit = pageLimit(c)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
}

func TestGetUserIDTypes(t *testing.T) {
	e := echo.New()
	for _, v := range []any{uint64(42), int64(42), float64(42), "42"} {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.Set("user_id", v)
		got, err := getUserID(c)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), got)
	}

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.Set("user_id", strings.Repeat("x", 4))
	_, err := getUserID(c)
	assert.Error(t, err)
}
