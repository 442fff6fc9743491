package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openjustice/crimetrack/internal/model"
	"github.com/openjustice/crimetrack/internal/utils"
)

const testSecret = "test-secret"

// fakeResolver records lookups so tests can assert whether the store
// was consulted at all.
type fakeResolver struct {
	ident  model.Identity
	err    error
	called int
}

func (f *fakeResolver) ResolveIdentity(_ context.Context, _ uint64) (model.Identity, error) {
	f.called++
	return f.ident, f.err
}

func doRequest(t *testing.T, resolver UserResolver, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/citizens", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTAuth(testSecret, resolver)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, c
}

func TestJWTAuth_ValidTokenResolvesIdentity(t *testing.T) {
	t.Parallel()

	at, err := utils.NewAccessToken(testSecret, 7, "ADMIN", 5)
	require.NoError(t, err)
	resolver := &fakeResolver{ident: model.Identity{UserID: 7, Email: "a@b.c", Role: "ADMIN", FullName: "Ada"}}

	rec, c := doRequest(t, resolver, "Bearer "+at.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, resolver.called)
	assert.Equal(t, uint64(7), c.Get("user_id"))
	assert.Equal(t, "ADMIN", c.Get("role"))
	assert.Equal(t, "a@b.c", c.Get("email"))
	assert.Equal(t, "Ada", c.Get("full_name"))
}

func TestJWTAuth_ExpiredTokenShortCircuits(t *testing.T) {
	t.Parallel()

	at, err := utils.NewAccessToken(testSecret, 7, "ADMIN", -1)
	require.NoError(t, err)
	resolver := &fakeResolver{ident: model.Identity{UserID: 7}}

	rec, _ := doRequest(t, resolver, "Bearer "+at.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token expired")
	// Expiry is terminal before the Resolving step: the store is never hit.
	assert.Equal(t, 0, resolver.called)
}

func TestJWTAuth_DeletedUserRejected(t *testing.T) {
	t.Parallel()

	at, err := utils.NewAccessToken(testSecret, 99, "STAFF", 5)
	require.NoError(t, err)
	resolver := &fakeResolver{err: sql.ErrNoRows}

	rec, _ := doRequest(t, resolver, "Bearer "+at.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
	assert.Equal(t, 1, resolver.called)
}

func TestJWTAuth_TerminalStates(t *testing.T) {
	t.Parallel()

	wrongSecret, err := utils.NewAccessToken("other-secret", 1, "STAFF", 5)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong signature", "Bearer " + wrongSecret.Token},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resolver := &fakeResolver{ident: model.Identity{UserID: 1}}
			rec, _ := doRequest(t, resolver, tc.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, 0, resolver.called)
		})
	}
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	e := echo.New()
	h := RequireRole("ADMIN")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	run := func(role any) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/v1/admin/users/1", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}
		require.NoError(t, h(c))
		return rec
	}

	assert.Equal(t, http.StatusOK, run("ADMIN").Code)
	assert.Equal(t, http.StatusForbidden, run("STAFF").Code)
	assert.Equal(t, http.StatusForbidden, run(nil).Code)
	assert.Equal(t, http.StatusForbidden, run(42).Code)
}
