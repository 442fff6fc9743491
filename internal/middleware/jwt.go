package middleware // middleware provides shared request processing for handlers

import (
	"context"  // context carries deadlines into the liveness lookup
	"errors"   // errors.Is distinguishes expiry from other token failures
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers

	"github.com/openjustice/crimetrack/internal/model" // model.Identity is attached to the context
)

// UserResolver looks up the live identity behind a token subject. The
// user repository implements it; tests substitute a fake so the
// middleware can be exercised without a database.
type UserResolver interface {
	ResolveIdentity(ctx context.Context, userID uint64) (model.Identity, error)
}

// JWTAuth returns an Echo middleware that validates a Bearer access token,
// confirms the token's subject still exists in the user store, and injects
// the resolved identity into the request context. Handlers read it via
// c.Get("user_id"), c.Get("role"), c.Get("email") and c.Get("full_name").
//
// The checks run strictly in order: signature and expiry first (an
// expired or malformed token is rejected before any store round-trip),
// then the liveness lookup. A token whose user row has been deleted is
// rejected exactly like a forged one; the response never reveals which
// case occurred beyond the invalid/expired distinction.
func JWTAuth(secret string, users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse with HS256 enforced; a token signed with any other
			// method is rejected regardless of its payload.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token expired"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			if !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			sub, ok := claims["sub"].(float64)
			if !ok || sub < 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			// Liveness: the subject must still exist. Tokens issued for a
			// since-deleted user die here even though the signature holds.
			ident, err := users.ResolveIdentity(c.Request().Context(), uint64(sub))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set("user_id", ident.UserID)
			c.Set("email", ident.Email)
			c.Set("role", ident.Role)
			c.Set("full_name", ident.FullName)
			return next(c)
		}
	}
}
