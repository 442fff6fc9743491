package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openjustice/crimetrack/internal/queue"
	"github.com/openjustice/crimetrack/internal/repository"
	"github.com/openjustice/crimetrack/internal/service"
)

// AdminUserHandler exposes the admin-only user management endpoints.
type AdminUserHandler struct {
	Users *repository.UserRepo
}

func NewAdminUserHandler(u *repository.UserRepo) *AdminUserHandler {
	return &AdminUserHandler{Users: u}
}

// List returns a paginated user listing with optional role, approval
// and free-text filters.
func (h *AdminUserHandler) List(c echo.Context) error {
	page, limit := pageLimit(c)
	role := strings.ToUpper(strings.TrimSpace(c.QueryParam("role")))
	term := strings.TrimSpace(c.QueryParam("q"))

	var approved *bool
	switch strings.ToLower(c.QueryParam("approved")) {
	case "true", "1":
		t := true
		approved = &t
	case "false", "0":
		f := false
		approved = &f
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, pg, err := h.Users.List(ctx, role, approved, term, page, limit)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, listResponse{Data: toUserViews(users), Pagination: pg})
}

// Get returns a single user by id.
func (h *AdminUserHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, toUserView(u))
}

// Update applies a partial update to a user record. Only whitelisted
// columns ever reach the database; anything else in the payload is
// ignored.
func (h *AdminUserHandler) Update(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var payload map[string]any
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Update(ctx, id, payload)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, toUserView(u))
}

// Approve flips is_approved and notifies the user by email. Approving
// an already-approved account is a no-op success.
func (h *AdminUserHandler) Approve(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Approve(ctx, id); err != nil {
		return storeError(c, err)
	}
	if u, err := h.Users.GetByID(ctx, id); err == nil {
		_ = service.PublishEmailEvent(ctx, queue.EmailEvent{
			Kind:     queue.EmailKindApproved,
			To:       u.Email,
			FullName: u.FullName,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "account approved"})
}

// Delete removes a user and their refresh tokens. An admin may not
// delete their own account; that check runs before anything touches the
// store.
func (h *AdminUserHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if callerID == id {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot delete own account"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		return storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
