// Package handler defines the HTTP handlers for the API. Handlers
// bind/validate the request, call a repository, and translate the error
// taxonomy to HTTP statuses; no SQL and no driver errors at this layer.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/openjustice/crimetrack/internal/query"
)

// Role names stored in users.role and in the JWT role claim.
const (
	RoleAdmin  = "ADMIN"
	RoleStaff  = "STAFF"
	RoleViewer = "VIEWER"
)

// getUserID extracts the authenticated user id the JWT middleware
// stored in the context.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// paramID parses the :id path parameter.
func paramID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// pageLimit reads ?page and ?limit with defaults; clamping to valid
// ranges happens inside the query builder.
func pageLimit(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page == 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit == 0 {
		limit = 20
	}
	return page, limit
}

// listResponse is the uniform envelope for every list endpoint.
type listResponse struct {
	Data       any              `json:"data"`
	Pagination query.Pagination `json:"pagination"`
}

// storeError maps an error from the repository layer to an HTTP
// response with a stable machine-checkable message. Native detail never
// reaches the client; unknown errors are logged by echo and surface as
// a bare 500.
func storeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, query.ErrNoFieldsToUpdate):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no fields to update"})
	case errors.Is(err, query.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, query.ErrDuplicate):
		return c.JSON(http.StatusConflict, echo.Map{"error": "duplicate resource"})
	case errors.Is(err, query.ErrInvalidReference):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reference"})
	case errors.Is(err, query.ErrInvalidData):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid data"})
	case errors.Is(err, query.ErrStoreUnavailable):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "store unavailable"})
	default:
		c.Logger().Errorf("unhandled store error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
