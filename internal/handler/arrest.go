package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openjustice/crimetrack/internal/model"
	"github.com/openjustice/crimetrack/internal/repository"
)

// ArrestHandler serves /v1/arrests.
type ArrestHandler struct {
	Arrests *repository.ArrestRepo
}

func NewArrestHandler(a *repository.ArrestRepo) *ArrestHandler {
	return &ArrestHandler{Arrests: a}
}

type arrestReq struct {
	RecordID    uint64 `json:"record_id"`
	OfficerName string `json:"officer_name"`
	Location    string `json:"location"`
	ArrestedAt  string `json:"arrested_at"` // RFC 3339
	Notes       string `json:"notes"`
}

func (h *ArrestHandler) Create(c echo.Context) error {
	var req arrestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.RecordID == 0 || strings.TrimSpace(req.OfficerName) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "record_id/officer_name required"})
	}
	arrestedAt := time.Now().UTC()
	if req.ArrestedAt != "" {
		t, err := time.Parse(time.RFC3339, req.ArrestedAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "arrested_at must be RFC 3339"})
		}
		arrestedAt = t.UTC()
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Arrests.Create(ctx, model.Arrest{
		RecordID:    req.RecordID,
		OfficerName: strings.TrimSpace(req.OfficerName),
		Location:    req.Location,
		ArrestedAt:  arrestedAt,
		Notes:       req.Notes,
	})
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, toArrestView(out))
}

func (h *ArrestHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Arrests.GetByID(ctx, id)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, toArrestView(out))
}

func (h *ArrestHandler) Update(c echo.Context) error {
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

	out, err := h.Arrests.Update(ctx, id, payload)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, toArrestView(out))
}

func (h *ArrestHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Arrests.Delete(ctx, id); err != nil {
		return storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ArrestHandler) List(c echo.Context) error {
	page, limit := pageLimit(c)
	term := strings.TrimSpace(c.QueryParam("q"))

	var recordID uint64
	if raw := c.QueryParam("record_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid record_id"})
		}
		recordID = v
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, pg, err := h.Arrests.List(ctx, recordID, term, page, limit)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, listResponse{Data: toArrestViews(items), Pagination: pg})
}
