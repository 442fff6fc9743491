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

// RecordHandler serves /v1/records.
type RecordHandler struct {
	Records *repository.RecordRepo
}

func NewRecordHandler(r *repository.RecordRepo) *RecordHandler {
	return &RecordHandler{Records: r}
}

type recordReq struct {
	CitizenID     *uint64 `json:"citizen_id"`
	CrimeType     string  `json:"crime_type"`
	Description   string  `json:"description"`
	Status        string  `json:"status"`
	DateCommitted string  `json:"date_committed"` // YYYY-MM-DD, optional
}

func (h *RecordHandler) Create(c echo.Context) error {
	var req recordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.CrimeType) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "crime_type required"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status == "" {
		status = "OPEN"
	}
	var committed *time.Time
	if req.DateCommitted != "" {
		d, err := time.Parse("2006-01-02", req.DateCommitted)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date_committed must be YYYY-MM-DD"})
		}
		committed = &d
	}
	createdBy, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Records.Create(ctx, model.CriminalRecord{
		CitizenID:     req.CitizenID,
		CrimeType:     strings.TrimSpace(req.CrimeType),
		Description:   req.Description,
		Status:        status,
		DateCommitted: committed,
	}, createdBy)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, toRecordView(out))
}

// Get returns the record together with its arrests.
func (h *RecordHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.Records.GetDetail(ctx, id)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, toRecordDetailView(detail))
}

func (h *RecordHandler) Update(c echo.Context) error {
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

	out, err := h.Records.Update(ctx, id, payload)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, toRecordView(out))
}

// Delete removes the record and its arrests in one transaction.
func (h *RecordHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Records.Delete(ctx, id); err != nil {
		return storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RecordHandler) List(c echo.Context) error {
	page, limit := pageLimit(c)
	crimeType := strings.TrimSpace(c.QueryParam("crime_type"))
	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	term := strings.TrimSpace(c.QueryParam("q"))

	var citizenID uint64
	if raw := c.QueryParam("citizen_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid citizen_id"})
		}
		citizenID = v
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, pg, err := h.Records.List(ctx, crimeType, status, citizenID, term, page, limit)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, listResponse{Data: toRecordViews(items), Pagination: pg})
}
