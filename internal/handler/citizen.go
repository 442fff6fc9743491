package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openjustice/crimetrack/internal/model"
	"github.com/openjustice/crimetrack/internal/repository"
	"github.com/openjustice/crimetrack/internal/storage"
)

// CitizenHandler serves /v1/citizens and the nested passport routes.
type CitizenHandler struct {
	Citizens  *repository.CitizenRepo
	Passports *repository.PassportRepo
	Photos    *storage.Uploader // nil when object storage is not configured
}

func NewCitizenHandler(c *repository.CitizenRepo, p *repository.PassportRepo, up *storage.Uploader) *CitizenHandler {
	return &CitizenHandler{Citizens: c, Passports: p, Photos: up}
}

type citizenReq struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	NationalID string `json:"national_id"`
	DOB        string `json:"dob"` // YYYY-MM-DD, optional
	Gender     string `json:"gender"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Phone      string `json:"phone"`
}

func (h *CitizenHandler) Create(c echo.Context) error {
	var req citizenReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" || strings.TrimSpace(req.NationalID) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name/last_name/national_id required"})
	}
	var dob *time.Time
	if req.DOB != "" {
		d, err := time.Parse("2006-01-02", req.DOB)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "dob must be YYYY-MM-DD"})
		}
		dob = &d
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Citizens.Create(ctx, model.Citizen{
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		NationalID: strings.TrimSpace(req.NationalID),
		DOB:        dob,
		Gender:     req.Gender,
		Address:    req.Address,
		City:       req.City,
		Phone:      req.Phone,
	})
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, toCitizenView(out))
}

func (h *CitizenHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Citizens.GetByID(ctx, id)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, toCitizenView(out))
}

// Update takes an arbitrary JSON object; columns outside the citizen
// whitelist are silently dropped before the UPDATE is built.
func (h *CitizenHandler) Update(c echo.Context) error {
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

	out, err := h.Citizens.Update(ctx, id, payload)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, toCitizenView(out))
}

func (h *CitizenHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Citizens.Delete(ctx, id); err != nil {
		return storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CitizenHandler) List(c echo.Context) error {
	page, limit := pageLimit(c)
	city := strings.TrimSpace(c.QueryParam("city"))
	gender := strings.TrimSpace(c.QueryParam("gender"))
	term := strings.TrimSpace(c.QueryParam("q"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, pg, err := h.Citizens.List(ctx, city, gender, term, page, limit)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, listResponse{Data: toCitizenViews(items), Pagination: pg})
}

// UploadPhoto accepts a multipart "photo" file, stores it in the
// object store and records the resulting URL on the citizen row.
func (h *CitizenHandler) UploadPhoto(c echo.Context) error {
	if h.Photos == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "photo storage not configured"})
	}
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	fh, err := c.FormFile("photo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "photo file required"})
	}
	if fh.Size > 5<<20 {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "photo exceeds 5 MiB"})
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "photo must be image/jpeg or image/png"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	// Confirm the citizen exists before paying for the upload.
	if _, err := h.Citizens.GetByID(ctx, id); err != nil {
		return storeError(c, err)
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot read upload"})
	}
	defer src.Close()

	url, err := h.Photos.Upload(ctx, "citizens", contentType, src)
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "photo upload failed"})
	}
	out, err := h.Citizens.SetPhotoURL(ctx, id, url)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, toCitizenView(out))
}

// GetPhoto redirects to the citizen's stored photo. With a public
// bucket the row holds a directly servable URL; with a private bucket
// it holds the s3://bucket/key form, exchanged here for a short-lived
// presigned link.
func (h *CitizenHandler) GetPhoto(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Citizens.GetByID(ctx, id)
	if err != nil {
		return storeError(c, err)
	}
	if out.PhotoURL == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no photo"})
	}

	url := *out.PhotoURL
	if _, key, ok := storage.ParseObjectURL(url); ok {
		if h.Photos == nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "photo storage not configured"})
		}
		signed, err := h.Photos.PresignGet(ctx, key, 15*time.Minute)
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "photo unavailable"})
		}
		url = signed
	}
	return c.Redirect(http.StatusFound, url)
}

// ----- passports -----

type passportReq struct {
	PassportNo string `json:"passport_no"`
	Country    string `json:"country"`
	IssuedAt   string `json:"issued_at"`  // YYYY-MM-DD
	ExpiresAt  string `json:"expires_at"` // YYYY-MM-DD
}

func (h *CitizenHandler) CreatePassport(c echo.Context) error {
	citID, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req passportReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.PassportNo) == "" || strings.TrimSpace(req.Country) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "passport_no/country required"})
	}
	issued, err := time.Parse("2006-01-02", req.IssuedAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "issued_at must be YYYY-MM-DD"})
	}
	expires, err := time.Parse("2006-01-02", req.ExpiresAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "expires_at must be YYYY-MM-DD"})
	}
	if !expires.After(issued) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "expires_at must be after issued_at"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Passports.Create(ctx, model.Passport{
		CitizenID:  citID,
		PassportNo: strings.TrimSpace(req.PassportNo),
		Country:    strings.TrimSpace(req.Country),
		IssuedAt:   issued,
		ExpiresAt:  expires,
	})
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, toPassportView(out))
}

func (h *CitizenHandler) ListPassports(c echo.Context) error {
	citID, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Citizens.GetByID(ctx, citID); err != nil {
		return storeError(c, err)
	}
	items, err := h.Passports.ListByCitizen(ctx, citID)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": toPassportViews(items)})
}
