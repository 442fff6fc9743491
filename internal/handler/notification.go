package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openjustice/crimetrack/internal/model"
	"github.com/openjustice/crimetrack/internal/repository"
	"github.com/openjustice/crimetrack/internal/service"
)

// NotificationHandler serves /v1/notifications. Creation records the
// client IP and, when a geolocation client is configured, tags the row
// with resolved coordinates so /nearby can query by distance.
type NotificationHandler struct {
	Notifications *repository.NotificationRepo
	Geo           *service.GeoIPClient // nil disables IP geolocation
}

func NewNotificationHandler(n *repository.NotificationRepo, geo *service.GeoIPClient) *NotificationHandler {
	return &NotificationHandler{Notifications: n, Geo: geo}
}

type notificationReq struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (h *NotificationHandler) Create(c echo.Context) error {
	var req notificationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	n := model.Notification{
		Title:     strings.TrimSpace(req.Title),
		Body:      req.Body,
		CreatedBy: &uid,
		IPAddress: c.RealIP(),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 8*time.Second)
	defer cancel()

	// Geolocation is best-effort: private addresses and provider
	// outages leave the coordinate columns NULL.
	if h.Geo != nil {
		if loc, err := h.Geo.Lookup(ctx, n.IPAddress); err != nil {
			log.Printf("notification: geoip lookup for %s failed: %v", n.IPAddress, err)
		} else if loc != nil {
			n.Latitude = &loc.Latitude
			n.Longitude = &loc.Longitude
			if loc.City != "" {
				n.City = &loc.City
			}
			if loc.Country != "" {
				n.Country = &loc.Country
			}
		}
	}

	out, err := h.Notifications.Create(ctx, n)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, toNotificationView(out))
}

func (h *NotificationHandler) Get(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Notifications.GetByID(ctx, id)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, toNotificationView(out))
}

func (h *NotificationHandler) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Notifications.Delete(ctx, id); err != nil {
		return storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *NotificationHandler) List(c echo.Context) error {
	page, limit := pageLimit(c)
	country := strings.TrimSpace(c.QueryParam("country"))
	term := strings.TrimSpace(c.QueryParam("q"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, pg, err := h.Notifications.List(ctx, country, term, page, limit)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, listResponse{Data: toNotificationViews(items), Pagination: pg})
}

// Nearby returns notifications within radius_km of (lat, lon), closest
// first. Rows without resolved coordinates are never included.
func (h *NotificationHandler) Nearby(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "lat must be within [-90, 90]"})
	}
	lon, err := strconv.ParseFloat(c.QueryParam("lon"), 64)
	if err != nil || lon < -180 || lon > 180 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "lon must be within [-180, 180]"})
	}
	radius := 50.0
	if raw := c.QueryParam("radius_km"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 || v > 20000 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "radius_km must be within (0, 20000]"})
		}
		radius = v
	}
	_, limit := pageLimit(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Notifications.Nearby(ctx, lat, lon, radius, limit)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": toNearbyViews(rows)})
}
