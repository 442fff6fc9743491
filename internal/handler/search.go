package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openjustice/crimetrack/internal/model"
	"github.com/openjustice/crimetrack/internal/query"
	"github.com/openjustice/crimetrack/internal/repository"
)

// SearchHandler serves GET /v1/search, a cross-entity free-text
// search over citizens and passports. The two lookups run
// concurrently; both share the same page/limit.
type SearchHandler struct {
	Citizens  *repository.CitizenRepo
	Passports *repository.PassportRepo
}

func NewSearchHandler(c *repository.CitizenRepo, p *repository.PassportRepo) *SearchHandler {
	return &SearchHandler{Citizens: c, Passports: p}
}

type searchResp struct {
	Query     string           `json:"query"`
	Citizens  []citizenView    `json:"citizens"`
	CitizenPg query.Pagination `json:"citizen_pagination"`
	Passports []passportView   `json:"passports"`
	PassPg    query.Pagination `json:"passport_pagination"`
}

func (h *SearchHandler) Search(c echo.Context) error {
	term := strings.TrimSpace(c.QueryParam("q"))
	if term == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "q required"})
	}
	page, limit := pageLimit(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	type citizenRes struct {
		items []model.Citizen
		pg    query.Pagination
		err   error
	}
	citCh := make(chan citizenRes, 1)
	go func() {
		items, pg, err := h.Citizens.List(ctx, "", "", term, page, limit)
		citCh <- citizenRes{items, pg, err}
	}()

	passports, passPg, passErr := h.Passports.Search(ctx, term, page, limit)
	cit := <-citCh

	if cit.err != nil {
		return storeError(c, cit.err)
	}
	if passErr != nil {
		return storeError(c, passErr)
	}

	return c.JSON(http.StatusOK, searchResp{
		Query:     term,
		Citizens:  toCitizenViews(cit.items),
		CitizenPg: cit.pg,
		Passports: toPassportViews(passports),
		PassPg:    passPg,
	})
}
