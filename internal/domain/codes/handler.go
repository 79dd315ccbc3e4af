package codes

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/medassist/medassist/internal/platform/auth"
	"github.com/medassist/medassist/pkg/fault"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/codes", auth.RequireRole("admin", "clinician", "pharmacist"))
	g.GET("/icd10/search", h.SearchICD10)
	g.GET("/icd10/:code", h.GetICD10)
	g.GET("/snomed/search", h.SearchSNOMED)
	g.GET("/snomed/:id", h.GetSNOMED)
}

func (h *Handler) SearchICD10(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}
	return c.JSON(http.StatusOK, h.svc.SearchICD10(query, searchLimit(c)))
}

func (h *Handler) GetICD10(c echo.Context) error {
	entry, err := h.svc.GetICD10(c.Param("code"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, entry)
}

func (h *Handler) SearchSNOMED(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}
	return c.JSON(http.StatusOK, h.svc.SearchSNOMED(query, searchLimit(c)))
}

func (h *Handler) GetSNOMED(c echo.Context) error {
	entry, err := h.svc.GetSNOMED(c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, entry)
}

func searchLimit(c echo.Context) int {
	raw := c.QueryParam("limit")
	if raw == "" {
		return DefaultSearchLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultSearchLimit
	}
	return limit
}

func httpError(err error) error {
	if fault.IsKind(err, fault.NotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
