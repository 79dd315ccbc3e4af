package drug

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medassist/medassist/internal/platform/auth"
	"github.com/medassist/medassist/pkg/fault"
	"github.com/medassist/medassist/pkg/pagination"
)

// UsageRecorder receives a summary of each completed interaction check, for
// the caller's query history.
type UsageRecorder interface {
	RecordCheck(ctx context.Context, userID string, drugs []string, result *CheckResult, elapsed time.Duration)
}

type Handler struct {
	svc      *Service
	recorder UsageRecorder
}

// NewHandler builds the HTTP handler. recorder may be nil.
func NewHandler(svc *Service, recorder UsageRecorder) *Handler {
	return &Handler{svc: svc, recorder: recorder}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "clinician", "pharmacist"))
	g.POST("/drugs/check", h.CheckInteractions)
	g.GET("/drugs/search", h.SearchDrugs)
	g.GET("/drugs/:name", h.GetDrug)
	g.GET("/drugs/:name/alternatives", h.GetAlternatives)
}

func (h *Handler) CheckInteractions(c echo.Context) error {
	var req CheckRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.Drugs) < 2 {
		return httpError(fault.New(fault.TooFewDrugs, "at least 2 drugs are required"))
	}
	start := time.Now()
	result, err := h.svc.Check(c.Request().Context(), req.Drugs)
	if err != nil {
		return httpError(err)
	}
	if h.recorder != nil {
		userID := auth.UserIDFromContext(c.Request().Context())
		h.recorder.RecordCheck(c.Request().Context(), userID, req.Drugs, result, time.Since(start))
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) SearchDrugs(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.SearchDrugs(c.Request().Context(), query, pg.Limit, pg.Offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetDrug(c echo.Context) error {
	info, err := h.svc.GetDrugInfo(c.Request().Context(), c.Param("name"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, info)
}

func (h *Handler) GetAlternatives(c echo.Context) error {
	alts, err := h.svc.GetAlternatives(c.Request().Context(), c.Param("name"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"alternatives": alts})
}

// httpError maps domain error kinds onto HTTP statuses.
func httpError(err error) error {
	switch fault.KindOf(err) {
	case fault.UnresolvedDrugName:
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case fault.TooManyDrugs, fault.TooFewDrugs:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case fault.NotFound:
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
