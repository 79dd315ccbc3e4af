package chat

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medassist/medassist/internal/platform/auth"
	"github.com/medassist/medassist/pkg/fault"
	"github.com/medassist/medassist/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "clinician", "pharmacist"))
	g.POST("/chat", h.Chat)
	g.GET("/chat/suggestions", h.Suggestions)
	g.GET("/history", h.History)
	g.GET("/history/:id", h.Conversation)
}

func (h *Handler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}
	userID := auth.UserIDFromContext(c.Request().Context())
	resp, err := h.svc.Ask(c.Request().Context(), userID, req)
	if err != nil {
		if c.Request().Context().Err() != nil {
			return err
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) Suggestions(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"suggestions": Suggestions(),
	})
}

func (h *Handler) History(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	pg := pagination.FromContext(c)
	items, total, err := h.svc.History(c.Request().Context(), userID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Conversation(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid conversation id")
	}
	turns, err := h.svc.Conversation(c.Request().Context(), id)
	if err != nil {
		if fault.IsKind(err, fault.NotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"conversation_id": id,
		"turns":           turns,
	})
}
