package docparse

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clearsummary/api/internal/platform/auth"
	"github.com/clearsummary/api/internal/platform/db"
	"github.com/clearsummary/api/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "physician", "nurse"))
	g.POST("/discharge-documents/parse", h.Parse)
	g.GET("/discharge-documents", h.ListDocuments)
	g.GET("/discharge-documents/:id", h.GetDocument)
	g.DELETE("/discharge-documents/:id", h.DeleteDocument, auth.RequireRole("admin"))
}

type parseRequest struct {
	DocumentID       *string `json:"document_id,omitempty"`
	SummaryText      string  `json:"summary_text"`
	InstructionsText string  `json:"instructions_text"`
}

func (h *Handler) Parse(c echo.Context) error {
	var req parseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.SummaryText == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "summary_text is required")
	}

	ctx := c.Request().Context()
	doc, err := h.svc.Parse(ctx, db.TenantFromContext(ctx), req.DocumentID, req.SummaryText, req.InstructionsText)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	// An unparsed document is a valid outcome, not an error.
	return c.JSON(http.StatusCreated, doc)
}

func (h *Handler) GetDocument(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	doc, err := h.svc.GetDocument(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "document not found")
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *Handler) ListDocuments(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListDocuments(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) DeleteDocument(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteDocument(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
