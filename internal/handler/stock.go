package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autoparts/internal/dto"
	"autoparts/internal/middleware"
	"autoparts/internal/service"
)

// ── Inventory ────────────────────────────────────────────────────────────────

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

func (h *InventoryHandler) List(c *gin.Context) {
	var filter dto.InventoryFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Inventory row not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req dto.CreateInventoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req dto.AdjustInventoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Adjust(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Inventory row not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandler) StockStatus(c *gin.Context) {
	var q dto.StockStatusQuery
	if !bindQuery(c, &q) {
		return
	}
	c.JSON(http.StatusOK, h.svc.StockStatus(q))
}

// ── Alerts ───────────────────────────────────────────────────────────────────

type AlertsHandler struct{ svc service.AlertService }

func NewAlertsHandler(svc service.AlertService) *AlertsHandler {
	return &AlertsHandler{svc: svc}
}

func (h *AlertsHandler) List(c *gin.Context) {
	var filter dto.AlertFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlertsHandler) Acknowledge(c *gin.Context) {
	resp, err := h.svc.Acknowledge(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "Alert not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlertsHandler) Scan(c *gin.Context) {
	resp, err := h.svc.ScanAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Dashboard ────────────────────────────────────────────────────────────────

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, resp)
}
