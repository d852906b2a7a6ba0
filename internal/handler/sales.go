package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autoparts/internal/dto"
	"autoparts/internal/middleware"
	"autoparts/internal/service"
)

// ── Sales ────────────────────────────────────────────────────────────────────

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler {
	return &SalesHandler{svc: svc}
}

func (h *SalesHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
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

func (h *SalesHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Sale not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SalesHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Receipt streams the PDF receipt of a sale.
func (h *SalesHandler) Receipt(c *gin.Context) {
	id := c.Param("id")
	pdf, err := h.svc.Receipt(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Sale not found")
		return
	}
	c.Header("Content-Disposition", `inline; filename="receipt-`+id+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ── Reorders ─────────────────────────────────────────────────────────────────

type ReordersHandler struct{ svc service.ReorderService }

func NewReordersHandler(svc service.ReorderService) *ReordersHandler {
	return &ReordersHandler{svc: svc}
}

func (h *ReordersHandler) List(c *gin.Context) {
	var filter dto.ReorderFilter
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

func (h *ReordersHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Reorder request not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReordersHandler) Create(c *gin.Context) {
	var req dto.CreateReorderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ReordersHandler) Transition(c *gin.Context) {
	var req dto.TransitionReorderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Transition(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err, "Reorder request not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}
