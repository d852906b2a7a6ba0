package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autoparts/internal/dto"
	"autoparts/internal/middleware"
	"autoparts/internal/service"
)

// ── Categories ───────────────────────────────────────────────────────────────

type CategoriesHandler struct{ svc service.CategoryService }

func NewCategoriesHandler(svc service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{svc: svc}
}

func (h *CategoriesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CategoriesHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
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

func (h *CategoriesHandler) Update(c *gin.Context) {
	var req dto.CategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Category not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CategoriesHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Category not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Suppliers ────────────────────────────────────────────────────────────────

type SuppliersHandler struct{ svc service.SupplierService }

func NewSuppliersHandler(svc service.SupplierService) *SuppliersHandler {
	return &SuppliersHandler{svc: svc}
}

func (h *SuppliersHandler) List(c *gin.Context) {
	var filter dto.SupplierFilter
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

func (h *SuppliersHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Supplier not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SuppliersHandler) Create(c *gin.Context) {
	var req dto.SupplierRequest
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

func (h *SuppliersHandler) Update(c *gin.Context) {
	var req dto.SupplierRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Supplier not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SuppliersHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Supplier not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SuppliersHandler) Products(c *gin.Context) {
	resp, err := h.svc.Products(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Supplier not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SuppliersHandler) OrderStock(c *gin.Context) {
	var req dto.OrderStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.OrderStock(c.Request.Context(), c.Param("id"), middleware.UserID(c), req)
	if err != nil {
		respondError(c, err, "Supplier not found")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ── Products ─────────────────────────────────────────────────────────────────

type ProductsHandler struct{ svc service.ProductService }

func NewProductsHandler(svc service.ProductService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

func (h *ProductsHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
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

func (h *ProductsHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
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

func (h *ProductsHandler) Update(c *gin.Context) {
	var req dto.ProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Product not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Shops ────────────────────────────────────────────────────────────────────

type ShopsHandler struct{ svc service.ShopService }

func NewShopsHandler(svc service.ShopService) *ShopsHandler {
	return &ShopsHandler{svc: svc}
}

func (h *ShopsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ShopsHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Shop not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ShopsHandler) Create(c *gin.Context) {
	var req dto.ShopRequest
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

func (h *ShopsHandler) Update(c *gin.Context) {
	var req dto.ShopRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Shop not found")
		return
	}
	c.JSON(http.StatusOK, resp)
}
