package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"telshop/internal/models"
	"telshop/internal/services"
)

type ProductHandler struct {
	Service *services.ProductService
}

func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{Service: service}
}

type productRequest struct {
	Name              string  `json:"name" binding:"required"`
	Category          string  `json:"category" binding:"required"`
	BuyingPrice       float64 `json:"buying_price"`
	SellingPrice      float64 `json:"selling_price"`
	Stock             int     `json:"stock"`
	LowStockThreshold int     `json:"low_stock_threshold"`
	Barcode           string  `json:"barcode"`
}

func (r productRequest) toModel() *models.Product {
	return &models.Product{
		Name:              r.Name,
		Category:          r.Category,
		BuyingPrice:       r.BuyingPrice,
		SellingPrice:      r.SellingPrice,
		Stock:             r.Stock,
		LowStockThreshold: r.LowStockThreshold,
		Barcode:           r.Barcode,
	}
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product, err := h.Service.Create(req.toModel())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p := req.toModel()
	p.ID = c.Param("id")
	product, err := h.Service.Update(p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	product, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Lookup resolves a scanned barcode (the decoding happens on the terminal).
func (h *ProductHandler) Lookup(c *gin.Context) {
	product, err := h.Service.GetByBarcode(c.Query("barcode"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.Service.List()
	if err != nil {
		log.Printf("list products failed: %v", err)
		products = nil
	}
	if products == nil {
		products = []*models.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) ListLowStock(c *gin.Context) {
	products, err := h.Service.ListLowStock()
	if err != nil {
		log.Printf("list low-stock products failed: %v", err)
		products = nil
	}
	if products == nil {
		products = []*models.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
