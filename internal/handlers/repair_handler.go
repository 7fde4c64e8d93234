package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"telshop/internal/models"
	"telshop/internal/services"
)

type RepairHandler struct {
	Service *services.RepairService
}

func NewRepairHandler(service *services.RepairService) *RepairHandler {
	return &RepairHandler{Service: service}
}

type repairRequest struct {
	CustomerName string  `json:"customer_name" binding:"required"`
	Device       string  `json:"device" binding:"required"`
	Issue        string  `json:"issue" binding:"required"`
	Status       string  `json:"status"`
	Cost         float64 `json:"cost"`
}

func (r repairRequest) toModel() *models.Repair {
	return &models.Repair{
		CustomerName: r.CustomerName,
		Device:       r.Device,
		Issue:        r.Issue,
		Status:       r.Status,
		Cost:         r.Cost,
	}
}

func (h *RepairHandler) Create(c *gin.Context) {
	var req repairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	repair, err := h.Service.Create(req.toModel())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, repair)
}

func (h *RepairHandler) Update(c *gin.Context) {
	var req repairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r := req.toModel()
	r.ID = c.Param("id")
	repair, err := h.Service.Update(r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, repair)
}

func (h *RepairHandler) GetByID(c *gin.Context) {
	repair, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, repair)
}

func (h *RepairHandler) List(c *gin.Context) {
	repairs, err := h.Service.List()
	if err != nil {
		log.Printf("list repairs failed: %v", err)
		repairs = nil
	}
	if repairs == nil {
		repairs = []*models.Repair{}
	}
	c.JSON(http.StatusOK, repairs)
}

func (h *RepairHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
