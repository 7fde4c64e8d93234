package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"telshop/internal/models"
	"telshop/internal/pdf"
	"telshop/internal/services"
)

type PhoneHandler struct {
	Service *services.PhoneService
	PDF     pdf.Generator
}

func NewPhoneHandler(service *services.PhoneService, gen pdf.Generator) *PhoneHandler {
	return &PhoneHandler{Service: service, PDF: gen}
}

type phoneRequest struct {
	Name          string     `json:"name" binding:"required"`
	Brand         string     `json:"brand" binding:"required"`
	IMEI          string     `json:"imei"`
	BatteryHealth int        `json:"battery_health"`
	ChargeCycle   int        `json:"charge_cycle"`
	BuyingPrice   float64    `json:"buying_price"`
	SellingPrice  float64    `json:"selling_price"`
	CustomerName  string     `json:"customer_name" binding:"required"`
	SaleDate      *time.Time `json:"sale_date"`
}

func (r phoneRequest) toModel() *models.Phone {
	p := &models.Phone{
		Name:          r.Name,
		Brand:         r.Brand,
		IMEI:          r.IMEI,
		BatteryHealth: r.BatteryHealth,
		ChargeCycle:   r.ChargeCycle,
		BuyingPrice:   r.BuyingPrice,
		SellingPrice:  r.SellingPrice,
		CustomerName:  r.CustomerName,
	}
	if r.SaleDate != nil {
		p.SaleDate = *r.SaleDate
	}
	return p
}

func (h *PhoneHandler) Create(c *gin.Context) {
	var req phoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	phone, err := h.Service.Create(req.toModel())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, phone)
}

func (h *PhoneHandler) Update(c *gin.Context) {
	var req phoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p := req.toModel()
	p.ID = c.Param("id")
	phone, err := h.Service.Update(p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, phone)
}

func (h *PhoneHandler) GetByID(c *gin.Context) {
	phone, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, phone)
}

func (h *PhoneHandler) List(c *gin.Context) {
	phones, err := h.Service.List()
	if err != nil {
		log.Printf("list phones failed: %v", err)
		phones = nil
	}
	if phones == nil {
		phones = []*models.Phone{}
	}
	c.JSON(http.StatusOK, phones)
}

func (h *PhoneHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Warranty prints the warranty slip handed to the buyer.
func (h *PhoneHandler) Warranty(c *gin.Context) {
	phone, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	path, err := h.PDF.GenerateWarrantySlip(pdf.WarrantyData{Phone: phone})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.FileAttachment(path, "warranty_"+phone.ID+".pdf")
}
