package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"telshop/internal/models"
	"telshop/internal/services"
)

type ExpenseHandler struct {
	Service *services.ExpenseService
}

func NewExpenseHandler(service *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{Service: service}
}

type expenseRequest struct {
	Category    string     `json:"category" binding:"required"`
	Amount      float64    `json:"amount"`
	Date        *time.Time `json:"date"`
	Description string     `json:"description"`
}

func (r expenseRequest) toModel() *models.Expense {
	e := &models.Expense{
		Category:    r.Category,
		Amount:      r.Amount,
		Description: r.Description,
	}
	if r.Date != nil {
		e.Date = *r.Date
	}
	return e
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	expense, err := h.Service.Create(req.toModel())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e := req.toModel()
	e.ID = c.Param("id")
	expense, err := h.Service.Update(e)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (h *ExpenseHandler) GetByID(c *gin.Context) {
	expense, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (h *ExpenseHandler) List(c *gin.Context) {
	expenses, err := h.Service.List()
	if err != nil {
		log.Printf("list expenses failed: %v", err)
		expenses = nil
	}
	if expenses == nil {
		expenses = []*models.Expense{}
	}
	c.JSON(http.StatusOK, expenses)
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
