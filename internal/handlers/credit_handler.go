package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"telshop/internal/models"
	"telshop/internal/pdf"
	"telshop/internal/services"
)

type CreditHandler struct {
	Service *services.CreditService
	PDF     pdf.Generator
}

func NewCreditHandler(service *services.CreditService, gen pdf.Generator) *CreditHandler {
	return &CreditHandler{Service: service, PDF: gen}
}

type clientRequest struct {
	Name           string     `json:"name" binding:"required"`
	Phone          string     `json:"phone" binding:"required"`
	TotalDebt      float64    `json:"totalDebt"`
	PaymentDueDate *time.Time `json:"paymentDueDate"`
}

func (h *CreditHandler) CreateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	client, err := h.Service.AddClient(req.Name, req.Phone, req.TotalDebt, req.PaymentDueDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *CreditHandler) UpdateClient(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	client, err := h.Service.UpdateClient(c.Param("id"), req.Name, req.Phone, req.TotalDebt, req.PaymentDueDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *CreditHandler) GetClient(c *gin.Context) {
	client, err := h.Service.GetClient(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// ListClients degrades to an empty table when the store is unavailable so
// the terminal keeps rendering; the failure is still logged.
func (h *CreditHandler) ListClients(c *gin.Context) {
	clients, err := h.Service.ListClients()
	if err != nil {
		log.Printf("list credit clients failed: %v", err)
		clients = nil
	}
	if clients == nil {
		clients = []*models.CreditClient{}
	}
	c.JSON(http.StatusOK, clients)
}

func (h *CreditHandler) DeleteClient(c *gin.Context) {
	if err := h.Service.DeleteClient(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type paymentRequest struct {
	Amount    float64 `json:"amount"`
	Notes     string  `json:"notes"`
	PaymentID string  `json:"paymentId"`
}

func (h *CreditHandler) AddPayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	payment, err := h.Service.AddPayment(c.Param("id"), req.Amount, req.Notes, req.PaymentID)
	if err != nil {
		respondError(c, err)
		return
	}
	terminal, _ := getTerminalAndRole(c)
	log.Printf("payment %s of %.2f recorded for client %s (terminal %s)", payment.ID, payment.Amount, payment.ClientID, terminal)
	c.JSON(http.StatusCreated, payment)
}

// PaymentHistory pages newest-first. The cursor of the next page is the
// (date, id) pair of the last row already shown; both come back in the
// response so the caller just echoes them.
func (h *CreditHandler) PaymentHistory(c *gin.Context) {
	var cursor *services.PaymentCursor
	if raw := c.Query("cursor"); raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cursor"})
			return
		}
		cursor = &services.PaymentCursor{Date: t, ID: c.Query("cursor_id")}
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "0"))

	page, err := h.Service.PaymentHistory(c.Param("id"), cursor, size)
	if err != nil {
		log.Printf("payment history failed: %v", err)
		page = &services.PaymentPage{Payments: []*models.Payment{}}
	}
	c.JSON(http.StatusOK, page)
}

func (h *CreditHandler) Summary(c *gin.Context) {
	total, err := h.Service.TotalOutstanding()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalOutstanding": total})
}

// Statement renders the client's full account statement as a PDF.
func (h *CreditHandler) Statement(c *gin.Context) {
	client, err := h.Service.GetClient(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var payments []*models.Payment
	var cursor *services.PaymentCursor
	for {
		page, err := h.Service.PaymentHistory(client.ID, cursor, services.DefaultPaymentPageSize)
		if err != nil {
			respondError(c, err)
			return
		}
		payments = append(payments, page.Payments...)
		if page.NextCursor == nil {
			break
		}
		cursor = page.NextCursor
	}

	path, err := h.PDF.GenerateStatement(pdf.StatementData{Client: client, Payments: payments})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.FileAttachment(path, "statement_"+client.ID+".pdf")
}
