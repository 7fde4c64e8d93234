package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"telshop/internal/services"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

// Summary returns the dashboard aggregates. `period` selects the window:
// today (default), week, month, all — or pass an explicit `since` RFC3339
// timestamp.
func (h *ReportHandler) Summary(c *gin.Context) {
	var since time.Time
	now := time.Now()

	if raw := c.Query("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid since timestamp"})
			return
		}
		since = t
	} else {
		switch c.DefaultQuery("period", "today") {
		case "today":
			since = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		case "week":
			since = now.AddDate(0, 0, -7)
		case "month":
			since = now.AddDate(0, -1, 0)
		case "all":
			// zero time: everything
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown period"})
			return
		}
	}

	summary, err := h.Service.Summary(since)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
