package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"telshop/internal/services"
)

// tolerant to value types in the gin context (int / int64 / float64 / string)
func getIntFromCtx(c *gin.Context, key string) (int, bool) {
	v, ok := c.Get(key)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n, true
		}
	}
	return 0, false
}

func getTerminalAndRole(c *gin.Context) (terminal string, roleID int) {
	if v, ok := c.Get("terminal"); ok {
		terminal, _ = v.(string)
	}
	if id, ok := getIntFromCtx(c, "role_id"); ok {
		roleID = id
	}
	return
}

// respondError maps service error kinds onto status codes. Anything that is
// not a validation or lookup failure is a store problem and stays a 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInsufficientStock):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
