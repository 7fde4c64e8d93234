package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"telshop/internal/authz"
	"telshop/internal/config"
	"telshop/internal/middleware"
)

// AuthHandler mints terminal tokens. There is no user registry: a terminal
// authenticates with a shared passcode whose bcrypt hash sits in the config,
// and gets a role-scoped JWT back.
type AuthHandler struct {
	cfg config.AuthConfig
}

func NewAuthHandler(cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

type tokenRequest struct {
	Terminal string `json:"terminal" binding:"required"`
	Passcode string `json:"passcode" binding:"required"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	roleID := 0
	roleName := ""
	if h.cfg.AdminPasscodeHash != "" &&
		bcrypt.CompareHashAndPassword([]byte(h.cfg.AdminPasscodeHash), []byte(req.Passcode)) == nil {
		roleID = authz.RoleAdmin
		roleName = "admin"
	} else if h.cfg.CashierPasscodeHash != "" &&
		bcrypt.CompareHashAndPassword([]byte(h.cfg.CashierPasscodeHash), []byte(req.Passcode)) == nil {
		roleID = authz.RoleCashier
		roleName = "cashier"
	}
	if roleID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid passcode"})
		return
	}

	expiresAt := time.Now().Add(time.Duration(h.cfg.TokenTTLHours) * time.Hour)
	claims := &middleware.Claims{
		Terminal: req.Terminal,
		RoleID:   roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign token"})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: signed, Role: roleName, ExpiresAt: expiresAt})
}
