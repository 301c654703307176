package handler

import (
	"ledger-lab/auth"
	"ledger-lab/errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AuthHandler issues operator access tokens.
type AuthHandler struct {
	log           *slog.Logger
	authenticator *auth.Authenticator
}

type LoginRequest struct {
	Operator string `json:"operator" binding:"required,max=128"`
	Password string `json:"password" binding:"required,max=72"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func NewAuthHandler(log *slog.Logger, authenticator *auth.Authenticator) *AuthHandler {
	return &AuthHandler{log: log, authenticator: authenticator}
}

func (h *AuthHandler) Register(router gin.IRouter) {
	router.POST("/v1/auth/token", h.Login)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithBindingError(c, err)
		return
	}

	token, expiresAt, err := h.authenticator.Login(req.Operator, req.Password)
	switch {
	case errors.Is(err, errors.ErrInvalidCredentials):
		h.log.Warn("Rejected operator login", "operator", req.Operator)
		RespondWithError(c, http.StatusUnauthorized, err.Error())
		return
	case err != nil:
		h.log.Error("Operator login failed", "operator", req.Operator, "error", err)
		RespondWithError(c, http.StatusInternalServerError, "Internal error")
		return
	}
	h.log.Info("Operator logged in", "operator", req.Operator, "expires_at", expiresAt)
	c.JSON(http.StatusOK, LoginResponse{Token: token, ExpiresAt: expiresAt})
}
