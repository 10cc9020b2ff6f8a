package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/crocnet/internal/handlers/dto"
	"github.com/thereayou/crocnet/internal/middleware"
	"github.com/thereayou/crocnet/internal/services"
)

type AuthHandler struct {
	accounts *services.AccountService
}

func NewAuthHandler(accounts *services.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, services.ErrValidation)
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), services.Candidate{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
		Photo:    req.Photo,
		Bio:      req.Bio,
	})
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

// Login issues a bearer token for valid credentials.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, services.ErrValidation)
		return
	}

	token, err := h.accounts.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// Logout blacklists the presented token until it expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.accounts.Logout(c.Request.Context(), c.GetString(middleware.TokenKey)); err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}
