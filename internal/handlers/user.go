package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/crocnet/internal/middleware"
	"github.com/thereayou/crocnet/internal/models"
	"github.com/thereayou/crocnet/internal/services"
)

type UserHandler struct {
	accounts *services.AccountService
}

func NewUserHandler(accounts *services.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.accounts.ListUsers(c.Request.Context())
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.PublicUsers(users))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.accounts.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Public())
}
