package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/excursion-booking/internal/middlewares"
	"github.com/you/excursion-booking/internal/service"
)

type AuthHandler struct {
	identity *service.IdentitySvc
}

func NewAuthHandler(identity *service.IdentitySvc) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// POST /api/admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, token, err := h.identity.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":        token,
		"is_superuser": u.IsSuperuser,
		"supplier_id":  u.SupplierID,
	})
}

// POST /api/admin/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var in struct {
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u := middlewares.CurrentUser(c)
	if err := h.identity.ChangePassword(c.Request.Context(), u, in.NewPassword); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
