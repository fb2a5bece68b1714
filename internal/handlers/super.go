package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/excursion-booking/internal/domain"
	"github.com/you/excursion-booking/internal/service"
)

// SuperHandler is the platform surface: user accounts and suppliers. Routes
// sit behind the superuser middleware.
type SuperHandler struct {
	identity *service.IdentitySvc
	inv      *service.InventorySvc
}

func NewSuperHandler(identity *service.IdentitySvc, inv *service.InventorySvc) *SuperHandler {
	return &SuperHandler{identity: identity, inv: inv}
}

// GET /api/super/users
func (h *SuperHandler) Users(c *gin.Context) {
	out, err := h.identity.Users(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/super/users
func (h *SuperHandler) CreateUser(c *gin.Context) {
	var in struct {
		Email       string `json:"email"`
		Password    string `json:"password"`
		SupplierID  *int64 `json:"supplier_id"`
		IsSuperuser bool   `json:"is_superuser"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.identity.CreateUser(c.Request.Context(), in.Email, in.Password, in.SupplierID, in.IsSuperuser)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// PUT /api/super/users/:id
func (h *SuperHandler) UpdateUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in struct {
		SupplierID  *int64 `json:"supplier_id"`
		IsSuperuser *bool  `json:"is_superuser"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.identity.UpdateUser(c.Request.Context(), id, in.SupplierID, in.IsSuperuser); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /api/super/users/:id
func (h *SuperHandler) DeleteUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.identity.DeleteUser(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/super/suppliers
func (h *SuperHandler) Suppliers(c *gin.Context) {
	out, err := h.inv.Suppliers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/super/suppliers
func (h *SuperHandler) CreateSupplier(c *gin.Context) {
	var sup domain.Supplier
	if err := c.ShouldBindJSON(&sup); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.inv.CreateSupplier(c.Request.Context(), &sup); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sup)
}

// PUT /api/super/suppliers/:id
func (h *SuperHandler) UpdateSupplier(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var sup domain.Supplier
	if err := c.ShouldBindJSON(&sup); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sup.ID = id
	if err := h.inv.UpdateSupplier(c.Request.Context(), &sup); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /api/super/suppliers/:id — 409 while dependent inventory or
// bookings still reference the supplier.
func (h *SuperHandler) DeleteSupplier(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.inv.DeleteSupplier(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
