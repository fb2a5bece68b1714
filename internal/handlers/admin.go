package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/excursion-booking/internal/domain"
	"github.com/you/excursion-booking/internal/middlewares"
	"github.com/you/excursion-booking/internal/service"
)

// AdminHandler is the tenant-scoped inventory and booking surface. The
// supplier filter is enforced server-side: a scoped caller sees their own
// supplier no matter what they pass.
type AdminHandler struct {
	inv      *service.InventorySvc
	bookings *service.BookingSvc
}

func NewAdminHandler(inv *service.InventorySvc, bookings *service.BookingSvc) *AdminHandler {
	return &AdminHandler{inv: inv, bookings: bookings}
}

// GET /api/admin/cars?supplier_id=
func (h *AdminHandler) Cars(c *gin.Context) {
	filter, err := int64Query(c, "supplier_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supplier_id"})
		return
	}
	out, err := h.inv.CarsFor(c.Request.Context(), middlewares.CurrentUser(c), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/admin/cars
func (h *AdminHandler) CreateCar(c *gin.Context) {
	var car domain.Car
	if err := c.ShouldBindJSON(&car); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.inv.CreateCar(c.Request.Context(), middlewares.CurrentUser(c), &car); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, car)
}

// PUT /api/admin/cars/:id
func (h *AdminHandler) UpdateCar(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var upd domain.CarUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.inv.UpdateCar(c.Request.Context(), middlewares.CurrentUser(c), id, upd); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /api/admin/cars/:id
func (h *AdminHandler) DeleteCar(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.inv.DeleteCar(c.Request.Context(), middlewares.CurrentUser(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/admin/excursions?supplier_id=
func (h *AdminHandler) Excursions(c *gin.Context) {
	filter, err := int64Query(c, "supplier_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supplier_id"})
		return
	}
	out, err := h.inv.ExcursionsFor(c.Request.Context(), middlewares.CurrentUser(c), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/admin/excursions
func (h *AdminHandler) CreateExcursion(c *gin.Context) {
	var e domain.Excursion
	if err := c.ShouldBindJSON(&e); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.inv.CreateExcursion(c.Request.Context(), middlewares.CurrentUser(c), &e); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// PUT /api/admin/excursions/:id
func (h *AdminHandler) UpdateExcursion(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var upd domain.ExcursionUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.inv.UpdateExcursion(c.Request.Context(), middlewares.CurrentUser(c), id, upd); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /api/admin/excursions/:id
func (h *AdminHandler) DeleteExcursion(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.inv.DeleteExcursion(c.Request.Context(), middlewares.CurrentUser(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/admin/bookings?supplier_id=
func (h *AdminHandler) Bookings(c *gin.Context) {
	filter, err := int64Query(c, "supplier_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supplier_id"})
		return
	}
	out, err := h.bookings.BookingsFor(c.Request.Context(), middlewares.CurrentUser(c), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
