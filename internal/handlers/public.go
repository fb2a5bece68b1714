package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/excursion-booking/internal/service"
)

type PublicHandler struct {
	inv      *service.InventorySvc
	bookings *service.BookingSvc
}

func NewPublicHandler(inv *service.InventorySvc, bookings *service.BookingSvc) *PublicHandler {
	return &PublicHandler{inv: inv, bookings: bookings}
}

// GET /operators
func (h *PublicHandler) Operators(c *gin.Context) {
	out, err := h.inv.Suppliers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /cars
func (h *PublicHandler) Cars(c *gin.Context) {
	out, err := h.inv.Cars(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /cars/:id
func (h *PublicHandler) Car(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	out, err := h.inv.Car(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /excursions?operator_id=
func (h *PublicHandler) Excursions(c *gin.Context) {
	operatorID, err := int64Query(c, "operator_id")
	if err != nil || operatorID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "operator_id is required"})
		return
	}
	out, err := h.inv.ExcursionsByOperator(c.Request.Context(), *operatorID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /bookings
func (h *PublicHandler) Bookings(c *gin.Context) {
	out, err := h.bookings.Bookings(c.Request.Context(), nil)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /car-reservations?car_id= — the calendar view: every blocked day of the
// car as YYYY-MM-DD strings.
func (h *PublicHandler) CarReservations(c *gin.Context) {
	carID, err := int64Query(c, "car_id")
	if err != nil || carID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "car_id is required"})
		return
	}
	out, err := h.bookings.UnavailableDates(c.Request.Context(), *carID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /excursion-reservations?excursion_id=
func (h *PublicHandler) ExcursionReservations(c *gin.Context) {
	excID, err := int64Query(c, "excursion_id")
	if err != nil || excID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "excursion_id is required"})
		return
	}
	out, err := h.bookings.ExcursionReservations(c.Request.Context(), *excID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/pay — the payment step is simulated; a success response means the
// booking and its reservation are committed.
func (h *PublicHandler) Pay(c *gin.Context) {
	var req service.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := h.bookings.Submit(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "booking_id": b.BookingID})
}
