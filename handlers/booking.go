package handlers

import (
	"net/http"

	"tripnest/models"
	"tripnest/services/booking"
	"tripnest/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking engine over HTTP.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func requestUserID(c *gin.Context) string {
	id, _ := c.Get("userID")
	userID, _ := id.(string)
	return userID
}

// CreateBooking turns a cart payload into a persisted booking.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input models.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.NewValidationError("invalid booking payload: %v", err))
		return
	}

	b, err := h.Service.CreateBooking(c.Request.Context(), requestUserID(c), input)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusCreated, b)
}

// GetBooking returns one booking owned by the caller.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Service.GetBooking(c.Request.Context(), requestUserID(c), c.Param("bookingID"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, b)
}

// ListBookings returns the caller's bookings.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := h.Service.ListBookings(c.Request.Context(), requestUserID(c))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, bookings)
}

// CancelBooking cancels an unpaid booking.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	if err := h.Service.CancelBooking(c.Request.Context(), requestUserID(c), c.Param("bookingID")); err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, gin.H{"cancelled": true})
}
