package handlers

import (
	"net/http"

	"tripnest/models"
	"tripnest/services/checkout"
	"tripnest/utils"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler exposes the pre-booking hold flow.
type CheckoutHandler struct {
	Service checkout.CheckoutService
}

func NewCheckoutHandler(svc checkout.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{Service: svc}
}

// InitiateHold creates a short-lived checkout hold.
func (h *CheckoutHandler) InitiateHold(c *gin.Context) {
	var input struct {
		Items []models.CheckoutItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.NewValidationError("invalid checkout payload: %v", err))
		return
	}

	hold, err := h.Service.InitiateHold(c.Request.Context(), requestUserID(c), input.Items)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusCreated, hold)
}

// GetHold retrieves a live hold.
func (h *CheckoutHandler) GetHold(c *gin.Context) {
	hold, err := h.Service.GetHold(c.Request.Context(), requestUserID(c), c.Param("checkoutID"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, hold)
}

// CancelHold releases a hold before expiry.
func (h *CheckoutHandler) CancelHold(c *gin.Context) {
	if err := h.Service.CancelHold(c.Request.Context(), requestUserID(c), c.Param("checkoutID")); err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, gin.H{"cancelled": true})
}
