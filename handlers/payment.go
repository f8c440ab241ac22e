package handlers

import (
	"net/http"

	"tripnest/services/payment"
	"tripnest/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler exposes intent creation, confirmation and refunds.
type PaymentHandler struct {
	Service payment.PaymentService
}

func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

// CreateIntent opens a payment intent for a booking.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var input struct {
		BookingID string `json:"bookingId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.NewValidationError("invalid payment payload: %v", err))
		return
	}

	resp, err := h.Service.CreateIntent(c.Request.Context(), requestUserID(c), input.BookingID)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusCreated, resp)
}

// ConfirmPayment confirms and captures an intent.
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	var input struct {
		IntentID        string `json:"intentId" binding:"required"`
		PaymentMethodID string `json:"paymentMethodId,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.NewValidationError("invalid confirmation payload: %v", err))
		return
	}

	result, err := h.Service.ConfirmPayment(c.Request.Context(), requestUserID(c), input.IntentID, input.PaymentMethodID)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, result)
}

// GetPaymentStatus reports a booking's payment state.
func (h *PaymentHandler) GetPaymentStatus(c *gin.Context) {
	status, err := h.Service.GetPaymentStatus(c.Request.Context(), requestUserID(c), c.Param("bookingID"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, status)
}

// RequestRefund records a guest refund request pending admin review.
func (h *PaymentHandler) RequestRefund(c *gin.Context) {
	var input struct {
		BookingID string `json:"bookingId" binding:"required"`
		Reason    string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, utils.NewValidationError("invalid refund payload: %v", err))
		return
	}

	tx, err := h.Service.RequestRefund(c.Request.Context(), requestUserID(c), input.BookingID, input.Reason)
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusCreated, tx)
}

// ListPendingRefunds returns refund requests awaiting review.
func (h *PaymentHandler) ListPendingRefunds(c *gin.Context) {
	rows, err := h.Service.ListPendingRefunds(c.Request.Context())
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, rows)
}

// ApproveRefund executes a pending refund against the gateway.
func (h *PaymentHandler) ApproveRefund(c *gin.Context) {
	if err := h.Service.ApproveRefund(c.Request.Context(), c.Param("reference")); err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, gin.H{"approved": true})
}

// GetWallet returns a vendor's earnings aggregate.
func (h *PaymentHandler) GetWallet(c *gin.Context) {
	wallet, err := h.Service.GetWallet(c.Request.Context(), c.Param("vendorID"))
	if err != nil {
		utils.JSONError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, wallet)
}
