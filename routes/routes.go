package routes

import (
	"tripnest/handlers"
	"tripnest/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all endpoints for the booking engine.
func RegisterRoutes(
	r *gin.Engine,
	bookingHandler *handlers.BookingHandler,
	paymentHandler *handlers.PaymentHandler,
	checkoutHandler *handlers.CheckoutHandler,
) {
	api := r.Group("/api", middleware.JWTAuthMiddleware())

	bookings := api.Group("/bookings")
	{
		bookings.POST("", bookingHandler.CreateBooking)
		bookings.GET("", bookingHandler.ListBookings)
		bookings.GET("/:bookingID", bookingHandler.GetBooking)
		bookings.DELETE("/:bookingID", bookingHandler.CancelBooking)
		bookings.GET("/:bookingID/payment", paymentHandler.GetPaymentStatus)
	}

	payments := api.Group("/payments")
	{
		payments.POST("/intent", paymentHandler.CreateIntent)
		payments.POST("/confirm", paymentHandler.ConfirmPayment)
		payments.POST("/refund", paymentHandler.RequestRefund)
	}

	checkouts := api.Group("/checkout")
	{
		checkouts.POST("", checkoutHandler.InitiateHold)
		checkouts.GET("/:checkoutID", checkoutHandler.GetHold)
		checkouts.DELETE("/:checkoutID", checkoutHandler.CancelHold)
	}

	admin := api.Group("/admin", middleware.AdminOnly())
	{
		admin.GET("/refunds", paymentHandler.ListPendingRefunds)
		admin.POST("/refunds/:reference/approve", paymentHandler.ApproveRefund)
		admin.GET("/wallets/:vendorID", paymentHandler.GetWallet)
	}
}
