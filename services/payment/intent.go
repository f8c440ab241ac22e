package payment

import (
	"context"
	"fmt"

	"tripnest/models"
	"tripnest/services/tasks"
	"tripnest/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateIntent opens a gateway payment intent for the full booking
// amount with the platform commission split off as an application fee,
// and records the two parallel ledger rows in pending state.
func (s *DefaultPaymentService) CreateIntent(ctx context.Context, userID, bookingID string) (*IntentResponse, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if booking == nil || booking.UserID != userID {
		return nil, utils.NewNotFoundError("booking %s not found", bookingID)
	}
	if booking.PaymentStatus == models.PaymentStatusPaid {
		return nil, utils.NewConflictError("booking %s is already paid", bookingID)
	}

	vendor, err := s.Accounts.GetVendorByID(ctx, booking.VendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load vendor: %w", err)
	}
	if vendor == nil {
		return nil, utils.NewNotFoundError("vendor %s not found", booking.VendorID)
	}
	if vendor.StripeAccountID == "" {
		return nil, utils.NewValidationError("vendor payout destination is not configured")
	}

	user, err := s.Accounts.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil || user.StripeCustomerID == "" || user.DefaultPaymentMethodID == "" {
		return nil, utils.NewValidationError("no default payment method on file")
	}

	commission := booking.TotalAmount * utils.PlatformCommissionRate

	intent, err := s.Gateway.CreateIntent(ctx, CreateIntentInput{
		Amount:             booking.TotalAmount,
		Currency:           utils.DefaultCurrency,
		CustomerID:         user.StripeCustomerID,
		PaymentMethodID:    user.DefaultPaymentMethodID,
		DestinationAccount: vendor.StripeAccountID,
		ApplicationFee:     commission,
		IdempotencyKey:     "intent_" + bookingID,
		Metadata: map[string]string{
			"bookingId": booking.ID,
			"invoice":   booking.InvoiceNumber,
		},
	})
	if err != nil {
		return nil, utils.NewGatewayError("", "failed to create payment intent: %v", err)
	}

	// Two parallel ledger rows, located later through the reference
	// suffix convention. The commission row is written first so a crash
	// can never leave a charge without its fee record.
	commissionTx := &models.PaymentTransaction{
		ID:        uuid.New().String(),
		BookingID: booking.ID,
		UserID:    userID,
		VendorID:  booking.VendorID,
		Type:      models.TransactionTypeCommission,
		Status:    models.TransactionStatusPending,
		Amount:    commission,
		Currency:  utils.DefaultCurrency,
		Reference: intent.ID + models.ReferenceSuffixCommission,
		IntentID:  intent.ID,
	}
	if err := s.Ledger.Insert(ctx, commissionTx); err != nil {
		return nil, fmt.Errorf("failed to record commission row: %w", err)
	}

	bookingTx := &models.PaymentTransaction{
		ID:        uuid.New().String(),
		BookingID: booking.ID,
		UserID:    userID,
		VendorID:  booking.VendorID,
		Type:      models.TransactionTypeBooking,
		Status:    models.TransactionStatusPending,
		Amount:    booking.TotalAmount,
		Currency:  utils.DefaultCurrency,
		Reference: intent.ID + models.ReferenceSuffixBooking,
		IntentID:  intent.ID,
		FlowState: models.FlowStateCreated,
	}
	if err := s.Ledger.Insert(ctx, bookingTx); err != nil {
		return nil, fmt.Errorf("failed to record booking row: %w", err)
	}

	if err := s.Bookings.SetPaymentReference(ctx, booking.ID, intent.ID); err != nil {
		return nil, fmt.Errorf("failed to attach intent to booking: %w", err)
	}

	s.scheduleReconcile(models.ReconcilePayload{IntentID: intent.ID, BookingID: booking.ID})

	s.Logger.Info("payment intent created",
		zap.String("bookingId", booking.ID),
		zap.String("intentId", intent.ID),
		zap.Float64("amount", booking.TotalAmount),
		zap.Float64("commission", commission))

	return &IntentResponse{
		IntentID:   intent.ID,
		Status:     intent.Status,
		Amount:     booking.TotalAmount,
		Commission: commission,
		Currency:   utils.DefaultCurrency,
	}, nil
}

// scheduleReconcile enqueues the delayed sweep that repairs flows
// interrupted between gateway calls and local writes.
func (s *DefaultPaymentService) scheduleReconcile(payload models.ReconcilePayload) {
	if s.Queue == nil {
		return
	}
	task, opts, err := tasks.NewReconcileTask(payload, utils.ReconcileDelay)
	if err != nil {
		s.Logger.Warn("failed to build reconcile task", zap.Error(err))
		return
	}
	if _, err := s.Queue.Enqueue(task, opts...); err != nil {
		s.Logger.Warn("failed to enqueue reconcile task",
			zap.String("intentId", payload.IntentID),
			zap.Error(err))
	}
}
