package payment

import (
	"context"
	"fmt"

	"tripnest/models"
	"tripnest/utils"

	"go.uber.org/zap"
)

// ConfirmPayment drives an existing intent through confirm and capture.
// Re-confirming an already-settled intent is a no-op; the wallet is
// credited at most once per capture.
func (s *DefaultPaymentService) ConfirmPayment(ctx context.Context, userID, intentID, paymentMethodID string) (*ConfirmResult, error) {
	reference := intentID + models.ReferenceSuffixBooking
	row, err := s.Ledger.GetByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger row: %w", err)
	}
	if row == nil || row.UserID != userID {
		return nil, utils.NewNotFoundError("payment %s not found", intentID)
	}

	// Idempotent short-circuit: the settled row already paid the wallet.
	if row.Status == models.TransactionStatusSucceeded {
		return &ConfirmResult{
			IntentID:       intentID,
			Status:         IntentStatusSucceeded,
			PaidAmount:     row.Amount,
			AlreadySettled: true,
		}, nil
	}

	intent, err := s.Gateway.GetIntent(ctx, intentID)
	if err != nil {
		return nil, utils.NewGatewayError("", "failed to retrieve payment intent: %v", err)
	}

	if intent.Status == IntentStatusRequiresPaymentMethod {
		intent, err = s.Gateway.ConfirmIntent(ctx, intentID, paymentMethodID)
		if err != nil {
			return nil, utils.NewGatewayError("", "failed to confirm payment intent: %v", err)
		}
		if err := s.Ledger.SetFlowState(ctx, reference, models.FlowStateConfirmed); err != nil {
			s.Logger.Warn("failed to record confirmed flow state", zap.String("reference", reference), zap.Error(err))
		}
	}

	if intent.Status == IntentStatusRequiresCapture {
		intent, err = s.Gateway.CaptureIntent(ctx, intentID, reference+"_capture")
		if err != nil {
			return nil, utils.NewGatewayError("", "failed to capture payment intent: %v", err)
		}
		if err := s.Ledger.SetFlowState(ctx, reference, models.FlowStateCaptured); err != nil {
			s.Logger.Warn("failed to record captured flow state", zap.String("reference", reference), zap.Error(err))
		}
	}

	// The gateway's reported status is authoritative. Anything other
	// than succeeded is a terminal failure carrying the literal status.
	if intent.Status != IntentStatusSucceeded {
		return nil, utils.NewGatewayError(intent.Status, "payment was not completed")
	}

	settled, err := s.finalizeCapture(ctx, row, intent)
	if err != nil {
		return nil, err
	}

	return &ConfirmResult{
		IntentID:       intentID,
		Status:         IntentStatusSucceeded,
		PaidAmount:     row.Amount,
		AlreadySettled: !settled,
	}, nil
}

// finalizeCapture settles the ledger rows, marks the booking paid and
// credits the vendor wallet. The pending-to-succeeded transition is the
// idempotency gate: only the caller that wins it applies the credit.
// It reports whether this call performed the settlement.
func (s *DefaultPaymentService) finalizeCapture(ctx context.Context, row *models.PaymentTransaction, intent *Intent) (bool, error) {
	won, err := s.Ledger.TransitionStatus(ctx, row.Reference,
		models.TransactionStatusPending, models.TransactionStatusSucceeded)
	if err != nil {
		return false, fmt.Errorf("failed to settle booking row: %w", err)
	}
	if !won {
		return false, nil
	}

	commissionRef := row.IntentID + models.ReferenceSuffixCommission
	if _, err := s.Ledger.TransitionStatus(ctx, commissionRef,
		models.TransactionStatusPending, models.TransactionStatusSucceeded); err != nil {
		return false, fmt.Errorf("failed to settle commission row: %w", err)
	}

	if err := s.Bookings.MarkPaid(ctx, row.BookingID, row.Amount, intent.Currency, row.IntentID); err != nil {
		return false, fmt.Errorf("failed to mark booking paid: %w", err)
	}

	if err := s.creditCapture(ctx, row.VendorID, row.Amount); err != nil {
		return false, err
	}

	s.Logger.Info("payment captured",
		zap.String("bookingId", row.BookingID),
		zap.String("intentId", row.IntentID),
		zap.Float64("amount", row.Amount))

	s.Notifier.Dispatch(models.NotificationPayload{
		Target: "user",
		ID:     row.UserID,
		Title:  "Payment received",
		Body:   fmt.Sprintf("Your payment of %.2f was received.", row.Amount),
		Data:   map[string]string{"bookingId": row.BookingID},
	})

	return true, nil
}

// GetPaymentStatus reports a booking's payment state to its owner.
func (s *DefaultPaymentService) GetPaymentStatus(ctx context.Context, userID, bookingID string) (*StatusResponse, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if booking == nil || booking.UserID != userID {
		return nil, utils.NewNotFoundError("booking %s not found", bookingID)
	}

	resp := &StatusResponse{
		BookingID:     booking.ID,
		PaymentStatus: booking.PaymentStatus,
	}

	row, err := s.Ledger.GetByBookingAndType(ctx, bookingID, models.TransactionTypeBooking)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger row: %w", err)
	}
	if row != nil {
		resp.LedgerStatus = row.Status
		resp.FlowState = row.FlowState
		resp.Reference = row.Reference
	}
	return resp, nil
}
