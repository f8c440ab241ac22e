package payment

import (
	"context"
	"fmt"
	"time"

	"tripnest/models"
	"tripnest/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestRefund records a guest-initiated refund request as a pending
// ledger row. No money moves here; an admin approval executes the
// gateway refund later.
func (s *DefaultPaymentService) RequestRefund(ctx context.Context, userID, bookingID, reason string) (*models.PaymentTransaction, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if booking == nil || booking.UserID != userID {
		return nil, utils.NewNotFoundError("booking %s not found", bookingID)
	}

	bookingTx, err := s.Ledger.GetByBookingAndType(ctx, bookingID, models.TransactionTypeBooking)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger row: %w", err)
	}
	if bookingTx == nil || bookingTx.Status != models.TransactionStatusSucceeded {
		return nil, utils.NewValidationError("payment not confirmed for this booking")
	}

	existing, err := s.Ledger.GetByBookingAndType(ctx, bookingID, models.TransactionTypeRefund)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing refunds: %w", err)
	}
	if existing != nil {
		return nil, utils.NewConflictError("a refund was already requested for this booking")
	}

	if len(booking.Items) == 0 {
		return nil, utils.NewValidationError("booking has no refundable items")
	}
	first := booking.Items[0]
	amount := first.Price * float64(first.Quantity)

	refundTx := &models.PaymentTransaction{
		ID:        uuid.New().String(),
		BookingID: booking.ID,
		UserID:    userID,
		VendorID:  booking.VendorID,
		Type:      models.TransactionTypeRefund,
		Status:    models.TransactionStatusPending,
		Amount:    amount,
		Currency:  bookingTx.Currency,
		Reference: bookingTx.IntentID + models.ReferenceSuffixRefund,
		IntentID:  bookingTx.IntentID,
	}
	if err := s.Ledger.Insert(ctx, refundTx); err != nil {
		return nil, fmt.Errorf("failed to record refund request: %w", err)
	}

	detail := &models.RefundTransaction{
		ID:          uuid.New().String(),
		Reference:   refundTx.Reference,
		BookingID:   booking.ID,
		Reason:      reason,
		RequestedAt: time.Now(),
	}
	if err := s.Ledger.InsertRefundDetail(ctx, detail); err != nil {
		return nil, fmt.Errorf("failed to record refund detail: %w", err)
	}

	s.Logger.Info("refund requested",
		zap.String("bookingId", booking.ID),
		zap.String("reference", refundTx.Reference),
		zap.Float64("amount", amount))

	s.Notifier.Dispatch(models.NotificationPayload{
		Target: "vendor",
		ID:     booking.VendorID,
		Title:  "Refund requested",
		Body:   fmt.Sprintf("A refund of %.2f was requested for booking %s.", amount, booking.InvoiceNumber),
		Data:   map[string]string{"bookingId": booking.ID, "reference": refundTx.Reference},
	})

	return refundTx, nil
}

// ApproveRefund is the human-in-the-loop step: it executes the refund
// against the gateway and moves the funds out of the vendor wallet.
// An approval interrupted after the gateway refund ran can be retried;
// the retry resumes from the recorded gateway refund id instead of
// refunding twice.
func (s *DefaultPaymentService) ApproveRefund(ctx context.Context, reference string) error {
	row, err := s.Ledger.GetByReference(ctx, reference)
	if err != nil {
		return fmt.Errorf("failed to load refund row: %w", err)
	}
	if row == nil || row.Type != models.TransactionTypeRefund {
		return utils.NewNotFoundError("refund %s not found", reference)
	}

	claimed, err := s.Ledger.TransitionStatus(ctx, reference,
		models.TransactionStatusPending, models.TransactionStatusProcessing)
	if err != nil {
		return fmt.Errorf("failed to claim refund row: %w", err)
	}

	var gatewayRefundID string
	if claimed {
		if err := s.Ledger.MarkRefundProcessing(ctx, reference); err != nil {
			s.Logger.Warn("failed to stamp refund timeline", zap.String("reference", reference), zap.Error(err))
		}

		result, err := s.Gateway.CreateRefund(ctx, row.IntentID, row.Amount)
		if err != nil {
			if _, terr := s.Ledger.TransitionStatus(ctx, reference,
				models.TransactionStatusProcessing, models.TransactionStatusFailed); terr != nil {
				s.Logger.Error("failed to mark refund failed", zap.String("reference", reference), zap.Error(terr))
			}
			return utils.NewGatewayError("", "gateway refund failed: %v", err)
		}

		// Stamp the gateway id before settling so an interrupted
		// approval is resumable.
		if err := s.Ledger.MarkRefundCompleted(ctx, reference, result.ID); err != nil {
			s.Logger.Warn("failed to stamp refund completion", zap.String("reference", reference), zap.Error(err))
		}
		gatewayRefundID = result.ID
	} else {
		// The row is past pending. Resume only when an earlier attempt
		// already ran the gateway refund and died before the debit.
		detail, err := s.Ledger.GetRefundDetail(ctx, reference)
		if err != nil {
			return fmt.Errorf("failed to load refund detail: %w", err)
		}
		if detail == nil || detail.GatewayRefundID == "" {
			return utils.NewConflictError("refund %s is already being processed", reference)
		}
		gatewayRefundID = detail.GatewayRefundID
	}

	// The processing-to-approved transition gates the wallet debit;
	// only the caller that wins it moves the funds.
	won, err := s.Ledger.TransitionStatus(ctx, reference,
		models.TransactionStatusProcessing, models.TransactionStatusApproved)
	if err != nil {
		return fmt.Errorf("failed to settle refund row: %w", err)
	}
	if !won {
		return utils.NewConflictError("refund %s was already approved", reference)
	}

	if err := s.Wallets.ApplyRefund(ctx, row.VendorID, row.Amount); err != nil {
		// Reopen the row so a retry can finish the debit.
		if _, terr := s.Ledger.TransitionStatus(ctx, reference,
			models.TransactionStatusApproved, models.TransactionStatusProcessing); terr != nil {
			s.Logger.Error("failed to reopen refund row after debit failure",
				zap.String("reference", reference), zap.Error(terr))
		}
		return fmt.Errorf("failed to debit vendor wallet: %w", err)
	}

	s.Logger.Info("refund approved",
		zap.String("reference", reference),
		zap.String("gatewayRefundId", gatewayRefundID),
		zap.Float64("amount", row.Amount))

	s.Notifier.Dispatch(models.NotificationPayload{
		Target: "user",
		ID:     row.UserID,
		Title:  "Refund approved",
		Body:   fmt.Sprintf("Your refund of %.2f was approved.", row.Amount),
		Data:   map[string]string{"bookingId": row.BookingID, "reference": reference},
	})

	return nil
}

// ListPendingRefunds returns refund requests awaiting admin review.
func (s *DefaultPaymentService) ListPendingRefunds(ctx context.Context) ([]models.PaymentTransaction, error) {
	rows, err := s.Ledger.ListPendingByType(ctx, models.TransactionTypeRefund)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending refunds: %w", err)
	}
	return rows, nil
}
