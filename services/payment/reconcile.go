package payment

import (
	"context"
	"fmt"

	"tripnest/models"

	"go.uber.org/zap"
)

// Reconcile re-reads gateway state for an intent and repairs the local
// mirror. It resumes flows interrupted between the gateway round trip
// and the local writes; an intent the gateway settled but the ledger
// still shows pending is finalized exactly as a confirmation would.
func (s *DefaultPaymentService) Reconcile(ctx context.Context, payload models.ReconcilePayload) error {
	reference := payload.IntentID + models.ReferenceSuffixBooking
	row, err := s.Ledger.GetByReference(ctx, reference)
	if err != nil {
		return fmt.Errorf("failed to load ledger row: %w", err)
	}
	if row == nil {
		// Intent exists at the gateway with no local record: the crash
		// window between intent creation and ledger write. Surfaced for
		// operator attention; funds were never captured.
		s.Logger.Error("orphaned gateway intent",
			zap.String("intentId", payload.IntentID),
			zap.String("bookingId", payload.BookingID))
		return nil
	}

	switch row.Status {
	case models.TransactionStatusSucceeded:
		if row.FlowState != models.FlowStateReconciled {
			if err := s.Ledger.SetFlowState(ctx, reference, models.FlowStateReconciled); err != nil {
				return fmt.Errorf("failed to mark flow reconciled: %w", err)
			}
		}
		return nil

	case models.TransactionStatusPending:
		intent, err := s.Gateway.GetIntent(ctx, payload.IntentID)
		if err != nil {
			return fmt.Errorf("failed to retrieve intent %s: %w", payload.IntentID, err)
		}
		if intent.Status != IntentStatusSucceeded {
			s.Logger.Info("intent still unsettled at gateway",
				zap.String("intentId", payload.IntentID),
				zap.String("gatewayStatus", intent.Status))
			return nil
		}
		if _, err := s.finalizeCapture(ctx, row, intent); err != nil {
			return err
		}
		if err := s.Ledger.SetFlowState(ctx, reference, models.FlowStateReconciled); err != nil {
			return fmt.Errorf("failed to mark flow reconciled: %w", err)
		}
		return nil
	}

	return nil
}
