package paymentRepo

import (
	"context"

	"tripnest/models"
)

// PaymentRepository owns the append-only ledger and refund details.
// Status transitions go through compare-and-set updates so a retried
// request cannot apply the same movement twice.
type PaymentRepository interface {
	Insert(ctx context.Context, tx *models.PaymentTransaction) error
	GetByReference(ctx context.Context, reference string) (*models.PaymentTransaction, error)
	// GetByBookingAndType returns the newest row of the given type for a
	// booking, or nil when none exists.
	GetByBookingAndType(ctx context.Context, bookingID, txType string) (*models.PaymentTransaction, error)
	// TransitionStatus flips reference's row from one status to another.
	// It reports false when the row was not in the expected status, which
	// callers treat as "already handled".
	TransitionStatus(ctx context.Context, reference, from, to string) (bool, error)
	SetFlowState(ctx context.Context, reference, state string) error
	ListPendingByType(ctx context.Context, txType string) ([]models.PaymentTransaction, error)

	InsertRefundDetail(ctx context.Context, d *models.RefundTransaction) error
	GetRefundDetail(ctx context.Context, reference string) (*models.RefundTransaction, error)
	MarkRefundProcessing(ctx context.Context, reference string) error
	MarkRefundCompleted(ctx context.Context, reference, gatewayRefundID string) error
}
