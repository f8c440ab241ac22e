package payment

import (
	"context"
	"errors"
	"testing"

	"tripnest/models"
	"tripnest/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// settledFixture runs a booking through intent and capture so refund
// tests start from a paid state.
func settledFixture(t *testing.T) (*paymentFixture, string) {
	t.Helper()
	fx := newPaymentFixture()
	resp, err := fx.svc.CreateIntent(context.Background(), "user-1", "bk-1")
	require.NoError(t, err)
	_, err = fx.svc.ConfirmPayment(context.Background(), "user-1", resp.IntentID, "pm_1")
	require.NoError(t, err)
	return fx, resp.IntentID
}

func TestRequestRefundBeforePayment(t *testing.T) {
	fx := newPaymentFixture()

	_, err := fx.svc.RequestRefund(context.Background(), "user-1", "bk-1", "changed plans")
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.ErrKindValidation))
	assert.Contains(t, err.Error(), "payment not confirmed")

	// No ledger row was written for the rejected request.
	row, err := fx.ledger.GetByBookingAndType(context.Background(), "bk-1", models.TransactionTypeRefund)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestRequestRefund(t *testing.T) {
	fx, intentID := settledFixture(t)

	tx, err := fx.svc.RequestRefund(context.Background(), "user-1", "bk-1", "changed plans")
	require.NoError(t, err)

	assert.Equal(t, models.TransactionTypeRefund, tx.Type)
	assert.Equal(t, models.TransactionStatusPending, tx.Status)
	assert.Equal(t, intentID+models.ReferenceSuffixRefund, tx.Reference)
	// Refund amount is the first item's line total.
	assert.InDelta(t, 200, tx.Amount, 1e-9)

	detail, err := fx.ledger.GetRefundDetail(context.Background(), tx.Reference)
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, "changed plans", detail.Reason)
	assert.False(t, detail.RequestedAt.IsZero())
}

func TestRequestRefundDuplicate(t *testing.T) {
	fx, _ := settledFixture(t)

	_, err := fx.svc.RequestRefund(context.Background(), "user-1", "bk-1", "changed plans")
	require.NoError(t, err)

	_, err = fx.svc.RequestRefund(context.Background(), "user-1", "bk-1", "still want out")
	assert.True(t, utils.IsKind(err, utils.ErrKindConflict))
}

func TestRequestRefundWrongOwner(t *testing.T) {
	fx, _ := settledFixture(t)

	_, err := fx.svc.RequestRefund(context.Background(), "user-other", "bk-1", "not mine")
	assert.True(t, utils.IsKind(err, utils.ErrKindNotFound))
}

func TestApproveRefund(t *testing.T) {
	fx, _ := settledFixture(t)
	tx, err := fx.svc.RequestRefund(context.Background(), "user-1", "bk-1", "changed plans")
	require.NoError(t, err)

	require.NoError(t, fx.svc.ApproveRefund(context.Background(), tx.Reference))

	assert.Equal(t, models.TransactionStatusApproved, fx.ledger.status(tx.Reference))

	detail, err := fx.ledger.GetRefundDetail(context.Background(), tx.Reference)
	require.NoError(t, err)
	assert.NotNil(t, detail.CompletedAt)
	assert.NotEmpty(t, detail.GatewayRefundID)

	w, err := fx.wallets.Get(context.Background(), "vendor-1")
	require.NoError(t, err)
	assert.InDelta(t, 200, w.TotalRefunds, 1e-9)
	assert.InDelta(t, 168.3-200, w.Balance, 1e-9)
}

func TestApproveRefundTwice(t *testing.T) {
	fx, _ := settledFixture(t)
	tx, err := fx.svc.RequestRefund(context.Background(), "user-1", "bk-1", "changed plans")
	require.NoError(t, err)

	require.NoError(t, fx.svc.ApproveRefund(context.Background(), tx.Reference))

	err = fx.svc.ApproveRefund(context.Background(), tx.Reference)
	assert.True(t, utils.IsKind(err, utils.ErrKindConflict))

	// The gateway refund ran exactly once.
	assert.Equal(t, 1, fx.gateway.refundCalls)
	w, err := fx.wallets.Get(context.Background(), "vendor-1")
	require.NoError(t, err)
	assert.InDelta(t, 200, w.TotalRefunds, 1e-9)
}

func TestApproveRefundResumesAfterWalletFailure(t *testing.T) {
	fx, _ := settledFixture(t)
	tx, err := fx.svc.RequestRefund(context.Background(), "user-1", "bk-1", "changed plans")
	require.NoError(t, err)

	fx.wallets.refundErr = errors.New("wallet store unavailable")

	err = fx.svc.ApproveRefund(context.Background(), tx.Reference)
	require.Error(t, err)
	assert.False(t, utils.IsKind(err, utils.ErrKindConflict))

	// The row reopened so the approval can be retried.
	assert.Equal(t, models.TransactionStatusProcessing, fx.ledger.status(tx.Reference))
	w, err := fx.wallets.Get(context.Background(), "vendor-1")
	require.NoError(t, err)
	assert.InDelta(t, 0, w.TotalRefunds, 1e-9)

	// The retry finishes the debit without refunding twice.
	require.NoError(t, fx.svc.ApproveRefund(context.Background(), tx.Reference))
	assert.Equal(t, 1, fx.gateway.refundCalls)
	assert.Equal(t, models.TransactionStatusApproved, fx.ledger.status(tx.Reference))

	w, err = fx.wallets.Get(context.Background(), "vendor-1")
	require.NoError(t, err)
	assert.InDelta(t, 200, w.TotalRefunds, 1e-9)
}

func TestApproveRefundGatewayFailure(t *testing.T) {
	fx, _ := settledFixture(t)
	tx, err := fx.svc.RequestRefund(context.Background(), "user-1", "bk-1", "changed plans")
	require.NoError(t, err)

	fx.gateway.refundErr = errors.New("insufficient funds on account")

	err = fx.svc.ApproveRefund(context.Background(), tx.Reference)
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.ErrKindGateway))
	assert.Equal(t, models.TransactionStatusFailed, fx.ledger.status(tx.Reference))

	// The wallet was never touched.
	w, err := fx.wallets.Get(context.Background(), "vendor-1")
	require.NoError(t, err)
	assert.InDelta(t, 0, w.TotalRefunds, 1e-9)
}

func TestApproveRefundUnknownReference(t *testing.T) {
	fx := newPaymentFixture()

	err := fx.svc.ApproveRefund(context.Background(), "pi_ghost_refund")
	assert.True(t, utils.IsKind(err, utils.ErrKindNotFound))
}

func TestListPendingRefunds(t *testing.T) {
	fx, intentID := settledFixture(t)
	_, err := fx.svc.RequestRefund(context.Background(), "user-1", "bk-1", "changed plans")
	require.NoError(t, err)

	rows, err := fx.svc.ListPendingRefunds(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, intentID+models.ReferenceSuffixRefund, rows[0].Reference)

	require.NoError(t, fx.svc.ApproveRefund(context.Background(), rows[0].Reference))

	rows, err = fx.svc.ListPendingRefunds(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGetWalletForUnknownVendor(t *testing.T) {
	fx := newPaymentFixture()

	w, err := fx.svc.GetWallet(context.Background(), "vendor-new")
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.InDelta(t, 0, w.Balance, 1e-9)
}
