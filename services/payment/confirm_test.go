package payment

import (
	"context"
	"testing"

	"tripnest/models"
	"tripnest/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIntent(t *testing.T) {
	fx := newPaymentFixture()

	resp, err := fx.svc.CreateIntent(context.Background(), "user-1", "bk-1")
	require.NoError(t, err)

	assert.Equal(t, "pi_1", resp.IntentID)
	assert.InDelta(t, 198, resp.Amount, 1e-9)
	assert.InDelta(t, 29.7, resp.Commission, 1e-9)
	assert.Equal(t, utils.DefaultCurrency, resp.Currency)

	bookingRow, err := fx.ledger.GetByReference(context.Background(), "pi_1"+models.ReferenceSuffixBooking)
	require.NoError(t, err)
	require.NotNil(t, bookingRow)
	assert.Equal(t, models.TransactionStatusPending, bookingRow.Status)
	assert.Equal(t, models.FlowStateCreated, bookingRow.FlowState)
	assert.InDelta(t, 198, bookingRow.Amount, 1e-9)

	commissionRow, err := fx.ledger.GetByReference(context.Background(), "pi_1"+models.ReferenceSuffixCommission)
	require.NoError(t, err)
	require.NotNil(t, commissionRow)
	assert.InDelta(t, 29.7, commissionRow.Amount, 1e-9)

	b, err := fx.bookings.GetByID(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, "pi_1", b.PaymentReference)
}

func TestCreateIntentRejections(t *testing.T) {
	t.Run("booking already paid", func(t *testing.T) {
		fx := newPaymentFixture()
		require.NoError(t, fx.bookings.MarkPaid(context.Background(), "bk-1", 198, "usd", "pi_old"))

		_, err := fx.svc.CreateIntent(context.Background(), "user-1", "bk-1")
		assert.True(t, utils.IsKind(err, utils.ErrKindConflict))
	})

	t.Run("booking owned by someone else", func(t *testing.T) {
		fx := newPaymentFixture()

		_, err := fx.svc.CreateIntent(context.Background(), "user-nocard", "bk-1")
		assert.True(t, utils.IsKind(err, utils.ErrKindNotFound))
	})

	t.Run("no default payment method", func(t *testing.T) {
		fx := newPaymentFixture()
		b := seedBooking()
		b.ID = "bk-2"
		b.UserID = "user-nocard"
		require.NoError(t, fx.bookings.CreateGraph(context.Background(), b, func(int) (string, float64) {
			return b.InvoiceNumber, b.TotalAmount
		}))

		_, err := fx.svc.CreateIntent(context.Background(), "user-nocard", "bk-2")
		assert.True(t, utils.IsKind(err, utils.ErrKindValidation))
	})
}

func TestConfirmPaymentFullFlow(t *testing.T) {
	fx := newPaymentFixture()
	resp, err := fx.svc.CreateIntent(context.Background(), "user-1", "bk-1")
	require.NoError(t, err)

	result, err := fx.svc.ConfirmPayment(context.Background(), "user-1", resp.IntentID, "pm_1")
	require.NoError(t, err)

	assert.Equal(t, IntentStatusSucceeded, result.Status)
	assert.False(t, result.AlreadySettled)
	assert.InDelta(t, 198, result.PaidAmount, 1e-9)

	reference := resp.IntentID + models.ReferenceSuffixBooking
	assert.Equal(t, models.TransactionStatusSucceeded, fx.ledger.status(reference))
	assert.Equal(t, models.TransactionStatusSucceeded,
		fx.ledger.status(resp.IntentID+models.ReferenceSuffixCommission))
	assert.Equal(t, models.FlowStateCaptured, fx.ledger.flowState(reference))
	assert.Equal(t, reference+"_capture", fx.gateway.lastCaptureKey)

	b, err := fx.bookings.GetByID(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, b.PaymentStatus)
	assert.InDelta(t, 198, b.PaidAmount, 1e-9)

	// Net earnings: 198 less the 15% platform commission.
	w, err := fx.wallets.Get(context.Background(), "vendor-1")
	require.NoError(t, err)
	assert.InDelta(t, 168.3, w.Balance, 1e-9)
	assert.InDelta(t, 168.3, w.TotalEarnings, 1e-9)
}

func TestConfirmPaymentIdempotent(t *testing.T) {
	fx := newPaymentFixture()
	resp, err := fx.svc.CreateIntent(context.Background(), "user-1", "bk-1")
	require.NoError(t, err)

	first, err := fx.svc.ConfirmPayment(context.Background(), "user-1", resp.IntentID, "pm_1")
	require.NoError(t, err)
	require.False(t, first.AlreadySettled)

	second, err := fx.svc.ConfirmPayment(context.Background(), "user-1", resp.IntentID, "pm_1")
	require.NoError(t, err)
	assert.True(t, second.AlreadySettled)
	assert.Equal(t, IntentStatusSucceeded, second.Status)
	assert.InDelta(t, first.PaidAmount, second.PaidAmount, 1e-9)

	// The wallet was credited exactly once.
	assert.Equal(t, 1, fx.gateway.captureCalls)
	w, err := fx.wallets.Get(context.Background(), "vendor-1")
	require.NoError(t, err)
	assert.InDelta(t, 168.3, w.TotalEarnings, 1e-9)
}

func TestConfirmPaymentGatewayDecline(t *testing.T) {
	fx := newPaymentFixture()
	fx.gateway.captureStatus = "canceled"

	resp, err := fx.svc.CreateIntent(context.Background(), "user-1", "bk-1")
	require.NoError(t, err)

	_, err = fx.svc.ConfirmPayment(context.Background(), "user-1", resp.IntentID, "pm_1")
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.ErrKindGateway))

	var se *utils.ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "canceled", se.GatewayStatus)

	// Nothing settled, nothing credited.
	assert.Equal(t, models.TransactionStatusPending,
		fx.ledger.status(resp.IntentID+models.ReferenceSuffixBooking))
	w, err := fx.wallets.Get(context.Background(), "vendor-1")
	require.NoError(t, err)
	assert.InDelta(t, 0, w.TotalEarnings, 1e-9)
}

func TestConfirmPaymentUnknownIntent(t *testing.T) {
	fx := newPaymentFixture()

	_, err := fx.svc.ConfirmPayment(context.Background(), "user-1", "pi_missing", "pm_1")
	assert.True(t, utils.IsKind(err, utils.ErrKindNotFound))
}

func TestGetPaymentStatus(t *testing.T) {
	fx := newPaymentFixture()
	resp, err := fx.svc.CreateIntent(context.Background(), "user-1", "bk-1")
	require.NoError(t, err)

	status, err := fx.svc.GetPaymentStatus(context.Background(), "user-1", "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, status.PaymentStatus)
	assert.Equal(t, models.TransactionStatusPending, status.LedgerStatus)
	assert.Equal(t, resp.IntentID+models.ReferenceSuffixBooking, status.Reference)

	_, err = fx.svc.GetPaymentStatus(context.Background(), "user-other", "bk-1")
	assert.True(t, utils.IsKind(err, utils.ErrKindNotFound))
}

func TestReconcileSettlesPendingRow(t *testing.T) {
	fx := newPaymentFixture()
	resp, err := fx.svc.CreateIntent(context.Background(), "user-1", "bk-1")
	require.NoError(t, err)

	// The gateway captured but the confirm response never reached us.
	fx.gateway.setIntentStatus(resp.IntentID, IntentStatusSucceeded)

	err = fx.svc.Reconcile(context.Background(), models.ReconcilePayload{
		IntentID:  resp.IntentID,
		BookingID: "bk-1",
	})
	require.NoError(t, err)

	reference := resp.IntentID + models.ReferenceSuffixBooking
	assert.Equal(t, models.TransactionStatusSucceeded, fx.ledger.status(reference))
	assert.Equal(t, models.FlowStateReconciled, fx.ledger.flowState(reference))

	b, err := fx.bookings.GetByID(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, b.PaymentStatus)

	w, err := fx.wallets.Get(context.Background(), "vendor-1")
	require.NoError(t, err)
	assert.InDelta(t, 168.3, w.TotalEarnings, 1e-9)
}

func TestReconcileAfterSettlement(t *testing.T) {
	fx := newPaymentFixture()
	resp, err := fx.svc.CreateIntent(context.Background(), "user-1", "bk-1")
	require.NoError(t, err)
	_, err = fx.svc.ConfirmPayment(context.Background(), "user-1", resp.IntentID, "pm_1")
	require.NoError(t, err)

	err = fx.svc.Reconcile(context.Background(), models.ReconcilePayload{
		IntentID:  resp.IntentID,
		BookingID: "bk-1",
	})
	require.NoError(t, err)

	reference := resp.IntentID + models.ReferenceSuffixBooking
	assert.Equal(t, models.FlowStateReconciled, fx.ledger.flowState(reference))

	// No second credit.
	w, err := fx.wallets.Get(context.Background(), "vendor-1")
	require.NoError(t, err)
	assert.InDelta(t, 168.3, w.TotalEarnings, 1e-9)
}

func TestReconcileOrphanedIntent(t *testing.T) {
	fx := newPaymentFixture()

	err := fx.svc.Reconcile(context.Background(), models.ReconcilePayload{
		IntentID:  "pi_ghost",
		BookingID: "bk-1",
	})
	assert.NoError(t, err)
}

func TestReconcileUnsettledIntent(t *testing.T) {
	fx := newPaymentFixture()
	resp, err := fx.svc.CreateIntent(context.Background(), "user-1", "bk-1")
	require.NoError(t, err)

	err = fx.svc.Reconcile(context.Background(), models.ReconcilePayload{
		IntentID:  resp.IntentID,
		BookingID: "bk-1",
	})
	require.NoError(t, err)

	// Still pending; the next sweep or an explicit confirm resolves it.
	assert.Equal(t, models.TransactionStatusPending,
		fx.ledger.status(resp.IntentID+models.ReferenceSuffixBooking))
}
