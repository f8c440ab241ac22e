package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tripnest/models"
	"tripnest/services/notification"

	"go.uber.org/zap"
)

type fakeLedger struct {
	mu      sync.Mutex
	rows    map[string]*models.PaymentTransaction
	details map[string]*models.RefundTransaction
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		rows:    make(map[string]*models.PaymentTransaction),
		details: make(map[string]*models.RefundTransaction),
	}
}

func (f *fakeLedger) Insert(_ context.Context, tx *models.PaymentTransaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.rows[tx.Reference]; exists {
		return fmt.Errorf("duplicate reference %s", tx.Reference)
	}
	stored := *tx
	f.rows[tx.Reference] = &stored
	return nil
}

func (f *fakeLedger) GetByReference(_ context.Context, reference string) (*models.PaymentTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[reference]
	if !ok {
		return nil, nil
	}
	out := *row
	return &out, nil
}

func (f *fakeLedger) GetByBookingAndType(_ context.Context, bookingID, txType string) (*models.PaymentTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.BookingID == bookingID && row.Type == txType {
			out := *row
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeLedger) TransitionStatus(_ context.Context, reference, from, to string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[reference]
	if !ok || row.Status != from {
		return false, nil
	}
	row.Status = to
	return true, nil
}

func (f *fakeLedger) SetFlowState(_ context.Context, reference, state string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row, ok := f.rows[reference]; ok {
		row.FlowState = state
	}
	return nil
}

func (f *fakeLedger) ListPendingByType(_ context.Context, txType string) ([]models.PaymentTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PaymentTransaction
	for _, row := range f.rows {
		if row.Type == txType && row.Status == models.TransactionStatusPending {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeLedger) InsertRefundDetail(_ context.Context, d *models.RefundTransaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *d
	f.details[d.Reference] = &stored
	return nil
}

func (f *fakeLedger) GetRefundDetail(_ context.Context, reference string) (*models.RefundTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.details[reference]
	if !ok {
		return nil, nil
	}
	out := *d
	return &out, nil
}

func (f *fakeLedger) MarkRefundProcessing(_ context.Context, reference string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.details[reference]; ok {
		now := time.Now()
		d.ProcessingAt = &now
	}
	return nil
}

func (f *fakeLedger) MarkRefundCompleted(_ context.Context, reference, gatewayRefundID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.details[reference]; ok {
		now := time.Now()
		d.CompletedAt = &now
		d.GatewayRefundID = gatewayRefundID
	}
	return nil
}

// status returns the current status of a ledger row, or "" when absent.
func (f *fakeLedger) status(reference string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row, ok := f.rows[reference]; ok {
		return row.Status
	}
	return ""
}

func (f *fakeLedger) flowState(reference string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row, ok := f.rows[reference]; ok {
		return row.FlowState
	}
	return ""
}

type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newFakeBookingStore(seed ...*models.Booking) *fakeBookingStore {
	f := &fakeBookingStore{bookings: make(map[string]*models.Booking)}
	for _, b := range seed {
		stored := *b
		f.bookings[b.ID] = &stored
	}
	return f
}

func (f *fakeBookingStore) CreateGraph(_ context.Context, b *models.Booking, finalize func(int) (string, float64)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b.InvoiceNumber, b.TotalAmount = finalize(1)
	stored := *b
	f.bookings[b.ID] = &stored
	return nil
}

func (f *fakeBookingStore) GetByID(_ context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	out := *b
	return &out, nil
}

func (f *fakeBookingStore) ListByUser(_ context.Context, userID string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) UpdateStatus(_ context.Context, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.bookings[id]; ok {
		b.Status = status
	}
	return nil
}

func (f *fakeBookingStore) SetPaymentReference(_ context.Context, id, reference string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.bookings[id]; ok {
		b.PaymentReference = reference
	}
	return nil
}

func (f *fakeBookingStore) MarkPaid(_ context.Context, id string, amount float64, currency, reference string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.bookings[id]; ok {
		b.PaymentStatus = models.PaymentStatusPaid
		b.PaidAmount = amount
		b.PaidCurrency = currency
		b.PaymentReference = reference
	}
	return nil
}

func (f *fakeBookingStore) SoftDelete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.bookings, id)
	return nil
}

type fakeWalletStore struct {
	mu      sync.Mutex
	wallets map[string]*models.VendorWallet

	// refundErr fails the next ApplyRefund once, then clears.
	refundErr error
}

func newFakeWalletStore() *fakeWalletStore {
	return &fakeWalletStore{wallets: make(map[string]*models.VendorWallet)}
}

func (f *fakeWalletStore) wallet(vendorID string) *models.VendorWallet {
	w, ok := f.wallets[vendorID]
	if !ok {
		w = &models.VendorWallet{VendorID: vendorID}
		f.wallets[vendorID] = w
	}
	return w
}

func (f *fakeWalletStore) Credit(_ context.Context, vendorID string, amount float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w := f.wallet(vendorID)
	w.Balance += amount
	w.TotalEarnings += amount
	return nil
}

func (f *fakeWalletStore) ApplyRefund(_ context.Context, vendorID string, amount float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.refundErr != nil {
		err := f.refundErr
		f.refundErr = nil
		return err
	}
	w := f.wallet(vendorID)
	w.Balance -= amount
	w.TotalRefunds += amount
	return nil
}

func (f *fakeWalletStore) ApplyWithdrawal(_ context.Context, vendorID string, amount float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w := f.wallet(vendorID)
	w.Balance -= amount
	w.TotalWithdrawals += amount
	return nil
}

func (f *fakeWalletStore) Get(_ context.Context, vendorID string) (*models.VendorWallet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := *f.wallet(vendorID)
	return &out, nil
}

type fakeAccountStore struct {
	users   map[string]*models.User
	vendors map[string]*models.Vendor
}

func (f *fakeAccountStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeAccountStore) GetVendorByID(_ context.Context, id string) (*models.Vendor, error) {
	return f.vendors[id], nil
}

// fakeGateway scripts intent lifecycles in memory. A created intent
// starts at requires_payment_method; confirm moves it to
// requires_capture and capture applies captureStatus.
type fakeGateway struct {
	mu             sync.Mutex
	intents        map[string]*Intent
	captureStatus  string
	confirmCalls   int
	captureCalls   int
	refundCalls    int
	lastCaptureKey string
	refundErr      error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		intents:       make(map[string]*Intent),
		captureStatus: IntentStatusSucceeded,
	}
}

func (g *fakeGateway) CreateIntent(_ context.Context, in CreateIntentInput) (*Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := fmt.Sprintf("pi_%d", len(g.intents)+1)
	it := &Intent{ID: id, Status: IntentStatusRequiresPaymentMethod, Amount: in.Amount, Currency: in.Currency}
	g.intents[id] = it
	out := *it
	return &out, nil
}

func (g *fakeGateway) ConfirmIntent(_ context.Context, intentID, _ string) (*Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	it, ok := g.intents[intentID]
	if !ok {
		return nil, errors.New("no such intent")
	}
	g.confirmCalls++
	it.Status = IntentStatusRequiresCapture
	out := *it
	return &out, nil
}

func (g *fakeGateway) CaptureIntent(_ context.Context, intentID, idempotencyKey string) (*Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	it, ok := g.intents[intentID]
	if !ok {
		return nil, errors.New("no such intent")
	}
	g.captureCalls++
	g.lastCaptureKey = idempotencyKey
	it.Status = g.captureStatus
	out := *it
	return &out, nil
}

func (g *fakeGateway) GetIntent(_ context.Context, intentID string) (*Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	it, ok := g.intents[intentID]
	if !ok {
		return nil, errors.New("no such intent")
	}
	out := *it
	return &out, nil
}

func (g *fakeGateway) CreateRefund(_ context.Context, intentID string, _ float64) (*RefundResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.refundErr != nil {
		return nil, g.refundErr
	}
	g.refundCalls++
	return &RefundResult{ID: "re_" + intentID, Status: "succeeded"}, nil
}

func (g *fakeGateway) setIntentStatus(intentID, status string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if it, ok := g.intents[intentID]; ok {
		it.Status = status
	}
}

// paymentFixture bundles the service with its fakes so tests can poke
// at stored state directly.
type paymentFixture struct {
	svc      *DefaultPaymentService
	ledger   *fakeLedger
	bookings *fakeBookingStore
	wallets  *fakeWalletStore
	gateway  *fakeGateway
}

func seedBooking() *models.Booking {
	return &models.Booking{
		ID:            "bk-1",
		InvoiceNumber: "INV-20250601-0001",
		UserID:        "user-1",
		VendorID:      "vendor-1",
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		TotalAmount:   198,
		Items: []models.BookingItem{
			{ID: "item-1", PackageID: "pkg-1", Price: 200, Quantity: 1},
		},
	}
}

func newPaymentFixture() *paymentFixture {
	ledger := newFakeLedger()
	bookings := newFakeBookingStore(seedBooking())
	wallets := newFakeWalletStore()
	gateway := newFakeGateway()

	svc := &DefaultPaymentService{
		Bookings: bookings,
		Ledger:   ledger,
		Wallets:  wallets,
		Accounts: &fakeAccountStore{
			users: map[string]*models.User{
				"user-1": {
					ID:                     "user-1",
					Active:                 true,
					StripeCustomerID:       "cus_1",
					DefaultPaymentMethodID: "pm_1",
				},
				"user-nocard": {ID: "user-nocard", Active: true, StripeCustomerID: "cus_2"},
			},
			vendors: map[string]*models.Vendor{
				"vendor-1": {ID: "vendor-1", Active: true, StripeAccountID: "acct_1"},
			},
		},
		Gateway:  gateway,
		Notifier: notification.NopService{},
		Logger:   zap.NewNop(),
	}

	return &paymentFixture{svc: svc, ledger: ledger, bookings: bookings, wallets: wallets, gateway: gateway}
}
