package payment

import (
	"context"

	bookingRepo "tripnest/database/repository/booking"
	paymentRepo "tripnest/database/repository/payment"
	userRepo "tripnest/database/repository/user"
	walletRepo "tripnest/database/repository/wallet"
	"tripnest/models"
	"tripnest/services/notification"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// IntentResponse is returned when a payment intent is opened.
type IntentResponse struct {
	IntentID   string  `json:"intentId"`
	Status     string  `json:"status"`
	Amount     float64 `json:"amount"`
	Commission float64 `json:"commission"`
	Currency   string  `json:"currency"`
}

// ConfirmResult reports the outcome of a confirmation request.
type ConfirmResult struct {
	IntentID       string  `json:"intentId"`
	Status         string  `json:"status"`
	PaidAmount     float64 `json:"paidAmount"`
	AlreadySettled bool    `json:"alreadySettled,omitempty"`
}

// StatusResponse reports a booking's payment state.
type StatusResponse struct {
	BookingID     string `json:"bookingId"`
	PaymentStatus string `json:"paymentStatus"`
	LedgerStatus  string `json:"ledgerStatus,omitempty"`
	FlowState     string `json:"flowState,omitempty"`
	Reference     string `json:"reference,omitempty"`
}

// PaymentService drives the gateway orchestration, the ledger and the
// vendor wallet.
type PaymentService interface {
	CreateIntent(ctx context.Context, userID, bookingID string) (*IntentResponse, error)
	ConfirmPayment(ctx context.Context, userID, intentID, paymentMethodID string) (*ConfirmResult, error)
	GetPaymentStatus(ctx context.Context, userID, bookingID string) (*StatusResponse, error)
	RequestRefund(ctx context.Context, userID, bookingID, reason string) (*models.PaymentTransaction, error)
	ApproveRefund(ctx context.Context, reference string) error
	ListPendingRefunds(ctx context.Context) ([]models.PaymentTransaction, error)
	GetWallet(ctx context.Context, vendorID string) (*models.VendorWallet, error)
	Reconcile(ctx context.Context, payload models.ReconcilePayload) error
}

// TaskEnqueuer is the slice of asynq.Client the service needs;
// kept small so tests can fake it.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// DefaultPaymentService implements PaymentService.
type DefaultPaymentService struct {
	Bookings bookingRepo.BookingRepository
	Ledger   paymentRepo.PaymentRepository
	Wallets  walletRepo.WalletRepository
	Accounts userRepo.UserRepository
	Gateway  Gateway
	Notifier notification.Service
	Queue    TaskEnqueuer
	Logger   *zap.Logger
}
