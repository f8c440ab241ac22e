package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Intent statuses mirrored from the gateway. The gateway's status field
// is the source of truth for money movement; these are never inferred
// locally.
const (
	IntentStatusRequiresPaymentMethod = string(stripe.PaymentIntentStatusRequiresPaymentMethod)
	IntentStatusRequiresCapture       = string(stripe.PaymentIntentStatusRequiresCapture)
	IntentStatusSucceeded             = string(stripe.PaymentIntentStatusSucceeded)
)

// Intent is the engine's view of a gateway payment intent.
type Intent struct {
	ID       string
	Status   string
	Amount   float64
	Currency string
}

// RefundResult is the engine's view of a gateway refund.
type RefundResult struct {
	ID     string
	Status string
}

// CreateIntentInput carries everything needed to open a split payment:
// the full charge plus the platform's cut routed off the vendor payout.
type CreateIntentInput struct {
	Amount             float64
	Currency           string
	CustomerID         string
	PaymentMethodID    string
	DestinationAccount string
	ApplicationFee     float64
	Metadata           map[string]string
	IdempotencyKey     string
}

// Gateway abstracts the payment provider so services can be exercised
// against a fake in tests.
type Gateway interface {
	CreateIntent(ctx context.Context, in CreateIntentInput) (*Intent, error)
	ConfirmIntent(ctx context.Context, intentID, paymentMethodID string) (*Intent, error)
	CaptureIntent(ctx context.Context, intentID, idempotencyKey string) (*Intent, error)
	GetIntent(ctx context.Context, intentID string) (*Intent, error)
	CreateRefund(ctx context.Context, intentID string, amount float64) (*RefundResult, error)
}

// StripeGateway implements Gateway on the Stripe API.
type StripeGateway struct {
	api *client.API
}

// NewStripeGateway builds a gateway bound to the given secret key.
func NewStripeGateway(key string) *StripeGateway {
	api := &client.API{}
	api.Init(key, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, in CreateIntentInput) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:               stripe.Int64(toMinorUnits(in.Amount)),
		Currency:             stripe.String(in.Currency),
		Customer:             stripe.String(in.CustomerID),
		PaymentMethod:        stripe.String(in.PaymentMethodID),
		CaptureMethod:        stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
		ApplicationFeeAmount: stripe.Int64(toMinorUnits(in.ApplicationFee)),
		TransferData: &stripe.PaymentIntentTransferDataParams{
			Destination: stripe.String(in.DestinationAccount),
		},
	}
	params.Context = ctx
	if in.IdempotencyKey != "" {
		params.SetIdempotencyKey(in.IdempotencyKey)
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("gateway create intent failed: %w", err)
	}
	return fromStripeIntent(pi), nil
}

func (g *StripeGateway) ConfirmIntent(ctx context.Context, intentID, paymentMethodID string) (*Intent, error) {
	params := &stripe.PaymentIntentConfirmParams{}
	params.Context = ctx
	if paymentMethodID != "" {
		params.PaymentMethod = stripe.String(paymentMethodID)
	}

	pi, err := g.api.PaymentIntents.Confirm(intentID, params)
	if err != nil {
		return nil, fmt.Errorf("gateway confirm intent %s failed: %w", intentID, err)
	}
	return fromStripeIntent(pi), nil
}

func (g *StripeGateway) CaptureIntent(ctx context.Context, intentID, idempotencyKey string) (*Intent, error) {
	params := &stripe.PaymentIntentCaptureParams{}
	params.Context = ctx
	if idempotencyKey != "" {
		params.SetIdempotencyKey(idempotencyKey)
	}

	pi, err := g.api.PaymentIntents.Capture(intentID, params)
	if err != nil {
		return nil, fmt.Errorf("gateway capture intent %s failed: %w", intentID, err)
	}
	return fromStripeIntent(pi), nil
}

func (g *StripeGateway) GetIntent(ctx context.Context, intentID string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Get(intentID, params)
	if err != nil {
		return nil, fmt.Errorf("gateway retrieve intent %s failed: %w", intentID, err)
	}
	return fromStripeIntent(pi), nil
}

func (g *StripeGateway) CreateRefund(ctx context.Context, intentID string, amount float64) (*RefundResult, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(intentID),
		Amount:        stripe.Int64(toMinorUnits(amount)),
	}
	params.Context = ctx

	ref, err := g.api.Refunds.New(params)
	if err != nil {
		return nil, fmt.Errorf("gateway refund for intent %s failed: %w", intentID, err)
	}
	return &RefundResult{ID: ref.ID, Status: string(ref.Status)}, nil
}

func fromStripeIntent(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:       pi.ID,
		Status:   string(pi.Status),
		Amount:   fromMinorUnits(pi.Amount),
		Currency: string(pi.Currency),
	}
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromMinorUnits(amount int64) float64 {
	return float64(amount) / 100
}
