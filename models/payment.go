package models

import "time"

// Ledger row types.
const (
	TransactionTypeBooking    = "booking"
	TransactionTypeCommission = "commission"
	TransactionTypeRefund     = "refund"
	TransactionTypeWithdraw   = "withdraw"
)

// Ledger row statuses. Transitions only move forward; a row is never
// re-created for the same reference.
const (
	TransactionStatusPending    = "pending"
	TransactionStatusProcessing = "processing"
	TransactionStatusSucceeded  = "succeeded"
	TransactionStatusApproved   = "approved"
	TransactionStatusFailed     = "failed"
)

// Flow states for the gateway orchestration attached to a booking-type
// row. A reconciliation sweep uses these to resume interrupted flows.
const (
	FlowStateCreated    = "created"
	FlowStateConfirmed  = "confirmed"
	FlowStateCaptured   = "captured"
	FlowStateReconciled = "reconciled"
)

// Reference suffixes appended to the gateway intent id. Later steps
// locate ledger rows through these, so the format is part of the
// durable contract.
const (
	ReferenceSuffixBooking    = "_booking"
	ReferenceSuffixCommission = "_commission"
	ReferenceSuffixRefund     = "_refund"
)

// PaymentTransaction is one append-only ledger row keyed by a gateway
// reference number.
type PaymentTransaction struct {
	ID        string  `bson:"id" json:"id"`
	BookingID string  `bson:"bookingId" json:"bookingId"`
	UserID    string  `bson:"userId" json:"userId"`
	VendorID  string  `bson:"vendorId" json:"vendorId"`
	Type      string  `bson:"type" json:"type"`
	Status    string  `bson:"status" json:"status"`
	Amount    float64 `bson:"amount" json:"amount"`
	Currency  string  `bson:"currency" json:"currency"`

	// Reference is the gateway intent id plus a type suffix.
	Reference string `bson:"reference" json:"reference"`
	// IntentID is the bare gateway intent id.
	IntentID string `bson:"intentId" json:"intentId"`

	FlowState string `bson:"flowState,omitempty" json:"flowState,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// RefundTransaction is the 1:1 detail attached to a refund-type ledger
// row, carrying the guest's reason and the review timeline.
type RefundTransaction struct {
	ID        string `bson:"id" json:"id"`
	Reference string `bson:"reference" json:"reference"`
	BookingID string `bson:"bookingId" json:"bookingId"`
	Reason    string `bson:"reason" json:"reason"`

	RequestedAt  time.Time  `bson:"requestedAt" json:"requestedAt"`
	ReviewedAt   *time.Time `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	ProcessingAt *time.Time `bson:"processingAt,omitempty" json:"processingAt,omitempty"`
	CompletedAt  *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`

	GatewayRefundID string `bson:"gatewayRefundId,omitempty" json:"gatewayRefundId,omitempty"`
}
