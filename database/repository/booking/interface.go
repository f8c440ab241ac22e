package bookingRepo

import (
	"context"

	"tripnest/models"
)

// BookingRepository persists the booking graph.
type BookingRepository interface {
	// CreateGraph commits the booking graph as one unit: it claims the
	// next per-day invoice sequence, inserts the booking with its
	// provisional total, then applies the invoice number and
	// authoritative total produced by finalize. No reader observes the
	// provisional total as final.
	CreateGraph(ctx context.Context, b *models.Booking, finalize func(seq int) (invoiceNumber string, finalTotal float64)) error

	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id, status string) error
	SetPaymentReference(ctx context.Context, id, reference string) error
	// MarkPaid records a successful capture on the booking row.
	MarkPaid(ctx context.Context, id string, amount float64, currency, reference string) error
	// SoftDelete tombstones an unpaid booking; paid bookings are kept.
	SoftDelete(ctx context.Context, id string) error
}
