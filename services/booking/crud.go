package booking

import (
	"context"
	"fmt"

	"tripnest/models"
	"tripnest/utils"
)

// GetBooking returns a booking owned by the requesting user.
func (s *DefaultBookingService) GetBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if b == nil || b.UserID != userID {
		return nil, utils.NewNotFoundError("booking %s not found", bookingID)
	}
	return b, nil
}

// ListBookings returns the user's bookings, newest first.
func (s *DefaultBookingService) ListBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	bookings, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// CancelBooking cancels and tombstones an unpaid booking. Paid bookings
// go through the refund workflow instead.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, userID, bookingID string) error {
	b, err := s.GetBooking(ctx, userID, bookingID)
	if err != nil {
		return err
	}
	if b.PaymentStatus == models.PaymentStatusPaid {
		return utils.NewConflictError("paid bookings cannot be cancelled; request a refund")
	}

	if err := s.Repo.UpdateStatus(ctx, bookingID, models.BookingStatusCancelled); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	if err := s.Repo.SoftDelete(ctx, bookingID); err != nil {
		return fmt.Errorf("failed to remove cancelled booking: %w", err)
	}
	return nil
}
