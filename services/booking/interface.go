package booking

import (
	"context"
	"time"

	bookingRepo "tripnest/database/repository/booking"
	catalogRepo "tripnest/database/repository/catalog"
	userRepo "tripnest/database/repository/user"
	"tripnest/models"
	"tripnest/services/notification"

	"go.uber.org/zap"
)

// BookingService turns a cart into a persisted booking graph.
type BookingService interface {
	CreateBooking(ctx context.Context, userID string, input models.CreateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error)
	ListBookings(ctx context.Context, userID string) ([]models.Booking, error)
	CancelBooking(ctx context.Context, userID, bookingID string) error
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	Catalog  catalogRepo.CatalogRepository
	Accounts userRepo.UserRepository
	Notifier notification.Service
	Logger   *zap.Logger

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
