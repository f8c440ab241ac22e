package booking

import (
	"context"
	"errors"
	"fmt"

	"tripnest/models"
	"tripnest/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CreateBooking validates the cart, snapshots prices and persists the
// booking graph as one unit. Any failure leaves no partial writes; the
// caller can distinguish retry-safe transient failures from validation
// failures by error kind.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, userID string, input models.CreateBookingInput) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, utils.BookingTxnTimeout)
	defer cancel()

	if len(input.Items) == 0 {
		return nil, utils.NewValidationError("cart must contain at least one item")
	}

	user, err := s.Accounts.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, utils.NewNotFoundError("user %s not found", userID)
	}
	if !user.Active {
		return nil, utils.NewValidationError("user account is not active")
	}

	now := s.now()
	booking := &models.Booking{
		ID:            uuid.New().String(),
		UserID:        userID,
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		ContactName:   input.Contact.Name,
		ContactEmail:  input.Contact.Email,
		ContactPhone:  input.Contact.Phone,
		Address:       input.Contact.Address,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// Validate every item and snapshot prices. The vendor is the owner
	// of the first item's package; carts mixing vendors are rejected.
	var itemLines []PriceLine
	for _, in := range input.Items {
		pkg, room, err := s.validateCartItem(ctx, in)
		if err != nil {
			return nil, err
		}

		if booking.VendorID == "" {
			booking.VendorID = pkg.VendorID
		} else if booking.VendorID != pkg.VendorID {
			return nil, utils.NewValidationError("all items in a cart must belong to the same vendor")
		}

		item := models.BookingItem{
			ID:         uuid.New().String(),
			PackageID:  in.PackageID,
			RoomTypeID: in.RoomTypeID,
			StartDate:  in.StartDate,
			EndDate:    in.EndDate,
			Quantity:   in.Quantity,
			Adults:     in.Adults,
			Children:   in.Children,
		}
		item.Price = ItemPrice(pkg, room, item.Nights())
		booking.Items = append(booking.Items, item)
		itemLines = append(itemLines, PriceLine{Price: item.Price, Quantity: item.Quantity})
	}

	vendor, err := s.Accounts.GetVendorByID(ctx, booking.VendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load vendor: %w", err)
	}
	if vendor == nil {
		return nil, utils.NewNotFoundError("vendor %s not found", booking.VendorID)
	}
	if !vendor.Active {
		return nil, utils.NewValidationError("vendor account is not active")
	}

	for _, t := range input.Travellers {
		booking.Travellers = append(booking.Travellers, models.BookingTraveller{
			ID:             uuid.New().String(),
			FullName:       t.FullName,
			DocumentNumber: t.DocumentNumber,
			Age:            t.Age,
		})
	}

	// Extra-service prices are resolved from the catalog exactly once.
	var extraLines []PriceLine
	for _, in := range input.ExtraServices {
		es, err := s.Catalog.GetExtraService(ctx, in.ExtraServiceID)
		if err != nil {
			return nil, fmt.Errorf("failed to load extra service: %w", err)
		}
		if es == nil {
			return nil, utils.NewNotFoundError("extra service %s not found", in.ExtraServiceID)
		}
		booking.ExtraServices = append(booking.ExtraServices, models.BookingExtraService{
			ID:             uuid.New().String(),
			ExtraServiceID: es.ID,
			Quantity:       in.Quantity,
			Price:          es.Price,
			Notes:          in.Notes,
		})
		extraLines = append(extraLines, PriceLine{Price: es.Price, Quantity: in.Quantity})
	}

	// Provisional total: items only. The authoritative total, including
	// extras and discount, replaces it before the unit commits.
	booking.TotalAmount = CalculateTotal(itemLines, nil, nil)

	err = s.Repo.CreateGraph(ctx, booking, func(seq int) (string, float64) {
		invoice := FormatInvoiceNumber(now, seq)
		final := CalculateTotal(itemLines, extraLines, input.Discount)
		return invoice, final
	})
	if err != nil {
		return nil, translatePersistError(err)
	}

	s.Logger.Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("invoice", booking.InvoiceNumber),
		zap.Float64("total", booking.TotalAmount))

	// Best-effort; a failed notification never affects the booking.
	s.Notifier.Dispatch(models.NotificationPayload{
		Target: "user",
		ID:     userID,
		Title:  "Booking received",
		Body:   fmt.Sprintf("Your booking %s was created.", booking.InvoiceNumber),
		Data:   map[string]string{"bookingId": booking.ID},
	})

	return booking, nil
}

// translatePersistError classifies storage failures so callers know
// what is safe to retry.
func translatePersistError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return utils.NewTransientError("booking transaction timed out")
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.HasErrorLabel("TransientTransactionError") {
		return utils.NewTransientError("booking transaction aborted, retry")
	}
	var se *utils.ServiceError
	if errors.As(err, &se) {
		return err
	}
	return fmt.Errorf("failed to persist booking: %w", err)
}
