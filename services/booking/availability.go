package booking

import (
	"context"
	"time"

	"tripnest/models"
	"tripnest/utils"
)

// validateCartItem checks that a cart item is bookable and returns the
// catalog documents needed to snapshot its price. Validation stops at
// the first violated constraint.
func (s *DefaultBookingService) validateCartItem(ctx context.Context, item models.CartItemInput) (*models.Package, *models.RoomType, error) {
	pkg, err := s.Catalog.GetPackage(ctx, item.PackageID)
	if err != nil {
		return nil, nil, err
	}
	if pkg == nil {
		return nil, nil, utils.NewNotFoundError("package %s not found", item.PackageID)
	}
	if pkg.Status != models.PackageStatusApproved {
		return nil, nil, utils.NewValidationError("package %s is not approved for booking", item.PackageID)
	}

	var room *models.RoomType
	if item.RoomTypeID != "" {
		room, err = s.Catalog.GetRoomType(ctx, item.RoomTypeID)
		if err != nil {
			return nil, nil, err
		}
		if room == nil {
			return nil, nil, utils.NewNotFoundError("room type %s not found", item.RoomTypeID)
		}
		if room.PackageID != "" && room.PackageID != pkg.ID {
			return nil, nil, utils.NewValidationError("room type %s does not belong to package %s", item.RoomTypeID, item.PackageID)
		}
		if !room.Available {
			return nil, nil, utils.NewValidationError("room type %s is not available", item.RoomTypeID)
		}
	}

	if !item.EndDate.After(item.StartDate) {
		return nil, nil, utils.NewValidationError("end date must be after start date")
	}
	if calendarDate(item.StartDate).Before(calendarDate(s.now())) {
		return nil, nil, utils.NewValidationError("start date cannot be in the past")
	}

	if room != nil {
		totalGuests := item.Adults + item.Children
		if totalGuests > room.MaxGuests*item.Quantity {
			return nil, nil, utils.NewValidationError(
				"guest count %d exceeds capacity of %d for room type %s",
				totalGuests, room.MaxGuests*item.Quantity, item.RoomTypeID)
		}
	}

	return pkg, room, nil
}

// calendarDate normalizes a timestamp to its UTC calendar day, so the
// past-date check does not shift with the caller's timezone offset.
func calendarDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
