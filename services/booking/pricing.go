package booking

import "tripnest/models"

// PriceLine is a snapshotted price times a quantity.
type PriceLine struct {
	Price    float64
	Quantity int
}

// CalculateTotal derives a booking total from snapshotted line prices:
// sum of items plus sum of extras minus the discount, floored at zero.
// A flat discount amount takes priority over a percentage.
func CalculateTotal(items []PriceLine, extras []PriceLine, discount *models.DiscountInput) float64 {
	base := 0.0
	for _, line := range items {
		base += line.Price * float64(line.Quantity)
	}
	for _, line := range extras {
		base += line.Price * float64(line.Quantity)
	}

	total := base - discountFor(base, discount)
	if total < 0 {
		return 0
	}
	return total
}

func discountFor(base float64, discount *models.DiscountInput) float64 {
	if discount == nil {
		return 0
	}
	if discount.Amount > 0 {
		return discount.Amount
	}
	if discount.Percentage > 0 {
		return base * discount.Percentage / 100
	}
	return 0
}

// ItemPrice snapshots the per-line price for a cart item: the room's
// per-night rate when a room type is selected, otherwise the package's
// per-night price, times the number of nights.
func ItemPrice(pkg *models.Package, room *models.RoomType, nights int) float64 {
	rate := pkg.Price
	if room != nil {
		rate = room.PricePerNight
	}
	return rate * float64(nights)
}
