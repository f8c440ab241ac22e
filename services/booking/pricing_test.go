package booking

import (
	"testing"

	"tripnest/models"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotal(t *testing.T) {
	tests := []struct {
		name     string
		items    []PriceLine
		extras   []PriceLine
		discount *models.DiscountInput
		expected float64
	}{
		{
			name:     "items only",
			items:    []PriceLine{{Price: 150, Quantity: 2}},
			expected: 300,
		},
		{
			name:     "two nights with extra and percentage discount",
			items:    []PriceLine{{Price: 200, Quantity: 1}},
			extras:   []PriceLine{{Price: 20, Quantity: 1}},
			discount: &models.DiscountInput{Percentage: 10},
			expected: 198,
		},
		{
			name:     "flat amount beats percentage",
			items:    []PriceLine{{Price: 100, Quantity: 1}},
			discount: &models.DiscountInput{Amount: 30, Percentage: 50},
			expected: 70,
		},
		{
			name:     "discount larger than base floors at zero",
			items:    []PriceLine{{Price: 50, Quantity: 1}},
			discount: &models.DiscountInput{Amount: 80},
			expected: 0,
		},
		{
			name:     "no lines",
			expected: 0,
		},
		{
			name:     "extras without discount",
			items:    []PriceLine{{Price: 100, Quantity: 2}},
			extras:   []PriceLine{{Price: 15, Quantity: 3}},
			expected: 245,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTotal(tt.items, tt.extras, tt.discount)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestItemPrice(t *testing.T) {
	pkg := &models.Package{Price: 100}
	room := &models.RoomType{PricePerNight: 120}

	assert.InDelta(t, 200, ItemPrice(pkg, nil, 2), 1e-9)
	assert.InDelta(t, 240, ItemPrice(pkg, room, 2), 1e-9)
	assert.InDelta(t, 0, ItemPrice(pkg, nil, 0), 1e-9)
}
