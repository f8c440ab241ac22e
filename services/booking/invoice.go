package booking

import (
	"fmt"
	"time"
)

// FormatInvoiceNumber renders the date-scoped invoice identifier for
// the seq-th booking of the day: INV-YYYYMMDD-NNNN. The sequence comes
// from an atomic per-day counter, so concurrent bookings cannot collide.
func FormatInvoiceNumber(day time.Time, seq int) string {
	return fmt.Sprintf("INV-%s-%04d", day.Format("20060102"), seq)
}
