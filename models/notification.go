package models

// NotificationPayload travels through the async dispatch queue.
// Delivery is best-effort and never part of a transactional guarantee.
type NotificationPayload struct {
	Target  string            `json:"target"` // "user" or "vendor"
	ID      string            `json:"id"`
	Title   string            `json:"title"`
	Body    string            `json:"body"`
	Data    map[string]string `json:"data,omitempty"`
	EventID string            `json:"eventId,omitempty"`
}

// ReconcilePayload identifies a payment flow the sweep should re-check
// against the gateway.
type ReconcilePayload struct {
	IntentID  string `json:"intentId"`
	BookingID string `json:"bookingId"`
}
