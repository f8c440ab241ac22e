package models

import "time"

// Checkout is a short-lived pre-booking hold kept in Redis. It is never
// promoted automatically; a full booking must still be created.
type Checkout struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Items     []CheckoutItem `json:"items"`
	ExpiresAt time.Time      `json:"expiresAt"`
	CreatedAt time.Time      `json:"createdAt"`
}

// CheckoutItem mirrors a cart line ahead of booking commitment.
type CheckoutItem struct {
	PackageID  string    `json:"packageId"`
	RoomTypeID string    `json:"roomTypeId,omitempty"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Quantity   int       `json:"quantity"`
	Adults     int       `json:"adults"`
	Children   int       `json:"children"`
}
