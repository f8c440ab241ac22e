package models

import "time"

// User is a guest account. Only the fields the booking engine consumes
// live here; profile management happens elsewhere.
type User struct {
	ID     string `bson:"id" json:"id"`
	Name   string `bson:"name" json:"name"`
	Email  string `bson:"email" json:"email"`
	Phone  string `bson:"phone,omitempty" json:"phone,omitempty"`
	Active bool   `bson:"active" json:"active"`

	// Gateway identifiers for charging the guest.
	StripeCustomerID       string `bson:"stripeCustomerId,omitempty" json:"-"`
	DefaultPaymentMethodID string `bson:"defaultPaymentMethodId,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Vendor is a supplier account serving bookings.
type Vendor struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Email       string `bson:"email" json:"email"`
	Active      bool   `bson:"active" json:"active"`
	DisplayName string `bson:"displayName,omitempty" json:"displayName,omitempty"`

	// StripeAccountID is the connected account receiving payouts.
	StripeAccountID string `bson:"stripeAccountId,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
