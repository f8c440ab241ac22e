package models

import "time"

// Booking statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusApproved  = "approved"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Payment statuses tracked on the booking itself.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusCanceled = "canceled"
	PaymentStatusApproved = "approved"
)

// Booking is the root of the booking graph. Items, travellers and extra
// services live inside the document so the graph commits as one unit.
type Booking struct {
	ID            string  `bson:"id" json:"id"`
	InvoiceNumber string  `bson:"invoiceNumber" json:"invoiceNumber"`
	UserID        string  `bson:"userId" json:"userId"`
	VendorID      string  `bson:"vendorId" json:"vendorId"`
	Status        string  `bson:"status" json:"status"`
	PaymentStatus string  `bson:"paymentStatus" json:"paymentStatus"`
	TotalAmount   float64 `bson:"totalAmount" json:"totalAmount"`
	PaidAmount    float64 `bson:"paidAmount" json:"paidAmount"`
	PaidCurrency  string  `bson:"paidCurrency,omitempty" json:"paidCurrency,omitempty"`

	// PaymentReference holds the gateway intent id once an intent exists.
	PaymentReference string `bson:"paymentReference,omitempty" json:"paymentReference,omitempty"`

	// Contact snapshot taken at booking time.
	ContactName  string `bson:"contactName" json:"contactName"`
	ContactEmail string `bson:"contactEmail" json:"contactEmail"`
	ContactPhone string `bson:"contactPhone,omitempty" json:"contactPhone,omitempty"`
	Address      string `bson:"address,omitempty" json:"address,omitempty"`

	Items         []BookingItem         `bson:"items" json:"items"`
	Travellers    []BookingTraveller    `bson:"travellers,omitempty" json:"travellers,omitempty"`
	ExtraServices []BookingExtraService `bson:"extraServices,omitempty" json:"extraServices,omitempty"`

	DeletedAt *time.Time `bson:"deletedAt,omitempty" json:"-"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// BookingItem is one package selection. Price is snapshotted at booking
// time and never recomputed from the live catalog.
type BookingItem struct {
	ID         string    `bson:"id" json:"id"`
	PackageID  string    `bson:"packageId" json:"packageId"`
	RoomTypeID string    `bson:"roomTypeId,omitempty" json:"roomTypeId,omitempty"`
	StartDate  time.Time `bson:"startDate" json:"startDate"`
	EndDate    time.Time `bson:"endDate" json:"endDate"`
	Quantity   int       `bson:"quantity" json:"quantity"`
	Adults     int       `bson:"adults" json:"adults"`
	Children   int       `bson:"children" json:"children"`
	Price      float64   `bson:"price" json:"price"`
}

// BookingTraveller is a manifest entry; it carries no financial role.
type BookingTraveller struct {
	ID             string `bson:"id" json:"id"`
	FullName       string `bson:"fullName" json:"fullName"`
	DocumentNumber string `bson:"documentNumber,omitempty" json:"documentNumber,omitempty"`
	Age            int    `bson:"age,omitempty" json:"age,omitempty"`
}

// BookingExtraService is an add-on line item with a price resolved from
// the catalog exactly once, at creation.
type BookingExtraService struct {
	ID             string  `bson:"id" json:"id"`
	ExtraServiceID string  `bson:"extraServiceId" json:"extraServiceId"`
	Quantity       int     `bson:"quantity" json:"quantity"`
	Price          float64 `bson:"price" json:"price"`
	Notes          string  `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Nights returns the number of nights covered by the item's date range.
func (i BookingItem) Nights() int {
	n := int(i.EndDate.Sub(i.StartDate).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}
