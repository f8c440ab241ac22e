package models

import "time"

// Package approval states as stored in the catalog.
const (
	PackageStatusDraft    = 0
	PackageStatusApproved = 1
)

// Package is a bookable travel package (hotel stay, tour, apartment).
// The catalog is a read-only collaborator of the booking engine.
type Package struct {
	ID       string  `bson:"id" json:"id"`
	VendorID string  `bson:"vendorId" json:"vendorId"`
	Title    string  `bson:"title" json:"title"`
	Status   int     `bson:"status" json:"status"`
	Price    float64 `bson:"price" json:"price"` // per night

	DeletedAt *time.Time `bson:"deletedAt,omitempty" json:"-"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// RoomType is an optional room selection within a package.
type RoomType struct {
	ID            string  `bson:"id" json:"id"`
	PackageID     string  `bson:"packageId" json:"packageId"`
	Name          string  `bson:"name" json:"name"`
	PricePerNight float64 `bson:"pricePerNight" json:"pricePerNight"`
	MaxGuests     int     `bson:"maxGuests" json:"maxGuests"`
	Available     bool    `bson:"available" json:"available"`

	DeletedAt *time.Time `bson:"deletedAt,omitempty" json:"-"`
}

// ExtraService is a bookable add-on from the vendor's catalog.
type ExtraService struct {
	ID       string  `bson:"id" json:"id"`
	VendorID string  `bson:"vendorId" json:"vendorId"`
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`

	DeletedAt *time.Time `bson:"deletedAt,omitempty" json:"-"`
}
