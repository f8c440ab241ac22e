package models

import "time"

// CreateBookingInput is the cart payload accepted by the booking engine.
type CreateBookingInput struct {
	Items         []CartItemInput         `json:"items" binding:"required"`
	Travellers    []TravellerInput        `json:"travellers,omitempty"`
	ExtraServices []ExtraServiceInput     `json:"extraServices,omitempty"`
	Discount      *DiscountInput          `json:"discount,omitempty"`
	Contact       ContactInput            `json:"contact" binding:"required"`
}

type CartItemInput struct {
	PackageID  string    `json:"packageId" binding:"required"`
	RoomTypeID string    `json:"roomTypeId,omitempty"`
	StartDate  time.Time `json:"startDate" binding:"required"`
	EndDate    time.Time `json:"endDate" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required,min=1"`
	Adults     int       `json:"adults" binding:"min=0"`
	Children   int       `json:"children" binding:"min=0"`
}

type TravellerInput struct {
	FullName       string `json:"fullName" binding:"required"`
	DocumentNumber string `json:"documentNumber,omitempty"`
	Age            int    `json:"age,omitempty"`
}

type ExtraServiceInput struct {
	ExtraServiceID string `json:"extraServiceId" binding:"required"`
	Quantity       int    `json:"quantity" binding:"required,min=1"`
	Notes          string `json:"notes,omitempty"`
}

// DiscountInput applies either a flat amount or a percentage. A flat
// amount takes priority when both are present.
type DiscountInput struct {
	Amount     float64 `json:"amount,omitempty"`
	Percentage float64 `json:"percentage,omitempty"`
}

type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}
