package models

import "time"

// VendorWallet is the running-balance aggregate of a vendor's earnings.
// It is mutated only through atomic increments inside the ledger-update
// path; balance == totalEarnings - totalWithdrawals - totalRefunds.
type VendorWallet struct {
	VendorID         string    `bson:"vendorId" json:"vendorId"`
	Balance          float64   `bson:"balance" json:"balance"`
	TotalEarnings    float64   `bson:"totalEarnings" json:"totalEarnings"`
	TotalWithdrawals float64   `bson:"totalWithdrawals" json:"totalWithdrawals"`
	TotalRefunds     float64   `bson:"totalRefunds" json:"totalRefunds"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt"`
}
