package userRepo

import (
	"context"

	"tripnest/models"
)

// UserRepository is the account boundary the engine consumes: active
// status plus the gateway identifiers needed to move money. Lookups
// return nil (no error) when the account is absent.
type UserRepository interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetVendorByID(ctx context.Context, id string) (*models.Vendor, error)
}
