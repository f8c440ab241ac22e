package walletRepo

import (
	"context"

	"tripnest/models"
)

// WalletRepository maintains the per-vendor earnings aggregate. All
// mutations are atomic increments; application code never reads a
// balance and writes it back.
type WalletRepository interface {
	// Credit adds net earnings from a successful capture.
	Credit(ctx context.Context, vendorID string, amount float64) error
	// ApplyRefund moves an approved refund out of the balance.
	ApplyRefund(ctx context.Context, vendorID string, amount float64) error
	// ApplyWithdrawal moves a completed withdrawal out of the balance.
	ApplyWithdrawal(ctx context.Context, vendorID string, amount float64) error
	Get(ctx context.Context, vendorID string) (*models.VendorWallet, error)
}
