package payment

import (
	"context"
	"fmt"

	"tripnest/models"
	"tripnest/utils"
)

// creditCapture adds a capture's net earnings to the vendor wallet:
// the paid amount less the platform commission.
func (s *DefaultPaymentService) creditCapture(ctx context.Context, vendorID string, paidAmount float64) error {
	earnings := paidAmount - paidAmount*utils.PlatformCommissionRate
	if err := s.Wallets.Credit(ctx, vendorID, earnings); err != nil {
		return fmt.Errorf("failed to credit vendor wallet: %w", err)
	}
	return nil
}

// GetWallet returns a vendor's earnings aggregate.
func (s *DefaultPaymentService) GetWallet(ctx context.Context, vendorID string) (*models.VendorWallet, error) {
	wallet, err := s.Wallets.Get(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	return wallet, nil
}
