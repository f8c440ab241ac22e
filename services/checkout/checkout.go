package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tripnest/models"
	"tripnest/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// CheckoutService manages short-lived pre-booking holds. A hold is
// never promoted automatically; creating the booking is a separate,
// explicit commitment.
type CheckoutService interface {
	InitiateHold(ctx context.Context, userID string, items []models.CheckoutItem) (*models.Checkout, error)
	GetHold(ctx context.Context, userID, checkoutID string) (*models.Checkout, error)
	CancelHold(ctx context.Context, userID, checkoutID string) error
}

// DefaultCheckoutService implements CheckoutService on Redis; the TTL
// on the key is the expiry.
type DefaultCheckoutService struct {
	Cache *redis.Client
}

func (s *DefaultCheckoutService) key(checkoutID string) string {
	return utils.CheckoutCachePrefix + checkoutID
}

// InitiateHold creates a new hold with an explicit expiry.
func (s *DefaultCheckoutService) InitiateHold(ctx context.Context, userID string, items []models.CheckoutItem) (*models.Checkout, error) {
	if len(items) == 0 {
		return nil, utils.NewValidationError("checkout must contain at least one item")
	}

	now := time.Now()
	hold := &models.Checkout{
		ID:        uuid.New().String(),
		UserID:    userID,
		Items:     items,
		ExpiresAt: now.Add(utils.CheckoutHoldTTL),
		CreatedAt: now,
	}

	data, err := json.Marshal(hold)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal checkout hold: %w", err)
	}
	if err := s.Cache.Set(ctx, s.key(hold.ID), data, utils.CheckoutHoldTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to store checkout hold: %w", err)
	}
	return hold, nil
}

// GetHold retrieves a live hold owned by the requesting user.
func (s *DefaultCheckoutService) GetHold(ctx context.Context, userID, checkoutID string) (*models.Checkout, error) {
	data, err := s.Cache.Get(ctx, s.key(checkoutID)).Result()
	if err == redis.Nil {
		return nil, utils.NewNotFoundError("checkout %s not found or expired", checkoutID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch checkout hold: %w", err)
	}

	var hold models.Checkout
	if err := json.Unmarshal([]byte(data), &hold); err != nil {
		return nil, fmt.Errorf("failed to parse checkout hold: %w", err)
	}
	if hold.UserID != userID {
		return nil, utils.NewNotFoundError("checkout %s not found or expired", checkoutID)
	}
	return &hold, nil
}

// CancelHold releases a hold before its expiry.
func (s *DefaultCheckoutService) CancelHold(ctx context.Context, userID, checkoutID string) error {
	if _, err := s.GetHold(ctx, userID, checkoutID); err != nil {
		return err
	}
	if err := s.Cache.Del(ctx, s.key(checkoutID)).Err(); err != nil {
		return fmt.Errorf("failed to cancel checkout hold: %w", err)
	}
	return nil
}
