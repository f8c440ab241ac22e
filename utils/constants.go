// File: utils/constants.go
package utils

import "time"

// PlatformCommissionRate is the platform's cut of a booking total,
// split off as an application fee at payment-intent creation.
const PlatformCommissionRate = 0.15

// DefaultCurrency is used for all charges; multi-currency is out of scope.
const DefaultCurrency = "usd"

// CheckoutHoldTTL bounds the lifetime of a checkout hold.
const CheckoutHoldTTL = 30 * time.Minute

// CheckoutCachePrefix is the prefix used for checkout hold cache keys.
const CheckoutCachePrefix = "checkout:"

// BookingTxnTimeout bounds the whole booking transaction.
const BookingTxnTimeout = 30 * time.Second

// BookingTxnCommitTimeout bounds the commit (lock wait) inside it.
const BookingTxnCommitTimeout = 10 * time.Second

// ReconcileDelay is how long after intent creation the sweep re-checks
// gateway state.
const ReconcileDelay = 15 * time.Minute
