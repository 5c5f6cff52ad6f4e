package constants

import "time"

const (
	// DefaultFeeRate is the vendor fee taken from every transfer.
	DefaultFeeRate = "0.02"
	// DefaultCreditDivisor is how many currency units pledge one tree.
	DefaultCreditDivisor = 1000
	// DefaultIgnoreThreshold is the supply, in trees, below which a
	// fulfillment pass stops walking the queue.
	DefaultIgnoreThreshold = "1"
	DefaultPageSize        = 10
	DefaultRecentEntries   = 10
	DefaultSearchLimit     = 20

	FeeSinkAccountID = "vendor-fees"
	FeeSinkEmail     = "fees@canopy.local"
)

const (
	DefaultRetryMaxTries        = 5
	DefaultRetryInitialInterval = 10 * time.Millisecond
	DefaultRetryMaxInterval     = 250 * time.Millisecond
)

const (
	MaxAccountIDLen = 64
	MaxEmailLen     = 254
	DateTimeFormat  = "2006-01-02 15:04:05"
)

const (
	// MinorUnitDigits is the number of decimal places of the ledger currency.
	MinorUnitDigits = 2
)
