package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrHoldingNotFound indicates that a holding with the given ID does not exist.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrProductNotFound indicates that a product code could not be resolved
	// under any of the stock, ETF or fund namespaces.
	ErrProductNotFound = errors.New("product not found")

	// ErrQuoteUnavailable indicates that the provider returned no usable
	// quote for a known product. It is a soft failure: callers degrade to
	// cached or missing data rather than aborting.
	ErrQuoteUnavailable = errors.New("quote unavailable")

	// ErrSettingNotFound indicates that a settings key has no stored value.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrCredentialsNotConfigured indicates the remote calendar credentials
	// have not been stored yet.
	ErrCredentialsNotConfigured = errors.New("calendar credentials not configured")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidProductType indicates a product type outside stock/etf/fund.
	ErrInvalidProductType = errors.New("invalid product type")

	// ErrInvalidStrategy indicates an allocation strategy with out-of-range
	// ratios or tolerances. This is a programming-contract violation, the
	// only class of input the allocation engine refuses to degrade on.
	ErrInvalidStrategy = errors.New("invalid allocation strategy")
)
