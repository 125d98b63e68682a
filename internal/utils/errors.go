package utils

import "errors"

// Common application errors used across services. Names double as the API
// error codes surfaced in responses.
var (
	// Validation
	ErrInvalidQuantity = errors.New("INVALID_QUANTITY")
	ErrMissingName     = errors.New("MISSING_NAME")
	ErrMissingContact  = errors.New("MISSING_CONTACT")
	ErrPhoneRequired   = errors.New("PHONE_REQUIRED")
	ErrNegativePrice   = errors.New("NEGATIVE_PRICE")
	ErrInvalidStatus   = errors.New("INVALID_STATUS")

	// Authorization
	ErrNotAllowed      = errors.New("NOT_ALLOWED")
	ErrAccountPending  = errors.New("ACCOUNT_PENDING")
	ErrAccountRejected = errors.New("ACCOUNT_REJECTED")

	// Conflict
	ErrDuplicateAdmin    = errors.New("DUPLICATE_ADMIN")
	ErrDuplicateCustomer = errors.New("DUPLICATE_CUSTOMER")

	// Not found
	ErrProductNotFound = errors.New("PRODUCT_NOT_FOUND")
	ErrOrderNotFound   = errors.New("ORDER_NOT_FOUND")
	ErrAdminNotFound   = errors.New("ADMIN_NOT_FOUND")

	// Lifecycle
	ErrInvalidTransition = errors.New("INVALID_TRANSITION")
)
