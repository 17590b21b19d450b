package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrOtpExpired          = NewDomainError("OTP_EXPIRED", "One-time code session has expired")
	ErrOtpInvalid          = NewDomainError("OTP_INVALID", "One-time code is incorrect")
	ErrSessionExpired      = NewDomainError("SESSION_EXPIRED", "Session has expired, please log in again")
	ErrCouponExhausted     = NewDomainError("COUPON_EXHAUSTED", "Coupon has no remaining redemptions")
	ErrCouponNotActive     = NewDomainError("COUPON_NOT_ACTIVE", "Coupon is outside its validity window")
	ErrEntityInactive      = NewDomainError("ENTITY_INACTIVE", "Referenced record is not active")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
)
