package dto

import (
	"net/http"
	"strings"
)

// Common error codes returned by the API. Domain services emit further
// codes; GetHTTPStatus resolves any code to a status.
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
	ErrCodeInvalidID         = "INVALID_ID"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeInternal          = "INTERNAL_ERROR"
	ErrCodeRateLimited       = "RATE_LIMIT_EXCEEDED"
	ErrCodePayloadTooLarge   = "PAYLOAD_TOO_LARGE"
	ErrCodeTokenMissing      = "TOKEN_MISSING"
	ErrCodeTokenExpired      = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid      = "INVALID_TOKEN"
	ErrCodeTokenRevoked      = "TOKEN_REVOKED"
	ErrCodeTokenWrongType    = "INVALID_TOKEN_TYPE"
	ErrCodeTokenNotYetValid  = "TOKEN_NOT_VALID"
	ErrCodeExportUnsupported = "UNSUPPORTED_EXPORT_FORMAT"
)

// errorCodeHTTPStatus maps error codes with a fixed status. Codes absent
// here fall through to the suffix and prefix rules in GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	// 400
	ErrCodeValidation:        http.StatusBadRequest,
	ErrCodeInvalidRequest:    http.StatusBadRequest,
	ErrCodeInvalidID:         http.StatusBadRequest,
	ErrCodeExportUnsupported: http.StatusBadRequest,

	// 401
	ErrCodeUnauthorized:     http.StatusUnauthorized,
	ErrCodeTokenMissing:     http.StatusUnauthorized,
	ErrCodeTokenExpired:     http.StatusUnauthorized,
	ErrCodeTokenInvalid:     http.StatusUnauthorized,
	ErrCodeTokenRevoked:     http.StatusUnauthorized,
	ErrCodeTokenWrongType:   http.StatusUnauthorized,
	ErrCodeTokenNotYetValid: http.StatusUnauthorized,
	"INVALID_CREDENTIALS":   http.StatusUnauthorized,
	"OTP_EXPIRED":           http.StatusUnauthorized,
	"OTP_INVALID":           http.StatusUnauthorized,
	"OTP_NOT_SENT":          http.StatusUnauthorized,
	"OTP_ATTEMPTS_EXCEEDED": http.StatusUnauthorized,
	"SESSION_EXPIRED":       http.StatusUnauthorized,

	// 403
	ErrCodeForbidden:        http.StatusForbidden,
	"ACCOUNT_LOCKED":        http.StatusForbidden,
	"ACCOUNT_DEACTIVATED":   http.StatusForbidden,

	// 404
	ErrCodeNotFound: http.StatusNotFound,

	// 409
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// 413
	ErrCodePayloadTooLarge: http.StatusRequestEntityTooLarge,

	// 422 business rule violations
	"INVALID_STATE":         http.StatusUnprocessableEntity,
	"COUPON_EXHAUSTED":      http.StatusUnprocessableEntity,
	"COUPON_NOT_ACTIVE":     http.StatusUnprocessableEntity,
	"ENTITY_INACTIVE":       http.StatusUnprocessableEntity,
	"NO_PHONE_ON_FILE":      http.StatusUnprocessableEntity,
	"NO_EMAIL_ON_FILE":      http.StatusUnprocessableEntity,
	"OTP_RESEND_TOO_SOON":   http.StatusUnprocessableEntity,
	"SYSTEM_ROLE_PROTECTED": http.StatusUnprocessableEntity,
	"ROLE_IN_USE":           http.StatusUnprocessableEntity,
	"INVALID_PARENT":        http.StatusUnprocessableEntity,

	// 429
	ErrCodeRateLimited: http.StatusTooManyRequests,

	// 500
	ErrCodeInternal:       http.StatusInternalServerError,
	"OTP_DISPATCH_FAILED": http.StatusInternalServerError,
}

// GetHTTPStatus resolves an error code to its HTTP status. Codes not in
// the fixed table resolve by shape: *_NOT_FOUND is 404, *_TAKEN is 409
// and INVALID_* is 400. Unknown codes are treated as server errors.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "_TAKEN"):
		return http.StatusConflict
	case strings.HasPrefix(code, "INVALID_"):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
