package ghaudit

import (
	"fmt"
	"net/http"

	"github.com/jmgilman/go/errors"
)

// GitHub-specific error codes (use existing codes from errors library).
// These are convenience aliases for readability in GitHub context.
const (
	// ErrCodeNotFound indicates a requested resource was not found.
	ErrCodeNotFound = errors.CodeNotFound

	// ErrCodeAuthenticationFailed indicates authentication failure.
	ErrCodeAuthenticationFailed = errors.CodeUnauthorized

	// ErrCodePermissionDenied indicates insufficient permissions.
	ErrCodePermissionDenied = errors.CodeForbidden

	// ErrCodeRateLimited indicates rate limit exceeded.
	ErrCodeRateLimited = errors.CodeRateLimit

	// ErrCodeInvalidInput indicates invalid parameters or malformed data.
	ErrCodeInvalidInput = errors.CodeInvalidInput

	// ErrCodeInvalidConfig indicates the run cannot start because of its configuration.
	ErrCodeInvalidConfig = errors.CodeInvalidConfig

	// ErrCodeNetwork indicates network-related errors.
	ErrCodeNetwork = errors.CodeNetwork

	// ErrCodeInternal indicates internal errors.
	ErrCodeInternal = errors.CodeInternal
)

// WrapHTTPError wraps an error based on HTTP status code from GitHub API.
func WrapHTTPError(err error, statusCode int, message string) error {
	if err == nil {
		return nil
	}

	var code errors.ErrorCode
	switch statusCode {
	case http.StatusNotFound:
		code = errors.CodeNotFound
	case http.StatusUnauthorized:
		code = errors.CodeUnauthorized
	case http.StatusForbidden:
		code = errors.CodeForbidden
	case http.StatusConflict:
		code = errors.CodeConflict
	case http.StatusUnprocessableEntity, http.StatusBadRequest:
		code = errors.CodeInvalidInput
	case http.StatusTooManyRequests:
		code = errors.CodeRateLimit
	default:
		if statusCode >= 500 {
			code = errors.CodeNetwork
		} else {
			code = errors.CodeInternal
		}
	}

	return errors.Wrap(err, code, message)
}

// newConfigError creates a configuration error with context.
func newConfigError(field, reason string) error {
	err := errors.New(
		errors.CodeInvalidConfig,
		fmt.Sprintf("invalid %s: %s", field, reason),
	)
	return errors.WithContextMap(err, map[string]interface{}{
		"field":  field,
		"reason": reason,
	})
}

// wrapMandatoryError marks a failure of data the run cannot do without.
// The original error code is kept so credential and scope problems stay visible.
func wrapMandatoryError(err error, stage, org, message string) error {
	if err == nil {
		return nil
	}

	ctx := map[string]interface{}{"stage": stage}
	if org != "" {
		ctx["organization"] = org
	}
	return errors.WrapWithContext(err, errors.GetCode(err), message, ctx)
}
