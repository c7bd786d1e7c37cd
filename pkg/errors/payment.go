package errors

import "net/http"

// Payment-domain errors, per the seven error kinds the orchestrator surfaces.
var (
	ErrConflict = &Error{
		Code:       "CONFLICT",
		Message:    "conflicting resource state",
		HTTPStatus: http.StatusConflict,
	}

	ErrCrypto = &Error{
		Code:       "CRYPTO_ERROR",
		Message:    "encryption or decryption failed",
		HTTPStatus: http.StatusInternalServerError,
	}

	ErrNetwork = &Error{
		Code:       "NETWORK_ERROR",
		Message:    "acquirer network call failed",
		HTTPStatus: http.StatusGatewayTimeout,
	}

	ErrState = &Error{
		Code:       "STATE_ERROR",
		Message:    "operation not valid for the transaction's current state",
		HTTPStatus: http.StatusConflict,
	}

	ErrNoSuitableTerminal = &Error{
		Code:       "NO_SUITABLE_TERMINAL",
		Message:    "no active terminal matches the selection criteria",
		HTTPStatus: http.StatusUnprocessableEntity,
	}

	ErrNotImplemented = &Error{
		Code:       "NOT_IMPLEMENTED",
		Message:    "provider does not implement this capability",
		HTTPStatus: http.StatusNotImplemented,
	}
)

// ProviderError carries an acquirer's native diagnostics through the
// "provider_error{code, message}" error kind from spec.md §7.
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return e.Provider + ": " + e.Code + " " + e.Message
	}
	return e.Provider + ": " + e.Code
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// AsDomainError projects a ProviderError onto the standard *Error shape so
// the HTTP layer's GetHTTPStatus mapping keeps working unchanged.
func (e *ProviderError) AsDomainError() *Error {
	return (&Error{
		Code:       "PROVIDER_ERROR",
		Message:    e.Error(),
		HTTPStatus: http.StatusBadGateway,
	}).WithDetails("provider", e.Provider).WithDetails("acquirer_code", e.Code)
}
