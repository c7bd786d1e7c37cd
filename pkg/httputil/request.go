package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vpos-orchestrator/pkg/errors"
)

// DecodeJSON decodes r's body into target, wrapping any decode failure
// (malformed JSON, empty body, unknown fields aside) as ErrInvalidInput so
// handlers can funnel it through the same error-response path as every
// other validation failure.
func DecodeJSON(r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return errors.ErrInvalidInput.Wrap(err)
	}
	return nil
}

// GetURLParam reads a chi URL parameter, returning ErrInvalidInput if it is
// absent or empty.
func GetURLParam(r *http.Request, name string) (string, error) {
	value := chi.URLParam(r, name)
	if value == "" {
		return "", errors.ErrInvalidInput.WithDetails("param", name)
	}
	return value, nil
}

// MustGetURLParam is GetURLParam for routes whose chi pattern guarantees
// the parameter is present; it panics otherwise, since that can only mean
// the route was misconfigured.
func MustGetURLParam(r *http.Request, name string) string {
	value, err := GetURLParam(r, name)
	if err != nil {
		panic(err)
	}
	return value
}
