package provider

import (
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
)

// APIError is the single error surface for chat API failures. HTTP-level
// failures carry the status code; transport failures carry StatusCode 0 and
// wrap the underlying error.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error: %s", e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// wrapAPIError normalizes SDK and transport errors into *APIError.
// A nil error passes through, as does an error that is already ours
// (notably a callback's cancellation error propagated out of a stream).
func wrapAPIError(err error) error {
	if err == nil {
		return nil
	}

	var already *APIError
	if errors.As(err, &already) {
		return err
	}

	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		return &APIError{
			StatusCode: apierr.StatusCode,
			Message:    apierr.Error(),
			Err:        err,
		}
	}

	return &APIError{Message: err.Error(), Err: err}
}
