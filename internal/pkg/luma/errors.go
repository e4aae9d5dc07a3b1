package luma

import (
	"fmt"

	"github.com/eventvault/backend/internal/pkg/apperrors"
)

// ProviderError reports a failed call to the Luma API. StatusCode is zero
// when no response was received.
type ProviderError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("Luma API error: %d - %s", e.StatusCode, e.Body)
}

// Unwrap exposes both the error kind and the transport cause.
func (e *ProviderError) Unwrap() []error {
	if e.Err != nil {
		return []error{apperrors.ErrExternalService, e.Err}
	}
	return []error{apperrors.ErrExternalService}
}
