package search_slots

import (
	"fmt"
	"strings"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ProviderID) == "" {
		return fmt.Errorf("%w: providerID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !req.VisitKind.IsValid() {
		return fmt.Errorf("%w: unknown visit kind %q", ErrInvalidInput, req.VisitKind)
	}

	return nil
}
