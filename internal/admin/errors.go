package admin

import (
	"errors"
	"fmt"

	"github.com/zainmh-10/CreateAILab/internal/domain"
)

// MissingIDError is returned for update or delete without a target id.
type MissingIDError struct {
	Entity domain.Entity
}

func (e MissingIDError) Error() string { return fmt.Sprintf("Missing %s id", e.Entity) }

func (e MissingIDError) Is(target error) bool { return target == domain.ErrMissingID }

const fallbackMessage = "Request failed"

// errorMessage is the text shown to the operator on the admin page.
func errorMessage(err error) string {
	switch {
	case err == nil:
		return fallbackMessage
	case errors.Is(err, domain.ErrNotFound):
		return "Record not found"
	case errors.Is(err, domain.ErrStorageUnavailable):
		return "Database unavailable"
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallbackMessage
}
