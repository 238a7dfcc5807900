package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/bizrecipe-api/internal/domains/users/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid user input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyID) || errors.Is(err, domain.ErrEmptyUsername) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
