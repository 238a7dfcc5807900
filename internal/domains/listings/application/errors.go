package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/bizrecipe-api/internal/domains/listings/domain"
	"github.com/Apurer/bizrecipe-api/internal/domains/listings/ports"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid listing input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyID) ||
		errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrEmptyIngredients) ||
		errors.Is(err, domain.ErrEmptyInstructions) ||
		errors.Is(err, domain.ErrEmptyImage) ||
		errors.Is(err, domain.ErrNegativeCalories) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrEmptyOrderID) ||
		errors.Is(err, domain.ErrEmptyStatus) ||
		errors.Is(err, domain.ErrInvalidTransition) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, domain.ErrOrderNotQueued) {
		return fmt.Errorf("%w: %w", ports.ErrOrderNotFound, err)
	}
	return err
}
