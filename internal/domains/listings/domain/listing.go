package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Listing is the aggregate root of the listings bounded context. Orders and
// moderation reports live inside it and are persisted with it.
type Listing struct {
	ID           string
	Name         string
	Ingredients  []string
	Instructions []string
	Calories     float64
	Image        string
	Price        decimal.Decimal
	SubmittedBy  string
	IsReported   bool
	ReportedBy   []Report
	OrderQueue   []Order
	OrderHistory []Order
}

var (
	ErrEmptyID           = errors.New("listing id is required")
	ErrEmptyName         = errors.New("listing name is required")
	ErrEmptyIngredients  = errors.New("at least one ingredient is required")
	ErrEmptyInstructions = errors.New("at least one instruction is required")
	ErrEmptyImage        = errors.New("listing image is required")
	ErrNegativeCalories  = errors.New("calories must be greater or equal to zero")
	ErrNegativePrice     = errors.New("price must be greater or equal to zero")
)

// NewListing validates the invariants and builds a new Listing aggregate.
func NewListing(id, name string, ingredients, instructions []string, calories float64, image string, price decimal.Decimal) (*Listing, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyID
	}
	l := &Listing{
		ID:           id,
		ReportedBy:   []Report{},
		OrderQueue:   []Order{},
		OrderHistory: []Order{},
	}
	if err := l.Rename(name); err != nil {
		return nil, err
	}
	if err := l.ReplaceIngredients(ingredients); err != nil {
		return nil, err
	}
	if err := l.ReplaceInstructions(instructions); err != nil {
		return nil, err
	}
	if err := l.UpdateCalories(calories); err != nil {
		return nil, err
	}
	if err := l.UpdateImage(image); err != nil {
		return nil, err
	}
	if err := l.Reprice(price); err != nil {
		return nil, err
	}
	return l, nil
}

// Rename mutates the listing name ensuring the invariant.
func (l *Listing) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	l.Name = name
	return nil
}

func (l *Listing) ReplaceIngredients(ingredients []string) error {
	if len(ingredients) == 0 {
		return ErrEmptyIngredients
	}
	l.Ingredients = append([]string{}, ingredients...)
	return nil
}

func (l *Listing) ReplaceInstructions(instructions []string) error {
	if len(instructions) == 0 {
		return ErrEmptyInstructions
	}
	l.Instructions = append([]string{}, instructions...)
	return nil
}

func (l *Listing) UpdateCalories(calories float64) error {
	if calories < 0 {
		return ErrNegativeCalories
	}
	l.Calories = calories
	return nil
}

func (l *Listing) UpdateImage(image string) error {
	if strings.TrimSpace(image) == "" {
		return ErrEmptyImage
	}
	l.Image = image
	return nil
}

// Reprice changes the unit price. Orders already placed keep their total.
func (l *Listing) Reprice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	l.Price = price
	return nil
}

// AssignOwner records the submitting user. The reference is weak: the user may
// not exist.
func (l *Listing) AssignOwner(userID string) {
	l.SubmittedBy = userID
}

// Clone returns a deep copy so callers never share slices with a store.
func (l *Listing) Clone() *Listing {
	if l == nil {
		return nil
	}
	clone := *l
	clone.Ingredients = append([]string{}, l.Ingredients...)
	clone.Instructions = append([]string{}, l.Instructions...)
	clone.ReportedBy = append([]Report{}, l.ReportedBy...)
	clone.OrderQueue = append([]Order{}, l.OrderQueue...)
	clone.OrderHistory = append([]Order{}, l.OrderHistory...)
	return &clone
}
