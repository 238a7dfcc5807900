package types

import (
	"github.com/shopspring/decimal"

	"github.com/Apurer/bizrecipe-api/internal/domains/listings/domain"
)

// CreateListingInput carries the fields required to publish a listing.
// Calories and Price are pointers so that an absent value is distinguishable
// from zero.
type CreateListingInput struct {
	Name         string           `validate:"required"`
	Ingredients  []string         `validate:"required,min=1"`
	Instructions []string         `validate:"required,min=1"`
	Calories     *float64         `validate:"required,gte=0"`
	Image        string           `validate:"required"`
	Price        *decimal.Decimal `validate:"required"`
	SubmittedBy  string
}

// UpdateListingInput merges Patch over the listing identified by ID.
type UpdateListingInput struct {
	ID    string `validate:"required"`
	Patch domain.ListingPatch
}

// SubmitOrderInput places an order against a listing. OrderID and
// IdempotencyKey are optional; either one makes the submission replayable.
type SubmitOrderInput struct {
	ListingID            string `validate:"required"`
	OrderID              string
	IdempotencyKey       string
	Buyer                string
	Quantity             int
	Preferences          string
	DeliveryAddress      string
	TimeToDeliver        string
	DateToDeliver        string
	EstimatedArrivalTime string
	Status               string
}

// UpdateOrderInput transitions an active order.
type UpdateOrderInput struct {
	OrderID              string `validate:"required"`
	Status               string `validate:"required"`
	EstimatedArrivalTime string
}

// ReportListingInput flags a listing on behalf of a user.
type ReportListingInput struct {
	ListingID         string `validate:"required"`
	User              string `validate:"required"`
	Feedback          string `validate:"required"`
	AdditionalComment string
}
