package types

import (
	"github.com/Apurer/bizrecipe-api/internal/domains/listings/domain"
	"github.com/Apurer/bizrecipe-api/internal/shared/projection"
)

// ListingProjection transports a listing together with its persistence metadata.
type ListingProjection = projection.Projection[*domain.Listing]

// ListingView is a listing with its user references resolved to display names.
type ListingView struct {
	Listing   *ListingProjection
	OwnerName string
	// BuyerNames is keyed by order id and covers queued and archived orders.
	BuyerNames map[string]string
}

// OrderView flattens an order together with the listing that owns it.
type OrderView struct {
	Order       domain.Order
	ListingID   string
	ListingName string
	BuyerName   string
}

type ReportView struct {
	Report   domain.Report
	UserName string
}

// ReportedListingView is a flagged listing with its reporters resolved.
type ReportedListingView struct {
	Listing *ListingProjection
	Reports []ReportView
}
