package mapper

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	listingtypes "github.com/Apurer/bizrecipe-api/internal/domains/listings/application/types"
	"github.com/Apurer/bizrecipe-api/internal/domains/listings/domain"
)

// CreateListing is the inbound payload for POST /listings. Calories and price
// keep field presence so that absent values can be reported.
type CreateListing struct {
	Name         string           `json:"name"`
	Ingredients  []string         `json:"ingredients"`
	Instructions []string         `json:"instructions"`
	Calories     *float64         `json:"calories"`
	Image        string           `json:"image"`
	Price        *decimal.Decimal `json:"price"`
	SubmittedBy  string           `json:"submittedBy"`
}

// ListingPatch is the closed set of keys accepted by PUT /listings/:id.
type ListingPatch struct {
	Name         *string          `json:"name"`
	Ingredients  *[]string        `json:"ingredients"`
	Instructions *[]string        `json:"instructions"`
	Calories     *float64         `json:"calories"`
	Image        *string          `json:"image"`
	Price        *decimal.Decimal `json:"price"`
	SubmittedBy  *string          `json:"submittedBy"`
}

// SubmitOrder is the inbound payload for POST /listings/:id/orders.
type SubmitOrder struct {
	Buyer                string `json:"buyer"`
	Quantity             int    `json:"quantity"`
	Preferences          string `json:"preferences"`
	DeliveryAddress      string `json:"deliveryAddress"`
	TimeToDeliver        string `json:"timeToDeliver"`
	DateToDeliver        string `json:"dateToDeliver"`
	EstimatedArrivalTime string `json:"estimatedArrivalTime"`
	Status               string `json:"status"`
}

// UpdateOrder is the inbound payload for POST /orders/update.
type UpdateOrder struct {
	OrderID              string `json:"orderId"`
	Status               string `json:"status"`
	EstimatedArrivalTime string `json:"estimatedArrivalTime"`
}

// ReportListing is the inbound payload for POST /listings/:id/report.
type ReportListing struct {
	User              string `json:"user"`
	Feedback          string `json:"feedback"`
	AdditionalComment string `json:"additionalComment"`
}

type Report struct {
	User              string    `json:"user"`
	UserName          string    `json:"userName,omitempty"`
	Feedback          string    `json:"feedback"`
	AdditionalComment string    `json:"additionalComment,omitempty"`
	ReportedAt        time.Time `json:"reportedAt"`
}

type Order struct {
	ID                   string      `json:"id"`
	ListingID            string      `json:"listingId,omitempty"`
	ListingName          string      `json:"listingName,omitempty"`
	Buyer                string      `json:"buyer"`
	BuyerName            string      `json:"buyerName,omitempty"`
	Quantity             int         `json:"quantity"`
	TotalPrice           json.Number `json:"totalPrice"`
	Preferences          string      `json:"preferences,omitempty"`
	DeliveryAddress      string      `json:"deliveryAddress,omitempty"`
	TimeToDeliver        string      `json:"timeToDeliver,omitempty"`
	DateToDeliver        string      `json:"dateToDeliver,omitempty"`
	EstimatedArrivalTime string      `json:"estimatedArrivalTime,omitempty"`
	Status               string      `json:"status"`
	CreatedAt            time.Time   `json:"createdAt"`
}

// Listing is the HTTP representation of a listing aggregate.
type Listing struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Ingredients  []string    `json:"ingredients"`
	Instructions []string    `json:"instructions"`
	Calories     float64     `json:"calories"`
	Image        string      `json:"image"`
	Price        json.Number `json:"price"`
	SubmittedBy  string      `json:"submittedBy,omitempty"`
	OwnerName    string      `json:"ownerName,omitempty"`
	IsReported   bool        `json:"isReported"`
	ReportedBy   []Report    `json:"reportedBy"`
	OrderQueue   []Order     `json:"orderQueue"`
	OrderHistory []Order     `json:"orderHistory"`
	CreatedAt    time.Time   `json:"createdAt,omitempty"`
	UpdatedAt    time.Time   `json:"updatedAt,omitempty"`
}

// ToCreateInput maps the create payload to the application input.
func ToCreateInput(in CreateListing) listingtypes.CreateListingInput {
	return listingtypes.CreateListingInput{
		Name:         in.Name,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		Calories:     in.Calories,
		Image:        in.Image,
		Price:        in.Price,
		SubmittedBy:  in.SubmittedBy,
	}
}

// ToDomainPatch maps the patch payload onto the domain patch.
func ToDomainPatch(in ListingPatch) domain.ListingPatch {
	return domain.ListingPatch{
		Name:         in.Name,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		Calories:     in.Calories,
		Image:        in.Image,
		Price:        in.Price,
		SubmittedBy:  in.SubmittedBy,
	}
}

func ToSubmitInput(listingID, idempotencyKey string, in SubmitOrder) listingtypes.SubmitOrderInput {
	return listingtypes.SubmitOrderInput{
		ListingID:            listingID,
		IdempotencyKey:       idempotencyKey,
		Buyer:                in.Buyer,
		Quantity:             in.Quantity,
		Preferences:          in.Preferences,
		DeliveryAddress:      in.DeliveryAddress,
		TimeToDeliver:        in.TimeToDeliver,
		DateToDeliver:        in.DateToDeliver,
		EstimatedArrivalTime: in.EstimatedArrivalTime,
		Status:               in.Status,
	}
}

func ToUpdateOrderInput(in UpdateOrder) listingtypes.UpdateOrderInput {
	return listingtypes.UpdateOrderInput{
		OrderID:              in.OrderID,
		Status:               in.Status,
		EstimatedArrivalTime: in.EstimatedArrivalTime,
	}
}

func ToReportInput(listingID string, in ReportListing) listingtypes.ReportListingInput {
	return listingtypes.ReportListingInput{
		ListingID:         listingID,
		User:              in.User,
		Feedback:          in.Feedback,
		AdditionalComment: in.AdditionalComment,
	}
}

// FromProjection renders a listing without resolved names.
func FromProjection(p *listingtypes.ListingProjection) Listing {
	if p == nil || p.Entity == nil {
		return Listing{}
	}
	l := p.Entity
	out := Listing{
		ID:           l.ID,
		Name:         l.Name,
		Ingredients:  nonNil(l.Ingredients),
		Instructions: nonNil(l.Instructions),
		Calories:     l.Calories,
		Image:        l.Image,
		Price:        Money(l.Price),
		SubmittedBy:  l.SubmittedBy,
		IsReported:   l.IsReported,
		ReportedBy:   make([]Report, 0, len(l.ReportedBy)),
		OrderQueue:   make([]Order, 0, len(l.OrderQueue)),
		OrderHistory: make([]Order, 0, len(l.OrderHistory)),
		CreatedAt:    p.Metadata.CreatedAt,
		UpdatedAt:    p.Metadata.UpdatedAt,
	}
	for _, r := range l.ReportedBy {
		out.ReportedBy = append(out.ReportedBy, fromReport(r, ""))
	}
	for _, o := range l.OrderQueue {
		out.OrderQueue = append(out.OrderQueue, fromOrder(o))
	}
	for _, o := range l.OrderHistory {
		out.OrderHistory = append(out.OrderHistory, fromOrder(o))
	}
	return out
}

// FromView renders a listing with owner and buyer names filled in.
func FromView(v *listingtypes.ListingView) Listing {
	if v == nil {
		return Listing{}
	}
	out := FromProjection(v.Listing)
	out.OwnerName = v.OwnerName
	for i := range out.OrderQueue {
		out.OrderQueue[i].BuyerName = v.BuyerNames[out.OrderQueue[i].ID]
	}
	for i := range out.OrderHistory {
		out.OrderHistory[i].BuyerName = v.BuyerNames[out.OrderHistory[i].ID]
	}
	return out
}

func FromViews(views []*listingtypes.ListingView) []Listing {
	out := make([]Listing, 0, len(views))
	for _, v := range views {
		out = append(out, FromView(v))
	}
	return out
}

// FromReportedView renders a flagged listing with reporter names.
func FromReportedView(v *listingtypes.ReportedListingView) Listing {
	if v == nil {
		return Listing{}
	}
	out := FromProjection(v.Listing)
	out.ReportedBy = make([]Report, 0, len(v.Reports))
	for _, r := range v.Reports {
		out.ReportedBy = append(out.ReportedBy, fromReport(r.Report, r.UserName))
	}
	return out
}

func FromReportedViews(views []*listingtypes.ReportedListingView) []Listing {
	out := make([]Listing, 0, len(views))
	for _, v := range views {
		out = append(out, FromReportedView(v))
	}
	return out
}

// FromOrderView renders an order annotated with its listing and buyer.
func FromOrderView(v listingtypes.OrderView) Order {
	out := fromOrder(v.Order)
	out.ListingID = v.ListingID
	out.ListingName = v.ListingName
	out.BuyerName = v.BuyerName
	return out
}

func FromOrderViews(views []listingtypes.OrderView) []Order {
	out := make([]Order, 0, len(views))
	for _, v := range views {
		out = append(out, FromOrderView(v))
	}
	return out
}

// Money renders an amount with two decimal places as a JSON number.
func Money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func fromOrder(o domain.Order) Order {
	return Order{
		ID:                   o.ID,
		Buyer:                o.Buyer,
		Quantity:             o.Quantity,
		TotalPrice:           Money(o.TotalPrice),
		Preferences:          o.Preferences,
		DeliveryAddress:      o.DeliveryAddress,
		TimeToDeliver:        o.TimeToDeliver,
		DateToDeliver:        o.DateToDeliver,
		EstimatedArrivalTime: o.EstimatedArrivalTime,
		Status:               string(o.Status),
		CreatedAt:            o.CreatedAt,
	}
}

func fromReport(r domain.Report, userName string) Report {
	return Report{
		User:              r.User,
		UserName:          userName,
		Feedback:          r.Feedback,
		AdditionalComment: r.AdditionalComment,
		ReportedAt:        r.ReportedAt,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return append([]string(nil), values...)
}
