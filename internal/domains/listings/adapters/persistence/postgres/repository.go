package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Apurer/bizrecipe-api/internal/domains/listings/domain"
	"github.com/Apurer/bizrecipe-api/internal/domains/listings/ports"
	"github.com/Apurer/bizrecipe-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists listings in PostgreSQL using GORM. Embedded orders and
// reports are stored as jsonb documents on the listing row, so every write is
// a single-row update.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Schema is owned by
// internal/platform/migrations and the caller manages the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type listingRecord struct {
	ID           string          `gorm:"primaryKey;column:id;type:uuid"`
	Name         string          `gorm:"column:name;index"`
	Ingredients  pq.StringArray  `gorm:"column:ingredients;type:text[]"`
	Instructions pq.StringArray  `gorm:"column:instructions;type:text[]"`
	Calories     float64         `gorm:"column:calories"`
	Image        string          `gorm:"column:image"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	SubmittedBy  string          `gorm:"column:submitted_by;index"`
	IsReported   bool            `gorm:"column:is_reported;index"`
	ReportedBy   []reportDoc     `gorm:"column:reported_by;type:jsonb;serializer:json"`
	OrderQueue   []orderDoc      `gorm:"column:order_queue;type:jsonb;serializer:json"`
	OrderHistory []orderDoc      `gorm:"column:order_history;type:jsonb;serializer:json"`
	CreatedAt    time.Time       `gorm:"column:created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"`
}

func (listingRecord) TableName() string { return "listings" }

type orderDoc struct {
	ID                   string          `json:"id"`
	Buyer                string          `json:"buyer"`
	Quantity             int             `json:"quantity"`
	TotalPrice           decimal.Decimal `json:"totalPrice"`
	Preferences          string          `json:"preferences,omitempty"`
	DeliveryAddress      string          `json:"deliveryAddress,omitempty"`
	TimeToDeliver        string          `json:"timeToDeliver,omitempty"`
	DateToDeliver        string          `json:"dateToDeliver,omitempty"`
	EstimatedArrivalTime string          `json:"estimatedArrivalTime,omitempty"`
	Status               string          `json:"status"`
	CreatedAt            time.Time       `json:"createdAt"`
}

type reportDoc struct {
	User              string    `json:"user"`
	Feedback          string    `json:"feedback"`
	AdditionalComment string    `json:"additionalComment,omitempty"`
	ReportedAt        time.Time `json:"reportedAt"`
}

// Create inserts a listing after checking name uniqueness inside the same
// transaction. An advisory lock keyed on the name serialises concurrent
// creates of the same name until commit.
func (r *Repository) Create(ctx context.Context, listing *domain.Listing) (*projection.Projection[*domain.Listing], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, errors.New("cannot create nil listing")
	}
	record := toRecord(listing)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", record.Name).Error; err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&listingRecord{}).Where("name = ?", record.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ports.ErrDuplicateName
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return record.toProjection(), nil
}

// Save overwrites every mutable column of an existing listing.
func (r *Repository) Save(ctx context.Context, listing *domain.Listing) (*projection.Projection[*domain.Listing], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, errors.New("cannot save nil listing")
	}
	if !validID(listing.ID) {
		return nil, ports.ErrNotFound
	}
	record := toRecord(listing)
	result := r.db.WithContext(ctx).
		Model(&listingRecord{ID: record.ID}).
		Select("*").
		Omit("id", "created_at").
		Updates(&record)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a listing by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Listing], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, ports.ErrNotFound
	}
	var record listingRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// Delete removes a listing and, with it, every embedded order and report.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if !validID(id) {
		return ports.ErrNotFound
	}
	result := r.db.WithContext(ctx).Delete(&listingRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns every listing ordered by creation time.
func (r *Repository) List(ctx context.Context) ([]*projection.Projection[*domain.Listing], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []listingRecord
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// ListReported returns flagged listings.
func (r *Repository) ListReported(ctx context.Context) ([]*projection.Projection[*domain.Listing], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []listingRecord
	if err := r.db.WithContext(ctx).
		Where("is_reported = ?", true).
		Order("created_at, id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// FindByQueuedOrderID uses jsonb containment to find the listing whose queue holds the order.
func (r *Repository) FindByQueuedOrderID(ctx context.Context, orderID string) (*projection.Projection[*domain.Listing], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	containment, err := json.Marshal([]map[string]string{{"id": orderID}})
	if err != nil {
		return nil, err
	}
	var record listingRecord
	if err := r.db.WithContext(ctx).
		Where("order_queue @> ?::jsonb", string(containment)).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrOrderNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres listing repository not configured")
	}
	return nil
}

// validID reports whether id can address a row in the uuid-keyed table.
// Anything else cannot exist and is treated as absent.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func recordsToProjections(records []listingRecord) []*projection.Projection[*domain.Listing] {
	list := make([]*projection.Projection[*domain.Listing], 0, len(records))
	for i := range records {
		list = append(list, records[i].toProjection())
	}
	return list
}

func toRecord(l *domain.Listing) listingRecord {
	rec := listingRecord{
		ID:           l.ID,
		Name:         l.Name,
		Ingredients:  append(pq.StringArray{}, l.Ingredients...),
		Instructions: append(pq.StringArray{}, l.Instructions...),
		Calories:     l.Calories,
		Image:        l.Image,
		Price:        l.Price,
		SubmittedBy:  l.SubmittedBy,
		IsReported:   l.IsReported,
		ReportedBy:   make([]reportDoc, 0, len(l.ReportedBy)),
		OrderQueue:   toOrderDocs(l.OrderQueue),
		OrderHistory: toOrderDocs(l.OrderHistory),
	}
	for _, rep := range l.ReportedBy {
		rec.ReportedBy = append(rec.ReportedBy, reportDoc{
			User:              rep.User,
			Feedback:          rep.Feedback,
			AdditionalComment: rep.AdditionalComment,
			ReportedAt:        rep.ReportedAt,
		})
	}
	return rec
}

func toOrderDocs(orders []domain.Order) []orderDoc {
	docs := make([]orderDoc, 0, len(orders))
	for _, o := range orders {
		docs = append(docs, orderDoc{
			ID:                   o.ID,
			Buyer:                o.Buyer,
			Quantity:             o.Quantity,
			TotalPrice:           o.TotalPrice,
			Preferences:          o.Preferences,
			DeliveryAddress:      o.DeliveryAddress,
			TimeToDeliver:        o.TimeToDeliver,
			DateToDeliver:        o.DateToDeliver,
			EstimatedArrivalTime: o.EstimatedArrivalTime,
			Status:               string(o.Status),
			CreatedAt:            o.CreatedAt,
		})
	}
	return docs
}

func fromOrderDocs(docs []orderDoc) []domain.Order {
	orders := make([]domain.Order, 0, len(docs))
	for _, d := range docs {
		orders = append(orders, domain.Order{
			ID:                   d.ID,
			Buyer:                d.Buyer,
			Quantity:             d.Quantity,
			TotalPrice:           d.TotalPrice,
			Preferences:          d.Preferences,
			DeliveryAddress:      d.DeliveryAddress,
			TimeToDeliver:        d.TimeToDeliver,
			DateToDeliver:        d.DateToDeliver,
			EstimatedArrivalTime: d.EstimatedArrivalTime,
			Status:               domain.Status(d.Status),
			CreatedAt:            d.CreatedAt,
		})
	}
	return orders
}

func (r listingRecord) toProjection() *projection.Projection[*domain.Listing] {
	listing := &domain.Listing{
		ID:           r.ID,
		Name:         r.Name,
		Ingredients:  append([]string{}, r.Ingredients...),
		Instructions: append([]string{}, r.Instructions...),
		Calories:     r.Calories,
		Image:        r.Image,
		Price:        r.Price,
		SubmittedBy:  r.SubmittedBy,
		IsReported:   r.IsReported,
		ReportedBy:   make([]domain.Report, 0, len(r.ReportedBy)),
		OrderQueue:   fromOrderDocs(r.OrderQueue),
		OrderHistory: fromOrderDocs(r.OrderHistory),
	}
	for _, rep := range r.ReportedBy {
		listing.ReportedBy = append(listing.ReportedBy, domain.Report{
			User:              rep.User,
			Feedback:          rep.Feedback,
			AdditionalComment: rep.AdditionalComment,
			ReportedAt:        rep.ReportedAt,
		})
	}
	return projection.Of(listing, projection.Metadata{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt})
}
