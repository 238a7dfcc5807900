package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&listingRecord{},
		&userRecord{},
	)
}

// Listing schema mirrors the listings Postgres adapter. Name uniqueness is
// checked on create only, so there is no unique index on name.
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
	ReportedBy   []byte          `gorm:"column:reported_by;type:jsonb;not null;default:'[]'"`
	OrderQueue   []byte          `gorm:"column:order_queue;type:jsonb;not null;default:'[]';index:idx_listings_order_queue,type:gin"`
	OrderHistory []byte          `gorm:"column:order_history;type:jsonb;not null;default:'[]'"`
	CreatedAt    time.Time       `gorm:"column:created_at;index"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"`
}

func (listingRecord) TableName() string { return "listings" }

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:64"`
	Username  string    `gorm:"column:username;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }
