package projection

import "time"

// Metadata captures persistence timestamps shared by projections.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stamped returns metadata for a record first written at ts.
func Stamped(ts time.Time) Metadata {
	ts = ts.UTC()
	return Metadata{CreatedAt: ts, UpdatedAt: ts}
}

// Touch advances UpdatedAt. Clock skew never moves it before CreatedAt.
func (m *Metadata) Touch(ts time.Time) {
	ts = ts.UTC()
	if ts.Before(m.CreatedAt) {
		ts = m.CreatedAt
	}
	m.UpdatedAt = ts
}

// Projection represents an aggregate view plus persistence metadata.
type Projection[T any] struct {
	Entity   T
	Metadata Metadata
}

// Of pairs an entity with its metadata.
func Of[T any](entity T, meta Metadata) *Projection[T] {
	return &Projection[T]{Entity: entity, Metadata: meta}
}

// Entities strips metadata from a slice of projections.
func Entities[T any](list []*Projection[T]) []T {
	out := make([]T, 0, len(list))
	for _, p := range list {
		if p != nil {
			out = append(out, p.Entity)
		}
	}
	return out
}
