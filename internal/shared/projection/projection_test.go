package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStampedAndTouch(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	meta := Stamped(created)
	assert.Equal(t, created, meta.CreatedAt)
	assert.Equal(t, created, meta.UpdatedAt)

	meta.Touch(created.Add(time.Minute))
	assert.Equal(t, created.Add(time.Minute), meta.UpdatedAt)

	meta.Touch(created.Add(-time.Hour))
	assert.Equal(t, created, meta.UpdatedAt)
}

func TestEntitiesSkipsNil(t *testing.T) {
	list := []*Projection[string]{Of("a", Metadata{}), nil, Of("b", Metadata{})}
	assert.Equal(t, []string{"a", "b"}, Entities(list))
}
