package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestListing(t *testing.T) *Listing {
	t.Helper()
	l, err := NewListing("l-1", "Pad Thai", []string{"noodles", "tamarind"}, []string{"soak", "fry"}, 650, "https://img.example/pad-thai.png", decimal.RequireFromString("10"))
	require.NoError(t, err)
	return l
}

func TestNewListing_RequiresFields(t *testing.T) {
	price := decimal.RequireFromString("1")
	_, err := NewListing("id", "", []string{"a"}, []string{"b"}, 1, "img", price)
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewListing("id", "name", nil, []string{"b"}, 1, "img", price)
	require.ErrorIs(t, err, ErrEmptyIngredients)

	_, err = NewListing("id", "name", []string{"a"}, []string{"b"}, -1, "img", price)
	require.ErrorIs(t, err, ErrNegativeCalories)

	_, err = NewListing("id", "name", []string{"a"}, []string{"b"}, 1, "img", decimal.RequireFromString("-0.01"))
	require.ErrorIs(t, err, ErrNegativePrice)
}

func TestTransitionOrder_DoneArchives(t *testing.T) {
	l := newTestListing(t)
	_, err := l.PlaceOrder(Order{ID: "o-1", Quantity: 3, TotalPrice: decimal.RequireFromString("34"), Status: StatusPlaced})
	require.NoError(t, err)

	updated, err := l.TransitionOrder("o-1", "18:30", StatusDone)
	require.NoError(t, err)
	require.Equal(t, StatusDone, updated.Status)
	require.Empty(t, l.OrderQueue)
	require.Len(t, l.OrderHistory, 1)
	require.Equal(t, "18:30", l.OrderHistory[0].EstimatedArrivalTime)
	require.True(t, l.OrderHistory[0].TotalPrice.Equal(decimal.RequireFromString("34")))
}

func TestTransitionOrder_RejectedDrops(t *testing.T) {
	l := newTestListing(t)
	_, err := l.PlaceOrder(Order{ID: "o-1", Status: StatusPlaced})
	require.NoError(t, err)

	updated, err := l.TransitionOrder("o-1", "", StatusRejected)
	require.NoError(t, err)
	require.Equal(t, StatusRejected, updated.Status)
	require.Empty(t, l.OrderQueue)
	require.Empty(t, l.OrderHistory)
}

func TestTransitionOrder_InPlace(t *testing.T) {
	l := newTestListing(t)
	_, err := l.PlaceOrder(Order{ID: "o-1", Status: StatusPlaced})
	require.NoError(t, err)
	_, err = l.PlaceOrder(Order{ID: "o-2", Status: StatusPlaced})
	require.NoError(t, err)

	_, err = l.TransitionOrder("o-1", "19:00", Status("Plating"))
	require.NoError(t, err)
	require.Equal(t, []string{"o-1", "o-2"}, l.QueuedOrderIDs())
	require.Equal(t, Status("Plating"), l.OrderQueue[0].Status)
	require.Empty(t, l.OrderHistory)
}

func TestTransitionOrder_Guards(t *testing.T) {
	l := newTestListing(t)
	_, err := l.PlaceOrder(Order{ID: "o-1", Status: StatusPlaced})
	require.NoError(t, err)

	_, err = l.TransitionOrder("missing", "", StatusDone)
	require.ErrorIs(t, err, ErrOrderNotQueued)

	_, err = l.TransitionOrder("o-1", "", "")
	require.ErrorIs(t, err, ErrEmptyStatus)

	_, err = l.TransitionOrder("o-1", "", StatusInProgress)
	require.NoError(t, err)
	_, err = l.TransitionOrder("o-1", "", StatusPlaced)
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = l.TransitionOrder("o-1", "", StatusDone)
	require.NoError(t, err)
	_, err = l.TransitionOrder("o-1", "", StatusInProgress)
	require.ErrorIs(t, err, ErrOrderNotQueued)
}

func TestTransitionOrder_ClosesOrdersSubmittedAsTerminal(t *testing.T) {
	l := newTestListing(t)
	_, err := l.PlaceOrder(Order{ID: "o-done", Status: StatusDone})
	require.NoError(t, err)
	_, err = l.PlaceOrder(Order{ID: "o-rejected", Status: StatusRejected})
	require.NoError(t, err)

	done, err := l.TransitionOrder("o-done", "18:00", StatusDone)
	require.NoError(t, err)
	assert.Equal(t, StatusDone, done.Status)

	_, err = l.TransitionOrder("o-rejected", "", StatusRejected)
	require.NoError(t, err)

	assert.Empty(t, l.OrderQueue)
	require.Len(t, l.OrderHistory, 1)
	assert.Equal(t, "o-done", l.OrderHistory[0].ID)
}

func TestPlaceOrder_RejectsDuplicateID(t *testing.T) {
	l := newTestListing(t)
	_, err := l.PlaceOrder(Order{ID: "o-1"})
	require.NoError(t, err)
	_, err = l.PlaceOrder(Order{ID: "o-1"})
	require.ErrorIs(t, err, ErrOrderExists)
	_, err = l.PlaceOrder(Order{})
	require.ErrorIs(t, err, ErrEmptyOrderID)
}

func TestReports(t *testing.T) {
	l := newTestListing(t)
	l.FileReport(Report{User: "u-1", Feedback: "spam"})
	l.FileReport(Report{User: "u-1", Feedback: "still spam"})
	require.True(t, l.IsReported)
	require.Len(t, l.ReportedBy, 2)

	l.DismissReports()
	require.False(t, l.IsReported)
	require.NotNil(t, l.ReportedBy)
	require.Empty(t, l.ReportedBy)
}

func TestApplyPatch(t *testing.T) {
	l := newTestListing(t)
	name := "Pad See Ew"
	price := decimal.RequireFromString("12.5")
	require.NoError(t, l.ApplyPatch(ListingPatch{Name: &name, Price: &price}))
	require.Equal(t, "Pad See Ew", l.Name)
	require.True(t, l.Price.Equal(price))
	require.Equal(t, []string{"noodles", "tamarind"}, l.Ingredients)

	negative := -5.0
	blank := ""
	err := l.ApplyPatch(ListingPatch{Image: &blank, Calories: &negative})
	require.Error(t, err)
	require.Equal(t, "https://img.example/pad-thai.png", l.Image)
	require.Equal(t, 650.0, l.Calories)
}

func TestClone_DoesNotShareSlices(t *testing.T) {
	l := newTestListing(t)
	_, err := l.PlaceOrder(Order{ID: "o-1"})
	require.NoError(t, err)

	clone := l.Clone()
	clone.OrderQueue[0].Status = StatusDone
	clone.Ingredients[0] = "rice"
	require.Equal(t, Status(""), l.OrderQueue[0].Status)
	require.Equal(t, "noodles", l.Ingredients[0])
}
