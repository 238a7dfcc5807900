package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the order progression value. The set is open: vendors may use
// their own intermediate statuses, which are treated as non-terminal.
type Status string

const (
	StatusPlaced     Status = "Placed"
	StatusInProgress Status = "InProgress"
	StatusDone       Status = "Done"
	StatusRejected   Status = "Rejected"
)

// IsTerminal reports whether the status ends the order's lifecycle.
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusRejected
}

var (
	ErrEmptyOrderID      = errors.New("order id is required")
	ErrOrderExists       = errors.New("order already exists in listing")
	ErrOrderNotQueued    = errors.New("order is not queued in listing")
	ErrEmptyStatus       = errors.New("order status is required")
	ErrInvalidTransition = errors.New("order status transition is not allowed")
)

// Order is a purchase embedded in a Listing.
type Order struct {
	ID                   string
	Buyer                string
	Quantity             int
	TotalPrice           decimal.Decimal
	Preferences          string
	DeliveryAddress      string
	TimeToDeliver        string
	DateToDeliver        string
	EstimatedArrivalTime string
	Status               Status
	CreatedAt            time.Time
}

// PlaceOrder appends a new order to the active queue.
func (l *Listing) PlaceOrder(order Order) (Order, error) {
	if strings.TrimSpace(order.ID) == "" {
		return Order{}, ErrEmptyOrderID
	}
	if _, ok := l.FindOrder(order.ID); ok {
		return Order{}, ErrOrderExists
	}
	l.OrderQueue = append(l.OrderQueue, order)
	return order, nil
}

// FindOrder looks the order up in the queue first, then in the history.
func (l *Listing) FindOrder(id string) (Order, bool) {
	if i := indexOf(l.OrderQueue, id); i >= 0 {
		return l.OrderQueue[i], true
	}
	if i := indexOf(l.OrderHistory, id); i >= 0 {
		return l.OrderHistory[i], true
	}
	return Order{}, false
}

func (l *Listing) HasQueuedOrder(id string) bool {
	return indexOf(l.OrderQueue, id) >= 0
}

// QueuedOrderIDs lists the ids of every active order.
func (l *Listing) QueuedOrderIDs() []string {
	ids := make([]string, 0, len(l.OrderQueue))
	for _, o := range l.OrderQueue {
		ids = append(ids, o.ID)
	}
	return ids
}

// TransitionOrder moves a queued order to the given status. Done orders are
// archived into the history, Rejected orders are dropped, any other status
// is applied in place. A queued order may always be closed out, even when
// it was submitted with a terminal status. The returned order reflects the
// new state.
func (l *Listing) TransitionOrder(id, eta string, status Status) (Order, error) {
	i := indexOf(l.OrderQueue, id)
	if i < 0 {
		return Order{}, ErrOrderNotQueued
	}
	if status == "" {
		return Order{}, ErrEmptyStatus
	}
	current := l.OrderQueue[i]
	if status == StatusPlaced && current.Status != StatusPlaced && current.Status != "" {
		return Order{}, ErrInvalidTransition
	}

	current.EstimatedArrivalTime = eta
	current.Status = status

	switch status {
	case StatusDone:
		l.OrderHistory = append(l.OrderHistory, current)
		l.removeQueued(i)
	case StatusRejected:
		l.removeQueued(i)
	default:
		l.OrderQueue[i] = current
	}
	return current, nil
}

func (l *Listing) removeQueued(i int) {
	queue := make([]Order, 0, len(l.OrderQueue)-1)
	queue = append(queue, l.OrderQueue[:i]...)
	l.OrderQueue = append(queue, l.OrderQueue[i+1:]...)
}

func indexOf(orders []Order, id string) int {
	for i := range orders {
		if orders[i].ID == id {
			return i
		}
	}
	return -1
}
