package order

import "time"

// Status is an order's position in its lifecycle. The lifecycle is linear:
// pending -> confirmed -> shipped -> delivered, with delivered terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
)

func (s Status) String() string {
	return string(s)
}

// allowedTransitions is the full transition table. Anything not listed here,
// including staying on the same status, is rejected.
var allowedTransitions = map[Status]map[Status]bool{
	StatusPending:   {StatusConfirmed: true},
	StatusConfirmed: {StatusShipped: true},
	StatusShipped:   {StatusDelivered: true},
	StatusDelivered: {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to Status) bool {
	return allowedTransitions[from][to]
}

// ParseStatus validates a client-supplied status string.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if _, ok := allowedTransitions[s]; !ok {
		return "", ErrUnknownStatus
	}
	return s, nil
}

// Item is a snapshot of a product at order time. Orders embed the name and
// price as values, so later product edits never alter historical orders.
type Item struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

type Order struct {
	ID            int64     `json:"id"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	Items         []Item    `json:"items"`
	TotalAmount   int64     `json:"totalAmount"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}
