package tracking

import "errors"

// Action is the requested tracking-update operation.
type Action string

const (
	ActionAdd    Action = "add"
	ActionDelete Action = "delete"
)

var ErrInvalidAction = errors.New("invalid action")

func (a Action) String() string {
	return string(a)
}

// ParseAction parses an action_type value into a closed Action.
func ParseAction(s string) (Action, error) {
	switch s {
	case ActionAdd.String():
		return ActionAdd, nil
	case ActionDelete.String():
		return ActionDelete, nil
	default:
		return "", ErrInvalidAction
	}
}

// UpdateRequest is an inbound tracking-update request from the partner.
// It is transient; only its effects on the order store persist.
type UpdateRequest struct {
	Username       string
	Password       string
	OrderID        int64
	TrackingNumber string
	Provider       string
	DateShipped    string
	CustomURL      string
}

// Shipment is one tracking record attached to an order.
type Shipment struct {
	OrderID        int64  `json:"orderId"`
	TrackingNumber string `json:"trackingNumber"`
	Provider       string `json:"provider"`
	DateShipped    string `json:"dateShipped"`
	CustomURL      string `json:"customUrl"`
}
