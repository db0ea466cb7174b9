package itrackingrepo

import (
	"context"

	"github.com/corray333/order-bridge/internal/service/models/tracking"
)

// ITrackingRepository is an interface for the shipment tracking
// repository. A nil repository means the tracking capability is not
// installed, which is a normal, handled condition.
type ITrackingRepository interface {
	Add(ctx context.Context, shipment tracking.Shipment) error
	Delete(ctx context.Context, orderID int64, trackingNumber, provider string) error
	ListByOrder(ctx context.Context, orderID int64) ([]tracking.Shipment, error)
}
