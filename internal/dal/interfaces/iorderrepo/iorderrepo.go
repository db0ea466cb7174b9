package iorderrepo

import (
	"context"

	"github.com/corray333/order-bridge/internal/service/models/order"
)

// IOrderRepository is an interface for the order postgres repository.
type IOrderRepository interface {
	GetByID(ctx context.Context, id int64) (*order.Order, error)
	UpdateStatus(ctx context.Context, id int64, status order.Status) error
}
