package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/order-bridge/internal/service/models/tracking"
	"github.com/jmoiron/sqlx"
)

// ShipmentDal represents the shipment tracking data access layer model.
type ShipmentDal struct {
	ID             int64     `db:"id"`
	OrderID        int64     `db:"order_id"`
	TrackingNumber string    `db:"tracking_number"`
	Provider       string    `db:"provider"`
	DateShipped    string    `db:"date_shipped"`
	CustomURL      string    `db:"custom_url"`
	CreatedAt      time.Time `db:"created_at"`
}

// ToModel converts ShipmentDal to the service layer Shipment model.
func (s *ShipmentDal) ToModel() tracking.Shipment {
	return tracking.Shipment{
		OrderID:        s.OrderID,
		TrackingNumber: s.TrackingNumber,
		Provider:       s.Provider,
		DateShipped:    s.DateShipped,
		CustomURL:      s.CustomURL,
	}
}

type PostgresTrackingRepository struct {
	db *sqlx.DB
}

func NewPostgresTrackingRepository(db *sqlx.DB) *PostgresTrackingRepository {
	return &PostgresTrackingRepository{
		db: db,
	}
}

// Add records a tracking number against an order.
func (r *PostgresTrackingRepository) Add(ctx context.Context, shipment tracking.Shipment) error {
	query, args, err := sq.Insert("shipment_tracking").
		Columns(
			"order_id",
			"tracking_number",
			"provider",
			"date_shipped",
			"custom_url",
			"created_at",
		).
		Values(
			shipment.OrderID,
			shipment.TrackingNumber,
			shipment.Provider,
			shipment.DateShipped,
			shipment.CustomURL,
			time.Now(),
		).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert shipment tracking: %w", err)
	}

	return nil
}

// Delete removes tracking records matching the order and number. An empty
// provider matches records from any provider.
func (r *PostgresTrackingRepository) Delete(ctx context.Context, orderID int64, trackingNumber, provider string) error {
	builder := sq.Delete("shipment_tracking").
		Where(sq.Eq{"order_id": orderID}).
		Where(sq.Eq{"tracking_number": trackingNumber})
	if provider != "" {
		builder = builder.Where(sq.Eq{"provider": provider})
	}

	query, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete shipment tracking: %w", err)
	}

	return nil
}

// ListByOrder returns the tracking records of an order, oldest first.
func (r *PostgresTrackingRepository) ListByOrder(ctx context.Context, orderID int64) ([]tracking.Shipment, error) {
	query, args, err := sq.Select(
		"id",
		"order_id",
		"tracking_number",
		"provider",
		"date_shipped",
		"custom_url",
		"created_at",
	).
		From("shipment_tracking").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dals []ShipmentDal
	if err := r.db.SelectContext(ctx, &dals, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query shipment tracking: %w", err)
	}

	shipments := make([]tracking.Shipment, 0, len(dals))
	for i := range dals {
		shipments = append(shipments, dals[i].ToModel())
	}

	return shipments, nil
}
