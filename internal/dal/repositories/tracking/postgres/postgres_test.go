package postgresrepo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/corray333/order-bridge/internal/service/models/tracking"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*PostgresTrackingRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return NewPostgresTrackingRepository(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func TestAdd(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("INSERT INTO shipment_tracking").
		WithArgs(int64(5), "ABC123", "UPS", "2026-08-01", "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Add(context.Background(), tracking.Shipment{
		OrderID:        5,
		TrackingNumber: "ABC123",
		Provider:       "UPS",
		DateShipped:    "2026-08-01",
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_WithProviderFilter(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("DELETE FROM shipment_tracking WHERE order_id = \\$1 AND tracking_number = \\$2 AND provider = \\$3").
		WithArgs(int64(7), "ABC123", "UPS").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), 7, "ABC123", "UPS")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_WithoutProviderFilter(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("DELETE FROM shipment_tracking WHERE order_id = \\$1 AND tracking_number = \\$2$").
		WithArgs(int64(7), "ABC123").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), 7, "ABC123", "")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByOrder(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT .+ FROM shipment_tracking WHERE order_id = \\$1 ORDER BY id ASC").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "order_id", "tracking_number", "provider", "date_shipped", "custom_url", "created_at",
		}).
			AddRow(int64(1), int64(5), "ABC123", "UPS", "2026-08-01", "", time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)))

	shipments, err := repo.ListByOrder(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, shipments, 1)
	assert.Equal(t, "ABC123", shipments[0].TrackingNumber)
	assert.Equal(t, "UPS", shipments[0].Provider)
	assert.NoError(t, mock.ExpectationsWereMet())
}
