package postgresrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/order-bridge/internal/service/models/order"
	"github.com/jmoiron/sqlx"
)

// OrderDal represents the order data access layer model.
type OrderDal struct {
	ID                int64     `db:"id"`
	CustomerID        int64     `db:"customer_id"`
	Status            string    `db:"status"`
	CustomerNote      string    `db:"customer_note"`
	TransactionID     string    `db:"transaction_id"`
	DiscountTotal     string    `db:"discount_total"`
	ShippingTotal     string    `db:"shipping_total"`
	TotalTax          string    `db:"total_tax"`
	Total             string    `db:"total"`
	BillingFirstName  string    `db:"billing_first_name"`
	BillingLastName   string    `db:"billing_last_name"`
	BillingCompany    string    `db:"billing_company"`
	BillingAddress1   string    `db:"billing_address1"`
	BillingAddress2   string    `db:"billing_address2"`
	BillingCity       string    `db:"billing_city"`
	BillingState      string    `db:"billing_state"`
	BillingPostcode   string    `db:"billing_postcode"`
	BillingCountry    string    `db:"billing_country"`
	BillingEmail      string    `db:"billing_email"`
	BillingPhone      string    `db:"billing_phone"`
	ShippingFirstName string    `db:"shipping_first_name"`
	ShippingLastName  string    `db:"shipping_last_name"`
	ShippingCompany   string    `db:"shipping_company"`
	ShippingAddress1  string    `db:"shipping_address1"`
	ShippingAddress2  string    `db:"shipping_address2"`
	ShippingCity      string    `db:"shipping_city"`
	ShippingState     string    `db:"shipping_state"`
	ShippingPostcode  string    `db:"shipping_postcode"`
	ShippingCountry   string    `db:"shipping_country"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() *order.Order {
	return &order.Order{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Status:     order.Status(o.Status),
		Billing: order.Address{
			FirstName: o.BillingFirstName,
			LastName:  o.BillingLastName,
			Company:   o.BillingCompany,
			Address1:  o.BillingAddress1,
			Address2:  o.BillingAddress2,
			City:      o.BillingCity,
			State:     o.BillingState,
			Postcode:  o.BillingPostcode,
			Country:   o.BillingCountry,
			Email:     o.BillingEmail,
			Phone:     o.BillingPhone,
		},
		Shipping: order.Address{
			FirstName: o.ShippingFirstName,
			LastName:  o.ShippingLastName,
			Company:   o.ShippingCompany,
			Address1:  o.ShippingAddress1,
			Address2:  o.ShippingAddress2,
			City:      o.ShippingCity,
			State:     o.ShippingState,
			Postcode:  o.ShippingPostcode,
			Country:   o.ShippingCountry,
		},
		LineItems:     []order.LineItem{},
		ShippingLines: []order.ShippingLine{},
		CustomerNote:  o.CustomerNote,
		TransactionID: o.TransactionID,
		DiscountTotal: o.DiscountTotal,
		ShippingTotal: o.ShippingTotal,
		TotalTax:      o.TotalTax,
		Total:         o.Total,
		DateCreated:   o.CreatedAt.UTC().Format(time.RFC3339),
		DateModified:  o.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// LineItemDal represents the order line item data access layer model.
type LineItemDal struct {
	ID       int64  `db:"id"`
	OrderID  int64  `db:"order_id"`
	Name     string `db:"name"`
	Quantity int    `db:"quantity"`
	Price    string `db:"price"`
	SKU      string `db:"sku"`
}

// ToModel converts LineItemDal to the service layer LineItem model.
func (l *LineItemDal) ToModel() order.LineItem {
	return order.LineItem{
		ID:       l.ID,
		OrderID:  l.OrderID,
		Name:     l.Name,
		Quantity: l.Quantity,
		Price:    l.Price,
		SKU:      l.SKU,
	}
}

// ShippingLineDal represents the order shipping line data access layer model.
type ShippingLineDal struct {
	ID          int64  `db:"id"`
	OrderID     int64  `db:"order_id"`
	MethodTitle string `db:"method_title"`
	Total       string `db:"total"`
}

// ToModel converts ShippingLineDal to the service layer ShippingLine model.
func (s *ShippingLineDal) ToModel() order.ShippingLine {
	return order.ShippingLine{
		ID:          s.ID,
		OrderID:     s.OrderID,
		MethodTitle: s.MethodTitle,
		Total:       s.Total,
	}
}

type PostgresOrderRepository struct {
	db *sqlx.DB
}

func NewPostgresOrderRepository(db *sqlx.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		db: db,
	}
}

// GetByID retrieves one order with its line items and shipping lines.
// Returns (nil, nil) when the order does not exist.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	query, args, err := sq.Select(
		"id",
		"customer_id",
		"status",
		"customer_note",
		"transaction_id",
		"discount_total::text AS discount_total",
		"shipping_total::text AS shipping_total",
		"total_tax::text AS total_tax",
		"total::text AS total",
		"billing_first_name",
		"billing_last_name",
		"billing_company",
		"billing_address1",
		"billing_address2",
		"billing_city",
		"billing_state",
		"billing_postcode",
		"billing_country",
		"billing_email",
		"billing_phone",
		"shipping_first_name",
		"shipping_last_name",
		"shipping_company",
		"shipping_address1",
		"shipping_address2",
		"shipping_city",
		"shipping_state",
		"shipping_postcode",
		"shipping_country",
		"created_at",
		"updated_at",
	).
		From("orders").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dal OrderDal
	if err := r.db.GetContext(ctx, &dal, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	ord := dal.ToModel()

	lineItems, err := r.queryLineItems(ctx, id)
	if err != nil {
		return nil, err
	}
	ord.LineItems = lineItems

	shippingLines, err := r.queryShippingLines(ctx, id)
	if err != nil {
		return nil, err
	}
	ord.ShippingLines = shippingLines

	return ord, nil
}

// UpdateStatus sets the status of an order.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id int64, status order.Status) error {
	query, args, err := sq.Update("orders").
		Set("status", status.String()).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	return nil
}

// queryLineItems loads the line items of an order in insertion order.
func (r *PostgresOrderRepository) queryLineItems(ctx context.Context, orderID int64) ([]order.LineItem, error) {
	query, args, err := sq.Select(
		"id",
		"order_id",
		"name",
		"quantity",
		"price::text AS price",
		"sku",
	).
		From("order_line_items").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dals []LineItemDal
	if err := r.db.SelectContext(ctx, &dals, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query line items: %w", err)
	}

	items := make([]order.LineItem, 0, len(dals))
	for i := range dals {
		items = append(items, dals[i].ToModel())
	}

	return items, nil
}

// queryShippingLines loads the shipping lines of an order in insertion order.
func (r *PostgresOrderRepository) queryShippingLines(ctx context.Context, orderID int64) ([]order.ShippingLine, error) {
	query, args, err := sq.Select(
		"id",
		"order_id",
		"method_title",
		"total::text AS total",
	).
		From("order_shipping_lines").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dals []ShippingLineDal
	if err := r.db.SelectContext(ctx, &dals, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query shipping lines: %w", err)
	}

	lines := make([]order.ShippingLine, 0, len(dals))
	for i := range dals {
		lines = append(lines, dals[i].ToModel())
	}

	return lines, nil
}
