package order

// Status represents an order lifecycle status.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

func (s Status) String() string {
	return string(s)
}

// Address represents a billing or shipping address attached to an order.
type Address struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// LineItem represents a purchased item within an order.
type LineItem struct {
	ID       int64  `json:"id"`
	OrderID  int64  `json:"orderId"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
	SKU      string `json:"sku"`
}

// ShippingLine represents one shipping method charged on an order.
type ShippingLine struct {
	ID          int64  `json:"id"`
	OrderID     int64  `json:"orderId"`
	MethodTitle string `json:"methodTitle"`
	Total       string `json:"total"`
}

// Order represents an order in the host store. The bridge only reads
// orders and updates their status; it never creates or deletes them.
type Order struct {
	ID            int64          `json:"id"`
	CustomerID    int64          `json:"customerId"`
	Status        Status         `json:"status"`
	Billing       Address        `json:"billing"`
	Shipping      Address        `json:"shipping"`
	LineItems     []LineItem     `json:"lineItems"`
	ShippingLines []ShippingLine `json:"shippingLines"`
	CustomerNote  string         `json:"customerNote"`
	TransactionID string         `json:"transactionId"`
	DiscountTotal string         `json:"discountTotal"`
	ShippingTotal string         `json:"shippingTotal"`
	TotalTax      string         `json:"totalTax"`
	Total         string         `json:"total"`
	DateCreated   string         `json:"dateCreated"`
	DateModified  string         `json:"dateModified"`
}
