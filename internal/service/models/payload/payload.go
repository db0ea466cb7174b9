package payload

import "github.com/corray333/order-bridge/internal/service/models/order"

// placeholder is used by the partner for absent transaction data.
const placeholder = "0000"

// transactionStatusSettled is the partner's status code for a settled
// transaction.
const transactionStatusSettled = 2

// paymentMethodLabel marks transactions as originating from the store
// checkout rather than a partner-side terminal.
const paymentMethodLabel = "WooCommerce Payment"

// LineItem is one order line in the partner schema.
type LineItem struct {
	Name  string `json:"name"`
	Qty   int    `json:"qty"`
	Price string `json:"price"`
	SKU   string `json:"sku"`
}

// Transaction is one payment transaction in the partner schema. The store
// does not track individual transactions, so exactly one synthetic entry
// is produced per order.
type Transaction struct {
	Log            string `json:"transaction_log"`
	Amount         string `json:"transaction_amount"`
	LastFourDigits string `json:"transaction_last_four_digits"`
	ID             string `json:"transaction_id"`
	StatusID       int    `json:"transaction_status_id"`
	PaymentMethod  string `json:"transaction_payment_method"`
}

// Payload is the flat order representation expected by the partner insert
// endpoint. The partner requires every field to be present on every
// request; fields without data carry an empty string, never null. The
// unprefixed contact fields duplicate billing data for compatibility with
// the oldest partner schema version.
type Payload struct {
	FName         string `json:"fname"`
	LName         string `json:"lname"`
	Company       string `json:"company"`
	CustomerEmail string `json:"customer_email"`
	Phone         string `json:"phone"`
	Notes         string `json:"notes"`
	Fax           string `json:"fax"`
	Gender        string `json:"gender"`
	PhoneExt      string `json:"phone_ext"`
	Website       string `json:"website"`
	DefaultBillID string `json:"default_bill_id"`
	DefaultShipID string `json:"default_ship_id"`

	ShipFName    string `json:"ship_fname"`
	ShipLName    string `json:"ship_lname"`
	ShipAddress1 string `json:"ship_address1"`
	ShipAddress2 string `json:"ship_address2"`
	ShipCompany  string `json:"ship_company"`
	ShipCity     string `json:"ship_city"`
	ShipState    string `json:"ship_state"`
	ShipCountry  string `json:"ship_country"`
	ShipZip      string `json:"ship_zip"`
	ShipPhone    string `json:"ship_phone"`
	ShipPhoneExt string `json:"ship_phone_ext"`
	ShipFax      string `json:"ship_fax"`

	BillFName    string `json:"bill_fname"`
	BillLName    string `json:"bill_lname"`
	BillAddress1 string `json:"bill_address1"`
	BillAddress2 string `json:"bill_address2"`
	BillCompany  string `json:"bill_company"`
	BillCity     string `json:"bill_city"`
	BillState    string `json:"bill_state"`
	BillCountry  string `json:"bill_country"`
	BillZip      string `json:"bill_zip"`
	BillPhone    string `json:"bill_phone"`
	BillPhoneExt string `json:"bill_phone_ext"`
	BillFax      string `json:"bill_fax"`

	DiscountAmount      string        `json:"discount_amount"`
	Details             []LineItem    `json:"details"`
	StoreName           string        `json:"store_name"`
	TrackingNum         string        `json:"tracking_num"`
	CustomerNotes       string        `json:"customer_notes"`
	Time                string        `json:"time"`
	ModifiedOn          string        `json:"modified_on"`
	Total               string        `json:"total"`
	TotalTax            string        `json:"total_tax"`
	ShippingFee         string        `json:"shipping_fee"`
	Status              string        `json:"status"`
	PoNum               int64         `json:"po_num"`
	WcCustomerID        int64         `json:"wc_customer_id"`
	Transactions        []Transaction `json:"transactions"`
	ShippingMethodTitle string        `json:"shipping_method_title"`
}

// FromOrder maps an order onto the partner schema. It is pure: the same
// order and store name always produce the same payload, and it cannot fail
// for any well-formed order. Sub-fields the order does not carry are
// mapped to the empty string.
func FromOrder(ord order.Order, storeName string) Payload {
	return Payload{
		FName:         ord.Billing.FirstName,
		LName:         ord.Billing.LastName,
		Company:       ord.Billing.Company,
		CustomerEmail: ord.Billing.Email,
		Phone:         ord.Billing.Phone,

		ShipFName:    ord.Shipping.FirstName,
		ShipLName:    ord.Shipping.LastName,
		ShipAddress1: ord.Shipping.Address1,
		ShipAddress2: ord.Shipping.Address2,
		ShipCompany:  ord.Shipping.Company,
		ShipCity:     ord.Shipping.City,
		ShipState:    ord.Shipping.State,
		ShipCountry:  ord.Shipping.Country,
		ShipZip:      ord.Shipping.Postcode,

		BillFName:    ord.Billing.FirstName,
		BillLName:    ord.Billing.LastName,
		BillAddress1: ord.Billing.Address1,
		BillAddress2: ord.Billing.Address2,
		BillCompany:  ord.Billing.Company,
		BillCity:     ord.Billing.City,
		BillState:    ord.Billing.State,
		BillCountry:  ord.Billing.Country,
		BillZip:      ord.Billing.Postcode,
		BillPhone:    ord.Billing.Phone,

		DiscountAmount:      ord.DiscountTotal,
		Details:             lineItems(ord.LineItems),
		StoreName:           storeName,
		CustomerNotes:       ord.CustomerNote,
		Time:                ord.DateCreated,
		ModifiedOn:          ord.DateModified,
		Total:               ord.Total,
		TotalTax:            ord.TotalTax,
		ShippingFee:         ord.ShippingTotal,
		Status:              ord.Status.String(),
		PoNum:               ord.ID,
		WcCustomerID:        ord.CustomerID,
		Transactions:        []Transaction{transaction(ord)},
		ShippingMethodTitle: shippingMethodTitle(ord.ShippingLines),
	}
}

// lineItems maps order lines onto partner details, preserving order.
func lineItems(items []order.LineItem) []LineItem {
	details := make([]LineItem, 0, len(items))
	for _, item := range items {
		details = append(details, LineItem{
			Name:  item.Name,
			Qty:   item.Quantity,
			Price: item.Price,
			SKU:   item.SKU,
		})
	}

	return details
}

// transaction builds the single synthetic transaction entry.
func transaction(ord order.Order) Transaction {
	transactionID := ord.TransactionID
	if transactionID == "" {
		transactionID = placeholder
	}

	return Transaction{
		Amount:         ord.Total,
		LastFourDigits: placeholder,
		ID:             transactionID,
		StatusID:       transactionStatusSettled,
		PaymentMethod:  paymentMethodLabel,
	}
}

// shippingMethodTitle takes the title of the first shipping line, if any.
func shippingMethodTitle(lines []order.ShippingLine) string {
	if len(lines) == 0 {
		return ""
	}

	return lines[0].MethodTitle
}
