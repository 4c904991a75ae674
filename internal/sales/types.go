package sales

import "github.com/shopspring/decimal"

// State is a sale's fulfillment status as the CMS tracks it.
type State string

const (
	StatePending   State = "PorPagar"
	StateReserved  State = "Reservado"
	StateShipped   State = "Enviado"
	StateDelivered State = "Entregado"
	StateCancelled State = "Cancelado"
)

// Valid reports whether the state belongs to the CMS's closed set.
func (s State) Valid() bool {
	switch s {
	case StatePending, StateReserved, StateShipped, StateDelivered, StateCancelled:
		return true
	}
	return false
}

// SaleProduct is one ordered line within a sale record.
type SaleProduct struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SaleData is the order form submitted when recording a sale.
type SaleData struct {
	Name       string        `json:"name"`
	LastName   string        `json:"lastName"`
	Mail       string        `json:"mail"`
	Phone      string        `json:"phone"`
	Address    string        `json:"adress"` // field name matches the CMS schema
	PostalCode string        `json:"postalCode"`
	Region     string        `json:"region"`
	Products   []SaleProduct `json:"products"`
	Others     string        `json:"others,omitempty"`
	Type       string        `json:"type"`
}

// Sale is the CMS's stored sale record.
type Sale struct {
	ID            int              `json:"id"`
	TotalPrice    *decimal.Decimal `json:"TotalPrice,omitempty"`
	Date          string           `json:"date,omitempty"`
	Name          string           `json:"name,omitempty"`
	LastName      string           `json:"lastName,omitempty"`
	Mail          string           `json:"mail,omitempty"`
	Address       string           `json:"adress,omitempty"`
	Others        string           `json:"others,omitempty"`
	PostalCode    string           `json:"postalCode,omitempty"`
	Region        string           `json:"region,omitempty"`
	Phone         string           `json:"phone,omitempty"`
	Products      []SaleProduct    `json:"products,omitempty"`
	State         State            `json:"state,omitempty"`
	TransactionID string           `json:"transactionId,omitempty"`
	Type          string           `json:"type,omitempty"`
	CreatedAt     string           `json:"createdAt,omitempty"`
	UpdatedAt     string           `json:"updatedAt,omitempty"`
}

// CreateSaleResult is what the CMS returns when a sale is recorded.
type CreateSaleResult struct {
	URL    string `json:"url"`
	SaleID int    `json:"saleId,omitempty"`
}
