package models

import "encoding/json"

// CartLine aggregates one product within a cashier's cart. Name and price are
// snapshotted when the product is first added; the backend's price remains
// authoritative at sale time.
type CartLine struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// SaleItem is one entry of a sale submission. Price and name are deliberately
// omitted so the backend charges its own authoritative price.
type SaleItem struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"quantity"`
}

// SaleRequest is the body of POST /api/sales.
type SaleRequest struct {
	Cart []SaleItem `json:"cart"`
}

// SaleID is the server-assigned identifier of a settled sale, used to address
// its receipt. It is opaque to the terminal; backends disagree on whether it
// is a string or a number on the wire, so both decode.
type SaleID string

func (s *SaleID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = SaleID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = SaleID(n.String())
	return nil
}

func (s SaleID) String() string {
	return string(s)
}

// SaleResult is the backend's answer to a sale submission.
type SaleResult struct {
	Success bool   `json:"success"`
	SaleID  SaleID `json:"sale_id,omitempty"`
	Message string `json:"message,omitempty"`
}
