package domain

import (
	"github.com/shopspring/decimal"
)

// Item is one inventory record. ID is assigned by the store and never changes.
type Item struct {
	ID        int64           `db:"id" json:"id"`
	ItemName  string          `db:"item_name" json:"item_name"`
	Quantity  int             `db:"quantity" json:"quantity"`
	DateAdded Date            `db:"date_added" json:"date_added"`
	Price     decimal.Decimal `db:"price" json:"price"`
	Condition string          `db:"condition" json:"condition"`
}
