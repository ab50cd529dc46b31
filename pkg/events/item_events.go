package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Domain constants
const (
	ItemDomain   = "item"
	ItemExchange = "inventory.item"
)

// Event names
const (
	ItemCreatedEvent = "item.created"
	ItemUpdatedEvent = "item.updated"
	ItemDeletedEvent = "item.deleted"
)

// Event versions
const (
	EventVersionV1 = "v1"
)

// ItemRoutingKeys matches every item event of the current version.
var ItemRoutingKeys = []string{ItemDomain + ".*." + EventVersionV1}

// ItemChangedPayload is carried by item.created and item.updated
type ItemChangedPayload struct {
	ID        int64           `json:"id"`
	ItemName  string          `json:"itemName"`
	Quantity  int             `json:"quantity"`
	DateAdded string          `json:"dateAdded"`
	Price     decimal.Decimal `json:"price"`
	Condition string          `json:"condition"`
	ChangedAt time.Time       `json:"changedAt"`
}

type ItemDeletedPayload struct {
	ID        int64     `json:"id"`
	DeletedAt time.Time `json:"deletedAt"`
}
