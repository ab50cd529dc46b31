package item

import (
	"context"
	"inventory/domain"
)

type Repository interface {
	Close() error
	Ping(ctx context.Context) error
	GetItems(ctx context.Context) ([]domain.Item, error)
	GetItemsByCondition(ctx context.Context, condition string) ([]domain.Item, error)
	GetItem(ctx context.Context, id int64) (domain.Item, error)
	Create(ctx context.Context, item domain.Item) (domain.Item, error)
	Update(ctx context.Context, item domain.Item) error
	DeleteItem(ctx context.Context, id int64) error
}

// Archiver stores a copy of a generated export. Implemented by the S3 bucket.
type Archiver interface {
	Upload(key string, data []byte) error
}

// MessageResponse is the acknowledgement body shared by the write endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
