package item

import (
	"context"
	"inventory/domain"
	"inventory/pkg/httperror"

	"go.uber.org/zap"
)

type GetItemsHandler struct {
	repository Repository
}

func NewGetItemsHandler(repository Repository) *GetItemsHandler {
	return &GetItemsHandler{
		repository: repository,
	}
}

type GetItemsRequest struct{}

// ItemResponse renders price as a JSON number.
type ItemResponse struct {
	ID        int64       `json:"id"`
	ItemName  string      `json:"item_name"`
	Quantity  int         `json:"quantity"`
	DateAdded domain.Date `json:"date_added"`
	Price     float64     `json:"price"`
	Condition string      `json:"condition"`
}

type GetItemsResponse []ItemResponse

func (h GetItemsHandler) Handle(ctx context.Context, _ *GetItemsRequest) (*GetItemsResponse, error) {
	items, err := h.repository.GetItems(ctx)
	if err != nil {
		zap.L().Error("Failed to list items", zap.Error(err))
		return nil, httperror.InternalServerError(
			"item.index.failed",
			"Failed to retrieve items",
			nil,
		)
	}

	res := make(GetItemsResponse, 0, len(items))
	for _, i := range items {
		res = append(res, toItemResponse(i))
	}

	return &res, nil
}

func toItemResponse(i domain.Item) ItemResponse {
	return ItemResponse{
		ID:        i.ID,
		ItemName:  i.ItemName,
		Quantity:  i.Quantity,
		DateAdded: i.DateAdded,
		Price:     i.Price.InexactFloat64(),
		Condition: i.Condition,
	}
}
