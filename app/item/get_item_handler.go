package item

import (
	"context"
	"database/sql"
	"errors"
	"inventory/pkg/httperror"

	"go.uber.org/zap"
)

type GetItemHandler struct {
	repository Repository
}

func NewGetItemHandler(repository Repository) *GetItemHandler {
	return &GetItemHandler{
		repository: repository,
	}
}

type GetItemRequest struct {
	ItemID int64 `params:"id"`
}

type GetItemResponse = ItemResponse

func (h GetItemHandler) Handle(ctx context.Context, req *GetItemRequest) (*GetItemResponse, error) {
	item, err := h.repository.GetItem(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"item.show.not_found",
				"Item not found",
				nil,
			)
		}

		zap.L().Error("Failed to get item", zap.Int64("itemId", req.ItemID), zap.Error(err))
		return nil, httperror.InternalServerError(
			"item.show.failed",
			"Failed to retrieve item",
			nil,
		)
	}

	res := toItemResponse(item)
	return &res, nil
}
