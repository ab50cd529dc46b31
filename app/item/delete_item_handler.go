package item

import (
	"context"
	"database/sql"
	"errors"
	"inventory/pkg/events"
	"inventory/pkg/httperror"
	"time"

	"go.uber.org/zap"
)

type DeleteItemHandler struct {
	repository     Repository
	eventPublisher events.Publisher
	serviceName    string
}

func NewDeleteItemHandler(repository Repository, eventPublisher events.Publisher, serviceName string) *DeleteItemHandler {
	return &DeleteItemHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
		serviceName:    serviceName,
	}
}

type DeleteItemRequest struct {
	ItemID int64 `params:"id"`
}

type DeleteItemResponse struct {
	MessageResponse
}

func (h DeleteItemHandler) Handle(ctx context.Context, req *DeleteItemRequest) (*DeleteItemResponse, error) {
	err := h.repository.DeleteItem(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"item.destroy.not_found",
				"Item not found",
				nil,
			)
		}

		zap.L().Error("Failed to delete item", zap.Int64("itemId", req.ItemID), zap.Error(err))
		return nil, httperror.InternalServerError(
			"item.destroy.failed",
			"Failed to delete item",
			nil,
		)
	}

	h.publishEvent(ctx, req.ItemID)

	return &DeleteItemResponse{
		MessageResponse{Message: "Item deleted successfully"},
	}, nil
}

func (h DeleteItemHandler) publishEvent(ctx context.Context, id int64) {
	payload := events.ItemDeletedPayload{
		ID:        id,
		DeletedAt: time.Now().UTC(),
	}

	if err := emitItemEvent(ctx, h.eventPublisher, h.serviceName, events.ItemDeletedEvent, payload); err != nil {
		zap.L().Error("Failed to publish item.deleted event",
			zap.Int64("itemId", id),
			zap.Error(err),
		)
	}
}
