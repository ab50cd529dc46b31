package item

import (
	"context"
	"database/sql"
	"errors"
	"inventory/domain"
	"inventory/pkg/events"
	"inventory/pkg/httperror"

	"go.uber.org/zap"
)

type UpdateItemHandler struct {
	repository     Repository
	eventPublisher events.Publisher
	serviceName    string
}

type UpdateItemRequest struct {
	ItemID int64 `params:"id" json:"-"`
	ItemFields
}

type UpdateItemResponse struct {
	MessageResponse
}

func NewUpdateItemHandler(repository Repository, eventPublisher events.Publisher, serviceName string) *UpdateItemHandler {
	return &UpdateItemHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
		serviceName:    serviceName,
	}
}

func (h UpdateItemHandler) Handle(ctx context.Context, req *UpdateItemRequest) (*UpdateItemResponse, error) {
	if err := validateRequest(req, "update"); err != nil {
		return nil, err
	}

	item, err := req.toItem(req.ItemID)
	if err != nil {
		return nil, httperror.BadRequest("item.update.invalid_date", "Validation failed for the request", err.Error())
	}

	if err := h.repository.Update(ctx, item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound(
				"item.update.not_found",
				"Item not found",
				nil,
			)
		}

		zap.L().Error("Failed to update item", zap.Int64("itemId", req.ItemID), zap.Error(err))
		return nil, httperror.InternalServerError(
			"item.update.update_failed",
			"An error occurred while updating the item",
			nil,
		)
	}

	h.publishEvent(ctx, item)

	return &UpdateItemResponse{
		MessageResponse{Message: "Item updated successfully"},
	}, nil
}

func (h UpdateItemHandler) publishEvent(ctx context.Context, item domain.Item) {
	payload := changedPayload(item)
	if err := emitItemEvent(ctx, h.eventPublisher, h.serviceName, events.ItemUpdatedEvent, payload); err != nil {
		zap.L().Error("Failed to publish item.updated event",
			zap.Int64("itemId", item.ID),
			zap.Error(err),
		)
	}
}
