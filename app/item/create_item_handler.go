package item

import (
	"context"
	"inventory/domain"
	"inventory/pkg/events"
	"inventory/pkg/httperror"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CreateItemHandler struct {
	repository     Repository
	eventPublisher events.Publisher
	serviceName    string
}

type CreateItemRequest struct {
	ItemFields
}

type CreateItemResponse struct {
	MessageResponse
}

func (CreateItemResponse) StatusCode() int {
	return fiber.StatusCreated
}

func NewCreateItemHandler(repository Repository, eventPublisher events.Publisher, serviceName string) *CreateItemHandler {
	return &CreateItemHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
		serviceName:    serviceName,
	}
}

func (h CreateItemHandler) Handle(ctx context.Context, req *CreateItemRequest) (*CreateItemResponse, error) {
	if err := validateRequest(req, "create"); err != nil {
		return nil, err
	}

	newItem, err := req.toItem(0)
	if err != nil {
		return nil, httperror.BadRequest("item.create.invalid_date", "Validation failed for the request", err.Error())
	}

	created, err := h.repository.Create(ctx, newItem)
	if err != nil {
		zap.L().Error("Failed to create item", zap.Error(err))
		return nil, httperror.InternalServerError(
			"item.create.create_failed",
			"An error occurred while creating the item",
			nil,
		)
	}

	h.publishEvent(ctx, created)

	return &CreateItemResponse{
		MessageResponse{Message: "Item added successfully"},
	}, nil
}

func (h CreateItemHandler) publishEvent(ctx context.Context, item domain.Item) {
	payload := changedPayload(item)
	if err := emitItemEvent(ctx, h.eventPublisher, h.serviceName, events.ItemCreatedEvent, payload); err != nil {
		zap.L().Error("Failed to publish item.created event",
			zap.Int64("itemId", item.ID),
			zap.Error(err),
		)
	}
}

func changedPayload(item domain.Item) events.ItemChangedPayload {
	return events.ItemChangedPayload{
		ID:        item.ID,
		ItemName:  item.ItemName,
		Quantity:  item.Quantity,
		DateAdded: item.DateAdded.String(),
		Price:     item.Price,
		Condition: item.Condition,
		ChangedAt: time.Now().UTC(),
	}
}
