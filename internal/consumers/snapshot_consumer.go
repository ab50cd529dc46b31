package consumers

import (
	"context"
	"fmt"
	"inventory/domain"
	"inventory/pkg/events"
	"inventory/pkg/export"
	"strings"

	"go.uber.org/zap"
)

// SnapshotKey is where the latest full workbook is kept.
const SnapshotKey = "snapshots/" + export.FileName

type ItemLister interface {
	GetItems(ctx context.Context) ([]domain.Item, error)
}

type Uploader interface {
	Upload(key string, data []byte) error
}

// SnapshotHandler regenerates the full inventory workbook whenever an item changes.
type SnapshotHandler struct {
	repository ItemLister
	uploader   Uploader
	logger     *zap.Logger
}

func NewSnapshotHandler(repository ItemLister, uploader Uploader, logger *zap.Logger) *SnapshotHandler {
	return &SnapshotHandler{
		repository: repository,
		uploader:   uploader,
		logger:     logger,
	}
}

func (h *SnapshotHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	h.logger.Info("Item event received",
		zap.String("event", event.Event),
		zap.String("version", event.Version),
		zap.String("traceId", event.TraceID),
	)

	if !strings.HasPrefix(event.Event, events.ItemDomain+".") {
		h.logger.Warn("Unknown event type", zap.String("event", event.Event))
		return nil
	}

	itemID, err := eventItemID(event)
	if err != nil {
		return err
	}

	items, err := h.repository.GetItems(ctx)
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}

	body, err := export.Format(items)
	if err != nil {
		return fmt.Errorf("format snapshot: %w", err)
	}

	if err := h.uploader.Upload(SnapshotKey, body); err != nil {
		return fmt.Errorf("upload snapshot: %w", err)
	}

	h.logger.Info("Inventory snapshot refreshed",
		zap.Int64("itemId", itemID),
		zap.Int("items", len(items)),
		zap.String("key", SnapshotKey),
	)

	return nil
}

// eventItemID rejects events without an item id so they are dead-lettered.
func eventItemID(event *events.Event) (int64, error) {
	var payload struct {
		ID int64 `json:"id"`
	}
	if err := event.DecodePayload(&payload); err != nil {
		return 0, err
	}
	if payload.ID <= 0 {
		return 0, fmt.Errorf("malformed payload - id missing or invalid")
	}
	return payload.ID, nil
}
