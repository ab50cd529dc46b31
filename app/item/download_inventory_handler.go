package item

import (
	"context"
	"fmt"
	"inventory/domain"
	"inventory/pkg/export"
	"inventory/pkg/httperror"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DownloadInventoryHandler struct {
	repository Repository
	archiver   Archiver
}

// NewDownloadInventoryHandler accepts a nil archiver to disable export archiving.
func NewDownloadInventoryHandler(repository Repository, archiver Archiver) *DownloadInventoryHandler {
	return &DownloadInventoryHandler{
		repository: repository,
		archiver:   archiver,
	}
}

type DownloadInventoryRequest struct {
	Condition string `query:"condition"`
}

// DownloadInventoryResponse is sent as a file attachment instead of JSON.
type DownloadInventoryResponse struct {
	Body []byte
}

func (r DownloadInventoryResponse) AttachmentName() string {
	return export.FileName
}

func (r DownloadInventoryResponse) ContentType() string {
	return export.ContentType
}

func (r DownloadInventoryResponse) Bytes() []byte {
	return r.Body
}

func (h DownloadInventoryHandler) Handle(ctx context.Context, req *DownloadInventoryRequest) (*DownloadInventoryResponse, error) {
	var (
		items []domain.Item
		err   error
	)

	if req.Condition != "" {
		items, err = h.repository.GetItemsByCondition(ctx, req.Condition)
	} else {
		items, err = h.repository.GetItems(ctx)
	}
	if err != nil {
		zap.L().Error("Failed to load items for export", zap.String("condition", req.Condition), zap.Error(err))
		return nil, httperror.InternalServerError(
			"item.export.failed",
			"Failed to retrieve items",
			nil,
		)
	}

	body, err := export.Format(items)
	if err != nil {
		zap.L().Error("Failed to build inventory workbook", zap.Error(err))
		return nil, httperror.InternalServerError(
			"item.export.format_failed",
			"Failed to build the spreadsheet",
			nil,
		)
	}

	h.archive(body)

	return &DownloadInventoryResponse{Body: body}, nil
}

func (h DownloadInventoryHandler) archive(body []byte) {
	if h.archiver == nil {
		return
	}

	key := ArchiveKey(time.Now().UTC(), uuid.New())
	if err := h.archiver.Upload(key, body); err != nil {
		zap.L().Error("Failed to archive inventory export", zap.String("key", key), zap.Error(err))
		return
	}

	zap.L().Info("Inventory export archived", zap.String("key", key))
}

func ArchiveKey(now time.Time, id uuid.UUID) string {
	return fmt.Sprintf("exports/%s/%s.xlsx", now.Format(domain.DateLayout), id.String())
}
