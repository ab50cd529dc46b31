package health

import (
	"context"
	"inventory/pkg/httperror"
	"time"

	"go.uber.org/zap"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

type HealthRequest struct{}

type HealthResponse struct {
	Status string `json:"status"`
}

func (h HealthHandler) Handle(ctx context.Context, _ *HealthRequest) (*HealthResponse, error) {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := h.db.Ping(pingCtx); err != nil {
		zap.L().Warn("Database ping failed", zap.Error(err))
		return nil, httperror.ServiceUnavailable(
			"health.database_unavailable",
			"Database unavailable",
			nil,
		)
	}

	return &HealthResponse{Status: "ok"}, nil
}
