package bootstrap

import (
	"context"
	"log/slog"

	vertexclient "github.com/GregMSThompson/outlet-dashboard/internal/client/vertex"
)

func InitVertex(ctx context.Context, log *slog.Logger, projectID, region, model string) (*vertexclient.Adapter, error) {
	return vertexclient.NewAdapter(ctx, log, projectID, region, model)
}
