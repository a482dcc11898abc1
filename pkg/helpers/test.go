package helpers

import (
	"context"
	"log/slog"

	"github.com/GregMSThompson/outlet-dashboard/pkg/logger"
)

// TestCtx returns a context carrying a test logger. Debug is enabled so
// debug-only logging paths run under test too.
func TestCtx() context.Context {
	log := slog.New(logger.NewTestHandler(slog.LevelDebug))
	return logger.ToContext(context.Background(), log)
}
