package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	sheetsclient "github.com/GregMSThompson/outlet-dashboard/internal/client/sheets"
	"github.com/GregMSThompson/outlet-dashboard/internal/metrics"
)

type secretReader interface {
	GetSecret(ctx context.Context, name string) ([]byte, error)
}

// InitSheets builds the Sheets adapter. With no secret configured it uses
// Application Default Credentials; otherwise the secret must hold a service
// account JSON key that has been shared on the spreadsheets.
func InitSheets(ctx context.Context, log *slog.Logger, m *metrics.Metrics, secrets secretReader, secretName string) (*sheetsclient.Adapter, error) {
	if secretName == "" || secrets == nil {
		log.Info("sheets client using application default credentials")
		return sheetsclient.NewAdapter(ctx, log, m)
	}

	key, err := secrets.GetSecret(ctx, secretName)
	if err != nil {
		return nil, fmt.Errorf("read sheets credentials: %w", err)
	}

	jwtCfg, err := google.JWTConfigFromJSON(key, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse sheets credentials: %w", err)
	}

	log.Info("sheets client using service account", "email", jwtCfg.Email)
	return sheetsclient.NewAdapter(ctx, log, m, option.WithHTTPClient(jwtCfg.Client(ctx)))
}
