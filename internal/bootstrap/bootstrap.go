package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"firebase.google.com/go/v4/auth"

	sheetsclient "github.com/GregMSThompson/outlet-dashboard/internal/client/sheets"
	vertexclient "github.com/GregMSThompson/outlet-dashboard/internal/client/vertex"
	"github.com/GregMSThompson/outlet-dashboard/internal/config"
	"github.com/GregMSThompson/outlet-dashboard/internal/metrics"
	"github.com/GregMSThompson/outlet-dashboard/internal/store"
	"github.com/GregMSThompson/outlet-dashboard/pkg/logger"
)

type Bootstrap struct {
	Log           *slog.Logger
	Metrics       *metrics.Metrics
	Firestore     *firestore.Client
	Firebase      *auth.Client
	SecretManager *secretmanager.Client
	SheetsAdapter *sheetsclient.Adapter
	VertexAdapter *vertexclient.Adapter
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	applicationCtx = logger.ToContext(applicationCtx, bs.Log)
	bs.Metrics = metrics.New()

	if err := cfg.Validate(); err != nil {
		return bs, err
	}

	bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID, cfg.FirestoreDatabase)
	if err != nil {
		return bs, err
	}
	if cfg.AuthEnabled {
		bs.Firebase, err = InitFirebase(applicationCtx, cfg.ProjectID)
		if err != nil {
			return bs, err
		}
	}

	var secrets secretReader
	if cfg.SheetsCredentialsSecret != "" {
		bs.SecretManager, err = InitSecretManager(applicationCtx)
		if err != nil {
			return bs, err
		}
		secrets = store.NewSecretsStore(bs.SecretManager, cfg.ProjectID)
	}
	bs.SheetsAdapter, err = InitSheets(applicationCtx, bs.Log, bs.Metrics, secrets, cfg.SheetsCredentialsSecret)
	if err != nil {
		return bs, err
	}
	bs.SheetsAdapter.SetReadsPerMinute(cfg.SheetsReadsPerMinute)

	bs.VertexAdapter, err = InitVertex(applicationCtx, bs.Log, cfg.ProjectID, cfg.Region, cfg.VertexModel)
	if err != nil {
		return bs, err
	}

	return bs, nil
}

// Close releases every client Run created. It is safe after a partial Run.
func (bs *Bootstrap) Close() error {
	var errList []error
	if bs.VertexAdapter != nil {
		errList = append(errList, bs.VertexAdapter.Close())
	}
	if bs.SecretManager != nil {
		errList = append(errList, bs.SecretManager.Close())
	}
	if bs.Firestore != nil {
		errList = append(errList, bs.Firestore.Close())
	}
	return errors.Join(errList...)
}
