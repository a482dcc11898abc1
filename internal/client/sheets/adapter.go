package sheetsclient

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/GregMSThompson/outlet-dashboard/internal/errs"
)

type fetchObserver interface {
	ObserveSheetFetch(readRange string, elapsed time.Duration, err error)
}

// Adapter reads cell values from Google Sheets.
type Adapter struct {
	svc     *sheets.Service
	log     *slog.Logger
	metrics fetchObserver
	limiter *rate.Limiter
}

// readBurst lets a page load fetch the dashboard, checklist and stock-out
// tabs back to back before the limiter starts spacing reads.
const readBurst = 5

// NewAdapter builds a read-only Sheets client. Callers pass credentials
// through opts; without any the client uses Application Default Credentials.
func NewAdapter(ctx context.Context, log *slog.Logger, metrics fetchObserver, opts ...option.ClientOption) (*Adapter, error) {
	opts = append([]option.ClientOption{option.WithScopes(sheets.SpreadsheetsReadonlyScope)}, opts...)
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &Adapter{
		svc:     svc,
		log:     log,
		metrics: metrics,
		limiter: rate.NewLimiter(rate.Inf, 0),
	}, nil
}

// SetReadsPerMinute caps value reads to stay inside the Sheets API quota.
// n <= 0 removes the cap. Call it before the adapter is shared.
func (a *Adapter) SetReadsPerMinute(n int) {
	if n <= 0 {
		a.limiter = rate.NewLimiter(rate.Inf, 0)
		return
	}
	a.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), readBurst)
}

// GetValues returns the formatted values of readRange as rows of cells.
// Trailing empty cells and rows are omitted by the API, so rows differ in
// length.
func (a *Adapter) GetValues(ctx context.Context, spreadsheetID, readRange string) ([][]any, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, errs.NewExternalServiceError("sheets", "sheet read quota wait cancelled", true, err)
	}

	start := time.Now()
	resp, err := a.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	elapsed := time.Since(start)

	if a.metrics != nil {
		a.metrics.ObserveSheetFetch(readRange, elapsed, err)
	}
	if err != nil {
		return nil, toExternalError(ctx, err)
	}

	if a.log != nil {
		a.log.Debug("sheet values fetched",
			"spreadsheet_id", spreadsheetID,
			"range", readRange,
			"rows", len(resp.Values),
			"elapsed", elapsed)
	}
	return resp.Values, nil
}

func toExternalError(ctx context.Context, err error) error {
	var apiErr *googleapi.Error
	switch {
	case errors.As(err, &apiErr):
		transient := apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
		return errs.NewExternalServiceError("sheets", apiErr.Message, transient, err)
	case errors.Is(err, context.DeadlineExceeded), ctx.Err() != nil:
		return errs.NewExternalServiceError("sheets", "sheet read timed out", true, err)
	default:
		return errs.NewExternalServiceError("sheets", err.Error(), false, err)
	}
}
