package services

import (
	"errors"
	"testing"
	"time"

	"github.com/GregMSThompson/outlet-dashboard/internal/dto"
	"github.com/GregMSThompson/outlet-dashboard/internal/errs"
	"github.com/GregMSThompson/outlet-dashboard/internal/models"
	"github.com/GregMSThompson/outlet-dashboard/pkg/helpers"
)

var fixedNow = time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)

type chatFixture struct {
	vertex     *fakeVertexClient
	dashboard  *fakeDashboardReader
	stockOut   *fakeStockOutReader
	checklists *fakeChecklistReader
	store      *fakeChatStore
	recorder   *fakeChatRecorder
	svc        *chatService
}

func newChatFixture(responses ...dto.VertexGenerateResponse) *chatFixture {
	f := &chatFixture{
		vertex: &fakeVertexClient{responses: responses},
		dashboard: &fakeDashboardReader{resp: dto.DashboardResponse{
			DashboardData: dto.DashboardData{
				Outlets: []string{"Marina"},
				M2O:     []float64{12.5},
				Summary: dto.DashboardSummary{AvgM2O: "12.50", TotalOutlets: 1},
			},
		}},
		stockOut: &fakeStockOutReader{resp: dto.StockOutResponse{
			Items:    []dto.SheetRecord{{"Item": "Hummus", "Outlet": "Marina"}},
			ByOutlet: map[string]int{"Marina": 1},
			Total:    1,
		}},
		checklists: &fakeChecklistReader{},
		store:      &fakeChatStore{},
		recorder:   &fakeChatRecorder{},
	}
	f.svc = NewChatService(f.vertex, f.dashboard, f.stockOut, f.checklists, f.store, f.recorder, time.Hour)
	f.svc.clockNow = func() time.Time { return fixedNow }
	f.svc.newID = func() string { return "generated-session" }
	return f
}

func TestChatQueryToolFlow(t *testing.T) {
	f := newChatFixture(
		dto.VertexGenerateResponse{ToolCalls: []dto.VertexToolCall{
			{Name: toolOutletDashboard, Args: map[string]any{"period": "7 Day"}},
		}},
		dto.VertexGenerateResponse{Text: "Marina leads with 12.5% M2O."},
	)

	resp, err := f.svc.Query(helpers.TestCtx(), "user-1", "s1", "Which outlet converts best this week?")
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	if resp.Answer != "Marina leads with 12.5% M2O." {
		t.Fatalf("answer mismatch: %q", resp.Answer)
	}
	if resp.SessionID != "s1" {
		t.Fatalf("session mismatch: %q", resp.SessionID)
	}
	if resp.Debug == nil || resp.Debug.Tool != toolOutletDashboard {
		t.Fatalf("expected debug tool, got %+v", resp.Debug)
	}
	if len(f.dashboard.periods) != 1 || f.dashboard.periods[0] != "7 Day" {
		t.Fatalf("dashboard periods mismatch: %v", f.dashboard.periods)
	}

	if len(f.vertex.requests) != 2 {
		t.Fatalf("expected 2 model calls, got %d", len(f.vertex.requests))
	}
	if mode := f.vertex.requests[0].ToolConfig.Mode; mode != dto.FunctionCallingModeAuto {
		t.Fatalf("first call mode mismatch: %q", mode)
	}
	second := f.vertex.requests[1]
	if second.ToolConfig.Mode != dto.FunctionCallingModeNone {
		t.Fatalf("second call mode mismatch: %q", second.ToolConfig.Mode)
	}
	last := second.Contents[len(second.Contents)-1]
	if last.Parts[0].FunctionResponse == nil || last.Parts[0].FunctionResponse.Name != toolOutletDashboard {
		t.Fatalf("expected function response as last content, got %+v", last)
	}
	summary, ok := last.Parts[0].FunctionResponse.Response["summary"].(map[string]any)
	if !ok || summary["avgM2O"] != "12.50" {
		t.Fatalf("unexpected tool payload: %+v", last.Parts[0].FunctionResponse.Response)
	}

	if len(f.store.saved) != 3 {
		t.Fatalf("expected 3 saved messages, got %d", len(f.store.saved))
	}
	roles := []string{f.store.saved[0].Role, f.store.saved[1].Role, f.store.saved[2].Role}
	if roles[0] != "user" || roles[1] != "tool" || roles[2] != "assistant" {
		t.Fatalf("saved roles mismatch: %v", roles)
	}
	if !f.store.saved[2].ExpiresAt.Equal(fixedNow.Add(time.Hour)) {
		t.Fatalf("expiresAt mismatch: %v", f.store.saved[2].ExpiresAt)
	}
	if f.store.lastUID != "user-1" || f.store.lastSID != "s1" {
		t.Fatalf("store keys mismatch: %q %q", f.store.lastUID, f.store.lastSID)
	}
	if len(f.recorder.tools) != 1 || f.recorder.tools[0] != toolOutletDashboard || f.recorder.errs[0] != nil {
		t.Fatalf("metric mismatch: %v %v", f.recorder.tools, f.recorder.errs)
	}
}

func TestChatQueryNoToolCall(t *testing.T) {
	f := newChatFixture(dto.VertexGenerateResponse{Text: "Hello!"})

	resp, err := f.svc.Query(helpers.TestCtx(), "user-1", "", "Hi")
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	if resp.Answer != "Hello!" || resp.Debug != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.SessionID != "generated-session" {
		t.Fatalf("expected generated session, got %q", resp.SessionID)
	}
	if f.store.lastSID != "generated-session" {
		t.Fatalf("messages saved under %q", f.store.lastSID)
	}
	if len(f.store.saved) != 2 {
		t.Fatalf("expected 2 saved messages, got %d", len(f.store.saved))
	}
	if len(f.dashboard.periods) != 0 || f.stockOut.calls != 0 {
		t.Fatalf("unexpected tool execution")
	}
}

func TestChatQueryStockOutTool(t *testing.T) {
	f := newChatFixture(
		dto.VertexGenerateResponse{ToolCalls: []dto.VertexToolCall{{Name: toolStockOutItems}}},
		dto.VertexGenerateResponse{Text: "Marina is out of hummus."},
	)

	resp, err := f.svc.Query(helpers.TestCtx(), "user-1", "s1", "What is out of stock?")
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	if f.stockOut.calls != 1 {
		t.Fatalf("expected stock-out call, got %d", f.stockOut.calls)
	}
	if resp.Debug.Tool != toolStockOutItems {
		t.Fatalf("debug tool mismatch: %q", resp.Debug.Tool)
	}
}

func TestChatQueryChecklistLimitClamped(t *testing.T) {
	f := newChatFixture(
		dto.VertexGenerateResponse{ToolCalls: []dto.VertexToolCall{
			{Name: toolChecklistSubmissions, Args: map[string]any{"limit": float64(500)}},
		}},
		dto.VertexGenerateResponse{Text: "done"},
	)

	if _, err := f.svc.Query(helpers.TestCtx(), "user-1", "s1", "Show checklists"); err != nil {
		t.Fatalf("Query error: %v", err)
	}
	if len(f.checklists.limits) != 1 || f.checklists.limits[0] != maxChecklistToolResults {
		t.Fatalf("limit mismatch: %v", f.checklists.limits)
	}
}

func TestChatQueryUnknownTool(t *testing.T) {
	f := newChatFixture(dto.VertexGenerateResponse{ToolCalls: []dto.VertexToolCall{{Name: "drop_tables"}}})

	_, err := f.svc.Query(helpers.TestCtx(), "user-1", "s1", "Hi")
	var extErr *errs.ExternalServiceError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
	if extErr.Service != "vertex" || extErr.Transient {
		t.Fatalf("unexpected error fields: %+v", extErr)
	}
	if len(f.store.saved) != 0 {
		t.Fatalf("expected nothing saved, got %d", len(f.store.saved))
	}
	if len(f.recorder.errs) != 1 || f.recorder.errs[0] == nil {
		t.Fatalf("expected failed query metric, got %v", f.recorder.errs)
	}
}

func TestChatQueryUnsupportedPeriod(t *testing.T) {
	f := newChatFixture(dto.VertexGenerateResponse{ToolCalls: []dto.VertexToolCall{
		{Name: toolOutletDashboard, Args: map[string]any{"period": "30 Day"}},
	}})

	_, err := f.svc.Query(helpers.TestCtx(), "user-1", "s1", "Monthly?")
	var valErr *errs.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(f.dashboard.periods) != 0 {
		t.Fatalf("dashboard should not be fetched")
	}
}

func TestChatQueryMalformedCallRetries(t *testing.T) {
	f := newChatFixture(dto.VertexGenerateResponse{Text: "Sorry, try again."})
	f.vertex.errs = []error{errs.NewMalformedFunctionCallError()}

	resp, err := f.svc.Query(helpers.TestCtx(), "user-1", "s1", "Hi")
	if err != nil {
		t.Fatalf("Query error: %v", err)
	}
	if resp.Answer != "Sorry, try again." {
		t.Fatalf("answer mismatch: %q", resp.Answer)
	}
	if len(f.vertex.requests) != 2 {
		t.Fatalf("expected retry, got %d calls", len(f.vertex.requests))
	}
	if f.vertex.requests[1].System == f.vertex.requests[0].System {
		t.Fatalf("expected strict prompt on retry")
	}
}

func TestChatQueryModelError(t *testing.T) {
	f := newChatFixture()
	f.vertex.errs = []error{errs.NewExternalServiceError("vertex", "generate failed", true, errors.New("unavailable"))}

	_, err := f.svc.Query(helpers.TestCtx(), "user-1", "s1", "Hi")
	var extErr *errs.ExternalServiceError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
	if len(f.vertex.requests) != 1 {
		t.Fatalf("expected no retry, got %d calls", len(f.vertex.requests))
	}
}

func TestChatQueryHistoryError(t *testing.T) {
	f := newChatFixture(dto.VertexGenerateResponse{Text: "unused"})
	f.store.listErr = errs.NewDatabaseError("list", "failed to list chat messages", errors.New("down"))

	_, err := f.svc.Query(helpers.TestCtx(), "user-1", "s1", "Hi")
	var dbErr *errs.DatabaseError
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected DatabaseError, got %v", err)
	}
	if len(f.vertex.requests) != 0 {
		t.Fatalf("model should not be called")
	}
}

func TestConvertMessagesToContents(t *testing.T) {
	history := []models.ChatMessage{
		{Role: "user", Content: "What is out of stock?"},
		{Role: "tool", ToolName: toolStockOutItems, ToolArgs: map[string]any{}, ToolResult: map[string]any{"total": float64(1)}},
		{Role: "assistant", Content: "Hummus at Marina."},
		{Role: "assistant", Content: ""},
	}

	contents := convertMessagesToContents(history, "Anything else?")
	if len(contents) != 5 {
		t.Fatalf("expected 5 contents, got %d", len(contents))
	}
	if contents[1].Role != "model" || contents[1].Parts[0].FunctionCall == nil {
		t.Fatalf("expected replayed function call, got %+v", contents[1])
	}
	if contents[2].Role != "user" || contents[2].Parts[0].FunctionResponse == nil {
		t.Fatalf("expected replayed function response, got %+v", contents[2])
	}
	if contents[3].Role != "model" || helpers.Value(contents[3].Parts[0].Text) != "Hummus at Marina." {
		t.Fatalf("assistant content mismatch: %+v", contents[3])
	}
	if helpers.Value(contents[4].Parts[0].Text) != "Anything else?" {
		t.Fatalf("current message mismatch: %+v", contents[4])
	}
}

func TestToolSchemasCoverDispatch(t *testing.T) {
	for _, tool := range toolSchemas() {
		if !isValidToolName(tool.Name) {
			t.Fatalf("declared tool %q is not dispatchable", tool.Name)
		}
	}
}
