package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/outlet-dashboard/internal/dto"
	"github.com/GregMSThompson/outlet-dashboard/internal/errs"
	"github.com/GregMSThompson/outlet-dashboard/internal/models"
	"github.com/GregMSThompson/outlet-dashboard/internal/sheetgrid"
	"github.com/GregMSThompson/outlet-dashboard/pkg/helpers"
	"github.com/GregMSThompson/outlet-dashboard/pkg/logger"
)

const (
	toolOutletDashboard      = "get_outlet_dashboard"
	toolStockOutItems        = "get_stock_out_items"
	toolChecklistSubmissions = "get_checklist_submissions"

	chatHistoryLimit        = 8
	defaultChecklistLimit   = 10
	maxChecklistToolResults = 50
)

type chatModel interface {
	GenerateContent(ctx context.Context, req dto.VertexGenerateRequest) (dto.VertexGenerateResponse, error)
}

type chatStore interface {
	SaveMessage(ctx context.Context, uid, sessionID string, msg models.ChatMessage) error
	ListMessages(ctx context.Context, uid, sessionID string, limit int) ([]models.ChatMessage, error)
}

type dashboardReader interface {
	GetDashboard(ctx context.Context, period string) (dto.DashboardResponse, error)
}

type stockOutReader interface {
	ListStockOut(ctx context.Context) (dto.StockOutResponse, error)
}

type checklistReader interface {
	ListSubmissions(ctx context.Context, limit int) (dto.ChecklistResponse, error)
}

type chatRecorder interface {
	CountChatQuery(tool string, err error)
}

type chatService struct {
	model      chatModel
	dashboard  dashboardReader
	stockOut   stockOutReader
	checklists checklistReader
	store      chatStore
	metrics    chatRecorder
	ttl        time.Duration
	clockNow   func() time.Time
	newID      func() string
}

func NewChatService(model chatModel, dashboard dashboardReader, stockOut stockOutReader, checklists checklistReader, store chatStore, metrics chatRecorder, ttl time.Duration) *chatService {
	return &chatService{
		model:      model,
		dashboard:  dashboard,
		stockOut:   stockOut,
		checklists: checklists,
		store:      store,
		metrics:    metrics,
		ttl:        ttl,
		clockNow:   time.Now,
		newID:      uuid.NewString,
	}
}

// Query answers one product chat message. An empty sessionID starts a new
// session; the response always carries the session in use.
func (s *chatService) Query(ctx context.Context, uid, sessionID, message string) (dto.ChatResponse, error) {
	if sessionID == "" {
		sessionID = s.newID()
	}
	_, ctx = logger.With(ctx, "session_id", sessionID)

	resp, err := s.query(ctx, uid, sessionID, message)
	if s.metrics != nil {
		tool := ""
		if resp.Debug != nil {
			tool = resp.Debug.Tool
		}
		s.metrics.CountChatQuery(tool, err)
	}
	if err != nil {
		return dto.ChatResponse{}, err
	}
	resp.SessionID = sessionID
	return resp, nil
}

func (s *chatService) query(ctx context.Context, uid, sessionID, message string) (dto.ChatResponse, error) {
	log := logger.FromContext(ctx)

	history, err := s.store.ListMessages(ctx, uid, sessionID, chatHistoryLimit)
	if err != nil {
		return dto.ChatResponse{}, err
	}

	contents := convertMessagesToContents(history, message)
	req := dto.VertexGenerateRequest{
		System:      systemPrompt(s.clockNow()),
		Contents:    contents,
		Tools:       toolSchemas(),
		Temperature: helpers.Ptr(float32(0.2)),
		ToolConfig: &dto.VertexToolConfig{
			Mode: dto.FunctionCallingModeAuto,
		},
	}

	resp, err := s.model.GenerateContent(ctx, req)
	if err != nil {
		var malformed *errs.MalformedFunctionCallError
		if errors.As(err, &malformed) {
			log.Warn("model produced a malformed function call, retrying with strict prompt")
			strictReq := req
			strictReq.System = strictSystemPrompt(s.clockNow())
			resp, err = s.model.GenerateContent(ctx, strictReq)
		}
	}
	if err != nil {
		return dto.ChatResponse{}, err
	}

	if len(resp.ToolCalls) == 0 {
		if err := s.saveMessage(ctx, uid, sessionID, models.ChatMessage{
			Role:    "user",
			Content: message,
		}); err != nil {
			return dto.ChatResponse{}, err
		}
		if resp.Text != "" {
			if err := s.saveMessage(ctx, uid, sessionID, models.ChatMessage{
				Role:    "assistant",
				Content: resp.Text,
			}); err != nil {
				return dto.ChatResponse{}, err
			}
		}
		log.Info("chat query completed")
		return dto.ChatResponse{Answer: resp.Text}, nil
	}

	if len(resp.ToolCalls) > 1 {
		log.Warn("received multiple tool calls, only processing the first", "count", len(resp.ToolCalls))
	}
	toolCall := resp.ToolCalls[0]

	if !isValidToolName(toolCall.Name) {
		return dto.ChatResponse{}, errs.NewExternalServiceError("vertex", fmt.Sprintf("model requested unknown tool: %s", toolCall.Name), false, nil)
	}

	log.Info("executing tool", "tool", toolCall.Name)

	toolResult, err := s.executeTool(ctx, toolCall)
	if err != nil {
		return dto.ChatResponse{}, fmt.Errorf("failed to execute tool %s: %w", toolCall.Name, err)
	}

	if err := s.saveMessage(ctx, uid, sessionID, models.ChatMessage{
		Role:    "user",
		Content: message,
	}); err != nil {
		return dto.ChatResponse{}, err
	}
	if err := s.saveMessage(ctx, uid, sessionID, models.ChatMessage{
		Role:       "tool",
		ToolName:   toolCall.Name,
		ToolArgs:   toolCall.Args,
		ToolResult: toolResult.Response,
	}); err != nil {
		return dto.ChatResponse{}, err
	}

	withToolResult := append(slices.Clip(contents), dto.VertexContent{
		Role:  "model",
		Parts: []dto.VertexPart{{FunctionCall: &toolCall}},
	}, dto.VertexContent{
		Role:  "user",
		Parts: []dto.VertexPart{{FunctionResponse: &toolResult}},
	})

	finalResp, err := s.model.GenerateContent(ctx, dto.VertexGenerateRequest{
		System:      systemPrompt(s.clockNow()),
		Contents:    withToolResult,
		Tools:       toolSchemas(),
		Temperature: helpers.Ptr(float32(0.2)),
		ToolConfig: &dto.VertexToolConfig{
			Mode: dto.FunctionCallingModeNone,
		},
	})
	if err != nil {
		return dto.ChatResponse{}, err
	}

	if err := s.saveMessage(ctx, uid, sessionID, models.ChatMessage{
		Role:    "assistant",
		Content: finalResp.Text,
	}); err != nil {
		return dto.ChatResponse{}, err
	}

	log.Info("chat query completed", "tool", toolCall.Name)
	return dto.ChatResponse{
		Answer: finalResp.Text,
		Debug: &dto.ChatDebug{
			Tool: toolCall.Name,
			Args: toolCall.Args,
		},
	}, nil
}

func convertMessagesToContents(history []models.ChatMessage, currentMessage string) []dto.VertexContent {
	contents := make([]dto.VertexContent, 0, len(history)+1)

	for _, msg := range history {
		switch msg.Role {
		case "user":
			contents = append(contents, dto.VertexContent{
				Role:  "user",
				Parts: []dto.VertexPart{{Text: helpers.Ptr(msg.Content)}},
			})

		case "assistant":
			if msg.Content != "" {
				contents = append(contents, dto.VertexContent{
					Role:  "model",
					Parts: []dto.VertexPart{{Text: helpers.Ptr(msg.Content)}},
				})
			}

		case "tool":
			// a tool turn is replayed as the model's call followed by the result
			if msg.ToolName != "" && msg.ToolArgs != nil {
				contents = append(contents, dto.VertexContent{
					Role: "model",
					Parts: []dto.VertexPart{{FunctionCall: &dto.VertexToolCall{
						Name: msg.ToolName,
						Args: msg.ToolArgs,
					}}},
				})
			}
			if msg.ToolName != "" && msg.ToolResult != nil {
				contents = append(contents, dto.VertexContent{
					Role: "user",
					Parts: []dto.VertexPart{{FunctionResponse: &dto.VertexToolResult{
						Name:     msg.ToolName,
						Response: msg.ToolResult,
					}}},
				})
			}
		}
	}

	contents = append(contents, dto.VertexContent{
		Role:  "user",
		Parts: []dto.VertexPart{{Text: helpers.Ptr(currentMessage)}},
	})

	return contents
}

func (s *chatService) saveMessage(ctx context.Context, uid, sessionID string, msg models.ChatMessage) error {
	now := s.clockNow()
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = now
	}
	if s.ttl > 0 {
		msg.ExpiresAt = now.Add(s.ttl)
	}
	return s.store.SaveMessage(ctx, uid, sessionID, msg)
}

func (s *chatService) executeTool(ctx context.Context, call dto.VertexToolCall) (dto.VertexToolResult, error) {
	switch call.Name {
	case toolOutletDashboard:
		period := sheetgrid.Period1Day
		if p, ok := call.Args["period"].(string); ok && p != "" {
			period = p
		}
		if !slices.Contains(sheetgrid.DefaultLayout().Periods(), period) {
			return dto.VertexToolResult{}, errs.NewValidationError(fmt.Sprintf("unsupported period: %s", period))
		}
		result, err := s.dashboard.GetDashboard(ctx, period)
		if err != nil {
			return dto.VertexToolResult{}, err
		}
		return toToolResult(call.Name, result)

	case toolStockOutItems:
		result, err := s.stockOut.ListStockOut(ctx)
		if err != nil {
			return dto.VertexToolResult{}, err
		}
		return toToolResult(call.Name, result)

	case toolChecklistSubmissions:
		limit := defaultChecklistLimit
		if v, ok := call.Args["limit"].(float64); ok && v >= 1 {
			limit = min(int(v), maxChecklistToolResults)
		}
		result, err := s.checklists.ListSubmissions(ctx, limit)
		if err != nil {
			return dto.VertexToolResult{}, err
		}
		return toToolResult(call.Name, result)

	default:
		return dto.VertexToolResult{}, errs.NewValidationError(fmt.Sprintf("unsupported tool: %s", call.Name))
	}
}

func toToolResult(name string, v any) (dto.VertexToolResult, error) {
	payload, err := toMap(v)
	if err != nil {
		return dto.VertexToolResult{}, err
	}
	return dto.VertexToolResult{Name: name, Response: payload}, nil
}

func toMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func isValidToolName(name string) bool {
	switch name {
	case toolOutletDashboard, toolStockOutItems, toolChecklistSubmissions:
		return true
	default:
		return false
	}
}
