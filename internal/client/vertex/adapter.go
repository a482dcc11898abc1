package vertexclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/outlet-dashboard/internal/dto"
	"github.com/GregMSThompson/outlet-dashboard/internal/errs"
)

type Adapter struct {
	client *genai.Client
	model  string
	log    *slog.Logger
}

func NewAdapter(ctx context.Context, log *slog.Logger, projectID, region, model string) (*Adapter, error) {
	client, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, err
	}

	return &Adapter{
		client: client,
		model:  model,
		log:    log,
	}, nil
}

func (a *Adapter) Close() error {
	err := a.client.Close()
	if err != nil && a.log != nil {
		a.log.Error("vertex adapter close failed", "error", err)
	}
	return err
}

// GenerateContent sends the conversation in req. All contents but the last
// become chat history; the last one is the message being answered.
func (a *Adapter) GenerateContent(ctx context.Context, req dto.VertexGenerateRequest) (dto.VertexGenerateResponse, error) {
	out := dto.VertexGenerateResponse{}

	modelName := req.Model
	if modelName == "" {
		modelName = a.model
	}
	if modelName == "" {
		return out, fmt.Errorf("vertex model is required")
	}
	if len(req.Contents) == 0 {
		return out, fmt.Errorf("vertex generate request has no content")
	}

	model := a.client.GenerativeModel(modelName)
	if req.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}
	if req.Temperature != nil {
		model.SetTemperature(*req.Temperature)
	}
	if req.MaxOutputTokens != nil {
		model.SetMaxOutputTokens(*req.MaxOutputTokens)
	}
	if len(req.Tools) > 0 {
		model.Tools = toGenaiTools(req.Tools)
	}
	if req.ToolConfig != nil {
		model.ToolConfig = &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode: toGenaiMode(req.ToolConfig.Mode),
			},
		}
	}

	last := req.Contents[len(req.Contents)-1]
	parts := toGenaiParts(last.Parts)
	if len(parts) == 0 {
		return out, fmt.Errorf("vertex generate request has no content")
	}

	chat := model.StartChat()
	chat.History = toGenaiContents(req.Contents[:len(req.Contents)-1])

	resp, err := chat.SendMessage(ctx, parts...)
	if err != nil {
		return out, toExternalError(err)
	}

	out.Raw = resp
	out.Text, out.ToolCalls = parseContentResponse(resp)
	if out.Text == "" && len(out.ToolCalls) == 0 && malformedCall(resp) {
		return out, errs.NewMalformedFunctionCallError()
	}
	return out, nil
}

func toExternalError(err error) error {
	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.Unavailable, codes.ResourceExhausted, codes.DeadlineExceeded:
			return errs.NewExternalServiceError("vertex", st.Message(), true, err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.NewExternalServiceError("vertex", "model call timed out", true, err)
	}
	return errs.NewExternalServiceError("vertex", err.Error(), false, err)
}

func malformedCall(resp *genai.GenerateContentResponse) bool {
	if resp == nil {
		return false
	}
	for _, c := range resp.Candidates {
		if strings.Contains(strings.ToLower(c.FinishReason.String()), "malformed") {
			return true
		}
	}
	return false
}

func parseContentResponse(resp *genai.GenerateContentResponse) (string, []dto.VertexToolCall) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", nil
	}

	var text strings.Builder
	var calls []dto.VertexToolCall
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			switch p := part.(type) {
			case genai.Text:
				text.WriteString(string(p))
			case genai.FunctionCall:
				calls = append(calls, dto.VertexToolCall{Name: p.Name, Args: p.Args})
			case *genai.FunctionCall:
				calls = append(calls, dto.VertexToolCall{Name: p.Name, Args: p.Args})
			}
		}
	}

	return text.String(), calls
}

func toGenaiContents(contents []dto.VertexContent) []*genai.Content {
	out := make([]*genai.Content, 0, len(contents))
	for _, c := range contents {
		parts := toGenaiParts(c.Parts)
		if len(parts) == 0 {
			continue
		}
		out = append(out, &genai.Content{Role: c.Role, Parts: parts})
	}
	return out
}

func toGenaiParts(parts []dto.VertexPart) []genai.Part {
	out := make([]genai.Part, 0, len(parts))
	for _, p := range parts {
		switch {
		case p.Text != nil:
			out = append(out, genai.Text(*p.Text))
		case p.FunctionCall != nil:
			out = append(out, genai.FunctionCall{
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			})
		case p.FunctionResponse != nil:
			out = append(out, genai.FunctionResponse{
				Name:     p.FunctionResponse.Name,
				Response: p.FunctionResponse.Response,
			})
		}
	}
	return out
}

func toGenaiMode(mode dto.FunctionCallingMode) genai.FunctionCallingMode {
	switch mode {
	case dto.FunctionCallingModeNone:
		return genai.FunctionCallingNone
	case dto.FunctionCallingModeAuto:
		return genai.FunctionCallingAuto
	default:
		return genai.FunctionCallingUnspecified
	}
}

func toGenaiTools(tools []dto.VertexTool) []*genai.Tool {
	if len(tools) == 0 {
		return nil
	}

	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  toGenaiSchema(tool.Parameters),
		})
	}

	return []*genai.Tool{
		{FunctionDeclarations: decls},
	}
}

func toGenaiSchema(schema *dto.VertexSchema) *genai.Schema {
	if schema == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        toGenaiType(schema.Type),
		Description: schema.Description,
		Enum:        schema.Enum,
		Required:    schema.Required,
	}

	if schema.Items != nil {
		out.Items = toGenaiSchema(schema.Items)
	}
	if len(schema.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(schema.Properties))
		for key, value := range schema.Properties {
			out.Properties[key] = toGenaiSchema(value)
		}
	}

	return out
}

func toGenaiType(schemaType string) genai.Type {
	switch schemaType {
	case "object":
		return genai.TypeObject
	case "array":
		return genai.TypeArray
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeUnspecified
	}
}
