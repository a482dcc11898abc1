package vertexclient

import (
	"errors"
	"testing"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/outlet-dashboard/internal/dto"
	"github.com/GregMSThompson/outlet-dashboard/internal/errs"
)

func TestParseContentResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{
				genai.Text("Average M2O is "),
				genai.Text("12.40."),
				genai.FunctionCall{Name: "get_outlet_dashboard", Args: map[string]any{"period": "7 Day"}},
			}}},
			{Content: nil},
		},
	}

	text, calls := parseContentResponse(resp)
	if text != "Average M2O is 12.40." {
		t.Fatalf("text: got %q", text)
	}
	if len(calls) != 1 || calls[0].Name != "get_outlet_dashboard" || calls[0].Args["period"] != "7 Day" {
		t.Fatalf("calls: got %+v", calls)
	}

	if text, calls := parseContentResponse(nil); text != "" || calls != nil {
		t.Fatal("nil response should parse to nothing")
	}
}

func TestToGenaiContentsSkipsEmptyTurns(t *testing.T) {
	hello := "hello"
	got := toGenaiContents([]dto.VertexContent{
		{Role: "user", Parts: []dto.VertexPart{{Text: &hello}}},
		{Role: "model", Parts: nil},
		{Role: "model", Parts: []dto.VertexPart{{FunctionCall: &dto.VertexToolCall{Name: "get_stock_out_items"}}}},
		{Role: "user", Parts: []dto.VertexPart{{FunctionResponse: &dto.VertexToolResult{Name: "get_stock_out_items", Response: map[string]any{"total": 2}}}}},
	})

	if len(got) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(got))
	}
	if _, ok := got[1].Parts[0].(genai.FunctionCall); !ok {
		t.Fatalf("expected function call part, got %T", got[1].Parts[0])
	}
	if _, ok := got[2].Parts[0].(genai.FunctionResponse); !ok {
		t.Fatalf("expected function response part, got %T", got[2].Parts[0])
	}
}

func TestToGenaiSchema(t *testing.T) {
	got := toGenaiSchema(&dto.VertexSchema{
		Type: "object",
		Properties: map[string]*dto.VertexSchema{
			"period": {Type: "string", Enum: []string{"1 Day", "7 Day"}},
			"limit":  {Type: "integer"},
		},
		Required: []string{"period"},
	})

	if got.Type != genai.TypeObject {
		t.Fatalf("type: got %v", got.Type)
	}
	if got.Properties["period"].Type != genai.TypeString || len(got.Properties["period"].Enum) != 2 {
		t.Fatalf("period schema: %+v", got.Properties["period"])
	}
	if got.Properties["limit"].Type != genai.TypeInteger {
		t.Fatalf("limit schema: %+v", got.Properties["limit"])
	}
	if toGenaiSchema(nil) != nil {
		t.Fatal("nil schema should stay nil")
	}
}

func TestToExternalError(t *testing.T) {
	var extErr *errs.ExternalServiceError

	if !errors.As(toExternalError(status.Error(codes.ResourceExhausted, "quota")), &extErr) || !extErr.Transient {
		t.Fatalf("resource exhausted should be transient: %+v", extErr)
	}
	if !errors.As(toExternalError(status.Error(codes.InvalidArgument, "bad")), &extErr) || extErr.Transient {
		t.Fatalf("invalid argument should not be transient: %+v", extErr)
	}
	if extErr.Service != "vertex" {
		t.Fatalf("service: got %q", extErr.Service)
	}
}

func TestToGenaiMode(t *testing.T) {
	if toGenaiMode(dto.FunctionCallingModeNone) != genai.FunctionCallingNone {
		t.Fatal("none mode mismatch")
	}
	if toGenaiMode(dto.FunctionCallingModeAuto) != genai.FunctionCallingAuto {
		t.Fatal("auto mode mismatch")
	}
}
