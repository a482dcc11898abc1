package dto

type ChatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type ChatResponse struct {
	SessionID string     `json:"sessionId"`
	Answer    string     `json:"answer"`
	Debug     *ChatDebug `json:"debug,omitempty"`
}

type ChatDebug struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args"`
}
