package dto

type ToolCallRequest struct {
	Args map[string]any `json:"args"`
}

type ToolCallResponse struct {
	Tool   string `json:"tool"`
	Result any    `json:"result"`
}

type ToolInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type ChatResponse struct {
	Agent string `json:"agent"`
	Reply string `json:"reply"`
}

type AgentInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tools       []string `json:"tools"`
}
