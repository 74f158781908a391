package dto

type ProcessChatRequest struct {
	Message     string   `json:"message" validate:"required"`
	SessionID   string   `json:"session_id" validate:"required"`
	DocumentIDs []string `json:"document_ids"`
}

// ContextSnippet is one retrieved chunk as surfaced to the caller.
type ContextSnippet struct {
	ContentSnippet string                 `json:"content_snippet"`
	Metadata       map[string]interface{} `json:"metadata"`
	Score          float64                `json:"score"`
}

type ProcessChatResponse struct {
	Answer          string            `json:"answer"`
	IsIncomplete    bool              `json:"is_incomplete"`
	Context         []ContextSnippet  `json:"context"`
	ConfidenceScore float64           `json:"confidence_score"`
	Source          string            `json:"source"` // "rag" | "agent_with_tools"
	LearningStyle   map[string]string `json:"learning_style,omitempty"`
}

type ContinueChatRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

type ContinueChatResponse struct {
	Answer       string `json:"answer"` // Delta only
	FullAnswer   string `json:"full_answer"`
	IsIncomplete bool   `json:"is_incomplete"`
}
