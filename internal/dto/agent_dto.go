package dto

type AgentChatRequest struct {
	Message             string   `json:"message" validate:"required"`
	SessionID           string   `json:"session_id" validate:"required"`
	DocumentIDs         []string `json:"document_ids"`
	UseAdaptiveLearning bool     `json:"use_adaptive_learning"`
	EnableTools         bool     `json:"enable_tools"`
	MaxIterations       int      `json:"max_iterations" validate:"min=0,max=10"`
}

type ReasoningStep struct {
	Kind    string `json:"kind"`
	Content string `json:"content"`
}

type AgentChatResponse struct {
	Answer               string          `json:"answer"`
	Status               string          `json:"status"`
	ReasoningChain       []ReasoningStep `json:"reasoning_chain"`
	Iterations           int             `json:"iterations"`
	ToolsUsed            []string        `json:"tools_used"`
	ToolCalls            int             `json:"tool_calls"`
	DocumentContextCount int             `json:"document_context_count"`
}

// AgentMemoryResponse summarizes a session's reasoning memory: per-kind
// counts plus the most recent entries of each kind.
type AgentMemoryResponse struct {
	ThoughtCount       int      `json:"thought_count"`
	ActionCount        int      `json:"action_count"`
	ObservationCount   int      `json:"observation_count"`
	RecentThoughts     []string `json:"recent_thoughts"`
	RecentActions      []string `json:"recent_actions"`
	RecentObservations []string `json:"recent_observations"`
}
