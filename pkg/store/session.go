package store

// Document represents a retrieved content chunk handed around the RAG pipeline
type Document struct {
	ID       string                 `json:"id"`
	Title    string                 `json:"title"`
	Content  string                 `json:"content"`
	Score    float32                `json:"score"`
	Metadata map[string]interface{} `json:"metadata"`
}

// ChatMessage is one turn of conversation history
type ChatMessage struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// Session represents the active chat session state in memory
type Session struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	// Ordered turn history, appended after each successful answer.
	// Only a sliding window of the tail is fed back into prompts.
	History []ChatMessage `json:"history"`

	// Continuation state for the last answer produced in this session
	LastQuery    string `json:"last_query"`
	LastAnswer   string `json:"last_answer"`
	IsIncomplete bool   `json:"is_incomplete"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	// HistoryWindow bounds how many trailing messages are used for prompt construction
	HistoryWindow = 10
)

// AppendTurn records a completed user/assistant exchange.
func (s *Session) AppendTurn(query, answer string, incomplete bool) {
	s.History = append(s.History,
		ChatMessage{Role: RoleUser, Content: query},
		ChatMessage{Role: RoleAssistant, Content: answer},
	)
	s.LastQuery = query
	s.LastAnswer = answer
	s.IsIncomplete = incomplete
}

// RecentHistory returns the trailing window of messages for prompt context.
func (s *Session) RecentHistory() []ChatMessage {
	if len(s.History) <= HistoryWindow {
		return s.History
	}
	return s.History[len(s.History)-HistoryWindow:]
}
