package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"edu-assist-be/internal/dto"
	"edu-assist-be/internal/repository/memory"
	"edu-assist-be/pkg/agent"
	"edu-assist-be/pkg/embedding"
	"edu-assist-be/pkg/learner"
	"edu-assist-be/pkg/llm"
	"edu-assist-be/pkg/rag/rank"
	"edu-assist-be/pkg/store"
	"edu-assist-be/pkg/tools"
	"edu-assist-be/pkg/vectorstore"
)

// recordingLLM captures every Chat invocation's message list.
type recordingLLM struct {
	chats  [][]llm.Message
	answer string
}

func (p *recordingLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.chats = append(p.chats, history)
	return p.answer, nil
}

func (p *recordingLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.answer, nil
}

// fixedEmbedder returns the same unit vector for every input.
type fixedEmbedder struct{}

func (fixedEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{1, 0, 0}},
	}, nil
}

func newHistoryTestService(t *testing.T, llmFake *recordingLLM, sessionRepo *memory.SessionRepository) IRagService {
	t.Helper()

	// Enough high-similarity material that confidence clears the
	// escalation threshold and the direct generation path runs.
	index := vectorstore.NewVectorIndex()
	chunks := make([]vectorstore.Chunk, 5)
	vectors := make([][]float32, 5)
	for i := range chunks {
		chunks[i] = vectorstore.Chunk{Content: strings.Repeat("goroutines share memory by communicating. ", 12)}
		vectors[i] = []float32{1, 0, 0}
	}
	index.Add(chunks, vectors)

	profiles := learner.NewProfileStore(filepath.Join(t.TempDir(), "profiles.json"))
	reasoningAgent := agent.NewAgent(llmFake, tools.NewRegistry(), agent.NewMemoryStore())
	return NewRagService(index, fixedEmbedder{}, llmFake, profiles, sessionRepo, reasoningAgent, 5, 3)
}

func TestProcessMessageCarriesConversationHistory(t *testing.T) {
	llmFake := &recordingLLM{answer: "Channels synchronize goroutines."}
	svc := newHistoryTestService(t, llmFake, memory.NewSessionRepository())

	if _, err := svc.ProcessMessage(context.Background(), &dto.ProcessChatRequest{
		Message: "what are channels for?", SessionID: "s1",
	}); err != nil {
		t.Fatalf("first turn failed: %v", err)
	}
	if _, err := svc.ProcessMessage(context.Background(), &dto.ProcessChatRequest{
		Message: "repeat what you just told me", SessionID: "s1",
	}); err != nil {
		t.Fatalf("second turn failed: %v", err)
	}

	if len(llmFake.chats) != 2 {
		t.Fatalf("Chat calls = %d, want 2", len(llmFake.chats))
	}
	second := llmFake.chats[1]
	if len(second) != 3 {
		t.Fatalf("second turn messages = %d, want prior question, prior answer, new prompt", len(second))
	}
	if second[0].Role != store.RoleUser || second[0].Content != "what are channels for?" {
		t.Errorf("messages[0] = %+v, want the first question", second[0])
	}
	if second[1].Role != store.RoleAssistant || second[1].Content != "Channels synchronize goroutines." {
		t.Errorf("messages[1] = %+v, want the first answer", second[1])
	}
	if !strings.Contains(second[2].Content, "repeat what you just told me") {
		t.Errorf("final message does not carry the new question: %q", second[2].Content)
	}
}

func TestContinueResponseCarriesConversationHistory(t *testing.T) {
	llmFake := &recordingLLM{answer: "and that is why buffered channels decouple senders."}
	sessionRepo := memory.NewSessionRepository()
	svc := newHistoryTestService(t, llmFake, sessionRepo)

	session := sessionRepo.GetOrCreate("s1")
	session.AppendTurn("explain buffered channels", "A buffered channel holds values until", true)
	sessionRepo.Save(session)

	if _, err := svc.ContinueResponse(context.Background(), "s1"); err != nil {
		t.Fatalf("ContinueResponse failed: %v", err)
	}

	if len(llmFake.chats) != 1 {
		t.Fatalf("Chat calls = %d, want 1", len(llmFake.chats))
	}
	messages := llmFake.chats[0]
	if len(messages) != 3 {
		t.Fatalf("messages = %d, want prior turn plus the continuation instruction", len(messages))
	}
	if messages[0].Content != "explain buffered channels" || messages[1].Content != "A buffered channel holds values until" {
		t.Errorf("prior turn missing from continuation call: %+v", messages[:2])
	}
	if !strings.Contains(messages[2].Content, "Continue from exactly where you left off") {
		t.Errorf("final message is not the continuation instruction: %q", messages[2].Content)
	}
}

func TestLooksIncomplete(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   bool
	}{
		{"empty answer", "", false},
		{"very short", "Yes.", true},
		{"trailing comma", "A heap is a tree structure that keeps the smallest element on top,", true},
		{"trailing colon", "The three main points are:", true},
		{"well terminated", "A heap is a complete binary tree stored in an array.", false},
		{"ends in question", "Would you like me to explain rebalancing as well?", false},
		{"dangling connector", "Binary search trees keep keys ordered so lookups stay fast and", true},
		{"long unterminated clause", "The garbage collector walks the heap marking reachable objects before sweeping the rest which means that pause times depend mostly on the size of the live set rather than total memory", true},
		{"closing quote", `The compiler reports "undefined variable."`, false},
		{"closing bracket", "The complexity is O(n log n) for all inputs (including sorted ones.)", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := looksIncomplete(tt.answer); got != tt.want {
				t.Errorf("looksIncomplete(%q) = %v, want %v", tt.answer, got, tt.want)
			}
		})
	}
}

// The heuristic is known to misread some well-formed answers; this pins the
// current behavior so a change shows up as a test diff, not a silent drift.
func TestLooksIncompleteKnownFalsePositives(t *testing.T) {
	if !looksIncomplete("Use binary search") {
		t.Error("short unterminated answers are currently flagged incomplete")
	}
}

func rankedHit(content string, multiplier float64) rank.RankedHit {
	return rank.RankedHit{
		Chunk:              vectorstore.Chunk{Content: content},
		PriorityMultiplier: multiplier,
	}
}

func TestSplitContext(t *testing.T) {
	ranked := []rank.RankedHit{
		rankedHit("from selected doc", 2.0),
		rankedHit("session material", 1.5),
		rankedHit("background", 1.0),
	}

	ctx := splitContext(ranked, []string{"d1"})
	if !strings.Contains(ctx.Primary, "from selected doc") {
		t.Errorf("Primary = %q, missing selected-doc content", ctx.Primary)
	}
	if strings.Contains(ctx.Primary, "session material") {
		t.Error("non-selected content leaked into Primary")
	}
	if !strings.Contains(ctx.Secondary, "session material") || !strings.Contains(ctx.Secondary, "background") {
		t.Errorf("Secondary = %q, missing supplementary content", ctx.Secondary)
	}
}

func TestSplitContextNoSelection(t *testing.T) {
	ranked := []rank.RankedHit{
		rankedHit("a", 1.5),
		rankedHit("b", 1.0),
	}

	ctx := splitContext(ranked, nil)
	if ctx.Secondary != "" {
		t.Errorf("Secondary = %q, want empty without an explicit selection", ctx.Secondary)
	}
	if !strings.Contains(ctx.Primary, "a") || !strings.Contains(ctx.Primary, "b") {
		t.Errorf("Primary = %q, want all retrieved content merged", ctx.Primary)
	}
}

func TestToSnippetsTruncates(t *testing.T) {
	long := strings.Repeat("x", 500)
	snippets := toSnippets([]rank.RankedHit{rankedHit(long, 1.0)})

	if len(snippets) != 1 {
		t.Fatalf("len(snippets) = %d, want 1", len(snippets))
	}
	if len(snippets[0].ContentSnippet) != snippetLength+3 {
		t.Errorf("snippet length = %d, want %d plus ellipsis", len(snippets[0].ContentSnippet), snippetLength)
	}
}
