package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"edu-assist-be/pkg/llm"
	"edu-assist-be/pkg/tools"
)

// scriptedProvider returns canned responses in order, repeating the last one
// once the script runs out.
type scriptedProvider struct {
	responses []string
	calls     int
	err       error
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	idx := p.calls
	if idx >= len(p.responses) {
		idx = len(p.responses) - 1
	}
	p.calls++
	return p.responses[idx], nil
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.Generate(ctx, "", options...)
}

// echoTool records invocations and returns a fixed result.
type echoTool struct {
	name     string
	category string
	desc     string
	enabled  bool
	calls    int
	fail     bool
}

func (t *echoTool) Name() string { return t.name }

func (t *echoTool) Category() string {
	if t.category == "" {
		return tools.CategorySearch
	}
	return t.category
}

func (t *echoTool) Description() string {
	if t.desc == "" {
		return "echoes the query back"
	}
	return t.desc
}

func (t *echoTool) Enabled() bool { return t.enabled }

func (t *echoTool) Invoke(ctx context.Context, params tools.Params) (tools.Result, error) {
	t.calls++
	if t.fail {
		return nil, errors.New("remote service unavailable")
	}
	return tools.Result{"echo": params.String("query")}, nil
}

func newTestAgent(provider llm.LLMProvider, tool tools.Tool) *Agent {
	registry := tools.NewRegistry()
	if tool != nil {
		registry.Register(tool)
	}
	return NewAgent(provider, registry, NewMemoryStore())
}

func TestRunDirectAnswer(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"Thought: I know this\nFinal Answer: A mutex serializes access.",
	}}
	a := newTestAgent(provider, nil)

	outcome, err := a.Run(context.Background(), Request{Question: "what is a mutex?", SessionID: "s1"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome.Status != StatusCompleted {
		t.Errorf("Status = %q, want %q", outcome.Status, StatusCompleted)
	}
	if outcome.Answer != "A mutex serializes access." {
		t.Errorf("Answer = %q", outcome.Answer)
	}
	if outcome.Iterations != 1 {
		t.Errorf("Iterations = %d, want 1", outcome.Iterations)
	}
}

func TestRunToolLoop(t *testing.T) {
	tool := &echoTool{name: "web_search", enabled: true}
	provider := &scriptedProvider{responses: []string{
		"Thought: need data\nAction: web_search\nAction Input: {\"query\": \"go scheduler\"}",
		"Thought: got it\nFinal Answer: The scheduler multiplexes goroutines onto threads.",
	}}
	a := newTestAgent(provider, tool)

	outcome, err := a.Run(context.Background(), Request{
		Question:    "how does the go scheduler work?",
		SessionID:   "s1",
		EnableTools: true,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome.Status != StatusCompleted {
		t.Errorf("Status = %q, want %q", outcome.Status, StatusCompleted)
	}
	if tool.calls != 1 {
		t.Errorf("tool calls = %d, want 1", tool.calls)
	}
	if outcome.ToolCalls != 1 {
		t.Errorf("ToolCalls = %d, want 1", outcome.ToolCalls)
	}
	if len(outcome.ToolsUsed) != 1 || outcome.ToolsUsed[0] != "web_search" {
		t.Errorf("ToolsUsed = %v, want [web_search]", outcome.ToolsUsed)
	}
}

func TestRunReasoningChainRecordsActions(t *testing.T) {
	tool := &echoTool{name: "web_search", enabled: true}
	provider := &scriptedProvider{responses: []string{
		"Thought: need data\nAction: web_search\nAction Input: {\"query\": \"go scheduler\"}",
		"Thought: got it\nFinal Answer: done.",
	}}
	a := newTestAgent(provider, tool)

	outcome, err := a.Run(context.Background(), Request{
		Question:    "how does the go scheduler work?",
		SessionID:   "s1",
		EnableTools: true,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	kinds := make([]string, 0, len(outcome.Steps))
	for _, step := range outcome.Steps {
		kinds = append(kinds, step.Kind)
	}
	want := []string{"thought", "action", "observation", "thought"}
	if len(kinds) != len(want) {
		t.Fatalf("step kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("step kinds = %v, want %v", kinds, want)
		}
	}
	if outcome.Steps[1].Content != "web_search" {
		t.Errorf("action step content = %q, want the tool name", outcome.Steps[1].Content)
	}
}

func TestRunMaxIterations(t *testing.T) {
	tool := &echoTool{name: "web_search", enabled: true}
	// Never produces a final answer
	provider := &scriptedProvider{responses: []string{
		"Thought: still looking\nAction: web_search\nAction Input: {\"query\": \"more\"}",
	}}
	a := newTestAgent(provider, tool)

	maxIterations := 3
	outcome, err := a.Run(context.Background(), Request{
		Question:      "unanswerable",
		SessionID:     "s1",
		EnableTools:   true,
		MaxIterations: maxIterations,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome.Status != StatusMaxIterations {
		t.Errorf("Status = %q, want %q", outcome.Status, StatusMaxIterations)
	}
	if outcome.Iterations != maxIterations {
		t.Errorf("Iterations = %d, want %d", outcome.Iterations, maxIterations)
	}
	if outcome.Answer == "" {
		t.Error("max-iterations outcome must still carry a best-effort answer")
	}
	// Each iteration contributes at most a thought, an action, and an observation
	if len(outcome.Steps) > 3*maxIterations {
		t.Errorf("len(Steps) = %d, want <= %d", len(outcome.Steps), 3*maxIterations)
	}
}

func TestRunToolFailureBecomesObservation(t *testing.T) {
	tool := &echoTool{name: "web_search", enabled: true, fail: true}
	provider := &scriptedProvider{responses: []string{
		"Action: web_search\nAction Input: {\"query\": \"x\"}",
		"Final Answer: I could not retrieve it.",
	}}
	a := newTestAgent(provider, tool)

	outcome, err := a.Run(context.Background(), Request{Question: "q", SessionID: "s1", EnableTools: true})
	if err != nil {
		t.Fatalf("tool failure escalated to a run error: %v", err)
	}

	foundFailure := false
	for _, step := range outcome.Steps {
		if step.Kind == "observation" && strings.Contains(step.Content, "failed") {
			foundFailure = true
		}
	}
	if !foundFailure {
		t.Error("tool failure not surfaced as an observation step")
	}
}

func TestRunDisabledToolsRefused(t *testing.T) {
	tool := &echoTool{name: "web_search", enabled: true}
	provider := &scriptedProvider{responses: []string{
		"Action: web_search\nAction Input: {\"query\": \"x\"}",
		"Final Answer: done without tools.",
	}}
	a := newTestAgent(provider, tool)

	outcome, err := a.Run(context.Background(), Request{Question: "q", SessionID: "s1", EnableTools: false})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if tool.calls != 0 {
		t.Errorf("tool invoked %d times with tools disabled", tool.calls)
	}
	if outcome.ToolCalls != 0 {
		t.Errorf("ToolCalls = %d, want 0", outcome.ToolCalls)
	}
}

func TestRunProviderFailureIsFatal(t *testing.T) {
	provider := &scriptedProvider{err: fmt.Errorf("model overloaded")}
	a := newTestAgent(provider, nil)

	_, err := a.Run(context.Background(), Request{Question: "q", SessionID: "s1"})
	if err == nil {
		t.Fatal("Run succeeded despite provider failure")
	}
}

func TestRunRespectsCancelledContext(t *testing.T) {
	provider := &scriptedProvider{responses: []string{"Final Answer: never reached"}}
	a := newTestAgent(provider, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Run(ctx, Request{Question: "q", SessionID: "s1"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestMemoryRingBuffer(t *testing.T) {
	m := &Memory{}
	for i := 0; i < 30; i++ {
		m.AddThought(fmt.Sprintf("t%d", i))
	}
	snapshot := m.Snapshot()
	if len(snapshot.Thoughts) != maxEntriesPerKind {
		t.Fatalf("len(Thoughts) = %d, want %d", len(snapshot.Thoughts), maxEntriesPerKind)
	}
	if snapshot.Thoughts[0] != "t10" {
		t.Errorf("oldest retained = %q, want t10 (FIFO eviction)", snapshot.Thoughts[0])
	}
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryStore()
	store.Get("s1").AddThought("something")
	store.Clear("s1")

	if got := store.Get("s1").Snapshot(); len(got.Thoughts) != 0 {
		t.Errorf("memory survives Clear: %v", got.Thoughts)
	}
}
