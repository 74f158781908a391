package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"edu-assist-be/pkg/llm"
	"edu-assist-be/pkg/tools"
)

// Terminal statuses of one agent run.
const (
	StatusCompleted     = "completed"
	StatusMaxIterations = "max_iterations_reached"

	defaultMaxIterations = 5
	maxIterationsCap     = 10

	// Bound on a single tool dispatch, independent of the tool's own
	// HTTP client timeout.
	toolCallTimeout = 60 * time.Second

	observationLimit = 2000
)

// Step is one entry in the reasoning chain.
type Step struct {
	Kind    string `json:"kind"` // "thought" | "action" | "observation"
	Content string `json:"content"`
}

// Request is one agent invocation.
type Request struct {
	Question      string
	SessionID     string
	Context       string
	EnableTools   bool
	MaxIterations int
}

// Outcome carries the answer plus the full reasoning trace.
type Outcome struct {
	Answer     string
	Status     string
	Steps      []Step
	Iterations int
	ToolCalls  int
	ToolsUsed  []string
}

// Agent runs the bounded think/act/observe loop.
type Agent struct {
	provider llm.LLMProvider
	registry *tools.Registry
	memories *MemoryStore
}

func NewAgent(provider llm.LLMProvider, registry *tools.Registry, memories *MemoryStore) *Agent {
	return &Agent{
		provider: provider,
		registry: registry,
		memories: memories,
	}
}

// Memories exposes the per-session memory store for inspection and reset.
func (a *Agent) Memories() *MemoryStore {
	return a.memories
}

// Run executes the loop until the model answers, the iteration budget is
// exhausted, or the context is cancelled. A language-model failure aborts
// the run; a tool failure only becomes an observation.
func (a *Agent) Run(ctx context.Context, req Request) (*Outcome, error) {
	maxIterations := req.MaxIterations
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}
	if maxIterations > maxIterationsCap {
		maxIterations = maxIterationsCap
	}

	memory := a.memories.Get(req.SessionID)
	outcome := &Outcome{}
	toolsUsed := make(map[string]bool)

	for iteration := 1; iteration <= maxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		outcome.Iterations = iteration

		prompt := thinkPrompt{
			question:     req.Question,
			context:      req.Context,
			registry:     a.registry,
			memory:       memory.Snapshot(),
			toolsEnabled: req.EnableTools,
		}
		response, err := a.provider.Generate(ctx, prompt.Build(), llm.WithTemperature(0.2))
		if err != nil {
			return nil, fmt.Errorf("think step %d: %w", iteration, err)
		}

		decision := ParseDecision(response)
		if decision.Thought != "" {
			memory.AddThought(decision.Thought)
			outcome.Steps = append(outcome.Steps, Step{Kind: "thought", Content: decision.Thought})
		}

		if decision.Action == nil {
			outcome.Answer = decision.Answer
			outcome.Status = StatusCompleted
			outcome.ToolsUsed = sortedKeys(toolsUsed)
			return outcome, nil
		}

		outcome.Steps = append(outcome.Steps, Step{Kind: "action", Content: decision.Action.Name})
		observation := a.act(ctx, decision.Action, req.EnableTools)
		memory.AddAction(decision.Action.Name)
		memory.AddObservation(observation)
		outcome.Steps = append(outcome.Steps, Step{Kind: "observation", Content: observation})
		if req.EnableTools {
			outcome.ToolCalls++
			toolsUsed[decision.Action.Name] = true
		}
	}

	outcome.Status = StatusMaxIterations
	outcome.Answer = a.bestEffortAnswer(memory)
	outcome.ToolsUsed = sortedKeys(toolsUsed)
	return outcome, nil
}

// act dispatches one tool call. Failures come back as descriptive
// observations, never as errors.
func (a *Agent) act(ctx context.Context, action *ActionRequest, enabled bool) string {
	if !enabled {
		return fmt.Sprintf("tool execution is disabled; cannot run %q", action.Name)
	}

	params := action.Params
	if params.String("query") == "" {
		if raw := params.String("raw"); raw != "" {
			params["query"] = raw
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, toolCallTimeout)
	defer cancel()

	result, err := a.registry.Invoke(callCtx, action.Name, params)
	if err != nil {
		return fmt.Sprintf("tool %q failed: %v", action.Name, err)
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return fmt.Sprintf("tool %q returned an unencodable result: %v", action.Name, err)
	}
	return truncateObservation(string(encoded))
}

// bestEffortAnswer summarizes what the loop gathered when the budget ran
// out without a final answer.
func (a *Agent) bestEffortAnswer(memory *Memory) string {
	snapshot := memory.Snapshot()
	if len(snapshot.Observations) > 0 {
		return "I could not reach a final answer within the allowed steps. Here is what I found: " +
			snapshot.Observations[len(snapshot.Observations)-1]
	}
	if len(snapshot.Thoughts) > 0 {
		return "I could not reach a final answer within the allowed steps. Last reasoning: " +
			snapshot.Thoughts[len(snapshot.Thoughts)-1]
	}
	return "I could not reach a final answer within the allowed steps."
}

func truncateObservation(s string) string {
	if len(s) <= observationLimit {
		return s
	}
	return s[:observationLimit] + "..."
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
