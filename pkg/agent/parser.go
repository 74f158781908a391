package agent

import (
	"encoding/json"
	"strings"

	"edu-assist-be/pkg/tools"
)

// ActionRequest is a parsed tool dispatch proposal.
type ActionRequest struct {
	Name   string
	Params tools.Params
}

// Decision is the model's structured choice for one loop iteration: either
// a tool action or a final answer.
type Decision struct {
	Thought string
	Action  *ActionRequest
	Answer  string
}

// ParseDecision reads a model response line by line, best-effort. A
// response without an Action line is the final answer regardless of its
// Thought content. Action Input spans from its marker line to the next
// protocol marker, so pretty-printed multi-line JSON stays intact. An
// input that fails to parse as JSON degrades to a single {"raw": text}
// parameter.
func ParseDecision(response string) Decision {
	var decision Decision
	var actionName string
	var inputLines []string
	collectingInput := false

	for _, line := range strings.Split(response, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "Thought:"):
			collectingInput = false
			decision.Thought = strings.TrimSpace(strings.TrimPrefix(trimmed, "Thought:"))
		case strings.HasPrefix(trimmed, "Action:"):
			collectingInput = false
			actionName = strings.TrimSpace(strings.TrimPrefix(trimmed, "Action:"))
		case strings.HasPrefix(trimmed, "Action Input:"):
			collectingInput = true
			inputLines = append(inputLines, strings.TrimSpace(strings.TrimPrefix(trimmed, "Action Input:")))
		case strings.HasPrefix(trimmed, "Final Answer:"):
			collectingInput = false
		case collectingInput:
			inputLines = append(inputLines, line)
		}
	}

	if actionName == "" {
		decision.Answer = extractAnswer(response)
		return decision
	}

	decision.Action = &ActionRequest{
		Name:   actionName,
		Params: parseActionInput(strings.TrimSpace(strings.Join(inputLines, "\n"))),
	}
	return decision
}

func parseActionInput(input string) tools.Params {
	if input == "" {
		return tools.Params{}
	}

	var params tools.Params
	if err := json.Unmarshal([]byte(input), &params); err == nil {
		return params
	}

	return tools.Params{"raw": input}
}

// extractAnswer strips the decision scaffolding from a final response.
func extractAnswer(response string) string {
	if idx := strings.Index(response, "Final Answer:"); idx >= 0 {
		return strings.TrimSpace(response[idx+len("Final Answer:"):])
	}

	var kept []string
	for _, line := range strings.Split(response, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "Thought:") {
			continue
		}
		kept = append(kept, line)
	}
	answer := strings.TrimSpace(strings.Join(kept, "\n"))
	if answer == "" {
		// Nothing but a thought; surface it rather than an empty answer
		answer = strings.TrimSpace(response)
	}
	return answer
}
