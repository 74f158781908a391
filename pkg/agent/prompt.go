package agent

import (
	"strings"

	"edu-assist-be/pkg/tools"
)

// thinkPrompt assembles the decision prompt for one loop iteration: the
// question, any retrieval context, the enabled tool catalogue, the recent
// memory recap, and the strict output format.
type thinkPrompt struct {
	question     string
	context      string
	registry     *tools.Registry
	memory       MemorySnapshot
	toolsEnabled bool
}

func (p *thinkPrompt) Build() string {
	var prompt strings.Builder

	prompt.WriteString("<task>\n")
	prompt.WriteString("You are a reasoning assistant answering a learner's question. ")
	prompt.WriteString("Work step by step: decide whether you can answer now or need a tool first.\n")
	prompt.WriteString("</task>\n\n")

	if p.context != "" {
		prompt.WriteString("<gathered_context>\n")
		prompt.WriteString(p.context)
		prompt.WriteString("\n</gathered_context>\n\n")
	}

	p.writeTools(&prompt)
	p.writeMemory(&prompt)

	prompt.WriteString("<format>\n")
	prompt.WriteString("To use a tool, reply with exactly these three lines:\n")
	prompt.WriteString("Thought: <why you need the tool>\n")
	prompt.WriteString("Action: <tool name>\n")
	prompt.WriteString("Action Input: <JSON object of parameters, e.g. {\"query\": \"...\"}>\n")
	prompt.WriteString("\n")
	prompt.WriteString("To answer, omit the Action lines and write your answer after an optional Thought line.\n")
	prompt.WriteString("</format>\n\n")

	prompt.WriteString("<question>\n")
	prompt.WriteString(p.question)
	prompt.WriteString("\n</question>\n")

	return prompt.String()
}

func (p *thinkPrompt) writeTools(prompt *strings.Builder) {
	if !p.toolsEnabled || p.registry == nil {
		prompt.WriteString("No tools are available. Answer from the context and your own knowledge.\n\n")
		return
	}

	names := p.registry.EnabledNames()
	if len(names) == 0 {
		prompt.WriteString("No tools are available. Answer from the context and your own knowledge.\n\n")
		return
	}

	byCategory := make(map[string][]string)
	prompt.WriteString("<tools>\n")
	for _, name := range names {
		tool, ok := p.registry.Get(name)
		if !ok {
			continue
		}
		prompt.WriteString("- ")
		prompt.WriteString(name)
		prompt.WriteString(": ")
		prompt.WriteString(tool.Description())
		prompt.WriteString("\n")
		byCategory[tool.Category()] = append(byCategory[tool.Category()], name)
	}
	prompt.WriteString("</tools>\n\n")

	p.writeToolGuidance(prompt, byCategory)
}

// writeToolGuidance tiers the enabled tools: knowledge sources first,
// web search as the fallback, the specialized tools only on demand.
func (p *thinkPrompt) writeToolGuidance(prompt *strings.Builder, byCategory map[string][]string) {
	prompt.WriteString("<tool_guidance>\n")
	if knowledge := byCategory[tools.CategoryKnowledge]; len(knowledge) > 0 {
		prompt.WriteString("Prefer ")
		prompt.WriteString(strings.Join(knowledge, ", "))
		prompt.WriteString(" for factual, academic, or encyclopedic questions.\n")
	}
	if search := byCategory[tools.CategorySearch]; len(search) > 0 {
		prompt.WriteString("Fall back to ")
		prompt.WriteString(strings.Join(search, ", "))
		prompt.WriteString(" for current events or anything the knowledge sources do not cover.\n")
	}
	var specialized []string
	for _, category := range []string{tools.CategoryWeather, tools.CategoryCode, tools.CategoryData} {
		specialized = append(specialized, byCategory[category]...)
	}
	if len(specialized) > 0 {
		prompt.WriteString("Use ")
		prompt.WriteString(strings.Join(specialized, ", "))
		prompt.WriteString(" only when the question explicitly calls for them.\n")
	}
	prompt.WriteString("Call at most one tool per step.\n")
	prompt.WriteString("</tool_guidance>\n\n")
}

func (p *thinkPrompt) writeMemory(prompt *strings.Builder) {
	if len(p.memory.Thoughts) == 0 && len(p.memory.Observations) == 0 {
		return
	}

	prompt.WriteString("<previous_steps>\n")
	for i, thought := range p.memory.Thoughts {
		prompt.WriteString("Thought: ")
		prompt.WriteString(thought)
		prompt.WriteString("\n")
		if i < len(p.memory.Actions) {
			prompt.WriteString("Action: ")
			prompt.WriteString(p.memory.Actions[i])
			prompt.WriteString("\n")
		}
		if i < len(p.memory.Observations) {
			prompt.WriteString("Observation: ")
			prompt.WriteString(p.memory.Observations[i])
			prompt.WriteString("\n")
		}
	}
	prompt.WriteString("</previous_steps>\n\n")
	prompt.WriteString("Do not repeat a tool call that already produced an observation above.\n\n")
}
