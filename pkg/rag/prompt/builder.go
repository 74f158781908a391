package prompt

import (
	"strings"

	"edu-assist-be/pkg/learner"
)

// Context carries the retrieved material for one prompt. When the caller
// explicitly selected documents, their content goes into Primary and the
// rest of the retrieval into Secondary.
type Context struct {
	Primary   string
	Secondary string
}

// Split reports whether the context distinguishes authoritative material
// from supplementary material.
func (c Context) Split() bool {
	return c.Primary != "" && c.Secondary != ""
}

// AdaptiveBuilder composes the system instruction for one chat turn,
// tailored to the learner's classified style.
type AdaptiveBuilder struct {
	style   learner.Style
	context Context
	query   string
}

func NewAdaptiveBuilder(style learner.Style, context Context, query string) *AdaptiveBuilder {
	return &AdaptiveBuilder{
		style:   style,
		context: context,
		query:   query,
	}
}

// Build produces the full instruction string.
func (b *AdaptiveBuilder) Build() string {
	var prompt strings.Builder

	b.writePersona(&prompt)
	b.writeAdaptations(&prompt)
	b.writeContext(&prompt)
	b.writeClosing(&prompt)

	return prompt.String()
}

func (b *AdaptiveBuilder) writePersona(prompt *strings.Builder) {
	prompt.WriteString("<task>\n")
	prompt.WriteString("You are an educational assistant helping a learner understand their study material.\n")
	prompt.WriteString("</task>\n\n")
}

// One adaptation clause per non-balanced axis. The wording maps each pole
// to a concrete presentation instruction.
var adaptationClauses = map[string]string{
	learner.PoleActive:     "Favor hands-on steps and concise, actionable answers the learner can try immediately.",
	learner.PoleReflective: "Give the learner room to think: explain the reasoning behind each point thoroughly.",
	learner.PoleSensing:    "Ground every explanation in concrete facts, worked examples, and practical applications.",
	learner.PoleIntuitive:  "Lead with the underlying concepts and theoretical relationships before any details.",
	learner.PoleVisual:     "Describe structure spatially: use lists, comparisons, and vivid descriptions the learner can picture.",
	learner.PoleVerbal:     "Explain in well-developed prose with precise terminology.",
	learner.PoleSequential: "Present the answer as an ordered sequence of steps, each building on the last.",
	learner.PoleGlobal:     "Start with the big picture and how the pieces relate, then fill in specifics.",
}

func (b *AdaptiveBuilder) writeAdaptations(prompt *strings.Builder) {
	var clauses []string
	for _, pref := range []learner.Preference{
		b.style.Processing,
		b.style.Perception,
		b.style.Input,
		b.style.Understanding,
	} {
		if pref.Balanced() {
			continue
		}
		if clause, ok := adaptationClauses[pref.Pole]; ok {
			clauses = append(clauses, clause)
		}
	}

	if len(clauses) == 0 {
		return
	}

	prompt.WriteString("<learning_style>\n")
	prompt.WriteString("Adapt your presentation to this learner:\n")
	for _, clause := range clauses {
		prompt.WriteString("- ")
		prompt.WriteString(clause)
		prompt.WriteString("\n")
	}
	prompt.WriteString("</learning_style>\n\n")
}

func (b *AdaptiveBuilder) writeContext(prompt *strings.Builder) {
	if b.context.Primary == "" && b.context.Secondary == "" {
		return
	}

	if b.context.Split() {
		prompt.WriteString("<selected_documents>\n")
		prompt.WriteString(b.context.Primary)
		prompt.WriteString("\n</selected_documents>\n\n")
		prompt.WriteString("<related_material>\n")
		prompt.WriteString(b.context.Secondary)
		prompt.WriteString("\n</related_material>\n\n")
		prompt.WriteString("Treat the selected documents as authoritative. Use the related material only to supplement them, never to contradict them.\n\n")
		return
	}

	content := b.context.Primary
	if content == "" {
		content = b.context.Secondary
	}
	prompt.WriteString("<reference_material>\n")
	prompt.WriteString(content)
	prompt.WriteString("\n</reference_material>\n\n")
}

func (b *AdaptiveBuilder) writeClosing(prompt *strings.Builder) {
	prompt.WriteString("<guidelines>\n")
	prompt.WriteString("1. Base your answer on the material provided above\n")
	prompt.WriteString("2. If the material doesn't contain what's being asked, say so honestly\n")
	prompt.WriteString("3. Be complete - don't skip relevant information from the material\n")
	prompt.WriteString("</guidelines>\n\n")

	prompt.WriteString("<user_question>\n")
	prompt.WriteString(b.query)
	prompt.WriteString("\n</user_question>\n\n")
	prompt.WriteString("Now provide your complete response:")
}
