package agent

import (
	"strings"
	"testing"

	"edu-assist-be/pkg/tools"
)

func TestThinkPromptListsToolDescriptions(t *testing.T) {
	registry := tools.NewRegistry()
	registry.Register(&echoTool{name: "web_search", enabled: true, desc: "general web results"})
	registry.Register(&echoTool{name: "wikipedia", enabled: true, category: tools.CategoryKnowledge, desc: "encyclopedia articles"})
	registry.Register(&echoTool{name: "weather", enabled: true, category: tools.CategoryWeather, desc: "current conditions"})
	registry.Register(&echoTool{name: "locked", enabled: false, desc: "never listed"})

	p := thinkPrompt{question: "q", registry: registry, toolsEnabled: true}
	built := p.Build()

	for _, want := range []string{
		"web_search: general web results",
		"wikipedia: encyclopedia articles",
		"weather: current conditions",
		"Prefer wikipedia for factual",
		"Fall back to web_search",
		"Use weather only when the question explicitly calls for them",
	} {
		if !strings.Contains(built, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(built, "never listed") {
		t.Error("disabled tool leaked into the prompt")
	}
}

func TestThinkPromptWithoutTools(t *testing.T) {
	p := thinkPrompt{question: "q", registry: tools.NewRegistry(), toolsEnabled: false}
	built := p.Build()

	if strings.Contains(built, "<tool_guidance>") {
		t.Error("guidance rendered with tools disabled")
	}
	if !strings.Contains(built, "No tools are available") {
		t.Error("missing no-tools notice")
	}
}
