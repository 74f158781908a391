package prompt

import (
	"strings"
	"testing"

	"edu-assist-be/pkg/learner"
)

func TestBuildBalancedStyleHasNoAdaptations(t *testing.T) {
	b := NewAdaptiveBuilder(learner.Style{}, Context{Primary: "material"}, "what is a heap?")
	out := b.Build()

	if strings.Contains(out, "<learning_style>") {
		t.Error("balanced style produced a learning_style section")
	}
	if !strings.Contains(out, "<reference_material>") {
		t.Error("missing reference_material section")
	}
	if !strings.Contains(out, "what is a heap?") {
		t.Error("missing user question")
	}
}

func TestBuildIncludesAdaptationPerAxis(t *testing.T) {
	style := learner.Style{
		Processing:    learner.Preference{Pole: learner.PoleActive, Strength: learner.StrengthModerate},
		Understanding: learner.Preference{Pole: learner.PoleGlobal, Strength: learner.StrengthStrong},
	}
	out := NewAdaptiveBuilder(style, Context{}, "q").Build()

	if !strings.Contains(out, "<learning_style>") {
		t.Fatal("missing learning_style section")
	}
	if !strings.Contains(out, adaptationClauses[learner.PoleActive]) {
		t.Error("missing active-processing clause")
	}
	if !strings.Contains(out, adaptationClauses[learner.PoleGlobal]) {
		t.Error("missing global-understanding clause")
	}
	if strings.Contains(out, adaptationClauses[learner.PoleSensing]) {
		t.Error("balanced perception axis produced a clause")
	}
}

func TestBuildSplitContext(t *testing.T) {
	ctx := Context{Primary: "chosen docs", Secondary: "related stuff"}
	out := NewAdaptiveBuilder(learner.Style{}, ctx, "q").Build()

	if !strings.Contains(out, "<selected_documents>") || !strings.Contains(out, "<related_material>") {
		t.Error("split context missing its two sections")
	}
	if !strings.Contains(out, "authoritative") {
		t.Error("split context missing the precedence instruction")
	}
	if strings.Contains(out, "<reference_material>") {
		t.Error("split context should not emit the merged section")
	}
}

func TestBuildNoContext(t *testing.T) {
	out := NewAdaptiveBuilder(learner.Style{}, Context{}, "q").Build()

	if strings.Contains(out, "<reference_material>") {
		t.Error("empty context emitted a reference_material section")
	}
	if !strings.Contains(out, "<guidelines>") {
		t.Error("guidelines section must always be present")
	}
}

func TestBuildSecondaryOnlyFallsBackToMerged(t *testing.T) {
	out := NewAdaptiveBuilder(learner.Style{}, Context{Secondary: "loose material"}, "q").Build()

	if !strings.Contains(out, "<reference_material>\nloose material") {
		t.Error("secondary-only context should render as merged reference material")
	}
}
