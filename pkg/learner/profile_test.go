package learner

import (
	"math"
	"testing"
)

func TestAnalyzeMessageKeywordSignals(t *testing.T) {
	tests := []struct {
		name    string
		message string
		check   func(d Dimensions) bool
		desc    string
	}{
		{
			name:    "reflective language moves toward reflective",
			message: "why is the compiler slow? explain and analyze the theory behind it please",
			check:   func(d Dimensions) bool { return d.ActiveReflective > 0 },
			desc:    "ActiveReflective > 0",
		},
		{
			name:    "practical language moves toward sensing",
			message: "give me a practical example with concrete numbers please and thank you kindly",
			check:   func(d Dimensions) bool { return d.SensingIntuitive < 0 },
			desc:    "SensingIntuitive < 0",
		},
		{
			name:    "visual language moves toward visual",
			message: "show me a diagram of the memory layout please, ideally a labelled graph",
			check:   func(d Dimensions) bool { return d.VisualVerbal < 0 },
			desc:    "VisualVerbal < 0",
		},
		{
			name:    "global language moves toward global",
			message: "give me the big picture overview of how these components relate together",
			check:   func(d Dimensions) bool { return d.SequentialGlobal > 0 },
			desc:    "SequentialGlobal > 0",
		},
		{
			name:    "short message nudges toward active",
			message: "fix it now",
			check:   func(d Dimensions) bool { return d.ActiveReflective < 0 },
			desc:    "ActiveReflective < 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProfile("s1")
			p.AnalyzeMessage(tt.message)
			if !tt.check(p.Dimensions) {
				t.Errorf("after %q: dimensions = %+v, want %s", tt.message, p.Dimensions, tt.desc)
			}
		})
	}
}

func TestAnalyzeMessageClamping(t *testing.T) {
	p := NewProfile("s1")
	// Hammer the same signal far past the scale bound
	for i := 0; i < 50; i++ {
		p.AnalyzeMessage("show me a diagram and a chart and a graph to visualize everything clearly")
	}
	if p.Dimensions.VisualVerbal < DimensionMin {
		t.Errorf("VisualVerbal = %f, want >= %f", p.Dimensions.VisualVerbal, DimensionMin)
	}
	if p.Dimensions.VisualVerbal != DimensionMin {
		t.Errorf("VisualVerbal = %f, want saturated at %f", p.Dimensions.VisualVerbal, DimensionMin)
	}
}

func TestAnalyzeMessageTracksHistory(t *testing.T) {
	p := NewProfile("s1")
	for i := 0; i < 15; i++ {
		p.AnalyzeMessage("tell me more about this topic in proper detail if you would")
	}
	if p.InteractionCount != 15 {
		t.Errorf("InteractionCount = %d, want 15", p.InteractionCount)
	}
	if len(p.InteractionHistory) != 10 {
		t.Errorf("len(InteractionHistory) = %d, want capped at 10", len(p.InteractionHistory))
	}
}

func TestQuestionnaireDominatesInteractions(t *testing.T) {
	p := NewProfile("s1")
	p.ApplyQuestionnaire(Dimensions{ActiveReflective: 10})

	if !p.QuestionnaireApplied {
		t.Fatal("QuestionnaireApplied = false after ApplyQuestionnaire")
	}
	if p.Dimensions.ActiveReflective != 10 {
		t.Fatalf("ActiveReflective = %f, want 10", p.Dimensions.ActiveReflective)
	}

	before := p.Dimensions.ActiveReflective
	p.AnalyzeMessage("build and run the test suite for me right away please thanks a lot")
	moved := math.Abs(p.Dimensions.ActiveReflective - before)
	if moved > 0.3+1e-9 {
		t.Errorf("post-questionnaire nudge moved dimension by %f, want <= 0.3", moved)
	}
}

func TestApplyQuestionnaireClampsAnswers(t *testing.T) {
	p := NewProfile("s1")
	p.ApplyQuestionnaire(Dimensions{
		ActiveReflective: 40,
		SensingIntuitive: -40,
	})
	if p.Dimensions.ActiveReflective != DimensionMax {
		t.Errorf("ActiveReflective = %f, want %f", p.Dimensions.ActiveReflective, DimensionMax)
	}
	if p.Dimensions.SensingIntuitive != DimensionMin {
		t.Errorf("SensingIntuitive = %f, want %f", p.Dimensions.SensingIntuitive, DimensionMin)
	}
}
