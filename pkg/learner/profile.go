package learner

import (
	"strings"
	"time"
)

// Dimension bounds follow the Felder-Silverman ILS scale.
const (
	DimensionMin = -11.0
	DimensionMax = 11.0

	// Interaction nudges are scaled down once a questionnaire snapshot
	// exists, so declared answers keep dominating inferred signals.
	interactionWeight   = 0.3
	fullWeight          = 1.0
	brevityNudge        = 0.5
	maxHistoryEntries   = 10
	shortMessageWordCap = 10
)

// Dimensions holds the four learning-style axes. Negative values lean
// toward the first pole of each pair (active, sensing, visual, sequential).
type Dimensions struct {
	ActiveReflective float64 `json:"active_reflective"`
	SensingIntuitive float64 `json:"sensing_intuitive"`
	VisualVerbal     float64 `json:"visual_verbal"`
	SequentialGlobal float64 `json:"sequential_global"`
}

// InteractionRecord is one analyzed user message kept in the bounded history.
type InteractionRecord struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Profile is the per-session learning-style state.
type Profile struct {
	ID                   string              `json:"id"`
	Dimensions           Dimensions          `json:"dimensions"`
	InteractionCount     int                 `json:"interaction_count"`
	InteractionHistory   []InteractionRecord `json:"interaction_history"`
	Questionnaire        *Dimensions         `json:"questionnaire,omitempty"`
	QuestionnaireApplied bool                `json:"questionnaire_applied"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

func NewProfile(id string) *Profile {
	return &Profile{
		ID:        id,
		UpdatedAt: time.Now().UTC(),
	}
}

// ApplyQuestionnaire overwrites all four dimensions with the declared
// answers. One-time in intent; a repeat submission simply overwrites again.
func (p *Profile) ApplyQuestionnaire(answers Dimensions) {
	p.Dimensions = Dimensions{
		ActiveReflective: clamp(answers.ActiveReflective),
		SensingIntuitive: clamp(answers.SensingIntuitive),
		VisualVerbal:     clamp(answers.VisualVerbal),
		SequentialGlobal: clamp(answers.SequentialGlobal),
	}
	q := p.Dimensions
	p.Questionnaire = &q
	p.QuestionnaireApplied = true
	p.UpdatedAt = time.Now().UTC()
}

// Keyword signals for message-pattern analysis. Matching is case-insensitive
// substring search over the raw message.
var (
	quickActionWords = []string{"do", "make", "create", "build", "try", "test", "run", "execute"}
	reflectiveWords  = []string{"why", "explain", "understand", "think", "analyze", "theory"}
	practicalWords   = []string{"example", "how to", "step", "practical", "real", "specific", "concrete"}
	conceptualWords  = []string{"concept", "theory", "abstract", "principle", "why", "underlying"}
	visualWords      = []string{"show", "diagram", "picture", "graph", "chart", "visualize", "draw"}
	verbalWords      = []string{"explain", "describe", "tell", "write", "detail"}
	sequentialWords  = []string{"step by step", "first", "next", "then", "sequential", "order"}
	globalWords      = []string{"overview", "big picture", "overall", "summary", "relationship"}
)

// AnalyzeMessage nudges the dimensions from keyword signals in one user
// message. Dimensions stay clamped to [-11, 11].
func (p *Profile) AnalyzeMessage(message string) {
	weight := fullWeight
	if p.QuestionnaireApplied {
		weight = interactionWeight
	}

	lower := strings.ToLower(message)

	if hasAnyKeyword(lower, quickActionWords) {
		p.Dimensions.ActiveReflective -= weight
	}
	if hasAnyKeyword(lower, reflectiveWords) {
		p.Dimensions.ActiveReflective += weight
	}
	if hasAnyKeyword(lower, practicalWords) {
		p.Dimensions.SensingIntuitive -= weight
	}
	if hasAnyKeyword(lower, conceptualWords) {
		p.Dimensions.SensingIntuitive += weight
	}
	if hasAnyKeyword(lower, visualWords) {
		p.Dimensions.VisualVerbal -= weight
	}
	if hasAnyKeyword(lower, verbalWords) {
		p.Dimensions.VisualVerbal += weight
	}
	if hasAnyKeyword(lower, sequentialWords) {
		p.Dimensions.SequentialGlobal -= weight
	}
	if hasAnyKeyword(lower, globalWords) {
		p.Dimensions.SequentialGlobal += weight
	}

	// Short messages hint at a preference for quick, hands-on answers
	if len(strings.Fields(message)) < shortMessageWordCap {
		p.Dimensions.ActiveReflective -= brevityNudge * weight
	}

	p.Dimensions.ActiveReflective = clamp(p.Dimensions.ActiveReflective)
	p.Dimensions.SensingIntuitive = clamp(p.Dimensions.SensingIntuitive)
	p.Dimensions.VisualVerbal = clamp(p.Dimensions.VisualVerbal)
	p.Dimensions.SequentialGlobal = clamp(p.Dimensions.SequentialGlobal)

	p.InteractionCount++
	p.InteractionHistory = append(p.InteractionHistory, InteractionRecord{
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
	if len(p.InteractionHistory) > maxHistoryEntries {
		p.InteractionHistory = p.InteractionHistory[len(p.InteractionHistory)-maxHistoryEntries:]
	}
	p.UpdatedAt = time.Now().UTC()
}

func hasAnyKeyword(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	if v < DimensionMin {
		return DimensionMin
	}
	if v > DimensionMax {
		return DimensionMax
	}
	return v
}
