package learner

const (
	StrengthBalanced = "balanced"
	StrengthModerate = "moderate"
	StrengthStrong   = "strong"

	PoleActive     = "active"
	PoleReflective = "reflective"
	PoleSensing    = "sensing"
	PoleIntuitive  = "intuitive"
	PoleVisual     = "visual"
	PoleVerbal     = "verbal"
	PoleSequential = "sequential"
	PoleGlobal     = "global"
)

// Preference is the classified leaning on one axis.
type Preference struct {
	Pole     string `json:"pole"`
	Strength string `json:"strength"`
}

// Balanced reports whether the axis shows no usable preference.
func (p Preference) Balanced() bool {
	return p.Strength == StrengthBalanced
}

// Style is the full four-axis classification used by prompt composition
// and adaptive ranking.
type Style struct {
	Processing    Preference `json:"processing"`    // active / reflective
	Perception    Preference `json:"perception"`    // sensing / intuitive
	Input         Preference `json:"input"`         // visual / verbal
	Understanding Preference `json:"understanding"` // sequential / global
}

// Classify maps the profile's dimension values to named preferences.
// |v| < 3 is balanced, 3 <= |v| < 7 moderate, |v| >= 7 strong. Negative
// values lean to the first pole of each pair.
func (p *Profile) Classify() Style {
	return Style{
		Processing:    classifyAxis(p.Dimensions.ActiveReflective, PoleActive, PoleReflective),
		Perception:    classifyAxis(p.Dimensions.SensingIntuitive, PoleSensing, PoleIntuitive),
		Input:         classifyAxis(p.Dimensions.VisualVerbal, PoleVisual, PoleVerbal),
		Understanding: classifyAxis(p.Dimensions.SequentialGlobal, PoleSequential, PoleGlobal),
	}
}

func classifyAxis(value float64, negPole, posPole string) Preference {
	abs := value
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs < 3:
		return Preference{Pole: StrengthBalanced, Strength: StrengthBalanced}
	case abs < 7:
		return Preference{Pole: pickPole(value, negPole, posPole), Strength: StrengthModerate}
	default:
		return Preference{Pole: pickPole(value, negPole, posPole), Strength: StrengthStrong}
	}
}

func pickPole(value float64, negPole, posPole string) string {
	if value < 0 {
		return negPole
	}
	return posPole
}

// Describe renders the classification as a readable per-axis map,
// e.g. {"processing": "moderate active"}.
func (s Style) Describe() map[string]string {
	describe := func(p Preference) string {
		if p.Balanced() {
			return StrengthBalanced
		}
		return p.Strength + " " + p.Pole
	}
	return map[string]string{
		"processing":    describe(s.Processing),
		"perception":    describe(s.Perception),
		"input":         describe(s.Input),
		"understanding": describe(s.Understanding),
	}
}
