package rank

import (
	"sort"

	"edu-assist-be/pkg/learner"
	"edu-assist-be/pkg/vectorstore"
)

// Score weighting between raw semantic similarity and style affinity.
const (
	semanticWeight = 0.7
	styleWeight    = 0.3

	baseStyleScore = 0.5

	// Priority multipliers for caller-scoped hits
	explicitDocumentBoost = 2.0
	sessionBoost          = 1.5
	noBoost               = 1.0
)

// RankedHit is a hit with its adaptive scoring breakdown. Ephemeral,
// never persisted.
type RankedHit struct {
	Chunk              vectorstore.Chunk
	SemanticScore      float64
	StyleScore         float64
	CombinedScore      float64
	PriorityMultiplier float64
}

// FinalScore orders the ranking.
func (h RankedHit) FinalScore() float64 {
	return h.CombinedScore * h.PriorityMultiplier
}

// Options scope a ranking request to the caller's session and any
// explicitly selected documents. Strict turns scope into an eligibility
// requirement instead of a boost.
type Options struct {
	SessionID   string
	DocumentIDs []string
	TopK        int
	Strict      bool
}

// Rank re-scores raw search hits against the learner's style and the
// request scope. In strict mode, hits without matching session or document
// metadata are excluded outright, even if fewer than TopK remain.
// Ordering is deterministic: ties keep input order.
func Rank(hits []vectorstore.Hit, style learner.Style, opts Options) []RankedHit {
	ranked := make([]RankedHit, 0, len(hits))
	for _, hit := range hits {
		multiplier := priorityMultiplier(hit.Chunk.Metadata, opts)
		if opts.Strict && multiplier == noBoost {
			continue
		}

		styleScore := StyleScore(hit.Chunk.Metadata.Features, style)
		semantic := float64(hit.Score)
		ranked = append(ranked, RankedHit{
			Chunk:              hit.Chunk,
			SemanticScore:      semantic,
			StyleScore:         styleScore,
			CombinedScore:      semanticWeight*semantic + styleWeight*styleScore,
			PriorityMultiplier: multiplier,
		})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].FinalScore() > ranked[b].FinalScore()
	})

	if opts.TopK > 0 && len(ranked) > opts.TopK {
		ranked = ranked[:opts.TopK]
	}
	return ranked
}

func priorityMultiplier(meta vectorstore.ChunkMetadata, opts Options) float64 {
	for _, id := range opts.DocumentIDs {
		if id != "" && id == meta.DocumentID {
			return explicitDocumentBoost
		}
	}
	if opts.SessionID != "" && opts.SessionID == meta.SessionID {
		return sessionBoost
	}
	return noBoost
}

// StyleScore measures how well a chunk's content shape fits the learner's
// classified preferences. Starts at 0.5 and adds fixed increments per
// matching axis; the visual/verbal axis carries no content signal and is
// left unscored. Capped at 1.0.
func StyleScore(features vectorstore.ContentFeatures, style learner.Style) float64 {
	score := baseStyleScore

	switch style.Perception.Pole {
	case learner.PoleSensing:
		if features.HasExamples {
			score += 0.2
		}
		if features.IsDetailed {
			score += 0.1
		}
	case learner.PoleIntuitive:
		if features.HasTheory {
			score += 0.2
		}
		if features.HasOverview {
			score += 0.1
		}
	}

	switch style.Understanding.Pole {
	case learner.PoleSequential:
		if features.HasSteps {
			score += 0.15
		}
	case learner.PoleGlobal:
		if features.HasOverview {
			score += 0.15
		}
	}

	switch style.Processing.Pole {
	case learner.PoleActive:
		if features.IsConcise {
			score += 0.1
		}
		if features.HasExamples {
			score += 0.1
		}
	case learner.PoleReflective:
		if features.IsDetailed {
			score += 0.1
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}
