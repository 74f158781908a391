package confidence

// Retrieval confidence blends three adequacy signals: how many chunks came
// back, how relevant they scored, and how much context text they carry.
const (
	countWeight  = 0.3
	scoreWeight  = 0.4
	lengthWeight = 0.3

	fullCountDocs   = 5
	fullLengthChars = 2000

	// Threshold below which the orchestrator escalates to the reasoning
	// agent instead of answering from retrieval alone.
	EscalationThreshold = 0.3
)

// Score maps a retrieval result set to [0, 1]. An empty result set scores 0.
func Score(docCount int, avgRelevance float64, contextChars int) float64 {
	if docCount <= 0 {
		return 0
	}

	countTerm := float64(docCount) / fullCountDocs
	if countTerm > 1 {
		countTerm = 1
	}
	lengthTerm := float64(contextChars) / fullLengthChars
	if lengthTerm > 1 {
		lengthTerm = 1
	}

	score := countWeight*countTerm + scoreWeight*avgRelevance + lengthWeight*lengthTerm
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// ShouldEscalate reports whether retrieval was too weak to answer directly.
func ShouldEscalate(score float64) bool {
	return score < EscalationThreshold
}
