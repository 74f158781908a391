package vectorstore

import (
	"math"
	"sort"
	"sync"
)

// ChunkMetadata tags an indexed chunk with its origin and the content
// features used later by adaptive ranking.
type ChunkMetadata struct {
	Source     string          `json:"source"`
	SessionID  string          `json:"session_id,omitempty"`
	DocumentID string          `json:"document_id,omitempty"`
	Features   ContentFeatures `json:"content_type_features"`
}

// Chunk is one indexed unit of document text. Immutable once added.
type Chunk struct {
	Content  string        `json:"content"`
	Metadata ChunkMetadata `json:"metadata"`
}

// Hit is a single search result with its cosine similarity score.
type Hit struct {
	Index int
	Chunk Chunk
	Score float32
}

// Filter narrows search eligibility to chunks carrying matching metadata.
// A chunk is eligible if its document id is in DocumentIDs, or (when no
// document list matched) its session id equals SessionID.
type Filter struct {
	SessionID   string
	DocumentIDs []string
}

func (f *Filter) empty() bool {
	return f == nil || (f.SessionID == "" && len(f.DocumentIDs) == 0)
}

func (f *Filter) matches(meta ChunkMetadata) bool {
	for _, id := range f.DocumentIDs {
		if id != "" && id == meta.DocumentID {
			return true
		}
	}
	if f.SessionID != "" && f.SessionID == meta.SessionID {
		return true
	}
	return false
}

// overFetchFloor is the minimum candidate pool scanned before a filter is
// applied. Filtered-in chunks are often outside the global top-k, so the
// pool has to be much larger than k.
const overFetchFloor = 200

// VectorIndex is an append-only in-memory store of unit-normalized chunk
// embeddings with a parallel chunk array. Reads run concurrently; Add and
// Load take the write lock.
type VectorIndex struct {
	mu      sync.RWMutex
	vectors [][]float32
	chunks  []Chunk
	dim     int
}

func NewVectorIndex() *VectorIndex {
	return &VectorIndex{}
}

// Len returns the number of indexed chunks.
func (v *VectorIndex) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.chunks)
}

// Add appends chunks with their embeddings. Vectors are L2-normalized on
// insertion so Search can rank by plain inner product. No-op on empty input.
func (v *VectorIndex) Add(chunks []Chunk, embeddings [][]float32) {
	if len(chunks) == 0 || len(chunks) != len(embeddings) {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	for i, emb := range embeddings {
		vec := normalize(emb)
		if v.dim == 0 {
			v.dim = len(vec)
		}
		v.vectors = append(v.vectors, vec)
		v.chunks = append(v.chunks, chunks[i])
	}
}

// Search returns the top k chunks by cosine similarity against the query
// embedding. With a filter, a larger candidate pool (at least max(k*20, 200),
// capped at index size) is scored first, then non-matching chunks are
// dropped entirely, even if that leaves fewer than k results. Searching an
// empty index returns nil.
func (v *VectorIndex) Search(queryEmbedding []float32, k int, filter *Filter) []Hit {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if len(v.chunks) == 0 || k <= 0 {
		return nil
	}

	query := normalize(queryEmbedding)

	fetchK := k
	if !filter.empty() {
		fetchK = k * 20
		if fetchK < overFetchFloor {
			fetchK = overFetchFloor
		}
	}
	if fetchK > len(v.chunks) {
		fetchK = len(v.chunks)
	}

	hits := make([]Hit, len(v.vectors))
	for i, vec := range v.vectors {
		hits[i] = Hit{Index: i, Chunk: v.chunks[i], Score: dot(query, vec)}
	}

	// Descending by score, ties broken by insertion order for determinism
	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Score > hits[b].Score
	})
	hits = hits[:fetchK]

	if !filter.empty() {
		filtered := hits[:0]
		for _, h := range hits {
			if filter.matches(h.Chunk.Metadata) {
				filtered = append(filtered, h)
			}
		}
		hits = filtered
	}

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func normalize(vec []float32) []float32 {
	var magnitude float64
	for _, x := range vec {
		magnitude += float64(x) * float64(x)
	}
	magnitude = math.Sqrt(magnitude)
	if magnitude == 0 {
		return vec
	}
	out := make([]float32, len(vec))
	for i, x := range vec {
		out[i] = float32(float64(x) / magnitude)
	}
	return out
}
