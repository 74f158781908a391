package vectorstore

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// On-disk layout: a binary file with the raw vectors and a JSON side-table
// with chunk content and metadata. Both files must load together; a failure
// in either is reported so the caller can fall back to an empty index.

const indexMagic = uint32(0x45415649) // "EAVI"
const indexVersion = uint32(1)

// Save snapshots the index to indexPath (vectors) and docsPath (chunks).
// Parent directories are created as needed.
func (v *VectorIndex) Save(indexPath, docsPath string) error {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(indexPath), 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}

	f, err := os.Create(indexPath)
	if err != nil {
		return fmt.Errorf("create index file: %w", err)
	}
	defer f.Close()

	header := []uint32{indexMagic, indexVersion, uint32(v.dim), uint32(len(v.vectors))}
	for _, h := range header {
		if err := binary.Write(f, binary.LittleEndian, h); err != nil {
			return fmt.Errorf("write index header: %w", err)
		}
	}
	for _, vec := range v.vectors {
		if err := binary.Write(f, binary.LittleEndian, vec); err != nil {
			return fmt.Errorf("write index vectors: %w", err)
		}
	}

	docsBytes, err := json.Marshal(v.chunks)
	if err != nil {
		return fmt.Errorf("marshal chunks: %w", err)
	}
	if err := os.WriteFile(docsPath, docsBytes, 0o644); err != nil {
		return fmt.Errorf("write docs file: %w", err)
	}
	return nil
}

// Load replaces the index contents from a prior Save. Missing or corrupt
// files return an error and leave the index unchanged, so startup can treat
// a failed load as an empty index.
func (v *VectorIndex) Load(indexPath, docsPath string) error {
	f, err := os.Open(indexPath)
	if err != nil {
		return fmt.Errorf("open index file: %w", err)
	}
	defer f.Close()

	var magic, version, dim, count uint32
	for _, dst := range []*uint32{&magic, &version, &dim, &count} {
		if err := binary.Read(f, binary.LittleEndian, dst); err != nil {
			return fmt.Errorf("read index header: %w", err)
		}
	}
	if magic != indexMagic {
		return fmt.Errorf("bad index magic %#x", magic)
	}
	if version != indexVersion {
		return fmt.Errorf("unsupported index version %d", version)
	}

	vectors := make([][]float32, count)
	for i := range vectors {
		vec := make([]float32, dim)
		if err := binary.Read(f, binary.LittleEndian, vec); err != nil {
			return fmt.Errorf("read vector %d: %w", i, err)
		}
		vectors[i] = vec
	}

	docsBytes, err := os.ReadFile(docsPath)
	if err != nil {
		return fmt.Errorf("read docs file: %w", err)
	}
	var chunks []Chunk
	if err := json.Unmarshal(docsBytes, &chunks); err != nil {
		return fmt.Errorf("unmarshal chunks: %w", err)
	}
	if len(chunks) != int(count) {
		return fmt.Errorf("index/docs size mismatch: %d vectors, %d chunks", count, len(chunks))
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.vectors = vectors
	v.chunks = chunks
	v.dim = int(dim)
	return nil
}
