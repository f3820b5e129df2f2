// Package ledger reads and writes the on-disk JSON artifacts the pipeline
// shares with the external segmentation and metadata tools: the chunk ledger,
// the triplet ledger and the file-metadata list.
package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/htic/graphrag/internal/core/model"
)

func LoadChunks(path string) ([]model.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chunk ledger '%s': %w", path, err)
	}

	var chunks []model.Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("failed to parse chunk ledger '%s': %w", path, err)
	}
	return chunks, nil
}

func LoadFiles(path string) ([]model.FileMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file metadata '%s': %w", path, err)
	}

	var files []model.FileMeta
	if err := json.Unmarshal(data, &files); err != nil {
		return nil, fmt.Errorf("failed to parse file metadata '%s': %w", path, err)
	}
	return files, nil
}

// LoadTriplets reads the committed triplet ledger. A missing file means a
// fresh run and yields an empty ledger, not an error. Chunk ids are
// re-derived for ledgers written by other tools.
func LoadTriplets(path string) ([]model.Triplet, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read triplet ledger '%s': %w", path, err)
	}

	var triplets []model.Triplet
	if err := json.Unmarshal(data, &triplets); err != nil {
		return nil, fmt.Errorf("failed to parse triplet ledger '%s': %w", path, err)
	}

	for i := range triplets {
		if err := triplets[i].ResolveChunkID(); err != nil {
			return nil, fmt.Errorf("triplet %d: %w", i, err)
		}
	}
	return triplets, nil
}

// SaveTriplets checkpoints the ledger atomically: write a sibling temp file,
// then rename over the target, so a crash mid-write never truncates the
// committed ledger.
func SaveTriplets(path string, triplets []model.Triplet) error {
	if triplets == nil {
		triplets = []model.Triplet{}
	}

	data, err := json.MarshalIndent(triplets, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal triplet ledger: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create ledger directory '%s': %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp ledger file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp ledger file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp ledger file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace triplet ledger '%s': %w", path, err)
	}
	return nil
}
