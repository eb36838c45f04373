package result

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteBatch persists the batch as an indented JSON array.
func WriteBatch(path string, batch Batch) error {
	if batch == nil {
		batch = Batch{}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func ReadBatch(path string) (Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var batch Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	for i, rec := range batch {
		if rec == nil {
			return nil, fmt.Errorf("parsing report: record %d is null", i)
		}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("parsing report: %w", err)
		}
	}
	return batch, nil
}
