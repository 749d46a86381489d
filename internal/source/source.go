// Package source collects the commits, PR metadata and changed files a description is built from.
package source

import (
	"context"
	"fmt"
	"os"

	"github.com/alan/pr-describer/internal/description"
	"gopkg.in/yaml.v3"
)

// Source collects the input for one pull request description
type Source interface {
	Collect(ctx context.Context) (*description.Input, error)
}

// FileSource reads a YAML snapshot of a pull request
type FileSource struct {
	Path string
}

// Collect loads and parses the snapshot file
func (s FileSource) Collect(_ context.Context) (*description.Input, error) {
	data, err := os.ReadFile(s.Path) //nolint:gosec // Snapshot path is from command-line flag
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var input description.Input
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot file: %w", err)
	}

	return &input, nil
}

// SaveSnapshot writes input as a YAML snapshot that FileSource can read back
func SaveSnapshot(path string, input *description.Input) error {
	data, err := yaml.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	return nil
}
