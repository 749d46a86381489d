// Package cmd defines core data structures for pr-describer configuration.
package cmd

import "github.com/alan/pr-describer/internal/description"

// DefaultConfigFile is used when no --config flag is given
const DefaultConfigFile = ".pr-describer.yaml"

// Config represents the structure of .pr-describer.yaml
type Config struct {
	Org      string `yaml:"org"`
	Repo     string `yaml:"repo"`
	ToolName string `yaml:"tool_name,omitempty"` // Name shown in the managed-content markers
	Indent   int    `yaml:"indent,omitempty"`    // Continuation indent for embedding in YAML block scalars
}

// RenderOptions converts the config into description rendering options
func (c *Config) RenderOptions() description.Options {
	toolName := c.ToolName
	if toolName == "" {
		toolName = description.DefaultToolName
	}
	return description.Options{
		ToolName: toolName,
		Indent:   c.Indent,
	}
}
