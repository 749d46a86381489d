// Package render implements the render command, which builds a description offline from a snapshot or a local git range.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alan/pr-describer/cmd"
	"github.com/alan/pr-describer/internal/commands"
	"github.com/alan/pr-describer/internal/description"
	"github.com/alan/pr-describer/internal/source"
	"github.com/spf13/cobra"
)

// command renders one description without talking to GitHub
type command struct {
	Input           string
	Base            string
	Head            string
	RepoPath        string
	DescriptionFile string
	Approvals       int
	ToolName        string

	approvalsSet bool
	config       *cmd.Config
	out          io.Writer
}

// NewRenderCmd creates the render command
func NewRenderCmd(configFile *string, loadConfig func(string) (*cmd.Config, error)) *cobra.Command {
	rc := &command{}

	builder := &commands.CommandBuilder{
		Use:   "render",
		Short: "Render a description from a snapshot file or a local git range",
		Long: `Render builds the managed description without calling the GitHub API.

The input is either a YAML snapshot (as written by 'describe --snapshot-dir')
or the commits and changes between two revisions of a local repository.
For a git range the current PR body is read from --description-file and the
approval count from --approvals.

Tool name and indent come from the configuration file when it exists.`,
		Args: cobra.NoArgs,
		ExampleUsage: []string{
			"pr-describer render --input testdata/pr-123.yaml",
			"pr-describer render --base origin/main --head HEAD --approvals 1",
			"pr-describer render --base v1.2.0 --head feature --repo-path ../service --description-file body.md",
		},
	}

	cobraCmd := builder.BuildCommand(func(cobraCmd *cobra.Command, _ []string) error {
		rc.approvalsSet = cobraCmd.Flags().Changed("approvals")
		rc.config = loadOptionalConfig(*configFile, loadConfig)
		rc.out = cobraCmd.OutOrStdout()

		ctx := cobraCmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return rc.Run(ctx)
	})

	cobraCmd.Flags().StringVarP(&rc.Input, "input", "i", "", "YAML snapshot to render")
	cobraCmd.Flags().StringVar(&rc.Base, "base", "", "Base revision of the local range")
	cobraCmd.Flags().StringVar(&rc.Head, "head", "", "Head revision of the local range")
	cobraCmd.Flags().StringVar(&rc.RepoPath, "repo-path", ".", "Path inside the local repository")
	cobraCmd.Flags().StringVarP(&rc.DescriptionFile, "description-file", "d", "", "File holding the current PR description")
	cobraCmd.Flags().IntVarP(&rc.Approvals, "approvals", "a", 0, "Number of approving reviews")
	cobraCmd.Flags().StringVarP(&rc.ToolName, "tool-name", "t", "", "Tool name shown in the description header (overrides the config file)")
	cobraCmd.MarkFlagsMutuallyExclusive("input", "base")
	cobraCmd.MarkFlagsMutuallyExclusive("input", "head")
	cobraCmd.MarkFlagsRequiredTogether("base", "head")

	return cobraCmd
}

// loadOptionalConfig returns the config file contents, or an empty config when there is none
func loadOptionalConfig(configFile string, loadConfig func(string) (*cmd.Config, error)) *cmd.Config {
	config, err := loadConfig(configFile)
	if err != nil {
		slog.Debug("Rendering without config file", "file", configFile, "error", err)
		return &cmd.Config{}
	}
	return config
}

// Run collects the input and writes the rendered description
func (rc *command) Run(ctx context.Context) error {
	src, err := rc.source()
	if err != nil {
		return err
	}

	input, err := src.Collect(ctx)
	if err != nil {
		return err
	}

	if err := rc.applyOverrides(input); err != nil {
		return err
	}

	opts := rc.config.RenderOptions()
	if rc.ToolName != "" {
		opts.ToolName = rc.ToolName
	}

	rendered, err := description.Assemble(input, opts)
	if err != nil {
		return fmt.Errorf("failed to render description: %w", err)
	}

	fmt.Fprint(rc.out, rendered)
	return nil
}

// source picks the snapshot or git range collector from the flags
func (rc *command) source() (source.Source, error) {
	switch {
	case rc.Input != "":
		return source.FileSource{Path: rc.Input}, nil
	case rc.Base != "" && rc.Head != "":
		return source.GitSource{RepoPath: rc.RepoPath, Base: rc.Base, Head: rc.Head}, nil
	default:
		return nil, errors.New("either --input or both --base and --head are required")
	}
}

// applyOverrides replaces the PR body and approvals with explicitly given values
func (rc *command) applyOverrides(input *description.Input) error {
	if rc.DescriptionFile != "" {
		body, err := os.ReadFile(rc.DescriptionFile) //nolint:gosec // Path is from command-line flag
		if err != nil {
			return fmt.Errorf("failed to read description file: %w", err)
		}
		input.PR.Description = string(body)
	}
	if rc.approvalsSet {
		input.PR.Approvals = rc.Approvals
	}
	return nil
}
