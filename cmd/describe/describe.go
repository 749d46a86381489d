// Package describe implements the describe command, which renders managed descriptions for GitHub pull requests.
package describe

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alan/pr-describer/cmd"
	"github.com/alan/pr-describer/internal/commands"
	"github.com/alan/pr-describer/internal/description"
	"github.com/alan/pr-describer/internal/source"
	"github.com/spf13/cobra"
)

// prService is the GitHub surface the describe command needs
type prService interface {
	source.PRClient
	UpdatePRBody(ctx context.Context, number int, body string) error
}

// command renders and optionally publishes PR descriptions
type command struct {
	commands.BaseCommand
	PRNumbers   []int
	Update      bool
	Yes         bool
	SnapshotDir string

	client prService
	in     *bufio.Reader
	out    io.Writer
	status io.Writer
}

// NewDescribeCmd creates the describe command
func NewDescribeCmd(configFile *string, loadConfig func(string) (*cmd.Config, error)) *cobra.Command {
	dc := &command{}

	builder := &commands.CommandBuilder{
		Use:   "describe <pr-number>...",
		Short: "Generate the managed description for one or more pull requests",
		Long: `Describe collects the commits, changed files, approvals and current body of
each pull request and renders the managed description: a commit summary
grouped by conventional-commit type and a checklist. Text the author placed
between the user-additions markers of the current body is kept.

The description is printed unless --update is given, in which case the
pull request body is replaced after showing a diff and asking for
confirmation.`,
		Args: cobra.MinimumNArgs(1),
		ExampleUsage: []string{
			"pr-describer describe 123",
			"pr-describer describe 123 124 --update",
			"pr-describer describe 123 --update --yes",
			"pr-describer describe 123 --snapshot-dir testdata",
		},
	}

	cobraCmd := builder.BuildCommand(func(cobraCmd *cobra.Command, args []string) error {
		prNumbers, err := commands.ParsePRNumbers(args)
		if err != nil {
			return err
		}
		dc.PRNumbers = prNumbers

		dc.ConfigFile = configFile
		dc.LoadConfig = loadConfig
		ctx := cobraCmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if err := dc.Init(ctx); err != nil {
			return err
		}

		dc.client = dc.GitHubClient
		dc.in = bufio.NewReader(cobraCmd.InOrStdin())
		dc.out = cobraCmd.OutOrStdout()
		dc.status = cobraCmd.ErrOrStderr()

		return dc.Run(ctx)
	})

	cobraCmd.Flags().BoolVarP(&dc.Update, "update", "u", false, "Replace the pull request body with the generated description")
	cobraCmd.Flags().BoolVarP(&dc.Yes, "yes", "y", false, "Skip the confirmation prompt when updating")
	cobraCmd.Flags().StringVar(&dc.SnapshotDir, "snapshot-dir", "", "Write the collected input of each PR as pr-<number>.yaml to this directory")

	return cobraCmd
}

// Run renders every requested PR through one shared describer
func (dc *command) Run(ctx context.Context) error {
	describer := description.NewDescriber(description.NewCache(), dc.Config.RenderOptions())

	action := "described"
	if dc.Update {
		action = "processed"
	}

	return commands.ExecuteOnPRs(ctx, dc.status, dc.PRNumbers, action, func(ctx context.Context, prNumber int) error {
		return dc.describePR(ctx, describer, prNumber)
	})
}

// describePR collects, renders and prints or publishes a single PR
func (dc *command) describePR(ctx context.Context, describer *description.Describer, prNumber int) error {
	input, err := source.GitHubSource{Client: dc.client, Number: prNumber}.Collect(ctx)
	if err != nil {
		return err
	}

	if dc.SnapshotDir != "" {
		if err := dc.saveSnapshot(prNumber, input); err != nil {
			return err
		}
	}

	key := description.PRKey{Owner: dc.Config.Org, Repo: dc.Config.Repo, Number: prNumber}
	rendered, err := describer.Describe(key, input)
	if err != nil {
		return err
	}

	if dc.Update {
		return dc.updateBody(ctx, prNumber, input.PR.Description, rendered)
	}

	if len(dc.PRNumbers) > 1 {
		fmt.Fprintf(dc.out, "==> PR #%d <==\n", prNumber)
	}
	fmt.Fprint(dc.out, rendered)
	return nil
}

func (dc *command) saveSnapshot(prNumber int, input *description.Input) error {
	if err := os.MkdirAll(dc.SnapshotDir, 0750); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	path := filepath.Join(dc.SnapshotDir, fmt.Sprintf("pr-%d.yaml", prNumber))
	if err := source.SaveSnapshot(path, input); err != nil {
		return err
	}

	slog.Info("Saved snapshot", "pr", prNumber, "path", path)
	return nil
}
