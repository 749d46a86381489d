package describe

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alan/pr-describer/internal/commands"
)

// updateBody replaces the PR body after showing a diff and asking for confirmation
func (dc *command) updateBody(ctx context.Context, prNumber int, current, rendered string) error {
	diff := commands.GenerateDiff(current, rendered)
	if diff == "" {
		fmt.Fprintf(dc.out, "No changes to PR #%d - description is up to date.\n", prNumber)
		return nil
	}

	fmt.Fprintf(dc.out, "\nPR #%d description diff:\n", prNumber)
	fmt.Fprintln(dc.out, diff)

	if !dc.Yes && !commands.ConfirmAction(dc.in, dc.out, fmt.Sprintf("Update the description of PR #%d?", prNumber)) {
		fmt.Fprintln(dc.out, "Update cancelled.")
		return nil
	}

	if err := dc.client.UpdatePRBody(ctx, prNumber, rendered); err != nil {
		return err
	}

	slog.Info("Updated PR description", "pr", prNumber)
	fmt.Fprintf(dc.out, "Description updated on PR #%d\n", prNumber)
	return nil
}
