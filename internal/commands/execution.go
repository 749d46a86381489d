package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// PROperationFunc operates on a single pull request
type PROperationFunc func(ctx context.Context, prNumber int) error

// ExecuteResult encapsulates the result of an operation run over several PRs
type ExecuteResult struct {
	Processed     []int
	Errors        []error
	OperationName string
}

// HandleExecuteResult reports the outcome and returns an error when any PR failed
func HandleExecuteResult(out io.Writer, result *ExecuteResult) error {
	if len(result.Processed) > 0 {
		DisplaySuccessMessage(out, result.OperationName, result.Processed)
	}
	if len(result.Errors) == 0 {
		return nil
	}
	if len(result.Processed) == 0 {
		return fmt.Errorf("no PRs %s: %w", result.OperationName, errors.Join(result.Errors...))
	}
	return fmt.Errorf("%d of %d PR(s) failed: %w",
		len(result.Errors), len(result.Errors)+len(result.Processed), errors.Join(result.Errors...))
}

// ExecuteOnPRs runs operation for every PR number, continuing past failures
func ExecuteOnPRs(ctx context.Context, out io.Writer, prNumbers []int, operationName string, operation PROperationFunc) error {
	result := &ExecuteResult{OperationName: operationName}

	for _, prNumber := range prNumbers {
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("PR #%d: %w", prNumber, err))
			continue
		}
		if err := operation(ctx, prNumber); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("PR #%d: %w", prNumber, err))
			continue
		}
		result.Processed = append(result.Processed, prNumber)
	}

	return HandleExecuteResult(out, result)
}

// CommandBuilder helps create standardized commands
type CommandBuilder struct {
	Use          string
	Short        string
	Long         string
	Args         cobra.PositionalArgs
	ExampleUsage []string
}

// BuildCommand creates a cobra command with common patterns
func (cb *CommandBuilder) BuildCommand(runFunc func(cobraCmd *cobra.Command, args []string) error) *cobra.Command {
	cobraCmd := &cobra.Command{
		Use:          cb.Use,
		Short:        cb.Short,
		Long:         cb.Long,
		Args:         cb.Args,
		SilenceUsage: true,
		RunE:         runFunc,
	}

	if len(cb.ExampleUsage) > 0 {
		cobraCmd.Example = "  " + strings.Join(cb.ExampleUsage, "\n  ")
	}

	return cobraCmd
}
