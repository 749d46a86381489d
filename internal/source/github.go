package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alan/pr-describer/internal/description"
	"github.com/alan/pr-describer/internal/github"
)

// PRClient is the subset of the GitHub client a GitHubSource needs
type PRClient interface {
	GetPR(ctx context.Context, number int) (*github.PR, error)
	ListPRCommits(ctx context.Context, number int) ([]github.Commit, error)
	ListPRFiles(ctx context.Context, number int) ([]github.File, error)
	CountApprovals(ctx context.Context, number int) (int, error)
	GetFileContent(ctx context.Context, path, ref string) (string, error)
}

// GitHubSource collects a pull request from the GitHub API
type GitHubSource struct {
	Client PRClient
	Number int
}

// Collect fetches the PR body, approvals, commit messages and changed files
func (s GitHubSource) Collect(ctx context.Context) (*description.Input, error) {
	pr, err := s.Client.GetPR(ctx, s.Number)
	if err != nil {
		return nil, err
	}

	approvals, err := s.Client.CountApprovals(ctx, s.Number)
	if err != nil {
		return nil, err
	}

	commits, err := s.Client.ListPRCommits(ctx, s.Number)
	if err != nil {
		return nil, err
	}

	files, err := s.collectFiles(ctx, pr.HeadSHA)
	if err != nil {
		return nil, err
	}

	messages := make([]string, 0, len(commits))
	for _, commit := range commits {
		messages = append(messages, commit.Message)
	}

	slog.Info("Collected PR", "pr", s.Number, "commits", len(messages), "files", len(files), "approvals", approvals)

	return &description.Input{
		Commits: messages,
		PR: description.PullRequest{
			Approvals:   approvals,
			Description: pr.Body,
		},
		Files: files,
	}, nil
}

// collectFiles pairs each changed file's patch with its content at the head commit
func (s GitHubSource) collectFiles(ctx context.Context, headSHA string) ([]description.ChangedFile, error) {
	files, err := s.Client.ListPRFiles(ctx, s.Number)
	if err != nil {
		return nil, err
	}

	changed := make([]description.ChangedFile, 0, len(files))
	for _, file := range files {
		content := ""
		if file.Status != "removed" {
			content, err = s.Client.GetFileContent(ctx, file.Filename, headSHA)
			if err != nil {
				return nil, fmt.Errorf("failed to collect %s: %w", file.Filename, err)
			}
		}

		changed = append(changed, description.ChangedFile{
			Path:    file.Filename,
			Diff:    file.Patch,
			Content: content,
		})
	}

	return changed, nil
}
