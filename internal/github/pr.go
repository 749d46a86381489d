package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v57/github"
)

// GetPR fetches details for a specific PR by number
func (c *Client) GetPR(ctx context.Context, number int) (*PR, error) {
	slog.Debug("GitHub API: Getting PR", "org", c.org, "repo", c.repo, "pr", number)
	pr, _, err := c.client.PullRequests.Get(ctx, c.org, c.repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch PR #%d: %w", number, err)
	}

	return &PR{
		Number:  pr.GetNumber(),
		Title:   pr.GetTitle(),
		URL:     pr.GetHTMLURL(),
		Body:    pr.GetBody(),
		HeadSHA: pr.GetHead().GetSHA(),
		State:   pr.GetState(),
	}, nil
}

// ListPRCommits fetches every commit of a PR in the order GitHub reports them (oldest first)
func (c *Client) ListPRCommits(ctx context.Context, number int) ([]Commit, error) {
	commits, err := paginatedList(func(page int) ([]*github.RepositoryCommit, *github.Response, error) {
		opts := &github.ListOptions{
			PerPage: 100,
			Page:    page,
		}
		slog.Debug("GitHub API: Listing PR commits", "org", c.org, "repo", c.repo, "pr", number, "page", page)
		return c.client.PullRequests.ListCommits(ctx, c.org, c.repo, number, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list commits for PR #%d: %w", number, err)
	}

	var allCommits []Commit
	for _, commit := range commits {
		allCommits = append(allCommits, Commit{
			SHA:     commit.GetSHA(),
			Message: commit.GetCommit().GetMessage(),
			Author:  commit.GetCommit().GetAuthor().GetName(),
		})
	}

	return allCommits, nil
}

// ListPRFiles fetches every file changed by a PR
func (c *Client) ListPRFiles(ctx context.Context, number int) ([]File, error) {
	files, err := paginatedList(func(page int) ([]*github.CommitFile, *github.Response, error) {
		opts := &github.ListOptions{
			PerPage: 100,
			Page:    page,
		}
		slog.Debug("GitHub API: Listing PR files", "org", c.org, "repo", c.repo, "pr", number, "page", page)
		return c.client.PullRequests.ListFiles(ctx, c.org, c.repo, number, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files for PR #%d: %w", number, err)
	}

	var allFiles []File
	for _, file := range files {
		allFiles = append(allFiles, File{
			Filename: file.GetFilename(),
			Status:   file.GetStatus(),
			Patch:    file.GetPatch(),
		})
	}

	return allFiles, nil
}

// CountApprovals returns how many reviewers currently approve the PR.
// Only a reviewer's latest approving, change-requesting or dismissed review counts.
func (c *Client) CountApprovals(ctx context.Context, number int) (int, error) {
	reviews, err := paginatedList(func(page int) ([]*github.PullRequestReview, *github.Response, error) {
		opts := &github.ListOptions{
			PerPage: 100,
			Page:    page,
		}
		slog.Debug("GitHub API: Listing PR reviews", "org", c.org, "repo", c.repo, "pr", number, "page", page)
		return c.client.PullRequests.ListReviews(ctx, c.org, c.repo, number, opts)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list reviews for PR #%d: %w", number, err)
	}

	return countApprovals(reviews), nil
}

// countApprovals reduces chronologically ordered reviews to the number of approving reviewers
func countApprovals(reviews []*github.PullRequestReview) int {
	latest := make(map[string]string)
	for _, review := range reviews {
		switch review.GetState() {
		case ReviewStateApproved, ReviewStateChangesRequested, ReviewStateDismissed:
			latest[review.GetUser().GetLogin()] = review.GetState()
		}
	}

	approvals := 0
	for _, state := range latest {
		if state == ReviewStateApproved {
			approvals++
		}
	}
	return approvals
}

// GetFileContent returns the content of a file at the given ref.
// Directories and symlinks yield an empty string.
func (c *Client) GetFileContent(ctx context.Context, path, ref string) (string, error) {
	slog.Debug("GitHub API: Getting file content", "org", c.org, "repo", c.repo, "path", path, "ref", ref)
	fileContent, _, _, err := c.client.Repositories.GetContents(ctx, c.org, c.repo, path, &github.RepositoryContentGetOptions{
		Ref: ref,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get content of %s at %s: %w", path, ref, err)
	}
	if fileContent == nil {
		return "", nil
	}

	// Files over 1 MB come back without inline content
	if fileContent.GetEncoding() == "none" {
		return c.getBlobContent(ctx, path, fileContent.GetSHA())
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode content of %s: %w", path, err)
	}
	return content, nil
}

// getBlobContent fetches a file through the raw blob endpoint, which serves files up to 100 MB
func (c *Client) getBlobContent(ctx context.Context, path, sha string) (string, error) {
	if sha == "" {
		slog.Warn("No blob SHA for large file, skipping content", "path", path)
		return "", nil
	}

	slog.Debug("GitHub API: Getting raw blob", "org", c.org, "repo", c.repo, "path", path, "sha", sha)
	raw, _, err := c.client.Git.GetBlobRaw(ctx, c.org, c.repo, sha)
	if err != nil {
		return "", fmt.Errorf("failed to get blob of %s: %w", path, err)
	}
	return string(raw), nil
}

// UpdatePRBody replaces the description of a PR
func (c *Client) UpdatePRBody(ctx context.Context, number int, body string) error {
	slog.Debug("GitHub API: Updating PR body", "org", c.org, "repo", c.repo, "pr", number)
	_, _, err := c.client.PullRequests.Edit(ctx, c.org, c.repo, number, &github.PullRequest{
		Body: github.String(body),
	})
	if err != nil {
		return fmt.Errorf("failed to update PR #%d: %w", number, err)
	}
	return nil
}
