package source

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/alan/pr-describer/internal/description"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GitSource collects the commits and changes of a local base..head range.
// A local repository has no reviews or PR body, so PR is passed through as given.
type GitSource struct {
	RepoPath string
	Base     string
	Head     string
	PR       description.PullRequest
}

// Collect reads commits reachable from Head but not from Base, oldest first,
// and the files changed between the two
func (s GitSource) Collect(ctx context.Context) (*description.Input, error) {
	repo, err := gogit.PlainOpenWithOptions(s.RepoPath, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	base, err := resolveCommit(repo, s.Base)
	if err != nil {
		return nil, err
	}
	head, err := resolveCommit(repo, s.Head)
	if err != nil {
		return nil, err
	}

	messages, err := commitMessagesBetween(ctx, base, head)
	if err != nil {
		return nil, err
	}

	files, err := changedFilesBetween(ctx, base, head)
	if err != nil {
		return nil, err
	}

	slog.Info("Collected local range", "base", s.Base, "head", s.Head, "commits", len(messages), "files", len(files))

	return &description.Input{
		Commits: messages,
		PR:      s.PR,
		Files:   files,
	}, nil
}

func resolveCommit(repo *gogit.Repository, revision string) (*object.Commit, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", revision, err)
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("failed to load commit %s: %w", revision, err)
	}
	return commit, nil
}

// commitMessagesBetween is the equivalent of git log base..head, returned oldest first
func commitMessagesBetween(ctx context.Context, base, head *object.Commit) ([]string, error) {
	reachableFromBase := make(map[plumbing.Hash]bool)
	err := object.NewCommitPreorderIter(base, nil, nil).ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		reachableFromBase[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk base history: %w", err)
	}

	var messages []string
	err = object.NewCommitPreorderIter(head, reachableFromBase, nil).ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		messages = append(messages, strings.TrimRight(c.Message, "\n"))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk head history: %w", err)
	}

	slices.Reverse(messages)
	return messages, nil
}

// changedFilesBetween builds a changed-file record for every file in the base..head patch
func changedFilesBetween(ctx context.Context, base, head *object.Commit) ([]description.ChangedFile, error) {
	patch, err := base.PatchContext(ctx, head)
	if err != nil {
		return nil, fmt.Errorf("failed to diff %s..%s: %w", base.Hash, head.Hash, err)
	}

	var files []description.ChangedFile
	for _, filePatch := range patch.FilePatches() {
		from, to := filePatch.Files()

		changed := description.ChangedFile{}
		if to != nil {
			changed.Path = to.Path()
		} else if from != nil {
			changed.Path = from.Path()
		}

		if !filePatch.IsBinary() {
			changed.Diff = renderChunks(filePatch.Chunks())

			if to != nil {
				content, err := fileContent(head, to.Path())
				if err != nil {
					return nil, err
				}
				changed.Content = content
			}
		}

		files = append(files, changed)
	}

	return files, nil
}

// renderChunks keeps the added and removed lines of a file patch with +/- prefixes
func renderChunks(chunks []fdiff.Chunk) string {
	var out strings.Builder
	for _, chunk := range chunks {
		var prefix string
		switch chunk.Type() {
		case fdiff.Add:
			prefix = "+"
		case fdiff.Delete:
			prefix = "-"
		default:
			continue
		}

		for _, line := range strings.Split(strings.TrimSuffix(chunk.Content(), "\n"), "\n") {
			out.WriteString(prefix + line + "\n")
		}
	}
	return out.String()
}

func fileContent(commit *object.Commit, path string) (string, error) {
	file, err := commit.File(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s at %s: %w", path, commit.Hash, err)
	}

	content, err := file.Contents()
	if err != nil {
		return "", fmt.Errorf("failed to read %s at %s: %w", path, commit.Hash, err)
	}
	return content, nil
}
