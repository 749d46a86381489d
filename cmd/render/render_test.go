package render

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alan/pr-describer/cmd"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshot = `commits:
  - "feat: add login"
  - "fix: null check"
  - "Merge branch 'main' into feature"
  - "update readme"
pr:
  approvals: 1
  description: |
    <!--- user additions start --->
    Please review the session handling.
    <!--- user additions end --->
    stale generated text
files:
  - path: src/login.js
    diff: "+export const login = () => true;"
    content: "export const login = () => true;"
`

const expectedSnapshotOutput = `<!--- user additions start --->
Please review the session handling.
<!--- user additions end --->


**PR description below is managed by pr-describer**
<!--- Auto-generated by pr-describer--->
> #### Commits Summary
> This pull request includes the following changes:
> - **feat:**
>     - add login
> - **fix:**
>     - null check
> - **other:**
>     - update readme
> #### Checklist
> - [ ] Add tests
> - [X] Code Reviewed and approved
<!--- Auto-generated by pr-describer end --->
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func noConfig(_ string) (*cmd.Config, error) {
	return nil, errors.New("failed to read config file")
}

func execute(t *testing.T, loadConfig func(string) (*cmd.Config, error), args ...string) (string, error) {
	t.Helper()
	configFile := "missing.yaml"
	cobraCmd := NewRenderCmd(&configFile, loadConfig)
	var out bytes.Buffer
	cobraCmd.SetOut(&out)
	cobraCmd.SetErr(&bytes.Buffer{})
	cobraCmd.SetArgs(args)
	err := cobraCmd.Execute()
	return out.String(), err
}

func TestRender_Snapshot(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pr.yaml", snapshot)

	got, err := execute(t, noConfig, "--input", path)
	require.NoError(t, err)
	assert.Equal(t, expectedSnapshotOutput, got)
}

func TestRender_SnapshotOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pr.yaml", snapshot)
	body := writeFile(t, dir, "body.md", "Replacement notes")

	got, err := execute(t, noConfig, "--input", path, "--approvals", "0", "--description-file", body, "--tool-name", "gitStream")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "<!--- user additions start --->\nReplacement notes\n<!--- user additions end --->\n"))
	assert.Contains(t, got, "> - [ ] Code Reviewed and approved\n")
	assert.Contains(t, got, "**PR description below is managed by gitStream**\n")
}

func TestRender_ConfigOptions(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pr.yaml", snapshot)
	loadConfig := func(_ string) (*cmd.Config, error) {
		return &cmd.Config{Org: "acme", Repo: "widgets", ToolName: "gitStream", Indent: 4}, nil
	}

	got, err := execute(t, loadConfig, "--input", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	assert.Equal(t, "<!--- user additions start --->", lines[0])
	for _, line := range lines[1:] {
		if line != "" {
			assert.True(t, strings.HasPrefix(line, "    "), "line %q is not indented", line)
		}
	}
	assert.Contains(t, got, "    **PR description below is managed by gitStream**\n")
}

func TestRender_GitRange(t *testing.T) {
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	worktree, err := repo.Worktree()
	require.NoError(t, err)

	commit := func(message, path, content string) string {
		require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(dir, path)), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, path), []byte(content), 0644))
		_, err := worktree.Add(path)
		require.NoError(t, err)
		hash, err := worktree.Commit(message, &gogit.CommitOptions{
			Author: &object.Signature{Name: "Test Author", Email: "author@example.com", When: time.Now()},
		})
		require.NoError(t, err)
		return hash.String()
	}

	base := commit("chore: initial import", "README.md", "hello\n")
	commit("docs: usage notes", "README.md", "hello\nusage\n")
	head := commit("test: cover parser", "parser/parser_test.go", "package parser\n")

	body := writeFile(t, t.TempDir(), "body.md", "Local branch notes")

	got, err := execute(t, noConfig,
		"--base", base, "--head", head, "--repo-path", dir,
		"--description-file", body, "--approvals", "2")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "<!--- user additions start --->\nLocal branch notes\n<!--- user additions end --->\n"))
	assert.Contains(t, got, "> - **docs:**\n>     - usage notes\n> - **test:**\n>     - cover parser\n")
	assert.NotContains(t, got, "initial import")
	assert.Contains(t, got, "> - [X] Add tests\n")
	assert.Contains(t, got, "> - [X] Code Reviewed and approved\n")
}

func TestRender_Errors(t *testing.T) {
	dir := t.TempDir()
	snapshotPath := writeFile(t, dir, "pr.yaml", snapshot)
	negative := writeFile(t, dir, "negative.yaml", "pr:\n  approvals: -1\n")

	tests := []struct {
		name       string
		args       []string
		wantErrMsg string
	}{
		{
			name:       "no input",
			args:       []string{},
			wantErrMsg: "either --input or both --base and --head are required",
		},
		{
			name:       "input with base",
			args:       []string{"--input", snapshotPath, "--base", "main"},
			wantErrMsg: "none of the others can be",
		},
		{
			name:       "base without head",
			args:       []string{"--base", "main"},
			wantErrMsg: "must all be set",
		},
		{
			name:       "missing snapshot",
			args:       []string{"--input", filepath.Join(dir, "absent.yaml")},
			wantErrMsg: "failed to read snapshot file",
		},
		{
			name:       "missing description file",
			args:       []string{"--input", snapshotPath, "--description-file", filepath.Join(dir, "absent.md")},
			wantErrMsg: "failed to read description file",
		},
		{
			name:       "negative approvals",
			args:       []string{"--input", negative},
			wantErrMsg: "failed to render description",
		},
		{
			name:       "not a repository",
			args:       []string{"--base", "a", "--head", "b", "--repo-path", dir},
			wantErrMsg: "failed to open repository",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, noConfig, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErrMsg)
		})
	}
}
