package describe

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alan/pr-describer/cmd"
	"github.com/alan/pr-describer/internal/description"
	"github.com/alan/pr-describer/internal/github"
	"github.com/alan/pr-describer/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePR struct {
	body      string
	commits   []string
	files     []github.File
	contents  map[string]string
	approvals int
}

type fakeService struct {
	prs       map[int]*fakePR
	updates   map[int]string
	updateErr error
}

func newFakeService(prs map[int]*fakePR) *fakeService {
	return &fakeService{prs: prs, updates: map[int]string{}}
}

func (f *fakeService) lookup(number int) (*fakePR, error) {
	pr, ok := f.prs[number]
	if !ok {
		return nil, errors.New("not found")
	}
	return pr, nil
}

func (f *fakeService) GetPR(_ context.Context, number int) (*github.PR, error) {
	pr, err := f.lookup(number)
	if err != nil {
		return nil, err
	}
	return &github.PR{Number: number, Body: pr.body, HeadSHA: "head"}, nil
}

func (f *fakeService) ListPRCommits(_ context.Context, number int) ([]github.Commit, error) {
	pr, err := f.lookup(number)
	if err != nil {
		return nil, err
	}
	commits := make([]github.Commit, len(pr.commits))
	for i, message := range pr.commits {
		commits[i] = github.Commit{Message: message}
	}
	return commits, nil
}

func (f *fakeService) ListPRFiles(_ context.Context, number int) ([]github.File, error) {
	pr, err := f.lookup(number)
	if err != nil {
		return nil, err
	}
	return pr.files, nil
}

func (f *fakeService) CountApprovals(_ context.Context, number int) (int, error) {
	pr, err := f.lookup(number)
	if err != nil {
		return 0, err
	}
	return pr.approvals, nil
}

func (f *fakeService) GetFileContent(_ context.Context, path, _ string) (string, error) {
	for _, pr := range f.prs {
		if content, ok := pr.contents[path]; ok {
			return content, nil
		}
	}
	return "", nil
}

func (f *fakeService) UpdatePRBody(_ context.Context, number int, body string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates[number] = body
	return nil
}

func newTestCommand(service *fakeService, input string, prNumbers ...int) (*command, *bytes.Buffer, *bytes.Buffer) {
	var out, status bytes.Buffer
	dc := &command{
		PRNumbers: prNumbers,
		client:    service,
		in:        bufio.NewReader(strings.NewReader(input)),
		out:       &out,
		status:    &status,
	}
	dc.Config = &cmd.Config{Org: "acme", Repo: "widgets"}
	return dc, &out, &status
}

func renderFor(t *testing.T, pr *fakePR) string {
	t.Helper()
	rendered, err := description.Assemble(&description.Input{
		Commits: pr.commits,
		PR:      description.PullRequest{Approvals: pr.approvals, Description: pr.body},
	}, description.Options{})
	require.NoError(t, err)
	return rendered
}

func TestNewDescribeCmd(t *testing.T) {
	configFile := "test.yaml"
	cobraCmd := NewDescribeCmd(&configFile, func(_ string) (*cmd.Config, error) {
		return &cmd.Config{}, nil
	})

	assert.Equal(t, "describe", cobraCmd.Name())
	assert.NotEmpty(t, cobraCmd.Short)
	assert.NotEmpty(t, cobraCmd.Example)
	require.Error(t, cobraCmd.Args(cobraCmd, []string{}))
	require.NoError(t, cobraCmd.Args(cobraCmd, []string{"1", "2"}))

	for _, name := range []string{"update", "yes", "snapshot-dir"} {
		assert.NotNil(t, cobraCmd.Flags().Lookup(name), "missing %s flag", name)
	}
}

func TestDescribeCmd_RunE_Errors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		loadErr    error
		token      string
		wantErrMsg string
	}{
		{
			name:       "invalid PR number",
			args:       []string{"abc"},
			token:      "test-token",
			wantErrMsg: `invalid PR number "abc"`,
		},
		{
			name:       "config load error",
			args:       []string{"1"},
			loadErr:    errors.New("config load error"),
			token:      "test-token",
			wantErrMsg: "config load error",
		},
		{
			name:       "missing token",
			args:       []string{"1"},
			wantErrMsg: "GITHUB_TOKEN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GITHUB_TOKEN", tt.token)

			configFile := "test.yaml"
			cobraCmd := NewDescribeCmd(&configFile, func(_ string) (*cmd.Config, error) {
				if tt.loadErr != nil {
					return nil, tt.loadErr
				}
				return &cmd.Config{Org: "acme", Repo: "widgets"}, nil
			})

			err := cobraCmd.RunE(cobraCmd, tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErrMsg)
		})
	}
}

func TestCommand_Run_Print(t *testing.T) {
	pr := &fakePR{
		body:    "Reviewers: focus on the login flow.",
		commits: []string{"feat: add login", "test: cover login"},
		files: []github.File{
			{Filename: "src/login.test.js", Status: "added", Patch: "+expect(ok)"},
		},
		contents:  map[string]string{"src/login.test.js": "expect(ok)"},
		approvals: 1,
	}
	service := newFakeService(map[int]*fakePR{7: pr})
	dc, out, status := newTestCommand(service, "", 7)

	require.NoError(t, dc.Run(context.Background()))

	got := out.String()
	assert.True(t, strings.HasPrefix(got, description.UserAdditionsStart+"\nReviewers: focus on the login flow.\n"+description.UserAdditionsEnd+"\n"))
	assert.Contains(t, got, "> - **feat:**\n>     - add login\n")
	assert.Contains(t, got, "> - **test:**\n>     - cover login\n")
	assert.Contains(t, got, "> - [X] Add tests\n")
	assert.Contains(t, got, "> - [X] Code Reviewed and approved\n")
	assert.NotContains(t, got, "==> PR")
	assert.Equal(t, "✅ Successfully described PR #7\n", status.String())
	assert.Empty(t, service.updates)
}

func TestCommand_Run_MultiplePRs(t *testing.T) {
	service := newFakeService(map[int]*fakePR{
		1: {commits: []string{"fix: first"}},
		2: {commits: []string{"docs: second"}},
	})
	dc, out, status := newTestCommand(service, "", 1, 2, 3)
	dc.Config.ToolName = "gitStream"

	err := dc.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PR #3: not found")

	got := out.String()
	assert.Contains(t, got, "==> PR #1 <==\n")
	assert.Contains(t, got, "==> PR #2 <==\n")
	assert.Contains(t, got, ">     - first\n")
	assert.Contains(t, got, ">     - second\n")
	assert.Contains(t, got, "**PR description below is managed by gitStream**")
	assert.Less(t, strings.Index(got, "PR #1"), strings.Index(got, "PR #2"))
	assert.Contains(t, status.String(), "#1, #2")
}

func TestCommand_Run_Update(t *testing.T) {
	upToDate := &fakePR{commits: []string{"chore: bump deps"}}
	upToDate.body = renderFor(t, upToDate)

	tests := []struct {
		name        string
		pr          *fakePR
		yes         bool
		input       string
		wantUpdated bool
		wantOutput  []string
	}{
		{
			name:        "confirmed",
			pr:          &fakePR{body: "old body", commits: []string{"fix: crash"}},
			input:       "y\n",
			wantUpdated: true,
			wantOutput:  []string{"PR #5 description diff:", "+ >     - crash", "(y/N): ", "Description updated on PR #5"},
		},
		{
			name:        "declined",
			pr:          &fakePR{body: "old body", commits: []string{"fix: crash"}},
			input:       "n\n",
			wantUpdated: false,
			wantOutput:  []string{"Update cancelled."},
		},
		{
			name:        "yes flag skips prompt",
			pr:          &fakePR{body: "", commits: []string{"feat: new"}},
			yes:         true,
			wantUpdated: true,
			wantOutput:  []string{"Description updated on PR #5"},
		},
		{
			name:        "no changes",
			pr:          upToDate,
			yes:         true,
			wantUpdated: false,
			wantOutput:  []string{"No changes to PR #5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newFakeService(map[int]*fakePR{5: tt.pr})
			dc, out, _ := newTestCommand(service, tt.input, 5)
			dc.Update = true
			dc.Yes = tt.yes

			require.NoError(t, dc.Run(context.Background()))

			body, updated := service.updates[5]
			assert.Equal(t, tt.wantUpdated, updated)
			if updated {
				assert.Equal(t, renderFor(t, tt.pr), body)
			}
			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}
			if tt.yes {
				assert.NotContains(t, out.String(), "(y/N)")
			}
		})
	}
}

func TestCommand_Run_UpdateSequentialPrompts(t *testing.T) {
	service := newFakeService(map[int]*fakePR{
		1: {body: "one", commits: []string{"fix: a"}},
		2: {body: "two", commits: []string{"fix: b"}},
	})
	dc, _, _ := newTestCommand(service, "n\ny\n", 1, 2)
	dc.Update = true

	require.NoError(t, dc.Run(context.Background()))

	assert.NotContains(t, service.updates, 1)
	assert.Contains(t, service.updates, 2)
}

func TestCommand_Run_UpdateError(t *testing.T) {
	service := newFakeService(map[int]*fakePR{5: {body: "old", commits: []string{"fix: crash"}}})
	service.updateErr = errors.New("forbidden")
	dc, _, _ := newTestCommand(service, "", 5)
	dc.Update = true
	dc.Yes = true

	err := dc.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PR #5: forbidden")
}

func TestCommand_Run_SnapshotDir(t *testing.T) {
	pr := &fakePR{body: "notes", commits: []string{"perf: faster"}, approvals: 2}
	service := newFakeService(map[int]*fakePR{9: pr})
	dc, out, _ := newTestCommand(service, "", 9)
	dc.SnapshotDir = filepath.Join(t.TempDir(), "snapshots")

	require.NoError(t, dc.Run(context.Background()))

	input, err := source.FileSource{Path: filepath.Join(dc.SnapshotDir, "pr-9.yaml")}.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"perf: faster"}, input.Commits)
	assert.Equal(t, description.PullRequest{Approvals: 2, Description: "notes"}, input.PR)

	rendered, err := description.Assemble(input, description.Options{})
	require.NoError(t, err)
	assert.Equal(t, out.String(), rendered)
}
