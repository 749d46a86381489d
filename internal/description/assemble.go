package description

import (
	"fmt"
	"strings"
)

// DefaultToolName is printed in the managed-content markers when no name is configured
const DefaultToolName = "pr-describer"

// PullRequest carries the PR metadata the description depends on
type PullRequest struct {
	Approvals   int    `yaml:"approvals"`
	Description string `yaml:"description"`
}

// Input is everything a data source collects for one description
type Input struct {
	Commits []string      `yaml:"commits"`
	PR      PullRequest   `yaml:"pr"`
	Files   []ChangedFile `yaml:"files"`
}

// Options controls how the description is rendered
type Options struct {
	// ToolName appears in the managed-content header and markers
	ToolName string
	// Indent prefixes every line after the first with this many spaces,
	// for embedding the result in a YAML block scalar. Zero disables it.
	Indent int
}

// Assemble renders the full managed PR description for the given input
func Assemble(in *Input, opts Options) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}

	toolName := opts.ToolName
	if toolName == "" {
		toolName = DefaultToolName
	}

	classified := Classify(in.Commits)
	addTests := checkbox(HasTestChanges(in.Files))
	codeApproved := checkbox(in.PR.Approvals > 0)
	changes := formatChanges(classified)
	userAdditions := ExtractUserAdditions(in.PR.Description)

	var doc strings.Builder
	doc.WriteString(WrapUserAdditions(userAdditions))
	doc.WriteString("\n\n\n")
	doc.WriteString(fmt.Sprintf("**PR description below is managed by %s**\n", toolName))
	doc.WriteString(fmt.Sprintf("<!--- Auto-generated by %s--->\n", toolName))
	doc.WriteString("> #### Commits Summary\n")
	doc.WriteString("> This pull request includes the following changes:\n")
	doc.WriteString(changes + "\n")
	doc.WriteString("> #### Checklist\n")
	doc.WriteString(fmt.Sprintf("> - [%s] Add tests\n", addTests))
	doc.WriteString(fmt.Sprintf("> - [%s] Code Reviewed and approved\n", codeApproved))
	doc.WriteString(fmt.Sprintf("<!--- Auto-generated by %s end --->\n", toolName))

	return indentContinuation(doc.String(), opts.Indent), nil
}

func checkbox(checked bool) string {
	if checked {
		return "X"
	}
	return " "
}

func indentContinuation(text string, indent int) string {
	if indent <= 0 {
		return text
	}
	return strings.ReplaceAll(text, "\n", "\n"+strings.Repeat(" ", indent))
}
