package description

import (
	"fmt"
	"strings"
)

// FormatSection renders one category as a quoted markdown bullet block.
// An empty category renders as nothing.
func FormatSection(commitType CommitType, commits []string) string {
	if len(commits) == 0 {
		return ""
	}

	var section strings.Builder
	section.WriteString(fmt.Sprintf("> - **%s:**\n", commitType))
	for _, commit := range commits {
		section.WriteString(fmt.Sprintf(">     - %s\n", commit))
	}
	return section.String()
}

// formatChanges concatenates every category in rendering order without the final newline
func formatChanges(classified ClassifiedCommits) string {
	var changes strings.Builder
	for _, commitType := range CommitTypes() {
		changes.WriteString(FormatSection(commitType, classified[commitType]))
	}
	return strings.TrimSuffix(changes.String(), "\n")
}
