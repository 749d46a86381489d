package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/go-git/go-git/v5/utils/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// formatSuccessMessage creates a standardized success message
func formatSuccessMessage(action string, prNumbers []int) string {
	if len(prNumbers) == 1 {
		return fmt.Sprintf("✅ Successfully %s PR #%d\n", action, prNumbers[0])
	}

	refs := make([]string, len(prNumbers))
	for i, number := range prNumbers {
		refs[i] = fmt.Sprintf("#%d", number)
	}
	return fmt.Sprintf("✅ Successfully %s %d PR(s): %s\n", action, len(prNumbers), strings.Join(refs, ", "))
}

// DisplaySuccessMessage displays a formatted success message
func DisplaySuccessMessage(out io.Writer, action string, prNumbers []int) {
	fmt.Fprint(out, formatSuccessMessage(action, prNumbers))
}

// GenerateDiff renders a line diff between old and new content.
// Returns an empty string only when both are byte-equal once CRLF line
// endings are folded to LF, since bodies edited on github.com come back
// with CRLF. Any other whitespace change is reported.
func GenerateDiff(oldContent, newContent string) string {
	oldContent = strings.ReplaceAll(oldContent, "\r\n", "\n")
	newContent = strings.ReplaceAll(newContent, "\r\n", "\n")
	if oldContent == newContent {
		return ""
	}

	var b strings.Builder
	b.WriteString("--- Old\n")
	b.WriteString("+++ New\n\n")

	for _, d := range diff.Do(oldContent, newContent) {
		var marker string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			marker = "- "
		case diffmatchpatch.DiffInsert:
			marker = "+ "
		default:
			continue
		}

		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			if line == "" {
				// blank lines still count as changes
				b.WriteString(strings.TrimSpace(marker))
			} else {
				b.WriteString(marker)
				b.WriteString(line)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// ConfirmAction prompts on out and reads a yes/no answer from in
func ConfirmAction(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s (y/N): ", prompt)

	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
