// Package description classifies pull request commits and assembles the managed PR description.
package description

import (
	"regexp"
	"strings"
)

// CommitType is a conventional-commit category
type CommitType string

const (
	CommitTypeFeat     CommitType = "feat"
	CommitTypeFix      CommitType = "fix"
	CommitTypeChore    CommitType = "chore"
	CommitTypeDocs     CommitType = "docs"
	CommitTypeStyle    CommitType = "style"
	CommitTypeRefactor CommitType = "refactor"
	CommitTypePerf     CommitType = "perf"
	CommitTypeTest     CommitType = "test"
	CommitTypeBuild    CommitType = "build"
	CommitTypeCI       CommitType = "ci"
	// CommitTypeOther collects every message without a recognized prefix
	CommitTypeOther CommitType = "other"
)

// mergeMarker identifies automatic merge commits. Plain substring match, so a
// commit body quoting this phrase is dropped as well.
const mergeMarker = "Merge branch"

var recognizedTypes = []CommitType{
	CommitTypeFeat,
	CommitTypeFix,
	CommitTypeChore,
	CommitTypeDocs,
	CommitTypeStyle,
	CommitTypeRefactor,
	CommitTypePerf,
	CommitTypeTest,
	CommitTypeBuild,
	CommitTypeCI,
}

var prefixPattern = buildPrefixPattern(recognizedTypes)

func buildPrefixPattern(types []CommitType) *regexp.Regexp {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return regexp.MustCompile(`^(` + strings.Join(names, "|") + `):`)
}

// CommitTypes returns every category in rendering order, ending with CommitTypeOther
func CommitTypes() []CommitType {
	types := make([]CommitType, 0, len(recognizedTypes)+1)
	types = append(types, recognizedTypes...)
	return append(types, CommitTypeOther)
}

// ClassifiedCommits maps each category to its commit subjects in input order
type ClassifiedCommits map[CommitType][]string

// Classify partitions commit messages into categories, dropping merge commits
func Classify(messages []string) ClassifiedCommits {
	classified := make(ClassifiedCommits)

	for _, message := range messages {
		if isMergeCommit(message) {
			continue
		}

		commitType, subject := parseCommitMessage(message)
		classified[commitType] = append(classified[commitType], subject)
	}

	return classified
}

func isMergeCommit(message string) bool {
	return strings.Contains(message, mergeMarker)
}

// parseCommitMessage returns the category and the subject to render for one message
func parseCommitMessage(message string) (CommitType, string) {
	matches := prefixPattern.FindStringSubmatch(message)
	if len(matches) < 2 {
		return CommitTypeOther, message
	}

	commitType := CommitType(matches[1])
	subject := strings.Replace(message, matches[1]+":", "", 1)
	return commitType, strings.TrimSpace(subject)
}
