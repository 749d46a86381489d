package description

import (
	"regexp"
	"strings"
)

// ChangedFile is one file touched by the pull request diff
type ChangedFile struct {
	Path    string `yaml:"path"`
	Diff    string `yaml:"diff"`
	Content string `yaml:"content"`
}

var (
	testFileNamePattern = regexp.MustCompile(`(?i)(test_|spec_|__tests__|_test|_tests|\.test|\.spec)`)
	testKeywordPattern  = regexp.MustCompile(`(?i)(describe\(|it\(|test\(|expect\()`)
)

var testDirectoryNames = []string{"tests", "test", "__tests__"}

// HasTestChanges reports whether any changed file looks like it adds or touches tests
func HasTestChanges(files []ChangedFile) bool {
	for _, file := range files {
		if IsTestFileName(file.Path) || HasTestDirectory(file.Path) {
			return true
		}
		if HasTestKeywords(file.Diff) || HasTestKeywords(file.Content) {
			return true
		}
	}
	return false
}

// IsTestFileName checks the path against common test file naming conventions
func IsTestFileName(path string) bool {
	return testFileNamePattern.MatchString(path)
}

// HasTestDirectory checks whether any directory in the path is a test directory
func HasTestDirectory(path string) bool {
	segments := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(segments) == 0 {
		return false
	}
	// the last segment is the file itself
	for _, segment := range segments[:len(segments)-1] {
		for _, name := range testDirectoryNames {
			if strings.EqualFold(segment, name) {
				return true
			}
		}
	}
	return false
}

// HasTestKeywords looks for test framework calls such as describe( or expect(
func HasTestKeywords(text string) bool {
	return testKeywordPattern.MatchString(text)
}
