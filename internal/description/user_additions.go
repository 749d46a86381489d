package description

import (
	"regexp"
	"strings"
)

const (
	// UserAdditionsStart opens the human-authored region of a description
	UserAdditionsStart = "<!--- user additions start --->"
	// UserAdditionsEnd closes the human-authored region of a description
	UserAdditionsEnd = "<!--- user additions end --->"
)

var userAdditionsPattern = regexp.MustCompile(
	`(?s)` + regexp.QuoteMeta(UserAdditionsStart) + `(.*?)` + regexp.QuoteMeta(UserAdditionsEnd),
)

// ExtractUserAdditions returns the text between the user-addition markers.
// Without markers the whole description is treated as user text.
func ExtractUserAdditions(description string) string {
	if matches := userAdditionsPattern.FindStringSubmatch(description); len(matches) >= 2 {
		return strings.TrimSpace(matches[1])
	}
	return strings.TrimSpace(description)
}

// WrapUserAdditions surrounds text with the user-addition markers
func WrapUserAdditions(text string) string {
	return UserAdditionsStart + "\n" + text + "\n" + UserAdditionsEnd
}
