package github

// PR represents a pull request from GitHub
type PR struct {
	Number  int
	Title   string
	URL     string
	Body    string
	HeadSHA string
	State   string
}

// Commit represents a commit on a pull request
type Commit struct {
	SHA     string
	Message string // Full message including body
	Author  string
}

// File represents a file changed by a pull request
type File struct {
	Filename string
	Status   string // "added", "modified", "removed", "renamed", ...
	Patch    string // Unified diff fragment, empty for binary or very large files
}

// Review states reported by the GitHub API
const (
	ReviewStateApproved         = "APPROVED"
	ReviewStateChangesRequested = "CHANGES_REQUESTED"
	ReviewStateDismissed        = "DISMISSED"
)
