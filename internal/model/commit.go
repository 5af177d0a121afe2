package model

const (
	// RepoURLMarker separates the API prefix from "owner/name" in a repo url
	RepoURLMarker = "repos/"
	// WebHost is the host used to build browsable repository links
	WebHost = "github.com"

	MaxShortMessage = 50
	ShortMessageCut = 47
	Ellipsis        = "..."
)

// DisplayCommit is a commit ready to be shown in the panel
type DisplayCommit struct {
	RepoName     string `json:"repo_name"`
	RepoURL      string `json:"repo_url"`
	Message      string `json:"message"`
	MessageShort string `json:"message_short"`
}

// CommitFeed is an ordered list of commits in upstream feed order
type CommitFeed struct {
	Commits []DisplayCommit `json:"commits"`
}

// Len returns the number of commits in the feed
func (f CommitFeed) Len() int {
	return len(f.Commits)
}

// Take returns at most n first commits. Non-positive n returns all of them.
func (f CommitFeed) Take(n int) []DisplayCommit {
	if n <= 0 || n >= len(f.Commits) {
		return f.Commits
	}
	return f.Commits[:n]
}
