package domain

// UpdateOutcome is the terminal state of an update cycle.
type UpdateOutcome string

// Available update outcomes.
const (
	// OutcomeNoChange means regeneration produced no staged difference.
	// Nothing was committed or pushed.
	OutcomeNoChange UpdateOutcome = "no_change"

	// OutcomeCommittedDirect means a commit was pushed to the current branch.
	OutcomeCommittedDirect UpdateOutcome = "committed_direct"

	// OutcomeCommittedPendingReview means a commit was pushed to a new
	// branch and a pull request was requested for it.
	OutcomeCommittedPendingReview UpdateOutcome = "committed_pending_review"
)

// Updated reports whether the cycle produced a commit.
func (o UpdateOutcome) Updated() bool {
	return o != OutcomeNoChange && o != ""
}

// String returns the string representation.
func (o UpdateOutcome) String() string {
	return string(o)
}

// FileChange is one line of a git name-status diff.
type FileChange struct {
	// Status is the git status letter(s), e.g. "M", "A", "D", "R100".
	Status string `json:"status"`
	// Path is the changed path relative to the repository root.
	Path string `json:"path"`
}

// ReviewRequest describes a pull request to open.
type ReviewRequest struct {
	// Repo is the "owner/repo" path of the target repository.
	Repo  string
	Title string
	Body  string
	// Base is the branch the changes should be merged into.
	Base string
	// Head is the branch holding the changes.
	Head string
}

// ReviewRequestRef identifies an opened pull request.
type ReviewRequestRef struct {
	Number int    `json:"number"`
	URL    string `json:"url"`
}

// UpdateResult reports what an update cycle did.
type UpdateResult struct {
	Outcome UpdateOutcome `json:"outcome"`
	// Branch is the branch the commit was pushed to, empty for direct pushes
	// to the current branch.
	Branch string `json:"branch,omitempty"`
	// CommitHash is the created commit, empty when nothing changed.
	CommitHash string       `json:"commit_hash,omitempty"`
	Changes    []FileChange `json:"changes,omitempty"`
	// ReviewRequest is set once the pull request has been opened.
	ReviewRequest *ReviewRequestRef `json:"review_request,omitempty"`
}

// Updated reports whether the cycle produced a commit.
func (r *UpdateResult) Updated() bool {
	return r != nil && r.Outcome.Updated()
}
