package constants

// JobStatus is the canonical status for a conversion job.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusProcessing   JobStatus = "PROCESSING"    // text extraction in progress
	JobStatusAnalyzing    JobStatus = "ANALYZING"     // LLM question extraction in progress
	JobStatusCreatingForm JobStatus = "CREATING_FORM" // provider publish in progress
	JobStatusCompleted    JobStatus = "COMPLETED"     // terminal success
	JobStatusFailed       JobStatus = "FAILED"        // terminal failure
)

// progressByStatus pins each non-failed status to its reported progress value.
var progressByStatus = map[JobStatus]int{
	JobStatusProcessing:   0,
	JobStatusAnalyzing:    30,
	JobStatusCreatingForm: 60,
	JobStatusCompleted:    100,
}

// ProgressFor returns the progress value persisted alongside a status.
// FAILED keeps whatever progress the job last reached, so it maps to -1 here.
func ProgressFor(s JobStatus) int {
	if p, ok := progressByStatus[s]; ok {
		return p
	}
	return -1
}

// IsTerminal reports whether a job in this status will never transition again.
func IsTerminal(s JobStatus) bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}
