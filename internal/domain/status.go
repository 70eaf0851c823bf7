package domain

import "strings"

type JobStatus string

const (
	JobOpen       JobStatus = "open"
	JobAssigned   JobStatus = "assigned"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobPaid       JobStatus = "paid"
	JobReviewed   JobStatus = "reviewed"
)

// transitions is the canonical lifecycle table. Cancellation is the
// assigned/in_progress -> open edge; there is no edge out of completed
// except paid, so cancellation after completion is not possible.
var transitions = map[JobStatus][]JobStatus{
	JobOpen:       {JobAssigned},
	JobAssigned:   {JobInProgress, JobOpen},
	JobInProgress: {JobCompleted, JobOpen},
	JobCompleted:  {JobPaid},
	JobPaid:       {JobReviewed},
	JobReviewed:   {},
}

func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Assigned reports whether the job has a provider of record, i.e. its
// status is anything past open.
func (s JobStatus) Assigned() bool {
	switch s {
	case JobAssigned, JobInProgress, JobCompleted, JobPaid, JobReviewed:
		return true
	default:
		return false
	}
}

func ValidJobStatus(s JobStatus) bool {
	switch s {
	case JobOpen, JobAssigned, JobInProgress, JobCompleted, JobPaid, JobReviewed:
		return true
	default:
		return false
	}
}

// statusSynonyms maps legacy and alternate spellings seen in persisted data
// to canonical statuses. Lookup is case-insensitive. Synonyms are resolved
// only at the ingestion boundary; internal logic works with JobStatus values.
var statusSynonyms = map[string]JobStatus{
	"open":        JobOpen,
	"new":         JobOpen,
	"pending":     JobOpen,
	"assigned":    JobAssigned,
	"accepted":    JobAssigned,
	"in_progress": JobInProgress,
	"in-progress": JobInProgress,
	"in progress": JobInProgress,
	"inprogress":  JobInProgress,
	"started":     JobInProgress,
	"completed":   JobCompleted,
	"complete":    JobCompleted,
	"done":        JobCompleted,
	"finished":    JobCompleted,
	"paid":        JobPaid,
	"settled":     JobPaid,
	"reviewed":    JobReviewed,
	"rated":       JobReviewed,
}

// ParseJobStatus normalizes a raw status string through the synonym table.
func ParseJobStatus(raw string) (JobStatus, bool) {
	s, ok := statusSynonyms[strings.ToLower(strings.TrimSpace(raw))]
	return s, ok
}
