package domain

// JobStatus enumerates job lifecycle states as reported by the provider.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusNSFW       JobStatus = "nsfw"
)

// Terminal reports whether the provider will no longer change the status.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobStatusCompleted, JobStatusFailed, JobStatusNSFW:
		return true
	default:
		return false
	}
}

// JobSet is the provider envelope returned by every generate call and by
// status lookups. Its ID is the handle callers poll with.
type JobSet struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
	Jobs      []Job  `json:"jobs"`
}

// Job is a single generation task inside a job set.
type Job struct {
	ID      string      `json:"id"`
	Status  JobStatus   `json:"status"`
	Results *JobResults `json:"results,omitempty"`
}

// JobResults holds the preview and full quality outputs of a completed job.
type JobResults struct {
	Min ResultFile `json:"min"`
	Raw ResultFile `json:"raw"`
}

// ResultFile is a downloadable result.
type ResultFile struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Terminal reports whether every job in the set reached a terminal state.
func (s *JobSet) Terminal() bool {
	if s == nil || len(s.Jobs) == 0 {
		return false
	}
	for _, job := range s.Jobs {
		if !job.Status.Terminal() {
			return false
		}
	}
	return true
}

// Summary collapses per-job statuses into a single status for the set.
// Failures win over content filtering, which wins over progress. It returns
// the empty status when no job reports one the set can be summarized by, such
// as an empty set or only unrecognized statuses.
func (s *JobSet) Summary() JobStatus {
	if s == nil || len(s.Jobs) == 0 {
		return ""
	}
	var completed, queued int
	nsfw, running := false, false
	for _, job := range s.Jobs {
		switch job.Status {
		case JobStatusFailed:
			return JobStatusFailed
		case JobStatusNSFW:
			nsfw = true
		case JobStatusCompleted:
			completed++
		case JobStatusInProgress:
			running = true
		case JobStatusQueued:
			queued++
		}
	}
	switch {
	case nsfw:
		return JobStatusNSFW
	case completed == len(s.Jobs):
		return JobStatusCompleted
	case running:
		return JobStatusInProgress
	case queued > 0:
		return JobStatusQueued
	default:
		return ""
	}
}
