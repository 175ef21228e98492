package model

import (
	"time"

	"github.com/google/uuid"
)

// FailedDownload records a photo that could not be retrieved.
type FailedDownload struct {
	// Name is the photo filename as listed in the catalog.
	Name string

	// Err is the reason the download failed.
	Err error
}

// Report summarizes a download run.
//
// Failed is append-only and keeps the order in which failures happened.
// For a run that was not cancelled Attempted equals Total, so
// Succeeded() + len(Failed) == Total.
type Report struct {
	// RunID uniquely identifies the run.
	RunID string

	StartedAt  time.Time
	FinishedAt time.Time

	// Total is the number of photo names collected from the catalog.
	Total int

	// Attempted is the number of names the download loop processed.
	Attempted int

	// Failed lists the names whose download failed, in processing order.
	Failed []FailedDownload

	// Cancelled is set when the run stopped before processing every name.
	Cancelled bool

	// Location describes where photos were saved (directory or bucket URL).
	Location string
}

// NewReport creates a Report for a run over total photos.
func NewReport(total int, location string) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Total:     total,
		Failed:    []FailedDownload{},
		Location:  location,
	}
}

// AddFailure records a failed photo.
func (r *Report) AddFailure(name string, err error) {
	r.Failed = append(r.Failed, FailedDownload{Name: name, Err: err})
}

// Succeeded returns the number of photos downloaded successfully.
func (r *Report) Succeeded() int {
	return r.Attempted - len(r.Failed)
}

// FailedNames returns the names of failed photos in order.
func (r *Report) FailedNames() []string {
	names := make([]string, len(r.Failed))
	for i, f := range r.Failed {
		names[i] = f.Name
	}
	return names
}

// Finish marks the report as finished.
func (r *Report) Finish() {
	r.FinishedAt = time.Now()
}
