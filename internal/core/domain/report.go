package domain

import (
	"fmt"
	"strings"
	"time"
)

// Status is the outcome of a single build.
type Status string

const (
	// StatusUnchanged indicates the existing artifact was already fresh.
	StatusUnchanged Status = "unchanged"
	// StatusCreated indicates a new artifact was written where none existed.
	StatusCreated Status = "created"
	// StatusOverwrote indicates an existing artifact at the same path was replaced.
	StatusOverwrote Status = "overwrote"
	// StatusFailed indicates the build could not produce an artifact.
	StatusFailed Status = "failed"
)

// Report describes what a build did.
type Report struct {
	Path          string
	Fingerprint   Fingerprint
	Status        Status
	Files         FileSet
	Deleted       []string
	CleanupErrors []error
	Err           error
	Duration      time.Duration
}

// OK reports whether the build produced or kept a usable artifact.
func (r *Report) OK() bool {
	return r != nil && r.Status != StatusFailed
}

// String renders the report as a single human-readable line.
func (r *Report) String() string {
	switch r.Status {
	case StatusUnchanged:
		return "stitch identical " + r.Path
	case StatusCreated:
		return "stitch created " + r.Path
	case StatusOverwrote:
		return "stitch overwrote " + r.Path
	case StatusFailed:
		if r.Err != nil {
			return fmt.Sprintf("stitch failed to write %s: %v", r.Path, r.Err)
		}
		return "stitch failed to write " + r.Path
	default:
		return "stitch " + string(r.Status) + " " + r.Path
	}
}

// CleanupResult lists what a sweep removed and what it failed to remove.
type CleanupResult struct {
	Deleted []string
	Errors  []error
}

// Err returns nil when every deletion succeeded, otherwise a *CleanupError.
func (c CleanupResult) Err() error {
	if len(c.Errors) == 0 {
		return nil
	}
	return &CleanupError{Errs: c.Errors}
}

// CleanupError aggregates independent deletion failures.
type CleanupError struct {
	Errs []error
}

func (e *CleanupError) Error() string {
	if len(e.Errs) == 1 {
		return "cleanup failed: " + e.Errs[0].Error()
	}
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("cleanup failed with %d errors: %s", len(e.Errs), strings.Join(msgs, "; "))
}

// Unwrap exposes every deletion failure to errors.Is and errors.As.
func (e *CleanupError) Unwrap() []error {
	return e.Errs
}

