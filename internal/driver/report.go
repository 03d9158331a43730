package driver

import (
	"github.com/simonhull/constgen/internal/errors"
)

// Entry is the outcome of one domain in a run.
type Entry struct {
	Result
	Err error
}

// Report collects the entries of one registry run.
type Report struct {
	Entries []Entry
}

// Failed returns the entries that ended with an error.
func (r Report) Failed() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Err != nil {
			out = append(out, e)
		}
	}
	return out
}

// Warnings returns the entries that carry a warning.
func (r Report) Warnings() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Warning != nil {
			out = append(out, e)
		}
	}
	return out
}

// Changed reports whether any file was written or deleted.
func (r Report) Changed() bool {
	for _, e := range r.Entries {
		switch e.Action {
		case ActionGenerated, ActionDeleted, ActionRegenerated:
			return true
		}
	}
	return false
}

// Err summarizes failures as one error, nil when every domain succeeded.
func (r Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	if len(failed) == 1 {
		return failed[0].Err
	}
	return errors.Newf("%d of %d domains failed, first: %v", len(failed), len(r.Entries), failed[0].Err)
}
