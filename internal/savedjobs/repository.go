package savedjobs

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"

	"github.com/golang-cafe/job-portal/internal/job"
	"github.com/golang-cafe/job-portal/internal/storage"
)

// Tracker records which jobs were saved or applied to. Every call reads the
// store again, so state written by an earlier request is always seen.
type Tracker struct {
	store storage.Store
	now   func() time.Time
}

func NewTracker(store storage.Store) *Tracker {
	return &Tracker{store: store, now: time.Now}
}

func (t *Tracker) Saved(ctx context.Context) []SavedJob {
	return storage.ReadList[SavedJob](ctx, t.store, storage.KeySavedJobs)
}

func (t *Tracker) IsSaved(ctx context.Context, id job.ID) bool {
	for _, s := range t.Saved(ctx) {
		if s.ID == id {
			return true
		}
	}
	return false
}

// Save stores a copy of j. It reports false, and writes nothing, when a job
// with the same id is already saved.
func (t *Tracker) Save(ctx context.Context, j *job.Job) (bool, error) {
	if j == nil {
		return false, errors.New("nil job")
	}
	added := false
	err := storage.UpdateList(ctx, t.store, storage.KeySavedJobs, func(saved []SavedJob) ([]SavedJob, bool) {
		for _, s := range saved {
			if s.ID == j.ID {
				return saved, false
			}
		}
		added = true
		return append(saved, SavedJob{Job: *j.Clone(), SavedAt: t.now().UTC()}), true
	})
	if err != nil {
		return false, errors.Wrapf(err, "unable to save job %s", j.ID)
	}
	return added, nil
}

func (t *Tracker) Unsave(ctx context.Context, id job.ID) error {
	err := storage.UpdateList(ctx, t.store, storage.KeySavedJobs, func(saved []SavedJob) ([]SavedJob, bool) {
		kept := make([]SavedJob, 0, len(saved))
		for _, s := range saved {
			if s.ID != id {
				kept = append(kept, s)
			}
		}
		return kept, len(kept) != len(saved)
	})
	if err != nil {
		return errors.Wrapf(err, "unable to remove saved job %s", id)
	}
	return nil
}

// SearchSaved returns the saved jobs whose title, company or location
// contains term, ignoring case.
func (t *Tracker) SearchSaved(ctx context.Context, term string) []SavedJob {
	saved := t.Saved(ctx)
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return saved
	}
	out := []SavedJob{}
	for _, s := range saved {
		if strings.Contains(strings.ToLower(s.JobTitle), term) ||
			strings.Contains(strings.ToLower(s.CompanyName), term) ||
			strings.Contains(strings.ToLower(s.Location), term) {
			out = append(out, s)
		}
	}
	return out
}

func (t *Tracker) ClearSaved(ctx context.Context) error {
	if err := t.store.Remove(ctx, storage.KeySavedJobs); err != nil {
		return errors.Wrap(err, "unable to clear saved jobs")
	}
	return nil
}

func (t *Tracker) Applications(ctx context.Context) []Application {
	return storage.ReadList[Application](ctx, t.store, storage.KeyApplications)
}

func (t *Tracker) HasApplied(ctx context.Context, id job.ID) bool {
	for _, a := range t.Applications(ctx) {
		if a.JobID == id {
			return true
		}
	}
	return false
}

// RecordApplication appends a, assigning its id and applied date. Applying
// twice to the same job records two applications.
func (t *Tracker) RecordApplication(ctx context.Context, a Application) (Application, error) {
	id, err := ksuid.NewRandom()
	if err != nil {
		return Application{}, errors.Wrap(err, "unable to generate application id")
	}
	a.ID = id.String()
	a.AppliedDate = t.now().UTC()
	err = storage.UpdateList(ctx, t.store, storage.KeyApplications, func(apps []Application) ([]Application, bool) {
		return append(apps, a), true
	})
	if err != nil {
		return Application{}, errors.Wrapf(err, "unable to record application for job %s", a.JobID)
	}
	return a, nil
}

// State is the saved and applied flags of a set of jobs, read from the store
// once.
type State struct {
	saved   map[job.ID]struct{}
	applied map[job.ID]struct{}
}

func (t *Tracker) State(ctx context.Context) State {
	s := State{saved: map[job.ID]struct{}{}, applied: map[job.ID]struct{}{}}
	for _, j := range t.Saved(ctx) {
		s.saved[j.ID] = struct{}{}
	}
	for _, a := range t.Applications(ctx) {
		s.applied[a.JobID] = struct{}{}
	}
	return s
}

func (s State) Saved(id job.ID) bool {
	_, ok := s.saved[id]
	return ok
}

func (s State) Applied(id job.ID) bool {
	_, ok := s.applied[id]
	return ok
}
