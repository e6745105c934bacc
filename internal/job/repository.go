package job

import (
	"bytes"
	"context"
	"encoding/gob"
	"sync"
	"sync/atomic"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/rs/zerolog"
)

const cacheKeyAllJobs = "jobs:all"

// Snapshot is one read of the full job list. Generation changes whenever the
// list served by the repository may have changed.
type Snapshot struct {
	Jobs       []*Job
	Outcome    Outcome
	Generation uint64
}

// Repository serves job postings from the remote job service and falls back
// to an in-process list whenever the service cannot be reached.
type Repository struct {
	remote     Remote
	fallback   *fallbackList
	cache      *bigcache.BigCache
	log        zerolog.Logger
	onFallback func(op string)

	generation atomic.Uint64
	mu         sync.Mutex
	lastSource Source
}

type Option func(*Repository)

// WithCache caches successful remote list reads.
func WithCache(c *bigcache.BigCache) Option {
	return func(r *Repository) { r.cache = c }
}

func WithLogger(l zerolog.Logger) Option {
	return func(r *Repository) { r.log = l }
}

// WithFallbackHook registers fn to be called with the operation name every
// time the repository degrades to fallback data.
func WithFallbackHook(fn func(op string)) Option {
	return func(r *Repository) { r.onFallback = fn }
}

func WithFallbackJobs(jobs []*Job) Option {
	return func(r *Repository) { r.fallback = newFallbackList(jobs) }
}

func NewRepository(remote Remote, opts ...Option) *Repository {
	r := &Repository{
		remote:   remote,
		fallback: newFallbackList(SampleJobs()),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) Generation() uint64 {
	return r.generation.Load()
}

func (r *Repository) ListJobs(ctx context.Context) ([]*Job, Outcome) {
	s := r.Snapshot(ctx)
	return s.Jobs, s.Outcome
}

// Snapshot reads the job list together with its generation. The read and
// the generation are taken under the lock invalidate holds, so a list from
// before a mutation never carries the generation from after it.
func (r *Repository) Snapshot(ctx context.Context) Snapshot {
	r.mu.Lock()
	if jobs, ok := r.cachedJobs(); ok {
		s := Snapshot{Jobs: jobs, Outcome: remoteOutcome(), Generation: r.observe(SourceRemote, false)}
		r.mu.Unlock()
		return s
	}
	before := r.generation.Load()
	r.mu.Unlock()

	jobs, err := r.remote.All(ctx)
	if err != nil {
		o := r.degrade("list", err)
		r.mu.Lock()
		defer r.mu.Unlock()
		return Snapshot{Jobs: r.fallback.all(), Outcome: o, Generation: r.observe(SourceFallback, false)}
	}
	jobs = compact(jobs)
	r.mu.Lock()
	defer r.mu.Unlock()
	// a mutation during the fetch may not be in jobs; leave the cache empty
	// so the next read fetches again under a newer generation
	if r.generation.Load() == before {
		r.storeJobs(jobs)
	}
	return Snapshot{Jobs: jobs, Outcome: remoteOutcome(), Generation: r.observe(SourceRemote, true)}
}

func (r *Repository) GetJob(ctx context.Context, id ID) (*Job, Outcome, error) {
	j, err := r.remote.Get(ctx, id)
	if err == nil {
		return j, remoteOutcome(), nil
	}
	o := r.degrade("get", err)
	j, ok := r.fallback.find(id)
	if !ok {
		return nil, o, ErrNotFound
	}
	return j, o, nil
}

func (r *Repository) ListByCategory(ctx context.Context, category string) ([]*Job, Outcome) {
	return r.listBy(ctx, "by_category", r.remote.ByCategory, func(j *Job) string { return j.Category }, category)
}

func (r *Repository) ListByLocation(ctx context.Context, location string) ([]*Job, Outcome) {
	return r.listBy(ctx, "by_location", r.remote.ByLocation, func(j *Job) string { return j.Location }, location)
}

func (r *Repository) ListByJobRole(ctx context.Context, role string) ([]*Job, Outcome) {
	return r.listBy(ctx, "by_job_role", r.remote.ByJobRole, func(j *Job) string { return j.JobRole }, role)
}

func (r *Repository) listBy(
	ctx context.Context,
	op string,
	fetch func(context.Context, string) ([]*Job, error),
	field func(*Job) string,
	value string,
) ([]*Job, Outcome) {
	jobs, err := fetch(ctx, value)
	if err == nil {
		return compact(jobs), remoteOutcome()
	}
	o := r.degrade(op, err)
	return r.fallback.matching(field, value), o
}

// CreateJob publishes a new posting. When the service is unavailable the
// posting is added to the fallback list with a locally assigned id.
func (r *Repository) CreateJob(ctx context.Context, j *Job) (*Job, Outcome, error) {
	c := j.Clone()
	Sanitize(c)
	if c.PostedDate == "" {
		c.PostedDate = time.Now().UTC().Format(DateLayout)
	}
	if c.JobType == "" {
		c.JobType = JobTypeFullTime
	}
	created, err := r.remote.Add(ctx, c)
	if err == nil {
		r.invalidate()
		return created, remoteOutcome(), nil
	}
	o := r.degrade("create", err)
	r.changeFallback(func() bool {
		created = r.fallback.add(c)
		return true
	})
	return created, o, nil
}

func (r *Repository) UpdateJob(ctx context.Context, id ID, p Patch) (*Job, Outcome, error) {
	p.Sanitize()
	updated, err := r.remote.Update(ctx, id, p)
	if err == nil {
		r.invalidate()
		return updated, remoteOutcome(), nil
	}
	o := r.degrade("update", err)
	ok := r.changeFallback(func() bool {
		var found bool
		updated, found = r.fallback.update(id, p)
		return found
	})
	if !ok {
		return nil, o, ErrNotFound
	}
	return updated, o, nil
}

func (r *Repository) DeleteJob(ctx context.Context, id ID) (Outcome, error) {
	err := r.remote.Delete(ctx, id)
	if err == nil {
		r.invalidate()
		return remoteOutcome(), nil
	}
	o := r.degrade("delete", err)
	if !r.changeFallback(func() bool { return r.fallback.remove(id) }) {
		return o, ErrNotFound
	}
	return o, nil
}

func (r *Repository) degrade(op string, err error) Outcome {
	r.log.Warn().Err(err).Str("op", op).Msg("job service not available, using fallback data")
	if r.onFallback != nil {
		r.onFallback(op)
	}
	return fallbackOutcome(err)
}

// observe bumps the generation on a fresh remote read or when the serving
// source flips between remote and fallback. Callers hold r.mu.
func (r *Repository) observe(src Source, fresh bool) uint64 {
	if fresh || src != r.lastSource {
		r.lastSource = src
		r.generation.Add(1)
	}
	return r.generation.Load()
}

func (r *Repository) invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalidateLocked()
}

// changeFallback runs fn against the fallback list and, when it reports a
// change, moves the generation before Snapshot can read the list again.
func (r *Repository) changeFallback(fn func() bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !fn() {
		return false
	}
	r.invalidateLocked()
	return true
}

func (r *Repository) invalidateLocked() {
	if r.cache != nil {
		if err := r.cache.Delete(cacheKeyAllJobs); err != nil && err != bigcache.ErrEntryNotFound {
			r.log.Error().Err(err).Msg("unable to cleanup jobs cache")
		}
	}
	r.generation.Add(1)
}

func (r *Repository) cachedJobs() ([]*Job, bool) {
	if r.cache == nil {
		return nil, false
	}
	b, err := r.cache.Get(cacheKeyAllJobs)
	if err != nil {
		return nil, false
	}
	var jobs []*Job
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&jobs); err != nil {
		r.log.Error().Err(err).Msg("unable to decode cached jobs")
		return nil, false
	}
	return compact(jobs), true
}

func (r *Repository) storeJobs(jobs []*Job) {
	if r.cache == nil {
		return
	}
	buf := &bytes.Buffer{}
	if err := gob.NewEncoder(buf).Encode(jobs); err != nil {
		r.log.Error().Err(err).Msg("unable to encode jobs")
		return
	}
	if err := r.cache.Set(cacheKeyAllJobs, buf.Bytes()); err != nil {
		r.log.Error().Err(err).Msg("unable to cache jobs")
	}
}

func compact(jobs []*Job) []*Job {
	out := make([]*Job, 0, len(jobs))
	for _, j := range jobs {
		if j != nil {
			out = append(out, j)
		}
	}
	return out
}
