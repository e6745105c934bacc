package search

import "github.com/golang-cafe/job-portal/internal/job"

// Listing keeps the filtered and sorted view of one job snapshot so that
// moving between pages does not filter again.
type Listing struct {
	jobs    []*job.Job
	query   Query
	matched []*job.Job
}

func NewListing(jobs []*job.Job, q Query) *Listing {
	l := &Listing{jobs: jobs, query: q.normalize()}
	l.matched = Sort(Filter(jobs, l.query), l.query.SortBy)
	return l
}

// Restore rebuilds a listing from a previously computed order of job ids.
// Ids that are no longer in jobs are skipped.
func Restore(jobs []*job.Job, q Query, order []job.ID) *Listing {
	byID := make(map[job.ID]*job.Job, len(jobs))
	for _, j := range jobs {
		if j != nil {
			byID[j.ID] = j
		}
	}
	matched := make([]*job.Job, 0, len(order))
	for _, id := range order {
		if j, ok := byID[id]; ok {
			matched = append(matched, j)
		}
	}
	return &Listing{jobs: jobs, query: q.normalize(), matched: matched}
}

func (l *Listing) Query() Query {
	return l.query
}

// SetQuery moves the listing to q, resetting to page 1 when the filters or
// the sort key change. Only a changed signature filters again.
func (l *Listing) SetQuery(q Query) {
	next := q.Next(l.query)
	if next.Signature() != l.query.Signature() {
		l.matched = Sort(Filter(l.jobs, next), next.SortBy)
	}
	l.query = next
}

func (l *Listing) SetPage(page int) {
	l.query.Page = page
	l.query = l.query.normalize()
}

func (l *Listing) Page(page int) Result {
	return Paginate(l.matched, page, l.query.PageSize)
}

func (l *Listing) Result() Result {
	return l.Page(l.query.Page)
}

// Matched returns the ids of every job in the filtered set, in order.
func (l *Listing) Matched() []job.ID {
	ids := make([]job.ID, len(l.matched))
	for i, j := range l.matched {
		ids[i] = j.ID
	}
	return ids
}
