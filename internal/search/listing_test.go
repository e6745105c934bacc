package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golang-cafe/job-portal/internal/job"
)

func TestListingPagesWithoutRefiltering(t *testing.T) {
	jobs := generated(20)
	l := NewListing(jobs, Query{PageSize: 9})

	assert.Len(t, l.Result().Jobs, 9)

	// a job added after the listing was built is not seen until the filters change
	jobs = append(jobs, &job.Job{ID: "new", PostedDate: "2030-01-01"})
	l.jobs = jobs
	l.SetPage(3)
	r := l.Result()
	assert.Equal(t, 3, r.Page)
	assert.Len(t, r.Jobs, 2)
	assert.Equal(t, 20, r.Total)

	l.SetQuery(Query{SortBy: SortByTitle, Page: 3, PageSize: 9})
	r = l.Result()
	assert.Equal(t, 1, r.Page)
	assert.Equal(t, 21, r.Total)
}

func TestListingSetQueryKeepsPageForSameFilters(t *testing.T) {
	l := NewListing(generated(20), Query{PageSize: 9})
	l.SetQuery(Query{Page: 2, PageSize: 9})
	assert.Equal(t, 2, l.Query().Page)
	assert.Len(t, l.Result().Jobs, 9)
}

func TestRestore(t *testing.T) {
	jobs := generated(5)
	q := Query{SortBy: SortByTitle, PageSize: 2}
	order := NewListing(jobs, q).Matched()
	require.Equal(t, []job.ID{"1", "2", "3", "4", "5"}, order)

	r := Restore(jobs[:4], q, order).Page(2)
	assert.Equal(t, 4, r.Total)
	assert.Equal(t, []job.ID{"3", "4"}, ids(r.Jobs))
}

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC)
	jobs := append(job.SampleJobs(), &job.Job{ID: "4", Category: "Design", Location: "Pune", PostedDate: "2023-12-01"})

	s := Summarize(jobs, now)
	assert.Equal(t, Stats{TotalJobs: 4, Categories: 2, Locations: 3, ThisWeek: 3}, s)
	assert.Equal(t, Stats{}, Summarize(nil, now))
}
