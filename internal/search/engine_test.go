package search

import (
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golang-cafe/job-portal/internal/job"
)

func ids(jobs []*job.Job) []job.ID {
	out := make([]job.ID, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}

func generated(n int) []*job.Job {
	jobs := make([]*job.Job, n)
	for i := range jobs {
		jobs[i] = &job.Job{
			ID:         job.ID(fmt.Sprint(i + 1)),
			JobTitle:   fmt.Sprintf("Job %02d", i+1),
			PostedDate: time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC).Format(job.DateLayout),
		}
	}
	return jobs
}

func TestEmptyQueryKeepsEverything(t *testing.T) {
	jobs := job.SampleJobs()
	r := Apply(jobs, NewQuery())
	assert.Equal(t, len(jobs), r.Total)
	assert.Equal(t, 1, r.TotalPages)
}

func TestSortByDateNewestFirst(t *testing.T) {
	jobs := []*job.Job{
		{ID: "1", PostedDate: "2024-01-10"},
		{ID: "2", PostedDate: "2024-01-15"},
	}
	r := Apply(jobs, NewQuery())
	assert.Equal(t, []job.ID{"2", "1"}, ids(r.Jobs))
}

func TestSortByDateIsStableAndPutsBadDatesLast(t *testing.T) {
	jobs := []*job.Job{
		{ID: "a", PostedDate: "soon"},
		{ID: "b", PostedDate: "2024-01-10"},
		{ID: "c", PostedDate: "2024-01-12"},
		{ID: "d", PostedDate: "2024-01-10"},
		{ID: "e", PostedDate: ""},
	}
	got := Sort(jobs, SortByDate)
	assert.Equal(t, []job.ID{"c", "b", "d", "a", "e"}, ids(got))
	assert.Equal(t, job.ID("a"), jobs[0].ID, "input must not be reordered")
}

func TestSortByCompanyAndTitle(t *testing.T) {
	jobs := []*job.Job{
		{ID: "1", CompanyName: "beta", JobTitle: "Zeta"},
		{ID: "2", CompanyName: "Alpha", JobTitle: "eta"},
		{ID: "3", CompanyName: "alpha", JobTitle: "Eta"},
	}
	assert.Equal(t, []job.ID{"2", "3", "1"}, ids(Sort(jobs, SortByCompany)))
	assert.Equal(t, []job.ID{"3", "2", "1"}, ids(Sort(jobs, SortByTitle)))
	assert.Equal(t, ids(Sort(jobs, SortByDate)), ids(Sort(jobs, "salary")))
}

func TestSearchReact(t *testing.T) {
	r := Apply(job.SampleJobs(), Query{SearchTerm: "react"})
	require.Len(t, r.Jobs, 1)
	assert.Equal(t, "Senior React Developer", r.Jobs[0].JobTitle)
}

func TestSearchMatchesCompanyAndRole(t *testing.T) {
	jobs := job.SampleJobs()
	assert.Equal(t, []job.ID{"2"}, ids(Filter(jobs, Query{SearchTerm: "softsol"})))
	assert.Equal(t, []job.ID{"3"}, ids(Filter(jobs, Query{SearchTerm: "DESIGNER"})))
}

func TestFiltersCombineWithAnd(t *testing.T) {
	jobs := job.SampleJobs()
	assert.Equal(t, []job.ID{"1", "2"}, ids(Filter(jobs, Query{Category: "developer"})))
	assert.Equal(t, []job.ID{"2"}, ids(Filter(jobs, Query{Category: "developer", Location: "mumbai"})))
	assert.Empty(t, Filter(jobs, Query{Category: "developer", Location: "bangalore"}))
	assert.Equal(t, []job.ID{"3"}, ids(Filter(jobs, Query{Experience: "1-3"})))
	assert.Len(t, Filter(jobs, Query{JobType: "full"}), 3)
}

func TestFilteringIsMonotonic(t *testing.T) {
	jobs := job.SampleJobs()
	base := Filter(jobs, Query{Category: "dev"})
	narrower := Filter(jobs, Query{Category: "dev", SearchTerm: "java"})
	assert.LessOrEqual(t, len(narrower), len(base))
	assert.Subset(t, ids(base), ids(narrower))
}

func TestPaginationScenario(t *testing.T) {
	r := Apply(generated(10), Query{Page: 2, PageSize: 9})
	assert.Len(t, r.Jobs, 1)
	assert.Equal(t, 2, r.TotalPages)
	assert.Equal(t, 10, r.Total)
	assert.Equal(t, job.ID("1"), r.Jobs[0].ID)
}

func TestPaginationCoversEveryJobOnce(t *testing.T) {
	for _, n := range []int{0, 1, 8, 9, 10, 27, 31} {
		jobs := generated(n)
		seen := map[job.ID]int{}
		first := Apply(jobs, Query{PageSize: 9})
		for p := 1; p <= first.TotalPages; p++ {
			for _, j := range Apply(jobs, Query{Page: p, PageSize: 9}).Jobs {
				seen[j.ID]++
			}
		}
		assert.Len(t, seen, n)
		for id, c := range seen {
			assert.Equal(t, 1, c, "job %s", id)
		}
	}
}

func TestPaginateOutOfRange(t *testing.T) {
	jobs := generated(3)

	r := Paginate(jobs, 5, 2)
	assert.NotNil(t, r.Jobs)
	assert.Empty(t, r.Jobs)
	assert.Equal(t, 5, r.Page)

	r = Paginate(jobs, 0, 2)
	assert.Equal(t, 1, r.Page)
	assert.Len(t, r.Jobs, 2)

	r = Paginate(nil, 1, 9)
	assert.Equal(t, 0, r.TotalPages)
	assert.Empty(t, r.Jobs)
}

func TestParseQuery(t *testing.T) {
	v := url.Values{}
	v.Set("search", " react ")
	v.Set("location", "Pune")
	v.Set("category", "Developer")
	v.Set("sortBy", "company")
	v.Set("page", "3")

	q := ParseQuery(v, 12)
	assert.Equal(t, Query{
		SearchTerm: "react",
		Location:   "Pune",
		Category:   "Developer",
		SortBy:     SortByCompany,
		Page:       3,
		PageSize:   12,
	}, q)

	q = ParseQuery(url.Values{"sortBy": {"salary"}, "page": {"x"}}, 0)
	assert.Equal(t, SortByDate, q.SortBy)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultPageSize, q.PageSize)

}

func TestQueryValuesRoundTrip(t *testing.T) {
	q := Query{SearchTerm: "go", JobType: "Remote", SortBy: SortByTitle, Page: 2, PageSize: 9}
	assert.Equal(t, "jobType=Remote&page=2&search=go&sortBy=title", q.Values().Encode())
	assert.Equal(t, q, ParseQuery(q.Values(), 9))
	assert.Empty(t, NewQuery().Values())
}

func TestQueryNextResetsPage(t *testing.T) {
	prev := Query{Category: "Developer", Page: 3, PageSize: 9}

	same := Query{Category: "developer", Page: 3, PageSize: 9}.Next(prev)
	assert.Equal(t, 3, same.Page)

	moved := Query{Category: "Developer", Page: 2, PageSize: 9}.Next(prev)
	assert.Equal(t, 2, moved.Page)

	refiltered := Query{Category: "Design", Page: 3, PageSize: 9}.Next(prev)
	assert.Equal(t, 1, refiltered.Page)

	resorted := Query{Category: "Developer", SortBy: SortByTitle, Page: 3, PageSize: 9}.Next(prev)
	assert.Equal(t, 1, resorted.Page)
}
