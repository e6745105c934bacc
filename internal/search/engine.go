package search

import (
	"sort"
	"strings"

	"github.com/golang-cafe/job-portal/internal/job"
)

type Result struct {
	Jobs       []*job.Job
	Total      int
	TotalPages int
	Page       int
	PageSize   int
}

// Apply filters, sorts and paginates jobs. The input slice is never
// modified.
func Apply(jobs []*job.Job, q Query) Result {
	q = q.normalize()
	matched := Sort(Filter(jobs, q), q.SortBy)
	return Paginate(matched, q.Page, q.PageSize)
}

// Filter keeps the jobs matching every non-empty field of q. Matching is a
// case-insensitive substring test; the search term matches the title, the
// company or the role.
func Filter(jobs []*job.Job, q Query) []*job.Job {
	term := strings.ToLower(q.SearchTerm)
	location := strings.ToLower(q.Location)
	category := strings.ToLower(q.Category)
	experience := strings.ToLower(q.Experience)
	jobType := strings.ToLower(q.JobType)

	out := make([]*job.Job, 0, len(jobs))
	for _, j := range jobs {
		if j == nil {
			continue
		}
		if term != "" && !contains(j.JobTitle, term) && !contains(j.CompanyName, term) && !contains(j.JobRole, term) {
			continue
		}
		if location != "" && !contains(j.Location, location) {
			continue
		}
		if category != "" && !contains(j.Category, category) {
			continue
		}
		if experience != "" && !contains(j.Experience, experience) {
			continue
		}
		if jobType != "" && !contains(j.JobType, jobType) {
			continue
		}
		out = append(out, j)
	}
	return out
}

func contains(field, needle string) bool {
	return strings.Contains(strings.ToLower(field), needle)
}

// Sort returns a stably sorted copy of jobs. Unknown keys sort by date.
func Sort(jobs []*job.Job, by SortBy) []*job.Job {
	out := make([]*job.Job, len(jobs))
	copy(out, jobs)
	switch by {
	case SortByCompany:
		sort.SliceStable(out, func(a, b int) bool {
			return lessFold(out[a].CompanyName, out[b].CompanyName)
		})
	case SortByTitle:
		sort.SliceStable(out, func(a, b int) bool {
			return lessFold(out[a].JobTitle, out[b].JobTitle)
		})
	default:
		sort.SliceStable(out, func(a, b int) bool {
			return newer(out[a], out[b])
		})
	}
	return out
}

// newer orders by posted date, most recent first. Jobs without a readable
// date go last.
func newer(a, b *job.Job) bool {
	ta, okA := a.Posted()
	tb, okB := b.Posted()
	switch {
	case okA && okB:
		return ta.After(tb)
	case okA:
		return true
	default:
		return false
	}
}

func lessFold(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

// Paginate slices out the requested page. Pages past the end are empty;
// pages below 1 are page 1.
func Paginate(jobs []*job.Job, page, pageSize int) Result {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	total := len(jobs)
	r := Result{
		Jobs:       []*job.Job{},
		Total:      total,
		TotalPages: (total + pageSize - 1) / pageSize,
		Page:       page,
		PageSize:   pageSize,
	}
	if page > r.TotalPages {
		return r
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	r.Jobs = jobs[start:end]
	return r
}
