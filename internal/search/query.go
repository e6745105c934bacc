package search

import (
	"net/url"
	"strconv"
	"strings"
)

type SortBy string

const (
	SortByDate    SortBy = "date"
	SortByCompany SortBy = "company"
	SortByTitle   SortBy = "title"
)

const DefaultPageSize = 9

var ValidSortBy = map[SortBy]struct{}{
	SortByDate:    {},
	SortByCompany: {},
	SortByTitle:   {},
}

// Query is the state of the jobs listing: the active filters, the sort key
// and the page being viewed.
type Query struct {
	SearchTerm string
	Location   string
	Category   string
	Experience string
	JobType    string
	SortBy     SortBy
	Page       int
	PageSize   int
}

func NewQuery() Query {
	return Query{SortBy: SortByDate, Page: 1, PageSize: DefaultPageSize}
}

func ParseQuery(query url.Values, pageSize int) Query {
	q := Query{
		SearchTerm: strings.TrimSpace(query.Get("search")),
		Location:   strings.TrimSpace(query.Get("location")),
		Category:   strings.TrimSpace(query.Get("category")),
		Experience: strings.TrimSpace(query.Get("experience")),
		JobType:    strings.TrimSpace(query.Get("jobType")),
		SortBy:     SortBy(query.Get("sortBy")),
		PageSize:   pageSize,
	}
	// a missing or garbled page is page 1
	page, _ := strconv.Atoi(query.Get("page"))
	q.Page = page
	return q.normalize()
}

func (q Query) normalize() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if _, ok := ValidSortBy[q.SortBy]; !ok {
		q.SortBy = SortByDate
	}
	return q
}

// Signature identifies the filtered and sorted set a query selects,
// independent of the page.
func (q Query) Signature() string {
	q = q.normalize()
	return strings.Join([]string{
		strings.ToLower(q.SearchTerm),
		strings.ToLower(q.Location),
		strings.ToLower(q.Category),
		strings.ToLower(q.Experience),
		strings.ToLower(q.JobType),
		string(q.SortBy),
	}, "\x1f")
}

// Next returns q with the page reset to 1 if any filter or the sort key
// differs from prev.
func (q Query) Next(prev Query) Query {
	if q.Signature() != prev.Signature() {
		q.Page = 1
	}
	return q.normalize()
}

// Values encodes q back into the listing's URL parameters, leaving out
// defaults.
func (q Query) Values() url.Values {
	v := url.Values{}
	set := func(k, s string) {
		if s != "" {
			v.Set(k, s)
		}
	}
	set("search", q.SearchTerm)
	set("location", q.Location)
	set("category", q.Category)
	set("experience", q.Experience)
	set("jobType", q.JobType)
	if q.SortBy != "" && q.SortBy != SortByDate {
		v.Set("sortBy", string(q.SortBy))
	}
	if q.Page > 1 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	return v
}
