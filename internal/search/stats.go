package search

import (
	"strings"
	"time"

	"github.com/golang-cafe/job-portal/internal/job"
)

type Stats struct {
	TotalJobs  int `json:"totalJobs"`
	Categories int `json:"categories"`
	Locations  int `json:"locations"`
	ThisWeek   int `json:"thisWeek"`
}

// Summarize counts jobs, distinct categories and locations, and the jobs
// posted no earlier than seven days before now.
func Summarize(jobs []*job.Job, now time.Time) Stats {
	categories := map[string]struct{}{}
	locations := map[string]struct{}{}
	weekAgo := now.AddDate(0, 0, -7)
	s := Stats{}
	for _, j := range jobs {
		if j == nil {
			continue
		}
		s.TotalJobs++
		if c := strings.TrimSpace(j.Category); c != "" {
			categories[c] = struct{}{}
		}
		if l := strings.TrimSpace(j.Location); l != "" {
			locations[l] = struct{}{}
		}
		if t, ok := j.Posted(); ok && !t.Before(weekAgo) {
			s.ThisWeek++
		}
	}
	s.Categories = len(categories)
	s.Locations = len(locations)
	return s
}
