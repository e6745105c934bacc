package job

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

const maxCleanPasses = 4

// clean returns s as plain text. Entities are decoded so "R&D" is stored as
// typed, and the policy runs again on the decoded text until it no longer
// changes, so encoded markup cannot come back as tags.
func clean(s string) string {
	for i := 0; i < maxCleanPasses; i++ {
		next := html.UnescapeString(strictPolicy.Sanitize(s))
		if next == s {
			return strings.TrimSpace(next)
		}
		s = next
	}
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if c := clean(item); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func cleanPtr(s *string) {
	if s != nil {
		*s = clean(*s)
	}
}

// Sanitize strips markup from every free text field of j and drops blank
// requirement and responsibility lines.
func Sanitize(j *Job) {
	j.JobTitle = clean(j.JobTitle)
	j.CompanyName = clean(j.CompanyName)
	j.Location = clean(j.Location)
	j.JobRole = clean(j.JobRole)
	j.Category = clean(j.Category)
	j.Experience = clean(j.Experience)
	j.Salary = clean(j.Salary)
	j.JobType = clean(j.JobType)
	j.PostedDate = clean(j.PostedDate)
	j.JobInfo.Description = clean(j.JobInfo.Description)
	j.JobInfo.Requirements = cleanList(j.JobInfo.Requirements)
	j.JobInfo.Responsibilities = cleanList(j.JobInfo.Responsibilities)
}

func (p *Patch) Sanitize() {
	cleanPtr(p.JobTitle)
	cleanPtr(p.CompanyName)
	cleanPtr(p.Location)
	cleanPtr(p.JobRole)
	cleanPtr(p.Category)
	cleanPtr(p.Experience)
	cleanPtr(p.Salary)
	cleanPtr(p.JobType)
	cleanPtr(p.PostedDate)
	if p.JobInfo != nil {
		info := *p.JobInfo
		info.Description = clean(info.Description)
		info.Requirements = cleanList(info.Requirements)
		info.Responsibilities = cleanList(info.Responsibilities)
		p.JobInfo = &info
	}
}
