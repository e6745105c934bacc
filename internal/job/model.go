package job

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	JobTypeFullTime = "Full-time"
	JobTypePartTime = "Part-time"
	JobTypeContract = "Contract"
	JobTypeRemote   = "Remote"

	// DateLayout is the calendar date format of PostedDate.
	DateLayout = "2006-01-02"
)

var ErrNotFound = errors.New("job not found")

// ID identifies a job posting. The remote service may hand out numeric or
// opaque ids, so ids are compared by their string form.
type ID string

func (id ID) String() string {
	return string(id)
}

func (id ID) MarshalJSON() ([]byte, error) {
	if isNumeric(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return errors.Wrap(err, "invalid job id")
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.Wrap(err, "invalid job id")
	}
	*id = ID(n.String())
	return nil
}

func isNumeric(s string) bool {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

type Info struct {
	Description      string   `json:"description"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
}

type Job struct {
	ID          ID     `json:"id"`
	JobTitle    string `json:"jobTitle"`
	CompanyName string `json:"companyName"`
	Location    string `json:"location"`
	JobRole     string `json:"jobRole"`
	Category    string `json:"category"`
	Experience  string `json:"experience"`
	Salary      string `json:"salary"`
	JobType     string `json:"jobType"`
	JobInfo     Info   `json:"jobInfo"`
	PostedDate  string `json:"postedDate"`
}

// Posted parses PostedDate as a calendar date. Full RFC3339 timestamps are
// accepted as well.
func (j *Job) Posted() (time.Time, bool) {
	d := strings.TrimSpace(j.PostedDate)
	if t, err := time.Parse(DateLayout, d); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, d); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Missing lists the json names of the fields a posting cannot be published
// without.
func (j *Job) Missing() []string {
	required := []struct {
		name  string
		value string
	}{
		{"jobTitle", j.JobTitle},
		{"companyName", j.CompanyName},
		{"location", j.Location},
		{"jobRole", j.JobRole},
		{"category", j.Category},
		{"experience", j.Experience},
		{"salary", j.Salary},
		{"jobInfo.description", j.JobInfo.Description},
	}
	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func (j *Job) Clone() *Job {
	if j == nil {
		return nil
	}
	c := *j
	c.JobInfo.Requirements = copyStrings(j.JobInfo.Requirements)
	c.JobInfo.Responsibilities = copyStrings(j.JobInfo.Responsibilities)
	return &c
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}

func cloneAll(jobs []*Job) []*Job {
	out := make([]*Job, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.Clone())
	}
	return out
}

// Patch carries the fields of an update. Nil fields are left untouched.
type Patch struct {
	JobTitle    *string `json:"jobTitle,omitempty"`
	CompanyName *string `json:"companyName,omitempty"`
	Location    *string `json:"location,omitempty"`
	JobRole     *string `json:"jobRole,omitempty"`
	Category    *string `json:"category,omitempty"`
	Experience  *string `json:"experience,omitempty"`
	Salary      *string `json:"salary,omitempty"`
	JobType     *string `json:"jobType,omitempty"`
	JobInfo     *Info   `json:"jobInfo,omitempty"`
	PostedDate  *string `json:"postedDate,omitempty"`
}

// Apply merges p onto j. The id is never changed.
func (p Patch) Apply(j *Job) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&j.JobTitle, p.JobTitle)
	set(&j.CompanyName, p.CompanyName)
	set(&j.Location, p.Location)
	set(&j.JobRole, p.JobRole)
	set(&j.Category, p.Category)
	set(&j.Experience, p.Experience)
	set(&j.Salary, p.Salary)
	set(&j.JobType, p.JobType)
	set(&j.PostedDate, p.PostedDate)
	if p.JobInfo != nil {
		j.JobInfo = Info{
			Description:      p.JobInfo.Description,
			Requirements:     copyStrings(p.JobInfo.Requirements),
			Responsibilities: copyStrings(p.JobInfo.Responsibilities),
		}
	}
}

type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

// Outcome tells the caller where data came from. A fallback outcome carries
// the remote failure that caused it.
type Outcome struct {
	Source Source
	Reason error
}

func (o Outcome) Degraded() bool {
	return o.Source == SourceFallback
}

func remoteOutcome() Outcome {
	return Outcome{Source: SourceRemote}
}

func fallbackOutcome(reason error) Outcome {
	return Outcome{Source: SourceFallback, Reason: reason}
}
