package job

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// SampleJobs returns the fixed postings served while the job service is
// unavailable.
func SampleJobs() []*Job {
	return []*Job{
		{
			ID:          "1",
			JobTitle:    "Senior React Developer",
			CompanyName: "TechCorp Inc.",
			Location:    "Pune",
			JobRole:     "React Developer",
			Category:    "Developer",
			Experience:  "3-5 years",
			Salary:      "₹15-25 LPA",
			JobType:     JobTypeFullTime,
			JobInfo: Info{
				Description:      "We are looking for a Senior React Developer to join our team.",
				Requirements:     []string{"React.js", "JavaScript", "HTML/CSS", "Node.js"},
				Responsibilities: []string{"Develop user interfaces", "Write clean code", "Collaborate with team"},
			},
			PostedDate: "2024-01-15",
		},
		{
			ID:          "2",
			JobTitle:    "Java Developer",
			CompanyName: "SoftSolutions",
			Location:    "Mumbai",
			JobRole:     "Java Developer",
			Category:    "Developer",
			Experience:  "2-4 years",
			Salary:      "₹12-20 LPA",
			JobType:     JobTypeFullTime,
			JobInfo: Info{
				Description:      "Looking for experienced Java developers.",
				Requirements:     []string{"Java", "Spring Boot", "MySQL", "REST APIs"},
				Responsibilities: []string{"Backend development", "API integration", "Database design"},
			},
			PostedDate: "2024-01-14",
		},
		{
			ID:          "3",
			JobTitle:    "UI/UX Designer",
			CompanyName: "DesignStudio",
			Location:    "Bangalore",
			JobRole:     "Designer",
			Category:    "Design",
			Experience:  "1-3 years",
			Salary:      "₹8-15 LPA",
			JobType:     JobTypeFullTime,
			JobInfo: Info{
				Description:      "Creative UI/UX Designer needed for innovative projects.",
				Requirements:     []string{"Figma", "Adobe XD", "Photoshop", "User Research"},
				Responsibilities: []string{"Design interfaces", "User research", "Prototyping"},
			},
			PostedDate: "2024-01-13",
		},
	}
}

// fallbackList is the in-process stand-in for the job service. Writes are
// kept in memory only and are lost on restart.
type fallbackList struct {
	mu     sync.RWMutex
	jobs   []*Job
	lastID int64
	now    func() time.Time
}

func newFallbackList(jobs []*Job) *fallbackList {
	return &fallbackList{jobs: cloneAll(jobs), now: time.Now}
}

func (f *fallbackList) all() []*Job {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return cloneAll(f.jobs)
}

func (f *fallbackList) find(id ID) (*Job, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if i := f.index(id); i >= 0 {
		return f.jobs[i].Clone(), true
	}
	return nil, false
}

// matching returns the jobs whose field contains value, ignoring case.
func (f *fallbackList) matching(field func(*Job) string, value string) []*Job {
	f.mu.RLock()
	defer f.mu.RUnlock()
	needle := strings.ToLower(value)
	out := []*Job{}
	for _, j := range f.jobs {
		if strings.Contains(strings.ToLower(field(j)), needle) {
			out = append(out, j.Clone())
		}
	}
	return out
}

func (f *fallbackList) add(j *Job) *Job {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := j.Clone()
	c.ID = f.nextID()
	f.jobs = append(f.jobs, c)
	return c.Clone()
}

func (f *fallbackList) update(id ID, p Patch) (*Job, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.index(id)
	if i < 0 {
		return nil, false
	}
	p.Apply(f.jobs[i])
	return f.jobs[i].Clone(), true
}

func (f *fallbackList) remove(id ID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.index(id)
	if i < 0 {
		return false
	}
	f.jobs = append(f.jobs[:i], f.jobs[i+1:]...)
	return true
}

func (f *fallbackList) index(id ID) int {
	for i, j := range f.jobs {
		if j.ID == id {
			return i
		}
	}
	return -1
}

// nextID hands out millisecond timestamps, bumped past the previous id so
// two creations within the same millisecond stay distinct.
func (f *fallbackList) nextID() ID {
	id := f.now().UnixMilli()
	if id <= f.lastID {
		id = f.lastID + 1
	}
	f.lastID = id
	return ID(strconv.FormatInt(id, 10))
}
