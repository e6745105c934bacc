package savedjobs

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/golang-cafe/job-portal/internal/job"
)

// SavedJob is a copy of a posting taken when it was saved. Later edits to
// the posting do not reach it.
type SavedJob struct {
	job.Job
	SavedAt time.Time `json:"savedAt"`
}

type Applicant struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Experience  string `json:"experience"`
	CoverLetter string `json:"coverLetter"`
}

type Application struct {
	ID             string    `json:"id"`
	JobID          job.ID    `json:"jobId"`
	JobTitle       string    `json:"jobTitle"`
	CompanyName    string    `json:"companyName"`
	ApplicantInfo  Applicant `json:"applicantInfo"`
	ResumeFileName string    `json:"resumeFileName"`
	AppliedDate    time.Time `json:"appliedDate"`
}

// Submission is an application form as filled in by the job seeker. Only
// the name and size of the resume are kept.
type Submission struct {
	Applicant
	ResumeFileName string
	ResumeSize     int64
}

type ValidationError struct {
	Field    string
	Message  string
	TooLarge bool
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the required fields and that the resume is at most
// maxResume bytes.
func (s Submission) Validate(maxResume int64) error {
	required := []struct{ field, label, value string }{
		{"name", "Name", s.Name},
		{"email", "Email", s.Email},
		{"phone", "Phone", s.Phone},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{Field: r.field, Message: r.label + " is required"}
		}
	}
	if strings.TrimSpace(s.ResumeFileName) == "" {
		return &ValidationError{Field: "resume", Message: "Please upload your resume"}
	}
	if maxResume > 0 && s.ResumeSize > maxResume {
		return ErrResumeTooLarge(maxResume)
	}
	return nil
}

func ErrResumeTooLarge(maxResume int64) *ValidationError {
	return &ValidationError{
		Field:    "resume",
		Message:  fmt.Sprintf("Resume must be %s or smaller", humanize.IBytes(uint64(maxResume))),
		TooLarge: true,
	}
}

// Application builds the record of applying to j with s.
func (s Submission) Application(j *job.Job) Application {
	a := s.Applicant
	a.Name = strings.TrimSpace(a.Name)
	a.Email = strings.TrimSpace(a.Email)
	a.Phone = strings.TrimSpace(a.Phone)
	return Application{
		JobID:          j.ID,
		JobTitle:       j.JobTitle,
		CompanyName:    j.CompanyName,
		ApplicantInfo:  a,
		ResumeFileName: s.ResumeFileName,
	}
}
