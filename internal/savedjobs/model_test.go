package savedjobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golang-cafe/job-portal/internal/job"
)

const fiveMiB = 5 << 20

func TestSubmissionValidate(t *testing.T) {
	valid := Submission{
		Applicant:      Applicant{Name: "Asha", Email: "asha@example.com", Phone: "9876543210"},
		ResumeFileName: "resume.pdf",
		ResumeSize:     1024,
	}
	assert.NoError(t, valid.Validate(fiveMiB))

	tests := []struct {
		name     string
		modify   func(*Submission)
		field    string
		tooLarge bool
	}{
		{"missing name", func(s *Submission) { s.Name = " " }, "name", false},
		{"missing email", func(s *Submission) { s.Email = "" }, "email", false},
		{"missing phone", func(s *Submission) { s.Phone = "" }, "phone", false},
		{"missing resume", func(s *Submission) { s.ResumeFileName = "" }, "resume", false},
		{"resume too large", func(s *Submission) { s.ResumeSize = fiveMiB + 1 }, "resume", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.modify(&s)
			err := s.Validate(fiveMiB)
			require.Error(t, err)
			verr, ok := err.(*ValidationError)
			require.True(t, ok)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.tooLarge, verr.TooLarge)
		})
	}

	s := valid
	s.ResumeSize = fiveMiB
	assert.NoError(t, s.Validate(fiveMiB))

	s.ResumeSize = fiveMiB + 1
	assert.EqualError(t, s.Validate(fiveMiB), "Resume must be 5.0 MiB or smaller")
}

func TestSubmissionApplication(t *testing.T) {
	s := Submission{
		Applicant:      Applicant{Name: " Asha ", Email: "asha@example.com", Phone: "1", CoverLetter: "Hi"},
		ResumeFileName: "cv.pdf",
	}
	a := s.Application(&job.Job{ID: "7", JobTitle: "Go Developer", CompanyName: "Gophers"})

	assert.Equal(t, job.ID("7"), a.JobID)
	assert.Equal(t, "Go Developer", a.JobTitle)
	assert.Equal(t, "Gophers", a.CompanyName)
	assert.Equal(t, "Asha", a.ApplicantInfo.Name)
	assert.Equal(t, "Hi", a.ApplicantInfo.CoverLetter)
	assert.Equal(t, "cv.pdf", a.ResumeFileName)
	assert.Empty(t, a.ID)
}
