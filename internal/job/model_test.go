package job

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDAcceptsNumbersAndStrings(t *testing.T) {
	var jobs []Job
	err := json.Unmarshal([]byte(`[{"id": 42}, {"id": "abc-1"}, {"id": 1705312800000}]`), &jobs)
	require.NoError(t, err)

	assert.Equal(t, ID("42"), jobs[0].ID)
	assert.Equal(t, ID("abc-1"), jobs[1].ID)
	assert.Equal(t, ID("1705312800000"), jobs[2].ID)
}

func TestIDMarshalKeepsNumericIDsNumeric(t *testing.T) {
	b, err := json.Marshal(struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}{"7", "x7", "007"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"a": 7, "b": "x7", "c": "007"}`, string(b))
}

func TestPatchApplyKeepsUntouchedFields(t *testing.T) {
	j := SampleJobs()[0]
	title := "Staff React Developer"

	Patch{JobTitle: &title}.Apply(j)

	assert.Equal(t, ID("1"), j.ID)
	assert.Equal(t, "Staff React Developer", j.JobTitle)
	assert.Equal(t, "TechCorp Inc.", j.CompanyName)
	assert.Equal(t, "2024-01-15", j.PostedDate)
	assert.Len(t, j.JobInfo.Requirements, 4)
}

func TestCloneDoesNotShareLists(t *testing.T) {
	j := SampleJobs()[0]
	c := j.Clone()
	c.JobInfo.Requirements[0] = "Vue"

	assert.Equal(t, "React.js", j.JobInfo.Requirements[0])
}

func TestPosted(t *testing.T) {
	j := &Job{PostedDate: "2024-01-10"}
	d, ok := j.Posted()
	require.True(t, ok)
	assert.Equal(t, 10, d.Day())

	j.PostedDate = "2024-01-10T08:00:00Z"
	_, ok = j.Posted()
	assert.True(t, ok)

	j.PostedDate = "last week"
	_, ok = j.Posted()
	assert.False(t, ok)
}

func TestSanitizeStripsMarkup(t *testing.T) {
	j := &Job{
		JobTitle: "<b>Go</b> Developer",
		JobInfo: Info{
			Description:  "Build <script>alert(1)</script>things & stuff",
			Requirements: []string{"Go", "  ", "<i>SQL</i>"},
		},
	}

	Sanitize(j)

	assert.Equal(t, "Go Developer", j.JobTitle)
	assert.Equal(t, "Build things & stuff", j.JobInfo.Description)
	assert.Equal(t, []string{"Go", "SQL"}, j.JobInfo.Requirements)
	assert.Equal(t, []string{}, j.JobInfo.Responsibilities)
}

func TestSanitizeStripsEncodedMarkup(t *testing.T) {
	j := &Job{
		JobTitle:    "&lt;script&gt;alert(1)&lt;/script&gt;Go Developer",
		CompanyName: "R&amp;D Labs",
		Location:    "&amp;lt;b&amp;gt;Pune",
		JobInfo: Info{
			Description:  "&lt;img src=x onerror=alert(1)&gt;Write Go",
			Requirements: []string{"&lt;i&gt;SQL&lt;/i&gt;", "a < b"},
		},
	}

	Sanitize(j)

	assert.Equal(t, "Go Developer", j.JobTitle)
	assert.Equal(t, "R&D Labs", j.CompanyName)
	assert.NotContains(t, j.Location, "<")
	assert.Equal(t, "Write Go", j.JobInfo.Description)
	assert.Equal(t, []string{"SQL", "a < b"}, j.JobInfo.Requirements)

	title := "&lt;b&gt;Lead&lt;/b&gt;"
	p := Patch{JobTitle: &title}
	p.Sanitize()
	assert.Equal(t, "Lead", *p.JobTitle)
}

func TestMissing(t *testing.T) {
	assert.Empty(t, SampleJobs()[0].Missing())

	j := SampleJobs()[1]
	j.JobTitle = " "
	j.Salary = ""
	j.JobInfo.Description = ""
	assert.Equal(t, []string{"jobTitle", "salary", "jobInfo.description"}, j.Missing())
}
