package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gosimple/slug"

	"github.com/golang-cafe/job-portal/internal/job"
	"github.com/golang-cafe/job-portal/internal/savedjobs"
	"github.com/golang-cafe/job-portal/internal/server"
)

const headerDataSource = "X-Data-Source"

var nowFunc = time.Now

// JobView is a posting as the job views show it.
type JobView struct {
	*job.Job
	Slug            string `json:"slug"`
	URL             string `json:"url"`
	PostedAgo       string `json:"postedAgo,omitempty"`
	DescriptionHTML string `json:"descriptionHtml"`
	Saved           bool   `json:"saved"`
	Applied         bool   `json:"applied"`
}

func jobSlug(j *job.Job) string {
	return slug.Make(fmt.Sprintf("%s %s %s", j.JobTitle, j.CompanyName, j.ID))
}

func jobURL(svr server.Server, j *job.Job) string {
	cfg := svr.GetConfig()
	return fmt.Sprintf("%s://%s/job/%s", cfg.URLProtocol, cfg.SiteHost, j.ID)
}

func newJobView(svr server.Server, j *job.Job, state savedjobs.State, now time.Time) JobView {
	v := JobView{
		Job:             j,
		Slug:            jobSlug(j),
		URL:             jobURL(svr, j),
		DescriptionHTML: string(svr.MarkdownToHTML(j.JobInfo.Description)),
		Saved:           state.Saved(j.ID),
		Applied:         state.Applied(j.ID),
	}
	if t, ok := j.Posted(); ok {
		v.PostedAgo = svr.HumanTimeSince(t, now)
	}
	return v
}

func newJobViews(svr server.Server, jobs []*job.Job, state savedjobs.State) []JobView {
	now := nowFunc()
	views := make([]JobView, 0, len(jobs))
	for _, j := range jobs {
		views = append(views, newJobView(svr, j, state, now))
	}
	return views
}

func tracker(svr server.Server, r *http.Request) *savedjobs.Tracker {
	return savedjobs.NewTracker(svr.Storage(r))
}

// setSource tells the client where the data of the response came from.
func setSource(w http.ResponseWriter, o job.Outcome) {
	if o.Source != "" {
		w.Header().Set(headerDataSource, string(o.Source))
	}
}
