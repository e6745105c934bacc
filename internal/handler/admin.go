package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/golang-cafe/job-portal/internal/job"
	"github.com/golang-cafe/job-portal/internal/savedjobs"
	"github.com/golang-cafe/job-portal/internal/search"
	"github.com/golang-cafe/job-portal/internal/server"
)

func AdminDashboardHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := jobRepo.Snapshot(r.Context())
		jobs := search.Sort(snap.Jobs, search.SortByDate)
		setSource(w, snap.Outcome)
		svr.JSON(w, http.StatusOK, map[string]interface{}{
			"user":     profile(svr, r),
			"stats":    search.Summarize(snap.Jobs, nowFunc()),
			"jobs":     newJobViews(svr, jobs, savedjobs.State{}),
			"degraded": snap.Outcome.Degraded(),
		})
	}
}

func CreateJobHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		j := &job.Job{}
		if err := json.NewDecoder(r.Body).Decode(j); err != nil {
			svr.Error(w, http.StatusBadRequest, "Invalid job posting")
			return
		}
		j.ID = ""
		job.Sanitize(j)
		if missing := j.Missing(); len(missing) > 0 {
			svr.Error(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
			return
		}
		created, o, err := jobRepo.CreateJob(r.Context(), j)
		setSource(w, o)
		if err != nil {
			svr.Log(err, "unable to create job")
			svr.Error(w, http.StatusInternalServerError, "Failed to save job")
			return
		}
		svr.JSON(w, http.StatusCreated, map[string]interface{}{
			"job":      created,
			"message":  "Job added successfully!",
			"degraded": o.Degraded(),
		})
	}
}

func UpdateJobHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := job.ID(mux.Vars(r)["id"])
		p := job.Patch{}
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			svr.Error(w, http.StatusBadRequest, "Invalid job update")
			return
		}
		updated, o, err := jobRepo.UpdateJob(r.Context(), id, p)
		setSource(w, o)
		if err == job.ErrNotFound {
			svr.Error(w, http.StatusNotFound, "Job not found")
			return
		}
		if err != nil {
			svr.Log(err, "unable to update job")
			svr.Error(w, http.StatusInternalServerError, "Failed to save job")
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{
			"job":      updated,
			"message":  "Job updated successfully!",
			"degraded": o.Degraded(),
		})
	}
}

func DeleteJobHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := job.ID(mux.Vars(r)["id"])
		o, err := jobRepo.DeleteJob(r.Context(), id)
		setSource(w, o)
		if err == job.ErrNotFound {
			svr.Error(w, http.StatusNotFound, "Job not found")
			return
		}
		if err != nil {
			svr.Log(err, "unable to delete job")
			svr.Error(w, http.StatusInternalServerError, "Failed to delete job")
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{
			"id":       id,
			"message":  "Job deleted successfully!",
			"degraded": o.Degraded(),
		})
	}
}
