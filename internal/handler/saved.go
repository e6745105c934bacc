package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/golang-cafe/job-portal/internal/job"
	"github.com/golang-cafe/job-portal/internal/server"
)

func SavedJobsHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := r.URL.Query().Get("search")
		t := tracker(svr, r)
		all := t.Saved(r.Context())
		saved := t.SearchSaved(r.Context(), term)
		svr.JSON(w, http.StatusOK, map[string]interface{}{
			"savedJobs": saved,
			"total":     len(all),
			"matched":   len(saved),
			"search":    term,
		})
	}
}

func ClearSavedJobsHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := tracker(svr, r).ClearSaved(r.Context()); err != nil {
			svr.Log(err, "unable to clear saved jobs")
			svr.Error(w, http.StatusInternalServerError, "Failed to clear saved jobs")
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{
			"savedJobs": []interface{}{},
			"total":     0,
		})
	}
}

func SaveJobHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := job.ID(mux.Vars(r)["id"])
		j, o, err := jobRepo.GetJob(r.Context(), id)
		setSource(w, o)
		if err != nil {
			svr.Error(w, http.StatusNotFound, "Job not found")
			return
		}
		created, err := tracker(svr, r).Save(r.Context(), j)
		if err != nil {
			svr.Log(err, "unable to save job")
			svr.Error(w, http.StatusInternalServerError, "Failed to save job")
			return
		}
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		svr.JSON(w, status, map[string]interface{}{
			"id":       j.ID,
			"saved":    true,
			"created":  created,
			"degraded": o.Degraded(),
		})
	}
}

func UnsaveJobHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := job.ID(mux.Vars(r)["id"])
		if err := tracker(svr, r).Unsave(r.Context(), id); err != nil {
			svr.Log(err, "unable to remove saved job")
			svr.Error(w, http.StatusInternalServerError, "Failed to remove saved job")
			return
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{
			"id":    id,
			"saved": false,
		})
	}
}

func ApplicationsHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apps := tracker(svr, r).Applications(r.Context())
		svr.JSON(w, http.StatusOK, map[string]interface{}{
			"applications": apps,
			"total":        len(apps),
		})
	}
}
