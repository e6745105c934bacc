package handler

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/golang-cafe/job-portal/internal/job"
	"github.com/golang-cafe/job-portal/internal/search"
	"github.com/golang-cafe/job-portal/internal/server"
)

func IndexPageHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := jobRepo.Snapshot(r.Context())
		sess := svr.Session(r)
		setSource(w, snap.Outcome)
		svr.JSON(w, http.StatusOK, map[string]interface{}{
			"siteName":     svr.GetConfig().SiteName,
			"jobCount":     len(snap.Jobs),
			"jobCountText": svr.HumanNumber(len(snap.Jobs)),
			"stats":        search.Summarize(snap.Jobs, nowFunc()),
			"signedIn":     sess.SignedIn(),
			"user":         sess.User,
			"degraded":     snap.Outcome.Degraded(),
		})
	}
}

func listingCacheKey(generation uint64, q search.Query) string {
	return fmt.Sprintf("listing:%d:%s", generation, q.Signature())
}

// listing filters and sorts the snapshot for q, reusing the order cached for
// the same snapshot generation and filters.
func listing(svr server.Server, snap job.Snapshot, q search.Query) *search.Listing {
	key := listingCacheKey(snap.Generation, q)
	if b, ok := svr.CacheGet(key); ok {
		var order []job.ID
		err := gob.NewDecoder(bytes.NewReader(b)).Decode(&order)
		if err == nil {
			return search.Restore(snap.Jobs, q, order)
		}
		svr.Log(err, "unable to decode cached listing")
	}
	l := search.NewListing(snap.Jobs, q)
	buf := &bytes.Buffer{}
	if err := gob.NewEncoder(buf).Encode(l.Matched()); err != nil {
		svr.Log(err, "unable to encode listing")
		return l
	}
	if err := svr.CacheSet(key, buf.Bytes()); err != nil {
		svr.Log(err, "unable to cache listing")
	}
	return l
}

func ListJobsHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := search.ParseQuery(r.URL.Query(), svr.GetConfig().JobsPerPage)
		snap := jobRepo.Snapshot(r.Context())
		res := listing(svr, snap, q).Result()
		state := tracker(svr, r).State(r.Context())
		setSource(w, snap.Outcome)
		svr.JSON(w, http.StatusOK, map[string]interface{}{
			"jobs":       newJobViews(svr, res.Jobs, state),
			"total":      res.Total,
			"totalPages": res.TotalPages,
			"page":       res.Page,
			"pageSize":   res.PageSize,
			"query":      q.Values(),
			"degraded":   snap.Outcome.Degraded(),
		})
	}
}

func JobHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := job.ID(mux.Vars(r)["id"])
		j, o, err := jobRepo.GetJob(r.Context(), id)
		setSource(w, o)
		if err != nil {
			svr.JSON(w, http.StatusNotFound, map[string]interface{}{
				"error":    "Job not found",
				"degraded": o.Degraded(),
			})
			return
		}
		state := tracker(svr, r).State(r.Context())
		svr.JSON(w, http.StatusOK, map[string]interface{}{
			"job":      newJobView(svr, j, state, nowFunc()),
			"degraded": o.Degraded(),
		})
	}
}

type listByFunc func(ctx context.Context, value string) ([]*job.Job, job.Outcome)

// JobsByHandler serves the remote service's filtered lists; var names the
// route variable carrying the value.
func JobsByHandler(svr server.Server, list listByFunc, varName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value := mux.Vars(r)[varName]
		jobs, o := list(r.Context(), value)
		jobs = search.Sort(jobs, search.SortByDate)
		state := tracker(svr, r).State(r.Context())
		setSource(w, o)
		svr.JSON(w, http.StatusOK, map[string]interface{}{
			"jobs":     newJobViews(svr, jobs, state),
			"total":    len(jobs),
			varName:    value,
			"degraded": o.Degraded(),
		})
	}
}
