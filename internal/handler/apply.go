package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/golang-cafe/job-portal/internal/job"
	"github.com/golang-cafe/job-portal/internal/metrics"
	"github.com/golang-cafe/job-portal/internal/savedjobs"
	"github.com/golang-cafe/job-portal/internal/server"
)

// formOverhead is what an application form may carry beside the resume.
const formOverhead = 1 << 20

func parseSubmission(r *http.Request) (savedjobs.Submission, error) {
	s := savedjobs.Submission{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(formOverhead); err != nil {
			return s, err
		}
	} else if err := r.ParseForm(); err != nil {
		return s, err
	}
	s.Name = r.FormValue("name")
	s.Email = r.FormValue("email")
	s.Phone = r.FormValue("phone")
	s.Experience = r.FormValue("experience")
	s.CoverLetter = r.FormValue("coverLetter")
	if r.MultipartForm != nil {
		if files := r.MultipartForm.File["resume"]; len(files) > 0 {
			s.ResumeFileName = files[0].Filename
			s.ResumeSize = files[0].Size
		}
	}
	return s, nil
}

func ApplyForJobHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := svr.GetConfig()
		r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxResumeSize+formOverhead)
		sub, err := parseSubmission(r)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				svr.Error(w, http.StatusRequestEntityTooLarge, savedjobs.ErrResumeTooLarge(cfg.MaxResumeSize).Error())
				return
			}
			svr.Error(w, http.StatusBadRequest, "Invalid application form")
			return
		}
		if err := sub.Validate(cfg.MaxResumeSize); err != nil {
			status := http.StatusBadRequest
			var verr *savedjobs.ValidationError
			if errors.As(err, &verr) && verr.TooLarge {
				status = http.StatusRequestEntityTooLarge
			}
			svr.Error(w, status, err.Error())
			return
		}
		id := job.ID(mux.Vars(r)["id"])
		j, o, err := jobRepo.GetJob(r.Context(), id)
		setSource(w, o)
		if err != nil {
			svr.Error(w, http.StatusNotFound, "Job not found")
			return
		}
		if cfg.ApplyDelay > 0 {
			select {
			case <-time.After(cfg.ApplyDelay):
			case <-r.Context().Done():
				logger := svr.GetLogger()
				logger.Info().Str("job", id.String()).Msg("application cancelled by client")
				return
			}
		}
		app, err := tracker(svr, r).RecordApplication(r.Context(), sub.Application(j))
		if err != nil {
			svr.Log(err, "unable to record application")
			svr.Error(w, http.StatusInternalServerError, "Failed to submit application")
			return
		}
		metrics.ApplicationsRecorded.Inc()
		svr.JSON(w, http.StatusCreated, map[string]interface{}{
			"application": app,
			"message":     "Application submitted successfully!",
			"degraded":    o.Degraded(),
		})
	}
}
