package handler

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/golang-cafe/job-portal/internal/job"
	"github.com/golang-cafe/job-portal/internal/middleware"
	"github.com/golang-cafe/job-portal/internal/server"
	"github.com/golang-cafe/job-portal/internal/user"
)

func RegisterRoutes(svr server.Server, jobRepo *job.Repository, users *user.Registry) {
	signedIn := svr.Sessions()

	svr.RegisterRoute("/", IndexPageHandler(svr, jobRepo), []string{"GET"})
	svr.RegisterRoute("/jobs", ListJobsHandler(svr, jobRepo), []string{"GET"})
	svr.RegisterRoute("/job/{id}", JobHandler(svr, jobRepo), []string{"GET"})
	svr.RegisterRoute("/jobs/byCategory/{category}", JobsByHandler(svr, jobRepo.ListByCategory, "category"), []string{"GET"})
	svr.RegisterRoute("/jobs/byLocation/{location}", JobsByHandler(svr, jobRepo.ListByLocation, "location"), []string{"GET"})
	svr.RegisterRoute("/jobs/byJobRole/{jobRole}", JobsByHandler(svr, jobRepo.ListByJobRole, "jobRole"), []string{"GET"})

	svr.RegisterRoute("/login", GetAuthPageHandler(svr), []string{"GET"})
	svr.RegisterRoute("/login", LoginHandler(svr, users), []string{"POST"})
	svr.RegisterRoute("/register", RegisterHandler(svr, users), []string{"POST"})
	svr.RegisterRoute("/logout", LogoutHandler(svr), []string{"POST"})

	svr.RegisterRoute("/saved-jobs", middleware.SignedInMiddleware(signedIn, SavedJobsHandler(svr)), []string{"GET"})
	svr.RegisterRoute("/saved-jobs", middleware.SignedInMiddleware(signedIn, ClearSavedJobsHandler(svr)), []string{"DELETE"})
	svr.RegisterRoute("/saved-jobs/{id}", middleware.SignedInMiddleware(signedIn, SaveJobHandler(svr, jobRepo)), []string{"POST"})
	svr.RegisterRoute("/saved-jobs/{id}", middleware.SignedInMiddleware(signedIn, UnsaveJobHandler(svr)), []string{"DELETE"})
	svr.RegisterRoute("/job/{id}/apply", middleware.SignedInMiddleware(signedIn, ApplyForJobHandler(svr, jobRepo)), []string{"POST"})
	svr.RegisterRoute("/applications", middleware.SignedInMiddleware(signedIn, ApplicationsHandler(svr)), []string{"GET"})

	// admin pages only check for a signed in user
	svr.RegisterRoute("/admin", middleware.SignedInMiddleware(signedIn, AdminDashboardHandler(svr, jobRepo)), []string{"GET"})
	svr.RegisterRoute("/admin/jobs", middleware.SignedInMiddleware(signedIn, CreateJobHandler(svr, jobRepo)), []string{"POST"})
	svr.RegisterRoute("/admin/jobs/{id}", middleware.SignedInMiddleware(signedIn, UpdateJobHandler(svr, jobRepo)), []string{"PUT"})
	svr.RegisterRoute("/admin/jobs/{id}", middleware.SignedInMiddleware(signedIn, DeleteJobHandler(svr, jobRepo)), []string{"DELETE"})

	svr.RegisterRoute("/rss", ServeRSSFeed(svr, jobRepo), []string{"GET"})
	svr.RegisterRoute("/sitemap.xml", SitemapHandler(svr, jobRepo), []string{"GET"})
	svr.RegisterPathPrefix("/metrics", promhttp.Handler(), []string{"GET"})
}
