package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/feeds"
	"github.com/snabb/sitemap"

	"github.com/golang-cafe/job-portal/internal/job"
	"github.com/golang-cafe/job-portal/internal/search"
	"github.com/golang-cafe/job-portal/internal/server"
)

const rssFeedSize = 20

func ServeRSSFeed(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := svr.GetConfig()
		snap := jobRepo.Snapshot(r.Context())
		q := search.ParseQuery(r.URL.Query(), rssFeedSize)
		q.Page = 1
		res := search.Apply(snap.Jobs, q)
		now := nowFunc()
		site := fmt.Sprintf("%s://%s", cfg.URLProtocol, cfg.SiteHost)
		feed := &feeds.Feed{
			Title:       cfg.SiteName + " Jobs",
			Link:        &feeds.Link{Href: site},
			Description: "Latest jobs on " + cfg.SiteName,
			Author:      &feeds.Author{Name: cfg.SiteName},
			Created:     now,
		}
		for _, j := range res.Jobs {
			created, ok := j.Posted()
			if !ok {
				created = now
			}
			feed.Items = append(feed.Items, &feeds.Item{
				Id:          jobSlug(j),
				Title:       fmt.Sprintf("%s with %s - %s", j.JobTitle, j.CompanyName, j.Location),
				Link:        &feeds.Link{Href: jobURL(svr, j)},
				Description: string(svr.MarkdownToHTML(j.JobInfo.Description + "\n\n**Salary:** " + j.Salary)),
				Author:      &feeds.Author{Name: j.CompanyName},
				Created:     created,
			})
		}
		rssFeed, err := feed.ToRss()
		if err != nil {
			svr.Log(err, "unable to convert rss feed to xml")
			svr.XML(w, http.StatusInternalServerError, []byte{})
			return
		}
		setSource(w, snap.Outcome)
		svr.XML(w, http.StatusOK, []byte(rssFeed))
	}
}

func SitemapHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := svr.GetConfig()
		snap := jobRepo.Snapshot(r.Context())
		now := nowFunc()
		site := fmt.Sprintf("%s://%s", cfg.URLProtocol, cfg.SiteHost)
		sitemapFile := sitemap.New()
		sitemapFile.Add(&sitemap.URL{Loc: site + "/", LastMod: &now, ChangeFreq: sitemap.ChangeFreq("daily")})
		sitemapFile.Add(&sitemap.URL{Loc: site + "/jobs", LastMod: &now, ChangeFreq: sitemap.ChangeFreq("hourly")})
		for _, j := range search.Sort(snap.Jobs, search.SortByDate) {
			u := &sitemap.URL{Loc: jobURL(svr, j), ChangeFreq: sitemap.ChangeFreq("weekly")}
			if t, ok := j.Posted(); ok {
				lastMod := t.UTC().Truncate(24 * time.Hour)
				u.LastMod = &lastMod
			}
			sitemapFile.Add(u)
		}
		buf := new(bytes.Buffer)
		if _, err := sitemapFile.WriteTo(buf); err != nil {
			svr.Log(err, "sitemapFile.WriteTo")
			svr.TEXT(w, http.StatusInternalServerError, "unable to save sitemap file")
			return
		}
		setSource(w, snap.Outcome)
		svr.XML(w, http.StatusOK, buf.Bytes())
	}
}
