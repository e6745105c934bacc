package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/golang-cafe/job-portal/internal/job"
	"github.com/golang-cafe/job-portal/internal/search"
)

func main() {
	godotenv.Load()

	apiURL := os.Getenv("JOBS_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8082"
	}
	var (
		term     = flag.String("search", "", "match title, company or role")
		location = flag.String("location", "", "match location")
		category = flag.String("category", "", "match category")
		exp      = flag.String("experience", "", "match experience")
		jobType  = flag.String("jobType", "", "match job type")
		sortBy   = flag.String("sortBy", string(search.SortByDate), "date, company or title")
		page     = flag.Int("page", 1, "page to show")
		perPage  = flag.Int("perPage", search.DefaultPageSize, "jobs per page")
		timeout  = flag.Duration("timeout", 10*time.Second, "job service timeout")
	)
	flag.StringVar(&apiURL, "api", apiURL, "job service base url")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	repo := job.NewRepository(job.NewClient(apiURL, *timeout), job.WithLogger(logger))

	snap := repo.Snapshot(context.Background())
	if snap.Outcome.Degraded() {
		log.Printf("job service at %s not available, showing sample jobs", apiURL)
	}
	res := search.Apply(snap.Jobs, search.Query{
		SearchTerm: *term,
		Location:   *location,
		Category:   *category,
		Experience: *exp,
		JobType:    *jobType,
		SortBy:     search.SortBy(*sortBy),
		Page:       *page,
		PageSize:   *perPage,
	})

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tLOCATION\tSALARY\tPOSTED")
	for _, j := range res.Jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", j.ID, j.JobTitle, j.CompanyName, j.Location, j.Salary, j.PostedDate)
	}
	tw.Flush()
	fmt.Printf("\npage %d of %d, %s\n", res.Page, res.TotalPages, english.Plural(res.Total, "job", ""))
}
