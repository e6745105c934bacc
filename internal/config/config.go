package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

type Config struct {
	Port           string
	Env            string // either prod or dev, will disable https and few other bits
	SessionKey     []byte
	JwtSigningKey  []byte
	JobsAPIURL     string        // base url of the remote job service
	JobsAPITimeout time.Duration // per request timeout against the job service
	JobsPerPage    int           // configures how many jobs are shown per page result
	JobsCacheTTL   time.Duration
	Store          string // either memory or redis
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	AdminEmail     string
	MaxResumeSize  int64         // largest accepted resume upload in bytes
	ApplyDelay     time.Duration // artificial wait before an application is recorded
	SentryDSN      string
	SiteName       string // Job site name
	SiteHost       string // Job site hostname
	URLProtocol    string
}

func LoadConfig() (Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		return Config{}, fmt.Errorf("PORT cannot be empty")
	}
	env := strings.ToLower(os.Getenv("ENV"))
	if env == "" {
		env = "dev"
	}
	if env != "dev" && env != "prod" {
		return Config{}, fmt.Errorf("ENV must be either dev or prod, got %q", env)
	}
	sessionKeyString := os.Getenv("SESSION_KEY")
	if sessionKeyString == "" {
		return Config{}, fmt.Errorf("SESSION_KEY cannot be empty")
	}
	sessionKeyBytes, err := base64.StdEncoding.DecodeString(sessionKeyString)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to decode session key to bytes")
	}
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		return Config{}, fmt.Errorf("JWT_SIGNING_KEY cannot be empty")
	}
	jobsAPIURL := strings.TrimRight(envOr("JOBS_API_URL", "http://localhost:8082"), "/")
	jobsAPITimeout, err := time.ParseDuration(envOr("JOBS_API_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to parse JOBS_API_TIMEOUT")
	}
	jobsPerPage, err := strconv.Atoi(envOr("JOBS_PER_PAGE", "9"))
	if err != nil {
		return Config{}, fmt.Errorf("could not convert ascii to int: %v", err)
	}
	if jobsPerPage < 1 {
		return Config{}, fmt.Errorf("JOBS_PER_PAGE must be positive")
	}
	jobsCacheTTL, err := time.ParseDuration(envOr("JOBS_CACHE_TTL", "1m"))
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to parse JOBS_CACHE_TTL")
	}
	store := strings.ToLower(envOr("STORE", "memory"))
	if store != "memory" && store != "redis" {
		return Config{}, fmt.Errorf("STORE must be either memory or redis, got %q", store)
	}
	redisAddr := os.Getenv("REDIS_ADDR")
	if store == "redis" && redisAddr == "" {
		return Config{}, fmt.Errorf("REDIS_ADDR cannot be empty when STORE is redis")
	}
	redisDB, err := strconv.Atoi(envOr("REDIS_DB", "0"))
	if err != nil {
		return Config{}, fmt.Errorf("could not convert ascii to int: %v", err)
	}
	maxResumeSize, err := humanize.ParseBytes(envOr("MAX_RESUME_SIZE", "5MiB"))
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to parse MAX_RESUME_SIZE")
	}
	applyDelay, err := time.ParseDuration(envOr("APPLY_DELAY", "1500ms"))
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to parse APPLY_DELAY")
	}
	urlProtocol := "https"
	if env == "dev" {
		urlProtocol = "http"
	}

	return Config{
		Port:           port,
		Env:            env,
		SessionKey:     sessionKeyBytes,
		JwtSigningKey:  []byte(jwtSigningKey),
		JobsAPIURL:     jobsAPIURL,
		JobsAPITimeout: jobsAPITimeout,
		JobsPerPage:    jobsPerPage,
		JobsCacheTTL:   jobsCacheTTL,
		Store:          store,
		RedisAddr:      redisAddr,
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        redisDB,
		AdminEmail:     strings.ToLower(envOr("ADMIN_EMAIL", "admin@jobportal.com")),
		MaxResumeSize:  int64(maxResumeSize),
		ApplyDelay:     applyDelay,
		SentryDSN:      os.Getenv("SENTRY_DSN"),
		SiteName:       envOr("SITE_NAME", "Job Portal"),
		SiteHost:       envOr("SITE_HOST", "localhost:"+port),
		URLProtocol:    urlProtocol,
	}, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
