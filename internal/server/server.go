package server

import (
	"encoding/json"
	"fmt"
	stdtemplate "html/template"
	"net/http"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/getsentry/raven-go"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/golang-cafe/job-portal/internal/config"
	"github.com/golang-cafe/job-portal/internal/middleware"
	"github.com/golang-cafe/job-portal/internal/session"
	"github.com/golang-cafe/job-portal/internal/storage"
	"github.com/golang-cafe/job-portal/internal/template"
)

type Server struct {
	cfg      config.Config
	router   *mux.Router
	tmpl     *template.Template
	sessions *session.Manager
	bigCache *bigcache.BigCache
	logger   zerolog.Logger
}

func NewServer(
	cfg config.Config,
	r *mux.Router,
	t *template.Template,
	sessions *session.Manager,
	bigCache *bigcache.BigCache,
	logger zerolog.Logger,
) Server {
	raven.SetDSN(cfg.SentryDSN)

	return Server{
		cfg:      cfg,
		router:   r,
		tmpl:     t,
		sessions: sessions,
		bigCache: bigCache,
		logger:   logger,
	}
}

func (s Server) RegisterRoute(path string, handler func(w http.ResponseWriter, r *http.Request), methods []string) {
	s.router.HandleFunc(path, handler).Methods(methods...)
}

func (s Server) RegisterPathPrefix(path string, handler http.Handler, methods []string) {
	s.router.PathPrefix(path).Handler(handler).Methods(methods...)
}

func (s Server) MarkdownToHTML(str string) stdtemplate.HTML {
	return s.tmpl.MarkdownToHTML(str)
}

func (s Server) HumanTimeSince(at, now time.Time) string {
	return s.tmpl.HumanTimeSince(at, now)
}

func (s Server) HumanNumber(n int) string {
	return s.tmpl.HumanNumber(n)
}

func (s Server) GetConfig() config.Config {
	return s.cfg
}

func (s Server) GetLogger() zerolog.Logger {
	return s.logger
}

func (s Server) Sessions() *session.Manager {
	return s.sessions
}

// Session returns the caller's session, loading it when no middleware did.
func (s Server) Session(r *http.Request) session.Session {
	if sess, ok := session.FromContext(r.Context()); ok {
		return sess
	}
	return s.sessions.Load(r)
}

// Storage is the store partition of the caller's session.
func (s Server) Storage(r *http.Request) storage.Store {
	return s.sessions.Storage(s.Session(r))
}

func (s Server) XML(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(status)
	w.Write(data)
}

func (s Server) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func (s Server) TEXT(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(status)
	w.Write([]byte(text))
}

func (s Server) Error(w http.ResponseWriter, status int, msg string) {
	s.JSON(w, status, map[string]string{"error": msg})
}

func (s Server) Log(err error, msg string) {
	raven.CaptureErrorAndWait(err, map[string]string{"ctx": msg})
	s.logger.Error().Err(err).Msg(msg)
}

// Handler is the router wrapped in every middleware Run serves with.
func (s Server) Handler() http.Handler {
	return middleware.HTTPSMiddleware(
		middleware.LoggingMiddleware(
			middleware.HeadersMiddleware(
				middleware.SessionMiddleware(s.router, s.sessions, s.logger),
				s.cfg.Env,
			),
			s.logger,
		),
		s.cfg.Env,
	)
}

func (s Server) Run() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	if s.cfg.Env == "dev" {
		s.logger.Info().Msgf("local env http://localhost:%s", s.cfg.Port)
		addr = fmt.Sprintf("localhost:%s", s.cfg.Port)
	}
	return http.ListenAndServe(addr, s.Handler())
}

func (s Server) CacheGet(key string) ([]byte, bool) {
	if s.bigCache == nil {
		return []byte{}, false
	}
	out, err := s.bigCache.Get(key)
	if err != nil {
		return []byte{}, false
	}
	return out, true
}

func (s Server) CacheSet(key string, val []byte) error {
	if s.bigCache == nil {
		return nil
	}
	return s.bigCache.Set(key, val)
}
