package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-cafe/job-portal/internal/server"
	"github.com/golang-cafe/job-portal/internal/session"
	"github.com/golang-cafe/job-portal/internal/user"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Next     string `json:"next"`
}

func parseCredentials(r *http.Request) (credentials, error) {
	c := credentials{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		err := json.NewDecoder(r.Body).Decode(&c)
		return c, err
	}
	if err := r.ParseForm(); err != nil {
		return c, err
	}
	c.Email = r.FormValue("email")
	c.Password = r.FormValue("password")
	c.Next = r.FormValue("next")
	return c, nil
}

// safeNext keeps only local redirect targets.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/jobs"
	}
	return next
}

func GetAuthPageHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := svr.Session(r)
		svr.JSON(w, http.StatusOK, map[string]interface{}{
			"signedIn": sess.SignedIn(),
			"user":     sess.User,
			"next":     safeNext(r.URL.Query().Get("next")),
		})
	}
}

func signIn(svr server.Server, w http.ResponseWriter, r *http.Request, email, next string, status int) {
	sess := svr.Session(r)
	if err := svr.Sessions().SignIn(r.Context(), &sess, email); err != nil {
		svr.Log(err, "unable to sign in")
		svr.Error(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}
	if err := svr.Sessions().Save(w, r, sess); err != nil {
		svr.Log(err, "unable to save session")
		svr.Error(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}
	svr.JSON(w, status, map[string]interface{}{
		"user": sess.User,
		"next": safeNext(next),
	})
}

func LoginHandler(svr server.Server, users *user.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := parseCredentials(r)
		if err != nil {
			svr.Error(w, http.StatusBadRequest, "Invalid login request")
			return
		}
		u, err := users.Authenticate(r.Context(), c.Email, c.Password)
		switch err {
		case nil:
		case user.ErrMissingCredentials:
			svr.Error(w, http.StatusBadRequest, err.Error())
			return
		case user.ErrInvalidCredentials:
			svr.Error(w, http.StatusUnauthorized, err.Error())
			return
		default:
			svr.Log(err, "unable to authenticate user")
			svr.Error(w, http.StatusInternalServerError, "Failed to sign in")
			return
		}
		signIn(svr, w, r, u.Email, c.Next, http.StatusOK)
	}
}

func RegisterHandler(svr server.Server, users *user.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := parseCredentials(r)
		if err != nil {
			svr.Error(w, http.StatusBadRequest, "Invalid registration request")
			return
		}
		u, err := users.Register(r.Context(), c.Email, c.Password)
		switch err {
		case nil:
		case user.ErrMissingCredentials:
			svr.Error(w, http.StatusBadRequest, err.Error())
			return
		case user.ErrUserExists:
			svr.Error(w, http.StatusConflict, err.Error())
			return
		default:
			svr.Log(err, "unable to register user")
			svr.Error(w, http.StatusInternalServerError, "Failed to register")
			return
		}
		signIn(svr, w, r, u.Email, c.Next, http.StatusCreated)
	}
}

func LogoutHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := svr.Session(r)
		if err := svr.Sessions().SignOut(r.Context(), &sess); err != nil {
			svr.Log(err, "unable to sign out")
		}
		if err := svr.Sessions().Save(w, r, sess); err != nil {
			svr.Log(err, "unable to save session")
		}
		svr.JSON(w, http.StatusOK, map[string]interface{}{
			"signedIn": false,
		})
	}
}

// profile is the signed-in user of r; the signed-in middleware guarantees
// one.
func profile(svr server.Server, r *http.Request) *session.Profile {
	return svr.Session(r).User
}
