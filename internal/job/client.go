package job

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Remote is the external job service.
type Remote interface {
	All(ctx context.Context) ([]*Job, error)
	Get(ctx context.Context, id ID) (*Job, error)
	ByCategory(ctx context.Context, category string) ([]*Job, error)
	ByLocation(ctx context.Context, location string) ([]*Job, error)
	ByJobRole(ctx context.Context, role string) ([]*Job, error)
	Add(ctx context.Context, j *Job) (*Job, error)
	Update(ctx context.Context, id ID, p Patch) (*Job, error)
	Delete(ctx context.Context, id ID) error
}

// StatusError is returned for any non-2xx answer of the job service.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status code %d", e.Method, e.Path, e.Code)
}

// Client talks to the job service over HTTP. It never retries.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) All(ctx context.Context) ([]*Job, error) {
	var jobs []*Job
	err := c.do(ctx, http.MethodGet, "/jobs/all", nil, &jobs)
	return jobs, err
}

func (c *Client) Get(ctx context.Context, id ID) (*Job, error) {
	j := &Job{}
	if err := c.do(ctx, http.MethodGet, "/jobs/"+url.PathEscape(id.String()), nil, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (c *Client) ByCategory(ctx context.Context, category string) ([]*Job, error) {
	var jobs []*Job
	err := c.do(ctx, http.MethodGet, "/jobs/byCategory/"+url.PathEscape(category), nil, &jobs)
	return jobs, err
}

func (c *Client) ByLocation(ctx context.Context, location string) ([]*Job, error) {
	var jobs []*Job
	err := c.do(ctx, http.MethodGet, "/jobs/byLocation/"+url.PathEscape(location), nil, &jobs)
	return jobs, err
}

func (c *Client) ByJobRole(ctx context.Context, role string) ([]*Job, error) {
	var jobs []*Job
	err := c.do(ctx, http.MethodGet, "/jobs/byJobRole/"+url.PathEscape(role), nil, &jobs)
	return jobs, err
}

func (c *Client) Add(ctx context.Context, j *Job) (*Job, error) {
	created := &Job{}
	if err := c.do(ctx, http.MethodPost, "/jobs/add", j, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *Client) Update(ctx context.Context, id ID, p Patch) (*Job, error) {
	updated := &Job{}
	if err := c.do(ctx, http.MethodPut, "/jobs/update/"+url.PathEscape(id.String()), p, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *Client) Delete(ctx context.Context, id ID) error {
	return c.do(ctx, http.MethodDelete, "/jobs/delete/"+url.PathEscape(id.String()), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "unable to encode %s %s body", method, path)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s %s request", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		io.Copy(io.Discard, res.Body)
		return &StatusError{Method: method, Path: path, Code: res.StatusCode}
	}
	if out == nil {
		io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "unable to decode %s %s response", method, path)
	}
	return nil
}
