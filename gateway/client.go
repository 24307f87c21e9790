// Package gateway is the portal's sole point of contact with the
// upstream ERP REST API. No other package constructs request URLs,
// header sets or error payloads.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/unitrack/portal/core"
)

type (
	Options struct {
		BaseURL    string
		Timeout    time.Duration
		CSRFCookie string
		CSRFHeader string
		Logger     core.Logger
		// HTTPClient overrides the default client (tests).
		HTTPClient *http.Client
	}

	Client struct {
		base       *url.URL
		http       *http.Client
		csrfCookie string
		csrfHeader string
		log        core.Logger
	}
)

func NewClient(opts *Options) (*Client, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parsing base URL")
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	if hc.Jar == nil {
		// credentials (cookies) are always carried across requests
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, errors.Wrap(err, "creating cookie jar")
		}
		hc.Jar = jar
	}

	csrfCookie := opts.CSRFCookie
	if csrfCookie == "" {
		csrfCookie = "csrftoken"
	}
	csrfHeader := opts.CSRFHeader
	if csrfHeader == "" {
		csrfHeader = "X-CSRFToken"
	}

	return &Client{
		base:       base,
		http:       hc,
		csrfCookie: csrfCookie,
		csrfHeader: csrfHeader,
		log:        opts.Logger,
	}, nil
}

// Request performs a single attempt against the upstream API and decodes
// the JSON response into out (when non-nil). 201/204 responses carry no
// payload worth decoding and leave out untouched. Non-2xx responses
// come back as *APIError; transport failures come back wrapped,
// unchanged underneath. Retry/backoff is the caller's business.
func (c *Client) Request(ctx context.Context, method, endpoint string, params map[string]string, body, out interface{}) error {
	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + endpoint
	if len(params) > 0 {
		q := make(url.Values, len(params))
		for k, v := range params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if token := c.csrfToken(); token != "" {
		req.Header.Set(c.csrfHeader, token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("upstream request failed", method, u.String(), err)
		return errors.Wrapf(err, "%s %s", method, endpoint)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(method, endpoint, resp.StatusCode, data)
		c.log.Error("upstream API error", resp.StatusCode, u.String(), apiErr.Body)
		return apiErr
	}

	// 201/204 carry no contract for a body; callers must not expect one
	if resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusNoContent || len(data) == 0 {
		return nil
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "decoding %s %s response", method, endpoint)
	}
	return nil
}

// csrfToken reads the upstream anti-forgery cookie out of the jar; empty
// when the upstream has not issued one yet.
func (c *Client) csrfToken() string {
	for _, ck := range c.http.Jar.Cookies(c.base) {
		if ck.Name == c.csrfCookie {
			return ck.Value
		}
	}
	return ""
}
