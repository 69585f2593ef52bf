// Package httpclient provides the HTTP layer shared by every command:
// connection configuration, one transport client per backend service with
// retry, authentication, and TLS policy, and a closed error taxonomy so that
// callers never have to inspect raw HTTP failures themselves.
package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// retryAttempts is the total attempt budget per logical request, including
// the first try.
const retryAttempts = 3

// retryBaseDelay is the first backoff interval; subsequent intervals double.
// A variable so tests can shrink the curve.
var retryBaseDelay = time.Second

// retryableStatus lists response codes treated as transient. Anything else is
// returned to the caller on the first attempt.
var retryableStatus = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// RequestOptions describes a single request. Query and Body are optional;
// Timeout overrides the configured per-request timeout when positive.
type RequestOptions struct {
	Method  string
	Path    string // relative to the service's API root
	Query   map[string]string
	Body    []byte
	Timeout time.Duration
}

// Response is a normalized successful response. Non-2xx responses never reach
// the caller as a Response; they are translated into taxonomy errors.
type Response struct {
	StatusCode int
	Body       []byte
	Location   string
}

// Client is a transport client bound to one backend service. All clients in a
// process share one Config; the Manager creates and caches them.
type Client struct {
	config     *Config
	service    Service
	httpClient *http.Client
}

// NewClient builds a transport client for the given service. The TLS policy
// comes from the configuration: verification disabled when ValidateCerts is
// false, or a CA bundle replacing the system roots when one is configured.
func NewClient(cfg *Config, service Service) (*Client, error) {
	transport := &http.Transport{}
	if !cfg.ValidateCerts {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		log.Debug().Str("service", service.String()).Msg("server certificate verification disabled")
	} else if cfg.CABundle != "" {
		pem, err := os.ReadFile(cfg.CABundle)
		if err != nil {
			return nil, ErrConfiguration.MsgErr(fmt.Sprintf("unable to read CA bundle %s", cfg.CABundle), err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, ErrConfiguration.Msg(fmt.Sprintf("no certificates found in CA bundle %s", cfg.CABundle))
		}
		transport.TLSClientConfig = &tls.Config{RootCAs: pool}
	}

	return &Client{
		config:     cfg,
		service:    service,
		httpClient: &http.Client{Transport: transport},
	}, nil
}

// Service returns the backend service this client is bound to.
func (c *Client) Service() Service {
	return c.service
}

// Get issues a GET request with optional query parameters.
func (c *Client) Get(endpoint string, query map[string]string) (*Response, error) {
	return c.DoRequest(RequestOptions{Method: http.MethodGet, Path: endpoint, Query: query})
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(endpoint string, body []byte) (*Response, error) {
	return c.DoRequest(RequestOptions{Method: http.MethodPost, Path: endpoint, Body: body})
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(endpoint string, body []byte) (*Response, error) {
	return c.DoRequest(RequestOptions{Method: http.MethodPut, Path: endpoint, Body: body})
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(endpoint string, body []byte) (*Response, error) {
	return c.DoRequest(RequestOptions{Method: http.MethodPatch, Path: endpoint, Body: body})
}

// Delete issues a DELETE request.
func (c *Client) Delete(endpoint string) (*Response, error) {
	return c.DoRequest(RequestOptions{Method: http.MethodDelete, Path: endpoint})
}

// transientError carries a retryable response through the retry loop so the
// final attempt's status can still be classified for the caller.
type transientError struct {
	resp *Response
}

func (e *transientError) Error() string {
	return fmt.Sprintf("server returned %d", e.resp.StatusCode)
}

// DoRequest makes an HTTP request with the given options. Transient failures
// (429/500/502/503/504 and transport errors) are retried with exponential
// backoff underneath this call; the caller only ever sees the final outcome,
// either a 2xx Response or a taxonomy error.
func (c *Client) DoRequest(opts RequestOptions) (*Response, error) {
	rawURL, err := c.buildURL(opts.Path, opts.Query)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(c.config.RequestTimeout) * time.Second
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}

	var resp *Response
	err = retry.Do(func() error {
		r, err := c.roundTrip(opts.Method, rawURL, opts.Body, timeout)
		if err != nil {
			return err
		}
		if retryableStatus[r.StatusCode] {
			return &transientError{resp: r}
		}
		resp = r
		return nil
	},
		retry.Attempts(retryAttempts),
		retry.Delay(retryBaseDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Debug().Uint("attempt", n+1).Str("method", opts.Method).Str("url", rawURL).Err(err).Msg("retrying request")
		}),
	)
	if err != nil {
		var te *transientError
		if errors.As(err, &te) {
			return c.normalize(te.resp)
		}
		return nil, ErrConnection.MsgErr(fmt.Sprintf("%s %s failed: %v", opts.Method, rawURL, err), err)
	}

	return c.normalize(resp)
}

// buildURL joins the base URL, the service API root, and the endpoint path,
// preserving the endpoint's trailing slash.
func (c *Client) buildURL(endpoint string, query map[string]string) (string, error) {
	base, err := c.config.BaseURL()
	if err != nil {
		return "", err
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", ErrConfiguration.MsgErr("invalid server URL", err)
	}

	joined := path.Join(u.Path, c.service.APIRoot(), endpoint)
	if strings.HasSuffix(endpoint, "/") && !strings.HasSuffix(joined, "/") {
		joined += "/"
	}
	u.Path = joined

	q := u.Query()
	for k, v := range query {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// roundTrip performs one attempt. Errors returned here are transport-level
// and eligible for retry.
func (c *Client) roundTrip(method, rawURL string, body []byte, timeout time.Duration) (*Response, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	// Token takes precedence when both credential forms are configured.
	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	} else if c.config.Username != "" {
		req.SetBasicAuth(c.config.Username, c.config.Password)
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("method", method).Str("url", rawURL).Int("status", httpResp.StatusCode).
		Dur("elapsed", time.Since(start)).Msg("request complete")

	return &Response{
		StatusCode: httpResp.StatusCode,
		Body:       respBody,
		Location:   httpResp.Header.Get("Location"),
	}, nil
}

// normalize translates a response into the caller-facing outcome: 2xx passes
// through, 401/403 becomes ErrAuthentication, everything else ErrAPI with a
// best-effort message extracted from the body.
func (c *Client) normalize(r *Response) (*Response, error) {
	switch {
	case r.StatusCode >= 200 && r.StatusCode < 300:
		return r, nil
	case r.StatusCode == http.StatusUnauthorized || r.StatusCode == http.StatusForbidden:
		msg := "authentication failed"
		if detail := gjson.GetBytes(r.Body, "detail"); detail.Exists() {
			msg = detail.String()
		}
		return nil, ErrAuthentication.Msg(msg).SetStatusCode(r.StatusCode)
	default:
		return nil, ErrAPI.Msg(errorMessage(r)).SetStatusCode(r.StatusCode)
	}
}

// errorMessage extracts the most useful message from an error body: a JSON
// "detail" field if present, otherwise field-keyed validation errors
// flattened into "field: msg" lines, otherwise the plain status text.
func errorMessage(r *Response) string {
	if detail := gjson.GetBytes(r.Body, "detail"); detail.Exists() {
		return detail.String()
	}

	parsed := gjson.ParseBytes(r.Body)
	if parsed.IsObject() {
		var lines []string
		flat := true
		parsed.ForEach(func(field, msgs gjson.Result) bool {
			switch {
			case msgs.IsArray():
				for _, m := range msgs.Array() {
					lines = append(lines, field.String()+": "+m.String())
				}
			case msgs.Type == gjson.String:
				lines = append(lines, field.String()+": "+msgs.String())
			default:
				flat = false
				return false
			}
			return true
		})
		if flat && len(lines) > 0 {
			return strings.Join(lines, "\n")
		}
	}

	return http.StatusText(r.StatusCode)
}
