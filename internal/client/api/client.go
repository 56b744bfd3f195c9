package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/poskoadmin/internal/client/models"
	"github.com/dmitrijs2005/poskoadmin/internal/common"
	"github.com/dmitrijs2005/poskoadmin/internal/logging"
)

const (
	DefaultBaseURL = "http://localhost:4000/api"
	RefreshPath    = "/auth/refresh-token"

	renewalKey = "renewal"
)

// noRenewPaths answer 401 for reasons a renewal cannot fix (bad
// credentials, no session); their 401 goes back to the caller as is.
var noRenewPaths = map[string]struct{}{
	"/auth/login":  {},
	"/auth/logout": {},
	RefreshPath:    {},
}

var allowedMethods = map[string]struct{}{
	http.MethodGet:    {},
	http.MethodPost:   {},
	http.MethodPut:    {},
	http.MethodPatch:  {},
	http.MethodDelete: {},
}

// pendingRequest is one logical call as it moves through dispatch.
// attempted is set once the call has triggered a renewal; noRenew marks
// calls that never trigger one.
type pendingRequest struct {
	method    string
	path      string
	body      []byte
	query     url.Values
	attempted bool
	noRenew   bool
}

type Client struct {
	baseURL  string
	http     *http.Client
	tokens   TokenStore
	logger   logging.Logger
	timeout  time.Duration
	renewals singleflight.Group
}

type Option func(*Client)

// WithHTTPClient replaces the transport. A cookie jar is added if hc has none,
// hc itself is not modified.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		cp := *hc
		if cp.Jar == nil {
			cp.Jar = c.http.Jar
		}
		c.http = &cp
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTimeout bounds every single HTTP exchange. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New builds a Client for baseURL. An empty baseURL means DefaultBaseURL.
func New(baseURL string, tokens TokenStore, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse base url %q: scheme must be http or https", baseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar},
		tokens:  tokens,
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string { return c.baseURL }

// Request sends method to path (relative to the base URL) with an optional
// JSON body and query. body may be nil, []byte / json.RawMessage (sent as
// is) or any value encodable with encoding/json.
//
// A 2xx response is returned as is. Any other status yields *APIError, after
// at most one transparent renewal on 401.
func (c *Client) Request(ctx context.Context, method, path string, body any, query url.Values) (*Response, error) {
	if _, ok := allowedMethods[method]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}

	payload, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	return c.dispatch(ctx, &pendingRequest{
		method:  method,
		path:    path,
		body:    payload,
		query:   query,
		noRenew: skipsRenewal(path),
	})
}

func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Request(ctx, http.MethodGet, path, nil, query)
}

func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Request(ctx, http.MethodPost, path, body, nil)
}

func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Request(ctx, http.MethodPut, path, body, nil)
}

func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.Request(ctx, http.MethodPatch, path, body, nil)
}

func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Request(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) dispatch(ctx context.Context, pr *pendingRequest) (*Response, error) {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("read access token: %w", err)
	}

	for {
		resp, err := c.send(ctx, pr, token)
		if err != nil {
			return nil, err
		}

		if resp.Status != http.StatusUnauthorized || pr.attempted || pr.noRenew {
			if !resp.ok() {
				return nil, newAPIError(resp.Status, resp.Body)
			}
			return resp, nil
		}

		pr.attempted = true
		token, err = c.renew(ctx, token)
		if err != nil {
			return nil, err
		}
	}
}

// renew returns a token to retry with. If the stored token already differs
// from the rejected one, another call renewed it meanwhile and it is used as
// is. Otherwise the caller joins the in-flight renewal or starts one; the
// renewal runs detached from the caller's cancellation so that one impatient
// waiter does not fail the others.
func (c *Client) renew(ctx context.Context, rejected string) (string, error) {
	current, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return "", fmt.Errorf("read access token: %w", err)
	}
	if current != "" && current != rejected {
		return current, nil
	}

	ch := c.renewals.DoChan(renewalKey, func() (any, error) {
		return c.refresh(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		if res.Shared {
			c.logger.Debug(ctx, "joined in-flight token renewal")
		}
		return res.Val.(string), nil
	}
}

func (c *Client) refresh(ctx context.Context) (string, error) {
	c.logger.Info(ctx, "access token rejected, renewing")

	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return "", fmt.Errorf("read access token: %w", err)
	}

	fresh, err := c.exchange(ctx, token)
	if err != nil {
		c.logger.Warn(ctx, "token renewal failed, clearing session", "error", err)
		if cerr := c.tokens.Clear(ctx); cerr != nil {
			c.logger.Error(ctx, "failed to clear credentials", "error", cerr)
		}
		return "", &SessionExpiredError{Err: err}
	}

	if err := c.tokens.SetAccessToken(ctx, fresh); err != nil {
		return "", fmt.Errorf("persist renewed token: %w", err)
	}

	c.logger.Info(ctx, "access token renewed")
	return fresh, nil
}

// exchange calls the renewal endpoint. It never triggers renewal itself.
func (c *Client) exchange(ctx context.Context, token string) (string, error) {
	resp, err := c.send(ctx, &pendingRequest{method: http.MethodPost, path: RefreshPath, noRenew: true}, token)
	if err != nil {
		return "", err
	}
	if !resp.ok() {
		return "", newAPIError(resp.Status, resp.Body)
	}

	var env struct {
		Data models.RefreshData `json:"data"`
	}
	if err := resp.Decode(&env); err != nil {
		return "", err
	}
	if env.Data.Tokens.AccessToken == "" {
		return "", errors.New("renewal response carries no access token")
	}
	return env.Data.Tokens.AccessToken, nil
}

func (c *Client) send(ctx context.Context, pr *pendingRequest, token string) (*Response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target, err := c.resolve(pr.path, pr.query)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if pr.body != nil {
		body = bytes.NewReader(pr.body)
	}

	req, err := http.NewRequestWithContext(ctx, pr.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeader, requestID)
	if pr.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	started := time.Now()
	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrUnavailable, pr.method, pr.path, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}

	c.logger.Debug(ctx, "api call",
		"method", pr.method,
		"path", pr.path,
		"status", httpResp.StatusCode,
		"request_id", requestID,
		"retry", pr.attempted,
		"elapsed", time.Since(started),
	)

	return &Response{Status: httpResp.StatusCode, Header: httpResp.Header, Body: data}, nil
}

func skipsRenewal(path string) bool {
	path, _, _ = strings.Cut(path, "?")
	_, ok := noRenewPaths["/"+strings.Trim(path, "/")]
	return ok
}

func (c *Client) resolve(path string, query url.Values) (string, error) {
	u, err := url.Parse(c.baseURL + "/" + strings.TrimLeft(path, "/"))
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", path, err)
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func encodeBody(body any) ([]byte, error) {
	switch v := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case json.RawMessage:
		return v, nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		return b, nil
	}
}
