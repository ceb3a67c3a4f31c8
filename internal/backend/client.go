package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/nulldns/subdns-portal/internal/config"
)

const (
	// RequestIDHeader carries the id correlating portal and backend logs.
	RequestIDHeader = "X-Request-ID"

	// maxMessageSize bounds the error text read from a non-success body.
	maxMessageSize = 4096
)

// endpoint names, used as log field and metric label.
const (
	epMe           = "me"
	epAvailable    = "available_domains"
	epRecords      = "get_records"
	epAddRecord    = "add_record"
	epMyDomains    = "my_domains"
	epRenew        = "update_record"
	epDeleteRecord = "delete_record"
	epLeave        = "leave"
	epLogout       = "logout"
)

// Session is the value of the backend session cookie of one user.
type Session string

// Client talks to the subdns REST API.
type Client struct {
	baseURL    string
	loginPath  string
	cookieName string
	httpClient *http.Client
}

// New creates a Client from the backend settings.
func New(cfg config.Backend) (*Client, error) {
	if cfg.URL == "" {
		return nil, ErrEmptyBaseURL
	}

	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return nil, errors.Wrap(err, "invalid backend url")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = config.DefaultBackendTimeout
	}

	cookieName := cfg.SessionCookie
	if cookieName == "" {
		cookieName = config.DefaultSessionCookie
	}

	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = config.DefaultLoginPath
	}

	initMetrics()

	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		loginPath:  loginPath,
		cookieName: cookieName,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// CookieName returns the name of the backend session cookie.
func (c *Client) CookieName() string {
	return c.cookieName
}

// LoginURL returns the absolute URL starting the OAuth2 login at the backend.
func (c *Client) LoginURL() string {
	return c.baseURL + c.loginPath
}

// For binds a session to the client. An empty session makes anonymous calls.
func (c *Client) For(s Session) *Conn {
	return &Conn{client: c, session: s}
}

// Conn is a Client bound to the session of one user.
type Conn struct {
	client  *Client
	session Session
}

// LoginURL returns the absolute URL starting the OAuth2 login at the backend.
func (c *Conn) LoginURL() string {
	return c.client.LoginURL()
}

// Me fetches the identity of the session.
func (c *Conn) Me(ctx context.Context) (Result[Identity], error) {
	return call[Identity](ctx, c, epMe, http.MethodGet, "/api/me", nil)
}

// AvailableZones asks below which zones subDomain can be registered.
func (c *Conn) AvailableZones(ctx context.Context, subDomain string) (Result[Availability], error) {
	return call[Availability](ctx, c, epAvailable, http.MethodGet,
		"/api/available-domains/"+url.PathEscape(subDomain), nil)
}

// Records fetches the records of a fully-qualified domain.
func (c *Conn) Records(ctx context.Context, fullDomain string) (Result[[]Record], error) {
	return call[[]Record](ctx, c, epRecords, http.MethodGet,
		"/api/get-records/"+url.PathEscape(fullDomain), nil)
}

// AddRecord creates or replaces the record of req.Type.
func (c *Conn) AddRecord(ctx context.Context, req AddRecordRequest) (Result[Empty], error) {
	return call[Empty](ctx, c, epAddRecord, http.MethodPost, "/api/add-record", req)
}

// MyDomains lists the domains owned by the session user.
func (c *Conn) MyDomains(ctx context.Context) (Result[[]OwnedDomain], error) {
	return call[[]OwnedDomain](ctx, c, epMyDomains, http.MethodGet, "/api/my-domains", nil)
}

// Renew extends the expiration of subDomain.zone.
func (c *Conn) Renew(ctx context.Context, subDomain, zone string) (Result[Empty], error) {
	return call[Empty](ctx, c, epRenew, http.MethodPatch, segments("/api/update-record", subDomain, zone), nil)
}

// DeleteRecord removes all records of subDomain.zone.
func (c *Conn) DeleteRecord(ctx context.Context, subDomain, zone string) (Result[Empty], error) {
	return call[Empty](ctx, c, epDeleteRecord, http.MethodDelete, segments("/api/delete-record", subDomain, zone), nil)
}

// Leave deletes the account of the session user and all its domains.
func (c *Conn) Leave(ctx context.Context) (Result[Empty], error) {
	return call[Empty](ctx, c, epLeave, http.MethodDelete, "/api/leave", nil)
}

// Logout invalidates the session.
func (c *Conn) Logout(ctx context.Context) (Result[Empty], error) {
	return call[Empty](ctx, c, epLogout, http.MethodPost, "/api/logout", nil)
}

func segments(prefix string, parts ...string) string {
	var b strings.Builder

	b.WriteString(prefix)

	for _, p := range parts {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(p))
	}

	return b.String()
}

// call performs one request and classifies the answer.
func call[T any](ctx context.Context, c *Conn, endpoint, method, path string, body any) (Result[T], error) {
	var (
		res   Result[T]
		start = time.Now()
	)

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return res, err
	}

	resp, err := c.client.httpClient.Do(req)
	if err != nil {
		observe(endpoint, "error", time.Since(start))
		log.Error().Err(err).
			Str("endpoint", endpoint).
			Str("request_id", req.Header.Get(RequestIDHeader)).
			Msg("backend request failed")

		return res, errors.Wrapf(err, "%s %s", method, path)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	res.Code = resp.StatusCode
	res.Status = Classify(resp.StatusCode)

	observe(endpoint, res.Status.String(), time.Since(start))
	log.Debug().
		Str("endpoint", endpoint).
		Str("method", method).
		Int("status", resp.StatusCode).
		Str("request_id", req.Header.Get(RequestIDHeader)).
		Dur("elapsed", time.Since(start)).
		Msg("backend request")

	if !res.OK() {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxMessageSize))
		res.Message = strings.TrimSpace(string(msg))

		return res, nil
	}

	if _, empty := any(&res.Value).(*Empty); empty {
		return res, nil
	}

	if err = json.NewDecoder(resp.Body).Decode(&res.Value); err != nil {
		return res, errors.Wrapf(ErrUnexpectedContent, "%s: %v", endpoint, err)
	}

	return res, nil
}

func (c *Conn) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader = http.NoBody

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encode request body")
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.client.baseURL+path, reader)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: c.client.cookieName, Value: string(c.session)})
	}

	return req, nil
}
