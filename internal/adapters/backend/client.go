// Package backend is the typed HTTP client of the review API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"clientvoice/internal/adapters/observability"
	"clientvoice/internal/aggregate"
	"clientvoice/internal/domain"
	"clientvoice/internal/dto"
)

// Client never retries: every call is issued at most once and its outcome is
// reported as is.
type Client struct {
	base    string
	hc      *http.Client
	rl      *rate.Limiter
	cb      *gobreaker.CircuitBreaker[*http.Response]
	session *Session
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.hc = hc } }

// WithSession shares one admin session between clients.
func WithSession(s *Session) Option { return func(c *Client) { c.session = s } }

// WithBreaker sets how many consecutive failures open the circuit and how
// long it stays open.
func WithBreaker(failures uint32, open time.Duration) Option {
	return func(c *Client) { c.cb = newBreaker(failures, open) }
}

func New(base string, rps int, opts ...Option) *Client {
	if rps <= 0 {
		rps = 5
	}
	c := &Client{
		base:    strings.TrimRight(base, "/"),
		hc:      &http.Client{Timeout: 20 * time.Second},
		rl:      rate.NewLimiter(rate.Limit(rps), rps),
		cb:      newBreaker(5, 30*time.Second),
		session: &Session{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func newBreaker(failures uint32, open time.Duration) *gobreaker.CircuitBreaker[*http.Response] {
	return gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:    "backend",
		Timeout: open,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
		},
	})
}

func (c *Client) Session() *Session { return c.session }

// ---- public API ----

func (c *Client) PublicProfile(ctx context.Context, slug string) (domain.PublicProfile, error) {
	var out domain.PublicProfile
	return out, c.do(ctx, "public_profile", http.MethodGet, "/public/"+url.PathEscape(slug), nil, &out, false)
}

// VerifySecret reports whether code opens the review list of slug. A wrong
// code comes back as a *ServerError carrying the server's message.
func (c *Client) VerifySecret(ctx context.Context, slug, code string) (bool, error) {
	var out struct {
		Success bool `json:"success"`
	}
	err := c.do(ctx, "verify_secret", http.MethodPost, "/clients/"+url.PathEscape(slug)+"/verify-secret",
		dto.SecretInput{SecretCode: code}, &out, false)
	return out.Success, err
}

func (c *Client) ListReviews(ctx context.Context, slug string) ([]domain.Review, error) {
	out := []domain.Review{}
	return out, c.do(ctx, "list_reviews", http.MethodGet, "/clients/"+url.PathEscape(slug)+"/avis", nil, &out, false)
}

func (c *Client) SubmitReview(ctx context.Context, slug string, s domain.Submission) error {
	return c.do(ctx, "submit_review", http.MethodPost, "/clients/"+url.PathEscape(slug)+"/avis", s, nil, false)
}

// ---- admin API ----

// Login opens the admin session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out dto.LoginResult
	if err := c.do(ctx, "login", http.MethodPost, "/admin/login", dto.LoginInput{Email: email, Password: password}, &out, false); err != nil {
		return err
	}
	c.session.set(out.Token)
	return nil
}

func (c *Client) Logout() { c.session.Clear() }

func (c *Client) Me(ctx context.Context) (dto.AdminView, error) {
	var out dto.AdminView
	return out, c.do(ctx, "me", http.MethodGet, "/admin/me", nil, &out, true)
}

// UpdateMe edits the signed-in admin's profile.
func (c *Client) UpdateMe(ctx context.Context, in dto.ProfileInput) (dto.AdminView, error) {
	var out dto.AdminView
	return out, c.do(ctx, "update_me", http.MethodPut, "/admin/me", in, &out, true)
}

func (c *Client) ListClients(ctx context.Context, q dto.ClientQuery) (aggregate.Window[dto.ClientView], error) {
	v := url.Values{}
	setNonEmpty(v, "q", q.Search)
	setNonEmpty(v, "statut", q.Status)
	setNonEmpty(v, "langue", q.Language)
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	var out aggregate.Window[dto.ClientView]
	return out, c.do(ctx, "list_clients", http.MethodGet, withQuery("/admin/clients", v), nil, &out, true)
}

func (c *Client) ListAllReviews(ctx context.Context, q dto.ReviewQuery) (dto.AdminReviewsPage, error) {
	v := url.Values{}
	setNonEmpty(v, "client", q.ClientName)
	if q.Note > 0 {
		v.Set("note", strconv.Itoa(q.Note))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	var out dto.AdminReviewsPage
	return out, c.do(ctx, "list_all_reviews", http.MethodGet, withQuery("/admin/avis", v), nil, &out, true)
}

func (c *Client) DeleteReview(ctx context.Context, id int64) error {
	return c.do(ctx, "delete_review", http.MethodDelete, "/admin/avis/"+strconv.FormatInt(id, 10), nil, nil, true)
}

func (c *Client) Dashboard(ctx context.Context) (dto.Dashboard, error) {
	var out dto.Dashboard
	return out, c.do(ctx, "dashboard", http.MethodGet, "/admin/dashboard", nil, &out, true)
}

// ---- internals ----

func setNonEmpty(v url.Values, k, s string) {
	if s != "" {
		v.Set(k, s)
	}
}

func withQuery(path string, v url.Values) string {
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}

// do performs one request through the rate limiter and circuit breaker and
// decodes a 2xx JSON body into out.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any, admin bool) error {
	var token string
	if admin {
		tok, ok := c.session.Token()
		if !ok {
			return ErrNoSession
		}
		token = tok
	}
	if err := c.rl.Wait(ctx); err != nil {
		return &NetworkError{Op: op, Err: err}
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend: %s: encode: %w", op, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("backend: %s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "clientvoice/1.0")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.cb.Execute(func() (*http.Response, error) {
		resp, err := c.hc.Do(req)
		if err != nil {
			return nil, err
		}
		// 5xx counts against the breaker; 4xx is the caller's problem
		if resp.StatusCode >= 500 {
			return nil, readServerError(resp)
		}
		return resp, nil
	})
	if err != nil {
		var se *ServerError
		if errors.As(err, &se) {
			observability.ObserveExternal("backend", op, se.Status, time.Since(start))
			return se
		}
		observability.ObserveExternal("backend", op, 0, time.Since(start))
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	observability.ObserveExternal("backend", op, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readServerError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: %s: decode: %w", op, err)
	}
	return nil
}

// readServerError consumes and closes the body. Only a JSON body with a
// detail, error or title field yields a message.
func readServerError(resp *http.Response) *ServerError {
	defer resp.Body.Close()
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var eb errorBody
	_ = json.Unmarshal(b, &eb)
	return &ServerError{Status: resp.StatusCode, Message: eb.message()}
}
