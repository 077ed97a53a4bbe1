package apiclient

import (
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

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"sustaindash/internal/domain"
	"sustaindash/internal/logging"
	"sustaindash/internal/ports"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	maxBodyBytes   = 8 << 20
)

var (
	// ErrTransport covers network failures and non-2xx responses.
	ErrTransport = errors.New("transport failure")
	// ErrDecode covers malformed JSON and bodies missing the expected fields.
	ErrDecode = errors.New("decode failure")
)

// StatusError is returned for non-2xx responses. It matches ErrTransport.
type StatusError struct {
	Code int
	URL  string
	Body string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("GET %s: status %d", e.URL, e.Code)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *StatusError) Is(target error) bool { return target == ErrTransport }

// Client reads the dashboard API over HTTP.
type Client struct {
	base        *url.URL
	http        *http.Client
	timeout     time.Duration
	limiter     *rate.Limiter
	comparisons int
	log         *zap.Logger
}

var _ ports.DashboardSource = (*Client)(nil)

type Option func(*Client)

// WithHTTPClient sets the *http.Client requests go through. The client is
// copied, so a WithTimeout never changes the caller's value.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRateLimit caps outgoing requests per second. Non-positive disables it.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithComparisonCount sets the n query parameter on comparison requests.
// Zero leaves it to the server default.
func WithComparisonCount(n int) Option {
	return func(c *Client) { c.comparisons = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = logging.OrNop(l) }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}
	c := &Client{base: u, log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	hc := &http.Client{}
	if c.http != nil {
		*hc = *c.http
	}
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	c.http = hc
	return c, nil
}

// EntityIDs fetches GET /entity_ids.
func (c *Client) EntityIDs(ctx context.Context) ([]int64, error) {
	var body struct {
		EntityIDs *[]int64 `json:"entity_ids"`
	}
	if err := c.get(ctx, "/entity_ids", nil, &body); err != nil {
		return nil, err
	}
	if body.EntityIDs == nil {
		return nil, fmt.Errorf("%w: entity_ids missing", ErrDecode)
	}
	return *body.EntityIDs, nil
}

// Company fetches GET /company/{id}.
func (c *Client) Company(ctx context.Context, entityID int64) (domain.CompanyRecord, error) {
	var body struct {
		domain.CompanyRecord
		EntityID *int64 `json:"entity_id"`
		Error    string `json:"error"`
	}
	if err := c.get(ctx, "/company/"+strconv.FormatInt(entityID, 10), nil, &body); err != nil {
		return domain.CompanyRecord{}, err
	}
	if body.EntityID == nil {
		if body.Error != "" {
			return domain.CompanyRecord{}, fmt.Errorf("%w: %s", ErrDecode, body.Error)
		}
		return domain.CompanyRecord{}, fmt.Errorf("%w: entity_id missing", ErrDecode)
	}
	rec := body.CompanyRecord
	rec.EntityID = *body.EntityID
	return rec, nil
}

// Comparisons fetches GET /comparisons/{id}.
func (c *Client) Comparisons(ctx context.Context, entityID int64) ([]domain.CompanyRecord, error) {
	var q url.Values
	if c.comparisons > 0 {
		q = url.Values{"n": {strconv.Itoa(c.comparisons)}}
	}
	var body struct {
		Comparisons *[]domain.CompanyRecord `json:"comparisons"`
	}
	if err := c.get(ctx, "/comparisons/"+strconv.FormatInt(entityID, 10), q, &body); err != nil {
		return nil, err
	}
	if body.Comparisons == nil {
		return nil, fmt.Errorf("%w: comparisons missing", ErrDecode)
	}
	return *body.Comparisons, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrTransport, err)
		}
	}

	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer res.Body.Close()
	c.log.Debug("api request",
		zap.String("url", u.String()),
		zap.Int("status", res.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.String("request_id", reqID))

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &StatusError{Code: res.StatusCode, URL: u.String(), Body: strings.TrimSpace(string(body))}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}
