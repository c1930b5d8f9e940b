package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"seriesapp/internal/logging"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "seriesapp/dev"
	defaultMaxBody   = 16 << 20
)

// ErrBodyTooLarge reports a response larger than the configured limit.
var ErrBodyTooLarge = errors.New("response body exceeds size limit")

// StatusError reports a non-200 response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s returned %d", e.URL, e.StatusCode)
}

// Client downloads feed documents. It is safe for concurrent use; SetProxy
// affects requests started after it returns.
type Client struct {
	base      *http.Client
	timeout   time.Duration
	userAgent string
	maxBody   int64
	limiter   *rate.Limiter
	logger    *slog.Logger

	mu      sync.Mutex
	current *http.Client
	proxy   Proxy
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.base = client
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithMaxBodyBytes caps the accepted response size.
func WithMaxBodyBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// WithMinInterval spaces requests at least d apart. Zero disables spacing.
func WithMinInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.limiter = rate.NewLimiter(rate.Every(d), 1)
		} else {
			c.limiter = nil
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "fetch")
	}
}

// New creates a Client that connects directly until SetProxy is called.
func New(opts ...Option) *Client {
	c := &Client{
		base:      &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
		maxBody:   defaultMaxBody,
		logger:    logging.NewComponentLogger(nil, "fetch"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		client := *c.base
		client.Timeout = c.timeout
		c.base = &client
	}
	c.current = c.base
	return c
}

// SetProxy rebuilds the transport for p.
func (c *Client) SetProxy(p Proxy) error {
	if err := p.Validate(); err != nil {
		return err
	}
	fn, err := p.proxyFunc()
	if err != nil {
		return err
	}

	client := *c.base
	switch t := client.Transport.(type) {
	case nil:
		tr := http.DefaultTransport.(*http.Transport).Clone()
		tr.Proxy = fn
		client.Transport = tr
	case *http.Transport:
		tr := t.Clone()
		tr.Proxy = fn
		client.Transport = tr
	default:
		c.logger.Debug("custom transport keeps its own proxy settings")
	}

	c.mu.Lock()
	c.current = &client
	c.proxy = p
	c.mu.Unlock()

	c.logger.Debug("proxy configured", logging.String("proxy", p.String()))
	return nil
}

// Proxy returns the active proxy configuration.
func (c *Client) Proxy() Proxy {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.proxy
}

// Fetch downloads url and returns the body.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	c.mu.Lock()
	client := c.current
	c.mu.Unlock()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for request slot: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	requestStart := time.Now()
	resp, err := client.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%w (%d bytes)", ErrBodyTooLarge, c.maxBody)
	}

	c.logger.Debug("fetch complete",
		logging.String("url", url),
		logging.Int("bytes", len(body)),
		logging.Duration("latency", latency))
	return body, nil
}
