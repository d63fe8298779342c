// Package api implements the HTTP client for the support chat API.
package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/diogo/supportchat/internal/browser"
	"github.com/diogo/supportchat/internal/config"
	"github.com/diogo/supportchat/internal/models"
)

// Doer is the subset of tls_client.HttpClient the support client needs
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// SupportClientInterface is what the chat view and commands depend on
type SupportClientInterface interface {
	ListMessages(ctx context.Context, conversationID int64) ([]models.Message, error)
	SendMessage(ctx context.Context, conversationID int64, content string) (*models.Message, error)
	GetConversation(ctx context.Context, conversationID int64) (*models.Conversation, error)
	Close()
}

// SupportClient talks to the support API server
type SupportClient struct {
	httpClient Doer
	baseURL    *url.URL
	session    *config.Session
	cookieName string
	timeout    time.Duration
	proxy      string
	logger     *zap.Logger
	newID      func() string

	// Browser-based session refresh
	browserRefresh        bool
	browserRefreshType    browser.SupportedBrowser
	extractor             browser.CookieExtractor
	lastBrowserRefresh    time.Time
	browserRefreshMinWait time.Duration
	persistSession        bool

	mu     sync.RWMutex
	closed bool
}

var _ SupportClientInterface = (*SupportClient)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*SupportClient)

// WithHTTPClient replaces the TLS client (used by tests)
func WithHTTPClient(d Doer) ClientOption {
	return func(c *SupportClient) {
		c.httpClient = d
	}
}

// WithSession sets the cookies forwarded with each request
func WithSession(s *config.Session) ClientOption {
	return func(c *SupportClient) {
		c.session = s
	}
}

// WithSessionCookieName sets the name of the dashboard session cookie
func WithSessionCookieName(name string) ClientOption {
	return func(c *SupportClient) {
		if name != "" {
			c.cookieName = name
		}
	}
}

// WithTimeout bounds every request
func WithTimeout(d time.Duration) ClientOption {
	return func(c *SupportClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithProxy sets an explicit proxy URL. Without it the proxy is taken from
// the HTTP_PROXY / HTTPS_PROXY / NO_PROXY environment.
func WithProxy(proxy string) ClientOption {
	return func(c *SupportClient) {
		c.proxy = proxy
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *SupportClient) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithBrowserRefresh re-extracts the session cookie from the browser once
// when the API answers 401/403.
func WithBrowserRefresh(browserType browser.SupportedBrowser) ClientOption {
	return func(c *SupportClient) {
		c.browserRefresh = true
		c.browserRefreshType = browserType
	}
}

// WithCookieExtractor replaces the browser cookie extractor (used by tests)
func WithCookieExtractor(e browser.CookieExtractor) ClientOption {
	return func(c *SupportClient) {
		c.extractor = e
	}
}

// WithSessionPersistence controls whether refreshed cookies are saved to disk
func WithSessionPersistence(enabled bool) ClientOption {
	return func(c *SupportClient) {
		c.persistSession = enabled
	}
}

// NewClient creates a SupportClient for the API at baseURL
func NewClient(baseURL string, opts ...ClientOption) (*SupportClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid API URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API URL %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid API URL %q: missing host", baseURL)
	}

	client := &SupportClient{
		baseURL:               u,
		session:               config.NewSession(nil),
		cookieName:            "connect.sid",
		timeout:               30 * time.Second,
		logger:                zap.NewNop(),
		newID:                 func() string { return uuid.NewString() },
		extractor:             browser.DefaultExtractor{},
		browserRefreshMinWait: 30 * time.Second,
		persistSession:        true,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		httpClient, err := newTLSClient(u, client.proxy, client.timeout)
		if err != nil {
			return nil, err
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// newTLSClient builds the default transport
func newTLSClient(base *url.URL, explicitProxy string, timeout time.Duration) (tls_client.HttpClient, error) {
	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(int(timeout.Seconds()) + 1),
		tls_client.WithClientProfile(profiles.Chrome_120),
	}

	proxy, err := resolveProxy(base, explicitProxy)
	if err != nil {
		return nil, err
	}
	if proxy != "" {
		options = append(options, tls_client.WithProxyUrl(proxy))
	}

	httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	return httpClient, nil
}

// Close marks the client closed; later calls fail with ErrClientClosed
func (c *SupportClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if closer, ok := c.httpClient.(interface{ CloseIdleConnections() }); ok {
		closer.CloseIdleConnections()
	}
}

// IsClosed returns whether the client is closed
func (c *SupportClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// BaseURL returns the API base URL
func (c *SupportClient) BaseURL() string {
	return c.baseURL.String()
}

// Session returns the cookies forwarded with each request
func (c *SupportClient) Session() *config.Session {
	return c.session
}

// IsBrowserRefreshEnabled returns whether browser refresh is enabled
func (c *SupportClient) IsBrowserRefreshEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.browserRefresh
}

// RefreshFromBrowser re-extracts the session cookie from the browser.
// Returns true if the cookie was refreshed.
func (c *SupportClient) RefreshFromBrowser(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.browserRefresh {
		return false, fmt.Errorf("browser refresh is not enabled")
	}

	if wait := c.browserRefreshMinWait - time.Since(c.lastBrowserRefresh); wait > 0 {
		return false, fmt.Errorf("browser refresh attempted too recently, wait %v", wait)
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	result, err := c.extractor.ExtractSessionCookies(ctx, c.browserRefreshType, browser.Target{
		Host:       c.baseURL.Hostname(),
		CookieName: c.cookieName,
	})
	c.lastBrowserRefresh = time.Now()
	if err != nil {
		return false, fmt.Errorf("failed to extract cookies from browser: %w", err)
	}

	for name, value := range result.Cookies {
		c.session.Set(name, value)
	}
	c.logger.Info("session cookie refreshed from browser", zap.String("browser", result.BrowserName))

	if c.persistSession {
		if err := config.SaveSession(c.session); err != nil {
			// Cookies are updated in memory; only persistence failed
			c.logger.Warn("failed to save refreshed session", zap.Error(err))
		}
	}

	return true, nil
}
