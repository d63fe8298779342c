// Package browser extracts the support dashboard session cookie from web browsers.
package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/browserutils/kooky"
	_ "github.com/browserutils/kooky/browser/chrome"
	_ "github.com/browserutils/kooky/browser/chromium"
	_ "github.com/browserutils/kooky/browser/edge"
	_ "github.com/browserutils/kooky/browser/firefox"
	_ "github.com/browserutils/kooky/browser/opera"
)

// SupportedBrowser represents a supported browser type
type SupportedBrowser string

const (
	BrowserAuto     SupportedBrowser = "auto"
	BrowserChrome   SupportedBrowser = "chrome"
	BrowserChromium SupportedBrowser = "chromium"
	BrowserFirefox  SupportedBrowser = "firefox"
	BrowserEdge     SupportedBrowser = "edge"
	BrowserOpera    SupportedBrowser = "opera"
)

// AllSupportedBrowsers returns a list of all supported browsers
func AllSupportedBrowsers() []SupportedBrowser {
	return []SupportedBrowser{
		BrowserChrome,
		BrowserChromium,
		BrowserFirefox,
		BrowserEdge,
		BrowserOpera,
	}
}

// String returns the string representation of the browser
func (b SupportedBrowser) String() string {
	return string(b)
}

// ParseBrowser parses a browser string into a SupportedBrowser
func ParseBrowser(s string) (SupportedBrowser, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return BrowserAuto, nil
	case "chrome", "google-chrome":
		return BrowserChrome, nil
	case "chromium":
		return BrowserChromium, nil
	case "firefox", "mozilla", "mozilla-firefox":
		return BrowserFirefox, nil
	case "edge", "microsoft-edge", "msedge":
		return BrowserEdge, nil
	case "opera":
		return BrowserOpera, nil
	default:
		return "", fmt.Errorf("unsupported browser: %s. Supported: chrome, chromium, firefox, edge, opera", s)
	}
}

// Target describes which cookie to look for
type Target struct {
	Host       string // API host, e.g. "support.example.com" or "localhost"
	CookieName string // e.g. "connect.sid"
}

// ExtractResult contains the result of cookie extraction
type ExtractResult struct {
	Cookies     map[string]string
	BrowserName string
}

// CookieExtractor abstracts browser cookie extraction so the API client can
// be tested without real browser stores.
type CookieExtractor interface {
	ExtractSessionCookies(ctx context.Context, browser SupportedBrowser, target Target) (*ExtractResult, error)
}

// DefaultExtractor reads cookies from the local browser stores
type DefaultExtractor struct{}

// ExtractSessionCookies implements CookieExtractor
func (DefaultExtractor) ExtractSessionCookies(ctx context.Context, browser SupportedBrowser, target Target) (*ExtractResult, error) {
	return ExtractSessionCookies(ctx, browser, target)
}

// ExtractSessionCookies extracts the session cookie for target from browsers
func ExtractSessionCookies(ctx context.Context, browser SupportedBrowser, target Target) (*ExtractResult, error) {
	if target.Host == "" || target.CookieName == "" {
		return nil, fmt.Errorf("cookie target requires a host and a cookie name")
	}
	if browser == BrowserAuto {
		return extractFromAllBrowsers(ctx, target)
	}
	return extractFromBrowser(ctx, browser, target)
}

// extractFromAllBrowsers tries every supported browser in order of popularity
func extractFromAllBrowsers(ctx context.Context, target Target) (*ExtractResult, error) {
	browsers := []SupportedBrowser{
		BrowserChrome,
		BrowserFirefox,
		BrowserEdge,
		BrowserChromium,
		BrowserOpera,
	}

	var lastErr error
	for _, browser := range browsers {
		result, err := extractFromBrowser(ctx, browser, target)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}

	if lastErr != nil {
		return nil, fmt.Errorf("could not find %s cookie in any browser: %w", target.CookieName, lastErr)
	}
	return nil, fmt.Errorf("could not find %s cookie in any supported browser", target.CookieName)
}

// extractFromBrowser tries all profiles of one browser
func extractFromBrowser(ctx context.Context, browser SupportedBrowser, target Target) (*ExtractResult, error) {
	stores := kooky.FindAllCookieStores(ctx)

	var matchingStores []kooky.CookieStore
	var browserName string

	for _, store := range stores {
		name := store.Browser()
		if matchesBrowser(name, browser) {
			matchingStores = append(matchingStores, store)
			if browserName == "" {
				browserName = name
			}
		} else {
			store.Close()
		}
	}

	if len(matchingStores) == 0 {
		return nil, fmt.Errorf("browser %s not found or no cookie store available", browser)
	}
	defer func() {
		for _, s := range matchingStores {
			s.Close()
		}
	}()

	var lastErr error
	for _, store := range matchingStores {
		result, err := extractCookiesFromStore(ctx, store, browserName, store.Profile(), target)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}

	return nil, lastErr
}

// matchesBrowser checks if a browser name matches the target browser
func matchesBrowser(browserName string, target SupportedBrowser) bool {
	browserName = strings.ToLower(browserName)

	switch target {
	case BrowserChrome:
		return strings.Contains(browserName, "chrome") && !strings.Contains(browserName, "chromium")
	case BrowserChromium:
		return strings.Contains(browserName, "chromium")
	case BrowserFirefox:
		return strings.Contains(browserName, "firefox")
	case BrowserEdge:
		return strings.Contains(browserName, "edge")
	case BrowserOpera:
		return strings.Contains(browserName, "opera")
	default:
		return false
	}
}

// extractCookiesFromStore collects the target cookie from one store
func extractCookiesFromStore(ctx context.Context, store kooky.CookieStore, browserName, profile string, target Target) (*ExtractResult, error) {
	var found []*kooky.Cookie
	for cookie := range store.TraverseCookies(kooky.Valid).OnlyCookies() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		found = append(found, cookie)
	}

	displayName := browserName
	if profile != "" {
		displayName = fmt.Sprintf("%s (profile: %s)", browserName, profile)
	}

	value, ok := pickSessionCookie(found, target)
	if !ok {
		return nil, fmt.Errorf("cookie %s for %s not found in %s. Please log into the support dashboard first", target.CookieName, target.Host, displayName)
	}

	return &ExtractResult{
		Cookies:     map[string]string{target.CookieName: value},
		BrowserName: displayName,
	}, nil
}

// pickSessionCookie returns the target cookie value, preferring the most
// specific domain match.
func pickSessionCookie(cookies []*kooky.Cookie, target Target) (string, bool) {
	var value string
	bestLen := -1
	for _, c := range cookies {
		if c == nil || c.Name != target.CookieName {
			continue
		}
		if !domainMatches(c.Domain, target.Host) {
			continue
		}
		if l := len(strings.TrimPrefix(c.Domain, ".")); l > bestLen {
			bestLen = l
			value = c.Value
		}
	}
	return value, bestLen >= 0
}

// domainMatches reports whether a cookie set for domain is sent to host
func domainMatches(domain, host string) bool {
	domain = strings.ToLower(strings.TrimPrefix(domain, "."))
	host = strings.ToLower(host)
	if domain == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// ListAvailableBrowsers returns a list of browsers that have cookie stores
func ListAvailableBrowsers() []string {
	ctx := context.Background()
	stores := kooky.FindAllCookieStores(ctx)
	var browsers []string

	seen := make(map[string]bool)
	for _, store := range stores {
		name := store.Browser()
		if !seen[name] {
			browsers = append(browsers, name)
			seen[name] = true
		}
		store.Close()
	}

	return browsers
}
