package api

import (
	"fmt"
	"net/url"

	"golang.org/x/net/http/httpproxy"
)

// resolveProxy returns the proxy URL to use for base, or "" for a direct
// connection. An explicit proxy wins over the environment.
func resolveProxy(base *url.URL, explicit string) (string, error) {
	if explicit != "" {
		u, err := url.Parse(explicit)
		if err != nil || u.Host == "" {
			return "", fmt.Errorf("invalid proxy URL %q", explicit)
		}
		return u.String(), nil
	}
	return proxyFromConfig(httpproxy.FromEnvironment(), base)
}

func proxyFromConfig(cfg *httpproxy.Config, base *url.URL) (string, error) {
	u, err := cfg.ProxyFunc()(base)
	if err != nil {
		return "", fmt.Errorf("invalid proxy configuration: %w", err)
	}
	if u == nil {
		return "", nil
	}
	return u.String(), nil
}
