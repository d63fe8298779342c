package api

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/http/httpproxy"
)

func TestResolveProxy_Explicit(t *testing.T) {
	base, _ := url.Parse("https://support.example.com")

	proxy, err := resolveProxy(base, "http://proxy.local:3128")
	require.NoError(t, err)
	assert.Equal(t, "http://proxy.local:3128", proxy)

	_, err = resolveProxy(base, "not a url")
	assert.Error(t, err)
}

func TestProxyFromConfig(t *testing.T) {
	cfg := &httpproxy.Config{
		HTTPProxy:  "http://proxy.local:3128",
		HTTPSProxy: "http://secure-proxy.local:3128",
		NoProxy:    "internal.example.com",
	}

	tests := []struct {
		name string
		base string
		want string
	}{
		{"http", "http://support.example.com", "http://proxy.local:3128"},
		{"https", "https://support.example.com", "http://secure-proxy.local:3128"},
		{"no proxy host", "https://internal.example.com", ""},
		{"localhost is direct", "http://localhost:5000", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, err := url.Parse(tt.base)
			require.NoError(t, err)
			got, err := proxyFromConfig(cfg, base)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
