package utils

import (
	"crypto/tls"
	"net/http"
	"time"
)

// DefaultUserAgent is sent when no user agent is configured
const DefaultUserAgent = "JobMatch/1.0"

// NewHTTPClient creates a configured HTTP client for listing sources.
// Every request carries the given user agent and Accept-Language unless the
// caller already set them.
func NewHTTPClient(timeout time.Duration, userAgent, acceptLanguage string) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: HeaderMiddleware(transport, userAgent, acceptLanguage),
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
}

// HeaderMiddleware adds browser-like default headers to requests
func HeaderMiddleware(next http.RoundTripper, userAgent, acceptLanguage string) http.RoundTripper {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &headerTransport{next: next, userAgent: userAgent, acceptLanguage: acceptLanguage}
}

type headerTransport struct {
	next           http.RoundTripper
	userAgent      string
	acceptLanguage string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if t.acceptLanguage != "" && req.Header.Get("Accept-Language") == "" {
		req.Header.Set("Accept-Language", t.acceptLanguage)
	}
	return t.next.RoundTrip(req)
}
