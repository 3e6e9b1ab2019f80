package catalogapi

import (
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// SessionCookieName is the cookie the service sets on login.
const SessionCookieName = "catalog_session"

// Client talks to the catalog service. It keeps the session cookie in its
// jar, so one Client is one logged-in browser.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with an empty cookie jar.
func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil) // only fails on a non-nil options with a bad PSL
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}
}

// WithHTTPClient swaps the transport, keeping the jar when hc has none.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc.Jar == nil && c.HTTPClient != nil {
		hc.Jar = c.HTTPClient.Jar
	}
	c.HTTPClient = hc
	return c
}
