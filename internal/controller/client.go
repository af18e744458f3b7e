package controller

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"

	"unifimac/pkg/logging"
)

const (
	// DefaultTimeout is applied to every HTTP call unless overridden.
	DefaultTimeout = 10 * time.Second

	subsystem = "Controller"

	loginPath = "/api/login"
	sitesPath = "/api/self/sites"
)

// Client holds one authenticated session against a single controller.
// A Client is not safe for concurrent use; callers that share one must
// serialize access.
type Client struct {
	baseURL       string
	verifyTLS     bool
	timeout       time.Duration
	http          *retryablehttp.Client
	authenticated bool
}

// Option configures a Client.
type Option func(*Client)

// WithVerifyTLS enables or disables certificate verification. Verification is
// off by default so that controllers with self-signed certificates work.
func WithVerifyTLS(verify bool) Option {
	return func(c *Client) {
		c.verifyTLS = verify
	}
}

// WithTimeout sets the per-request timeout. Non-positive values are ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the HTTP client. The client's jar, timeout and
// transport are left as given.
func WithHTTPClient(httpClient *retryablehttp.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

// New returns a Client for the controller at baseURL, e.g.
// https://10.0.0.1:8443. A trailing slash is removed.
func New(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid controller URL %q: %w", baseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid controller URL %q: expected http(s)://host[:port]", baseURL)
	}

	c := &Client{
		baseURL: trimmed,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http, err = newHTTPClient(c.verifyTLS, c.timeout)
		if err != nil {
			return nil, err
		}
	}
	return c, nil
}

// newHTTPClient builds a session-keeping HTTP client that never retries.
func newHTTPClient(verifyTLS bool, timeout time.Duration) (*retryablehttp.Client, error) {
	transport := cleanhttp.DefaultPooledTransport()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: !verifyTLS} // #nosec G402 -- opt-in verification

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	c := retryablehttp.NewClient()
	c.HTTPClient.Transport = transport
	c.HTTPClient.Timeout = timeout
	c.HTTPClient.Jar = jar
	c.RetryMax = 0
	c.CheckRetry = func(ctx context.Context, _ *http.Response, _ error) (bool, error) {
		return false, ctx.Err()
	}
	c.ErrorHandler = retryablehttp.PassthroughErrorHandler
	c.Logger = httpLogger{}
	return c, nil
}

// resetSession replaces the cookie jar so no cookie of an earlier session
// is sent with the next login.
func (c *Client) resetSession() error {
	if c.http == nil || c.http.HTTPClient == nil || c.http.HTTPClient.Jar == nil {
		return nil
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return fmt.Errorf("failed to create cookie jar: %w", err)
	}
	c.http.HTTPClient.Jar = jar
	return nil
}

// BaseURL returns the normalized controller URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Authenticated reports whether Login has succeeded on this client.
func (c *Client) Authenticated() bool {
	return c.authenticated
}

// Login authenticates against the controller and keeps the session cookie
// for subsequent calls. Any previous session is dropped first, so a failed
// login leaves the client unauthenticated.
func (c *Client) Login(ctx context.Context, username, password string) error {
	endpoint := c.baseURL + loginPath
	logging.Debug(subsystem, "Logging into UniFi controller at %s", c.baseURL)

	c.authenticated = false
	if err := c.resetSession(); err != nil {
		return &AuthenticationError{Endpoint: endpoint, Reason: err}
	}

	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return &AuthenticationError{Endpoint: endpoint, Reason: err}
	}

	status, body, err := c.do(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return &AuthenticationError{Endpoint: endpoint, Reason: err}
	}
	if !isSuccess(status) {
		reason := envelopeMessage(body)
		if reason == "" {
			reason = http.StatusText(status)
		}
		return &AuthenticationError{Endpoint: endpoint, StatusCode: status, Reason: fmt.Errorf("%s", reason)}
	}

	c.authenticated = true
	logging.Debug(subsystem, "Logged in as %s", username)
	return nil
}

// ListSites returns the sites visible to the logged-in user, ordered by
// description ignoring case.
func (c *Client) ListSites(ctx context.Context) ([]Site, error) {
	logging.Debug(subsystem, "Fetching available sites")

	endpoint := c.baseURL + sitesPath
	records, err := c.getCollection(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	sites, err := decodeSites(records)
	if err != nil {
		return nil, &ProtocolError{Endpoint: endpoint, Reason: err}
	}

	sort.SliceStable(sites, func(i, j int) bool {
		return strings.ToLower(sites[i].Description) < strings.ToLower(sites[j].Description)
	})
	return sites, nil
}

// ListWirelessProfiles returns the WLANs of a site, ordered by name ignoring
// case. A WLAN without a filter list has an empty MACFilterList.
func (c *Client) ListWirelessProfiles(ctx context.Context, siteCode string) ([]WirelessProfile, error) {
	logging.Debug(subsystem, "Fetching WLAN profiles for site %s", siteCode)

	endpoint := c.sitePath(siteCode, "rest/wlanconf")
	records, err := c.getCollection(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	profiles, err := decodeWirelessProfiles(records)
	if err != nil {
		return nil, &ProtocolError{Endpoint: endpoint, Reason: err}
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		return strings.ToLower(profiles[i].Name) < strings.ToLower(profiles[j].Name)
	})
	return profiles, nil
}

// ListKnownClients returns a mapping of upper-cased MAC address to display
// name for every device the site has seen. Devices without a usable name are
// left out so that labelling falls back to Unknown.
func (c *Client) ListKnownClients(ctx context.Context, siteCode string) (map[string]string, error) {
	logging.Debug(subsystem, "Fetching known devices for site %s", siteCode)

	endpoint := c.sitePath(siteCode, "stat/alluser")
	records, err := c.getCollection(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	known, err := decodeKnownClients(records)
	if err != nil {
		return nil, &ProtocolError{Endpoint: endpoint, Reason: err}
	}
	return known, nil
}

// ResolveSite fetches the site list and returns the site whose description
// or code matches hint, ignoring case.
func (c *Client) ResolveSite(ctx context.Context, hint string) (Site, error) {
	sites, err := c.ListSites(ctx)
	if err != nil {
		return Site{}, err
	}
	return FindSite(sites, hint)
}

// FetchFilterDetails returns the named WLAN of a site together with the
// site's known-client mapping. The WLAN name must match exactly.
func (c *Client) FetchFilterDetails(ctx context.Context, siteCode, wlanName string) (WirelessProfile, map[string]string, error) {
	profiles, err := c.ListWirelessProfiles(ctx, siteCode)
	if err != nil {
		return WirelessProfile{}, nil, err
	}
	profile, err := FindWirelessProfile(profiles, wlanName)
	if err != nil {
		return WirelessProfile{}, nil, err
	}
	known, err := c.ListKnownClients(ctx, siteCode)
	if err != nil {
		return WirelessProfile{}, nil, err
	}
	return profile, known, nil
}

// FindSite matches hint against the description or code of each site,
// ignoring case.
func FindSite(sites []Site, hint string) (Site, error) {
	needle := strings.ToLower(strings.TrimSpace(hint))
	for _, site := range sites {
		if strings.ToLower(site.Description) == needle || strings.ToLower(site.Code) == needle {
			return site, nil
		}
	}

	available := make([]string, 0, len(sites))
	for _, site := range sites {
		available = append(available, site.Description)
	}
	return Site{}, &NotFoundError{Kind: KindSite, Name: hint, Available: available}
}

// FindWirelessProfile returns the profile whose name equals name exactly.
func FindWirelessProfile(profiles []WirelessProfile, name string) (WirelessProfile, error) {
	for _, profile := range profiles {
		if profile.Name == name {
			return profile, nil
		}
	}

	available := make([]string, 0, len(profiles))
	for _, profile := range profiles {
		available = append(available, profile.Name)
	}
	sort.Strings(available)
	return WirelessProfile{}, &NotFoundError{Kind: KindWLAN, Name: name, Available: available}
}

func (c *Client) sitePath(siteCode, resource string) string {
	return fmt.Sprintf("%s/api/s/%s/%s", c.baseURL, url.PathEscape(siteCode), resource)
}

// getCollection performs an authenticated GET and returns the records of the
// response's data array.
func (c *Client) getCollection(ctx context.Context, endpoint string) ([]json.RawMessage, error) {
	if !c.authenticated {
		return nil, &NotAuthenticatedError{}
	}

	status, body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Reason: err}
	}
	if !isSuccess(status) {
		return nil, &TransportError{Endpoint: endpoint, StatusCode: status, Message: envelopeMessage(body)}
	}

	records, err := decodeCollection(body)
	if err != nil {
		return nil, &ProtocolError{Endpoint: endpoint, Reason: err}
	}
	return records, nil
}

// do sends one request and returns the status code and full body.
func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, data, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
