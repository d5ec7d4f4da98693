package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultUserAgent is a common desktop browser string; some tutorial sites
// reject requests carrying default Go client identifiers.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Client wraps http.Client with the politeness rules for sequential
// scraping: a pause drawn uniformly at random from [DelayMin, DelayMax]
// before every request, a per-request timeout, and a pinned User-Agent.
// Each Get performs exactly one attempt; the caller skips failed topics
// instead of retrying.
type Client struct {
	HTTPClient *http.Client
	// UserAgent is sent with every request. Empty means DefaultUserAgent.
	UserAgent string
	// Timeout bounds each request. Zero disables the bound.
	Timeout time.Duration
	// DelayMin and DelayMax bound the politeness pause. Both zero disables
	// the pause; equal values produce a fixed pause.
	DelayMin time.Duration
	DelayMax time.Duration
	// Sleep is the wait function used for the pause; nil means time.Sleep.
	// Tests inject it to run without real delays.
	Sleep func(time.Duration)
	// RedirectMaxHops caps redirect following to avoid loops. Zero means
	// default (5).
	RedirectMaxHops int
}

// Get issues the rate-limited GET for one page and returns the body and
// content type. Any network error, timeout, non-2xx status, or non-HTML
// content type is returned as an error.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, string, error) {
	c.pause()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("new request: %w", err)
	}
	if req.URL == nil || !isHTTPScheme(req.URL) {
		return nil, "", fmt.Errorf("unsupported URL scheme: %q", rawURL)
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(req.Context(), c.Timeout)
		defer cancel()
		req = req.WithContext(ctx)
	}

	resp, err := c.getHTTPClient().Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	contentType := resp.Header.Get("Content-Type")
	if !isAllowedHTMLContentType(contentType) {
		return nil, "", fmt.Errorf("unsupported content type: %s", contentType)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}
	return b, contentType, nil
}

// pause blocks for a random duration in [DelayMin, DelayMax]. It runs before
// every request, including the first, and is the sole backpressure toward
// the scraped site.
func (c *Client) pause() {
	min, max := c.DelayMin, c.DelayMax
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	d := min
	if max > min {
		d = min + rand.N(max-min+1)
	}
	if d <= 0 {
		return
	}
	sleep := c.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	sleep(d)
}

func (c *Client) getHTTPClient() *http.Client {
	if c.HTTPClient != nil {
		// Clone to attach our redirect policy without mutating caller's client
		base := *c.HTTPClient
		base.CheckRedirect = c.checkRedirectFunc()
		return &base
	}
	return &http.Client{Timeout: c.Timeout, CheckRedirect: c.checkRedirectFunc()}
}

func (c *Client) checkRedirectFunc() func(req *http.Request, via []*http.Request) error {
	max := c.RedirectMaxHops
	if max <= 0 {
		max = 5
	}
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= max {
			return errors.New("too many redirects")
		}
		// Only allow http/https during redirects
		if req.URL == nil || !isHTTPScheme(req.URL) {
			return errors.New("redirect to unsupported scheme")
		}
		return nil
	}
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

func isAllowedHTMLContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(ct))
	// allow text/html variants and application/xhtml+xml
	return strings.HasPrefix(ct, "text/html") || strings.HasPrefix(ct, "application/xhtml+xml")
}
