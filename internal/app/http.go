package app

import (
	"net"
	"net/http"
	"net/http/cookiejar"
	"time"
)

// newSessionHTTPClient returns an HTTP client shaped for polite sequential
// scraping: a cookie jar so the target site sees one session across topics,
// and a small keep-alive pool since requests go to a handful of hosts one at
// a time. Per-request deadlines come from the fetch layer, not from here.
func newSessionHTTPClient() *http.Client {
	jar, _ := cookiejar.New(nil)

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          8,
		MaxIdleConnsPerHost:   2,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Jar:       jar,
		Transport: transport,
	}
}
