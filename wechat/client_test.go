package wechat

import (
	"net/http"
	"strings"
)

// rewriteTransport redirects requests aimed at the real API host to a
// local httptest server, so that the hardcoded endpoint URLs can be
// exercised in tests.
type rewriteTransport struct {
	base   http.RoundTripper
	target string // e.g. "http://127.0.0.1:PORT"
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = strings.TrimPrefix(rt.target, "http://")
	return rt.base.RoundTrip(req)
}

// newTestClient returns a client whose requests all land on the test
// server at target
func newTestClient(target, appID, appSecret string) *Client {
	c := New(appID, appSecret)
	c.HTTP = &http.Client{
		Transport: rewriteTransport{base: http.DefaultTransport, target: target},
	}
	return c
}
