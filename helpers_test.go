package main

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	jikan "github.com/Sethispr/jikanGo"
)

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON response: %v", err)
	}
}

// rewriteTransport redirects every request to a test server. The Jikan
// client library has no base URL option, so tests swap the transport
// instead.
type rewriteTransport struct {
	target *url.URL
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = rt.target.Scheme
	req.URL.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

// newTestJikanClient creates a Jikan client whose requests hit serverURL.
// Request paths keep the production "/v4" prefix.
func newTestJikanClient(t *testing.T, serverURL string) *jikan.Client {
	t.Helper()
	target, err := url.Parse(serverURL)
	if err != nil {
		t.Fatalf("failed to parse test server URL: %v", err)
	}
	return jikan.New(jikan.WithHTTPClient(&http.Client{
		Timeout:   5 * time.Second,
		Transport: rewriteTransport{target: target},
	}))
}
