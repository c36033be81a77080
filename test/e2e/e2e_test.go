// test/e2e/e2e_test.go
package e2e

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonhttp "lead-webhook/internal/common/http"
	"lead-webhook/internal/common/logger"
	"lead-webhook/internal/common/observability"
	"lead-webhook/internal/leads/compose"
	"lead-webhook/internal/leads/extract"
	"lead-webhook/internal/notify"
	"lead-webhook/internal/server"
	leadintake "lead-webhook/internal/webhooks/lead-intake"
)

// fakeResend records the emails the service hands to the Resend API.
type fakeResend struct {
	mu     sync.Mutex
	emails []map[string]interface{}
	fail   bool
}

func (f *fakeResend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.URL.Path != "/emails" || r.Header.Get("Authorization") != "Bearer re_e2e" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"statusCode":401,"name":"validation_error","message":"API key is invalid"}`))
		return
	}
	if f.fail {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"The domain is not verified"}`))
		return
	}

	var email map[string]interface{}
	_ = json.NewDecoder(r.Body).Decode(&email)
	f.mu.Lock()
	f.emails = append(f.emails, email)
	f.mu.Unlock()
	_, _ = w.Write([]byte(`{"id":"re_e2e_1"}`))
}

func (f *fakeResend) sent() []map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]interface{}(nil), f.emails...)
}

// redirect sends every outbound request to the fake API.
type redirect struct {
	target *url.URL
}

func (rt redirect) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = rt.target.Scheme
	req.URL.Host = rt.target.Host
	req.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func startStack(t *testing.T, api *fakeResend) *httptest.Server {
	t.Helper()

	apiSrv := httptest.NewServer(api)
	t.Cleanup(apiSrv.Close)
	target, err := url.Parse(apiSrv.URL)
	require.NoError(t, err)

	log := logger.NewTestLogger(t)
	obs := observability.New("lead-webhook-e2e", observability.WithRegisterer(prometheus.NewRegistry()))

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	httpClient := &http.Client{Timeout: 5 * time.Second, Transport: redirect{target: target}}
	webhook, err := leadintake.NewHandler(&leadintake.Config{
		From:         "Hello Movers <onboarding@resend.dev>",
		To:           "owner@example.com",
		MaxBodyBytes: leadintake.DefaultMaxBodyBytes,
	}, leadintake.ServiceDependencies{
		Logger:        log,
		Extractor:     extract.Default(),
		Composer:      compose.New(compose.Options{Location: loc}),
		Sender:        notify.NewResendSender("re_e2e", httpClient, log),
		Observability: obs,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(server.NewRouter(server.Options{Logger: log, Webhook: webhook}))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestFullE2E(t *testing.T) {
	api := &fakeResend{}
	srv := startStack(t, api)

	t.Run("liveness", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, server.Banner, string(body))
	})

	t.Run("sequence payload is delivered", func(t *testing.T) {
		resp, out := postJSON(t, srv.URL+"/webhook",
			`{"analysis":{"data_collection":[{"data_collection_id":"caller_name","value":"Jane Doe"},{"data_collection_id":"reason_for_calling","value":"Local move"}]}}`)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, out["success"])
		assert.Equal(t, "Email sent", out["message"])
		assert.NotEmpty(t, resp.Header.Get(commonhttp.RequestIDHeader))

		sent := api.sent()
		require.NotEmpty(t, sent)
		last := sent[len(sent)-1]
		assert.Equal(t, "New Lead: Jane Doe - Local move", last["subject"])
		assert.Equal(t, []interface{}{"owner@example.com"}, last["to"])
		assert.Equal(t, "Hello Movers <onboarding@resend.dev>", last["from"])
		assert.Contains(t, last["html"], "Jane Doe")
		assert.Contains(t, last["text"], "Reason for Call: Local move")
	})

	t.Run("wrapped results payload is delivered", func(t *testing.T) {
		resp, _ := postJSON(t, srv.URL+"/webhook",
			`{"data":{"analysis":{"data_collection_results":{"phone_number":{"value":"555-1234"}}}}}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		sent := api.sent()
		last := sent[len(sent)-1]
		assert.Equal(t, "New Lead: Not provided - Not provided", last["subject"])
		assert.Contains(t, last["html"], "555-1234")
	})

	t.Run("malformed json is rejected", func(t *testing.T) {
		before := len(api.sent())
		resp, out := postJSON(t, srv.URL+"/webhook", `{"data":`)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, false, out["success"])
		assert.Contains(t, out["error"], "Invalid webhook payload")
		assert.Len(t, api.sent(), before)
	})
}

func TestE2E_ProviderRejection(t *testing.T) {
	api := &fakeResend{fail: true}
	srv := startStack(t, api)

	resp, out := postJSON(t, srv.URL+"/webhook", `{}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["error"], "Notification delivery failed")
	assert.Contains(t, out["error"], "The domain is not verified")
}
