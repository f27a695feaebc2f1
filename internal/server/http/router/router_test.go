package router

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/eventhub/internal/metrics"
	"github.com/polkiloo/eventhub/internal/ratelimit"
	"github.com/polkiloo/eventhub/internal/server/http/handlers"
	testhelpers "github.com/polkiloo/eventhub/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func serve(engine *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "192.0.2.10:5555"
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	return resp
}

func TestSetupRoutes(t *testing.T) {
	engine := Setup(Params{Facade: testhelpers.EventhubFacadeStub{}, Logger: discardLogger(), Metrics: metrics.New()})

	cases := []struct {
		name    string
		method  string
		path    string
		body    string
		headers map[string]string
		status  int
	}{
		{name: "health", method: http.MethodGet, path: "/api/health", status: http.StatusOK},
		{name: "public event", method: http.MethodGet, path: "/api/events/evt_1", status: http.StatusOK},
		{name: "orders without token", method: http.MethodGet, path: "/api/orders", status: http.StatusUnauthorized},
		{name: "orders", method: http.MethodGet, path: "/api/orders", headers: map[string]string{"Authorization": "Bearer token"}, status: http.StatusOK},
		{name: "registrants", method: http.MethodGet, path: "/api/events/evt_1/orders", headers: map[string]string{"Authorization": "Bearer token"}, status: http.StatusOK},
		{name: "me", method: http.MethodGet, path: "/api/users/me", headers: map[string]string{"Authorization": "Bearer token"}, status: http.StatusOK},
		{
			name:    "checkout",
			method:  http.MethodPost,
			path:    "/api/checkout",
			body:    `{"eventId":"evt_1"}`,
			headers: map[string]string{"Authorization": "Bearer token", "Content-Type": "application/json"},
			status:  http.StatusOK,
		},
		{name: "stripe webhook without auth", method: http.MethodPost, path: "/api/webhook/stripe", body: "{}", headers: map[string]string{"Stripe-Signature": "sig"}, status: http.StatusOK},
		{name: "identity webhook disabled", method: http.MethodPost, path: "/api/webhook/clerk", body: "{}", status: http.StatusNotFound},
		{name: "metrics", method: http.MethodGet, path: "/metrics", status: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := serve(engine, tc.method, tc.path, tc.body, tc.headers)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, resp.Code, resp.Body.String())
			}
		})
	}
}

func TestSetupIdentityWebhookEnabled(t *testing.T) {
	engine := Setup(Params{Facade: testhelpers.EventhubFacadeStub{IdentityEnabled: true}, Logger: discardLogger()})
	if resp := serve(engine, http.MethodPost, "/api/webhook/clerk", "{}", nil); resp.Code != http.StatusOK {
		t.Fatalf("expected identity webhook route, got %d", resp.Code)
	}
	if resp := serve(engine, http.MethodGet, "/metrics", "", nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected no metrics route without recorder, got %d", resp.Code)
	}
}

func TestSetupRateLimitSkipsWebhooks(t *testing.T) {
	limiter, err := ratelimit.New("1-M", "", discardLogger())
	if err != nil {
		t.Fatalf("limiter: %v", err)
	}
	engine := Setup(Params{Facade: testhelpers.EventhubFacadeStub{}, Logger: discardLogger(), Limiter: limiter})

	if resp := serve(engine, http.MethodGet, "/api/health", "", nil); resp.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", resp.Code)
	}
	if resp := serve(engine, http.MethodGet, "/api/health", "", nil); resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be limited, got %d", resp.Code)
	}
	for i := 0; i < 3; i++ {
		resp := serve(engine, http.MethodPost, "/api/webhook/stripe", "{}", map[string]string{"Stripe-Signature": "sig"})
		if resp.Code != http.StatusOK {
			t.Fatalf("webhook delivery %d must not be limited, got %d", i, resp.Code)
		}
	}
}

func TestSetupResponsesCarryRequestID(t *testing.T) {
	engine := Setup(Params{Facade: testhelpers.EventhubFacadeStub{}, Logger: discardLogger()})
	resp := serve(engine, http.MethodGet, "/api/health", "", map[string]string{"X-Request-ID": "abc"})
	if resp.Header().Get("X-Request-ID") != "abc" {
		t.Fatalf("expected request id header, got %q", resp.Header().Get("X-Request-ID"))
	}
}

var _ handlers.EventhubFacade = testhelpers.EventhubFacadeStub{}
