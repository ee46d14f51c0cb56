package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newTestRouter builds the full route table over lazy database clients.
// No request below ever reaches a repository, so nothing dials out.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	// NewRouter registers collectors with the Prometheus default registry;
	// give each test its own registry so repeated builds don't collide.
	reg := prometheus.NewRegistry()
	origRegisterer, origGatherer := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	prometheus.DefaultRegisterer, prometheus.DefaultGatherer = reg, reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer, prometheus.DefaultGatherer = origRegisterer, origGatherer
	})

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://127.0.0.1:27017"))
	if err != nil {
		t.Fatalf("mongo client: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	return NewRouter(client.Database("agrifield_test"), redis.NewClient(&redis.Options{}), Options{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
		Log:       zerolog.Nop(),
	})
}

func TestRouter_ProtectedRoutesRejectMissingToken(t *testing.T) {
	e := newTestRouter(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/crp"},
		{http.MethodGet, "/api/crp"},
		{http.MethodGet, "/api/crp/crp-1"},
		{http.MethodPut, "/api/crp/crp-1"},
		{http.MethodDelete, "/api/crp/crp-1"},
		{http.MethodGet, "/api/crp/dashboard"},
		{http.MethodPost, "/api/expert"},
		{http.MethodGet, "/api/expert"},
		{http.MethodPut, "/api/expert/expert-1"},
		{http.MethodDelete, "/api/expert/expert-1"},
		{http.MethodPost, "/api/expert/link-crp"},
		{http.MethodGet, "/api/supervisor/overview"},
		{http.MethodPost, "/api/trainings"},
		{http.MethodPost, "/api/sms/send"},
		{http.MethodGet, "/api/farmer-auth/profile"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader("{}"))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401\nbody: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouter_OpenRoutesSkipAuth(t *testing.T) {
	e := newTestRouter(t)

	// Malformed login payloads must fail validation, not authentication.
	req := httptest.NewRequest(http.MethodPost, "/api/crp-auth/login", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("login without credentials: status = %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("liveness: status = %d, want 200", rec.Code)
	}
}
