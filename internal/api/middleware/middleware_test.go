package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/ForestReservationService/pkg/metrics"
)

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(GetRequestID(r.Context())))
}

func TestRequestID_GeneratesNew(t *testing.T) {
	rec := httptest.NewRecorder()
	RequestID(http.HandlerFunc(okHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	headerID := rec.Header().Get(RequestIDHeader)
	assert.Len(t, headerID, 36)
	assert.Equal(t, headerID, rec.Body.String())
}

func TestRequestID_KeepsExisting(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "existing-request-id-123")

	rec := httptest.NewRecorder()
	RequestID(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

	assert.Equal(t, "existing-request-id-123", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "existing-request-id-123", rec.Body.String())
}

func TestAdminAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name     string
		hash     string
		password string
		status   int
	}{
		{name: "valid password", hash: string(hash), password: "secret", status: http.StatusOK},
		{name: "wrong password", hash: string(hash), password: "wrong", status: http.StatusUnauthorized},
		{name: "missing header", hash: string(hash), password: "", status: http.StatusUnauthorized},
		{name: "hash not configured", hash: "", password: "secret", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/admin/verify", nil)
			if tt.password != "" {
				req.Header.Set(AdminPasswordHeader, tt.password)
			}

			rec := httptest.NewRecorder()
			AdminAuth(tt.hash, nopLogger{})(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.NewWithRegisterer(prometheus.NewRegistry(), "test")

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/api/reservations/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	for _, id := range []string{"AR-240601-0001", "AR-240601-0002"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reservations/"+id, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	counter := m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/reservations/{id}", "404")
	assert.Equal(t, float64(2), testutil.ToFloat64(counter))
}

func TestMetricsMiddleware_NilMetrics(t *testing.T) {
	rec := httptest.NewRecorder()
	MetricsMiddleware(nil)(http.HandlerFunc(okHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
