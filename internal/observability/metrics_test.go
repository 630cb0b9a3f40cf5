package observability_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/MrJamesThe3rd/cofre/internal/observability"
)

func TestMetrics_Counters(t *testing.T) {
	m := observability.NewMetrics()

	m.IncrLicenseValidation("valid")
	m.IncrLicenseValidation("valid")
	m.IncrLicenseValidation("blocked")
	m.RecordInstallmentPlan(3)
	m.RecordInstallmentPlan(1)

	assert.Equal(t, 2.0, m.LicenseValidations("valid"))
	assert.Equal(t, 1.0, m.LicenseValidations("blocked"))
	assert.Equal(t, 0.0, m.LicenseValidations("not_found"))
	assert.Equal(t, 4.0, m.InstallmentsCreated())

	// A second instance must not collide with the first.
	other := observability.NewMetrics()
	assert.Equal(t, 0.0, other.InstallmentsCreated())
}

func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	m := observability.NewMetrics()

	r := chi.NewRouter()
	r.Use(observability.MetricsMiddleware(m))
	r.Get("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}

	n, err := testutil.GatherAndCount(m.Registry, "cofre_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestZapLoggerMiddleware_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	h := observability.ZapLoggerMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/fail":
			w.WriteHeader(http.StatusInternalServerError)
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	for _, path := range []string{"/ok", "/missing", "/fail"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
}

func TestInitTracer_NoEndpointIsNoop(t *testing.T) {
	shutdown, err := observability.InitTracer(context.Background(), "cofre", "")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
