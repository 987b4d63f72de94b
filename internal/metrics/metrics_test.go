package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestBusinessCounters(t *testing.T) {
	before := testutil.ToFloat64(storesCreated.WithLabelValues(serviceName))
	IncStoreCreated()
	IncStoreCreated()
	after := testutil.ToFloat64(storesCreated.WithLabelValues(serviceName))

	if got := after - before; got != 2 {
		t.Errorf("stores_created_total 增量 = %v, want 2", got)
	}
}

func TestRequestLifecycleMetrics(t *testing.T) {
	inFlight := httpInFlight.WithLabelValues(serviceName, "GET", "/store")

	RequestStarted("GET", "/store")
	if got := testutil.ToFloat64(inFlight); got != 1 {
		t.Errorf("in-flight = %v, want 1", got)
	}

	RequestFinished("GET", "/store", http.StatusOK, 0.02)
	if got := testutil.ToFloat64(inFlight); got != 0 {
		t.Errorf("请求完成后 in-flight = %v, want 0", got)
	}

	// 4xx 进错误计数，2xx 不进
	errBefore := testutil.ToFloat64(httpErrorsTotal.WithLabelValues(serviceName, "GET", "/store", "404"))
	RequestStarted("GET", "/store")
	RequestFinished("GET", "/store", http.StatusNotFound, 0.01)
	errAfter := testutil.ToFloat64(httpErrorsTotal.WithLabelValues(serviceName, "GET", "/store", "404"))
	if errAfter-errBefore != 1 {
		t.Errorf("404 应计入 http_requests_errors_total")
	}

	okErrors := testutil.ToFloat64(httpErrorsTotal.WithLabelValues(serviceName, "GET", "/store", "200"))
	if okErrors != 0 {
		t.Errorf("200 不应计入错误计数, got %v", okErrors)
	}
}

func TestHandler_ExposesMetrics(t *testing.T) {
	Init("store-api-test", "v1")
	IncStoreCreated()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	body := w.Body.String()
	for _, name := range []string{
		"service_info",
		"stores_created_total",
		"http_requests_total",
		"http_request_duration_seconds",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("拉取端点缺少指标 %s", name)
		}
	}
}
