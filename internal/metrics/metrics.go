package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ==================== 指标注册表 ====================

// 请求时延分桶（秒），5ms ~ 5s
var requestDurationBuckets = []float64{
	0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0,
}

var (
	// Registry 应用专属注册表
	Registry = prometheus.NewRegistry()

	serviceInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "service_info",
			Help: "Static service metadata.",
		},
		[]string{"service", "version"},
	)

	httpInFlight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of in-flight HTTP requests.",
		},
		[]string{"service", "method", "route"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"service", "method", "route", "status_code"},
	)

	httpErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_errors_total",
			Help: "Total number of error HTTP requests (4xx, 5xx).",
		},
		[]string{"service", "method", "route", "status_code"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: requestDurationBuckets,
		},
		[]string{"service", "method", "route"},
	)

	// 业务事件计数器
	storesCreated    = newBusinessCounter("stores_created_total", "Total number of stores created.")
	itemsCreated     = newBusinessCounter("items_created_total", "Total number of items created.")
	tagsCreated      = newBusinessCounter("tags_created_total", "Total number of tags created.")
	storeSearches    = newBusinessCounter("store_search_total", "Total number of store search requests.")
	storeItemLinks   = newBusinessCounter("store_item_link_total", "Total number of store-item link operations.")
	storeItemUnlinks = newBusinessCounter("store_item_unlink_total", "Total number of store-item unlink operations.")
	itemTagLinks     = newBusinessCounter("item_tag_link_total", "Total number of item-tag link operations.")
	itemTagUnlinks   = newBusinessCounter("item_tag_unlink_total", "Total number of item-tag unlink operations.")
	usersRegistered  = newBusinessCounter("users_registered_total", "Total number of registered users.")
	userLogins       = newBusinessCounter("user_login_total", "Total number of successful user logins.")
	tokenRefreshes   = newBusinessCounter("token_refresh_total", "Total number of token refreshes.")
	userLogouts      = newBusinessCounter("user_logout_total", "Total number of logouts.")
)

// 当前服务名，作为所有指标的 service 标签
var serviceName = "store-api"

func newBusinessCounter(name, help string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: name, Help: help},
		[]string{"service"},
	)
}

func init() {
	Registry.MustRegister(
		serviceInfo,
		httpInFlight,
		httpRequestsTotal,
		httpErrorsTotal,
		httpDuration,
		storesCreated,
		itemsCreated,
		tagsCreated,
		storeSearches,
		storeItemLinks,
		storeItemUnlinks,
		itemTagLinks,
		itemTagUnlinks,
		usersRegistered,
		userLogins,
		tokenRefreshes,
		userLogouts,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Init 设置服务元信息
func Init(service, version string) {
	serviceName = service
	serviceInfo.WithLabelValues(service, version).Set(1)
}

// Handler 返回 Prometheus 文本格式的拉取端点
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ==================== HTTP 指标 ====================

// RequestStarted 请求进入，in-flight +1
func RequestStarted(method, route string) {
	httpInFlight.WithLabelValues(serviceName, method, route).Inc()
}

// RequestFinished 请求完成（无论成败），in-flight -1，记录计数与时延
func RequestFinished(method, route string, status int, seconds float64) {
	httpInFlight.WithLabelValues(serviceName, method, route).Dec()

	code := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(serviceName, method, route, code).Inc()
	if status >= 400 {
		httpErrorsTotal.WithLabelValues(serviceName, method, route, code).Inc()
	}
	httpDuration.WithLabelValues(serviceName, method, route).Observe(seconds)
}

// ==================== 业务指标 ====================

func IncStoreCreated()    { storesCreated.WithLabelValues(serviceName).Inc() }
func IncItemCreated()     { itemsCreated.WithLabelValues(serviceName).Inc() }
func IncTagCreated()      { tagsCreated.WithLabelValues(serviceName).Inc() }
func IncStoreSearch()     { storeSearches.WithLabelValues(serviceName).Inc() }
func IncStoreItemLink()   { storeItemLinks.WithLabelValues(serviceName).Inc() }
func IncStoreItemUnlink() { storeItemUnlinks.WithLabelValues(serviceName).Inc() }
func IncItemTagLink()     { itemTagLinks.WithLabelValues(serviceName).Inc() }
func IncItemTagUnlink()   { itemTagUnlinks.WithLabelValues(serviceName).Inc() }
func IncUserRegistered()  { usersRegistered.WithLabelValues(serviceName).Inc() }
func IncUserLogin()       { userLogins.WithLabelValues(serviceName).Inc() }
func IncTokenRefresh()    { tokenRefreshes.WithLabelValues(serviceName).Inc() }
func IncUserLogout()      { userLogouts.WithLabelValues(serviceName).Inc() }
