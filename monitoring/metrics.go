// Package monitoring 提供Prometheus指标
package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// 评估指标
	metricEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "slicedss",
			Name:      "evaluations_total",
			Help:      "Slice evaluations by recommended slice label",
		},
		[]string{"slice"},
	)

	metricEvaluationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "slicedss",
			Name:      "evaluation_duration_seconds",
			Help:      "Time spent scaling and classifying one request",
			Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 10),
		},
	)

	metricRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "slicedss",
			Name:      "rejected_requests_total",
			Help:      "Requests rejected for an out-of-range field",
		},
		[]string{"field"},
	)

	// 缓存指标
	metricCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "slicedss",
			Name:      "result_cache_lookups_total",
			Help:      "Result cache lookups by outcome",
		},
		[]string{"result"},
	)

	// HTTP指标
	metricHTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "slicedss",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "code"},
	)

	metricHTTPSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "slicedss",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// ObserveEvaluation 记录一次成功评估
func ObserveEvaluation(slice int, d time.Duration) {
	metricEvaluations.WithLabelValues(strconv.Itoa(slice)).Inc()
	metricEvaluationSeconds.Observe(d.Seconds())
}

// ObserveRejected 记录一次越界拒绝
func ObserveRejected(field string) {
	metricRejected.WithLabelValues(field).Inc()
}

// ObserveCache 记录缓存命中情况
func ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	metricCache.WithLabelValues(result).Inc()
}

// ObserveHTTP 记录HTTP请求
func ObserveHTTP(method, route string, code int, d time.Duration) {
	metricHTTPRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	metricHTTPSeconds.WithLabelValues(method, route).Observe(d.Seconds())
}
