package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(httpRequestsTotal) }

var httpRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests served, by route, method and status class.",
	},
	[]string{"route", "method", "status"},
)

func IncHTTPRequest(route, method string, status int) {
	httpRequestsTotal.WithLabelValues(norm(route), norm(method), strconv.Itoa(status)).Inc()
}
