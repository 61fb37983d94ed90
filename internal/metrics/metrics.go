package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "HTTP requests by route, method and status."},
		[]string{"path", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request latency in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"path", "method"},
	)
	BookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "bookings_created_total", Help: "Bookings successfully created."},
	)
	SlotConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "booking_slot_conflicts_total", Help: "Booking attempts rejected because the slot was taken."},
	)
	StatusTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "booking_status_transitions_total", Help: "Applied booking status transitions."},
		[]string{"from", "to"},
	)
	Notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "notifications_total", Help: "Notification delivery attempts by kind and result."},
		[]string{"kind", "result"},
	)
	LeaveDates = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "employee_leave_dates_total", Help: "Leave date requests by outcome."},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequests,
		HTTPLatency,
		BookingsCreated,
		SlotConflicts,
		StatusTransitions,
		Notifications,
		LeaveDates,
	)
}

// Handler records request count and latency per matched route.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPLatency.WithLabelValues(path, c.Request.Method).Observe(time.Since(start).Seconds())
		HTTPRequests.WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

func Exposer() gin.HandlerFunc { return gin.WrapH(promhttp.Handler()) }
