package metrics

import (
	"errors"
	"time"

	"github.com/muhammadheryan/mfg-stock/constant"
	cerr "github.com/muhammadheryan/mfg-stock/utils/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// StockMetrics counts stock operations by outcome. A nil *StockMetrics is a no-op.
type StockMetrics struct {
	duration   *prometheus.HistogramVec
	operations *prometheus.CounterVec
}

// NewStockMetrics registers the stock metrics on the provided registerer.
func NewStockMetrics(reg prometheus.Registerer) *StockMetrics {
	if reg == nil {
		return nil
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stock_operation_duration_seconds",
		Help:    "Duration of stock operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_operations_total",
		Help: "Stock operations by outcome.",
	}, []string{"operation", "result"})
	reg.MustRegister(duration, operations)
	return &StockMetrics{duration: duration, operations: operations}
}

// Observe records one finished operation started at start.
func (m *StockMetrics) Observe(action constant.StockAction, start time.Time, err error) {
	if m == nil {
		return
	}
	op := string(action)
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	m.operations.WithLabelValues(op, Result(err)).Inc()
}

// Result maps an operation error to a low-cardinality label.
func Result(err error) string {
	if err == nil {
		return "ok"
	}
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		return "internal"
	}
	switch ce.ErrorType() {
	case constant.ErrInsufficientStock:
		return "insufficient_stock"
	case constant.ErrNotFound, constant.ErrReservationNotFound:
		return "not_found"
	case constant.ErrInvalidRequest:
		return "invalid"
	default:
		return "internal"
	}
}
