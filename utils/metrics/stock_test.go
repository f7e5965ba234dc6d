package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/muhammadheryan/mfg-stock/constant"
	cerr "github.com/muhammadheryan/mfg-stock/utils/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestStockMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStockMetrics(reg)

	m.Observe(constant.StockActionReserve, time.Now(), nil)
	m.Observe(constant.StockActionReserve, time.Now(), cerr.SetCustomError(constant.ErrInsufficientStock))
	m.Observe(constant.StockActionReserve, time.Now(), cerr.SetCustomError(constant.ErrInsufficientStock))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("RESERVE", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("RESERVE", "insufficient_stock")))
}

func TestStockMetrics_NilIsNoop(t *testing.T) {
	var m *StockMetrics
	assert.NotPanics(t, func() { m.Observe(constant.StockActionAdjust, time.Now(), nil) })
	assert.Nil(t, NewStockMetrics(nil))
}

func TestResult(t *testing.T) {
	assert.Equal(t, "ok", Result(nil))
	assert.Equal(t, "not_found", Result(cerr.SetCustomError(constant.ErrReservationNotFound)))
	assert.Equal(t, "invalid", Result(cerr.SetCustomError(constant.ErrInvalidRequest)))
	assert.Equal(t, "internal", Result(cerr.SetCustomError(constant.ErrInternal)))
	assert.Equal(t, "internal", Result(errors.New("boom")))
}
