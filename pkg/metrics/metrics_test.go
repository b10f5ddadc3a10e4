package metrics_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoicepro/pkg/metrics"
)

func TestMetrics_ObserveExport(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObserveExport("layout", nil, 10*time.Millisecond)
	m.ObserveExport("layout", nil, 20*time.Millisecond)
	m.ObserveExport("layout", errors.New("x"), time.Millisecond)

	n, err := testutil.GatherAndCount(reg, "invoicepro_exports_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "una serie por resultado")

	expected := `
# HELP invoicepro_exports_total Exportaciones de PDF por motor y resultado.
# TYPE invoicepro_exports_total counter
invoicepro_exports_total{engine="layout",result="error"} 1
invoicepro_exports_total{engine="layout",result="ok"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "invoicepro_exports_total"))
}

func TestMetrics_ActiveSessions(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.SetActiveSessions(3)

	expected := `
# HELP invoicepro_active_sessions Sesiones de edición vivas.
# TYPE invoicepro_active_sessions gauge
invoicepro_active_sessions 3
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "invoicepro_active_sessions"))
}
