package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.SheetRows(3)
	m.SheetRows(2)
	m.Skipped("no header row")
	m.Upserted(2 * time.Millisecond)
	m.RunFinished(time.Unix(1728640000, 0))

	assert.Equal(t, 5.0, testutil.ToFloat64(m.Rows))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Upserts))
	assert.Equal(t, 1728640000.0, testutil.ToFloat64(m.LastRun))

	path := filepath.Join(t.TempDir(), "portal_import.prom")
	require.NoError(t, WriteTextfile(path, reg))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `portal_import_sheets_skipped_total{reason="no header row"} 1`)
	assert.Contains(t, string(b), "portal_import_rows_total 5\n", "rows carry no per-sheet label")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SheetRows(1)
		m.Skipped("x")
		m.Upserted(time.Second)
		m.RunFinished(time.Now())
	})
}
