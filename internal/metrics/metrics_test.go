package metrics

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuppl/are-we-sdd-yet/internal/adapter"
	"github.com/neuppl/are-we-sdd-yet/internal/result"
	"github.com/neuppl/are-we-sdd-yet/internal/strategy"
)

func TestObserve(t *testing.T) {
	r := NewRecorder()

	r.Observe("a.cnf", strategy.LeftLinear, &adapter.Attempt{
		Tool:    "rsdd",
		Outcome: adapter.Completed,
		Log:     &result.ToolLog{Tool: "rsdd", Family: "rsdd", Log: json.RawMessage(`{"time_in_sec":2.5,"circuit_size":100}`)},
	})
	r.Observe("a.cnf", strategy.LeftLinear, &adapter.Attempt{Tool: "cnf2obdd", Outcome: adapter.NotApplicable})
	r.Observe("b.cnf", strategy.LeftLinear, &adapter.Attempt{Tool: "sdd", Outcome: adapter.Failed, Err: errors.New("boom")})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("rsdd", "completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("cnf2obdd", "not_applicable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("sdd", "failed")))
	assert.Equal(t, 2.5, testutil.ToFloat64(r.seconds.WithLabelValues("rsdd", "a.cnf", "left")))
	assert.Equal(t, 100.0, testutil.ToFloat64(r.size.WithLabelValues("rsdd", "a.cnf", "left")))
}

func TestWriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.Observe("a.cnf", strategy.BestFit, &adapter.Attempt{
		Tool:    "cnf2obdd",
		Outcome: adapter.Completed,
		Log:     &result.ToolLog{Tool: "cnf2obdd", Family: "cnf2obdd", Log: json.RawMessage(`{"time":0.75}`)},
	})

	path := filepath.Join(t.TempDir(), "awsy.prom")
	require.NoError(t, r.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `awsy_compile_seconds{file="a.cnf",strategy="best",tool="cnf2obdd"} 0.75`)
	assert.Contains(t, string(data), `awsy_tool_runs_total{outcome="completed",tool="cnf2obdd"} 1`)
}
