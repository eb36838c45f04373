package report_test

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuppl/are-we-sdd-yet/internal/report"
	"github.com/neuppl/are-we-sdd-yet/internal/result"
	"github.com/neuppl/are-we-sdd-yet/internal/strategy"
)

func rsdd(time float64, size int) *result.ToolLog {
	raw, _ := json.Marshal(map[string]any{"name": "f", "num_recursive": 0, "time_in_sec": time, "circuit_size": size, "mode": "m"})
	return &result.ToolLog{Tool: "rsdd", Family: "rsdd", Log: raw}
}

func sdd(time float64, size int) *result.ToolLog {
	raw, _ := json.Marshal(map[string]any{"compilation_time": time, "sdd_size": size, "sdd_count": 1})
	return &result.ToolLog{Tool: "sdd", Family: "sdd", Log: raw}
}

func cnf2obdd(time float64) *result.ToolLog {
	raw, _ := json.Marshal(map[string]any{"time": time})
	return &result.ToolLog{Tool: "cnf2obdd", Family: "cnf2obdd", Log: raw}
}

func TestRenderSpeedupAndSize(t *testing.T) {
	rec := &result.Record{
		File:        "bench/a.cnf",
		Strategy:    strategy.RightLinear,
		Baseline:    rsdd(2.0, 100),
		Comparisons: map[string]*result.ToolLog{"sdd": sdd(1.0, 50)},
	}

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, rec))
	want := strings.Join([]string{
		"===",
		"Benchmark: bench/a.cnf (strategy: right linear)...",
		"---",
		"rsdd v sdd",
		"2.00x speedup (rsdd: 2.000000s, sdd: 1.000000s)",
		"2.00x size (rsdd: 100, sdd: 50)",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestRenderMissingComparison(t *testing.T) {
	rec := &result.Record{
		File:        "a.cnf",
		Strategy:    strategy.LeftLinear,
		Formula:     &result.Formula{Variables: 3, Clauses: 2},
		Baseline:    rsdd(0.5, 7),
		Comparisons: map[string]*result.ToolLog{},
	}
	rec.Omit("cnf2obdd", "not applicable")

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, rec))
	want := strings.Join([]string{
		"===",
		"Benchmark: a.cnf (strategy: left linear)...",
		"formula: 3 variables, 2 clauses",
		"---",
		"rsdd v cnf2obdd",
		"no cnf2obdd run reported (not applicable)",
		"rsdd: 0.500000s, 7 size",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestRenderZeroBaseline(t *testing.T) {
	rec := &result.Record{
		File:        "a.cnf",
		Strategy:    strategy.BestFit,
		Baseline:    rsdd(0.0, 10),
		Comparisons: map[string]*result.ToolLog{"cnf2obdd": cnf2obdd(1.5)},
	}

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, rec))
	assert.Contains(t, buf.String(), "undefined speedup (rsdd: 0.000000s, cnf2obdd: 1.500000s)")
	assert.NotContains(t, buf.String(), "size (", "cnf2obdd reports no size")
}

func TestRenderComparisonsSorted(t *testing.T) {
	rec := &result.Record{
		File:     "a.cnf",
		Strategy: strategy.BestFit,
		Baseline: rsdd(1, 1),
		Comparisons: map[string]*result.ToolLog{
			"sdd":      sdd(1, 1),
			"cnf2obdd": cnf2obdd(1),
		},
	}
	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, rec))
	out := buf.String()
	assert.Less(t, strings.Index(out, "rsdd v cnf2obdd"), strings.Index(out, "rsdd v sdd"))
}

func TestRatio(t *testing.T) {
	tests := []struct {
		name     string
		num, den float64
		want     string
	}{
		{"plain", 2, 1, "2.00x"},
		{"fraction", 1, 4, "0.25x"},
		{"zero denominator", 1.5, 0, "undefined"},
		{"zero numerator", 0, 1.5, "undefined"},
		{"nan", math.NaN(), 1, "undefined"},
		{"inf", 1, math.Inf(1), "undefined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, report.NewRatio(tt.num, tt.den).String())
		})
	}
}

func TestRatioReciprocal(t *testing.T) {
	pairs := [][2]float64{{2, 1}, {0.003, 17.5}, {1e6, 3}, {7, 7}}
	for _, p := range pairs {
		forward := report.NewRatio(p[0], p[1])
		swapped := report.NewRatio(p[1], p[0])
		require.True(t, forward.Defined)
		assert.InDelta(t, 1.0, forward.Value*swapped.Value, 1e-12)
		assert.InDelta(t, swapped.Value, forward.Inverse().Value, 1e-12)
	}
	assert.False(t, report.NewRatio(0, 1).Inverse().Defined)
}

func TestRatioJSON(t *testing.T) {
	data, err := json.Marshal([]report.Ratio{report.NewRatio(3, 2), report.NewRatio(1, 0)})
	require.NoError(t, err)
	assert.JSONEq(t, `[1.5, null]`, string(data))
}

func sampleBatch() result.Batch {
	withSdd := &result.Record{
		File:        "a.cnf",
		Strategy:    strategy.RightLinear,
		Baseline:    rsdd(2.0, 100),
		Comparisons: map[string]*result.ToolLog{"sdd": sdd(1.0, 50)},
	}
	withSdd.Omit("cnf2obdd", "not applicable")
	return result.Batch{withSdd}
}

func TestGenerateTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Generate(sampleBatch(), "table", &buf))
	out := buf.String()
	assert.Contains(t, out, "SPEEDUP")
	assert.Contains(t, out, "2.00x")
	assert.Contains(t, out, "no log (not applicable)")
}

func TestGenerateMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Generate(sampleBatch(), "markdown", &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| a.cnf | right linear | rsdd | cnf2obdd | no log (not applicable) | - |", lines[2])
	assert.Equal(t, "| a.cnf | right linear | rsdd | sdd | 2.00x | 2.00x |", lines[3])
}

func TestGenerateJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Generate(sampleBatch(), "json", &buf))

	var got []report.Comparison
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "cnf2obdd", got[0].Tool)
	assert.Equal(t, "not applicable", got[0].Reason)
	assert.Equal(t, "sdd", got[1].Tool)
	require.Len(t, got[1].Metrics, 2)
	require.NotNil(t, got[1].Metrics[0].Comparison)
	assert.Equal(t, 1.0, *got[1].Metrics[0].Comparison)
}

func TestGenerateText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Generate(sampleBatch(), "", &buf))
	assert.True(t, strings.HasPrefix(buf.String(), "===\nBenchmark: a.cnf"))
}

func TestGenerateUnknownFormat(t *testing.T) {
	assert.Error(t, report.Generate(sampleBatch(), "yaml", &bytes.Buffer{}))
}
