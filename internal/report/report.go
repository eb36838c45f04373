// Package report compares the baseline log of each record against every
// comparison tool and renders the result.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/neuppl/are-we-sdd-yet/internal/adapter"
	"github.com/neuppl/are-we-sdd-yet/internal/result"
)

// Rendered name of each metric, in display order.
var metricNames = []struct{ metric, label string }{
	{adapter.MetricTime, "speedup"},
	{adapter.MetricSize, "size"},
}

const noLogReason = "no log"

// Metric is one measurement of the baseline and, when the comparison tool
// reported it, of the comparison tool.
type Metric struct {
	Name       string   `json:"name"`
	Baseline   float64  `json:"baseline"`
	Comparison *float64 `json:"comparison"`
	// Ratio is baseline / comparison.
	Ratio Ratio `json:"ratio"`
}

// Comparison is the baseline of one record set against one comparison tool.
type Comparison struct {
	File     string   `json:"file"`
	Strategy string   `json:"strategy"`
	Baseline string   `json:"baseline"`
	Tool     string   `json:"tool"`
	Reason   string   `json:"reason,omitempty"`
	Metrics  []Metric `json:"metrics"`
}

// Present reports whether the comparison tool produced a log.
func (c *Comparison) Present() bool { return c.Reason == "" }

func values(l *result.ToolLog) map[string]float64 {
	out := map[string]float64{}
	if l == nil {
		return out
	}
	fam, ok := adapter.LookupFamily(l.Family)
	if !ok {
		return out
	}
	for _, m := range metricNames {
		if v, ok := fam.Value(l.Log, m.metric); ok {
			out[m.metric] = v
		}
	}
	return out
}

// Compare returns one Comparison per comparison tool of rec, sorted by tool.
func Compare(rec *result.Record) []Comparison {
	base := values(rec.Baseline)

	tools := make([]string, 0, len(rec.Comparisons))
	for tool := range rec.Comparisons {
		tools = append(tools, tool)
	}
	sort.Strings(tools)

	out := make([]Comparison, 0, len(tools))
	for _, tool := range tools {
		c := Comparison{
			File:     rec.File,
			Strategy: rec.Strategy.String(),
			Baseline: rec.Baseline.Tool,
			Tool:     tool,
		}
		log := rec.Comparisons[tool]
		if log == nil {
			c.Reason = rec.Omitted[tool]
			if c.Reason == "" {
				c.Reason = noLogReason
			}
		}
		other := values(log)
		for _, m := range metricNames {
			bv, ok := base[m.metric]
			if !ok {
				continue
			}
			metric := Metric{Name: m.metric, Baseline: bv}
			if ov, ok := other[m.metric]; ok {
				metric.Comparison = &ov
				metric.Ratio = NewRatio(bv, ov)
			}
			c.Metrics = append(c.Metrics, metric)
		}
		out = append(out, c)
	}
	return out
}

func formatValue(metric string, v float64) string {
	if metric == adapter.MetricTime {
		return fmt.Sprintf("%.6fs", v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Render writes the text block for one record.
func Render(w io.Writer, rec *result.Record) error {
	var b strings.Builder
	b.WriteString("===\n")
	fmt.Fprintf(&b, "Benchmark: %s (strategy: %s)...\n", rec.File, rec.Strategy)
	if rec.Formula != nil {
		fmt.Fprintf(&b, "formula: %d variables, %d clauses\n", rec.Formula.Variables, rec.Formula.Clauses)
	}

	for _, c := range Compare(rec) {
		b.WriteString("---\n")
		fmt.Fprintf(&b, "%s v %s\n", c.Baseline, c.Tool)
		if !c.Present() {
			fmt.Fprintf(&b, "no %s run reported (%s)\n", c.Tool, c.Reason)
			parts := make([]string, 0, len(c.Metrics))
			for _, m := range c.Metrics {
				if m.Name == adapter.MetricTime {
					parts = append(parts, formatValue(m.Name, m.Baseline))
				} else {
					parts = append(parts, formatValue(m.Name, m.Baseline)+" "+m.Name)
				}
			}
			fmt.Fprintf(&b, "%s: %s\n", c.Baseline, strings.Join(parts, ", "))
			continue
		}
		for _, m := range c.Metrics {
			if m.Comparison == nil {
				continue
			}
			fmt.Fprintf(&b, "%s %s (%s: %s, %s: %s)\n", m.Ratio, label(m.Name),
				c.Baseline, formatValue(m.Name, m.Baseline),
				c.Tool, formatValue(m.Name, *m.Comparison))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func label(metric string) string {
	for _, m := range metricNames {
		if m.metric == metric {
			return m.label
		}
	}
	return metric
}

// Generate renders every record of batch in the given format: text
// (default), table, markdown or json.
func Generate(batch result.Batch, format string, w io.Writer) error {
	switch format {
	case "", "text":
		for _, rec := range batch {
			if err := Render(w, rec); err != nil {
				return err
			}
		}
		return nil
	}

	var comparisons []Comparison
	for _, rec := range batch {
		comparisons = append(comparisons, Compare(rec)...)
	}
	switch format {
	case "table":
		return writeTable(comparisons, w)
	case "markdown":
		return writeMarkdown(comparisons, w)
	case "json":
		return writeJSON(comparisons, w)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// cells returns the speedup and size columns of c.
func cells(c Comparison) (speedup, size string) {
	speedup, size = "-", "-"
	if !c.Present() {
		return "no log (" + c.Reason + ")", "-"
	}
	for _, m := range c.Metrics {
		if m.Comparison == nil {
			continue
		}
		switch m.Name {
		case adapter.MetricTime:
			speedup = m.Ratio.String()
		case adapter.MetricSize:
			size = m.Ratio.String()
		}
	}
	return speedup, size
}

func writeTable(comparisons []Comparison, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tSTRATEGY\tBASELINE\tTOOL\tSPEEDUP\tSIZE")
	fmt.Fprintln(tw, strings.Repeat("-", 80))
	for _, c := range comparisons {
		speedup, size := cells(c)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", c.File, c.Strategy, c.Baseline, c.Tool, speedup, size)
	}
	return tw.Flush()
}

func writeMarkdown(comparisons []Comparison, w io.Writer) error {
	fmt.Fprintln(w, "| File | Strategy | Baseline | Tool | Speedup | Size |")
	fmt.Fprintln(w, "|---|---|---|---|---|---|")
	for _, c := range comparisons {
		speedup, size := cells(c)
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s |\n", c.File, c.Strategy, c.Baseline, c.Tool, speedup, size)
	}
	return nil
}

func writeJSON(comparisons []Comparison, w io.Writer) error {
	if comparisons == nil {
		comparisons = []Comparison{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(comparisons)
}
