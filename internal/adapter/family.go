package adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/neuppl/are-we-sdd-yet/internal/strategy"
)

// Placeholders substituted in Family.Args.
const (
	argFile     = "{file}"
	argStrategy = "{strategy}"
)

// Metric identifiers shared by every family.
const (
	MetricTime = "time"
	MetricSize = "size"
)

// ArgRule appends Args for every strategy not listed in Except.
type ArgRule struct {
	Except []strategy.Strategy
	Args   []string
}

// Family describes one external compiler: its strategy vocabulary, argument
// layout and output schema. Families are plain data so new compilers are
// added by declaration.
type Family struct {
	Name       string
	Strategies strategy.Table
	Args       []string
	Extra      []ArgRule
	// Metrics maps a metric identifier to the JSON path holding it.
	Metrics map[string]string
	// Required lists JSON paths that must hold numbers for a log to decode.
	Required []string
	// Schema returns a fresh value the log must unmarshal into.
	Schema func() any
}

// RsddLog is printed by rsdd.
type RsddLog struct {
	Name         string  `json:"name"`
	NumRecursive int     `json:"num_recursive"`
	TimeInSec    float64 `json:"time_in_sec"`
	CircuitSize  int     `json:"circuit_size"`
	Mode         string  `json:"mode"`
}

// SddLog is printed by the UCLA sdd compiler.
type SddLog struct {
	CompilationTime float64 `json:"compilation_time"`
	SddSize         int     `json:"sdd_size"`
	SddCount        int     `json:"sdd_count"`
}

// Cnf2ObddLog is printed by cnf2obdd.
type Cnf2ObddLog struct {
	Time float64 `json:"time"`
}

var families = map[string]*Family{
	"rsdd": {
		Name: "rsdd",
		Strategies: strategy.Table{
			strategy.LeftLinear:  "sdd_left_linear",
			strategy.RightLinear: "sdd_right_linear",
			strategy.BestFit:     "sdd_dtree_minfill",
			strategy.BDDBestFit:  "bdd_dtree_minfill",
		},
		Args:     []string{"-f", argFile, "-m", argStrategy},
		Metrics:  map[string]string{MetricTime: "time_in_sec", MetricSize: "circuit_size"},
		Required: []string{"time_in_sec", "circuit_size"},
		Schema:   func() any { return new(RsddLog) },
	},
	"sdd": {
		Name: "sdd",
		Strategies: strategy.Table{
			strategy.LeftLinear:  "left",
			strategy.RightLinear: "right",
			// TODO: confirm against the sdd-2.0 manual which vtree type
			// corresponds to best fit; "right" is carried over unverified.
			strategy.BestFit: "right",
		},
		Args: []string{"-c", argFile, "-t", argStrategy},
		Extra: []ArgRule{
			{Except: []strategy.Strategy{strategy.BestFit}, Args: []string{"-r", "0"}},
		},
		Metrics:  map[string]string{MetricTime: "compilation_time", MetricSize: "sdd_size"},
		Required: []string{"compilation_time"},
		Schema:   func() any { return new(SddLog) },
	},
	"cnf2obdd": {
		Name: "cnf2obdd",
		Strategies: strategy.Table{
			strategy.BestFit:    "",
			strategy.BDDBestFit: "",
		},
		Args:     []string{argFile},
		Metrics:  map[string]string{MetricTime: "time"},
		Required: []string{"time"},
		Schema:   func() any { return new(Cnf2ObddLog) },
	},
}

// LookupFamily returns the family registered under name.
func LookupFamily(name string) (*Family, bool) {
	f, ok := families[name]
	return f, ok
}

// FamilyNames returns the registered family names, sorted.
func FamilyNames() []string {
	names := make([]string, 0, len(families))
	for name := range families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildArgs renders the argument list for file under s using table for the
// strategy token. ok is false when the strategy is unsupported.
func (f *Family) BuildArgs(table strategy.Table, file string, s strategy.Strategy) (args []string, ok bool) {
	token, ok := table.Token(s)
	if !ok {
		return nil, false
	}
	for _, a := range f.Args {
		switch a {
		case argFile:
			args = append(args, file)
		case argStrategy:
			if token != "" {
				args = append(args, token)
			}
		default:
			args = append(args, a)
		}
	}
	for _, rule := range f.Extra {
		if !slices.Contains(rule.Except, s) {
			args = append(args, rule.Args...)
		}
	}
	return args, true
}

// Decode validates stdout as exactly one JSON object matching the family
// schema and returns it compacted.
func (f *Family) Decode(stdout []byte) (json.RawMessage, error) {
	data := bytes.TrimSpace(stdout)
	if len(data) == 0 {
		return nil, errors.New("no output")
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON output: %q", truncate(data, 80))
	}
	res := gjson.ParseBytes(data)
	if !res.IsObject() {
		return nil, fmt.Errorf("expected a JSON object, got %s", res.Type)
	}
	for _, path := range f.Required {
		if v := res.Get(path); v.Type != gjson.Number {
			return nil, fmt.Errorf("missing numeric field %q", path)
		}
	}
	if f.Schema != nil {
		if err := json.Unmarshal(data, f.Schema()); err != nil {
			return nil, fmt.Errorf("decoding %s log: %w", f.Name, err)
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Value extracts a metric from a decoded log. ok is false when the family
// does not define the metric or the log does not carry it.
func (f *Family) Value(log json.RawMessage, metric string) (float64, bool) {
	path, ok := f.Metrics[metric]
	if !ok {
		return 0, false
	}
	v := gjson.GetBytes(log, path)
	if v.Type != gjson.Number {
		return 0, false
	}
	return v.Float(), true
}

func truncate(b []byte, n int) string {
	s := strings.ToValidUTF8(string(b), "?")
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
