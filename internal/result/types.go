package result

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/neuppl/are-we-sdd-yet/internal/strategy"
)

var ErrMissingBaseline = errors.New("record has no baseline log")

// ToolLog is one tool's decoded benchmark log. Log holds the tool's own JSON
// object, compacted, so field names and types survive unchanged.
type ToolLog struct {
	Tool   string          `json:"tool"`
	Family string          `json:"family"`
	Log    json.RawMessage `json:"log"`
}

func (l *ToolLog) UnmarshalJSON(data []byte) error {
	type plain ToolLog
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if len(v.Log) > 0 {
		var buf bytes.Buffer
		if err := json.Compact(&buf, v.Log); err != nil {
			return fmt.Errorf("compacting %s log: %w", v.Tool, err)
		}
		v.Log = buf.Bytes()
	}
	*l = ToolLog(v)
	return nil
}

// Formula holds the DIMACS problem-line counts of an input file.
type Formula struct {
	Variables int `json:"variables"`
	Clauses   int `json:"clauses"`
}

// Record is the outcome of running every configured tool on one input file
// under one strategy.
type Record struct {
	File     string            `json:"file"`
	Strategy strategy.Strategy `json:"strategy"`
	Formula  *Formula          `json:"formula,omitempty"`
	Baseline *ToolLog          `json:"baseline"`
	// Comparisons has one entry per configured comparison tool; nil when the
	// tool produced no log.
	Comparisons map[string]*ToolLog `json:"comparisons"`
	// Omitted explains nil comparison entries ("not applicable", "failed").
	Omitted map[string]string `json:"omitted,omitempty"`
}

// Validate checks the record invariant: a baseline log is always present.
func (r *Record) Validate() error {
	if r.Baseline == nil || len(r.Baseline.Log) == 0 {
		return fmt.Errorf("%s: %w", r.File, ErrMissingBaseline)
	}
	return nil
}

// Omit records that tool produced no log, and why.
func (r *Record) Omit(tool, reason string) {
	if r.Comparisons == nil {
		r.Comparisons = map[string]*ToolLog{}
	}
	r.Comparisons[tool] = nil
	if r.Omitted == nil {
		r.Omitted = map[string]string{}
	}
	r.Omitted[tool] = reason
}

// Batch is the ordered set of records of one run, in input-file order.
type Batch []*Record
