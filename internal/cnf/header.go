// Package cnf reads summary statistics from DIMACS CNF inputs.
package cnf

import (
	"fmt"
	"os"

	"github.com/go-air/gini/dimacs"
	"github.com/go-air/gini/z"

	"github.com/neuppl/are-we-sdd-yet/internal/result"
)

type headerVis struct {
	vars, clauses int
	seen          bool
	read          int
}

func (h *headerVis) Init(v, c int) {
	h.vars, h.clauses, h.seen = v, c, true
}

func (h *headerVis) Add(m z.Lit) {
	if m == z.LitNull {
		h.read++
	}
}

func (h *headerVis) Eof() {}

// Stat returns the variable and clause counts of the problem line in path.
// It does not check that the body agrees with the header.
func Stat(path string) (*result.Formula, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	vis := &headerVis{}
	if err := dimacs.ReadCnf(f, vis); err != nil && !vis.seen {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if !vis.seen {
		return nil, fmt.Errorf("reading %s: no problem line", path)
	}
	return &result.Formula{Variables: vis.vars, Clauses: vis.clauses}, nil
}
