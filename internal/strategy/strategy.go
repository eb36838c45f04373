package strategy

import (
	"fmt"
	"strings"
)

// Strategy is a compilation strategy: the variable-ordering policy a
// compiler uses to build its decision diagram.
type Strategy int

const (
	RightLinear Strategy = iota
	LeftLinear
	BestFit
	BDDBestFit
)

// Default is used whenever a strategy string is not recognized.
const Default = RightLinear

type info struct {
	id    string
	label string
}

var infos = map[Strategy]info{
	RightLinear: {"right", "right linear"},
	LeftLinear:  {"left", "left linear"},
	BestFit:     {"best", "best fit"},
	BDDBestFit:  {"best-bdd", "best fit (bdd)"},
}

var aliases = map[string]Strategy{
	"right":    RightLinear,
	"left":     LeftLinear,
	"best":     BestFit,
	"best-bdd": BDDBestFit,
	"bdd-best": BDDBestFit,
}

// All returns every strategy in declaration order.
func All() []Strategy {
	return []Strategy{RightLinear, LeftLinear, BestFit, BDDBestFit}
}

// Lookup resolves a strategy identifier. ok is false for unknown identifiers.
func Lookup(id string) (s Strategy, ok bool) {
	s, ok = aliases[strings.ToLower(strings.TrimSpace(id))]
	return s, ok
}

// Parse resolves a strategy identifier, falling back to Default.
func Parse(id string) Strategy {
	if s, ok := Lookup(id); ok {
		return s
	}
	return Default
}

// FromLabel resolves a display label (as written to reports) or an identifier.
func FromLabel(label string) (Strategy, error) {
	for _, s := range All() {
		if infos[s].label == label {
			return s, nil
		}
	}
	if s, ok := Lookup(label); ok {
		return s, nil
	}
	return Default, fmt.Errorf("unknown strategy %q", label)
}

// ID returns the canonical command-line identifier.
func (s Strategy) ID() string {
	if i, ok := infos[s]; ok {
		return i.id
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

func (s Strategy) String() string {
	if i, ok := infos[s]; ok {
		return i.label
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

func (s Strategy) MarshalText() ([]byte, error) {
	if _, ok := infos[s]; !ok {
		return nil, fmt.Errorf("unknown strategy %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := FromLabel(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
