// Package selector implements the label selector used to pick which
// applications are rendered.
package selector

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/selection"
)

// Operator is the comparison applied by a Clause.
type Operator int

const (
	Eq Operator = iota
	Ne
)

func (o Operator) String() string {
	switch o {
	case Eq:
		return "="
	case Ne:
		return "!="
	default:
		return fmt.Sprintf("Operator(%d)", int(o))
	}
}

// Clause tests a single label key/value pair.
type Clause struct {
	Key      string
	Operator Operator
	Value    string
}

func (c Clause) String() string {
	return c.Key + c.Operator.String() + c.Value
}

// Matches reports whether the clause is satisfied by the given labels. A Ne
// clause is satisfied by labels that lack the key altogether.
func (c Clause) Matches(set map[string]string) bool {
	v, ok := set[c.Key]
	hit := ok && v == c.Value
	if c.Operator == Ne {
		return !hit
	}
	return hit
}

// Selector is an ordered list of clauses combined with a logical AND.
type Selector []Clause

// Matches reports whether every clause is satisfied.
func (s Selector) Matches(set map[string]string) bool {
	for _, c := range s {
		if !c.Matches(set) {
			return false
		}
	}
	return true
}

func (s Selector) String() string {
	parts := make([]string, len(s))
	for i, c := range s {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

// Parse parses a comma separated selector such as "env=prod,team!=infra".
// Only equality (=, ==) and inequality (!=) requirements are supported. An
// empty string yields a nil Selector.
func Parse(s string) (Selector, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parsed, err := labels.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", s, err)
	}

	requirements, _ := parsed.Requirements()
	sel := make(Selector, 0, len(requirements))
	for _, r := range requirements {
		var op Operator
		switch r.Operator() {
		case selection.Equals, selection.DoubleEquals:
			op = Eq
		case selection.NotEquals:
			op = Ne
		default:
			return nil, fmt.Errorf("invalid selector %q: unsupported operator %q for key %q", s, r.Operator(), r.Key())
		}
		value, _ := r.Values().PopAny()
		sel = append(sel, Clause{Key: r.Key(), Operator: op, Value: value})
	}

	return sel, nil
}
