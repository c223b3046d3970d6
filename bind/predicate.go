package bind

import (
	"fmt"
	"strings"

	"github.com/gabuzi/cottontaildb/record"
	"github.com/gabuzi/cottontaildb/value"
)

// comparisonAtom is a leaf predicate: one column compared against one or
// more literals with a wire.CompareOp. It implements plan.Predicate.
type comparisonAtom struct {
	column string
	index  int // resolved position within the scanned RecordSet's columns
	op     string
	lit    value.Value
	lits   []value.Value
}

func (a *comparisonAtom) Name() string { return fmt.Sprintf("%s %s", a.column, a.op) }

func (a *comparisonAtom) Eval(r record.Record) (bool, error) {
	if a.index < 0 || a.index >= len(r.Values) {
		return false, fmt.Errorf("bind: predicate column %s not present in scanned record", a.column)
	}
	v := r.Values[a.index]

	switch a.op {
	case "IS NULL":
		return v.IsNull(), nil
	case "IN":
		for _, lit := range a.lits {
			if ok, err := equalValues(v, lit); err != nil {
				return false, err
			} else if ok {
				return true, nil
			}
		}
		return false, nil
	case "BETWEEN":
		if len(a.lits) != 2 {
			return false, fmt.Errorf("bind: BETWEEN requires exactly two bounds")
		}
		lo, err := a.lits[0].AsDouble()
		if err != nil {
			return false, err
		}
		hi, err := a.lits[1].AsDouble()
		if err != nil {
			return false, err
		}
		x, err := v.AsDouble()
		if err != nil {
			return false, err
		}
		return x >= lo && x <= hi, nil
	case "LIKE":
		return likeMatch(v.String(), a.lit.String()), nil
	case "=", "!=", "<", "<=", ">", ">=":
		return compareOp(a.op, v, a.lit)
	default:
		return false, fmt.Errorf("bind: unknown comparison operator %q", a.op)
	}
}

func equalValues(a, b value.Value) (bool, error) {
	if a.Kind() == value.String || b.Kind() == value.String {
		return a.String() == b.String(), nil
	}
	av, err := a.AsDouble()
	if err != nil {
		return false, err
	}
	bv, err := b.AsDouble()
	if err != nil {
		return false, err
	}
	return av == bv, nil
}

func compareOp(op string, v, lit value.Value) (bool, error) {
	if v.Kind() == value.String || lit.Kind() == value.String {
		a, b := v.String(), lit.String()
		switch op {
		case "=":
			return a == b, nil
		case "!=":
			return a != b, nil
		case "<":
			return a < b, nil
		case "<=":
			return a <= b, nil
		case ">":
			return a > b, nil
		case ">=":
			return a >= b, nil
		}
	}

	a, err := v.AsDouble()
	if err != nil {
		return false, err
	}
	b, err := lit.AsDouble()
	if err != nil {
		return false, err
	}
	switch op {
	case "=":
		return a == b, nil
	case "!=":
		return a != b, nil
	case "<":
		return a < b, nil
	case "<=":
		return a <= b, nil
	case ">":
		return a > b, nil
	case ">=":
		return a >= b, nil
	}
	return false, fmt.Errorf("bind: unknown comparison operator %q", op)
}

// likeMatch implements the subset of SQL LIKE spec.md §6 names: '%' matches
// any run of characters, '_' matches exactly one. Anything more elaborate
// (escaping, character classes) is out of scope.
func likeMatch(s, pattern string) bool {
	return likeMatchAt(s, pattern)
}

func likeMatchAt(s, pattern string) bool {
	if pattern == "" {
		return s == ""
	}
	switch pattern[0] {
	case '%':
		if likeMatchAt(s, pattern[1:]) {
			return true
		}
		for i := 0; i < len(s); i++ {
			if likeMatchAt(s[i+1:], pattern[1:]) {
				return true
			}
		}
		return false
	case '_':
		if s == "" {
			return false
		}
		return likeMatchAt(s[1:], pattern[1:])
	default:
		if s == "" || s[0] != pattern[0] {
			return false
		}
		return likeMatchAt(s[1:], pattern[1:])
	}
}

// combinator is an AND/OR/NOT boolean combination of child predicates.
type combinator struct {
	op       string
	children []boundPredicate
}

func (c *combinator) Name() string { return c.op }

func (c *combinator) Eval(r record.Record) (bool, error) {
	switch strings.ToUpper(c.op) {
	case "AND":
		for _, child := range c.children {
			ok, err := child.Eval(r)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	case "OR":
		for _, child := range c.children {
			ok, err := child.Eval(r)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case "NOT":
		if len(c.children) != 1 {
			return false, fmt.Errorf("bind: NOT takes exactly one child")
		}
		ok, err := c.children[0].Eval(r)
		return !ok, err
	default:
		return false, fmt.Errorf("bind: unknown combinator %q", c.op)
	}
}

// boundPredicate is the common supertype comparisonAtom and combinator
// satisfy, used so combinator can hold either kind of child.
type boundPredicate interface {
	Name() string
	Eval(record.Record) (bool, error)
}
