// Package satverify cross-checks propagation results against a SAT
// encoding of the same model. It encodes small finite-domain problems
// with pairwise-distinct variables into CNF and enumerates every model,
// giving an independent ground truth for the propagators to be tested
// against.
package satverify

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// Domain is the set of values a variable may take.
type Domain struct {
	Min, Max int64
	// Removed lists values in [Min, Max] excluded from the domain.
	Removed []int64
}

func (d Domain) contains(v int64) bool {
	if v < d.Min || v > d.Max {
		return false
	}
	for _, r := range d.Removed {
		if r == v {
			return false
		}
	}
	return true
}

// AllDifferentModels enumerates every assignment of pairwise-distinct
// values to the given domains, up to limit models (0 means no limit).
// The enumeration is meant for small instances used in tests.
func AllDifferentModels(domains []Domain, limit int) ([][]int64, error) {
	enc, err := newEncoding(domains)
	if err != nil {
		return nil, err
	}
	enc.addExactlyOne()
	enc.addPairwiseDistinct()
	return enc.enumerate(limit)
}

// encoding maps (variable, value) pairs to SAT literals over a direct
// one-hot encoding.
type encoding struct {
	g       *gini.Gini
	domains []Domain
	lits    map[[2]int64]z.Lit
	next    uint32
}

func newEncoding(domains []Domain) (*encoding, error) {
	enc := &encoding{
		g:       gini.New(),
		domains: domains,
		lits:    make(map[[2]int64]z.Lit),
		next:    1,
	}
	for i, d := range domains {
		if d.Min > d.Max {
			return nil, fmt.Errorf("satverify: empty domain for variable %d", i)
		}
		any := false
		for v := d.Min; v <= d.Max; v++ {
			if d.contains(v) {
				enc.litOf(i, v)
				any = true
			}
		}
		if !any {
			return nil, fmt.Errorf("satverify: empty domain for variable %d", i)
		}
	}
	return enc, nil
}

func (e *encoding) litOf(i int, v int64) z.Lit {
	key := [2]int64{int64(i), v}
	if m, ok := e.lits[key]; ok {
		return m
	}
	m := z.Var(e.next).Pos()
	e.next++
	e.lits[key] = m
	return m
}

func (e *encoding) values(i int) []int64 {
	d := e.domains[i]
	var vals []int64
	for v := d.Min; v <= d.Max; v++ {
		if d.contains(v) {
			vals = append(vals, v)
		}
	}
	return vals
}

// addExactlyOne teaches the solver that every variable takes exactly one
// of its domain values.
func (e *encoding) addExactlyOne() {
	for i := range e.domains {
		vals := e.values(i)
		for _, v := range vals {
			e.g.Add(e.litOf(i, v))
		}
		e.g.Add(z.LitNull)
		for a := 0; a < len(vals); a++ {
			for b := a + 1; b < len(vals); b++ {
				e.g.Add(e.litOf(i, vals[a]).Not())
				e.g.Add(e.litOf(i, vals[b]).Not())
				e.g.Add(z.LitNull)
			}
		}
	}
}

// addPairwiseDistinct forbids two variables from sharing a value.
func (e *encoding) addPairwiseDistinct() {
	for i := range e.domains {
		for j := i + 1; j < len(e.domains); j++ {
			for _, v := range e.values(i) {
				if !e.domains[j].contains(v) {
					continue
				}
				e.g.Add(e.litOf(i, v).Not())
				e.g.Add(e.litOf(j, v).Not())
				e.g.Add(z.LitNull)
			}
		}
	}
}

// enumerate solves repeatedly, blocking each model before asking for the
// next one.
func (e *encoding) enumerate(limit int) ([][]int64, error) {
	var models [][]int64
	for limit == 0 || len(models) < limit {
		res := e.g.Solve()
		if res == -1 {
			break
		}
		if res != 1 {
			return nil, fmt.Errorf("satverify: unexpected solver result %d", res)
		}
		model := make([]int64, len(e.domains))
		for i := range e.domains {
			found := false
			for _, v := range e.values(i) {
				if e.g.Value(e.litOf(i, v)) {
					model[i] = v
					found = true
					break
				}
			}
			if !found {
				return nil, fmt.Errorf("satverify: no value selected for variable %d", i)
			}
		}
		models = append(models, model)
		for i, v := range model {
			e.g.Add(e.litOf(i, v).Not())
		}
		e.g.Add(z.LitNull)
	}
	return models, nil
}

// FeasibleValues reduces the enumerated models to the per-variable sets of
// values appearing in at least one model. Sound propagation may never
// remove any of these values.
func FeasibleValues(models [][]int64, n int) []map[int64]bool {
	feasible := make([]map[int64]bool, n)
	for i := range feasible {
		feasible[i] = make(map[int64]bool)
	}
	for _, m := range models {
		for i, v := range m {
			feasible[i][v] = true
		}
	}
	return feasible
}
