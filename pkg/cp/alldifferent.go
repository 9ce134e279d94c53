package cp

import (
	"fmt"
	"sort"
	"strings"
)

// MakeAllDifferent returns a constraint forcing all variables to take
// pairwise distinct values. With rangeConsistent set it uses the
// Hall-interval bounds-consistency propagator; otherwise the cheaper
// value-based propagator that only reacts to variables becoming bound.
func (s *Solver) MakeAllDifferent(vars []IntVar, rangeConsistent bool) Constraint {
	switch len(vars) {
	case 0, 1:
		return s.MakeTrueConstraint()
	case 2:
		return s.MakeNonEquality(vars[0], vars[1])
	}
	if rangeConsistent {
		return newBoundsAllDifferent(s, vars)
	}
	return newValueAllDifferent(s, vars)
}

type baseAllDifferent struct {
	s    *Solver
	vars []IntVar
}

// propagateValue removes the value of the just-bound variable at index
// from every other variable.
func (c *baseAllDifferent) propagateValue(index int) {
	val := c.vars[index].Value()
	for i, v := range c.vars {
		if i != index {
			v.RemoveValue(val)
		}
	}
}

func (c *baseAllDifferent) names() string {
	s := make([]string, len(c.vars))
	for i, v := range c.vars {
		s[i] = v.String()
	}
	return strings.Join(s, ", ")
}

// valueAllDifferent is the value-based propagator. Each bind triggers a
// pairwise removal; once every variable is bound the assignment is verified
// by sorting, and the success is remembered until backtracked.
type valueAllDifferent struct {
	baseAllDifferent
	checked revBool
}

var _ Constraint = (*valueAllDifferent)(nil)

func newValueAllDifferent(s *Solver, vars []IntVar) *valueAllDifferent {
	return &valueAllDifferent{baseAllDifferent: baseAllDifferent{s: s, vars: append([]IntVar(nil), vars...)}}
}

func (c *valueAllDifferent) Post() {
	for i, v := range c.vars {
		index := i
		d := NewDemon(fmt.Sprintf("valueAllDifferent[%d]", i), func(*Solver) { c.onBound(index) })
		v.WhenBound(d)
	}
}

func (c *valueAllDifferent) InitialPropagate() {
	for i, v := range c.vars {
		if v.Bound() {
			c.propagateValue(i)
		}
	}
	c.checkAllBound()
}

func (c *valueAllDifferent) onBound(index int) {
	c.propagateValue(index)
	c.checkAllBound()
}

// checkAllBound verifies distinctness once every variable is bound, then
// remembers the success so later wake-ups in the same subtree are free.
func (c *valueAllDifferent) checkAllBound() {
	if c.checked.value() {
		return
	}
	values := make([]int64, 0, len(c.vars))
	for _, v := range c.vars {
		if !v.Bound() {
			return
		}
		values = append(values, v.Value())
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	for i := 1; i < len(values); i++ {
		if values[i] == values[i-1] {
			c.s.Fail()
		}
	}
	c.checked.setValue(c.s, true)
}

func (c *valueAllDifferent) String() string {
	return fmt.Sprintf("AllDifferent(%s)", c.names())
}

// boundsAllDifferent is the bounds-consistency propagator. It detects Hall
// intervals -- sets of k variables whose united span holds exactly k values
// -- with a path-compressed union-find over a compressed coordinate space,
// in O(n log n) per call. An immediate per-variable bind demon layers the
// cheap pairwise value filter on top.
type boundsAllDifferent struct {
	baseAllDifferent

	// scratch space, rebuilt on every propagation call
	intervals []boundsInterval
	minSorted []*boundsInterval
	maxSorted []*boundsInterval
	bounds    []int64
	tree      []int
	diff      []int64
	hall      []int
	nbBounds  int
}

type boundsInterval struct {
	min, max         int64
	minRank, maxRank int
}

var _ Constraint = (*boundsAllDifferent)(nil)

func newBoundsAllDifferent(s *Solver, vars []IntVar) *boundsAllDifferent {
	n := len(vars)
	c := &boundsAllDifferent{
		baseAllDifferent: baseAllDifferent{s: s, vars: append([]IntVar(nil), vars...)},
		intervals:        make([]boundsInterval, n),
		minSorted:        make([]*boundsInterval, n),
		maxSorted:        make([]*boundsInterval, n),
		bounds:           make([]int64, 2*n+2),
		tree:             make([]int, 2*n+2),
		diff:             make([]int64, 2*n+2),
		hall:             make([]int, 2*n+2),
	}
	for i := range c.intervals {
		c.minSorted[i] = &c.intervals[i]
		c.maxSorted[i] = &c.intervals[i]
	}
	return c
}

func (c *boundsAllDifferent) Post() {
	rangeDemon := NewDelayedDemon(c.String(), func(*Solver) { c.incrementalPropagate() })
	for i, v := range c.vars {
		v.WhenRange(rangeDemon)
		index := i
		bindDemon := NewDemon(fmt.Sprintf("boundsAllDifferent[%d]", i), func(*Solver) { c.propagateValue(index) })
		v.WhenBound(bindDemon)
	}
}

func (c *boundsAllDifferent) InitialPropagate() {
	c.incrementalPropagate()
	for i, v := range c.vars {
		if v.Bound() {
			c.propagateValue(i)
		}
	}
}

func (c *boundsAllDifferent) incrementalPropagate() {
	for i, v := range c.vars {
		c.intervals[i].min = v.Min()
		c.intervals[i].max = v.Max()
	}
	c.sortArrays()
	modified := c.propagateMin()
	if c.propagateMax() {
		modified = true
	}
	if modified {
		for i, v := range c.vars {
			v.SetRange(c.intervals[i].min, c.intervals[i].max)
		}
	}
}

// sortArrays sorts the intervals by min and by max, then merges the two
// orders into the compressed coordinate array bounds[1..nbBounds] of all
// distinct critical values (mins and maxes+1), assigning each interval its
// rank in that space. bounds[0] and bounds[nbBounds+1] are sentinels.
func (c *boundsAllDifferent) sortArrays() {
	sort.SliceStable(c.minSorted, func(i, j int) bool { return c.minSorted[i].min < c.minSorted[j].min })
	sort.SliceStable(c.maxSorted, func(i, j int) bool { return c.maxSorted[i].max < c.maxSorted[j].max })

	n := len(c.intervals)
	vmin := c.minSorted[0].min
	vmax := c.maxSorted[0].max + 1
	last := vmin - 2
	c.bounds[0] = last

	i, j, nb := 0, 0, 0
	for {
		if i < n && vmin <= vmax {
			if vmin != last {
				nb++
				last = vmin
				c.bounds[nb] = last
			}
			c.minSorted[i].minRank = nb
			i++
			if i < n {
				vmin = c.minSorted[i].min
			}
		} else {
			if vmax != last {
				nb++
				last = vmax
				c.bounds[nb] = last
			}
			c.maxSorted[j].maxRank = nb
			j++
			if j == n {
				break
			}
			vmax = c.maxSorted[j].max + 1
		}
	}
	c.nbBounds = nb
	c.bounds[nb+1] = c.bounds[nb] + 2
}

func (c *boundsAllDifferent) pathMax(tree []int, i int) int {
	for tree[i] > i {
		i = tree[i]
	}
	return i
}

func (c *boundsAllDifferent) pathMin(tree []int, i int) int {
	for tree[i] < i {
		i = tree[i]
	}
	return i
}

func (c *boundsAllDifferent) pathSet(tree []int, start, end, to int) {
	for p := start; p != end; {
		next := tree[p]
		tree[p] = to
		p = next
	}
}

// propagateMin scans the intervals in increasing max order, maintaining the
// free capacity of each compressed interval in diff. When a Hall interval
// fills up (diff hits zero over exactly its span) the hall array records
// it, and later intervals reaching into it get their min pushed past its
// end. Overpacking fails.
func (c *boundsAllDifferent) propagateMin() bool {
	modified := false
	for i := 1; i <= c.nbBounds+1; i++ {
		c.tree[i] = i - 1
		c.hall[i] = i - 1
		c.diff[i] = c.bounds[i] - c.bounds[i-1]
	}
	for _, iv := range c.maxSorted {
		x, y := iv.minRank, iv.maxRank
		z := c.pathMax(c.tree, x+1)
		j := c.tree[z]
		c.diff[z]--
		if c.diff[z] == 0 {
			c.tree[z] = z + 1
			z = c.pathMax(c.tree, c.tree[z])
			c.tree[z] = j
		}
		c.pathSet(c.tree, x+1, z, z)
		if c.diff[z] < c.bounds[z]-c.bounds[y] {
			c.s.Fail()
		}
		if c.hall[x] > x {
			w := c.pathMax(c.hall, c.hall[x])
			iv.min = c.bounds[w]
			modified = true
			c.pathSet(c.hall, x, w, w)
		}
		if c.diff[z] == c.bounds[z]-c.bounds[y] {
			c.pathSet(c.hall, c.hall[y], j-1, y)
			c.hall[y] = j - 1
		}
	}
	return modified
}

// propagateMax is the mirrored scan in decreasing min order, tightening
// maxes.
func (c *boundsAllDifferent) propagateMax() bool {
	modified := false
	for i := 0; i <= c.nbBounds; i++ {
		c.tree[i] = i + 1
		c.hall[i] = i + 1
		c.diff[i] = c.bounds[i+1] - c.bounds[i]
	}
	for k := len(c.minSorted) - 1; k >= 0; k-- {
		iv := c.minSorted[k]
		x, y := iv.maxRank, iv.minRank
		z := c.pathMin(c.tree, x-1)
		j := c.tree[z]
		c.diff[z]--
		if c.diff[z] == 0 {
			c.tree[z] = z - 1
			z = c.pathMin(c.tree, c.tree[z])
			c.tree[z] = j
		}
		c.pathSet(c.tree, x-1, z, z)
		if c.diff[z] < c.bounds[y]-c.bounds[z] {
			c.s.Fail()
		}
		if c.hall[x] < x {
			w := c.pathMin(c.hall, c.hall[x])
			iv.max = c.bounds[w] - 1
			modified = true
			c.pathSet(c.hall, x, w, w)
		}
		if c.diff[z] == c.bounds[y]-c.bounds[z] {
			c.pathSet(c.hall, c.hall[y], j+1, y)
			c.hall[y] = j + 1
		}
	}
	return modified
}

func (c *boundsAllDifferent) String() string {
	return fmt.Sprintf("AllDifferent(range, %s)", c.names())
}
