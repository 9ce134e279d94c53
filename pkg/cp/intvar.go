package cp

import "fmt"

// domainIntVar is the general integer variable. It owns a domain and runs
// the two-phase wake-up protocol: while the variable processes its own
// demons, setter calls on it divert into the newMin/newMax shadow bounds and
// the delayed-removal list, and the buffered tightening replays through the
// normal path once the batch ends. This is what keeps a demon from ever
// observing the variable in a half-updated state.
type domainIntVar struct {
	s    *Solver
	name string
	dom  domain

	oldMin, oldMax revInt

	boundDemons  []*Demon
	rangeDemons  []*Demon
	domainDemons []*Demon

	inProcess       bool
	newMin, newMax  int64
	delayedRemovals []int64
	queued          bool

	eqCache map[int64]IntVar
	geCache map[int64]IntVar
	leCache map[int64]IntVar
}

var _ IntVar = (*domainIntVar)(nil)

func newDomainIntVar(s *Solver, vmin, vmax int64, name string) *domainIntVar {
	return &domainIntVar{
		s:    s,
		name: name,
		dom: domain{
			min:  revInt{value: vmin},
			max:  revInt{value: vmax},
			omin: vmin,
			omax: vmax,
		},
		oldMin: revInt{value: vmin},
		oldMax: revInt{value: vmax},
	}
}

func (v *domainIntVar) Solver() *Solver { return v.s }

func (v *domainIntVar) Min() int64 { return v.dom.min.value }

func (v *domainIntVar) Max() int64 { return v.dom.max.value }

func (v *domainIntVar) OldMin() int64 { return v.oldMin.value }

func (v *domainIntVar) OldMax() int64 { return v.oldMax.value }

func (v *domainIntVar) Bound() bool { return v.dom.min.value == v.dom.max.value }

func (v *domainIntVar) Value() int64 {
	if !v.Bound() {
		panic(fmt.Sprintf("cp: Value called on unbound variable %s", v))
	}
	return v.dom.min.value
}

func (v *domainIntVar) Contains(val int64) bool { return v.dom.contains(val) }

func (v *domainIntVar) Size() uint64 { return v.dom.domainSize() }

func (v *domainIntVar) IsVar() bool { return true }

func (v *domainIntVar) Var() IntVar { return v }

func (v *domainIntVar) shape() exprShape { return shapeVar }

func (v *domainIntVar) String() string {
	if v.Bound() {
		return fmt.Sprintf("%s(%d)", v.name, v.dom.min.value)
	}
	return fmt.Sprintf("%s(%d..%d)", v.name, v.dom.min.value, v.dom.max.value)
}

func (v *domainIntVar) SetMin(m int64) {
	if v.inProcess {
		if m <= v.newMin {
			return
		}
		if m > v.newMax {
			v.s.Fail()
		}
		v.newMin = m
		return
	}
	if m <= v.dom.min.value {
		return
	}
	if m > v.dom.max.value {
		v.s.Fail()
	}
	nm := m
	if v.dom.bits != nil {
		adjusted, ok := v.dom.bits.computeNewMin(m, v.dom.max.value)
		if !ok {
			v.s.Fail()
		}
		nm = adjusted
		v.dom.size.setValue(v.s, v.dom.size.value-v.dom.bits.count(v.dom.min.value, nm-1))
	}
	v.dom.min.setValue(v.s, nm)
	v.s.queue.enqueueVar(v)
}

func (v *domainIntVar) SetMax(m int64) {
	if v.inProcess {
		if m >= v.newMax {
			return
		}
		if m < v.newMin {
			v.s.Fail()
		}
		v.newMax = m
		return
	}
	if m >= v.dom.max.value {
		return
	}
	if m < v.dom.min.value {
		v.s.Fail()
	}
	nm := m
	if v.dom.bits != nil {
		adjusted, ok := v.dom.bits.computeNewMax(m, v.dom.min.value)
		if !ok {
			v.s.Fail()
		}
		nm = adjusted
		v.dom.size.setValue(v.s, v.dom.size.value-v.dom.bits.count(nm+1, v.dom.max.value))
	}
	v.dom.max.setValue(v.s, nm)
	v.s.queue.enqueueVar(v)
}

func (v *domainIntVar) SetRange(l, u int64) {
	if l > u {
		v.s.Fail()
	}
	v.s.queue.freeze()
	v.SetMin(l)
	v.SetMax(u)
	v.s.queue.unfreeze()
}

func (v *domainIntVar) SetValue(val int64) {
	v.SetRange(val, val)
}

func (v *domainIntVar) RemoveValue(val int64) {
	if v.inProcess {
		if val < v.newMin || val > v.newMax {
			return
		}
		switch {
		case val == v.newMin && val == v.newMax:
			v.s.Fail()
		case val == v.newMin:
			v.newMin++
		case val == v.newMax:
			v.newMax--
		default:
			v.delayedRemovals = append(v.delayedRemovals, val)
		}
		return
	}
	dmin, dmax := v.dom.min.value, v.dom.max.value
	switch {
	case val < dmin || val > dmax:
		return
	case val == dmin:
		v.SetMin(val + 1)
	case val == dmax:
		v.SetMax(val - 1)
	default:
		v.dom.materialize()
		if v.dom.bits.removeValue(v.s, val) {
			v.dom.size.setValue(v.s, v.dom.size.value-1)
			v.dom.holes = append(v.dom.holes, val)
			v.s.queue.enqueueVar(v)
		}
	}
}

func (v *domainIntVar) RemoveInterval(l, u int64) {
	if l > u {
		return
	}
	if l <= v.dom.min.value {
		v.SetMin(u + 1)
		return
	}
	if u >= v.dom.max.value {
		v.SetMax(l - 1)
		return
	}
	// Both endpoints interior: per-value removal, O(u-l).
	v.s.queue.freeze()
	for val := l; val <= u; val++ {
		v.RemoveValue(val)
	}
	v.s.queue.unfreeze()
}

func (v *domainIntVar) WhenBound(d *Demon) {
	v.boundDemons = append(v.boundDemons, d)
}

func (v *domainIntVar) WhenRange(d *Demon) {
	v.rangeDemons = append(v.rangeDemons, d)
}

func (v *domainIntVar) WhenDomain(d *Demon) {
	v.domainDemons = append(v.domainDemons, d)
}

func (v *domainIntVar) isQueued() bool { return v.queued }

func (v *domainIntVar) setQueued(q bool) { v.queued = q }

func (v *domainIntVar) clearPending() {
	v.delayedRemovals = v.delayedRemovals[:0]
	v.dom.holes = v.dom.holes[:0]
}

// process runs one wake-up batch: bound demons first, then range demons,
// then domain demons. The cleanup registered on entry guarantees the
// inProcess guard cannot leak if a demon fails.
func (v *domainIntVar) process() {
	if v.inProcess {
		panic(fmt.Sprintf("cp: reentrant process on %s", v.name))
	}
	v.inProcess = true
	v.s.addCleanup(func() {
		v.inProcess = false
		v.clearPending()
	})

	v.newMin = v.dom.min.value
	v.newMax = v.dom.max.value
	v.dom.holesBatch = v.dom.holes
	v.dom.holes = nil

	if v.dom.min.value == v.dom.max.value && v.oldMin.value != v.oldMax.value {
		v.execDemons(v.boundDemons)
	}
	if v.oldMin.value != v.dom.min.value || v.oldMax.value != v.dom.max.value {
		v.execDemons(v.rangeDemons)
	}
	v.execDemons(v.domainDemons)

	v.s.popCleanup()
	v.inProcess = false
	v.oldMin.setValue(v.s, v.dom.min.value)
	v.oldMax.setValue(v.s, v.dom.max.value)

	// Replay the tightening buffered during the batch through the normal
	// path; this may enqueue the variable again.
	nm, nx := v.newMin, v.newMax
	removals := v.delayedRemovals
	v.delayedRemovals = nil
	if nm > v.dom.min.value {
		v.SetMin(nm)
	}
	if nx < v.dom.max.value {
		v.SetMax(nx)
	}
	for _, val := range removals {
		v.RemoveValue(val)
	}
}

func (v *domainIntVar) execDemons(demons []*Demon) {
	for _, d := range demons {
		if d.priority == Delayed {
			v.s.queue.enqueueDemon(d)
		} else {
			v.s.tracer.OnRun(d)
			d.run(v.s)
		}
	}
}

func (v *domainIntVar) MakeDomainIterator() IntVarIterator {
	it := &domainIterator{v: v}
	it.Init()
	return it
}

func (v *domainIntVar) MakeHoleIterator() IntVarIterator {
	return &holeIterator{holes: v.dom.holesBatch}
}

func (v *domainIntVar) IsEqual(c int64) IntVar {
	if v.eqCache == nil {
		v.eqCache = make(map[int64]IntVar)
	}
	if b, ok := v.eqCache[c]; ok {
		return b
	}
	b := makeIsEqualVar(v.s, v, c)
	v.eqCache[c] = b
	return b
}

func (v *domainIntVar) IsGreaterOrEqual(c int64) IntVar {
	if v.geCache == nil {
		v.geCache = make(map[int64]IntVar)
	}
	if b, ok := v.geCache[c]; ok {
		return b
	}
	b := makeIsGreaterOrEqualVar(v.s, v, c)
	v.geCache[c] = b
	return b
}

func (v *domainIntVar) IsLessOrEqual(c int64) IntVar {
	if v.leCache == nil {
		v.leCache = make(map[int64]IntVar)
	}
	if b, ok := v.leCache[c]; ok {
		return b
	}
	b := makeIsLessOrEqualVar(v.s, v, c)
	v.leCache[c] = b
	return b
}
