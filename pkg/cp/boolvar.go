package cp

import "fmt"

const unboundBooleanValue = 2

// booleanVar is a 0/1 variable stored as a single reversible cell holding
// 0, 1 or unboundBooleanValue. Bound, range and domain events coincide for
// a boolean, so a single demon list serves all three registrations.
type booleanVar struct {
	s        *Solver
	name     string
	value    revInt
	oldValue revInt

	demons []*Demon

	inProcess bool
	queued    bool

	eqCache map[int64]IntVar
}

var _ IntVar = (*booleanVar)(nil)

func (v *booleanVar) Solver() *Solver { return v.s }

func (v *booleanVar) Min() int64 {
	if v.value.value == unboundBooleanValue {
		return 0
	}
	return v.value.value
}

func (v *booleanVar) Max() int64 {
	if v.value.value == unboundBooleanValue {
		return 1
	}
	return v.value.value
}

func (v *booleanVar) OldMin() int64 {
	if v.oldValue.value == unboundBooleanValue {
		return 0
	}
	return v.oldValue.value
}

func (v *booleanVar) OldMax() int64 {
	if v.oldValue.value == unboundBooleanValue {
		return 1
	}
	return v.oldValue.value
}

func (v *booleanVar) Bound() bool { return v.value.value != unboundBooleanValue }

func (v *booleanVar) Value() int64 {
	if !v.Bound() {
		panic(fmt.Sprintf("cp: Value called on unbound variable %s", v))
	}
	return v.value.value
}

func (v *booleanVar) Contains(val int64) bool {
	if val < 0 || val > 1 {
		return false
	}
	return !v.Bound() || v.value.value == val
}

func (v *booleanVar) Size() uint64 {
	if v.Bound() {
		return 1
	}
	return 2
}

func (v *booleanVar) IsVar() bool { return true }

func (v *booleanVar) Var() IntVar { return v }

func (v *booleanVar) shape() exprShape { return shapeVar }

func (v *booleanVar) String() string {
	switch v.value.value {
	case unboundBooleanValue:
		return fmt.Sprintf("%s(0..1)", v.name)
	default:
		return fmt.Sprintf("%s(%d)", v.name, v.value.value)
	}
}

func (v *booleanVar) SetValue(val int64) {
	if val < 0 || val > 1 {
		v.s.Fail()
	}
	if v.Bound() {
		if v.value.value != val {
			v.s.Fail()
		}
		return
	}
	v.value.setValue(v.s, val)
	v.s.queue.enqueueVar(v)
}

func (v *booleanVar) SetMin(m int64) {
	switch {
	case m <= 0:
	case m == 1:
		v.SetValue(1)
	default:
		v.s.Fail()
	}
}

func (v *booleanVar) SetMax(m int64) {
	switch {
	case m >= 1:
	case m == 0:
		v.SetValue(0)
	default:
		v.s.Fail()
	}
}

func (v *booleanVar) SetRange(l, u int64) {
	if l > u {
		v.s.Fail()
	}
	v.SetMin(l)
	v.SetMax(u)
}

func (v *booleanVar) RemoveValue(val int64) {
	switch val {
	case 0:
		v.SetMin(1)
	case 1:
		v.SetMax(0)
	}
}

func (v *booleanVar) RemoveInterval(l, u int64) {
	if l <= 0 && u >= 0 {
		v.RemoveValue(0)
	}
	if l <= 1 && u >= 1 {
		v.RemoveValue(1)
	}
}

func (v *booleanVar) WhenBound(d *Demon) { v.demons = append(v.demons, d) }

func (v *booleanVar) WhenRange(d *Demon) { v.demons = append(v.demons, d) }

func (v *booleanVar) WhenDomain(d *Demon) { v.demons = append(v.demons, d) }

func (v *booleanVar) isQueued() bool { return v.queued }

func (v *booleanVar) setQueued(q bool) { v.queued = q }

func (v *booleanVar) clearPending() {}

// process for a boolean is simpler than for a domain variable: once
// enqueued the value is committed and bound, so a reentrant setter call can
// only confirm it or fail; there is no shadow state to replay.
func (v *booleanVar) process() {
	if v.inProcess {
		panic(fmt.Sprintf("cp: reentrant process on %s", v.name))
	}
	v.inProcess = true
	v.s.addCleanup(func() { v.inProcess = false })
	for _, d := range v.demons {
		if d.priority == Delayed {
			v.s.queue.enqueueDemon(d)
		} else {
			v.s.tracer.OnRun(d)
			d.run(v.s)
		}
	}
	v.s.popCleanup()
	v.inProcess = false
	v.oldValue.setValue(v.s, v.value.value)
}

func (v *booleanVar) MakeDomainIterator() IntVarIterator {
	it := &domainIterator{v: v}
	it.Init()
	return it
}

func (v *booleanVar) MakeHoleIterator() IntVarIterator { return emptyIterator{} }

func (v *booleanVar) IsEqual(c int64) IntVar {
	switch c {
	case 1:
		return v
	case 0:
		if v.eqCache == nil {
			v.eqCache = make(map[int64]IntVar)
		}
		if b, ok := v.eqCache[0]; ok {
			return b
		}
		b := makeIsEqualVar(v.s, v, 0)
		v.eqCache[0] = b
		return b
	default:
		return v.s.MakeIntConst(0)
	}
}

func (v *booleanVar) IsGreaterOrEqual(c int64) IntVar {
	switch {
	case c <= 0:
		return v.s.MakeIntConst(1)
	case c == 1:
		return v
	default:
		return v.s.MakeIntConst(0)
	}
}

func (v *booleanVar) IsLessOrEqual(c int64) IntVar {
	switch {
	case c >= 1:
		return v.s.MakeIntConst(1)
	case c == 0:
		return v.IsEqual(0)
	default:
		return v.s.MakeIntConst(0)
	}
}

// intConst is a fixed value. Mutators are no-ops when satisfied and fail
// otherwise; demons never fire because the value never changes.
type intConst struct {
	s     *Solver
	value int64
}

var _ IntVar = (*intConst)(nil)

func (c *intConst) Solver() *Solver { return c.s }

func (c *intConst) Min() int64 { return c.value }

func (c *intConst) Max() int64 { return c.value }

func (c *intConst) OldMin() int64 { return c.value }

func (c *intConst) OldMax() int64 { return c.value }

func (c *intConst) Bound() bool { return true }

func (c *intConst) Value() int64 { return c.value }

func (c *intConst) Contains(v int64) bool { return v == c.value }

func (c *intConst) Size() uint64 { return 1 }

func (c *intConst) IsVar() bool { return true }

func (c *intConst) Var() IntVar { return c }

func (c *intConst) shape() exprShape { return shapeConst }

func (c *intConst) String() string { return fmt.Sprintf("%d", c.value) }

func (c *intConst) SetMin(m int64) {
	if m > c.value {
		c.s.Fail()
	}
}

func (c *intConst) SetMax(m int64) {
	if m < c.value {
		c.s.Fail()
	}
}

func (c *intConst) SetRange(l, u int64) {
	if l > c.value || u < c.value {
		c.s.Fail()
	}
}

func (c *intConst) SetValue(v int64) {
	if v != c.value {
		c.s.Fail()
	}
}

func (c *intConst) RemoveValue(v int64) {
	if v == c.value {
		c.s.Fail()
	}
}

func (c *intConst) RemoveInterval(l, u int64) {
	if l <= c.value && c.value <= u {
		c.s.Fail()
	}
}

func (c *intConst) WhenBound(_ *Demon) {}

func (c *intConst) WhenRange(_ *Demon) {}

func (c *intConst) WhenDomain(_ *Demon) {}

func (c *intConst) MakeDomainIterator() IntVarIterator {
	it := &domainIterator{v: c}
	it.Init()
	return it
}

func (c *intConst) MakeHoleIterator() IntVarIterator { return emptyIterator{} }

func (c *intConst) IsEqual(v int64) IntVar {
	if v == c.value {
		return c.s.MakeIntConst(1)
	}
	return c.s.MakeIntConst(0)
}

func (c *intConst) IsGreaterOrEqual(v int64) IntVar {
	if c.value >= v {
		return c.s.MakeIntConst(1)
	}
	return c.s.MakeIntConst(0)
}

func (c *intConst) IsLessOrEqual(v int64) IntVar {
	if c.value <= v {
		return c.s.MakeIntConst(1)
	}
	return c.s.MakeIntConst(0)
}
