package cp

import "fmt"

// fixedDurationIntervalVar is an optional activity with a fixed duration.
// The performed state machine is monotone: MaybePerformed can move to
// Performed or NotPerformed, both of which are terminal. Narrowing the
// start past feasibility while the activity is still optional does not
// fail: it resolves the activity to NotPerformed.
type fixedDurationIntervalVar struct {
	s        *Solver
	name     string
	duration int64

	startMin, startMax revInt
	performed          revInt

	oldStartMin, oldStartMax revInt
	oldPerformed             revInt

	startRangeDemons []*Demon
	startBoundDemons []*Demon
	performedDemons  []*Demon
	anythingDemons   []*Demon

	inProcess              bool
	newStartMin, newStartMax int64
	queued                 bool
}

var _ IntervalVar = (*fixedDurationIntervalVar)(nil)

// MakeFixedDurationIntervalVar returns an interval variable with start in
// [startMin, startMax] and the given duration. With optional set the
// activity starts in the MaybePerformed state.
func (s *Solver) MakeFixedDurationIntervalVar(startMin, startMax, duration int64, optional bool, name string) IntervalVar {
	if startMin > startMax || duration < 0 {
		panic(fmt.Sprintf("cp: MakeFixedDurationIntervalVar %q with invalid parameters", name))
	}
	performed := Performed
	if optional {
		performed = MaybePerformed
	}
	return &fixedDurationIntervalVar{
		s:            s,
		name:         name,
		duration:     duration,
		startMin:     revInt{value: startMin},
		startMax:     revInt{value: startMax},
		performed:    revInt{value: int64(performed)},
		oldStartMin:  revInt{value: startMin},
		oldStartMax:  revInt{value: startMax},
		oldPerformed: revInt{value: int64(performed)},
	}
}

func (t *fixedDurationIntervalVar) Solver() *Solver { return t.s }

// checkNotUnperformed guards every getter: reading the bounds of an
// activity that is known not to happen is a bug in the caller.
func (t *fixedDurationIntervalVar) checkNotUnperformed() {
	if t.CannotBePerformed() {
		panic(fmt.Sprintf("cp: getter called on unperformed interval %s", t.name))
	}
}

func (t *fixedDurationIntervalVar) StartMin() int64 {
	t.checkNotUnperformed()
	return t.startMin.value
}

func (t *fixedDurationIntervalVar) StartMax() int64 {
	t.checkNotUnperformed()
	return t.startMax.value
}

func (t *fixedDurationIntervalVar) DurationMin() int64 {
	t.checkNotUnperformed()
	return t.duration
}

func (t *fixedDurationIntervalVar) DurationMax() int64 {
	t.checkNotUnperformed()
	return t.duration
}

func (t *fixedDurationIntervalVar) EndMin() int64 {
	t.checkNotUnperformed()
	return CapAdd(t.startMin.value, t.duration)
}

func (t *fixedDurationIntervalVar) EndMax() int64 {
	t.checkNotUnperformed()
	return CapAdd(t.startMax.value, t.duration)
}

func (t *fixedDurationIntervalVar) MustBePerformed() bool {
	return PerformedState(t.performed.value) == Performed
}

func (t *fixedDurationIntervalVar) MayBePerformed() bool {
	return PerformedState(t.performed.value) != NotPerformed
}

func (t *fixedDurationIntervalVar) CannotBePerformed() bool {
	return PerformedState(t.performed.value) == NotPerformed
}

// becomeUnperformable resolves an infeasible narrowing: an optional
// activity quietly switches to NotPerformed, a mandatory one fails.
func (t *fixedDurationIntervalVar) becomeUnperformable() {
	if t.MustBePerformed() {
		t.s.Fail()
	}
	t.SetPerformed(false)
}

func (t *fixedDurationIntervalVar) SetStartMin(m int64) {
	if t.CannotBePerformed() {
		return
	}
	if t.inProcess {
		if m <= t.newStartMin {
			return
		}
		if m > t.newStartMax {
			t.becomeUnperformable()
			return
		}
		t.newStartMin = m
		return
	}
	if m <= t.startMin.value {
		return
	}
	if m > t.startMax.value {
		t.becomeUnperformable()
		return
	}
	t.startMin.setValue(t.s, m)
	t.s.queue.enqueueVar(t)
}

func (t *fixedDurationIntervalVar) SetStartMax(m int64) {
	if t.CannotBePerformed() {
		return
	}
	if t.inProcess {
		if m >= t.newStartMax {
			return
		}
		if m < t.newStartMin {
			t.becomeUnperformable()
			return
		}
		t.newStartMax = m
		return
	}
	if m >= t.startMax.value {
		return
	}
	if m < t.startMin.value {
		t.becomeUnperformable()
		return
	}
	t.startMax.setValue(t.s, m)
	t.s.queue.enqueueVar(t)
}

func (t *fixedDurationIntervalVar) SetStartRange(l, u int64) {
	t.s.queue.freeze()
	t.SetStartMin(l)
	t.SetStartMax(u)
	t.s.queue.unfreeze()
}

func (t *fixedDurationIntervalVar) SetDurationMin(m int64) {
	if t.CannotBePerformed() {
		return
	}
	if m > t.duration {
		t.becomeUnperformable()
	}
}

func (t *fixedDurationIntervalVar) SetDurationMax(m int64) {
	if t.CannotBePerformed() {
		return
	}
	if m < t.duration {
		t.becomeUnperformable()
	}
}

func (t *fixedDurationIntervalVar) SetDurationRange(l, u int64) {
	t.SetDurationMin(l)
	t.SetDurationMax(u)
}

func (t *fixedDurationIntervalVar) SetEndMin(m int64) {
	t.SetStartMin(CapSub(m, t.duration))
}

func (t *fixedDurationIntervalVar) SetEndMax(m int64) {
	t.SetStartMax(CapSub(m, t.duration))
}

func (t *fixedDurationIntervalVar) SetEndRange(l, u int64) {
	t.SetStartRange(CapSub(l, t.duration), CapSub(u, t.duration))
}

func (t *fixedDurationIntervalVar) SetPerformed(performed bool) {
	state := PerformedState(t.performed.value)
	if performed {
		switch state {
		case NotPerformed:
			t.s.Fail()
		case MaybePerformed:
			t.performed.setValue(t.s, int64(Performed))
			t.s.queue.enqueueVar(t)
		}
		return
	}
	switch state {
	case Performed:
		t.s.Fail()
	case MaybePerformed:
		t.performed.setValue(t.s, int64(NotPerformed))
		t.s.queue.enqueueVar(t)
	}
}

func (t *fixedDurationIntervalVar) WhenStartRange(d *Demon) {
	t.startRangeDemons = append(t.startRangeDemons, d)
}

func (t *fixedDurationIntervalVar) WhenStartBound(d *Demon) {
	t.startBoundDemons = append(t.startBoundDemons, d)
}

func (t *fixedDurationIntervalVar) WhenPerformedBound(d *Demon) {
	t.performedDemons = append(t.performedDemons, d)
}

func (t *fixedDurationIntervalVar) WhenAnything(d *Demon) {
	t.anythingDemons = append(t.anythingDemons, d)
}

func (t *fixedDurationIntervalVar) isQueued() bool { return t.queued }

func (t *fixedDurationIntervalVar) setQueued(q bool) { t.queued = q }

func (t *fixedDurationIntervalVar) clearPending() {}

func (t *fixedDurationIntervalVar) process() {
	if t.inProcess {
		panic(fmt.Sprintf("cp: reentrant process on %s", t.name))
	}
	t.inProcess = true
	t.s.addCleanup(func() { t.inProcess = false })

	t.newStartMin = t.startMin.value
	t.newStartMax = t.startMax.value

	if t.performed.value != t.oldPerformed.value {
		t.execDemons(t.performedDemons)
	}
	if t.MayBePerformed() {
		if t.startMin.value == t.startMax.value && t.oldStartMin.value != t.oldStartMax.value {
			t.execDemons(t.startBoundDemons)
		}
		if t.oldStartMin.value != t.startMin.value || t.oldStartMax.value != t.startMax.value {
			t.execDemons(t.startRangeDemons)
		}
	}
	t.execDemons(t.anythingDemons)

	t.s.popCleanup()
	t.inProcess = false
	t.oldStartMin.setValue(t.s, t.startMin.value)
	t.oldStartMax.setValue(t.s, t.startMax.value)
	t.oldPerformed.setValue(t.s, t.performed.value)

	nm, nx := t.newStartMin, t.newStartMax
	if nm > t.startMin.value {
		t.SetStartMin(nm)
	}
	if nx < t.startMax.value {
		t.SetStartMax(nx)
	}
}

func (t *fixedDurationIntervalVar) execDemons(demons []*Demon) {
	for _, d := range demons {
		if d.priority == Delayed {
			t.s.queue.enqueueDemon(d)
		} else {
			t.s.tracer.OnRun(d)
			d.run(t.s)
		}
	}
}

func (t *fixedDurationIntervalVar) String() string {
	switch {
	case t.CannotBePerformed():
		return fmt.Sprintf("%s(unperformed)", t.name)
	case t.MustBePerformed():
		return fmt.Sprintf("%s(start=%d..%d, duration=%d)", t.name, t.startMin.value, t.startMax.value, t.duration)
	default:
		return fmt.Sprintf("%s(start=%d..%d, duration=%d, optional)", t.name, t.startMin.value, t.startMax.value, t.duration)
	}
}

// mirrorIntervalVar is the time-reversed view of an interval: its start is
// the negated end of the underlying interval and vice versa.
type mirrorIntervalVar struct {
	t IntervalVar
}

var _ IntervalVar = (*mirrorIntervalVar)(nil)

// MakeMirrorInterval returns the time-reversed view of t. Mirroring twice
// returns the original interval.
func (s *Solver) MakeMirrorInterval(t IntervalVar) IntervalVar {
	if m, ok := t.(*mirrorIntervalVar); ok {
		return m.t
	}
	return &mirrorIntervalVar{t: t}
}

func (m *mirrorIntervalVar) Solver() *Solver { return m.t.Solver() }

func (m *mirrorIntervalVar) StartMin() int64 { return CapOpp(m.t.EndMax()) }

func (m *mirrorIntervalVar) StartMax() int64 { return CapOpp(m.t.EndMin()) }

func (m *mirrorIntervalVar) EndMin() int64 { return CapOpp(m.t.StartMax()) }

func (m *mirrorIntervalVar) EndMax() int64 { return CapOpp(m.t.StartMin()) }

func (m *mirrorIntervalVar) DurationMin() int64 { return m.t.DurationMin() }

func (m *mirrorIntervalVar) DurationMax() int64 { return m.t.DurationMax() }

func (m *mirrorIntervalVar) SetStartMin(v int64) { m.t.SetEndMax(CapOpp(v)) }

func (m *mirrorIntervalVar) SetStartMax(v int64) { m.t.SetEndMin(CapOpp(v)) }

func (m *mirrorIntervalVar) SetStartRange(l, u int64) { m.t.SetEndRange(CapOpp(u), CapOpp(l)) }

func (m *mirrorIntervalVar) SetEndMin(v int64) { m.t.SetStartMax(CapOpp(v)) }

func (m *mirrorIntervalVar) SetEndMax(v int64) { m.t.SetStartMin(CapOpp(v)) }

func (m *mirrorIntervalVar) SetEndRange(l, u int64) { m.t.SetStartRange(CapOpp(u), CapOpp(l)) }

func (m *mirrorIntervalVar) SetDurationMin(v int64) { m.t.SetDurationMin(v) }

func (m *mirrorIntervalVar) SetDurationMax(v int64) { m.t.SetDurationMax(v) }

func (m *mirrorIntervalVar) SetDurationRange(l, u int64) { m.t.SetDurationRange(l, u) }

func (m *mirrorIntervalVar) MustBePerformed() bool { return m.t.MustBePerformed() }

func (m *mirrorIntervalVar) MayBePerformed() bool { return m.t.MayBePerformed() }

func (m *mirrorIntervalVar) CannotBePerformed() bool { return m.t.CannotBePerformed() }

func (m *mirrorIntervalVar) SetPerformed(performed bool) { m.t.SetPerformed(performed) }

func (m *mirrorIntervalVar) WhenStartRange(d *Demon) { m.t.WhenStartRange(d) }

func (m *mirrorIntervalVar) WhenStartBound(d *Demon) { m.t.WhenStartBound(d) }

func (m *mirrorIntervalVar) WhenPerformedBound(d *Demon) { m.t.WhenPerformedBound(d) }

func (m *mirrorIntervalVar) WhenAnything(d *Demon) { m.t.WhenAnything(d) }

func (m *mirrorIntervalVar) String() string {
	return fmt.Sprintf("mirror(%s)", m.t)
}

// alwaysPerformedWrapper presents an optional interval as always performed:
// when the underlying interval cannot be performed the wrapper degenerates
// to a zero-duration activity with sentinel bounds. Downstream propagators
// needing a guaranteed-performed view use it instead of special-casing
// optionality.
type alwaysPerformedWrapper struct {
	t IntervalVar
}

var _ IntervalVar = (*alwaysPerformedWrapper)(nil)

// MakeAlwaysPerformedInterval wraps t into an always-performed view.
func (s *Solver) MakeAlwaysPerformedInterval(t IntervalVar) IntervalVar {
	return &alwaysPerformedWrapper{t: t}
}

func (w *alwaysPerformedWrapper) Solver() *Solver { return w.t.Solver() }

func (w *alwaysPerformedWrapper) StartMin() int64 {
	if w.t.MayBePerformed() {
		return w.t.StartMin()
	}
	return MinValidValue
}

func (w *alwaysPerformedWrapper) StartMax() int64 {
	if w.t.MayBePerformed() {
		return w.t.StartMax()
	}
	return MaxValidValue
}

func (w *alwaysPerformedWrapper) EndMin() int64 {
	if w.t.MayBePerformed() {
		return w.t.EndMin()
	}
	return MinValidValue
}

func (w *alwaysPerformedWrapper) EndMax() int64 {
	if w.t.MayBePerformed() {
		return w.t.EndMax()
	}
	return MaxValidValue
}

func (w *alwaysPerformedWrapper) DurationMin() int64 {
	if w.t.MayBePerformed() {
		return w.t.DurationMin()
	}
	return 0
}

func (w *alwaysPerformedWrapper) DurationMax() int64 {
	if w.t.MayBePerformed() {
		return w.t.DurationMax()
	}
	return 0
}

func (w *alwaysPerformedWrapper) SetStartMin(v int64) {
	if w.t.MayBePerformed() {
		w.t.SetStartMin(v)
	}
}

func (w *alwaysPerformedWrapper) SetStartMax(v int64) {
	if w.t.MayBePerformed() {
		w.t.SetStartMax(v)
	}
}

func (w *alwaysPerformedWrapper) SetStartRange(l, u int64) {
	if w.t.MayBePerformed() {
		w.t.SetStartRange(l, u)
	}
}

func (w *alwaysPerformedWrapper) SetEndMin(v int64) {
	if w.t.MayBePerformed() {
		w.t.SetEndMin(v)
	}
}

func (w *alwaysPerformedWrapper) SetEndMax(v int64) {
	if w.t.MayBePerformed() {
		w.t.SetEndMax(v)
	}
}

func (w *alwaysPerformedWrapper) SetEndRange(l, u int64) {
	if w.t.MayBePerformed() {
		w.t.SetEndRange(l, u)
	}
}

func (w *alwaysPerformedWrapper) SetDurationMin(v int64) {
	if w.t.MayBePerformed() {
		w.t.SetDurationMin(v)
	}
}

func (w *alwaysPerformedWrapper) SetDurationMax(v int64) {
	if w.t.MayBePerformed() {
		w.t.SetDurationMax(v)
	}
}

func (w *alwaysPerformedWrapper) SetDurationRange(l, u int64) {
	if w.t.MayBePerformed() {
		w.t.SetDurationRange(l, u)
	}
}

func (w *alwaysPerformedWrapper) MustBePerformed() bool { return true }

func (w *alwaysPerformedWrapper) MayBePerformed() bool { return true }

func (w *alwaysPerformedWrapper) CannotBePerformed() bool { return false }

func (w *alwaysPerformedWrapper) SetPerformed(performed bool) {
	if !performed {
		panic("cp: SetPerformed(false) on an always-performed interval view")
	}
}

func (w *alwaysPerformedWrapper) WhenStartRange(d *Demon) { w.t.WhenStartRange(d) }

func (w *alwaysPerformedWrapper) WhenStartBound(d *Demon) { w.t.WhenStartBound(d) }

func (w *alwaysPerformedWrapper) WhenPerformedBound(d *Demon) { w.t.WhenPerformedBound(d) }

func (w *alwaysPerformedWrapper) WhenAnything(d *Demon) { w.t.WhenAnything(d) }

func (w *alwaysPerformedWrapper) String() string {
	return fmt.Sprintf("alwaysPerformed(%s)", w.t)
}

// relaxedIntervalVar implements the relaxed-min and relaxed-max views: one
// side of an optional interval is reported as unbounded until the interval
// is known to be performed, so propagators watching that side never tighten
// it speculatively. Mutating the relaxed side is a programmer error, not a
// solver failure: no legitimate propagator should do it.
type relaxedIntervalVar struct {
	alwaysPerformedWrapper
	relaxMax bool
}

var _ IntervalVar = (*relaxedIntervalVar)(nil)

// MakeIntervalRelaxedMax returns a view of t whose max side (start max and
// end max) is unbounded unless t must be performed.
func (s *Solver) MakeIntervalRelaxedMax(t IntervalVar) IntervalVar {
	return &relaxedIntervalVar{alwaysPerformedWrapper: alwaysPerformedWrapper{t: t}, relaxMax: true}
}

// MakeIntervalRelaxedMin returns a view of t whose min side (start min and
// end min) is unbounded unless t must be performed.
func (s *Solver) MakeIntervalRelaxedMin(t IntervalVar) IntervalVar {
	return &relaxedIntervalVar{alwaysPerformedWrapper: alwaysPerformedWrapper{t: t}, relaxMax: false}
}

func (r *relaxedIntervalVar) StartMin() int64 {
	if !r.relaxMax && !r.t.MustBePerformed() {
		return MinValidValue
	}
	return r.alwaysPerformedWrapper.StartMin()
}

func (r *relaxedIntervalVar) EndMin() int64 {
	if !r.relaxMax && !r.t.MustBePerformed() {
		return MinValidValue
	}
	return r.alwaysPerformedWrapper.EndMin()
}

func (r *relaxedIntervalVar) StartMax() int64 {
	if r.relaxMax && !r.t.MustBePerformed() {
		return MaxValidValue
	}
	return r.alwaysPerformedWrapper.StartMax()
}

func (r *relaxedIntervalVar) EndMax() int64 {
	if r.relaxMax && !r.t.MustBePerformed() {
		return MaxValidValue
	}
	return r.alwaysPerformedWrapper.EndMax()
}

func (r *relaxedIntervalVar) SetStartMin(v int64) {
	if !r.relaxMax {
		panic("cp: SetStartMin called on a relaxed-min interval view")
	}
	r.alwaysPerformedWrapper.SetStartMin(v)
}

func (r *relaxedIntervalVar) SetEndMin(v int64) {
	if !r.relaxMax {
		panic("cp: SetEndMin called on a relaxed-min interval view")
	}
	r.alwaysPerformedWrapper.SetEndMin(v)
}

func (r *relaxedIntervalVar) SetStartMax(v int64) {
	if r.relaxMax {
		panic("cp: SetStartMax called on a relaxed-max interval view")
	}
	r.alwaysPerformedWrapper.SetStartMax(v)
}

func (r *relaxedIntervalVar) SetEndMax(v int64) {
	if r.relaxMax {
		panic("cp: SetEndMax called on a relaxed-max interval view")
	}
	r.alwaysPerformedWrapper.SetEndMax(v)
}

func (r *relaxedIntervalVar) SetStartRange(l, u int64) {
	panic("cp: SetStartRange called on a relaxed interval view")
}

func (r *relaxedIntervalVar) SetEndRange(l, u int64) {
	panic("cp: SetEndRange called on a relaxed interval view")
}

func (r *relaxedIntervalVar) String() string {
	if r.relaxMax {
		return fmt.Sprintf("relaxedMax(%s)", r.t)
	}
	return fmt.Sprintf("relaxedMin(%s)", r.t)
}
