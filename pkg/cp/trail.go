package cp

// The trail is the reversible store backing all mutable solver state. Every
// write to a reversible cell first records the old value, once per choice
// point thanks to the stamp check, so that PopState can restore the state
// exactly as it was when PushState ran.

type trailEntry struct {
	target *int64
	value  int64
}

type trail struct {
	entries []trailEntry
	marks   []int
}

func (t *trail) save(target *int64) {
	t.entries = append(t.entries, trailEntry{target: target, value: *target})
}

func (t *trail) pushMark() {
	t.marks = append(t.marks, len(t.entries))
}

func (t *trail) popMark() {
	if len(t.marks) == 0 {
		panic("cp: PopState without matching PushState")
	}
	mark := t.marks[len(t.marks)-1]
	t.marks = t.marks[:len(t.marks)-1]
	for i := len(t.entries) - 1; i >= mark; i-- {
		e := t.entries[i]
		*e.target = e.value
	}
	t.entries = t.entries[:mark]
}

// commitMark drops the most recent mark while keeping its entries: the
// changes made since the mark become part of the enclosing choice point.
func (t *trail) commitMark() {
	if len(t.marks) == 0 {
		panic("cp: commit without matching mark")
	}
	t.marks = t.marks[:len(t.marks)-1]
}

// revInt is a reversible int64 cell. The stamp records the choice point of
// the last save so repeated writes within one choice point trail only once.
type revInt struct {
	stamp uint64
	value int64
}

func (r *revInt) setValue(s *Solver, v int64) {
	if v == r.value {
		return
	}
	if r.stamp < s.stamp {
		r.stamp = s.stamp
		s.trail.save(&r.value)
	}
	r.value = v
}

// revBool is a reversible boolean flag, stored as a revInt.
type revBool struct {
	cell revInt
}

func (r *revBool) value() bool {
	return r.cell.value != 0
}

func (r *revBool) setValue(s *Solver, v bool) {
	if v {
		r.cell.setValue(s, 1)
	} else {
		r.cell.setValue(s, 0)
	}
}
