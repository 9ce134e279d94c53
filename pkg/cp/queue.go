package cp

// The demon queue. Modified variables enqueue their own handler, which runs
// Process on them; Process runs the registered demons in event order (bound,
// range, domain). Delayed demons land in a separate FIFO drained only after
// the variable queue is empty. Both queues are strict FIFO so a given input
// always propagates in the same order.

type processable interface {
	process()
	setQueued(q bool)
	isQueued() bool
	// clearPending drops buffered removals and recorded holes; used when a
	// failed branch is abandoned.
	clearPending()
}

type queue struct {
	s *Solver

	vars    []processable
	demons  []*Demon
	delayed []*Demon

	freezeLevel int
	inLoop      bool
}

// freeze suspends processing so that a batch of modifications can be posted
// before demons start running. freeze/unfreeze calls nest.
func (q *queue) freeze() {
	q.freezeLevel++
}

func (q *queue) unfreeze() {
	q.freezeLevel--
	q.processIfUnfrozen()
}

// reset drops all pending work. Called by Solver.Fail: demons scheduled for
// a failed branch must not run after backtracking.
func (q *queue) reset() {
	for _, v := range q.vars {
		v.setQueued(false)
		v.clearPending()
	}
	for _, d := range q.demons {
		d.enqueued = false
	}
	for _, d := range q.delayed {
		d.enqueued = false
	}
	q.vars = q.vars[:0]
	q.demons = q.demons[:0]
	q.delayed = q.delayed[:0]
	q.freezeLevel = 0
	q.inLoop = false
}

func (q *queue) enqueueVar(v processable) {
	if v.isQueued() {
		return
	}
	v.setQueued(true)
	q.vars = append(q.vars, v)
	q.processIfUnfrozen()
}

func (q *queue) enqueueDemon(d *Demon) {
	if d.enqueued {
		return
	}
	d.enqueued = true
	q.s.tracer.OnEnqueue(d)
	if d.priority == Delayed {
		q.delayed = append(q.delayed, d)
	} else {
		q.demons = append(q.demons, d)
	}
	q.processIfUnfrozen()
}

// processIfUnfrozen drains the queues to fixpoint. Work enqueued by running
// demons is picked up by the same loop; the inLoop flag keeps nested setter
// calls from recursing into a second loop.
func (q *queue) processIfUnfrozen() {
	if q.freezeLevel > 0 || q.inLoop {
		return
	}
	q.inLoop = true
	for {
		if len(q.vars) > 0 {
			v := q.vars[0]
			q.vars = q.vars[1:]
			v.setQueued(false)
			v.process()
			continue
		}
		if len(q.demons) > 0 {
			d := q.demons[0]
			q.demons = q.demons[1:]
			d.enqueued = false
			q.s.tracer.OnRun(d)
			d.run(q.s)
			continue
		}
		if len(q.delayed) > 0 {
			d := q.delayed[0]
			q.delayed = q.delayed[1:]
			d.enqueued = false
			q.s.tracer.OnRun(d)
			d.run(q.s)
			continue
		}
		break
	}
	q.inLoop = false
}
