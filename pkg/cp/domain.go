package cp

// domain is the value set of one domainIntVar: a [min, max] interval plus,
// once a value has been removed from the interior, a bitset over the
// creation-time span. min and max are always members of the bitset when it
// exists.
type domain struct {
	min, max   revInt
	omin, omax int64 // creation bounds; fix the bitset span
	bits       bitset
	size       revInt // member count, meaningful only with bits != nil

	// holes are the interior values removed since the last propagation
	// batch. The accumulator is moved to holesBatch when the owning
	// variable starts processing, so hole iterators see a stable snapshot.
	holes      []int64
	holesBatch []int64
}

func (d *domain) contains(v int64) bool {
	if v < d.min.value || v > d.max.value {
		return false
	}
	if d.bits != nil {
		return d.bits.contains(v)
	}
	return true
}

func (d *domain) domainSize() uint64 {
	if d.bits != nil {
		return uint64(d.size.value)
	}
	return uint64(d.max.value - d.min.value + 1)
}

// materialize creates the bitset lazily on first interior removal.
func (d *domain) materialize() {
	if d.bits == nil {
		d.bits = newBitset(d.omin, d.omax)
		d.size = revInt{value: d.max.value - d.min.value + 1}
	}
}

// domainIterator walks the current domain in increasing order. A snapshot
// of the bounds is taken by Init; removals performed while iterating are
// not reflected, matching the restart-on-Init contract.
type domainIterator struct {
	v   IntVar
	cur int64
	max int64
}

func (it *domainIterator) Init() {
	it.cur = it.v.Min()
	it.max = it.v.Max()
}

func (it *domainIterator) Ok() bool {
	return it.cur <= it.max
}

func (it *domainIterator) Value() int64 {
	return it.cur
}

func (it *domainIterator) Next() {
	for {
		it.cur++
		if it.cur > it.max || it.v.Contains(it.cur) {
			return
		}
	}
}

// holeIterator walks the holes recorded for the current propagation batch.
type holeIterator struct {
	holes []int64
	pos   int
}

func (it *holeIterator) Init() {
	it.pos = 0
}

func (it *holeIterator) Ok() bool {
	return it.pos < len(it.holes)
}

func (it *holeIterator) Value() int64 {
	return it.holes[it.pos]
}

func (it *holeIterator) Next() {
	it.pos++
}

// emptyIterator is the hole iterator of variables that cannot have holes.
type emptyIterator struct{}

func (emptyIterator) Init()        {}
func (emptyIterator) Ok() bool     { return false }
func (emptyIterator) Value() int64 { panic("cp: Value on empty iterator") }
func (emptyIterator) Next()        {}
