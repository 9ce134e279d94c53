package cp

import "math/bits"

// Bitsets back domains with removed interior values. Two layouts share one
// contract: smallBitSet packs a span of less than 64 values into a single
// word, simpleBitSet handles any span with a word array. Words are trailed
// lazily, once per choice point, via per-word stamps.

type bitset interface {
	// contains reports whether v is still in the set. v must lie within the
	// span the bitset was created for.
	contains(v int64) bool
	// removeValue clears v and reports whether it was present.
	removeValue(s *Solver, v int64) bool
	// computeNewMin returns the smallest member of [m, cmax], if any.
	computeNewMin(m, cmax int64) (int64, bool)
	// computeNewMax returns the largest member of [cmin, m], if any.
	computeNewMax(m, cmin int64) (int64, bool)
	// count returns the number of members in [l, u].
	count(l, u int64) int64
}

const smallBitSetSpan = 64

// newBitset returns a full bitset covering [omin, omax], picking the layout
// by span.
func newBitset(omin, omax int64) bitset {
	span := uint64(omax-omin) + 1
	if span <= smallBitSetSpan {
		return &smallBitSet{offset: omin, span: int64(span), bits: revInt{value: allOnes(int64(span))}}
	}
	return newSimpleBitSet(omin, omax)
}

func allOnes(n int64) int64 {
	if n >= 64 {
		return -1
	}
	return int64(uint64(1)<<uint(n) - 1)
}

type smallBitSet struct {
	offset int64
	span   int64
	bits   revInt
}

func (b *smallBitSet) contains(v int64) bool {
	pos := uint(v - b.offset)
	return uint64(b.bits.value)&(uint64(1)<<pos) != 0
}

func (b *smallBitSet) removeValue(s *Solver, v int64) bool {
	if !b.contains(v) {
		return false
	}
	pos := uint(v - b.offset)
	b.bits.setValue(s, int64(uint64(b.bits.value)&^(uint64(1)<<pos)))
	return true
}

func (b *smallBitSet) computeNewMin(m, cmax int64) (int64, bool) {
	mask := uint64(b.bits.value) >> uint(m-b.offset)
	if mask == 0 {
		return 0, false
	}
	v := m + int64(bits.TrailingZeros64(mask))
	if v > cmax {
		return 0, false
	}
	return v, true
}

func (b *smallBitSet) computeNewMax(m, cmin int64) (int64, bool) {
	mask := uint64(b.bits.value) << uint(63-(m-b.offset))
	if mask == 0 {
		return 0, false
	}
	v := m - int64(bits.LeadingZeros64(mask))
	if v < cmin {
		return 0, false
	}
	return v, true
}

func (b *smallBitSet) count(l, u int64) int64 {
	if l < b.offset {
		l = b.offset
	}
	if u > b.offset+b.span-1 {
		u = b.offset + b.span - 1
	}
	if l > u {
		return 0
	}
	mask := uint64(allOnes(u-l+1)) << uint(l-b.offset)
	return int64(bits.OnesCount64(uint64(b.bits.value) & mask))
}

type simpleBitSet struct {
	offset int64
	words  []int64
	stamps []uint64
}

func newSimpleBitSet(omin, omax int64) *simpleBitSet {
	span := uint64(omax-omin) + 1
	nwords := (span + 63) / 64
	b := &simpleBitSet{
		offset: omin,
		words:  make([]int64, nwords),
		stamps: make([]uint64, nwords),
	}
	for i := range b.words {
		b.words[i] = -1
	}
	// mask off the tail beyond omax
	rem := span % 64
	if rem != 0 {
		b.words[nwords-1] = allOnes(int64(rem))
	}
	return b
}

func (b *simpleBitSet) saveWord(s *Solver, w int) {
	if b.stamps[w] < s.stamp {
		b.stamps[w] = s.stamp
		s.trail.save(&b.words[w])
	}
}

func (b *simpleBitSet) contains(v int64) bool {
	pos := uint64(v - b.offset)
	return uint64(b.words[pos/64])&(uint64(1)<<(pos%64)) != 0
}

func (b *simpleBitSet) removeValue(s *Solver, v int64) bool {
	if !b.contains(v) {
		return false
	}
	pos := uint64(v - b.offset)
	b.saveWord(s, int(pos/64))
	b.words[pos/64] = int64(uint64(b.words[pos/64]) &^ (uint64(1) << (pos % 64)))
	return true
}

func (b *simpleBitSet) count(l, u int64) int64 {
	last := b.offset + int64(len(b.words))*64 - 1
	if l < b.offset {
		l = b.offset
	}
	if u > last {
		u = last
	}
	var n int64
	for v := l; v <= u; {
		pos := uint64(v - b.offset)
		w := int(pos / 64)
		wordEnd := b.offset + int64(w+1)*64 - 1
		hi := u
		if hi > wordEnd {
			hi = wordEnd
		}
		mask := uint64(b.words[w]) >> (pos % 64)
		span := uint(hi - v + 1)
		if span < 64 {
			mask &= uint64(1)<<span - 1
		}
		n += int64(bits.OnesCount64(mask))
		v = hi + 1
	}
	return n
}

func (b *simpleBitSet) computeNewMin(m, cmax int64) (int64, bool) {
	pos := uint64(m - b.offset)
	w := int(pos / 64)
	mask := uint64(b.words[w]) >> (pos % 64)
	if mask != 0 {
		v := m + int64(bits.TrailingZeros64(mask))
		if v > cmax {
			return 0, false
		}
		return v, true
	}
	for w++; w < len(b.words); w++ {
		if b.words[w] != 0 {
			v := b.offset + int64(w)*64 + int64(bits.TrailingZeros64(uint64(b.words[w])))
			if v > cmax {
				return 0, false
			}
			return v, true
		}
	}
	return 0, false
}

func (b *simpleBitSet) computeNewMax(m, cmin int64) (int64, bool) {
	pos := uint64(m - b.offset)
	w := int(pos / 64)
	mask := uint64(b.words[w]) << (63 - pos%64)
	if mask != 0 {
		v := m - int64(bits.LeadingZeros64(mask))
		if v < cmin {
			return 0, false
		}
		return v, true
	}
	for w--; w >= 0; w-- {
		if b.words[w] != 0 {
			v := b.offset + int64(w)*64 + 63 - int64(bits.LeadingZeros64(uint64(b.words[w])))
			if v < cmin {
				return 0, false
			}
			return v, true
		}
	}
	return 0, false
}
