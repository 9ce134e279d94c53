package cp

import "math"

// Saturating 64-bit arithmetic. Expression propagation works on bounds that
// may sit at the edge of the representable range; instead of wrapping, every
// operation clamps to [math.MinInt64, math.MaxInt64].

// CapAdd returns a+b, saturating on overflow.
func CapAdd(a, b int64) int64 {
	sum := a + b
	// Overflow iff both operands share a sign the sum does not.
	if (a >= 0) == (b >= 0) && (sum >= 0) != (a >= 0) {
		if a >= 0 {
			return math.MaxInt64
		}
		return math.MinInt64
	}
	return sum
}

// CapSub returns a-b, saturating on overflow.
func CapSub(a, b int64) int64 {
	if b == math.MinInt64 {
		if a >= 0 {
			return math.MaxInt64
		}
		return CapAdd(CapAdd(a, math.MaxInt64), 1)
	}
	return CapAdd(a, -b)
}

// CapOpp returns -a, saturating -MinInt64 to MaxInt64.
func CapOpp(a int64) int64 {
	if a == math.MinInt64 {
		return math.MaxInt64
	}
	return -a
}

// CapProd returns a*b, saturating on overflow.
func CapProd(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	p := a * b
	if p/b == a && (a != math.MinInt64 || b != -1) {
		return p
	}
	if (a > 0) == (b > 0) {
		return math.MaxInt64
	}
	return math.MinInt64
}

// PosIntDivUp returns ceil(e/v) for v > 0.
func PosIntDivUp(e, v int64) int64 {
	if e >= 0 {
		return (e + v - 1) / v
	}
	return -(-e / v)
}

// PosIntDivDown returns floor(e/v) for v > 0.
func PosIntDivDown(e, v int64) int64 {
	if e >= 0 {
		return e / v
	}
	return -((-e + v - 1) / v)
}
