package bytehuff

import (
	"math"
	mathbits "math/bits"
)

// satAdd64 adds two counts, clamping at math.MaxUint64 instead of wrapping.
func satAdd64(a, b uint64) uint64 {
	sum, carry := mathbits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}

// payloadBytes returns ceil(bitLength / 8).
func payloadBytes(bitLength uint64) uint64 {
	return bitLength/8 + uint64(bitLength%8+7)/8
}

func lowMask64(n uint) uint64 {
	if n >= 64 {
		return math.MaxUint64
	}
	return (uint64(1) << n) - 1
}
