package bytehuff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chronos-tachyon/assert"
)

const codeWords = (MaxCodeSize + 63) / 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  Bit i of the sequence is
	// stored in Bits[i/64] at position i%64, so the least significant bit
	// of Bits[0] is the first bit.
	Bits [codeWords]uint64
}

// MakeCode is a convenience function that constructs a Code of up to 64 bits.
// As with Code.Bits, the least significant bit of bits is the first bit.
func MakeCode(size byte, bits uint64) Code {
	assert.Assertf(size <= 64, "MakeCode size %d > 64", size)
	var hc Code
	hc.Size = size
	hc.Bits[0] = bits & lowMask64(uint(size))
	return hc
}

// ParseCode parses a string of '0' and '1' characters, first bit first.
func ParseCode(str string) (Code, error) {
	if len(str) > MaxCodeSize {
		return Code{}, fmt.Errorf("bytehuff: code %q is longer than %d bits", str, MaxCodeSize)
	}
	var hc Code
	for _, ch := range []byte(str) {
		switch ch {
		case '0':
			hc = hc.Append(0)
		case '1':
			hc = hc.Append(1)
		default:
			return Code{}, fmt.Errorf("bytehuff: invalid character %q in code %q", ch, str)
		}
	}
	return hc, nil
}

// Bit returns the i'th bit of the sequence, 0 or 1.
func (hc Code) Bit(i byte) uint {
	assert.Assertf(i < hc.Size, "bit index %d out of range for code of size %d", i, hc.Size)
	return uint(hc.Bits[i/64]>>(i%64)) & 1
}

// Append returns a copy of this Code with one more bit at the end.
func (hc Code) Append(bit uint) Code {
	assert.Assertf(hc.Size < MaxCodeSize, "code already holds %d bits", hc.Size)
	i := hc.Size
	hc.Bits[i/64] |= uint64(bit&1) << (i % 64)
	hc.Size++
	return hc
}

// HasPrefix returns true iff the first prefix.Size bits of this Code are
// equal to prefix.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	remain := uint(prefix.Size)
	for w := 0; remain != 0; w++ {
		n := remain
		if n > 64 {
			n = 64
		}
		mask := lowMask64(n)
		if hc.Bits[w]&mask != prefix.Bits[w]&mask {
			return false
		}
		remain -= n
	}
	return true
}

// String returns the string representation of this Code, first bit first.
func (hc Code) String() string {
	var sb strings.Builder
	sb.Grow(int(hc.Size))
	for i := byte(0); i < hc.Size; i++ {
		sb.WriteByte('0' + byte(hc.Bit(i)))
	}
	return strconv.Quote(sb.String())
}

var _ fmt.Stringer = Code{}
