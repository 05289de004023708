package bytehuff

import (
	"github.com/chronos-tachyon/assert"
)

// EncodeBits replaces each byte of data with its code from ct and packs the
// resulting bits into bytes, least significant bit first.  It returns the
// packed payload and the number of meaningful bits in it; any bits past
// bitLength in the final byte are zero.
//
// If ct has no code for some byte of data, EncodeBits returns
// *MissingCodeError and no payload.
//
func EncodeBits(data []byte, ct *CodeTable) (payload []byte, bitLength uint64, err error) {
	// Verify the whole input up front, so that no partial payload is ever
	// produced.
	for offset, ch := range data {
		if !ct.present[ch] {
			return nil, 0, &MissingCodeError{Symbol: Symbol(ch), Offset: offset}
		}
	}

	var bw bitWriter
	if total, sizeErr := ct.PayloadBits(CountFrequencies(data)); sizeErr == nil && total/8 < uint64(maxInt) {
		bw.out = make([]byte, 0, payloadBytes(total))
	}

	for _, ch := range data {
		hc := ct.codes[ch]
		if hc.Size == 0 {
			// Single-leaf tree: one bit per occurrence.
			bw.writeBits(0, 1)
			continue
		}
		bw.writeCode(hc)
	}
	bw.flush()

	assert.Assertf(uint64(len(bw.out)) == payloadBytes(bw.total), "wrote %d bytes for %d bits", len(bw.out), bw.total)
	return bw.out, bw.total, nil
}

const maxInt = int(^uint(0) >> 1)

// bitWriter accumulates bits least significant bit first and emits each byte
// as soon as it is full.
type bitWriter struct {
	out    []byte
	bits   uint64
	bitLen uint
	total  uint64
}

// writeBits appends the low count bits of bits, lowest bit first.
func (bw *bitWriter) writeBits(bits uint64, count uint) {
	for count != 0 {
		n := count
		if n > 32 {
			n = 32
		}
		bw.bits |= (bits & lowMask64(n)) << bw.bitLen
		bw.bitLen += n
		bw.total += uint64(n)
		for bw.bitLen >= 8 {
			bw.out = append(bw.out, byte(bw.bits))
			bw.bits >>= 8
			bw.bitLen -= 8
		}
		bits >>= n
		count -= n
	}
}

func (bw *bitWriter) writeCode(hc Code) {
	remain := uint(hc.Size)
	for w := 0; remain != 0; w++ {
		n := remain
		if n > 64 {
			n = 64
		}
		bw.writeBits(hc.Bits[w], n)
		remain -= n
	}
}

// flush emits the final partial byte, if any.  The unused high bits are 0.
func (bw *bitWriter) flush() {
	if bw.bitLen == 0 {
		return
	}
	bw.out = append(bw.out, byte(bw.bits))
	bw.bits = 0
	bw.bitLen = 0
}
