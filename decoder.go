package bytehuff

import (
	"fmt"
	"math"

	"github.com/chronos-tachyon/assert"
)

// Decoder turns packed payload bits back into symbols by walking a Tree.
//
// The payload may be supplied in chunks of any size, including one byte at a
// time; the Decoder remembers its position in the tree between calls to
// Decode.  Exactly bitLength bits are consumed in total, least significant
// bit first within each byte, and any padding bits after them are ignored.
//
type Decoder struct {
	tree      *Tree
	cursor    NodeID
	bitLength uint64
	remaining uint64
	decoded   uint64
	expected  uint64
}

// NewDecoder is a convenience function that allocates and initializes a
// Decoder.
func NewDecoder(t *Tree, bitLength uint64) *Decoder {
	d := &Decoder{}
	d.Init(t, bitLength)
	return d
}

// Init initializes this Decoder to decode bitLength bits using tree t.  The
// number of symbols to expect is the weight of the root, i.e. the total of
// the frequencies t was built from.
func (d *Decoder) Init(t *Tree, bitLength uint64) {
	assert.Assertf(t != nil, "Decoder.Init called with nil Tree")
	*d = Decoder{
		tree:      t,
		cursor:    t.root,
		bitLength: bitLength,
		remaining: bitLength,
		expected:  t.nodes[t.root].weight,
	}
}

// Decode consumes bits from chunk and appends every completed symbol to dst.
// It returns the extended dst and the number of bytes of chunk consumed,
// which is less than len(chunk) only once all bitLength bits are consumed.
//
// Decode returns *MalformedHeaderError, without appending the offending
// symbol, if the payload decodes to more symbols than the frequencies allow.
//
func (d *Decoder) Decode(dst []byte, chunk []byte) ([]byte, int, error) {
	assert.Assertf(d.tree != nil, "Decoder used before Init")

	nodes := d.tree.nodes
	root := d.tree.root
	consumed := 0

	if nodes[root].isLeaf() {
		// Single-leaf tree: every bit, whatever its value, is one symbol.
		n := uint64(len(chunk)) * 8
		if n > d.remaining {
			n = d.remaining
		}
		if d.decoded+n > d.expected {
			return dst, 0, d.tooManySymbols(d.decoded + n)
		}
		symbol := byte(nodes[root].symbol)
		for i := uint64(0); i < n; i++ {
			dst = append(dst, symbol)
		}
		d.remaining -= n
		d.decoded += n
		return dst, int(payloadBytes(n)), nil
	}

	cursor := d.cursor
	for consumed < len(chunk) && d.remaining != 0 {
		b := chunk[consumed]
		nbits := uint64(8)
		if nbits > d.remaining {
			nbits = d.remaining
		}

		for i := uint64(0); i < nbits; i++ {
			n := nodes[cursor]
			if b&1 == 0 {
				cursor = n.left
			} else {
				cursor = n.right
			}
			b >>= 1

			if leaf := nodes[cursor]; leaf.isLeaf() {
				if d.decoded >= d.expected {
					d.cursor = root
					return dst, consumed, d.tooManySymbols(d.decoded + 1)
				}
				dst = append(dst, byte(leaf.symbol))
				d.decoded++
				cursor = root
			}
		}

		consumed++
		d.remaining -= nbits
	}
	d.cursor = cursor
	return dst, consumed, nil
}

// Remaining returns the number of payload bits not yet consumed.
func (d *Decoder) Remaining() uint64 {
	return d.remaining
}

// Decoded returns the number of symbols emitted so far.
func (d *Decoder) Decoded() uint64 {
	return d.decoded
}

// Done returns true once all bitLength bits have been consumed.
func (d *Decoder) Done() bool {
	return d.remaining == 0
}

// Finish checks that the payload ended cleanly: every bit was consumed, the
// last bit completed a symbol, and the number of symbols matches the
// frequencies.
//
// Returns *TruncatedStreamError if bits are missing or the walk stopped
// partway through a code, and *MalformedHeaderError if the bit length and the
// frequencies disagree about the number of symbols.
//
func (d *Decoder) Finish() error {
	assert.Assertf(d.tree != nil, "Decoder used before Init")

	if d.remaining != 0 {
		return &TruncatedStreamError{
			Field: "payload bits",
			Want:  d.bitLength,
			Got:   d.bitLength - d.remaining,
		}
	}
	if d.cursor != d.tree.root {
		return &TruncatedStreamError{
			Field: "payload bits (final code incomplete)",
			Want:  d.bitLength + 1,
			Got:   d.bitLength,
		}
	}
	if d.expected != math.MaxUint64 && d.decoded != d.expected {
		return &MalformedHeaderError{
			Field:  "bit_length",
			Reason: fmt.Sprintf("payload decodes to %d symbols, frequencies total %d", d.decoded, d.expected),
		}
	}
	return nil
}

func (d *Decoder) tooManySymbols(got uint64) error {
	return &MalformedHeaderError{
		Field:  "bit_length",
		Reason: fmt.Sprintf("payload decodes to at least %d symbols, frequencies total %d", got, d.expected),
	}
}
