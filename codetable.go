package bytehuff

import (
	"bytes"
	"fmt"
	"io"
	"math"
	mathbits "math/bits"
)

// CodeTable maps each Symbol of a Tree to its Code.
type CodeTable struct {
	codes   [NumSymbols]Code
	present [NumSymbols]bool
	length  int
	minSize byte
	maxSize byte
}

// NewCodeTable derives the code for every leaf of t from its path: 0 for
// each step to a left child, 1 for each step to a right child.
//
// If t is a single leaf, its symbol receives the empty code.  EncodeBits
// still writes one bit per occurrence of such a symbol, so that the decoder
// can count them.
//
func NewCodeTable(t *Tree) *CodeTable {
	ct := &CodeTable{}
	t.walk(func(id NodeID, path Code) {
		n := t.nodes[id]
		if !n.isLeaf() {
			return
		}

		ct.codes[n.symbol] = path
		ct.present[n.symbol] = true
		if ct.length == 0 {
			ct.minSize = path.Size
			ct.maxSize = path.Size
		} else if ct.minSize > path.Size {
			ct.minSize = path.Size
		} else if ct.maxSize < path.Size {
			ct.maxSize = path.Size
		}
		ct.length++
	})
	return ct
}

// Lookup returns the code for symbol, and whether symbol has one.
func (ct *CodeTable) Lookup(symbol Symbol) (Code, bool) {
	return ct.codes[symbol], ct.present[symbol]
}

// Len returns the number of symbols with a code.
func (ct *CodeTable) Len() int {
	return ct.length
}

// MinSize is the bit length of the shortest code.
func (ct *CodeTable) MinSize() byte {
	return ct.minSize
}

// MaxSize is the bit length of the longest code.
func (ct *CodeTable) MaxSize() byte {
	return ct.maxSize
}

// Symbols returns the symbols with a code, in ascending order.
func (ct *CodeTable) Symbols() []Symbol {
	out := make([]Symbol, 0, ct.length)
	for symbol := 0; symbol < NumSymbols; symbol++ {
		if ct.present[symbol] {
			out = append(out, Symbol(symbol))
		}
	}
	return out
}

// PayloadBits returns the exact number of bits EncodeBits will produce for
// any input whose frequencies are ft, or *MissingCodeError if ft contains a
// symbol with no code.  The result saturates at math.MaxUint64.
func (ct *CodeTable) PayloadBits(ft FrequencyTable) (uint64, error) {
	var total uint64
	for _, entry := range ft.Entries() {
		if !ct.present[entry.Symbol] {
			return 0, &MissingCodeError{Symbol: entry.Symbol, Offset: -1}
		}

		size := uint64(emittedSize(ct.codes[entry.Symbol]))
		hi, lo := mathbits.Mul64(entry.Count, size)
		if hi != 0 {
			return math.MaxUint64, nil
		}
		total = satAdd64(total, lo)
	}
	return total, nil
}

// Dump writes a programmer-readable debugging dump of the table to the given
// writer.
func (ct *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", ct.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", ct.maxSize)
	for _, symbol := range ct.Symbols() {
		fmt.Fprintf(&buf, "\tLookup(0x%02x) = %s\n", byte(symbol), ct.codes[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// emittedSize is the number of payload bits written for one occurrence of a
// symbol with code hc.
func emittedSize(hc Code) byte {
	if hc.Size == 0 {
		return 1
	}
	return hc.Size
}
