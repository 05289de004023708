package bytehuff

import (
	"bytes"
	"fmt"
	"io"
	"math"
)

// Frequency is one entry of a FrequencyTable.
type Frequency struct {
	Symbol Symbol
	Count  uint64
}

// FrequencyTable counts how many times each Symbol occurs.  Symbols with a
// count of 0 are considered absent.  The zero value is an empty table.
type FrequencyTable struct {
	counts [NumSymbols]uint64
	length int
}

// CountFrequencies scans data and returns the resulting FrequencyTable.
// Empty input yields an empty table.
func CountFrequencies(data []byte) FrequencyTable {
	var ft FrequencyTable
	ft.Add(data)
	return ft
}

// Add counts the bytes of data on top of any counts already present.  This
// allows input delivered in chunks to be scanned one chunk at a time.
func (ft *FrequencyTable) Add(data []byte) {
	for _, ch := range data {
		count := ft.counts[ch]
		switch count {
		case 0:
			ft.length++
		case math.MaxUint64:
			continue
		}
		ft.counts[ch] = count + 1
	}
}

// Set overwrites the count for symbol.  A count of 0 removes the symbol.
func (ft *FrequencyTable) Set(symbol Symbol, count uint64) {
	old := ft.counts[symbol]
	if old == 0 && count != 0 {
		ft.length++
	} else if old != 0 && count == 0 {
		ft.length--
	}
	ft.counts[symbol] = count
}

// Count returns the count for symbol, and whether the symbol is present.
func (ft FrequencyTable) Count(symbol Symbol) (uint64, bool) {
	count := ft.counts[symbol]
	return count, count != 0
}

// Len returns the number of distinct symbols present.
func (ft FrequencyTable) Len() int {
	return ft.length
}

// Total returns the sum of all counts, saturating at math.MaxUint64.
func (ft FrequencyTable) Total() uint64 {
	var total uint64
	for _, count := range ft.counts {
		total = satAdd64(total, count)
	}
	return total
}

// Entries returns the present symbols and their counts, sorted by symbol.
func (ft FrequencyTable) Entries() []Frequency {
	out := make([]Frequency, 0, ft.length)
	for symbol := 0; symbol < NumSymbols; symbol++ {
		if count := ft.counts[symbol]; count != 0 {
			out = append(out, Frequency{Symbol(symbol), count})
		}
	}
	return out
}

// Dump writes a programmer-readable debugging dump of the table to the given
// writer.
func (ft FrequencyTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("FrequencyTable{\n")
	fmt.Fprintf(&buf, "\tLen() = %d\n", ft.length)
	for _, entry := range ft.Entries() {
		fmt.Fprintf(&buf, "\tCount(0x%02x) = %d\n", byte(entry.Symbol), entry.Count)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
