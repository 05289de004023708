package bytehuff

import (
	"fmt"
)

// EmptyInputError is returned when a Huffman tree is requested for a table
// with no symbols in it, i.e. when the input was empty.
type EmptyInputError struct{}

func (err *EmptyInputError) Error() string {
	return "bytehuff: cannot build a Huffman tree from empty input"
}

// MissingCodeError is returned by EncodeBits when the input contains a byte
// that the CodeTable has no code for.  This means the CodeTable was not built
// from this input's frequencies; it is a programming error, not a data error.
type MissingCodeError struct {
	Symbol Symbol
	Offset int
}

func (err *MissingCodeError) Error() string {
	return fmt.Sprintf("bytehuff: no code for symbol 0x%02x at input offset %d", byte(err.Symbol), err.Offset)
}

// MalformedHeaderError is returned when a serialized Container carries a
// header that cannot describe any valid encoding.
type MalformedHeaderError struct {
	Field  string
	Reason string
}

func (err *MalformedHeaderError) Error() string {
	return fmt.Sprintf("bytehuff: malformed header: %s: %s", err.Field, err.Reason)
}

// TruncatedStreamError is returned when a serialized Container, or the bits
// fed to a Decoder, end before the amount of data that the header declares.
// Want and Got are measured in bytes for container fields and in bits for
// the "payload bits" field.
type TruncatedStreamError struct {
	Field string
	Want  uint64
	Got   uint64
}

func (err *TruncatedStreamError) Error() string {
	return fmt.Sprintf("bytehuff: truncated stream: %s: want %d, got %d", err.Field, err.Want, err.Got)
}

var (
	_ error = (*EmptyInputError)(nil)
	_ error = (*MissingCodeError)(nil)
	_ error = (*MalformedHeaderError)(nil)
	_ error = (*TruncatedStreamError)(nil)
)
