package bytehuff

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

const (
	countFieldSize  = 8
	entrySize       = 1 + 8
	lengthFieldSize = 8
)

// Container is the serialized form of an encoded input: the frequency table
// needed to rebuild the Huffman tree, and the packed payload bits.
type Container struct {
	// Frequencies holds the count of every symbol in the original input.
	Frequencies FrequencyTable

	// BitLength holds the number of meaningful bits in Payload.
	BitLength uint64

	// Payload holds ceil(BitLength/8) bytes of packed bits, least
	// significant bit first.
	Payload []byte
}

// HeaderSize returns the number of bytes WriteTo will write before Payload.
func (c *Container) HeaderSize() int {
	return countFieldSize + entrySize*c.Frequencies.Len() + lengthFieldSize
}

// Validate checks that c can be serialized and later decoded.
func (c *Container) Validate() error {
	if c.Frequencies.Len() == 0 {
		return &MalformedHeaderError{Field: "entry_count", Reason: "no entries"}
	}
	return c.checkPayload()
}

// checkPayload checks that Payload holds exactly ceil(BitLength/8) bytes.
func (c *Container) checkPayload() error {
	want := payloadBytes(c.BitLength)
	have := uint64(len(c.Payload))
	if have < want {
		return &TruncatedStreamError{Field: "payload", Want: want, Got: have}
	}
	if have > want {
		return &MalformedHeaderError{Field: "bit_length", Reason: fmt.Sprintf("%d trailing bytes after payload", have-want)}
	}
	return nil
}

// WriteTo writes the serialized container to w.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}

	header := make([]byte, 0, c.HeaderSize())
	header = binary.LittleEndian.AppendUint64(header, uint64(c.Frequencies.Len()))
	for _, entry := range c.Frequencies.Entries() {
		header = append(header, byte(entry.Symbol))
		header = binary.LittleEndian.AppendUint64(header, entry.Count)
	}
	header = binary.LittleEndian.AppendUint64(header, c.BitLength)

	var n int64
	nn, err := w.Write(header)
	n += int64(nn)
	if err != nil {
		return n, err
	}
	nn, err = w.Write(c.Payload)
	n += int64(nn)
	return n, err
}

// ReadFrom replaces the contents of c with a container read from r.  It reads
// exactly the bytes of one container and no more.
func (c *Container) ReadFrom(r io.Reader) (int64, error) {
	ft, bitLength, n, err := readHeader(r)
	if err != nil {
		return n, err
	}

	want := payloadBytes(bitLength)
	if want > math.MaxInt64 {
		return n, &MalformedHeaderError{Field: "bit_length", Reason: fmt.Sprintf("%d bits is too large", bitLength)}
	}

	// Copy rather than allocate up front, since bit_length is untrusted.
	var buf bytes.Buffer
	got, err := io.CopyN(&buf, r, int64(want))
	n += got
	if err != nil {
		if errors.Is(err, io.EOF) {
			return n, &TruncatedStreamError{Field: "payload", Want: want, Got: uint64(got)}
		}
		return n, fmt.Errorf("bytehuff: reading payload: %w", err)
	}

	*c = Container{
		Frequencies: ft,
		BitLength:   bitLength,
		Payload:     buf.Bytes(),
	}
	return n, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (c *Container) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(c.HeaderSize() + len(c.Payload))
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.  Unlike ReadFrom,
// it knows the full length of the input, so it also rejects data with
// trailing bytes after the payload.
func (c *Container) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	ft, bitLength, _, err := readHeader(r)
	if err != nil {
		return err
	}

	want := payloadBytes(bitLength)
	have := uint64(r.Len())
	if have < want {
		return &TruncatedStreamError{Field: "payload", Want: want, Got: have}
	}
	if have > want {
		return &MalformedHeaderError{Field: "bit_length", Reason: fmt.Sprintf("%d trailing bytes after payload", have-want)}
	}

	offset := len(data) - r.Len()
	payload := make([]byte, want)
	copy(payload, data[offset:])

	*c = Container{
		Frequencies: ft,
		BitLength:   bitLength,
		Payload:     payload,
	}
	return nil
}

// ReadHeader reads the frequency table and bit length of a container from r,
// leaving r positioned at the first payload byte.
func ReadHeader(r io.Reader) (FrequencyTable, uint64, error) {
	ft, bitLength, _, err := readHeader(r)
	return ft, bitLength, err
}

// readHeader parses everything before the payload.  A header that ends early
// is *TruncatedStreamError no matter how the caller obtained r.
func readHeader(r io.Reader) (ft FrequencyTable, bitLength uint64, n int64, err error) {
	var buf [entrySize]byte

	readField := func(field string, p []byte) error {
		nn, err := io.ReadFull(r, p)
		n += int64(nn)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return &TruncatedStreamError{Field: field, Want: uint64(len(p)), Got: uint64(nn)}
		}
		if err != nil {
			return fmt.Errorf("bytehuff: reading %s: %w", field, err)
		}
		return nil
	}

	if err = readField("entry_count", buf[:countFieldSize]); err != nil {
		return
	}
	count := binary.LittleEndian.Uint64(buf[:countFieldSize])
	switch {
	case count == 0:
		err = &MalformedHeaderError{Field: "entry_count", Reason: "no entries"}
		return
	case count > NumSymbols:
		err = &MalformedHeaderError{Field: "entry_count", Reason: fmt.Sprintf("%d entries, but only %d symbols exist", count, NumSymbols)}
		return
	}

	prev := -1
	for i := uint64(0); i < count; i++ {
		field := fmt.Sprintf("entries[%d]", i)
		if err = readField(field, buf[:entrySize]); err != nil {
			return
		}

		symbol := int(buf[0])
		freq := binary.LittleEndian.Uint64(buf[1:entrySize])
		if symbol <= prev {
			err = &MalformedHeaderError{Field: field, Reason: fmt.Sprintf("symbol 0x%02x is out of order after 0x%02x", symbol, prev)}
			return
		}
		if freq == 0 {
			err = &MalformedHeaderError{Field: field, Reason: fmt.Sprintf("symbol 0x%02x has frequency 0", symbol)}
			return
		}
		ft.Set(Symbol(symbol), freq)
		prev = symbol
	}

	if err = readField("bit_length", buf[:lengthFieldSize]); err != nil {
		return
	}
	bitLength = binary.LittleEndian.Uint64(buf[:lengthFieldSize])
	return
}

var (
	_ io.WriterTo                = (*Container)(nil)
	_ io.ReaderFrom              = (*Container)(nil)
	_ encoding.BinaryMarshaler   = (*Container)(nil)
	_ encoding.BinaryUnmarshaler = (*Container)(nil)
)
