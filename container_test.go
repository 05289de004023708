package bytehuff

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

const abracadabraContainer = "0500000000000000" +
	"610500000000000000" +
	"620200000000000000" +
	"630100000000000000" +
	"640100000000000000" +
	"720200000000000000" +
	"1700000000000000" +
	"76513b"

func mustHex(t *testing.T, str string) []byte {
	t.Helper()
	raw, err := hex.DecodeString(str)
	require.NoError(t, err)
	return raw
}

func TestContainer_MarshalBinary(t *testing.T) {
	c := Container{
		Frequencies: CountFrequencies([]byte("abracadabra")),
		BitLength:   23,
		Payload:     abracadabraPayload,
	}
	require.Equal(t, 61, c.HeaderSize())

	raw, err := c.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, abracadabraContainer, hex.EncodeToString(raw))

	var back Container
	require.NoError(t, back.UnmarshalBinary(raw))
	require.Equal(t, c, back)
}

func TestContainer_MarshalBinaryInvalid(t *testing.T) {
	c := Container{BitLength: 0}
	_, err := c.MarshalBinary()
	var target *MalformedHeaderError
	require.ErrorAs(t, err, &target)

	c = Container{
		Frequencies: CountFrequencies([]byte("ab")),
		BitLength:   9,
		Payload:     []byte{0x00},
	}
	_, err = c.MarshalBinary()
	var short *TruncatedStreamError
	require.ErrorAs(t, err, &short)
	require.Equal(t, "payload", short.Field)

	c.Payload = []byte{0x00, 0x00, 0x00}
	_, err = c.MarshalBinary()
	require.ErrorAs(t, err, &target)
	require.Equal(t, "bit_length", target.Field)
}

func TestContainer_ReadFrom(t *testing.T) {
	raw := mustHex(t, abracadabraContainer)
	r := bytes.NewReader(append(raw, "trailer"...))

	var c Container
	n, err := c.ReadFrom(r)
	require.NoError(t, err)
	require.Equal(t, int64(len(raw)), n)
	require.Equal(t, uint64(23), c.BitLength)
	require.Equal(t, abracadabraPayload, c.Payload)
	require.Equal(t, CountFrequencies([]byte("abracadabra")), c.Frequencies)
	require.Equal(t, len("trailer"), r.Len())

	var buf bytes.Buffer
	n, err = c.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(len(raw)), n)
	require.Equal(t, raw, buf.Bytes())
}

func TestContainer_Truncated(t *testing.T) {
	raw := mustHex(t, abracadabraContainer)

	type testRow struct {
		name  string
		size  int
		field string
	}

	testData := [...]testRow{
		{name: "empty", size: 0, field: "entry_count"},
		{name: "mid-count", size: 5, field: "entry_count"},
		{name: "mid-entry", size: 12, field: "entries[0]"},
		{name: "mid-bit-length", size: 57, field: "bit_length"},
		{name: "late-bit-length", size: 60, field: "bit_length"},
		{name: "no-payload", size: 61, field: "payload"},
		{name: "short-payload", size: 63, field: "payload"},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			var c Container
			_, err := c.ReadFrom(bytes.NewReader(raw[:row.size]))
			var target *TruncatedStreamError
			require.ErrorAs(t, err, &target)
			require.Equal(t, row.field, target.Field)
		})
	}

	// UnmarshalBinary must report the same errors as ReadFrom.
	for _, row := range testData {
		t.Run("unmarshal-"+row.name, func(t *testing.T) {
			var c Container
			err := c.UnmarshalBinary(raw[:row.size])
			var target *TruncatedStreamError
			require.ErrorAs(t, err, &target)
			require.Equal(t, row.field, target.Field)
		})
	}

	var c Container
	err := c.UnmarshalBinary(raw[:len(raw)-1])
	var target *TruncatedStreamError
	require.ErrorAs(t, err, &target)
	require.Equal(t, "payload", target.Field)
	require.Equal(t, uint64(3), target.Want)
	require.Equal(t, uint64(2), target.Got)
}

func TestContainer_Malformed(t *testing.T) {
	header := func(count uint64, entries ...byte) []byte {
		out := binary.LittleEndian.AppendUint64(nil, count)
		return append(out, entries...)
	}
	entry := func(symbol byte, freq uint64) []byte {
		return binary.LittleEndian.AppendUint64([]byte{symbol}, freq)
	}
	concat := func(parts ...[]byte) []byte {
		return bytes.Join(parts, nil)
	}
	bitLength := func(n uint64) []byte {
		return binary.LittleEndian.AppendUint64(nil, n)
	}

	type testRow struct {
		name  string
		data  []byte
		field string
	}

	testData := [...]testRow{
		{name: "zero-entries", data: concat(header(0), bitLength(0)), field: "entry_count"},
		{name: "too-many-entries", data: concat(header(257), make([]byte, 257*9+8)), field: "entry_count"},
		{name: "zero-frequency", data: concat(header(2), entry('a', 1), entry('b', 0), bitLength(1), []byte{0}), field: "entries[1]"},
		{name: "duplicate-symbol", data: concat(header(2), entry('a', 1), entry('a', 1), bitLength(2), []byte{0}), field: "entries[1]"},
		{name: "out-of-order", data: concat(header(2), entry('b', 1), entry('a', 1), bitLength(2), []byte{0}), field: "entries[1]"},
		{name: "trailing-bytes", data: concat(header(1), entry('a', 1), bitLength(1), []byte{0, 0}), field: "bit_length"},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			var c Container
			err := c.UnmarshalBinary(row.data)
			var target *MalformedHeaderError
			require.ErrorAs(t, err, &target)
			require.Equal(t, row.field, target.Field)
		})
	}
}

func TestContainer_CountExceedsData(t *testing.T) {
	data := binary.LittleEndian.AppendUint64(nil, 3)
	data = append(data, 'a')
	data = binary.LittleEndian.AppendUint64(data, 1)
	data = append(data, 'b')
	data = binary.LittleEndian.AppendUint64(data, 1)
	data = append(data, 'c', 1, 0, 0)

	var c Container
	err := c.UnmarshalBinary(data)
	var target *TruncatedStreamError
	require.ErrorAs(t, err, &target)
	require.Equal(t, "entries[2]", target.Field)
	require.Equal(t, uint64(entrySize), target.Want)
	require.Equal(t, uint64(4), target.Got)
}

func TestReadHeader(t *testing.T) {
	raw := mustHex(t, abracadabraContainer)
	r := bytes.NewReader(raw)

	ft, bitLength, err := ReadHeader(r)
	require.NoError(t, err)
	require.Equal(t, 5, ft.Len())
	require.Equal(t, uint64(23), bitLength)
	require.Equal(t, len(abracadabraPayload), r.Len())
}
