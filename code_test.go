package bytehuff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCode(t *testing.T) {
	type testRow struct {
		str    string
		size   byte
		bits   uint64
		quoted string
	}

	testData := [...]testRow{
		{str: "", size: 0, bits: 0x0, quoted: `""`},
		{str: "0", size: 1, bits: 0x0, quoted: `"0"`},
		{str: "1", size: 1, bits: 0x1, quoted: `"1"`},
		{str: "110", size: 3, bits: 0x3, quoted: `"110"`},
		{str: "0111", size: 4, bits: 0xe, quoted: `"0111"`},
	}
	for _, row := range testData {
		t.Run(row.quoted, func(t *testing.T) {
			hc, err := ParseCode(row.str)
			require.NoError(t, err)
			require.Equal(t, MakeCode(row.size, row.bits), hc)
			require.Equal(t, row.quoted, hc.String())
		})
	}
}

func TestCode_Long(t *testing.T) {
	str := ""
	for i := 0; i < MaxCodeSize; i++ {
		if i%3 == 0 {
			str += "1"
		} else {
			str += "0"
		}
	}

	hc, err := ParseCode(str)
	require.NoError(t, err)
	require.Equal(t, byte(MaxCodeSize), hc.Size)
	require.Equal(t, `"`+str+`"`, hc.String())
	require.Equal(t, uint(1), hc.Bit(129))
	require.Equal(t, uint(0), hc.Bit(130))
	require.Panics(t, func() { hc.Append(0) })

	_, err = ParseCode(str + "0")
	require.Error(t, err)
	_, err = ParseCode("012")
	require.Error(t, err)
}

func TestCode_HasPrefix(t *testing.T) {
	long, _ := ParseCode("1011001110001111000011111000001111110000001111111000000011111111")
	long = long.Append(1).Append(0)
	prefix, _ := ParseCode("10110011100011110000111110000011111100000011111110000000111111111")
	other, _ := ParseCode("10110011100011110000111110000011111100000011111110000000111111110")

	require.True(t, long.HasPrefix(Code{}))
	require.True(t, long.HasPrefix(long))
	require.True(t, long.HasPrefix(prefix))
	require.False(t, long.HasPrefix(other))
	require.False(t, prefix.HasPrefix(long))
}
