package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsXLSX(t *testing.T) {
	t.Parallel()

	require.True(t, IsXLSX([]byte("PK\x03\x04rest")))
	require.False(t, IsXLSX([]byte("Date,Name")))
	require.False(t, IsXLSX(nil))
	require.False(t, IsXLSX([]byte("P")))
}

func TestXLSXRoundTrip(t *testing.T) {
	t.Parallel()

	data, err := RenderXLSX(sampleEntries(), testNow)
	require.NoError(t, err)
	require.True(t, IsXLSX(data))

	// importing the workbook must agree with importing the same grid as
	// CSV text
	fromXLSX, err := ParseXLSX(data)
	require.NoError(t, err)

	csvText, err := RenderCSV(sampleEntries(), testNow)
	require.NoError(t, err)
	fromCSV, err := Parse(string(csvText))
	require.NoError(t, err)

	require.Equal(t, fromCSV.ValidRows, fromXLSX.ValidRows)
	require.Len(t, fromXLSX.ValidRows, 2)
	require.Equal(t, "Jane", fromXLSX.ValidRows[0].CustomerName)
	require.Empty(t, fromXLSX.Errors)
}

func TestParseXLSXGarbage(t *testing.T) {
	t.Parallel()

	_, err := ParseXLSX([]byte("PK\x03\x04 but not really a zip"))
	require.Error(t, err)
}
