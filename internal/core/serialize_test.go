package core

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTable_RoundTrip(t *testing.T) {
	table := mkTable(t, []string{"A", "B", "C"},
		[]string{"plain", "has;delimiter", "has\nnewline"},
		[]string{`has "quotes"`, "", "última"},
	)

	out, err := WriteTable(table, ';', EncodingUTF8)
	require.NoError(t, err)

	back, enc, err := ReadTable(out, ';', []string{EncodingUTF8})
	require.NoError(t, err)
	assert.Equal(t, EncodingUTF8, enc)
	assert.Equal(t, table.Columns(), back.Columns())
	require.Equal(t, table.RowCount(), back.RowCount())
	for i := 0; i < table.RowCount(); i++ {
		assert.Equal(t, table.Row(i), back.Row(i))
	}
}

func TestWriteTable_UTF8SIGStartsWithBOM(t *testing.T) {
	table := mkTable(t, []string{"A"}, []string{"1"})
	out, err := WriteTable(table, ';', EncodingUTF8SIG)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))
}

func TestWriteTable_AutoResolvesToDefault(t *testing.T) {
	table := mkTable(t, []string{"A"}, []string{"1"})

	auto, err := WriteTable(table, ';', "auto")
	require.NoError(t, err)
	explicit, err := WriteTable(table, ';', DefaultEncoding)
	require.NoError(t, err)
	assert.Equal(t, explicit, auto)

	empty, err := WriteTable(table, ';', "")
	require.NoError(t, err)
	assert.Equal(t, explicit, empty)
}

func TestWriteTable_CP1252(t *testing.T) {
	table := mkTable(t, []string{"Stadt"}, []string{"Köln"})
	out, err := WriteTable(table, ';', EncodingCP1252)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Stadt")
	assert.True(t, bytes.IndexByte(out, 0xF6) >= 0, "expected ö as single cp1252 byte 0xF6")
}

func TestWriteTable_QuotesOnlyAsNeeded(t *testing.T) {
	table := mkTable(t, []string{"A", "B"}, []string{"plain", "with,comma"})
	out, err := WriteTable(table, ',', EncodingUTF8)
	require.NoError(t, err)
	assert.Equal(t, "A,B\nplain,\"with,comma\"\n", string(out))
}

func TestWriteTable_RoundTripWithBOMEncoding(t *testing.T) {
	table := mkTable(t, []string{"A", "B"}, []string{"1", "2"})
	out, err := WriteTable(table, ',', EncodingUTF8SIG)
	require.NoError(t, err)

	back, enc, err := ReadTable(out, ',', EncodingCandidates(AutoEncoding()))
	require.NoError(t, err)
	assert.Equal(t, EncodingUTF8SIG, enc)
	assert.Equal(t, []string{"A", "B"}, back.Columns())
	assert.Equal(t, []string{"1", "2"}, back.Row(0))
}
