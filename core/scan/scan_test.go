package scan_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"slotpatch/core/addrmap"
	"slotpatch/core/scan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strictScanner() *scan.Scanner {
	return scan.New(scan.Config{Strict: true})
}

func TestScan_SingleRecord(t *testing.T) {
	buf := []byte{0xEE, 0xEE, 0xEE, 0xEE, 0x03, 'A', 'B', 'C', 0xEE}

	records, err := strictScanner().Scan(buf, []addrmap.Range{{Start: 5, End: 8}})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 5, records[0].Offset)
	assert.Equal(t, 3, records[0].Length)
	assert.Equal(t, []byte("ABC"), records[0].Bytes)
}

func TestScan_MultipleRangesKeepOrder(t *testing.T) {
	// range 0: "HI", "", "YOU" ; range 1: "Z"
	buf := []byte{
		0x00,
		0x02, 'H', 'I',
		0x00,
		0x03, 'Y', 'O', 'U',
		0xFF, 0xFF,
		0x01, 'Z',
	}
	ranges := []addrmap.Range{
		{Start: 2, End: 9},
		{Start: 12, End: 13},
	}

	records, err := strictScanner().Scan(buf, ranges)
	require.NoError(t, err)
	assert.Equal(t, []scan.Record{
		{Offset: 2, Length: 2, Bytes: []byte("HI")},
		{Offset: 5, Length: 0, Bytes: []byte{}},
		{Offset: 6, Length: 3, Bytes: []byte("YOU")},
		{Offset: 12, Length: 1, Bytes: []byte("Z")},
	}, records)
}

func TestScan_Deterministic(t *testing.T) {
	buf := []byte{0x00, 0x02, 'O', 'K', 0x01, '!'}
	ranges := []addrmap.Range{{Start: 2, End: 6}}
	s := strictScanner()

	first, err := s.Scan(buf, ranges)
	require.NoError(t, err)
	second, err := s.Scan(buf, ranges)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestScan_EmptyRange(t *testing.T) {
	records, err := strictScanner().Scan([]byte{0x00, 0x00}, []addrmap.Range{{Start: 1, End: 1}})
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestScan_Errors(t *testing.T) {
	tests := []struct {
		name   string
		buf    []byte
		rng    addrmap.Range
		strict bool
		msg    string
	}{
		{
			name: "StartAtZero",
			buf:  []byte{0x01, 'A'},
			rng:  addrmap.Range{Start: 0, End: 2},
			msg:  "before the first length prefix",
		},
		{
			name: "PrefixPastBuffer",
			buf:  []byte{0x01, 'A'},
			rng:  addrmap.Range{Start: 1, End: 10},
			msg:  "length prefix is past the end",
		},
		{
			name: "DataPastBuffer",
			buf:  []byte{0x05, 'A', 'B'},
			rng:  addrmap.Range{Start: 1, End: 6},
			msg:  "past the end of the buffer",
		},
		{
			name:   "OverrunStrict",
			buf:    []byte{0x03, 'A', 'B', 'C'},
			rng:    addrmap.Range{Start: 1, End: 3},
			strict: true,
			msg:    "overruns range end 3",
		},
		{
			name:   "UnderrunStrict",
			buf:    []byte{0x01, 'A', 0x05, 0x00},
			rng:    addrmap.Range{Start: 1, End: 3},
			strict: true,
			msg:    "records end at 2 but range ends at 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scan.New(scan.Config{Strict: tt.strict})
			_, err := s.Scan(tt.buf, []addrmap.Range{tt.rng})

			var se *scan.ScanError
			require.True(t, errors.As(err, &se), "want ScanError, got %v", err)
			assert.Equal(t, 0, se.Range)
			assert.Contains(t, se.Msg, tt.msg)
		})
	}
}

func TestScan_ErrorKeepsRecordsRead(t *testing.T) {
	buf := []byte{0x01, 'A', 0x02, 'B', 'C', 0x40}
	ranges := []addrmap.Range{{Start: 1, End: 5}, {Start: 6, End: 90}}

	records, err := strictScanner().Scan(buf, ranges)
	var se *scan.ScanError
	require.True(t, errors.As(err, &se), "want ScanError, got %v", err)
	assert.Equal(t, 1, se.Range)
	require.Len(t, records, 2)
	assert.Equal(t, []byte("A"), records[0].Bytes)
	assert.Equal(t, []byte("BC"), records[1].Bytes)
}

func TestScan_TrailingEmptyRecord(t *testing.T) {
	// the range ends on the data of an empty record after "AB"
	buf := []byte{0x02, 'A', 'B', 0x00}

	for _, strict := range []bool{true, false} {
		records, err := scan.New(scan.Config{Strict: strict}).Scan(buf, []addrmap.Range{{Start: 1, End: 4}})
		require.NoError(t, err, "strict=%v", strict)
		require.Len(t, records, 1)
		assert.Equal(t, scan.Record{Offset: 1, Length: 2, Bytes: []byte("AB")}, records[0])
	}

	// a non-zero byte before the range end is still misaligned
	_, err := strictScanner().Scan([]byte{0x02, 'A', 'B', 0x00, 0x07, 0x00}, []addrmap.Range{{Start: 1, End: 5}})
	var se *scan.ScanError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, se.Msg, "records end at 4 but range ends at 5")
}

func TestScan_PermissiveOverrun(t *testing.T) {
	buf := []byte{0x03, 'A', 'B', 'C'}

	records, err := scan.New(scan.Config{Strict: false}).Scan(buf, []addrmap.Range{{Start: 1, End: 3}})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []byte("ABC"), records[0].Bytes)
}

func TestScanFile(t *testing.T) {
	dir := t.TempDir()
	ranges := []addrmap.Range{{Start: 1, End: 3}}

	t.Run("Missing", func(t *testing.T) {
		records, found, err := strictScanner().ScanFile(filepath.Join(dir, "HW_EN.EXE"), ranges)
		assert.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, records)
	})

	t.Run("Present", func(t *testing.T) {
		path := filepath.Join(dir, "HW.EXE")
		require.NoError(t, os.WriteFile(path, []byte{0x02, 'O', 'K'}, 0o644))

		records, found, err := strictScanner().ScanFile(path, ranges)
		require.NoError(t, err)
		assert.True(t, found)
		require.Len(t, records, 1)
		assert.Equal(t, []byte("OK"), records[0].Bytes)
	})
}
