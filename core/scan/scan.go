package scan

import (
	"fmt"

	"slotpatch/core/addrmap"
	"slotpatch/core/fileio"
)

// Record is one length-prefixed string recovered from a binary.
type Record struct {
	// Offset is the position of the first data byte, not of the length prefix.
	Offset int
	// Length is the value of the one byte length prefix (0..255).
	Length int
	// Bytes is the raw string content. It aliases the scanned buffer.
	Bytes []byte
}

// ScanError reports a record that cannot be read within its range or buffer.
type ScanError struct {
	// Range is the index of the address range being scanned.
	Range int
	// Offset is the cursor position where scanning failed.
	Offset int
	// Msg describes the failure.
	Msg string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan: range %d at offset %d: %s", e.Range, e.Offset, e.Msg)
}

// Scanner walks address ranges and recovers string records.
type Scanner struct {
	strict bool
}

// New creates a scanner with the given configuration.
func New(cfg Config) *Scanner {
	return &Scanner{strict: cfg.Strict}
}

// Scan recovers the records of every range in order.
// The returned order is the slot index used by reconciliation. On error the records read
// before the failing one are returned along with it.
func (s *Scanner) Scan(buf []byte, ranges []addrmap.Range) ([]Record, error) {
	var records []Record

	for ri, r := range ranges {
		if r.Start < 1 {
			return records, &ScanError{Range: ri, Offset: r.Start, Msg: "range starts before the first length prefix"}
		}

		cursor := r.Start
		lastEnd := r.Start
		for cursor < r.End {
			if cursor-1 >= len(buf) {
				return records, &ScanError{Range: ri, Offset: cursor, Msg: fmt.Sprintf("length prefix is past the end of the buffer (%d bytes)", len(buf))}
			}

			length := int(buf[cursor-1])
			end := cursor + length
			if end > len(buf) {
				return records, &ScanError{Range: ri, Offset: cursor, Msg: fmt.Sprintf("string data [%d,%d) is past the end of the buffer (%d bytes)", cursor, end, len(buf))}
			}
			if s.strict && end > r.End {
				return records, &ScanError{Range: ri, Offset: cursor, Msg: fmt.Sprintf("string data [%d,%d) overruns range end %d", cursor, end, r.End)}
			}

			records = append(records, Record{
				Offset: cursor,
				Length: length,
				Bytes:  buf[cursor:end:end],
			})
			lastEnd = end
			cursor = end + 1
		}

		if s.strict && r.Start < r.End && lastEnd != r.End && !emptyTail(buf, lastEnd, r.End) {
			return records, &ScanError{Range: ri, Offset: lastEnd, Msg: fmt.Sprintf("records end at %d but range ends at %d", lastEnd, r.End)}
		}
	}

	return records, nil
}

// emptyTail reports whether the single byte between lastEnd and end is the zero prefix of an
// empty record, which address maps commonly include in a range.
func emptyTail(buf []byte, lastEnd, end int) bool {
	return lastEnd+1 == end && lastEnd < len(buf) && buf[lastEnd] == 0
}

// ScanFile reads the binary at path and scans it.
// A missing file is reported with found == false and no error: the binary has not been
// generated yet and the caller continues with an empty record set. Like Scan, a scan error
// comes with the records read before it.
func (s *Scanner) ScanFile(path string, ranges []addrmap.Range) (records []Record, found bool, err error) {
	buf, found, err := fileio.ReadOptional(path)
	if err != nil || !found {
		return nil, found, err
	}

	records, err = s.Scan(buf, ranges)
	return records, true, err
}
