package addrmap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Range delimits a block of string records inside a binary.
type Range struct {
	// Start is the offset of the first string's data. Its length prefix sits at Start-1.
	Start int
	// End is the offset one past the last string's data.
	End int
}

// FormatError reports a malformed line in an address range list.
type FormatError struct {
	// Line is the 1-based line number.
	Line int
	// Text is the offending line as read.
	Text string
	// Msg describes what is wrong with it.
	Msg string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("address ranges: line %d %q: %s", e.Line, e.Text, e.Msg)
}

// Parse reads one "<start>-<end>" pair per line and returns the ranges in file order.
// Blank lines are ignored.
func Parse(r io.Reader) ([]Range, error) {
	var ranges []Range

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Split(line, "-")
		if len(parts) != 2 {
			return nil, &FormatError{Line: lineNo, Text: line, Msg: fmt.Sprintf("expected 2 values separated by '-', got %d", len(parts))}
		}

		start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, &FormatError{Line: lineNo, Text: line, Msg: "start is not an integer"}
		}
		end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, &FormatError{Line: lineNo, Text: line, Msg: "end is not an integer"}
		}
		if start > end {
			return nil, &FormatError{Line: lineNo, Text: line, Msg: "start is greater than end"}
		}

		ranges = append(ranges, Range{Start: start, End: end})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read address ranges: %w", err)
	}

	return ranges, nil
}

// Load parses the address range file at path.
func Load(path string) ([]Range, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}
