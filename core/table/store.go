package table

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"slotpatch/core/fileio"
)

// Header is the first line of a table block.
type Header struct {
	// Offset is the slot offset where the original string was first seen.
	Offset int
	// Length is the slot length.
	Length int
	// Original is the escaped original text.
	Original string
}

// Parse reads a translation table.
//
// Blocks are separated by a blank line. A one-line block is an untranslated header; a
// two-line block is a header followed by the translation. Only translated blocks become
// table entries.
func Parse(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read translation table: %w", err)
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	t := New()

	line := 1
	for _, block := range strings.Split(text, "\n\n") {
		start := line
		line += strings.Count(block, "\n") + 2

		trimmed := strings.TrimLeft(block, "\n")
		start += len(block) - len(trimmed)
		trimmed = strings.TrimRight(trimmed, "\n")
		if trimmed == "" {
			continue
		}

		lines := strings.Split(trimmed, "\n")
		if len(lines) > 2 {
			return nil, &FormatError{Line: start, Msg: fmt.Sprintf("block has %d lines, want 1 or 2", len(lines))}
		}

		header, err := ParseHeader(lines[0])
		if err != nil {
			return nil, withLine(err, start)
		}
		if len(lines) == 1 || lines[1] == "" {
			continue
		}

		key, err := Unescape(header.Original)
		if err != nil {
			return nil, withLine(err, start)
		}
		value, err := Unescape(lines[1])
		if err != nil {
			return nil, withLine(err, start+1)
		}
		t.Set(string(key), string(value))
	}

	return t, nil
}

// ParseHeader parses a "<offset>\t<length>\t<original>" block header.
func ParseHeader(line string) (Header, error) {
	fields := strings.SplitN(line, "\t", 3)
	if len(fields) != 3 {
		return Header{}, &FormatError{Msg: fmt.Sprintf("header has %d tab-separated fields, want 3", len(fields))}
	}

	offset, err := strconv.Atoi(fields[0])
	if err != nil {
		return Header{}, &FormatError{Msg: fmt.Sprintf("offset %q is not an integer", fields[0])}
	}
	length, err := strconv.Atoi(fields[1])
	if err != nil {
		return Header{}, &FormatError{Msg: fmt.Sprintf("length %q is not an integer", fields[1])}
	}

	return Header{Offset: offset, Length: length, Original: fields[2]}, nil
}

// Load reads the table file at path.
// A missing file yields an empty table with found == false.
func Load(path string) (t *Table, found bool, err error) {
	data, found, err := fileio.ReadOptional(path)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return New(), false, nil
	}

	t, err = Parse(bytes.NewReader(data))
	if err != nil {
		return nil, true, err
	}
	return t, true, nil
}

// withLine attaches a line number to a FormatError that has none.
func withLine(err error, line int) error {
	var fe *FormatError
	if errors.As(err, &fe) && fe.Line == 0 {
		return &FormatError{Line: line, Msg: fe.Msg}
	}
	return err
}
