package table

import (
	"fmt"
	"strconv"
	"strings"
)

// Escape renders raw string bytes as one line of table text.
//
// Printable ASCII is kept literally. Backslash, quotes, tab, newline and carriage return get
// their usual backslash escapes; any other byte below 0x20 or at/above 0x7f becomes \xhh.
func Escape(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))

	for _, c := range b {
		switch {
		case c == '\\':
			sb.WriteString(`\\`)
		case c == '\'':
			sb.WriteString(`\'`)
		case c == '"':
			sb.WriteString(`\"`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, c)
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String()
}

// Unescape is the inverse of Escape.
//
// Bytes outside escape sequences are copied verbatim, so text typed by a translator in any
// encoding is kept as-is. A legacy b'...' or b"..." wrapper is removed first.
func Unescape(s string) ([]byte, error) {
	s = stripBytesLiteral(s)
	out := make([]byte, 0, len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}

		i++
		if i >= len(s) {
			return nil, &FormatError{Msg: "dangling backslash at end of text"}
		}

		switch s[i] {
		case '\\', '\'', '"':
			out = append(out, s[i])
		case 't':
			out = append(out, '\t')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 'x':
			if i+2 >= len(s) {
				return nil, &FormatError{Msg: fmt.Sprintf("truncated \\x escape at column %d", i)}
			}
			v, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
			if err != nil {
				return nil, &FormatError{Msg: fmt.Sprintf("invalid \\x escape %q at column %d", s[i+1:i+3], i)}
			}
			out = append(out, byte(v))
			i += 2
		default:
			return nil, &FormatError{Msg: fmt.Sprintf("unknown escape \\%c at column %d", s[i], i)}
		}
	}

	return out, nil
}

// stripBytesLiteral removes the b'...' / b"..." wrapper written by older table files.
func stripBytesLiteral(s string) string {
	if len(s) < 3 || s[0] != 'b' {
		return s
	}
	if (s[1] == '\'' || s[1] == '"') && s[len(s)-1] == s[1] {
		return s[2 : len(s)-1]
	}
	return s
}
