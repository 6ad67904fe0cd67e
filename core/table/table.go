package table

import "fmt"

// Table maps original string content to its translation, remembering insertion order.
// Keys and values hold raw (unescaped) string bytes.
type Table struct {
	keys   []string
	values map[string]string
}

// New creates an empty table.
func New() *Table {
	return &Table{values: make(map[string]string)}
}

// Set stores the translation for key. An existing key keeps its position.
func (t *Table) Set(key, value string) {
	if _, exists := t.values[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

// Get returns the translation for key. It is safe to call on a nil table.
func (t *Table) Get(key string) (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t.values[key]
	return v, ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Keys returns the keys in insertion order.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	keys := make([]string, len(t.keys))
	copy(keys, t.keys)
	return keys
}

// Merge adds the entries of src that t does not have yet and returns how many were added.
// Entries already in t are kept unchanged.
func (t *Table) Merge(src *Table) int {
	added := 0
	for _, key := range src.Keys() {
		if _, exists := t.values[key]; exists {
			continue
		}
		value, _ := src.Get(key)
		t.Set(key, value)
		added++
	}
	return added
}

// FormatError reports a malformed translation table.
type FormatError struct {
	// Line is the 1-based line number, or 0 when unknown.
	Line int
	// Msg describes the problem.
	Msg string
}

func (e *FormatError) Error() string {
	if e.Line == 0 {
		return "translation table: " + e.Msg
	}
	return fmt.Sprintf("translation table: line %d: %s", e.Line, e.Msg)
}
