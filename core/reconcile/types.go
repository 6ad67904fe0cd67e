package reconcile

import "fmt"

// Source identifies where a slot's translation came from.
type Source string

const (
	// SourceNone marks a slot with no translation yet.
	SourceNone Source = "none"
	// SourceTable marks a translation taken from the translation table.
	SourceTable Source = "table"
	// SourcePatched marks a translation discovered in the previously patched binary.
	SourcePatched Source = "patched"
)

// ResolvedString is the final translation decision for one slot of the binary.
type ResolvedString struct {
	// Offset is the position of the slot's first data byte.
	Offset int

	// Length is the slot size in bytes.
	Length int

	// Original is the slot content in the original binary.
	Original []byte

	// Translation is the replacement content, exactly Length bytes long.
	// It is nil when the slot has not been translated.
	Translation []byte

	// Source tells which input the translation was resolved from.
	Source Source
}

// Translated reports whether the slot has a translation.
func (r ResolvedString) Translated() bool {
	return r.Translation != nil
}

// Lookup resolves an original string to its translation.
// Keys and values hold raw string bytes.
type Lookup interface {
	Get(key string) (string, bool)
}

// Summary provides aggregate counts over a resolved set.
type Summary struct {
	// Slots is the number of resolved slots (empty records excluded).
	Slots int `json:"slots"`

	// Translated counts slots with a translation.
	Translated int `json:"translated"`

	// Unresolved counts slots without a translation.
	Unresolved int `json:"unresolved"`

	// FromTable counts translations taken from the translation table.
	FromTable int `json:"from_table"`

	// FromPatched counts translations carried over from the patched binary.
	FromPatched int `json:"from_patched"`
}

// StructuralDivergence reports that the original and patched binaries no longer
// correspond record for record at the same scan index.
type StructuralDivergence struct {
	// Index is the scan index of the diverging record.
	Index int
	// Field is "offset" or "length".
	Field string
	// Original is the value scanned from the original binary.
	Original int
	// Patched is the value scanned from the patched binary.
	Patched int
}

func (e *StructuralDivergence) Error() string {
	return fmt.Sprintf("structural divergence at index %d: %s mismatch (original=%d, patched=%d)", e.Index, e.Field, e.Original, e.Patched)
}

// TranslationTooLong reports a table translation that does not fit its slot.
type TranslationTooLong struct {
	// Index is the scan index of the slot.
	Index int
	// Offset is the slot offset in the binary.
	Offset int
	// Text is the translation as found in the table.
	Text string
	// Size is the encoded size of the translation in bytes.
	Size int
	// Max is the slot length.
	Max int
}

func (e *TranslationTooLong) Error() string {
	return fmt.Sprintf("translation too long at index %d (offset %d): %q has %d bytes (max=%d)", e.Index, e.Offset, e.Text, e.Size, e.Max)
}
