package reconcile

import (
	"bytes"

	"slotpatch/core/scan"
)

// Reconcile merges the original scan, the patched scan and the translation table into one
// decision per slot, in original scan order.
//
// patched may be shorter than original or empty when no patched binary exists yet.
// translations may be nil.
func Reconcile(original, patched []scan.Record, translations Lookup) ([]ResolvedString, error) {
	resolved := make([]ResolvedString, 0, len(original))

	for i, rec := range original {
		var counterpart *scan.Record
		if i < len(patched) {
			counterpart = &patched[i]
			if err := checkCorrespondence(i, rec, *counterpart); err != nil {
				return nil, err
			}
		}

		// Empty slots carry nothing to translate
		if rec.Length == 0 || len(rec.Bytes) == 0 {
			continue
		}

		translation, source, err := resolve(i, rec, counterpart, translations)
		if err != nil {
			return nil, err
		}

		resolved = append(resolved, ResolvedString{
			Offset:      rec.Offset,
			Length:      rec.Length,
			Original:    rec.Bytes,
			Translation: translation,
			Source:      source,
		})
	}

	return resolved, nil
}

// Correspond checks that every index present in both scans names the same slot.
// A patched scan cut short by a scan error can be checked this way before the error is
// reported, so a drifted slot is located by its index.
func Correspond(original, patched []scan.Record) error {
	for i := 0; i < len(original) && i < len(patched); i++ {
		if err := checkCorrespondence(i, original[i], patched[i]); err != nil {
			return err
		}
	}
	return nil
}

// checkCorrespondence verifies that both scans describe the same slot at index i.
func checkCorrespondence(i int, original, patched scan.Record) error {
	if original.Offset != patched.Offset {
		return &StructuralDivergence{Index: i, Field: "offset", Original: original.Offset, Patched: patched.Offset}
	}
	if original.Length != patched.Length {
		return &StructuralDivergence{Index: i, Field: "length", Original: original.Length, Patched: patched.Length}
	}
	return nil
}

// resolve applies the precedence table > patched binary > untranslated.
func resolve(i int, original scan.Record, patched *scan.Record, translations Lookup) ([]byte, Source, error) {
	if translations != nil {
		if text, ok := translations.Get(string(original.Bytes)); ok {
			padded, err := pad(i, original, text)
			if err != nil {
				return nil, SourceNone, err
			}
			return padded, SourceTable, nil
		}
	}

	if patched == nil || bytes.Equal(patched.Bytes, original.Bytes) {
		return nil, SourceNone, nil
	}

	return patched.Bytes, SourcePatched, nil
}

// pad right-pads text with spaces to the slot length.
func pad(i int, slot scan.Record, text string) ([]byte, error) {
	if len(text) > slot.Length {
		return nil, &TranslationTooLong{Index: i, Offset: slot.Offset, Text: text, Size: len(text), Max: slot.Length}
	}

	out := make([]byte, slot.Length)
	n := copy(out, text)
	for j := n; j < len(out); j++ {
		out[j] = ' '
	}
	return out, nil
}

// Summarize counts the resolved slots by outcome.
func Summarize(resolved []ResolvedString) Summary {
	s := Summary{Slots: len(resolved)}
	for _, r := range resolved {
		switch r.Source {
		case SourceTable:
			s.FromTable++
		case SourcePatched:
			s.FromPatched++
		}
		if r.Translated() {
			s.Translated++
		} else {
			s.Unresolved++
		}
	}
	return s
}

// Unresolved returns up to limit slots that still lack a translation. A limit <= 0 returns all.
func Unresolved(resolved []ResolvedString, limit int) []ResolvedString {
	var out []ResolvedString
	for _, r := range resolved {
		if r.Translated() {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
