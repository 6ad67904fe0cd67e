package table

import (
	"bufio"
	"fmt"
	"io"

	"slotpatch/core/reconcile"
)

// Stats describes the completion of a written table.
type Stats struct {
	// Unique is the number of distinct original strings.
	Unique int `json:"unique"`
	// Translated is the number of distinct original strings with a translation.
	Translated int `json:"translated"`
}

// Ratio returns Translated/Unique, or 0 when there are no strings.
func (s Stats) Ratio() float64 {
	if s.Unique == 0 {
		return 0
	}
	return float64(s.Translated) / float64(s.Unique)
}

// Write renders the translation table for resolved.
//
// Originals are deduplicated in first-seen order. The first section lists every original
// with a translation (header plus translation line, from its first translated slot); the
// second lists every original with an untranslated slot (header only).
func Write(w io.Writer, resolved []reconcile.ResolvedString) (Stats, error) {
	var order []string
	translated := make(map[string]int)
	unresolved := make(map[string]int)
	seen := make(map[string]struct{})

	for i, r := range resolved {
		key := string(r.Original)
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			order = append(order, key)
		}

		if r.Translated() {
			if _, ok := translated[key]; !ok {
				translated[key] = i
			}
		} else if _, ok := unresolved[key]; !ok {
			unresolved[key] = i
		}
	}

	stats := Stats{Unique: len(order), Translated: len(translated)}

	bw := bufio.NewWriter(w)

	for _, key := range order {
		i, ok := translated[key]
		if !ok {
			continue
		}
		r := resolved[i]
		if _, err := fmt.Fprintf(bw, "%s\n%s\n\n", header(r), Escape(r.Translation)); err != nil {
			return stats, err
		}
	}

	for _, key := range order {
		i, ok := unresolved[key]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(bw, "%s\n\n", header(resolved[i])); err != nil {
			return stats, err
		}
	}

	return stats, bw.Flush()
}

func header(r reconcile.ResolvedString) string {
	return fmt.Sprintf("%d\t%d\t%s", r.Offset, r.Length, Escape(r.Original))
}
