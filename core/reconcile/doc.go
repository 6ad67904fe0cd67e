// Package reconcile merges three sources of truth about the strings of a binary into one
// authoritative decision per slot: the original binary, a previously patched binary, and the
// human-maintained translation table.
//
// # Inputs
//
// Both binaries are scanned with the same address ranges, so scan index i names the same slot
// in each. A patched scan may be shorter or empty when the patched binary does not exist yet.
//
// # Rules
//
// For every non-empty slot of the original scan:
//
//  1. If the patched scan has an entry at the same index, its offset and length must equal the
//     original's. Otherwise the binaries drifted apart and Reconcile fails with a
//     *StructuralDivergence.
//  2. A table entry keyed by the original text wins. It is right-padded with spaces to the slot
//     length; one that does not fit fails with *TranslationTooLong.
//  3. Otherwise, patched bytes that differ from the original are carried forward as an already
//     applied translation.
//  4. Otherwise the slot is unresolved.
//
// Patching with the result and reconciling again against the same table yields the same
// decisions, so a translated binary regenerates a table that rebuilds the same binary.
//
// # Usage
//
//	resolved, err := reconcile.Reconcile(originalRecords, patchedRecords, tbl)
//	if err != nil {
//	    return err
//	}
//	summary := reconcile.Summarize(resolved)
package reconcile
