// Package patch writes resolved translations back into a copy of the original binary.
//
// Only slot contents change. A translation is applied only when it is exactly as long as its
// slot and the slot lies inside the buffer, so the output always has the size of the input and
// every other offset in the binary stays valid.
package patch

import "slotpatch/core/reconcile"

// Apply returns a patched copy of original and the number of slots overwritten.
// original is not modified.
func Apply(original []byte, resolved []reconcile.ResolvedString) ([]byte, int) {
	out := make([]byte, len(original))
	copy(out, original)

	applied := 0
	for _, r := range resolved {
		if !r.Translated() || len(r.Translation) != r.Length {
			continue
		}
		if r.Offset < 0 || r.Offset+r.Length > len(out) {
			continue
		}
		copy(out[r.Offset:r.Offset+r.Length], r.Translation)
		applied++
	}

	return out, applied
}
