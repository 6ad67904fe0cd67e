package patch

import (
	"testing"

	"slotpatch/core/reconcile"

	"github.com/stretchr/testify/assert"
)

func TestApply(t *testing.T) {
	original := []byte{0xEE, 0xEE, 0xEE, 0xEE, 0x03, 'A', 'B', 'C', 0x02, 'J', 'a'}
	resolved := []reconcile.ResolvedString{
		{Offset: 5, Length: 3, Original: []byte("ABC"), Translation: []byte("AB ")},
		{Offset: 9, Length: 2, Original: []byte("Ja"), Translation: nil},
	}

	out, applied := Apply(original, resolved)
	assert.Equal(t, 1, applied)
	assert.Len(t, out, len(original))
	assert.Equal(t, []byte("AB "), out[5:8])
	assert.Equal(t, []byte("Ja"), out[9:11])
	assert.Equal(t, byte(0x03), out[4], "length prefix untouched")

	assert.Equal(t, []byte("ABC"), original[5:8], "input must not be modified")
}

func TestApply_SkipsInvalidEntries(t *testing.T) {
	original := []byte("0123456789")
	resolved := []reconcile.ResolvedString{
		{Offset: 1, Length: 3, Translation: []byte("toolong")},
		{Offset: 1, Length: 3, Translation: []byte("ab")},
		{Offset: 8, Length: 4, Translation: []byte("XXXX")},
		{Offset: -1, Length: 1, Translation: []byte("X")},
	}

	out, applied := Apply(original, resolved)
	assert.Equal(t, 0, applied)
	assert.Equal(t, original, out)
}

func TestApply_NoResolved(t *testing.T) {
	original := []byte("binary")
	out, applied := Apply(original, nil)
	assert.Equal(t, 0, applied)
	assert.Equal(t, original, out)
}
