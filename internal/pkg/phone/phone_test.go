package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_LocalForm(t *testing.T) {
	n, ok := Normalize("09171234567")
	require.True(t, ok)
	assert.Equal(t, "09171234567", n)
}

func TestNormalize_E164Form(t *testing.T) {
	n, ok := Normalize("+639171234567")
	require.True(t, ok)
	assert.Equal(t, "09171234567", n)
}

func TestNormalize_Rejects(t *testing.T) {
	for _, raw := range []string{
		"9171234567",     // missing leading 0
		"0917123456",     // too short
		"091712345678",   // too long
		"+6391712345678", // too long
		"0917123456a",    // non-digit
		"+449171234567",  // wrong country code
		"",
	} {
		_, ok := Normalize(raw)
		assert.False(t, ok, "expected %q to be rejected", raw)
	}
}

func TestToE164(t *testing.T) {
	assert.Equal(t, "+639171234567", ToE164("09171234567"))
}

func TestMask(t *testing.T) {
	assert.Equal(t, "0917***4567", Mask("09171234567"))
	assert.Equal(t, "+639*****4567", Mask("+639171234567"))
	// Short strings are returned untouched rather than over-masked.
	assert.Equal(t, "09171234", Mask("09171234"))
}
