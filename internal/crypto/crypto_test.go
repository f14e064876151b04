package crypto

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCipher(t *testing.T) *Cipher {
	t.Helper()
	c, err := NewCipher(bytes.Repeat([]byte{1}, 32), bytes.Repeat([]byte{2}, 32))
	require.NoError(t, err)
	return c
}

func TestCipher_SealOpen(t *testing.T) {
	c := testCipher(t)

	sealed, err := c.Seal("a quiet morning walk")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "morning")

	again, err := c.Seal("a quiet morning walk")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonces must differ")

	plain, err := c.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "a quiet morning walk", plain)
}

func TestCipher_EmptyAndCorrupt(t *testing.T) {
	c := testCipher(t)

	sealed, err := c.Seal("")
	require.NoError(t, err)
	assert.Empty(t, sealed)

	_, err = c.Open("AAAA")
	assert.ErrorIs(t, err, ErrCiphertextTooShort)

	_, err = c.Open("not base64!")
	assert.Error(t, err)
}

func TestCipher_BlindIndex(t *testing.T) {
	c := testCipher(t)
	assert.Equal(t, c.BlindIndex("a@b.c"), c.BlindIndex("a@b.c"))
	assert.NotEqual(t, c.BlindIndex("a@b.c"), c.BlindIndex("b@b.c"))
	assert.Empty(t, c.BlindIndex(""))
}

func TestNewCipher_KeyLength(t *testing.T) {
	_, err := NewCipher([]byte("short"), bytes.Repeat([]byte{2}, 32))
	assert.Error(t, err)
	_, err = NewCipher(bytes.Repeat([]byte{1}, 32), nil)
	assert.Error(t, err)
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey(strings.Repeat("ab", 32))
	require.NoError(t, err)
	assert.Len(t, k, 32)

	_, err = ParseKey("abcd")
	assert.Error(t, err)
	_, err = ParseKey("zz")
	assert.Error(t, err)
}
