package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKeyBinding_Present(t *testing.T) {
	compact := "jwt~disclosure1~disclosure2~kbjwt"
	kb, rest, ok := ParseKeyBinding(compact)
	assert.True(t, ok)
	assert.Equal(t, "kbjwt", string(kb.Raw))
	assert.Equal(t, "jwt~disclosure1~disclosure2~", rest)
}

func TestParseKeyBinding_AbsentWhenTrailingTilde(t *testing.T) {
	compact := "jwt~disclosure1~"
	kb, rest, ok := ParseKeyBinding(compact)
	assert.False(t, ok)
	assert.Nil(t, kb)
	assert.Equal(t, compact, rest)
}

func TestParseKeyBinding_AbsentWhenNoTilde(t *testing.T) {
	kb, rest, ok := ParseKeyBinding("justajwt")
	assert.False(t, ok)
	assert.Nil(t, kb)
	assert.Equal(t, "justajwt", rest)
}

func TestAttachKeyBinding_RoundTrip(t *testing.T) {
	base := "jwt~disclosure1~"
	attached := AttachKeyBinding(base, &KeyBindingJWT{Raw: []byte("kbjwt")})
	assert.Equal(t, "jwt~disclosure1~kbjwt", attached)

	kb, rest, ok := ParseKeyBinding(attached)
	assert.True(t, ok)
	assert.Equal(t, "kbjwt", string(kb.Raw))
	assert.Equal(t, base, rest)
}

func TestAttachKeyBinding_NilIsNoop(t *testing.T) {
	assert.Equal(t, "jwt~", AttachKeyBinding("jwt~", nil))
}
