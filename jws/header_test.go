package jws

import (
	"encoding/json"
	"testing"

	tdd "github.com/stretchr/testify/assert"
)

func TestHeaderDeterministicMarshal(t *testing.T) {
	assert := tdd.New(t)

	h := NewHeader()
	assert.Nil(h.Set("zeta", "1"))
	assert.Nil(h.Set("alpha", "2"))
	assert.Nil(h.Set("mu", "3"))

	a, err := json.Marshal(h)
	assert.Nil(err)
	b, err := json.Marshal(h)
	assert.Nil(err)
	assert.Equal(string(a), string(b))
}

func TestHeaderCloneIsIndependent(t *testing.T) {
	assert := tdd.New(t)

	h := NewHeader()
	assert.Nil(h.Set("alg", "HS256"))
	cp := h.Clone()
	cp.Delete("alg")

	assert.True(h.Has("alg"))
	assert.False(cp.Has("alg"))
}

func TestHeaderTypedAccessors(t *testing.T) {
	assert := tdd.New(t)

	h := NewHeader()
	assert.Nil(h.Set("alg", "ES256"))
	assert.Nil(h.Set("kid", "k1"))
	assert.Nil(h.Set("x5c", []string{"a", "b"}))

	assert.Equal("ES256", h.Alg())
	assert.Equal("k1", h.Kid())
	assert.Equal([]string{"a", "b"}, h.X5c())
}
