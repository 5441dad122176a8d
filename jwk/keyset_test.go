package jwk

import (
	"testing"

	tdd "github.com/stretchr/testify/assert"
	"go.bryk.io/jose/jwa"
)

func TestKeySet(t *testing.T) {
	assert := tdd.New(t)

	ks := NewKeySet()
	assert.Equal(0, ks.Len())

	k1, err := New(jwa.ES256)
	assert.Nil(err)
	k1.SetID("k1")
	ks.Add(k1)

	k2, err := New(jwa.RS256)
	assert.Nil(err)
	k2.SetID("k2")
	ks.Add(k2)

	assert.Equal(2, ks.Len())

	found, ok := ks.Find("k1")
	assert.True(ok)
	assert.Equal("k1", found.ID())

	_, ok = ks.Find("missing")
	assert.False(ok)

	set := ks.Export(true)
	assert.Len(set.Keys, 2)

	restored, err := ImportKeySet(set)
	assert.Nil(err)
	assert.Equal(2, restored.Len())
	rk, ok := restored.Find("k2")
	assert.True(ok)
	assert.Equal("RSA", rk.Kind().String())
}
