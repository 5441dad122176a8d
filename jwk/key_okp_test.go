package jwk

import (
	"testing"

	tdd "github.com/stretchr/testify/assert"
)

func TestX25519Agreement(t *testing.T) {
	assert := tdd.New(t)

	a, err := NewX25519()
	assert.Nil(err)
	b, err := NewX25519()
	assert.Nil(err)
	defer a.Destroy()
	defer b.Destroy()

	aa, ok := a.(*okpAgreementKey)
	assert.True(ok)
	bb, ok := b.(*okpAgreementKey)
	assert.True(ok)

	s1, err := aa.DH(bb.pub)
	assert.Nil(err)
	s2, err := bb.DH(aa.pub)
	assert.Nil(err)
	assert.Equal(s1, s2, "shared secret mismatch")

	// round trip through the wire representation
	rec := a.Export(false)
	restored, err := Import(rec)
	assert.Nil(err)
	assert.Equal(OKPKeyAgreement, restored.Kind())
}

func TestX448Representation(t *testing.T) {
	assert := tdd.New(t)

	pub := make([]byte, 56)
	priv := make([]byte, 56)
	for i := range pub {
		pub[i] = byte(i)
		priv[i] = byte(55 - i)
	}
	k, err := NewX448(pub, priv)
	assert.Nil(err)

	rec := k.Export(false)
	assert.Equal("X448", rec.Crv)

	restored, err := Import(rec)
	assert.Nil(err)
	assert.Equal(OKPKeyAgreement, restored.Kind())

	tp, err := restored.Thumbprint()
	assert.Nil(err)
	assert.NotEmpty(tp)
}
