package jws

import (
	"testing"

	tdd "github.com/stretchr/testify/assert"
	"go.bryk.io/jose/jwa"
	"go.bryk.io/jose/jwk"
)

func TestDispatchKindMismatchIsInvalidKey(t *testing.T) {
	assert := tdd.New(t)

	ecKey, err := jwk.New(jwa.ES256)
	assert.Nil(err)

	_, err = sign(jwa.HS256, ecKey, []byte("data"))
	assert.NotNil(err)
	assert.Equal(InvalidKey, CodeOf(err))
}

func TestDispatchUnrecognizedAlg(t *testing.T) {
	assert := tdd.New(t)

	_, err := sign(jwa.Alg("ES256K"), nil, []byte("data"))
	assert.NotNil(err)
	assert.Equal(InvalidKey, CodeOf(err))
}

func TestDispatchNoneRequiresNoKey(t *testing.T) {
	assert := tdd.New(t)

	sig, err := sign(jwa.NONE, nil, []byte("data"))
	assert.Nil(err)
	assert.Nil(sig)
}
