package jwk

import (
	"encoding/asn1"
	"math/big"
	"testing"

	tdd "github.com/stretchr/testify/assert"
)

func TestECDSACodecRoundTrip(t *testing.T) {
	assert := tdd.New(t)

	r := big.NewInt(12345)
	s := big.NewInt(67890)
	der, err := asn1.Marshal(ecdsaSignature{R: r, S: s})
	assert.Nil(err)

	raw, err := derToRaw(der, 32)
	assert.Nil(err)
	assert.Len(raw, 64)

	der2, err := rawToDER(raw, 32)
	assert.Nil(err)

	var sig ecdsaSignature
	_, err = asn1.Unmarshal(der2, &sig)
	assert.Nil(err)
	assert.Equal(0, sig.R.Cmp(r))
	assert.Equal(0, sig.S.Cmp(s))
}

func TestECDSACodecWrongLength(t *testing.T) {
	assert := tdd.New(t)
	_, err := rawToDER(make([]byte, 63), 32)
	assert.ErrorIs(err, errWrongSignatureLength)
}
