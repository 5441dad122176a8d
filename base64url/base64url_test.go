package base64url

import (
	"testing"

	tdd "github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	assert := tdd.New(t)
	msg := []byte("hello, JOSE")
	enc := Encode(msg)
	dec, err := Decode(enc)
	assert.Nil(err)
	assert.Equal(msg, dec)
}

func TestDecodeRejectsInvalidAlphabet(t *testing.T) {
	assert := tdd.New(t)
	_, err := Decode("not+valid/base64=")
	assert.ErrorIs(err, ErrInvalidEncoding)
}

func TestDecodeRejectsPadding(t *testing.T) {
	assert := tdd.New(t)
	_, err := Decode("aGVsbG8=")
	assert.ErrorIs(err, ErrInvalidEncoding)
}
