package jws

import (
	"strings"
	"testing"

	tdd "github.com/stretchr/testify/assert"
)

func TestDeflateRoundTrip(t *testing.T) {
	assert := tdd.New(t)

	original := []byte(strings.Repeat("hello world ", 500))
	compressed, err := deflate(original)
	assert.Nil(err)
	assert.Less(len(compressed), len(original))

	restored, err := inflate(compressed)
	assert.Nil(err)
	assert.Equal(original, restored)
}
