package jws

import (
	"testing"

	tdd "github.com/stretchr/testify/assert"
)

func TestParseRejectsUnknownShape(t *testing.T) {
	assert := tdd.New(t)
	_, err := Parse("not-a-jws", All, nil)
	assert.NotNil(err)
	assert.Equal(BadInput, CodeOf(err))
}

func TestParseCompactRejectsWrongSegmentCount(t *testing.T) {
	assert := tdd.New(t)
	_, err := Parse("eyJhbGciOiJub25lIn0.cGF5bG9hZA.x.y", All, nil)
	assert.NotNil(err)
	assert.Equal(BadInput, CodeOf(err))
}

func TestParseCompactRejectsUnrecognizedAlg(t *testing.T) {
	assert := tdd.New(t)
	// header {"alg":"BOGUS"}
	_, err := Parse("eyJhbGciOiJCT0dVUyJ9.cGF5bG9hZA.c2ln", All, nil)
	assert.NotNil(err)
	assert.Equal(InvalidKey, CodeOf(err))
}

func TestParseFlattenedRejectsMissingMember(t *testing.T) {
	assert := tdd.New(t)
	_, err := Parse(`{"payload":"cGF5bG9hZA","protected":"eyJhbGciOiJIUzI1NiJ9"}`, All, nil)
	assert.NotNil(err)
	assert.Equal(BadInput, CodeOf(err))
}
