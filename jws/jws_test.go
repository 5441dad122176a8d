package jws

import (
	"strings"
	"testing"

	tdd "github.com/stretchr/testify/assert"
	"go.bryk.io/jose/base64url"
	"go.bryk.io/jose/jwa"
	"go.bryk.io/jose/jwk"
)

func newSigningKey(t *testing.T, alg jwa.Alg) jwk.Key {
	t.Helper()
	k, err := jwk.New(alg)
	if err != nil {
		t.Fatalf("failed to generate %s key: %v", alg, err)
	}
	return k
}

// S1: HS256 compact round trip.
func TestHS256Compact(t *testing.T) {
	assert := tdd.New(t)

	rec := jwk.Record{KeyType: "oct", Alg: string(jwa.HS256), K: "c2VjcmV0"}
	key, err := jwk.Import(rec)
	assert.Nil(err)

	w := New()
	w.SetPayload([]byte(`{"sub":"alice"}`))
	assert.Nil(w.SetAlg(jwa.HS256))
	assert.Nil(w.SetHeaderValue("typ", "JWT"))
	assert.Nil(w.AddSigningKey(key))

	token, err := w.SerializeCompact()
	assert.Nil(err)
	assert.Equal(2, strings.Count(token, "."))

	parsed, err := Parse(token, All, nil)
	assert.Nil(err)
	assert.Nil(parsed.AddVerificationKey(key))
	assert.Equal(Ok, parsed.Verify(nil))
}

// S2: RS256 compact, with `kid`; signature-byte flip invalidates.
func TestRS256CompactWithKid(t *testing.T) {
	assert := tdd.New(t)

	priv := newSigningKey(t, jwa.RS256)
	priv.SetID("2011-04-29")
	pub, err := jwk.Import(priv.Export(true))
	assert.Nil(err)

	w := New()
	w.SetPayload([]byte(`{"iss":"joe","exp":1300819380}`))
	assert.Nil(w.SetAlg(jwa.RS256))
	assert.Nil(w.AddSigningKey(priv))

	token, err := w.SerializeCompact()
	assert.Nil(err)

	parsed, err := Parse(token, All, nil)
	assert.Nil(err)
	assert.Nil(parsed.AddVerificationKey(pub))
	assert.Equal(Ok, parsed.Verify(nil))

	// flip a character in the signature segment
	segments := strings.Split(token, ".")
	flipped := flipLastChar(segments[2])
	tampered := segments[0] + "." + segments[1] + "." + flipped
	parsedTampered, err := Parse(tampered, All, nil)
	assert.Nil(err)
	assert.Nil(parsedTampered.AddVerificationKey(pub))
	assert.Equal(InvalidSignature, parsedTampered.Verify(nil))
}

// S3: ES256 wire signature length; wrong length is InvalidSignature, not BadInput.
func TestES256WireLength(t *testing.T) {
	assert := tdd.New(t)

	priv := newSigningKey(t, jwa.ES256)
	pub, err := jwk.Import(priv.Export(true))
	assert.Nil(err)

	w := New()
	w.SetPayload([]byte("hello"))
	assert.Nil(w.SetAlg(jwa.ES256))
	assert.Nil(w.AddSigningKey(priv))

	token, err := w.SerializeCompact()
	assert.Nil(err)

	segments := strings.Split(token, ".")
	sigRaw, err := base64url.Decode(segments[2])
	assert.Nil(err)
	assert.Len(sigRaw, 64)

	// build a 63-byte signature and re-encode
	truncated := base64url.Encode(sigRaw[:63])
	bad := segments[0] + "." + segments[1] + "." + truncated
	parsed, err := Parse(bad, All, nil)
	assert.Nil(err)
	assert.Nil(parsed.AddVerificationKey(pub))
	assert.Equal(InvalidSignature, parsed.Verify(nil))
}

// S4: General JSON, wrong-key fallback across two signatures.
func TestGeneralWrongKeyFallback(t *testing.T) {
	assert := tdd.New(t)

	k1 := newSigningKey(t, jwa.RS256)
	k1.SetID("key-1")
	k2 := newSigningKey(t, jwa.RS256)
	k2.SetID("key-2")
	pub2, err := jwk.Import(k2.Export(true))
	assert.Nil(err)

	w := New()
	w.SetPayload([]byte(`{"msg":"hi"}`))
	assert.Nil(w.AddSigningKey(k1))
	assert.Nil(w.AddSigningKey(k2))

	raw, err := w.SerializeJSON(General)
	assert.Nil(err)

	parsed, err := Parse(string(raw), All, nil)
	assert.Nil(err)
	assert.Nil(parsed.AddVerificationKey(pub2))
	assert.Equal(Ok, parsed.Verify(nil))
}

// S5: zip=DEF round trip.
func TestZipDeflateRoundTrip(t *testing.T) {
	assert := tdd.New(t)

	key := newSigningKey(t, jwa.HS256)
	payload := []byte(strings.Repeat("A", 10*1024))

	w := New()
	w.SetPayload(payload)
	assert.Nil(w.SetAlg(jwa.HS256))
	assert.Nil(w.SetZip(true))
	assert.Nil(w.AddSigningKey(key))

	token, err := w.SerializeCompact()
	assert.Nil(err)

	segments := strings.Split(token, ".")
	assert.Less(len(segments[1]), len(payload))

	parsed, err := Parse(token, All, nil)
	assert.Nil(err)
	assert.Equal(payload, parsed.Payload())
	assert.Nil(parsed.AddVerificationKey(key))
	assert.Equal(Ok, parsed.Verify(nil))
}

// S6: alg=none rejected by a secure parse; accepted (as InvalidKey on
// verify) by an unsecure parse.
func TestAlgNoneParsing(t *testing.T) {
	assert := tdd.New(t)

	w := New()
	w.SetPayload([]byte("hello"))
	assert.Nil(w.SetAlg(jwa.NONE))
	token, err := w.SerializeCompact()
	assert.Nil(err)
	assert.True(strings.HasSuffix(token, "."))

	_, err = Parse(token, HeaderAll, nil)
	assert.NotNil(err)
	assert.Equal(BadInput, CodeOf(err))

	parsed, err := Parse(token, All, nil)
	assert.Nil(err)
	assert.Equal(InvalidKey, parsed.Verify(nil))
}

// Property 3: flipping a payload bit invalidates the signature.
func TestFlippedPayloadInvalidatesSignature(t *testing.T) {
	assert := tdd.New(t)

	key := newSigningKey(t, jwa.HS256)
	w := New()
	w.SetPayload([]byte("original"))
	assert.Nil(w.SetAlg(jwa.HS256))
	assert.Nil(w.AddSigningKey(key))
	token, err := w.SerializeCompact()
	assert.Nil(err)

	segments := strings.Split(token, ".")
	tampered := flipLastChar(segments[1]) // munge the payload segment
	bad := segments[0] + "." + tampered + "." + segments[2]
	parsed, err := Parse(bad, All, nil)
	assert.Nil(err)
	assert.Nil(parsed.AddVerificationKey(key))
	assert.Equal(InvalidSignature, parsed.Verify(nil))
}

// Property 4: repeated serialization of a deterministic algorithm yields
// byte-identical output.
func TestDeterministicEncoding(t *testing.T) {
	assert := tdd.New(t)

	key := newSigningKey(t, jwa.HS256)
	build := func() string {
		w := New()
		w.SetPayload([]byte("same payload"))
		_ = w.SetAlg(jwa.HS256)
		_ = w.AddSigningKey(key)
		token, err := w.SerializeCompact()
		assert.Nil(err)
		return token
	}
	assert.Equal(build(), build())
}

// Property 8: a header setter invalidates the cached header encoding.
func TestHeaderSetterInvalidatesCache(t *testing.T) {
	assert := tdd.New(t)

	key := newSigningKey(t, jwa.HS256)
	w := New()
	w.SetPayload([]byte("payload"))
	assert.Nil(w.SetAlg(jwa.HS256))
	assert.Nil(w.AddSigningKey(key))

	_, err := w.SerializeCompact()
	assert.Nil(err)

	assert.Nil(w.SetHeaderValue("custom", "value"))
	token2, err := w.SerializeCompact()
	assert.Nil(err)

	parsed, err := Parse(token2, All, nil)
	assert.Nil(err)
	v, ok := parsed.Header().Get("custom")
	assert.True(ok)
	assert.Equal(`"value"`, string(v))
}

func flipLastChar(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	last := len(r) - 1
	if r[last] == 'A' {
		r[last] = 'B'
	} else {
		r[last] = 'A'
	}
	return string(r)
}
