/*
Package jws implements the JSON Web Signature core: composing and
verifying signed tokens in compact, flattened-JSON and general-JSON
serialization, dispatching across the HMAC/RSA/ECDSA/EdDSA algorithm
families, and resolving verification keys across inline headers, fetched
key sets, and caller-supplied JWKS.

A JWS is composed by setting a payload, an algorithm, any header fields,
and at least one signing key, then calling SerializeCompact or
SerializeJSON:

	w := jws.New()
	w.SetPayload([]byte(`{"sub":"alice"}`))
	_ = w.SetAlg(jwa.HS256)
	_ = w.AddSigningKey(key)
	token, err := w.SerializeCompact()

A token is parsed back with Parse, and checked with Verify:

	w, err := jws.Parse(token, jws.All, fetcher)
	_ = w.AddVerificationKey(pub)
	if w.Verify(nil) != jws.Ok {
		// reject
	}
*/
package jws
