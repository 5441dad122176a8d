package jws

import (
	"context"
	"encoding/json"
	"strings"

	"go.bryk.io/jose/base64url"
	"go.bryk.io/jose/fetch"
	"go.bryk.io/jose/jwa"
)

// Parse dispatches on the input's leading character (after whitespace
// trimming) per §4.6: `ey` selects the compact parser, `{` selects the
// JSON parser. `fetcher` resolves any `jku`/`x5u` reference `flags`
// allows; it may be nil if neither flag is set.
func Parse(input string, flags ParseFlags, fetcher fetch.RemoteFetcher) (*JWS, error) {
	trimmed := strings.TrimSpace(input)
	switch {
	case strings.HasPrefix(trimmed, "ey"):
		return parseCompact(trimmed, flags, fetcher)
	case strings.HasPrefix(trimmed, "{"):
		return parseJSON(trimmed, flags, fetcher)
	default:
		return nil, newError(BadInput, "input is neither a compact nor a JSON JWS")
	}
}

func parseCompact(input string, flags ParseFlags, fetcher fetch.RemoteFetcher) (*JWS, error) {
	segments := strings.Split(input, ".")
	if len(segments) != 2 && len(segments) != 3 {
		return nil, newError(BadInput, "compact JWS must have 2 or 3 segments")
	}

	headerRaw, err := base64url.Decode(segments[0])
	if err != nil {
		return nil, wrapError(BadInput, err, "invalid header segment")
	}
	header := NewHeader()
	if err := json.Unmarshal(headerRaw, header); err != nil {
		return nil, wrapError(BadInput, err, "invalid header JSON")
	}

	alg := jwa.Alg(header.Alg())
	if alg == "" {
		return nil, newError(BadInput, "header missing required 'alg' member")
	}
	if alg == jwa.NONE && !flags.Has(Unsigned) {
		return nil, newError(BadInput, "'alg' none rejected: parse without the Unsigned flag")
	}

	payloadWire, err := base64url.Decode(segments[1])
	if err != nil {
		return nil, wrapError(BadInput, err, "invalid payload segment")
	}
	payload := payloadWire
	if header.Zip() == zipDEF {
		if payload, err = inflate(payloadWire); err != nil {
			return nil, wrapError(BadInput, err, "failed to decompress payload")
		}
	}

	var sigRaw []byte
	sigB64 := ""
	if len(segments) == 3 {
		sigB64 = segments[2]
	}
	if alg != jwa.NONE && strings.TrimSpace(sigB64) == "" {
		return nil, newError(BadInput, "missing signature segment for a signed algorithm")
	}
	if sigB64 != "" {
		if sigRaw, err = base64url.Decode(sigB64); err != nil {
			return nil, wrapError(BadInput, err, "invalid signature segment")
		}
	}

	j := New()
	j.header = header
	j.headerB64 = segments[0]
	j.payload = payload
	j.payloadB64 = segments[1]
	j.signature = sigRaw
	j.signatureB64 = sigB64
	j.alg = alg
	j.mode = Compact

	resolveHeaderExtensions(context.Background(), header, flags, fetcher, j.jwksPublic, j.logger)
	return j, nil
}

func parseJSON(input string, flags ParseFlags, fetcher fetch.RemoteFetcher) (*JWS, error) {
	var probe probeDoc
	if err := json.Unmarshal([]byte(input), &probe); err != nil {
		return nil, wrapError(BadInput, err, "invalid JSON")
	}

	isFlattened := len(probe.Protected) > 0 && probe.Protected[0] == '"'
	isGeneral := probe.Signatures != nil

	switch {
	case isGeneral:
		return parseGeneral(input, flags, fetcher)
	case isFlattened:
		return parseFlattened(input, flags, fetcher)
	default:
		return nil, newError(BadInput, "JSON JWS has neither 'protected' string nor 'signatures' array")
	}
}

func parseFlattened(input string, flags ParseFlags, fetcher fetch.RemoteFetcher) (*JWS, error) {
	var doc wireFlattened
	if err := json.Unmarshal([]byte(input), &doc); err != nil {
		return nil, wrapError(BadInput, err, "invalid flattened JWS")
	}
	if doc.Payload == "" || doc.Protected == "" || doc.Signature == "" {
		return nil, newError(BadInput, "flattened JWS missing a required member")
	}

	header, err := decodeProtected(doc.Protected)
	if err != nil {
		return nil, err
	}
	alg := jwa.Alg(header.Alg())
	if alg == "" {
		return nil, newError(BadInput, "header missing required 'alg' member")
	}
	if alg == jwa.NONE && !flags.Has(Unsigned) {
		return nil, newError(BadInput, "'alg' none rejected: parse without the Unsigned flag")
	}

	payload, err := decodePayload(doc.Payload, header)
	if err != nil {
		return nil, err
	}
	sig, err := base64url.Decode(doc.Signature)
	if err != nil {
		return nil, wrapError(BadInput, err, "invalid signature")
	}

	var unprotected *Header
	if len(doc.Header) > 0 {
		unprotected = NewHeader()
		if err := json.Unmarshal(doc.Header, unprotected); err != nil {
			return nil, wrapError(BadInput, err, "invalid unprotected 'header' member")
		}
	}

	j := New()
	j.header = header
	j.headerB64 = doc.Protected
	j.payload = payload
	j.payloadB64 = doc.Payload
	j.signature = sig
	j.signatureB64 = doc.Signature
	j.alg = alg
	j.mode = Flattened
	j.serialization = &jsonSerialization{
		payload: doc.Payload,
		entries: []jsonEntry{{protected: doc.Protected, signature: doc.Signature, header: unprotected}},
	}

	resolveHeaderExtensions(context.Background(), header, flags, fetcher, j.jwksPublic, j.logger)
	return j, nil
}

func parseGeneral(input string, flags ParseFlags, fetcher fetch.RemoteFetcher) (*JWS, error) {
	var doc wireGeneral
	if err := json.Unmarshal([]byte(input), &doc); err != nil {
		return nil, wrapError(BadInput, err, "invalid general JWS")
	}
	if doc.Payload == "" || len(doc.Signatures) == 0 {
		return nil, newError(BadInput, "general JWS missing 'payload' or 'signatures'")
	}

	j := New()
	j.mode = General
	j.serialization = &jsonSerialization{payload: doc.Payload}

	var firstHeader *Header
	for _, entry := range doc.Signatures {
		if entry.Protected == "" || entry.Signature == "" {
			return nil, newError(BadInput, "general JWS entry missing 'protected' or 'signature'")
		}
		header, err := decodeProtected(entry.Protected)
		if err != nil {
			return nil, err
		}
		alg := jwa.Alg(header.Alg())
		if alg == "" {
			return nil, newError(BadInput, "header missing required 'alg' member")
		}
		if alg == jwa.NONE && !flags.Has(Unsigned) {
			return nil, newError(BadInput, "'alg' none rejected: parse without the Unsigned flag")
		}
		if firstHeader == nil {
			firstHeader = header
			j.alg = alg
		}

		var unprotected *Header
		if len(entry.Header) > 0 {
			unprotected = NewHeader()
			if err := json.Unmarshal(entry.Header, unprotected); err != nil {
				return nil, wrapError(BadInput, err, "invalid unprotected 'header' member")
			}
		}
		j.serialization.entries = append(j.serialization.entries, jsonEntry{
			protected: entry.Protected,
			signature: entry.Signature,
			header:    unprotected,
		})

		resolveHeaderExtensions(context.Background(), header, flags, fetcher, j.jwksPublic, j.logger)
	}

	if firstHeader == nil {
		firstHeader = NewHeader()
	}
	payload, err := decodePayload(doc.Payload, firstHeader)
	if err != nil {
		return nil, err
	}
	j.header = firstHeader
	j.payload = payload
	j.payloadB64 = doc.Payload
	return j, nil
}

// decodeProtected base64url-decodes and parses a `protected` segment.
func decodeProtected(protected string) (*Header, error) {
	raw, err := base64url.Decode(protected)
	if err != nil {
		return nil, wrapError(BadInput, err, "invalid 'protected' segment")
	}
	header := NewHeader()
	if err := json.Unmarshal(raw, header); err != nil {
		return nil, wrapError(BadInput, err, "invalid 'protected' header JSON")
	}
	return header, nil
}

// decodePayload base64url-decodes the shared `payload` member, applying
// raw-DEFLATE decompression if the given header's `zip` member is "DEF".
func decodePayload(payload string, header *Header) ([]byte, error) {
	raw, err := base64url.Decode(payload)
	if err != nil {
		return nil, wrapError(BadInput, err, "invalid 'payload' member")
	}
	if header.Zip() == zipDEF {
		out, err := inflate(raw)
		if err != nil {
			return nil, wrapError(BadInput, err, "failed to decompress payload")
		}
		return out, nil
	}
	return raw, nil
}
