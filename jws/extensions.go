package jws

import (
	"context"
	"encoding/json"

	"go.bryk.io/jose/fetch"
	"go.bryk.io/jose/jwk"
	"go.bryk.io/jose/log"
)

// resolveHeaderExtensions imports any key material referenced by `header`
// (`jwk`, `x5c`, `x5u`, `jku`) into `into`, gated bit-by-bit by `flags`.
// A failed remote fetch is logged and otherwise ignored, per §4.9: the
// JWS remains parseable, and verification may still succeed via a
// caller-provided key or another signature.
func resolveHeaderExtensions(
	ctx context.Context,
	header *Header,
	flags ParseFlags,
	fetcher fetch.RemoteFetcher,
	into *jwk.KeySet,
	logger log.Logger,
) {
	if flags.Has(HeaderJWK) && header.Has("jwk") {
		if k, err := importInlineJWK(header); err != nil {
			logger.Warning("failed to import inline 'jwk' header member: " + err.Error())
		} else {
			into.Add(k)
		}
	}

	if flags.Has(HeaderX5C) {
		if chain, ok := header.GetStringSlice("x5c"); ok && len(chain) > 0 {
			k, err := jwk.ImportCertificateChain(jwk.Record{CertificateChain: chain})
			if err != nil {
				logger.Warning("failed to import 'x5c' header member: " + err.Error())
			} else {
				into.Add(k)
			}
		}
	}

	if flags.Has(HeaderX5U) && fetcher != nil {
		if url := header.X5u(); url != "" {
			k, err := jwk.ImportCertificateURL(ctx, jwk.Record{CertificateURL: url}, fetcher, fetch.None)
			if err != nil {
				logger.Warning("failed to fetch 'x5u' reference: " + err.Error())
			} else {
				into.Add(k)
			}
		}
	}

	if flags.Has(HeaderJKU) && fetcher != nil {
		if url := header.Jku(); url != "" {
			raw, err := fetcher.Fetch(ctx, url, fetch.None)
			if err != nil {
				logger.Warning("failed to fetch 'jku' reference: " + err.Error())
			} else if err := importJWKSInto(raw, into); err != nil {
				logger.Warning("failed to import 'jku' key set: " + err.Error())
			}
		}
	}
}

// importInlineJWK decodes the header's `jwk` member (a single JWK JSON
// object) and imports it.
func importInlineJWK(header *Header) (jwk.Key, error) {
	raw, _ := header.Get("jwk")
	var rec jwk.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errorf(BadInput, "invalid inline 'jwk' header member: %v", err)
	}
	return jwk.Import(rec)
}

// importJWKSInto decodes a fetched JWKS document and adds every key it
// contains to `into`.
func importJWKSInto(raw []byte, into *jwk.KeySet) error {
	var set jwk.Set
	if err := json.Unmarshal(raw, &set); err != nil {
		return errorf(BadInput, "invalid JWKS document: %v", err)
	}
	ks, err := jwk.ImportKeySet(set)
	if err != nil {
		return err
	}
	for _, k := range ks.Keys() {
		into.Add(k)
	}
	return nil
}
