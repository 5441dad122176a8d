package jws

import "encoding/json"

// jsonEntry is one member of a Flattened (always exactly one) or General
// (one or more) JSON serialization's signature list, deep-copied out of
// the wire JSON at parse time so the owning JWS is self-contained.
type jsonEntry struct {
	protected string
	signature string
	header    *Header // unprotected, per-signature header; nil if absent
}

// jsonSerialization is the deep-copied parsed JSON tree backing a
// Flattened or General JWS, per §3's ownership rule.
type jsonSerialization struct {
	payload string
	entries []jsonEntry
}

// wireFlattened is the on-the-wire shape of a Flattened-mode JWS.
type wireFlattened struct {
	Payload   string          `json:"payload"`
	Protected string          `json:"protected"`
	Signature string          `json:"signature"`
	Header    json.RawMessage `json:"header,omitempty"`
}

// wireGeneralEntry is one element of a General-mode `signatures` array.
type wireGeneralEntry struct {
	Protected string          `json:"protected"`
	Signature string          `json:"signature"`
	Header    json.RawMessage `json:"header,omitempty"`
}

// wireGeneral is the on-the-wire shape of a General-mode JWS.
type wireGeneral struct {
	Payload    string             `json:"payload"`
	Signatures []wireGeneralEntry `json:"signatures"`
}

// probeDoc is used only to distinguish Flattened from General shape: per
// §4.6, `protected` as a JSON string means Flattened, a `signatures` array
// means General.
type probeDoc struct {
	Protected  json.RawMessage   `json:"protected"`
	Signatures []json.RawMessage `json:"signatures"`
}
