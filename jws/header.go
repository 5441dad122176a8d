package jws

import (
	"encoding/json"
)

// Header is the JOSE header: a JSON object whose recognized members drive
// algorithm choice and key resolution, and whose other members are
// preserved verbatim and included in the signed input.
//
// Header deliberately exposes no way to obtain a mutable reference into
// its underlying map: every mutator goes through Set/Delete so the owning
// JWS can invalidate its cached encoding exactly when the header changes.
type Header struct {
	members map[string]json.RawMessage
}

// NewHeader returns an empty header.
func NewHeader() *Header {
	return &Header{members: make(map[string]json.RawMessage)}
}

// Clone returns a deep copy of the header.
func (h *Header) Clone() *Header {
	out := NewHeader()
	for k, v := range h.members {
		cp := make(json.RawMessage, len(v))
		copy(cp, v)
		out.members[k] = cp
	}
	return out
}

// Get returns the raw JSON value for `key`, and whether it was present.
func (h *Header) Get(key string) (json.RawMessage, bool) {
	v, ok := h.members[key]
	return v, ok
}

// GetString returns the string value of `key`, if present and a valid
// JSON string.
func (h *Header) GetString(key string) (string, bool) {
	raw, ok := h.Get(key)
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// GetStringSlice returns the string-array value of `key`, if present and
// a valid JSON array of strings.
func (h *Header) GetStringSlice(key string) ([]string, bool) {
	raw, ok := h.Get(key)
	if !ok {
		return nil, false
	}
	var s []string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false
	}
	return s, true
}

// Set stores `value` (marshaled to JSON) at `key`.
func (h *Header) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errorf(BadInput, "failed to encode header member '%s': %w", key, err)
	}
	h.members[key] = raw
	return nil
}

// SetRaw stores a pre-encoded JSON value at `key`, without re-marshaling.
func (h *Header) SetRaw(key string, value json.RawMessage) {
	h.members[key] = value
}

// Delete removes `key` from the header.
func (h *Header) Delete(key string) {
	delete(h.members, key)
}

// Has reports whether `key` is present.
func (h *Header) Has(key string) bool {
	_, ok := h.members[key]
	return ok
}

// Alg returns the `alg` member, or the empty string if absent/malformed.
func (h *Header) Alg() string {
	v, _ := h.GetString("alg")
	return v
}

// Zip returns the `zip` member, or the empty string if absent.
func (h *Header) Zip() string {
	v, _ := h.GetString("zip")
	return v
}

// Kid returns the `kid` member, or the empty string if absent.
func (h *Header) Kid() string {
	v, _ := h.GetString("kid")
	return v
}

// Jku returns the `jku` member, or the empty string if absent.
func (h *Header) Jku() string {
	v, _ := h.GetString("jku")
	return v
}

// X5u returns the `x5u` member, or the empty string if absent.
func (h *Header) X5u() string {
	v, _ := h.GetString("x5u")
	return v
}

// X5c returns the `x5c` member, or nil if absent.
func (h *Header) X5c() []string {
	v, _ := h.GetStringSlice("x5c")
	return v
}

// MarshalJSON renders the header as a JSON object. Go's encoding/json
// marshals map keys in sorted order, which is what gives repeated
// serializations of the same header byte-identical output (§8 property 4).
func (h *Header) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.members)
}

// UnmarshalJSON populates the header from a JSON object.
func (h *Header) UnmarshalJSON(data []byte) error {
	members := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	h.members = members
	return nil
}
