package jws

// ParseFlags is a bitmask gating the side effects a parse operation is
// allowed to perform while resolving header key hints.
type ParseFlags uint8

const (
	// HeaderJKU fetches and appends keys referenced by a `jku` header.
	HeaderJKU ParseFlags = 1 << iota
	// HeaderJWK imports an inline `jwk` header member.
	HeaderJWK
	// HeaderX5U fetches and imports the certificate referenced by `x5u`.
	HeaderX5U
	// HeaderX5C imports the certificate inlined at `x5c[0]`.
	HeaderX5C
	// Unsigned accepts `alg`=="none" during parsing.
	Unsigned
)

// HeaderAll enables every header-extension side effect, but not Unsigned.
const HeaderAll = HeaderJKU | HeaderJWK | HeaderX5U | HeaderX5C

// All enables every parse flag, including Unsigned.
const All = HeaderAll | Unsigned

// Has reports whether the flag set includes `f`.
func (flags ParseFlags) Has(f ParseFlags) bool {
	return flags&f != 0
}
