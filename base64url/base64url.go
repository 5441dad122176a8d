/*
Package base64url implements the base64url encoding used throughout JOSE
(RFC-4648 §5, unpadded), with a pre-validation pass so malformed input
produces an ErrInvalidEncoding value instead of a bare encoding/base64
error, keeping the taxonomy boundary in `jws.Code` clean.
*/
package base64url

import (
	"encoding/base64"
	"errors"
)

// ErrInvalidEncoding is returned by Decode when the input contains bytes
// outside the base64url alphabet ([A-Za-z0-9_-]).
var ErrInvalidEncoding = errors.New("base64url: invalid character in input")

var enc = base64.RawURLEncoding

// Encode returns the unpadded base64url encoding of `data`.
func Encode(data []byte) string {
	return enc.EncodeToString(data)
}

// Decode returns the bytes represented by the base64url string `s`.
func Decode(s string) ([]byte, error) {
	if !validAlphabet(s) {
		return nil, ErrInvalidEncoding
	}
	return enc.DecodeString(s)
}

// validAlphabet reports whether every byte of `s` is a valid base64url
// character: A-Z, a-z, 0-9, '-' or '_'.
func validAlphabet(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}
