/*
Package jwk implements JSON Web Key as described in RFC-7517.

A JSON Web Key (JWK) is a JavaScript Object Notation (JSON) data
structure that represents a cryptographic key.  This specification
also defines a JWK Set JSON data structure that represents a set of
JWKs.  Cryptographic algorithms and identifiers for use with this
specification are described in the separate JSON Web Algorithms (JWA)
specification and IANA registries established by that specification.

More information:
https://www.rfc-editor.org/rfc/rfc7517.html
*/
package jwk
