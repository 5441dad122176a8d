// Command josectl is a small demonstration CLI for the go.bryk.io/jose
// library: it generates keys, signs and verifies JWS tokens, assembles
// JWKS documents, and offers an interactive shell for iterative use.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
