package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.bryk.io/jose/cli"
	jsh "go.bryk.io/jose/cli/shell"
	"go.bryk.io/jose/errors"
	"go.bryk.io/jose/fetch"
	"go.bryk.io/jose/jwa"
	"go.bryk.io/jose/jwk"
	"go.bryk.io/jose/jws"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive shell for iterative sign/verify experimentation",
	RunE:  runShell,
}

// spinnerFetcher wraps a RemoteFetcher, showing a spinner for the duration
// of every call; used so a `jku`/`x5u` lookup during shell use gives visual
// feedback instead of an unexplained pause.
type spinnerFetcher struct {
	fetch.RemoteFetcher
}

func (f spinnerFetcher) Fetch(ctx context.Context, url string, flags fetch.Flags) ([]byte, error) {
	s := cli.NewSpinner()
	s.Start()
	defer s.Stop()
	return f.RemoteFetcher.Fetch(ctx, url, flags)
}

func runShell(_ *cobra.Command, _ []string) error {
	sh, err := jsh.New(
		jsh.WithPrompt("jose» "),
		jsh.WithStartMessage("josectl interactive shell. Type 'help' for a command list."),
		jsh.WithExitMessage("bye"),
	)
	if err != nil {
		return errors.Wrap(err, "start shell")
	}

	fetcher := spinnerFetcher{fetch.NewHTTPFetcher(10 * time.Second)}
	keys := jwk.NewKeySet()

	sh.AddCommand(&jsh.Command{
		Name:        "keygen",
		Description: "Generate a key and add it to the in-memory key set",
		Usage:       "keygen <alg> [kid]",
		Run: func(arg string) string {
			fields := strings.Fields(arg)
			if len(fields) == 0 {
				return "usage: keygen <alg> [kid]"
			}
			key, err := jwk.New(jwa.Alg(fields[0]))
			if err != nil {
				return err.Error()
			}
			if len(fields) > 1 {
				key.SetID(fields[1])
			}
			keys.Add(key)
			return fmt.Sprintf("generated key %q (%s)", key.ID(), key.Alg())
		},
	})

	sh.AddCommand(&jsh.Command{
		Name:        "sign",
		Description: "Sign a payload (compact serialization) with a key from the set",
		Usage:       "sign <kid> <payload>",
		Run: func(arg string) string {
			fields := strings.SplitN(arg, " ", 2)
			if len(fields) != 2 {
				return "usage: sign <kid> <payload>"
			}
			key, ok := keys.Find(fields[0])
			if !ok {
				return fmt.Sprintf("no such key %q", fields[0])
			}
			j := jws.New()
			j.SetPayload([]byte(fields[1]))
			if err := j.AddSigningKey(key); err != nil {
				return err.Error()
			}
			out, err := j.SerializeCompact()
			if err != nil {
				return err.Error()
			}
			return out
		},
	})

	sh.AddCommand(&jsh.Command{
		Name:        "verify",
		Description: "Verify a compact JWS against the in-memory key set",
		Usage:       "verify <token>",
		Run: func(arg string) string {
			token, err := jws.Parse(strings.TrimSpace(arg), jws.All, fetcher)
			if err != nil {
				return err.Error()
			}
			for _, key := range keys.Keys() {
				if err := token.AddVerificationKey(key); err != nil {
					return err.Error()
				}
			}
			return token.Verify(nil).String()
		},
	})

	sh.AddCommand(&jsh.Command{
		Name:        "keys",
		Description: "List the keys currently held in the in-memory key set",
		Run: func(_ string) string {
			enc, err := json.MarshalIndent(keys.Export(true), "", "  ")
			if err != nil {
				return err.Error()
			}
			return string(enc)
		},
	})

	sh.Start()
	return nil
}
