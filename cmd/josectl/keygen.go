package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.bryk.io/jose/cli"
	"go.bryk.io/jose/errors"
	"go.bryk.io/jose/jwa"
	"go.bryk.io/jose/jwk"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new JWK",
	RunE:  runKeygen,
}

func init() {
	params := []cli.Param{
		{Name: "alg", Usage: "signing algorithm (HS256, RS256, ES256, EdDSA, ...)", ByDefault: "ES256"},
		{Name: "kid", Usage: "key identifier to assign; defaults to the key's thumbprint", ByDefault: ""},
		{Name: "out", Usage: "file to write the generated JWK to; defaults to stdout", ByDefault: ""},
		{Name: "public", Usage: "strip private material from the output", ByDefault: false},
	}
	if err := cli.SetupCommandParams(keygenCmd, params); err != nil {
		panic(err)
	}
}

func runKeygen(cmd *cobra.Command, _ []string) error {
	alg, _ := cmd.Flags().GetString("alg")
	kid, _ := cmd.Flags().GetString("kid")
	out, _ := cmd.Flags().GetString("out")
	public, _ := cmd.Flags().GetBool("public")

	key, err := jwk.New(jwa.Alg(alg))
	if err != nil {
		return errors.Wrap(err, "generate key")
	}
	defer key.Destroy()
	if kid == "" {
		if kid, err = key.Thumbprint(); err != nil {
			return errors.Wrap(err, "compute thumbprint")
		}
	}
	key.SetID(kid)

	rec := key.Export(public)
	enc, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode key")
	}
	if out == "" {
		cmd.Println(string(enc))
		return nil
	}
	return errors.WithStack(os.WriteFile(out, enc, 0o600))
}
