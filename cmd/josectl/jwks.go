package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.bryk.io/jose/cli"
	"go.bryk.io/jose/errors"
	"go.bryk.io/jose/jwk"
)

var jwksCmd = &cobra.Command{
	Use:   "jwks",
	Short: "Inspect and assemble JWK Set documents",
}

var jwksExportCmd = &cobra.Command{
	Use:   "export <key-file>...",
	Short: "Assemble a JWK Set document from one or more key files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runJWKSExport,
}

func init() {
	params := []cli.Param{
		{Name: "out", Usage: "file to write the JWK Set to; defaults to stdout", ByDefault: ""},
		{Name: "public", Usage: "strip private material from every key", ByDefault: true},
	}
	if err := cli.SetupCommandParams(jwksExportCmd, params); err != nil {
		panic(err)
	}
	jwksCmd.AddCommand(jwksExportCmd)
}

func runJWKSExport(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	public, _ := cmd.Flags().GetBool("public")

	set := jwk.Set{}
	for _, path := range args {
		key, err := loadKey(path)
		if err != nil {
			return err
		}
		set.Keys = append(set.Keys, key.Export(public))
		key.Destroy()
	}

	enc, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode JWK Set")
	}
	if out == "" {
		cmd.Println(string(enc))
		return nil
	}
	return errors.WithStack(os.WriteFile(out, enc, 0o600))
}
