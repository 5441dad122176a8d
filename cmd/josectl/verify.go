package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.bryk.io/jose/cli"
	"go.bryk.io/jose/errors"
	"go.bryk.io/jose/fetch"
	"go.bryk.io/jose/jws"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <token>",
	Short: "Verify a JWS token against a JWKS document",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	params := []cli.Param{
		{Name: "jwks", Usage: "path to a JWKS document with the verification keys", ByDefault: "", Required: true},
		{Name: "timeout", Usage: "timeout in seconds for jku/x5u remote fetches", ByDefault: 5},
	}
	if err := cli.SetupCommandParams(verifyCmd, params); err != nil {
		panic(err)
	}
}

func runVerify(cmd *cobra.Command, args []string) error {
	jwksPath, _ := cmd.Flags().GetString("jwks")
	timeout, _ := cmd.Flags().GetInt("timeout")

	keys, err := loadKeySet(jwksPath)
	if err != nil {
		return err
	}

	fetcher := fetch.NewHTTPFetcher(time.Duration(timeout) * time.Second)

	token, err := jws.Parse(args[0], jws.All, fetcher)
	if err != nil {
		return errors.Wrap(err, "parse token")
	}

	for _, key := range keys.Keys() {
		if err := token.AddVerificationKey(key); err != nil {
			return err
		}
	}

	switch code := token.Verify(nil); code {
	case jws.Ok:
		cmd.Println("OK")
		return nil
	default:
		return errors.Errorf("verification failed: %s", code)
	}
}
