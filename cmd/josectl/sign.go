package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.bryk.io/jose/cli"
	"go.bryk.io/jose/errors"
	"go.bryk.io/jose/jws"
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Sign a payload and produce a JWS",
	RunE:  runSign,
}

func init() {
	params := []cli.Param{
		{Name: "key", Usage: "path to the signing key (PEM or JWK JSON)", ByDefault: "", Required: true},
		{Name: "payload", Usage: "path to the payload to sign; reads stdin if omitted", ByDefault: ""},
		{Name: "mode", Usage: "serialization: compact, flattened or general", ByDefault: "compact"},
		{Name: "zip", Usage: "compress the payload with DEFLATE", ByDefault: false},
	}
	if err := cli.SetupCommandParams(signCmd, params); err != nil {
		panic(err)
	}
}

func runSign(cmd *cobra.Command, _ []string) error {
	keyPath, _ := cmd.Flags().GetString("key")
	payloadPath, _ := cmd.Flags().GetString("payload")
	mode, _ := cmd.Flags().GetString("mode")
	zip, _ := cmd.Flags().GetBool("zip")

	key, err := loadKey(keyPath)
	if err != nil {
		return err
	}
	defer key.Destroy()

	var payload []byte
	if payloadPath == "" {
		payload, err = cli.ReadPipedInput(1 << 20)
	} else {
		payload, err = os.ReadFile(payloadPath)
	}
	if err != nil {
		return errors.Wrap(err, "read payload")
	}

	j := jws.New()
	if zip {
		if err := j.SetZip(true); err != nil {
			return err
		}
	}
	j.SetPayload(payload)
	if err := j.AddSigningKey(key); err != nil {
		return err
	}

	switch mode {
	case "compact":
		out, err := j.SerializeCompact()
		if err != nil {
			return err
		}
		cmd.Println(out)
	case "flattened":
		out, err := j.SerializeJSON(jws.Flattened)
		if err != nil {
			return err
		}
		cmd.Println(string(out))
	case "general":
		out, err := j.SerializeJSON(jws.General)
		if err != nil {
			return err
		}
		cmd.Println(string(out))
	default:
		return errors.Errorf("unknown serialization mode %q", mode)
	}
	return nil
}
