package main

import (
	"github.com/spf13/cobra"
	"go.bryk.io/jose/cli"
)

// conf holds the CLI's configuration defaults, loaded from the local
// "config.yaml" (if present) via the teacher's Viper-backed config handler.
var conf = cli.ConfigHandler("josectl", nil)

var rootCmd = &cobra.Command{
	Use:           "josectl",
	Short:         "Sign, verify and inspect JOSE (JWS/JWK) material",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return conf.ReadFile(true)
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd, signCmd, verifyCmd, jwksCmd, shellCmd)
}
