// Package cmd holds the registryctl subcommands.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "registryctl",
	Short: "Operator tool for the contribution registry",
	Long: `registryctl mints development access tokens and computes the content
fingerprints the registry indexes submissions by.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(hashCmd)
}
