package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hashira",
	Short: "Recover a Shamir secret from encoded shares",
	Long: `Hashira: reconstructs the secret constant term of a polynomial from a
threshold set of shares, each encoded in its own base, using exact
integer Lagrange interpolation.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}
