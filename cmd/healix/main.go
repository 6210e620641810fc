// Command healix runs the symptom matcher from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var catalogPath string

var rootCmd = &cobra.Command{
	Use:   "healix",
	Short: "Match symptom descriptions against the condition catalog",
	Long: `healix ranks catalog conditions against a free-text symptom description
and prints the reply the chat assistant would give.

The built-in catalog is used unless --catalog points to a YAML file.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "healix %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Condition catalog YAML file (default: built-in)")
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(conditionsCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
