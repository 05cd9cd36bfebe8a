package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/sieve"
)

var (
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sieve",
	Short: "A frontmatter type checker for Markdown vaults",
	Long: `Sieve sifts a vault's frontmatter against declared property types.
It reports values whose shape mismatches the schema (expected number, got text)
and caches results per file so repeated runs skip unchanged documents.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// resolveVaultArg picks the vault directory for a command: the positional
// argument when given, otherwise the nearest vault root above the working
// directory, otherwise the working directory itself.
func resolveVaultArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	wd, err := os.Getwd()
	if err != nil {
		fatal("failed to get working directory", err)
	}
	if root, err := sieve.FindVaultRoot(wd); err == nil {
		return root
	}
	return wd
}
