package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/sieve/pkg/adapters/fs"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the persistent result index",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [path]",
	Short: "Remove the persistent result index",
	Long: `Clear deletes the vault's index file so the next check recomputes every
document. Use it after editing the schema by hand or when the index is suspect.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		vault := resolveVaultArg(args)

		v, err := loadConfig(vault)
		if err != nil {
			fatal("failed to load configuration", err)
		}

		index := fs.NewIndex(vault, v.GetString(cfgKeySystemDir))
		if err := index.Clear(); err != nil {
			fatal("failed to clear index", err)
		}
		fmt.Println("index cleared")
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
