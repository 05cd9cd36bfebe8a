package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/aretw0/sieve"
)

var (
	schemaPath string
	schemaJSON bool
)

var schemaCmd = &cobra.Command{
	Use:   "schema [path]",
	Short: "Show the schema the checker would use for this vault",
	Long: `Schema resolves the type declarations the same way check does
(--schema flag, then sieve.yaml, then types.yaml at the vault root) and prints
the property-to-type mapping. Useful to confirm which document is in effect.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		vault := resolveVaultArg(args)

		resolved, err := resolveSchemaPath(vault, schemaPath)
		if err != nil {
			fatal("failed to load configuration", err)
		}
		if resolved == "" {
			fmt.Println("no schema document found (every property passes)")
			return
		}

		doc, err := sieve.LoadSchema(resolved)
		if err != nil {
			fatal("failed to load schema", err)
		}

		if schemaJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(doc.Types()); err != nil {
				fatal("failed to encode JSON", err)
			}
			return
		}

		fmt.Printf("schema: %s (%d properties)\n", resolved, doc.Len())

		types := doc.Types()
		names := make([]string, 0, len(types))
		for name := range types {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s: %s\n", name, types[name])
		}
	},
}

// resolveSchemaPath applies the same precedence as the checker: explicit flag,
// sieve.yaml setting, then discovery at the vault root. Empty means no schema.
func resolveSchemaPath(vaultDir, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}

	v, err := loadConfig(vaultDir)
	if err != nil {
		return "", err
	}
	if configured := v.GetString(cfgKeySchema); configured != "" {
		if !filepath.IsAbs(configured) {
			configured = filepath.Join(vaultDir, configured)
		}
		return configured, nil
	}

	if found, ok := sieve.DiscoverSchema(vaultDir); ok {
		return found, nil
	}
	return "", nil
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringVar(&schemaPath, "schema", "", "Path to the schema document")
	schemaCmd.Flags().BoolVar(&schemaJSON, "json", false, "Output the mapping in JSON format")
}
