package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/sieve"
)

var (
	checkSchema  string
	checkJSON    bool
	checkForce   bool
	checkQuiet   bool
	checkNoIndex bool
)

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Check every document's frontmatter against the declared types",
	Long: `Check scans the vault, validates each declared property's value shape
and prints one line per mismatch. Unchanged files are served from the result
index unless --force is given.

Exit codes: 0 clean, 1 mismatches found, 2 hard error (bad vault path).`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		vault := resolveVaultArg(args)

		opts, err := vaultOptions(vault, checkSchema, 0, checkNoIndex)
		if err != nil {
			fatal("failed to load configuration", err)
		}

		svc, err := sieve.New(vault, opts...)
		if err != nil {
			fatal("failed to open vault", err)
		}

		reports, err := svc.CheckVault(context.Background(), checkForce)
		if err != nil {
			fatal("check failed", err)
		}

		if checkJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(reports); err != nil {
				fatal("failed to encode JSON", err)
			}
		} else if !checkQuiet {
			printReports(reports)
		}

		if len(reports) > 0 {
			os.Exit(1)
		}
	},
}

func printReports(reports []sieve.RecordReport) {
	total := 0
	for _, r := range reports {
		for _, f := range r.Findings {
			fmt.Printf("%s: %s: %s\n", r.ID, f.Property, f.Message)
			total++
		}
	}

	if total == 0 {
		fmt.Println("vault is clean")
		return
	}
	fmt.Printf("%d problem(s) in %d file(s)\n", total, len(reports))
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkSchema, "schema", "", "Path to the schema document (default: sieve.yaml setting or types.yaml at the vault root)")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output reports in JSON format")
	checkCmd.Flags().BoolVar(&checkForce, "force", false, "Recompute every file, bypassing cached results")
	checkCmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false, "Suppress output; exit code only")
	checkCmd.Flags().BoolVar(&checkNoIndex, "no-index", false, "Do not read or write the persistent result index")
}
