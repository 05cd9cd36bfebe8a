package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/sieve"
)

var (
	watchSchema   string
	watchPattern  string
	watchDebounce time.Duration
	watchNoIndex  bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Re-check documents as they change",
	Long: `Watch runs a full check, then stays attached to the vault and re-checks
each document as it is created or modified, debounced per file. A document
whose problems were fixed is reported as clean once. Interrupt to stop.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		vault := resolveVaultArg(args)

		opts, err := vaultOptions(vault, watchSchema, watchDebounce, watchNoIndex)
		if err != nil {
			fatal("failed to load configuration", err)
		}

		svc, err := sieve.New(vault, opts...)
		if err != nil {
			fatal("failed to open vault", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Initial pass, so the watch starts from a known state.
		reports, err := svc.CheckVault(ctx, false)
		if err != nil {
			fatal("initial check failed", err)
		}
		printReports(reports)

		events, err := svc.Watch(ctx, watchPattern)
		if err != nil {
			fatal("watch failed", err)
		}
		fmt.Fprintln(os.Stderr, "watching for changes (interrupt to stop)")

		for ce := range events {
			if len(ce.Findings) == 0 {
				fmt.Printf("%s: clean\n", ce.ID)
				continue
			}
			for _, f := range ce.Findings {
				fmt.Printf("%s: %s: %s\n", ce.ID, f.Property, f.Message)
			}
		}

		// Persist what the incremental passes computed.
		if err := svc.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchSchema, "schema", "", "Path to the schema document")
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "", "Only watch records matching this glob (default: all)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "Debounce window for change bursts (default 250ms)")
	watchCmd.Flags().BoolVar(&watchNoIndex, "no-index", false, "Do not read or write the persistent result index")
}
