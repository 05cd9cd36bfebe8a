package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/sieve"
)

func main() {
	count := flag.Int("count", 1000, "Number of notes to generate")
	keep := flag.Bool("keep", false, "Keep the benchmark vault after running")
	flag.Parse()

	// 1. Setup Namespace
	benchDir, err := os.MkdirTemp("", "sieve_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	// Schema under test: every note declares these three.
	schemaDoc := "types:\n  title: text\n  date: date\n  priority: number\n"
	if err := os.WriteFile(filepath.Join(benchDir, "types.yaml"), []byte(schemaDoc), 0644); err != nil {
		panic(err)
	}

	fmt.Printf("Generating %d notes in %s...\n", *count, benchDir)
	startGen := time.Now()

	// Every 10th note carries a type error so the checker has findings
	// to collect, not just clean passes.
	for i := 0; i < *count; i++ {
		priority := fmt.Sprintf("%d", i%5)
		if i%10 == 0 {
			priority = "high"
		}
		content := fmt.Sprintf("---\ntitle: Note %d\ndate: %s\npriority: %s\ntags: [benchmark, test]\n---\n# Benchmark Note %d\nThis is a test note.", i, time.Now().Format("2006-01-02"), priority, i)
		filename := filepath.Join(benchDir, fmt.Sprintf("note_%d.md", i))
		if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
			panic(err)
		}
	}
	fmt.Printf("Generation took: %v\n", time.Since(startGen))

	// 2. Initialize Service
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	service, err := sieve.New(benchDir, sieve.WithLogger(logger))
	if err != nil {
		panic(err)
	}

	ctx := context.TODO()

	// Run 1: Cold (parses and validates everything, populates the index)
	fmt.Println("Running Check (Run 1 - Cold)...")
	startCheck := time.Now()
	reports, err := service.CheckVault(ctx, false)
	if err != nil {
		panic(err)
	}
	duration := time.Since(startCheck)
	fmt.Printf("Run 1 Result: %v (Files with findings: %d)\n", duration, len(reports))

	// Run 2: Warm (fresh service instance, simulating a new CLI command run;
	// results come from the persisted .sieve/index.json, parsing still happens
	// for the mtime markers but inference/validation is skipped).
	service2, err := sieve.New(benchDir, sieve.WithLogger(logger))
	if err != nil {
		panic(err)
	}

	fmt.Println("Running Check (Run 2 - Warm)...")
	startCheck2 := time.Now()
	reports2, err := service2.CheckVault(ctx, false)
	if err != nil {
		panic(err)
	}
	duration2 := time.Since(startCheck2)
	fmt.Printf("Run 2 Result: %v (Files with findings: %d)\n", duration2, len(reports2))

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d notes):\n", *count)
	fmt.Printf("  Cold: %v\n", duration)
	fmt.Printf("  Warm: %v\n", duration2)
	fmt.Printf("--------------------------------------------------\n")
}
