// Package sieve is the Composition Root for the sieve application.
//
// It connects the checking engine (Domain Layer) with the infrastructure
// adapters (Record Sources) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// Sieve is a frontmatter linter for toolmakers. It treats a collection of
// documents as a set of metadata records and checks each property's value
// against a declared semantic type, reporting shape mismatches instead of
// fixing them. While the default implementation reads Markdown/YAML/JSON
// files from disk, sieve's core is agnostic, allowing for other sources.
//
// Features:
//
//   - **Hexagonal Architecture**: The checking engine is isolated from storage details.
//   - **Fail Open**: Malformed values, unknown types and broken schemas degrade to "no finding"; a checker must never block the user's workflow.
//   - **Shape Inference**: Mismatch messages name the type a value actually resembles (`expected number, got text`).
//   - **Incremental**: Results are cached per record against its modification marker and persisted under `.sieve/`, so repeated runs skip unchanged files.
//   - **Reactive**: Watch mode re-checks records as files change, debounced per file.
//   - **Default Adapter (FS)**: Out-of-the-box support for vaults of local Markdown files with YAML frontmatter.
//
// Usage:
//
//	// Assemble a service with functional options
//	svc, err := sieve.New("./vault",
//		sieve.WithSchemaPath("types.yaml"),
//		sieve.WithLogger(logger),
//	)
//
//	// Check every record
//	reports, err := svc.CheckVault(ctx, false)
package sieve
