// Command tafcheck validates TAF JSON files against the validation schemas
// and prints per-file results with human-readable error messages.
//
// Usage:
//
//	go run ./cmd/tafcheck [-schema-dir path/to/schemas] taf1.json taf2.json
//
// Without -schema-dir the schemas embedded in the binary are used. The exit
// code is 1 when any file fails validation.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/couchcryptid/taf-validation-service/internal/observability"
	"github.com/couchcryptid/taf-validation-service/internal/schema"
	"github.com/couchcryptid/taf-validation-service/internal/validator"
)

func main() {
	schemaDir := flag.String("schema-dir", "", "directory with taf.json, taf-enriched.json and metaschema.json (default: embedded schemas)")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*schemaDir, files); code != 0 {
		os.Exit(code)
	}
}

func run(schemaDir string, files []string) int {
	var store schema.Store = schema.EmbeddedStore{}
	if schemaDir != "" {
		store = schema.NewDirStore(schemaDir)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	v := validator.New(store, logger, observability.NewMetrics())

	failed := 0
	for _, file := range files {
		raw, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: read %s: %v\n", file, err)
			return 1
		}

		result, err := v.ValidateJSON(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: validate %s: %v\n", file, err)
			return 1
		}

		status := "\033[32mPASS\033[0m"
		if !result.Succeeded {
			status = "\033[31mFAIL\033[0m"
			failed++
		}
		fmt.Printf("  %-42s %s\n", file, status)
		printErrors(result)
	}

	fmt.Println()
	if failed > 0 {
		fmt.Printf("%d of %d files FAILED validation.\n", failed, len(files))
		return 1
	}
	fmt.Printf("All %d files passed validation.\n", len(files))
	return 0
}

func printErrors(result *validator.Result) {
	if result.Succeeded {
		return
	}
	if result.Message != "" {
		fmt.Printf("      %s\n", result.Message)
		return
	}

	pointers := make([]string, 0, len(result.Errors))
	for pointer := range result.Errors {
		pointers = append(pointers, pointer)
	}
	sort.Strings(pointers)
	for _, pointer := range pointers {
		for _, message := range result.Errors[pointer] {
			fmt.Printf("      %-38s %s\n", pointer, message)
		}
	}
}
