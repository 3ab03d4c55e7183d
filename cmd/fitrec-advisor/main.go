// Command fitrec-advisor is a standalone metrics advisor. It reads
// --age, --height and --weight, writes one JSON result to stdout and exits
// non-zero with {"error": ...} on failure, so it can back the "process"
// advisor mode of another fitrec instance.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/meltforce/fitrec/internal/advisor"
	"github.com/meltforce/fitrec/internal/catalog"
)

func main() {
	age := flag.Float64("age", 0, "age in years")
	height := flag.Float64("height", 0, "height in cm")
	weight := flag.Float64("weight", 0, "weight in kg")
	catalogPath := flag.String("catalog", "", "YAML catalog file (embedded catalog when empty)")
	printSchema := flag.Bool("schema", false, "print the result JSON Schema and exit")
	flag.Parse()

	if *printSchema {
		b, err := advisor.ResultSchemaJSON()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(string(b))
		return
	}

	// stdout carries the result, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if err := run(context.Background(), os.Stdout, advisor.Metrics{Age: *age, Height: *height, Weight: *weight}, *catalogPath); err != nil {
		log.Error("advise failed", "error", err)
		_ = json.NewEncoder(os.Stdout).Encode(map[string]string{"error": err.Error()})
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, m advisor.Metrics, catalogPath string) error {
	if !m.Complete() {
		return fmt.Errorf("--age, --height and --weight are required")
	}

	var src catalog.Source = catalog.EmbeddedSource{}
	if catalogPath != "" {
		src = catalog.FileSource{Path: catalogPath}
	}
	cat, err := src.LoadCatalog(ctx)
	if err != nil {
		return err
	}

	res, err := advisor.NewRuleAdvisor(cat).Advise(ctx, m)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(res)
}
