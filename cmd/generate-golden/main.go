// Command generate-golden writes the golden file used by the fibonacci
// package tests. Values come from a math/big iteration, independent of the
// matrix code under test.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"math/big"
	"os"
	"path/filepath"
)

// GoldenData represents a single test case in the golden file.
type GoldenData struct {
	N uint64 `json:"n"`
	// Result is the exact F(n).
	Result string `json:"result"`
	// Wrapped is F(n) mod 2^128.
	Wrapped string `json:"wrapped"`
	// Exact reports whether F(n) < 2^128.
	Exact bool `json:"exact"`
}

func main() {
	outputDir := flag.String("out", "pkg/fibonacci/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := run(*outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	filename := filepath.Join(outputDir, "fibonacci_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	if err := writeGolden(file, generate(math.MaxUint8)); err != nil {
		return err
	}
	fmt.Printf("Successfully generated golden file at %s\n", filename)
	return nil
}

// generate returns one entry per index 0..maxN.
func generate(maxN uint64) []GoldenData {
	modulus := new(big.Int).Lsh(big.NewInt(1), 128)
	data := make([]GoldenData, 0, maxN+1)

	a, b := big.NewInt(0), big.NewInt(1)
	for n := uint64(0); n <= maxN; n++ {
		wrapped := new(big.Int).Mod(a, modulus)
		data = append(data, GoldenData{
			N:       n,
			Result:  a.String(),
			Wrapped: wrapped.String(),
			Exact:   a.Cmp(modulus) < 0,
		})
		// a, b = b, a+b
		a.Add(a, b)
		a, b = b, a
	}
	return data
}

func writeGolden(w io.Writer, data []GoldenData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
