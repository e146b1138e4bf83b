// Package cli renders calculation results for the terminal.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/agbru/fibmatrix/internal/service"
	"github.com/agbru/fibmatrix/internal/ui"
	"github.com/agbru/fibmatrix/pkg/fibonacci"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// HexOutput adds (or, in quiet mode, substitutes) the hexadecimal form.
	HexOutput bool
	// Quiet prints the value alone, for scripting.
	Quiet bool
	// JSON prints a single JSON object.
	JSON bool
}

// JSONResult is the JSON shape of a result. It matches the HTTP API.
type JSONResult struct {
	N              uint8  `json:"n"`
	Result         string `json:"result"`
	Hex            string `json:"hex"`
	Exact          bool   `json:"exact"`
	OverflowPolicy string `json:"overflow_policy"`
	Duration       string `json:"duration"`
}

// NewJSONResult converts a service result to its JSON shape.
func NewJSONResult(res service.Result) JSONResult {
	return JSONResult{
		N:              res.N,
		Result:         res.Value.String(),
		Hex:            res.Hex(),
		Exact:          res.Exact,
		OverflowPolicy: string(res.Policy),
		Duration:       res.Duration.String(),
	}
}

// FormatExecutionDuration formats a duration for display, using
// microseconds or milliseconds for short durations.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "< 1µs"
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatQuietResult formats a result for quiet mode output.
func FormatQuietResult(res service.Result, hexOutput bool) string {
	if hexOutput {
		return res.Hex()
	}
	return res.Value.String()
}

// DisplayQuietResult prints the value alone on one line.
func DisplayQuietResult(out io.Writer, res service.Result, hexOutput bool) {
	fmt.Fprintln(out, FormatQuietResult(res, hexOutput))
}

// DisplayJSON prints res as an indented JSON object.
func DisplayJSON(out io.Writer, res service.Result) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(NewJSONResult(res))
}

// DisplayResult prints the human-readable report for res.
//
// Example (colors stripped):
//
//	F(90) = 2880067194370816120
//	Binary size: 62 bits, 19 digits.
//	Calculation time: 2µs (7 squaring rounds).
func DisplayResult(out io.Writer, res service.Result, hexOutput bool, theme ui.Theme) {
	value := res.Value.String()
	fmt.Fprintf(out, "F(%s) = %s\n", theme.Info.Sprint(res.N), theme.Success.Sprint(value))
	if hexOutput {
		fmt.Fprintf(out, "F(%s) [hex] = %s\n", theme.Info.Sprint(res.N), theme.Success.Sprint(res.Hex()))
	}
	fmt.Fprintf(out, "Binary size: %s bits, %s digits.\n",
		theme.Secondary.Sprint(res.Value.AsBigInt().BitLen()), theme.Secondary.Sprint(len(value)))
	fmt.Fprintf(out, "Calculation time: %s (%d squaring rounds).\n",
		theme.Primary.Sprint(FormatExecutionDuration(res.Duration)), fibonacci.Rounds(res.N))
	if !res.Exact {
		fmt.Fprintln(out, theme.Warn(fmt.Sprintf(
			"Note: F(%d) exceeds 128 bits; the value shown is F(%d) mod 2^128.", res.N, res.N)))
	}
}

// Display writes res in the format selected by cfg.
func Display(out io.Writer, res service.Result, cfg OutputConfig, theme ui.Theme) error {
	switch {
	case cfg.JSON:
		return DisplayJSON(out, res)
	case cfg.Quiet:
		DisplayQuietResult(out, res, cfg.HexOutput)
	default:
		DisplayResult(out, res, cfg.HexOutput, theme)
	}
	return nil
}
