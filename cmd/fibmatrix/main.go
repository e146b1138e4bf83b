// Command fibmatrix computes Fibonacci numbers F(n) for 0 <= n <= 255 by
// 2x2 matrix exponentiation over 128-bit unsigned integers, either once
// from the command line or behind an HTTP API.
package main

import (
	"context"
	"os"

	"github.com/agbru/fibmatrix/internal/app"
	apperrors "github.com/agbru/fibmatrix/internal/errors"
)

func main() {
	if args := os.Args[1:]; app.HasVersionFlag(args) {
		if app.HasJSONFlag(args) {
			if err := app.PrintVersionJSON(os.Stdout); err != nil {
				os.Exit(apperrors.ExitErrorGeneric)
			}
		} else {
			app.PrintVersion(os.Stdout)
		}
		os.Exit(apperrors.ExitSuccess)
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitErrorConfig)
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
