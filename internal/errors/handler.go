package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/fibmatrix/pkg/fibonacci"
)

// ColorProvider highlights parts of the status line. It keeps this package
// independent of the cli package.
type ColorProvider interface {
	Warn(s string) string
}

// DefaultColorProvider returns text unchanged.
type DefaultColorProvider struct{}

func (d DefaultColorProvider) Warn(s string) string { return s }

// HandleCalculationError prints a one-line status for err and returns the
// matching exit code. A nil err prints nothing and returns ExitSuccess.
//
// Parameters:
//   - err: The error that occurred.
//   - duration: Time spent before the failure; omitted from the message when zero.
//   - out: Destination of the status line.
//   - colors: Color codes to use (nil for none).
//
// Returns:
//   - int: The exit code for the error class.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = DefaultColorProvider{}
	}

	msgSuffix := ""
	if duration > 0 {
		msgSuffix = " after " + colors.Warn(duration.String())
	}

	var cfgErr ConfigError
	var valErr ValidationError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", msgSuffix)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(out, colors.Warn("Status: Canceled"+msgSuffix+"."))
		return ExitErrorCanceled
	case errors.Is(err, fibonacci.ErrOverflow):
		fmt.Fprintf(out, "Status: Failure (Overflow). %v. Use -overflow=wrap to get F(n) mod 2^128.\n", err)
		return ExitErrorOverflow
	case errors.As(err, &cfgErr):
		fmt.Fprintf(out, "Status: Failure (Configuration). %v\n", err)
		return ExitErrorConfig
	case errors.As(err, &valErr):
		fmt.Fprintf(out, "Status: Failure (Invalid input). %v\n", valErr)
		return ExitErrorConfig
	}
	fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	return ExitErrorGeneric
}
