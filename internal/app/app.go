package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/agbru/fibmatrix/internal/cli"
	"github.com/agbru/fibmatrix/internal/config"
	apperrors "github.com/agbru/fibmatrix/internal/errors"
	"github.com/agbru/fibmatrix/internal/logging"
	"github.com/agbru/fibmatrix/internal/server"
	"github.com/agbru/fibmatrix/internal/service"
	"github.com/agbru/fibmatrix/internal/ui"
	"github.com/agbru/fibmatrix/pkg/fibonacci"
)

// Application represents the fibmatrix application instance.
// It encapsulates the configuration and runs either a one-shot
// calculation or the HTTP server.
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Service computes results in CLI mode. Server mode builds its own,
	// wired to the server's metrics registry.
	Service service.Service
	// Logger receives diagnostic events on ErrWriter.
	Logger logging.Logger
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output and logs.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	// args[0] is program name, args[1:] are the actual arguments
	programName := "fibmatrix"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	// Validated by ParseConfig.
	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger := logging.NewLogger(errWriter, "fibmatrix", level)

	return &Application{
		Config:    cfg,
		Service:   service.NewCalculatorService(service.WithLogger(logger)),
		Logger:    logger,
		ErrWriter: errWriter,
	}, nil
}

// Run executes the application in server or CLI mode.
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	// Respects -no-color and the NO_COLOR env var.
	ui.InitTheme(a.Config.NoColor)

	if a.Config.ServerMode {
		return a.runServer(ctx)
	}
	return a.runCalculate(ctx, out)
}

// runServer serves HTTP until ctx is canceled or a signal arrives.
func (a *Application) runServer(ctx context.Context) int {
	ctx, stop := SetupSignals(ctx)
	defer stop()

	srv := server.NewServer(a.Config, server.WithLogger(a.Logger))
	if err := srv.Start(ctx); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runCalculate computes F(n) once and prints it.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	ctx, cancels := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancels.Cleanup()

	theme := ui.GetCurrentTheme()
	policy := a.Config.Policy()

	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, fibonacci.MatrixExponentiation{Policy: policy}, out, theme)
	}

	start := time.Now()
	res, err := a.Service.Calculate(ctx, a.Config.N, policy)
	if err != nil {
		return apperrors.HandleCalculationError(err, time.Since(start), a.ErrWriter, theme)
	}

	a.Logger.Debug("result ready",
		logging.Uint64("n", a.Config.N),
		logging.Bool("exact", res.Exact),
		logging.String("duration", res.Duration.String()),
	)

	outputCfg := cli.OutputConfig{
		HexOutput: a.Config.HexOutput,
		Quiet:     a.Config.Quiet,
		JSON:      a.Config.JSONOutput,
	}
	if err := cli.Display(out, res, outputCfg, theme); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error writing result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: True if the error indicates help was requested.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
