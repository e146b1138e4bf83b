// Package config provides the configuration management for the fibmatrix
// application. It defines the configuration structure, parses command-line
// flags, applies environment and config-file overrides, and validates the
// result.
//
// Precedence, highest first: command-line flags, FIBMATRIX_* environment
// variables, the YAML config file, built-in defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	apperrors "github.com/agbru/fibmatrix/internal/errors"
	"github.com/agbru/fibmatrix/internal/logging"
	"github.com/agbru/fibmatrix/pkg/fibonacci"
)

// EnvPrefix is the prefix of every environment variable read by fibmatrix.
const EnvPrefix = "FIBMATRIX_"

// Default configuration values.
const (
	// DefaultN is the default Fibonacci index to calculate.
	DefaultN uint64 = 90
	// DefaultOverflow is the default overflow policy.
	DefaultOverflow = string(fibonacci.PolicyWrap)
	// DefaultTimeout bounds a CLI run, including start-up.
	DefaultTimeout = 5 * time.Second
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultLogLevel is the default zerolog level.
	DefaultLogLevel = "info"
	// MaxN is the largest accepted index.
	MaxN uint64 = math.MaxUint8
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// N is the index of the Fibonacci number to calculate (0-255).
	N uint64
	// Overflow is the overflow policy name ("wrap" or "error").
	Overflow string
	// Timeout sets the maximum duration of a CLI run.
	Timeout time.Duration
	// JSONOutput prints the result as a JSON object.
	JSONOutput bool
	// HexOutput adds the hexadecimal form of the result.
	HexOutput bool
	// Quiet prints only the value.
	Quiet bool
	// NoColor disables colored output. NO_COLOR is honored as well.
	NoColor bool
	// ServerMode starts the HTTP server instead of computing once.
	ServerMode bool
	// Port is the listening port in server mode.
	Port string
	// LogLevel is the minimum level of emitted log events.
	LogLevel string
	// ConfigFile is the path of an optional YAML config file.
	ConfigFile string
}

// Default returns the configuration used when nothing is overridden.
func Default() AppConfig {
	return AppConfig{
		N:        DefaultN,
		Overflow: DefaultOverflow,
		Timeout:  DefaultTimeout,
		Port:     DefaultPort,
		LogLevel: DefaultLogLevel,
	}
}

// Index returns N as the 8-bit index expected by the fibonacci package.
// It is only meaningful on a validated configuration.
func (c AppConfig) Index() uint8 {
	return uint8(c.N)
}

// Policy returns the parsed overflow policy. It is only meaningful on a
// validated configuration.
func (c AppConfig) Policy() fibonacci.OverflowPolicy {
	p, err := fibonacci.ParseOverflowPolicy(c.Overflow)
	if err != nil {
		return fibonacci.PolicyWrap
	}
	return p
}

// Validate checks the semantic consistency of the configuration.
//
// Returns:
//   - error: A ConfigError describing the first invalid field, or nil.
func (c AppConfig) Validate() error {
	if c.N > MaxN {
		return apperrors.NewConfigError("index n must be between 0 and %d, got %d", MaxN, c.N)
	}
	if _, err := fibonacci.ParseOverflowPolicy(c.Overflow); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.ServerMode && strings.TrimSpace(c.Port) == "" {
		return apperrors.NewConfigError("server mode requires a port")
	}
	if c.JSONOutput && c.Quiet {
		return apperrors.NewConfigError("-json and -quiet are mutually exclusive")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("invalid log level %q", c.LogLevel)
	}
	return nil
}

// ParseConfig parses the command-line arguments into an AppConfig, applies
// the config file and environment overrides, and validates the result.
//
// Parameters:
//   - programName: Used in the usage message.
//   - args: The arguments without the program name (typically os.Args[1:]).
//   - errorWriter: Destination of parse errors and usage text.
//
// Returns:
//   - AppConfig: The populated configuration.
//   - error: flag.ErrHelp, a parse error, or an invalid-configuration error.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := Default()
	fs.Uint64Var(&config.N, "n", DefaultN, fmt.Sprintf("Index n of the Fibonacci number to calculate (0-%d).", MaxN))
	fs.StringVar(&config.Overflow, "overflow", DefaultOverflow, fmt.Sprintf("Behavior above F(%d): 'wrap' (mod 2^128) or 'error'.", fibonacci.MaxIndex))
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output the result in JSON format.")
	fs.BoolVar(&config.HexOutput, "hex", false, "Also display the result in hexadecimal.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - print only the value.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error or disabled.")
	fs.StringVar(&config.ConfigFile, "config", "", "Path to a YAML configuration file.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	if !isFlagSet(fs, "config") {
		config.ConfigFile = getEnvString("CONFIG", config.ConfigFile)
	}
	if config.ConfigFile != "" {
		fc, err := LoadFile(config.ConfigFile)
		if err != nil {
			fmt.Fprintln(errorWriter, "Configuration error:", err)
			return AppConfig{}, err
		}
		fc.apply(&config, fs)
	}

	applyEnvOverrides(&config, fs)

	config.Overflow = strings.ToLower(strings.TrimSpace(config.Overflow))
	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.Join(errors.New("invalid configuration"), err)
	}
	return config, nil
}

// setCustomUsage prints a header before the flag list.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "\nFibonacci Matrix Calculator\n")
		fmt.Fprintf(out, "Computes F(n) for 0 <= n <= %d as a 128-bit integer.\n\n", MaxN)
		fmt.Fprintf(out, "Usage:\n  %s [flags]\n\nFlags:\n", fs.Name())
		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			sig := "-" + f.Name
			if name != "" {
				sig += " " + name
			}
			fmt.Fprintf(out, "  %-22s %s", sig, usage)
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " (default %s)", f.DefValue)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintf(out, "\nEnvironment variables use the %s prefix, e.g. %sN=50.\n\n", EnvPrefix, EnvPrefix)
	}
}
