// Package service holds the application logic shared by the CLI and the
// HTTP server: index validation, overflow-policy selection, metrics and
// logging around a fibonacci.Calculator.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	apperrors "github.com/agbru/fibmatrix/internal/errors"
	"github.com/agbru/fibmatrix/internal/logging"
	"github.com/agbru/fibmatrix/pkg/fibonacci"
)

var (
	// ErrIndexOutOfRange is returned when n does not fit in 8 bits.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrUnknownPolicy is returned when no calculator handles the policy.
	ErrUnknownPolicy = errors.New("unknown overflow policy")
)

// MaxN is the largest index the service accepts.
const MaxN = math.MaxUint8

// Result is the outcome of one calculation.
type Result struct {
	// N is the requested index.
	N uint8
	// Value is F(N), or F(N) mod 2^128 when Exact is false.
	Value fibonacci.Scalar
	// Exact reports whether Value is the true Fibonacci number.
	Exact bool
	// Policy is the overflow policy that was applied.
	Policy fibonacci.OverflowPolicy
	// Duration is the wall time spent in the calculator.
	Duration time.Duration
}

// Hex renders Value as a 0x-prefixed lowercase hexadecimal string.
func (r Result) Hex() string {
	return "0x" + r.Value.AsBigInt().Text(16)
}

// Service computes Fibonacci numbers on behalf of the presentation layers.
type Service interface {
	// Calculate validates n and computes F(n) under the given policy.
	// An empty policy means fibonacci.PolicyWrap.
	Calculate(ctx context.Context, n uint64, policy fibonacci.OverflowPolicy) (Result, error)
}

// CalculatorService is the default Service implementation.
type CalculatorService struct {
	calculators map[fibonacci.OverflowPolicy]fibonacci.Calculator
	metrics     *Metrics
	logger      logging.Logger
}

var _ Service = (*CalculatorService)(nil)

// Option configures a CalculatorService.
type Option func(*CalculatorService)

// WithCalculator replaces the calculator used for policy. Mostly useful
// for injecting mocks in tests.
func WithCalculator(policy fibonacci.OverflowPolicy, calc fibonacci.Calculator) Option {
	return func(s *CalculatorService) {
		if calc != nil {
			s.calculators[policy] = calc
		}
	}
}

// WithMetrics sets the metrics sink. Without it, metrics are not recorded.
func WithMetrics(m *Metrics) Option {
	return func(s *CalculatorService) {
		s.metrics = m
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(s *CalculatorService) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewCalculatorService creates a service backed by matrix exponentiation
// for both overflow policies.
func NewCalculatorService(opts ...Option) *CalculatorService {
	s := &CalculatorService{
		calculators: map[fibonacci.OverflowPolicy]fibonacci.Calculator{
			fibonacci.PolicyWrap:  fibonacci.MatrixExponentiation{Policy: fibonacci.PolicyWrap},
			fibonacci.PolicyError: fibonacci.MatrixExponentiation{Policy: fibonacci.PolicyError},
		},
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Calculate validates n, selects the calculator for policy and runs it.
//
// Returns:
//   - Result: The computed value and its metadata.
//   - error: a ValidationError whose cause is ErrIndexOutOfRange or
//     ErrUnknownPolicy, or a CalculationError
//     wrapping the calculator's error (e.g. fibonacci.ErrOverflow).
func (s *CalculatorService) Calculate(ctx context.Context, n uint64, policy fibonacci.OverflowPolicy) (Result, error) {
	if policy == "" {
		policy = fibonacci.PolicyWrap
	}
	if n > MaxN {
		s.metrics.observe(policy, statusInvalid, 0)
		return Result{}, apperrors.ValidationError{
			Field:   "n",
			Message: fmt.Sprintf("%d exceeds %d", n, MaxN),
			Value:   n,
			Cause:   ErrIndexOutOfRange,
		}
	}
	calc, ok := s.calculators[policy]
	if !ok {
		s.metrics.observe(policy, statusInvalid, 0)
		return Result{}, apperrors.ValidationError{
			Field:   "overflow",
			Message: fmt.Sprintf("no calculator for policy %q", policy),
			Value:   policy,
			Cause:   ErrUnknownPolicy,
		}
	}

	idx := uint8(n)
	start := time.Now()
	value, err := calc.Calculate(ctx, idx)
	duration := time.Since(start)

	if err != nil {
		s.metrics.observe(policy, classify(err), duration)
		s.logger.Debug("calculation failed",
			logging.Uint64("n", n),
			logging.String("policy", string(policy)),
			logging.Err(err),
		)
		return Result{}, apperrors.CalculationError{N: n, Cause: err}
	}

	res := Result{
		N:        idx,
		Value:    value,
		Exact:    fibonacci.IsExact(idx),
		Policy:   policy,
		Duration: duration,
	}
	s.metrics.observe(policy, statusOK, duration)
	if !res.Exact {
		s.metrics.recordWrapped()
	}
	s.logger.Debug("calculation done",
		logging.Uint64("n", n),
		logging.String("policy", string(policy)),
		logging.Bool("exact", res.Exact),
		logging.Int("rounds", fibonacci.Rounds(idx)),
		logging.Stringer("result", value),
	)
	return res, nil
}

func classify(err error) string {
	switch {
	case errors.Is(err, fibonacci.ErrOverflow):
		return statusOverflow
	case apperrors.IsContextError(err):
		return statusCanceled
	default:
		return statusError
	}
}
