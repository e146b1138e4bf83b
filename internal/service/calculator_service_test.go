package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/fibmatrix/internal/errors"
	"github.com/agbru/fibmatrix/internal/logging"
	"github.com/agbru/fibmatrix/pkg/fibonacci"
)

// mockCalculator implements fibonacci.Calculator for testing.
type mockCalculator struct {
	result fibonacci.Scalar
	err    error
	calls  int
}

func (m *mockCalculator) Name() string { return "mock" }

func (m *mockCalculator) Calculate(ctx context.Context, n uint8) (fibonacci.Scalar, error) {
	m.calls++
	if m.err != nil {
		return fibonacci.Scalar{}, m.err
	}
	return m.result, nil
}

func TestNewCalculatorService(t *testing.T) {
	t.Parallel()
	svc := NewCalculatorService()
	require.NotNil(t, svc)
	assert.Len(t, svc.calculators, 2)
	assert.Contains(t, svc.calculators, fibonacci.PolicyWrap)
	assert.Contains(t, svc.calculators, fibonacci.PolicyError)
	assert.Nil(t, svc.metrics)
}

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		n         uint64
		policy    fibonacci.OverflowPolicy
		want      string
		wantExact bool
		wantErr   error
	}{
		{name: "zero", n: 0, want: "0", wantExact: true},
		{name: "ten", n: 10, policy: fibonacci.PolicyWrap, want: "55", wantExact: true},
		{name: "fifty", n: 50, policy: fibonacci.PolicyError, want: "12586269025", wantExact: true},
		{name: "largest exact", n: 186, policy: fibonacci.PolicyError, want: "332825110087067562321196029789634457848", wantExact: true},
		{name: "wrapped", n: 187, policy: fibonacci.PolicyWrap, wantExact: false},
		{name: "max index wraps", n: 255, wantExact: false},
		{name: "overflow", n: 187, policy: fibonacci.PolicyError, wantErr: fibonacci.ErrOverflow},
		{name: "out of range", n: 256, wantErr: ErrIndexOutOfRange},
		{name: "far out of range", n: 1 << 40, policy: fibonacci.PolicyError, wantErr: ErrIndexOutOfRange},
		{name: "unknown policy", n: 5, policy: "saturate", wantErr: ErrUnknownPolicy},
	}

	svc := NewCalculatorService()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := svc.Calculate(context.Background(), tt.n, tt.policy)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint8(tt.n), res.N)
			assert.Equal(t, tt.wantExact, res.Exact)
			assert.Equal(t, fibonacci.Fib(uint8(tt.n)), res.Value)
			if tt.want != "" {
				assert.Equal(t, tt.want, res.Value.String())
			}
			if tt.policy == "" {
				assert.Equal(t, fibonacci.PolicyWrap, res.Policy)
			} else {
				assert.Equal(t, tt.policy, res.Policy)
			}
		})
	}
}

func TestCalculateRejectsInputAsValidationError(t *testing.T) {
	t.Parallel()
	svc := NewCalculatorService()

	_, err := svc.Calculate(context.Background(), 300, fibonacci.PolicyWrap)
	var valErr apperrors.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "n", valErr.Field)
	assert.Equal(t, uint64(300), valErr.Value)
	assert.EqualError(t, err, "invalid n: 300 exceeds 255")

	_, err = svc.Calculate(context.Background(), 5, "saturate")
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "overflow", valErr.Field)
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestCalculateWrapsCalculatorErrors(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	mock := &mockCalculator{err: boom}
	svc := NewCalculatorService(WithCalculator(fibonacci.PolicyWrap, mock))

	_, err := svc.Calculate(context.Background(), 42, fibonacci.PolicyWrap)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var calcErr apperrors.CalculationError
	require.ErrorAs(t, err, &calcErr)
	assert.Equal(t, uint64(42), calcErr.N)
	assert.Equal(t, 1, mock.calls)
}

func TestCalculateUsesInjectedCalculator(t *testing.T) {
	t.Parallel()
	mock := &mockCalculator{result: fibonacci.Scalar{}}
	svc := NewCalculatorService(WithCalculator(fibonacci.PolicyError, mock), WithCalculator(fibonacci.PolicyWrap, nil))

	_, err := svc.Calculate(context.Background(), 3, fibonacci.PolicyError)
	require.NoError(t, err)
	assert.Equal(t, 1, mock.calls)

	// A nil calculator leaves the default in place.
	res, err := svc.Calculate(context.Background(), 3, fibonacci.PolicyWrap)
	require.NoError(t, err)
	assert.Equal(t, "2", res.Value.String())
}

func TestCalculateCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewCalculatorService()
	_, err := svc.Calculate(ctx, 100, fibonacci.PolicyWrap)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, apperrors.IsContextError(err))
}

func TestMetrics(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	svc := NewCalculatorService(WithMetrics(NewMetrics(reg)))
	ctx := context.Background()

	_, _ = svc.Calculate(ctx, 10, fibonacci.PolicyWrap)
	_, _ = svc.Calculate(ctx, 200, fibonacci.PolicyWrap)
	_, _ = svc.Calculate(ctx, 200, fibonacci.PolicyError)
	_, _ = svc.Calculate(ctx, 300, fibonacci.PolicyError)

	m := svc.metrics
	assert.Equal(t, 2.0, testutil.ToFloat64(m.calculations.WithLabelValues("wrap", statusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.calculations.WithLabelValues("error", statusOverflow)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.calculations.WithLabelValues("error", statusInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.wrapped))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))

	expected := `
# HELP fibmatrix_wrapped_results_total Results returned modulo 2^128 because F(n) exceeded 128 bits
# TYPE fibmatrix_wrapped_results_total counter
fibmatrix_wrapped_results_total 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "fibmatrix_wrapped_results_total"))
}

func TestNilMetricsIsSafe(t *testing.T) {
	t.Parallel()
	var m *Metrics
	assert.NotPanics(t, func() {
		m.observe(fibonacci.PolicyWrap, statusOK, 0)
		m.recordWrapped()
	})
}

func TestCalculateLogs(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := logging.NewLogger(&buf, "service", zerolog.DebugLevel)
	svc := NewCalculatorService(WithLogger(logger))

	_, err := svc.Calculate(context.Background(), 90, fibonacci.PolicyWrap)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "calculation done")
	assert.Contains(t, out, `"rounds":7`)
	assert.Contains(t, out, "2880067194370816120")

	buf.Reset()
	_, err = svc.Calculate(context.Background(), 190, fibonacci.PolicyError)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "calculation failed")
}

func TestResultHex(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    uint8
		want string
	}{
		{0, "0x0"},
		{10, "0x37"},
		{93, "0xa94fad42221f2702"},
	}
	for _, tt := range tests {
		res := Result{N: tt.n, Value: fibonacci.Fib(tt.n)}
		assert.Equal(t, tt.want, res.Hex(), "F(%d)", tt.n)
	}
}
