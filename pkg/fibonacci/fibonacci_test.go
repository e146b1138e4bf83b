package fibonacci

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"
)

func TestFib(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    uint8
		want string
	}{
		{0, "0"},
		{1, "1"},
		{2, "1"},
		{3, "2"},
		{4, "3"},
		{5, "5"},
		{6, "8"},
		{7, "13"},
		{8, "21"},
		{9, "34"},
		{50, "12586269025"},
		{93, "12200160415121876738"},
		{94, "19740274219868223167"},
		{MaxIndex, "332825110087067562321196029789634457848"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("F(%d)", tt.n), func(t *testing.T) {
			t.Parallel()
			if got := Fib(tt.n).String(); got != tt.want {
				t.Errorf("Fib(%d) = %s, want %s", tt.n, got, tt.want)
			}
		})
	}
}

func TestFibMatchesLinearRecurrence(t *testing.T) {
	t.Parallel()
	for n := 0; n <= 255; n++ {
		got, want := Fib(uint8(n)), fibLinear(uint8(n))
		if !got.Equal(want) {
			t.Fatalf("Fib(%d) = %s, linear recurrence gives %s", n, got, want)
		}
	}
}

func TestFibWrapsModulo2To128(t *testing.T) {
	t.Parallel()
	modulus := new(big.Int).Lsh(big.NewInt(1), 128)
	for _, n := range []uint8{187, 200, 255} {
		want := new(big.Int).Mod(fibBig(uint64(n)), modulus)
		if got := Fib(n).AsBigInt(); got.Cmp(want) != 0 {
			t.Errorf("Fib(%d) = %s, want %s (F(n) mod 2^128)", n, got, want)
		}
	}
}

func TestFibChecked(t *testing.T) {
	t.Parallel()

	t.Run("in range", func(t *testing.T) {
		t.Parallel()
		for _, n := range []uint8{0, 1, 50, MaxIndex} {
			got, err := FibChecked(n)
			if err != nil {
				t.Fatalf("FibChecked(%d) unexpected error: %v", n, err)
			}
			if !got.Equal(Fib(n)) {
				t.Errorf("FibChecked(%d) = %s, want %s", n, got, Fib(n))
			}
		}
	})

	t.Run("overflow", func(t *testing.T) {
		t.Parallel()
		for _, n := range []uint8{MaxIndex + 1, 200, 255} {
			_, err := FibChecked(n)
			if !errors.Is(err, ErrOverflow) {
				t.Errorf("FibChecked(%d) error = %v, want ErrOverflow", n, err)
			}
		}
	})

	t.Run("overflow detection agrees with IsExact", func(t *testing.T) {
		t.Parallel()
		for i := 0; i <= 255; i++ {
			n := uint8(i)
			_, err := FibChecked(n)
			if (err == nil) != IsExact(n) {
				t.Errorf("FibChecked(%d) error = %v, IsExact = %v", n, err, IsExact(n))
			}
		}
	})
}

func TestMaxIndexIsTheLastExactIndex(t *testing.T) {
	t.Parallel()
	limit := new(big.Int).Lsh(big.NewInt(1), 128)
	if fibBig(MaxIndex).Cmp(limit) >= 0 {
		t.Errorf("F(%d) does not fit in 128 bits", MaxIndex)
	}
	if fibBig(MaxIndex+1).Cmp(limit) < 0 {
		t.Errorf("F(%d) fits in 128 bits; MaxIndex is too small", MaxIndex+1)
	}
	if !IsExact(MaxIndex) || IsExact(MaxIndex+1) {
		t.Error("IsExact disagrees with MaxIndex")
	}
}

func TestParseOverflowPolicy(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    OverflowPolicy
		wantErr bool
	}{
		{"wrap", PolicyWrap, false},
		{"WRAP", PolicyWrap, false},
		{" error ", PolicyError, false},
		{"", PolicyWrap, false},
		{"saturate", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOverflowPolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOverflowPolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOverflowPolicy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatrixExponentiation_Calculate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("default policy wraps", func(t *testing.T) {
		t.Parallel()
		got, err := MatrixExponentiation{}.Calculate(ctx, 255)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(Fib(255)) {
			t.Errorf("Calculate(255) = %s, want %s", got, Fib(255))
		}
	})

	t.Run("error policy rejects overflow", func(t *testing.T) {
		t.Parallel()
		_, err := MatrixExponentiation{Policy: PolicyError}.Calculate(ctx, 187)
		if !errors.Is(err, ErrOverflow) {
			t.Errorf("expected ErrOverflow, got %v", err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := MatrixExponentiation{}.Calculate(cctx, 10)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("name", func(t *testing.T) {
		t.Parallel()
		if name := (MatrixExponentiation{}).Name(); name == "" {
			t.Error("Name() should not be empty")
		}
	})
}

func TestFibConcurrentCalls(t *testing.T) {
	t.Parallel()
	const workers = 16
	results := make(chan error, workers)
	for w := 0; w < workers; w++ {
		go func() {
			for n := 0; n <= 255; n++ {
				if !Fib(uint8(n)).Equal(fibLinear(uint8(n))) {
					results <- fmt.Errorf("mismatch at n=%d", n)
					return
				}
			}
			results <- nil
		}()
	}
	for w := 0; w < workers; w++ {
		if err := <-results; err != nil {
			t.Error(err)
		}
	}
}
