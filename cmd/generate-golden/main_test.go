package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestGenerate(t *testing.T) {
	t.Parallel()
	data := generate(255)
	if len(data) != 256 {
		t.Fatalf("len = %d, want 256", len(data))
	}

	spot := map[uint64]string{
		0:   "0",
		1:   "1",
		10:  "55",
		50:  "12586269025",
		186: "332825110087067562321196029789634457848",
	}
	for n, want := range spot {
		if got := data[n].Result; got != want {
			t.Errorf("F(%d) = %s, want %s", n, got, want)
		}
	}

	for _, d := range data {
		wantExact := d.N <= 186
		if d.Exact != wantExact {
			t.Errorf("F(%d).Exact = %v, want %v", d.N, d.Exact, wantExact)
		}
		if d.Exact && d.Wrapped != d.Result {
			t.Errorf("F(%d): exact entry has wrapped %s != result %s", d.N, d.Wrapped, d.Result)
		}
		if !d.Exact && d.Wrapped == d.Result {
			t.Errorf("F(%d): inexact entry was not reduced", d.N)
		}
	}
}

// The checked-in golden file must be exactly what the generator produces.
func TestGoldenFileIsUpToDate(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := writeGolden(&buf, generate(255)); err != nil {
		t.Fatalf("writeGolden: %v", err)
	}
	onDisk, err := os.ReadFile(filepath.Join("..", "..", "pkg", "fibonacci", "testdata", "fibonacci_golden.json"))
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), onDisk) {
		t.Error("pkg/fibonacci/testdata/fibonacci_golden.json is stale; run go run ./cmd/generate-golden")
	}
}

func TestRunWritesFile(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "nested")
	if err := run(dir); err != nil {
		t.Fatalf("run: %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, "fibonacci_golden.json"))
	if err != nil {
		t.Fatalf("golden file not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("golden file is empty")
	}
}
