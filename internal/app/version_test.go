package app

import (
	"bytes"
	"encoding/json"
	"runtime"
	"strings"
	"testing"
)

// TestHasVersionFlag tests the HasVersionFlag function.
func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		args     []string
		expected bool
	}{
		{"Empty args", []string{}, false},
		{"No version flag", []string{"-n", "100"}, false},
		{"Long version flag", []string{"--version"}, true},
		{"Short version flag", []string{"-V"}, true},
		{"Version flag with dash", []string{"-version"}, true},
		{"Version flag in middle", []string{"-n", "100", "--version", "-overflow", "error"}, true},
		{"Version flag at end", []string{"-n", "100", "--version"}, true},
		{"Similar but not version", []string{"--verbose"}, false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := HasVersionFlag(tc.args)
			if result != tc.expected {
				t.Errorf("HasVersionFlag(%v) = %v, want %v", tc.args, result, tc.expected)
			}
		})
	}
}

// TestPrintVersion tests the PrintVersion function.
func TestPrintVersion(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintVersion(&buf)

	output := buf.String()

	// Check that output contains expected components
	if !strings.Contains(output, "fibmatrix") {
		t.Error("PrintVersion output should contain 'fibmatrix'")
	}
	if !strings.Contains(output, "n <= 255") {
		t.Error("PrintVersion output should mention the supported index range")
	}
	if !strings.Contains(output, Version) {
		t.Errorf("PrintVersion output should contain version '%s'", Version)
	}
	if !strings.Contains(output, "Commit:") {
		t.Error("PrintVersion output should contain 'Commit:'")
	}
	if !strings.Contains(output, "Built:") {
		t.Error("PrintVersion output should contain 'Built:'")
	}
	if !strings.Contains(output, "Go version:") {
		t.Error("PrintVersion output should contain 'Go version:'")
	}
	if !strings.Contains(output, runtime.Version()) {
		t.Errorf("PrintVersion output should contain Go version '%s'", runtime.Version())
	}
	if !strings.Contains(output, "OS/Arch:") {
		t.Error("PrintVersion output should contain 'OS/Arch:'")
	}
	if !strings.Contains(output, "Exact up to F(186)") {
		t.Error("PrintVersion output should state the exact range")
	}
}

func TestHasJSONFlag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, false},
		{[]string{"--version", "-json"}, true},
		{[]string{"-json=true", "-V"}, true},
		{[]string{"-json=false", "-V"}, false},
		{[]string{"-jsonx"}, false},
	}
	for _, tt := range tests {
		if got := HasJSONFlag(tt.args); got != tt.want {
			t.Errorf("HasJSONFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestPrintVersionJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := PrintVersionJSON(&buf); err != nil {
		t.Fatalf("PrintVersionJSON: %v", err)
	}

	var got BuildInfo
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	want := BuildInfo{
		Version:       Version,
		Commit:        Commit,
		BuildDate:     BuildDate,
		GoVersion:     runtime.Version(),
		Platform:      runtime.GOOS + "/" + runtime.GOARCH,
		MaxN:          255,
		MaxExactIndex: 186,
	}
	if got != want {
		t.Errorf("PrintVersionJSON = %+v, want %+v", got, want)
	}
	for _, key := range []string{`"max_n":255`, `"max_exact_index":186`, `"platform":`} {
		if !strings.Contains(buf.String(), key) {
			t.Errorf("output missing %s: %s", key, buf.String())
		}
	}
}
