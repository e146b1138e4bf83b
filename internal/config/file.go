package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/fibmatrix/internal/errors"
)

// FileConfig mirrors AppConfig for the YAML config file. Pointer fields
// distinguish "absent" from the zero value.
//
// Example:
//
//	n: 50
//	overflow: error
//	timeout: 2s
//	server: true
//	port: "9090"
//	log_level: debug
type FileConfig struct {
	N        *uint64 `yaml:"n"`
	Overflow *string `yaml:"overflow"`
	Timeout  *string `yaml:"timeout"`
	JSON     *bool   `yaml:"json"`
	Hex      *bool   `yaml:"hex"`
	Quiet    *bool   `yaml:"quiet"`
	NoColor  *bool   `yaml:"no_color"`
	Server   *bool   `yaml:"server"`
	Port     *string `yaml:"port"`
	LogLevel *string `yaml:"log_level"`
}

// LoadFile reads and decodes a YAML config file. Unknown keys are rejected.
func LoadFile(path string) (FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileConfig{}, apperrors.WrapError(err, "opening config file")
	}
	defer f.Close()
	return DecodeFile(f)
}

// DecodeFile decodes a YAML config document from r.
func DecodeFile(r io.Reader) (FileConfig, error) {
	var fc FileConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return FileConfig{}, apperrors.WrapError(err, "decoding config file")
	}
	if fc.Timeout != nil {
		if _, err := time.ParseDuration(*fc.Timeout); err != nil {
			return FileConfig{}, apperrors.WrapError(err, "decoding config file: invalid timeout %q", *fc.Timeout)
		}
	}
	return fc, nil
}

// apply copies the values present in the file into config, skipping fields
// whose flag was set explicitly.
func (fc FileConfig) apply(config *AppConfig, fs *flag.FlagSet) {
	set := func(name string) bool { return fs != nil && isFlagSet(fs, name) }

	if fc.N != nil && !set("n") {
		config.N = *fc.N
	}
	if fc.Overflow != nil && !set("overflow") {
		config.Overflow = *fc.Overflow
	}
	if fc.Timeout != nil && !set("timeout") {
		// Validated in DecodeFile.
		config.Timeout, _ = time.ParseDuration(*fc.Timeout)
	}
	if fc.JSON != nil && !set("json") {
		config.JSONOutput = *fc.JSON
	}
	if fc.Hex != nil && !set("hex") {
		config.HexOutput = *fc.Hex
	}
	if fc.Quiet != nil && !set("quiet") && !set("q") {
		config.Quiet = *fc.Quiet
	}
	if fc.NoColor != nil && !set("no-color") {
		config.NoColor = *fc.NoColor
	}
	if fc.Server != nil && !set("server") {
		config.ServerMode = *fc.Server
	}
	if fc.Port != nil && !set("port") {
		config.Port = *fc.Port
	}
	if fc.LogLevel != nil && !set("log-level") {
		config.LogLevel = *fc.LogLevel
	}
}
