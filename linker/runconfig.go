package linker

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RunConfig carries the configuration for one link run.
type RunConfig struct {
	// TraceFile is the kernel execution trace that drives the run: its
	// rows determine which kernel streams to load and in which order to
	// merge them.
	TraceFile string `yaml:"trace_file"`
	// InputDir is the directory holding the per-kernel stream files.
	InputDir string `yaml:"input_dir"`
	// OutputDir receives the merged output files; created if missing.
	OutputDir string `yaml:"output_dir"`
	// OutputPrefix names the merged output files:
	// <output_dir>/<output_prefix>.{minst,cinst,xinst,mem}.
	OutputPrefix string `yaml:"output_prefix"`
	// SuppressComments strips instruction comments from the output.
	SuppressComments bool `yaml:"suppress_comments"`
}

// LoadRunConfig reads a YAML run configuration from filename.
func LoadRunConfig(filename string) (*RunConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	cfg := &RunConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("run config %q: %w", filename, err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults fills the directory fields that may be omitted.
func (cfg *RunConfig) ApplyDefaults() {
	if cfg.InputDir == "" {
		cfg.InputDir = "."
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
}

// Validate checks that the configuration names a complete run.
func (cfg *RunConfig) Validate() error {
	if cfg.TraceFile == "" {
		return errors.New("trace_file is required")
	}
	if cfg.OutputPrefix == "" {
		return errors.New("output_prefix is required")
	}
	return nil
}

func (cfg *RunConfig) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "trace_file: %s\n", cfg.TraceFile)
	fmt.Fprintf(&b, "input_dir: %s\n", cfg.InputDir)
	fmt.Fprintf(&b, "output_dir: %s\n", cfg.OutputDir)
	fmt.Fprintf(&b, "output_prefix: %s\n", cfg.OutputPrefix)
	fmt.Fprintf(&b, "suppress_comments: %v\n", cfg.SuppressComments)
	return b.String()
}
