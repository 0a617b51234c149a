// helink links independently assembled FHE kernels into one program.
// The kernel execution trace decides which kernel streams take part and
// in which order; kernel-local variable names are rewritten to the
// global names bound by each trace row.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/sarchlab/helink/isa"
	"github.com/sarchlab/helink/linker"
	"github.com/tebeka/atexit"
)

var (
	configFile = flag.String("config", "", "YAML run configuration file; flags below override it")
	traceFile  = flag.String("trace", "", "kernel execution trace file")
	inputDir   = flag.String("input_dir", "", "directory holding the per-kernel stream files")
	outputDir  = flag.String("output_dir", "", "directory for the merged output files")
	outPrefix  = flag.String("output_prefix", "", "prefix for the merged output files")
	noComments = flag.Bool("suppress_comments", false, "strip instruction comments from the output")
)

func buildConfig() (*linker.RunConfig, error) {
	cfg := &linker.RunConfig{}
	if *configFile != "" {
		loaded, err := linker.LoadRunConfig(*configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if *traceFile != "" {
		cfg.TraceFile = *traceFile
	}
	if *inputDir != "" {
		cfg.InputDir = *inputDir
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *outPrefix != "" {
		cfg.OutputPrefix = *outPrefix
	}
	if *noComments {
		cfg.SuppressComments = true
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

func main() {
	flag.Parse()

	cfg, err := buildConfig()
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}
	fmt.Print(cfg)
	fmt.Println()

	report, err := linker.Link(isa.NewCounter(), cfg)
	if err != nil {
		log.Fatalf("Linking failed: %v", err)
	}

	report.WriteTable(os.Stdout)
	fmt.Printf("\nProgram variables: %d\n", report.Variables)
	fmt.Println("Output written to files:")
	for _, f := range report.Output.All() {
		fmt.Println("  ", f)
	}
	atexit.Exit(0)
}
