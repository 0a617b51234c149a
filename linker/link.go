package linker

import (
	"fmt"
	"slices"

	"github.com/sarchlab/helink/isa"
	"github.com/sarchlab/helink/kerntrace"
)

// Link executes one full linking pass: parse the trace, then load,
// remap, and merge each kernel invocation in trace order, and write the
// merged program. The first fault in any kernel aborts the whole run.
func Link(c *isa.Counter, cfg *RunConfig) (*LinkReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ops, err := kerntrace.ParseKernelOps(cfg.TraceFile)
	if err != nil {
		return nil, err
	}
	Trace("TraceParsed", "file", cfg.TraceFile, "kernels", len(ops))

	out := NewKernelFiles(cfg.OutputDir, cfg.OutputPrefix)

	program := NewProgram()
	report := &LinkReport{Output: out}
	varSet := make(map[string]struct{})

	for i, op := range ops {
		files := NewKernelFiles(cfg.InputDir, op.FileStem())
		for _, in := range files.All() {
			if slices.Contains(out.All(), in) {
				return nil, fmt.Errorf("input file %q matches an output file", in)
			}
		}

		Trace("LinkKernel", "index", i+1, "total", len(ops), "prefix", files.Prefix)
		k, err := LoadKernel(c, files, op)
		if err != nil {
			return nil, err
		}
		if err := k.RemapVars(); err != nil {
			return nil, err
		}

		mvars, err := DiscoverMInstVars(k.MInsts)
		if err != nil {
			return nil, fmt.Errorf("kernel %s: %w", files.Prefix, err)
		}
		cvars, err := DiscoverCInstVars(k.CInsts)
		if err != nil {
			return nil, fmt.Errorf("kernel %s: %w", files.Prefix, err)
		}
		for _, name := range mvars {
			varSet[name] = struct{}{}
		}
		for _, name := range cvars {
			varSet[name] = struct{}{}
		}

		program.Append(k)
		report.Kernels = append(report.Kernels, KernelSummary{
			Name:    files.Prefix,
			Scheme:  op.Context().Scheme,
			Level:   op.Level(),
			MInsts:  len(k.MInsts),
			CInsts:  len(k.CInsts),
			XInsts:  len(k.XInsts),
			Renamed: len(k.Remap),
		})
	}
	report.Variables = len(varSet)

	if cfg.SuppressComments {
		program.ClearComments()
	}
	if err := program.WriteFiles(out); err != nil {
		return nil, err
	}
	Trace("OutputWritten",
		"minst", out.MInst,
		"cinst", out.CInst,
		"xinst", out.XInst,
		"mem", out.Mem,
	)
	return report, nil
}
