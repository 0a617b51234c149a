package linker

import (
	"fmt"
	"path/filepath"

	"github.com/sarchlab/helink/isa"
	"github.com/sarchlab/helink/kerntrace"
)

// KernelFiles names the on-disk stream files of one kernel. The four
// streams of a kernel share one path prefix and differ by extension.
type KernelFiles struct {
	Dir    string
	Prefix string
	MInst  string
	CInst  string
	XInst  string
	Mem    string
}

// NewKernelFiles derives the stream file paths for prefix under dir.
func NewKernelFiles(dir, prefix string) KernelFiles {
	stem := filepath.Join(dir, prefix)
	return KernelFiles{
		Dir:    dir,
		Prefix: prefix,
		MInst:  stem + ".minst",
		CInst:  stem + ".cinst",
		XInst:  stem + ".xinst",
		Mem:    stem + ".mem",
	}
}

// All returns the four stream file paths.
func (kf KernelFiles) All() []string {
	return []string{kf.MInst, kf.CInst, kf.XInst, kf.Mem}
}

// Kernel bundles one kernel invocation: the trace row it instantiates,
// the four instruction streams loaded for it, and, after RemapVars, the
// invocation's rename dictionary. Each invocation owns its streams and
// its dictionary; dictionaries are never shared across invocations.
type Kernel struct {
	Files  KernelFiles
	Op     *kerntrace.KernelOp
	DInsts []*isa.DInst
	MInsts []*isa.MInst
	CInsts []*isa.CInst
	XInsts []*isa.XInst
	Remap  map[string]string
}

// LoadKernel reads the four instruction streams named by files.
func LoadKernel(c *isa.Counter, files KernelFiles, op *kerntrace.KernelOp) (*Kernel, error) {
	dinsts, err := isa.LoadDInstsFromFile(c, files.Mem)
	if err != nil {
		return nil, err
	}
	minsts, err := isa.LoadMInstsFromFile(c, files.MInst)
	if err != nil {
		return nil, err
	}
	cinsts, err := isa.LoadCInstsFromFile(c, files.CInst)
	if err != nil {
		return nil, err
	}
	xinsts, err := isa.LoadXInstsFromFile(c, files.XInst)
	if err != nil {
		return nil, err
	}
	return &Kernel{
		Files:  files,
		Op:     op,
		DInsts: dinsts,
		MInsts: minsts,
		CInsts: cinsts,
		XInsts: xinsts,
	}, nil
}

// RemapVars computes the invocation's rename dictionary from the data
// queue and propagates it through the scratchpad transfer and control
// queues. The compute queue references scratchpad registers only and is
// carried through unchanged.
func (k *Kernel) RemapVars() error {
	remap, err := RemapDInstVars(k.DInsts, k.Op)
	if err != nil {
		return fmt.Errorf("kernel %s: %w", k.Files.Prefix, err)
	}
	if err := RemapMCInstVars(instructions(k.MInsts), remap); err != nil {
		return fmt.Errorf("kernel %s: %w", k.Files.Prefix, err)
	}
	if err := RemapMCInstVars(instructions(k.CInsts), remap); err != nil {
		return fmt.Errorf("kernel %s: %w", k.Files.Prefix, err)
	}
	k.Remap = remap
	return nil
}

func instructions[T isa.Instruction](insts []T) []isa.Instruction {
	out := make([]isa.Instruction, len(insts))
	for i, in := range insts {
		out[i] = in
	}
	return out
}
