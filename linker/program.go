package linker

import (
	"bufio"
	"fmt"
	"os"

	"github.com/sarchlab/helink/isa"
)

// Program accumulates renamed kernel streams. Kernels must be appended
// in invocation order; the merged queues preserve per-kernel
// instruction order.
type Program struct {
	dinsts []*isa.DInst
	minsts []*isa.MInst
	cinsts []*isa.CInst
	xinsts []*isa.XInst
}

func NewProgram() *Program {
	return &Program{}
}

// Append merges one renamed kernel into the program.
func (p *Program) Append(k *Kernel) {
	p.dinsts = append(p.dinsts, k.DInsts...)
	p.minsts = append(p.minsts, k.MInsts...)
	p.cinsts = append(p.cinsts, k.CInsts...)
	p.xinsts = append(p.xinsts, k.XInsts...)
}

func (p *Program) DInsts() []*isa.DInst { return p.dinsts }
func (p *Program) MInsts() []*isa.MInst { return p.minsts }
func (p *Program) CInsts() []*isa.CInst { return p.cinsts }
func (p *Program) XInsts() []*isa.XInst { return p.xinsts }

// ClearComments strips the comments from every merged instruction.
func (p *Program) ClearComments() {
	for _, in := range instructions(p.dinsts) {
		in.SetComment("")
	}
	for _, in := range instructions(p.minsts) {
		in.SetComment("")
	}
	for _, in := range instructions(p.cinsts) {
		in.SetComment("")
	}
	for _, in := range instructions(p.xinsts) {
		in.SetComment("")
	}
}

// WriteFiles writes the merged queues to out, one instruction per line:
// the scratchpad transfer, control, and compute queues plus the merged
// memory map.
func (p *Program) WriteFiles(out KernelFiles) error {
	if err := os.MkdirAll(out.Dir, 0o755); err != nil {
		return err
	}
	if err := writeInstFile(out.MInst, instructions(p.minsts)); err != nil {
		return err
	}
	if err := writeInstFile(out.CInst, instructions(p.cinsts)); err != nil {
		return err
	}
	if err := writeInstFile(out.XInst, instructions(p.xinsts)); err != nil {
		return err
	}
	return writeInstFile(out.Mem, instructions(p.dinsts))
}

func writeInstFile(filename string, insts []isa.Instruction) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, in := range insts {
		if _, err := fmt.Fprintln(w, in.ToLine()); err != nil {
			return err
		}
	}
	return w.Flush()
}
