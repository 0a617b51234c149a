// Package linker resolves kernel-local variable names against a trace
// of kernel invocations and merges the renamed instruction streams into
// one program, in invocation order.
package linker

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/sarchlab/helink/isa"
	"github.com/sarchlab/helink/kerntrace"
)

var (
	// ErrFormat reports a kernel-local variable name the remap pass
	// cannot decompose.
	ErrFormat = errors.New("malformed variable name")

	// ErrRange reports a positional variable index with no matching
	// bound argument.
	ErrRange = errors.New("variable index out of range")

	// ErrType reports a remap applied to an unsupported instruction
	// type.
	ErrType = errors.New("unsupported instruction type")
)

// prefixRe extracts the leading alphabetic run and the following digit
// run from a variable prefix, e.g. "ct12" -> ("ct", "12").
var prefixRe = regexp.MustCompile(`([a-zA-Z]+)(\d+)`)

// argumentPrefix reports whether a variable prefix denotes a bound
// kernel argument. Kernel templates name their degree-of-freedom
// arguments positionally ("ct0", "pt1", ...); every other prefix (ntt,
// intt, ones, ipsi, psi, rlk, twid, ...) names fixed infrastructure and
// is never renamed.
func argumentPrefix(prefix string) bool {
	lower := strings.ToLower(prefix)
	return strings.HasPrefix(lower, "ct") || strings.HasPrefix(lower, "pt")
}

// RemapDInstVars renames the data queue's kernel-local variables to
// their global names bound by op. For each instruction, the variable's
// positional index (the digit run in its prefix) selects from op's
// argument variables sorted by label; the prefix is replaced by the
// selected label and the rename is recorded in the returned dictionary.
// Instructions whose prefix does not denote a bound argument are
// skipped. The streams are rewritten in place.
func RemapDInstVars(dinsts []*isa.DInst, op *kerntrace.KernelOp) (map[string]string, error) {
	sortedVars := slices.Clone(op.Vars())
	slices.SortFunc(sortedVars, func(a, b kerntrace.KernVar) int {
		return strings.Compare(a.Label, b.Label)
	})

	remap := make(map[string]string)
	for _, d := range dinsts {
		prefix, rest, found := strings.Cut(d.Var, "_")
		if !found {
			return nil, fmt.Errorf("%w: variable %q has no prefix to split on %q",
				ErrFormat, d.Var, "_")
		}
		if !argumentPrefix(prefix) {
			continue
		}

		m := prefixRe.FindStringSubmatch(prefix)
		if m == nil {
			return nil, fmt.Errorf("%w: variable prefix %q has no number after text",
				ErrFormat, prefix)
		}
		idx, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("%w: variable prefix %q: %v", ErrFormat, prefix, err)
		}
		if idx >= len(sortedVars) {
			return nil, fmt.Errorf("%w: index %d from prefix %q, valid range [0, %d]",
				ErrRange, idx, prefix, len(sortedVars)-1)
		}

		oldVar := d.Var
		newVar := sortedVars[idx].Label + "_" + rest
		d.Var = newVar
		remap[oldVar] = newVar
	}
	return remap, nil
}

// RemapMCInstVars propagates a rename dictionary through a scratchpad
// transfer or control queue stream. Load-class instructions have their
// source replaced, store-class instructions their dest; in both cases
// the old name is also substituted inside the instruction's comment,
// which mirrors its operands. Every item must be an M or C instruction;
// any other type aborts the pass before any field is mutated. An empty
// dictionary makes the whole pass a no-op.
func RemapMCInstVars(insts []isa.Instruction, remap map[string]string) error {
	if len(remap) == 0 {
		return nil
	}

	for _, in := range insts {
		switch in.(type) {
		case *isa.MInst, *isa.CInst:
		default:
			return fmt.Errorf("%w: item %s is not a valid M or C instruction", ErrType, in)
		}
	}

	for _, in := range insts {
		switch v := in.(type) {
		case *isa.MInst:
			switch {
			case v.IsLoad():
				renameSource(v, remap)
			case v.IsStore():
				renameDest(v, remap)
			}
		case *isa.CInst:
			switch {
			case v.IsLoad():
				renameSource(v, remap)
			case v.IsStore():
				renameDest(v, remap)
			}
		}
	}
	return nil
}

// loadInst is the load-class slice of the M/C instruction surface.
type loadInst interface {
	isa.Instruction
	Source() string
	SetSource(string)
}

// storeInst is the store-class slice of the M/C instruction surface.
type storeInst interface {
	isa.Instruction
	Dest() string
	SetDest(string)
}

func renameSource(in loadInst, remap map[string]string) {
	if newVar, ok := remap[in.Source()]; ok {
		in.SetComment(strings.ReplaceAll(in.Comment(), in.Source(), newVar))
		in.SetSource(newVar)
	}
}

func renameDest(in storeInst, remap map[string]string) {
	if newVar, ok := remap[in.Dest()]; ok {
		in.SetComment(strings.ReplaceAll(in.Comment(), in.Dest(), newVar))
		in.SetDest(newVar)
	}
}
