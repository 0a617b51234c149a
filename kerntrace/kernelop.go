package kerntrace

import (
	"fmt"
	"slices"
	"strings"
)

// ContextConfig describes the FHE scheme context of one kernel
// invocation.
type ContextConfig struct {
	Scheme        string
	PolyModDegree int
	KeyRNSTerms   int
}

// validKernelOps are the kernel operation names the linker accepts.
var validKernelOps = []string{
	"add",
	"sub",
	"mul",
	"relin",
	"mod_switch",
	"add_plain",
	"rotate",
	"ntt",
	"intt",
	"square",
	"mul_plain",
	"rescale",
}

// validSchemes are the encryption schemes the linker accepts.
var validSchemes = []string{"bgv", "ckks", "bfv"}

// KernelOp is one kernel invocation parsed from a trace row. It is
// immutable after construction and is consumed exactly once by the
// remap pass of its matching kernel instantiation.
type KernelOp struct {
	name  string
	ctx   ContextConfig
	vars  []KernVar
	level int
}

// NewKernelOp validates the operation name, scheme, and bound argument
// strings, and derives the operation's RNS level from its inputs.
func NewKernelOp(name string, ctx ContextConfig, args []string) (*KernelOp, error) {
	if !slices.Contains(validKernelOps, strings.ToLower(name)) {
		return nil, fmt.Errorf("%w: invalid kernel operation name %q, valid names are: %s",
			ErrFormat, name, strings.Join(validKernelOps, ", "))
	}
	if !slices.Contains(validSchemes, strings.ToLower(ctx.Scheme)) {
		return nil, fmt.Errorf("%w: invalid encryption scheme %q, valid schemes are: %s",
			ErrFormat, ctx.Scheme, strings.Join(validSchemes, ", "))
	}
	if len(args) < 2 {
		return nil, fmt.Errorf("%w: kernel operation %q must have at least two arguments", ErrFormat, name)
	}

	vars := make([]KernVar, 0, len(args))
	for _, arg := range args {
		v, err := ParseKernVar(arg)
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}

	// The operation level follows the current RNS level of its second
	// argument (the first input; argument 0 is the output).
	level := vars[0].Level
	if len(vars) > 1 {
		level = vars[1].Level
	}

	return &KernelOp{name: name, ctx: ctx, vars: vars, level: level}, nil
}

// Name is the kernel operation identifier, e.g. "add".
func (op *KernelOp) Name() string { return op.name }

// Context is the FHE scheme context of the invocation.
func (op *KernelOp) Context() ContextConfig { return op.ctx }

// Vars are the bound argument variables, in trace column order.
func (op *KernelOp) Vars() []KernVar { return op.vars }

// Level is the RNS level of the invocation.
func (op *KernelOp) Level() int { return op.level }

// FileStem is the expected kernel file stem for the invocation,
// "{scheme}_{name}_{degree}_l{level}_m{keyrns}". The linker looks for
// the invocation's instruction streams under this prefix.
func (op *KernelOp) FileStem() string {
	return fmt.Sprintf("%s_%s_%d_l%d_m%d",
		strings.ToLower(op.ctx.Scheme),
		strings.ToLower(op.name),
		op.ctx.PolyModDegree,
		op.level,
		op.ctx.KeyRNSTerms,
	)
}

func (op *KernelOp) String() string {
	return fmt.Sprintf("KernelOp(name=%s)", op.name)
}
