package isa

// XKind identifies a compute queue instruction variant.
type XKind int

const (
	XAdd XKind = iota
	XSub
	XMul
	XMuli
	XMac
	XMaci
	XNTT
	XINTT
	XTwNTT
	XTwiNTT
	XRShuffle
	XMove
	XStore
	XExit
	XNop
)

type xVariant struct {
	kind      XKind
	name      string
	numTokens int
}

// xVariants is the trial-parse order for the compute queue. Compute
// instructions operate on scratchpad registers only; the linker carries
// them through unchanged, so no operand indices are declared.
var xVariants = []xVariant{
	{XAdd, "add", 5},
	{XSub, "sub", 5},
	{XMul, "mul", 5},
	{XMuli, "muli", 5},
	{XMac, "mac", 6},
	{XMaci, "maci", 6},
	{XNTT, "ntt", 8},
	{XINTT, "intt", 8},
	{XTwNTT, "twntt", 8},
	{XTwiNTT, "twintt", 8},
	{XRShuffle, "rshuffle", 7},
	{XMove, "move", 3},
	{XStore, "xstore", 2},
	{XExit, "bexit", 1},
	{XNop, "nop", 2},
}

// XInst is one compute queue instruction.
type XInst struct {
	inst
	Kind XKind
}

// XFactory returns the candidate parsers for the compute queue in trial
// order (the order of xVariants).
func XFactory() []TryParse {
	candidates := make([]TryParse, 0, len(xVariants))
	for _, v := range xVariants {
		candidates = append(candidates, v.tryParse)
	}
	return candidates
}

func (v xVariant) tryParse(c *Counter, tokens []string, comment string) (Instruction, error) {
	base, err := newInst(c, v.name, 0, v.numTokens, tokens, comment)
	if err != nil {
		return nil, err
	}
	return &XInst{inst: base, Kind: v.kind}, nil
}
