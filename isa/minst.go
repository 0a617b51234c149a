package isa

// MKind identifies a scratchpad transfer queue instruction variant.
type MKind int

const (
	MLoad MKind = iota
	MStore
	MSyncc
)

// mVariant declares the static attributes of one M queue variant.
// srcIdx and dstIdx are the token indices of the variable operand the
// linker may rename; -1 when the variant has no such operand.
type mVariant struct {
	kind      MKind
	name      string
	numTokens int
	srcIdx    int
	dstIdx    int
}

// mVariants is the trial-parse order for the scratchpad transfer queue.
//
//	mload, <spad_dst>, <src_var>
//	mstore, <dst_var>, <spad_src>
//	msyncc, <target>
var mVariants = []mVariant{
	{MLoad, "mload", 3, 2, -1},
	{MStore, "mstore", 3, -1, 1},
	{MSyncc, "msyncc", 2, -1, -1},
}

// MInst is one scratchpad transfer queue instruction.
type MInst struct {
	inst
	Kind   MKind
	srcIdx int
	dstIdx int
}

// MFactory returns the candidate parsers for the scratchpad transfer
// queue in trial order: mload, mstore, msyncc.
func MFactory() []TryParse {
	candidates := make([]TryParse, 0, len(mVariants))
	for _, v := range mVariants {
		candidates = append(candidates, v.tryParse)
	}
	return candidates
}

func (v mVariant) tryParse(c *Counter, tokens []string, comment string) (Instruction, error) {
	base, err := newInst(c, v.name, 0, v.numTokens, tokens, comment)
	if err != nil {
		return nil, err
	}
	return &MInst{inst: base, Kind: v.kind, srcIdx: v.srcIdx, dstIdx: v.dstIdx}, nil
}

// IsLoad reports whether the instruction reads a named variable from
// main memory into the scratchpad.
func (m *MInst) IsLoad() bool { return m.srcIdx >= 0 }

// IsStore reports whether the instruction writes a named variable from
// the scratchpad back to main memory.
func (m *MInst) IsStore() bool { return m.dstIdx >= 0 }

// Source is the source variable operand. Valid only when IsLoad
// reports true; other variants have no source operand to index.
func (m *MInst) Source() string { return m.tokens[m.srcIdx] }

// SetSource rewrites the source variable operand. Valid only when
// IsLoad reports true.
func (m *MInst) SetSource(name string) { m.tokens[m.srcIdx] = name }

// Dest is the destination variable operand. Valid only when IsStore
// reports true.
func (m *MInst) Dest() string { return m.tokens[m.dstIdx] }

// SetDest rewrites the destination variable operand. Valid only when
// IsStore reports true.
func (m *MInst) SetDest(name string) { m.tokens[m.dstIdx] = name }
