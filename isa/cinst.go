package isa

// CKind identifies a control queue instruction variant.
type CKind int

const (
	BLoad CKind = iota
	BOnes
	CExit
	CLoad
	CNop
	CStore
	CSyncm
	IFetch
	KGLoad
	KGSeed
	KGStart
	NLoad
	XInstFetch
)

type cVariant struct {
	kind      CKind
	name      string
	numTokens int
	srcIdx    int
	dstIdx    int
}

// cVariants is the trial-parse order for the control queue. The
// load-class variants (bload, bones, cload, nload) carry a source
// variable; cstore carries a destination variable; the sync, fetch, and
// key generation variants reference no kernel variables at all.
//
//	bload, <reg>, <src_var>, <col>
//	bones, <src_var>, <col>
//	cexit
//	cload, <spad_dst>, <src_var>
//	cnop, <cycles>
//	cstore, <dst_var>
//	csyncm, <target>
//	ifetch, <bundle>
//	kg_load, <reg>
//	kg_seed, <seed_idx>, <key_idx>
//	kg_start
//	nload, <table>, <src_var>
//	xinstfetch, <xq_addr>, <hbm_addr>
var cVariants = []cVariant{
	{BLoad, "bload", 4, 2, -1},
	{BOnes, "bones", 3, 1, -1},
	{CExit, "cexit", 1, -1, -1},
	{CLoad, "cload", 3, 2, -1},
	{CNop, "cnop", 2, -1, -1},
	{CStore, "cstore", 2, -1, 1},
	{CSyncm, "csyncm", 2, -1, -1},
	{IFetch, "ifetch", 2, -1, -1},
	{KGLoad, "kg_load", 2, -1, -1},
	{KGSeed, "kg_seed", 3, -1, -1},
	{KGStart, "kg_start", 1, -1, -1},
	{NLoad, "nload", 3, 2, -1},
	{XInstFetch, "xinstfetch", 3, -1, -1},
}

// CInst is one control queue instruction.
type CInst struct {
	inst
	Kind   CKind
	srcIdx int
	dstIdx int
}

// CFactory returns the candidate parsers for the control queue in trial
// order (the order of cVariants).
func CFactory() []TryParse {
	candidates := make([]TryParse, 0, len(cVariants))
	for _, v := range cVariants {
		candidates = append(candidates, v.tryParse)
	}
	return candidates
}

func (v cVariant) tryParse(c *Counter, tokens []string, comment string) (Instruction, error) {
	base, err := newInst(c, v.name, 0, v.numTokens, tokens, comment)
	if err != nil {
		return nil, err
	}
	return &CInst{inst: base, Kind: v.kind, srcIdx: v.srcIdx, dstIdx: v.dstIdx}, nil
}

// IsLoad reports whether the instruction reads a named variable into
// the scratchpad or a compute register.
func (ci *CInst) IsLoad() bool { return ci.srcIdx >= 0 }

// IsStore reports whether the instruction writes a named variable out
// of the scratchpad.
func (ci *CInst) IsStore() bool { return ci.dstIdx >= 0 }

// Source is the source variable operand. Valid only when IsLoad
// reports true; other variants have no source operand to index.
func (ci *CInst) Source() string { return ci.tokens[ci.srcIdx] }

// SetSource rewrites the source variable operand. Valid only when
// IsLoad reports true.
func (ci *CInst) SetSource(name string) { ci.tokens[ci.srcIdx] = name }

// Dest is the destination variable operand. Valid only when IsStore
// reports true.
func (ci *CInst) Dest() string { return ci.tokens[ci.dstIdx] }

// SetDest rewrites the destination variable operand. Valid only when
// IsStore reports true.
func (ci *CInst) SetDest(name string) { ci.tokens[ci.dstIdx] = name }
