package isa

import (
	"fmt"
	"strconv"
)

// DKind identifies a data queue instruction variant.
type DKind int

const (
	DLoad DKind = iota
	DStore
	DKeyGen
)

const (
	dloadName   = "dload"
	dstoreName  = "dstore"
	dkeygenName = "dkeygen"
)

// DInst is one data queue instruction. Var names the variable the
// instruction moves and Address is its word address in main memory.
// Var and Address are authoritative: Tokens and ToLine rebuild the
// operand fields from them, so renaming Var is reflected on output.
//
// Token layouts:
//
//	dload, <subtype>, <address> [, <var>]
//	dstore, <var>, <address>
//	dkeygen, <seed_idx>, <key_idx>, <var>
type DInst struct {
	inst
	Kind    DKind
	Var     string
	Address int
}

// DFactory returns the candidate parsers for the data queue in trial
// order: dload, dstore, dkeygen.
func DFactory() []TryParse {
	return []TryParse{parseDLoad, parseDStore, parseDKeyGen}
}

func parseDLoad(c *Counter, tokens []string, comment string) (Instruction, error) {
	base, err := newInst(c, dloadName, 0, 3, tokens, comment)
	if err != nil {
		return nil, err
	}
	addr, err := parseAddress(tokens[2])
	if err != nil {
		return nil, err
	}
	d := &DInst{inst: base, Kind: DLoad, Address: addr}
	if len(tokens) > 3 {
		d.Var = tokens[3]
	}
	return d, nil
}

func parseDStore(c *Counter, tokens []string, comment string) (Instruction, error) {
	base, err := newInst(c, dstoreName, 0, 3, tokens, comment)
	if err != nil {
		return nil, err
	}
	addr, err := parseAddress(tokens[2])
	if err != nil {
		return nil, err
	}
	return &DInst{inst: base, Kind: DStore, Var: tokens[1], Address: addr}, nil
}

func parseDKeyGen(c *Counter, tokens []string, comment string) (Instruction, error) {
	base, err := newInst(c, dkeygenName, 0, 4, tokens, comment)
	if err != nil {
		return nil, err
	}
	return &DInst{inst: base, Kind: DKeyGen, Var: tokens[3]}, nil
}

func parseAddress(s string) (int, error) {
	addr, err := strconv.Atoi(s)
	if err != nil || addr < 0 {
		return 0, fmt.Errorf("%w: invalid memory address %q", ErrFormat, s)
	}
	return addr, nil
}

// Tokens rebuilds the operand fields from Var and Address so that an
// in-place rename shows up in the serialized form. Tokens beyond the
// variant's layout are passed through verbatim.
func (d *DInst) Tokens() []string {
	switch d.Kind {
	case DLoad:
		tokens := []string{d.name, d.tokens[1], strconv.Itoa(d.Address)}
		if len(d.tokens) > 3 {
			tokens = append(tokens, d.Var)
			tokens = append(tokens, d.tokens[4:]...)
		}
		return tokens
	case DStore:
		tokens := []string{d.name, d.Var, strconv.Itoa(d.Address)}
		return append(tokens, d.tokens[3:]...)
	default: // DKeyGen
		tokens := []string{d.name, d.tokens[1], d.tokens[2], d.Var}
		return append(tokens, d.tokens[4:]...)
	}
}

func (d *DInst) ToLine() string {
	return lineFrom(d.Tokens(), d.comment)
}
