// Package isa defines the instruction data model shared by the four
// execution queues of the target ISA: the data queue (DInst), the
// scratchpad transfer queue (MInst), the control queue (CInst), and the
// compute queue (XInst).
//
// Every instruction is an ordered sequence of comma separated string
// tokens plus an optional trailing comment. Each concrete variant
// declares its opcode keyword and a minimum token count; tokens beyond
// the minimum are preserved verbatim so that unrecognized trailing
// fields survive a load/serialize round trip.
package isa

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrFormat reports a malformed instruction: wrong token count,
	// wrong opcode keyword, or a malformed operand field.
	ErrFormat = errors.New("invalid instruction format")

	// ErrParse reports a stream line that no candidate variant accepts.
	ErrParse = errors.New("unparsable instruction line")
)

// Instruction is the token contract shared by all queue variants.
type Instruction interface {
	// ID is the unique nonce assigned to the instruction at
	// construction. IDs are strictly increasing in construction order.
	ID() int
	// Name is the opcode keyword of the instruction.
	Name() string
	// Tokens is the full token list, including tokens beyond the
	// variant's required minimum.
	Tokens() []string
	Comment() string
	SetComment(comment string)
	// ToLine renders the canonical file form of the instruction.
	ToLine() string
}

// TryParse attempts to construct an instruction of one concrete variant
// from pre-tokenized input. Implementations report a variant mismatch by
// returning an error; ParseLine treats any error as "reject, try next".
type TryParse func(c *Counter, tokens []string, comment string) (Instruction, error)

// TokenizeLine splits an instruction line into its comma separated
// fields and the trailing comment, if any. The comment marker is "#";
// everything after the marker is returned verbatim.
func TokenizeLine(line string) (tokens []string, comment string) {
	if line == "" {
		return nil, ""
	}
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		comment = line[idx+1:]
		line = line[:idx]
	}
	for _, field := range strings.Split(line, ",") {
		tokens = append(tokens, strings.TrimSpace(field))
	}
	return tokens, comment
}

// ParseLine tokenizes one raw text line and tries each candidate in
// order. The candidate order is significant and must be deterministic:
// the first candidate that accepts the line wins. The ok result is false
// when no candidate accepts the line; this is a designed non-match, not
// an error.
func ParseLine(c *Counter, line string, candidates []TryParse) (Instruction, bool) {
	tokens, comment := TokenizeLine(line)
	for _, try := range candidates {
		if in, err := try(c, tokens, comment); err == nil {
			return in, true
		}
	}
	return nil, false
}

// inst carries the state common to all queue variants.
type inst struct {
	id      int
	name    string
	tokens  []string
	comment string
}

// newInst validates tokens against a variant's declared opcode keyword
// and minimum token count, then assigns the next session-wide ID.
func newInst(c *Counter, name string, nameIdx, numTokens int, tokens []string, comment string) (inst, error) {
	if len(tokens) < numTokens {
		return inst{}, fmt.Errorf(
			"%w: instruction %s requires at least %d tokens, but %d received",
			ErrFormat, name, numTokens, len(tokens))
	}
	if tokens[nameIdx] != name {
		return inst{}, fmt.Errorf(
			"%w: expected instruction name %s, but %s received",
			ErrFormat, name, tokens[nameIdx])
	}
	return inst{
		id:      c.Next(),
		name:    name,
		tokens:  slices.Clone(tokens),
		comment: comment,
	}, nil
}

func (in *inst) ID() int                   { return in.id }
func (in *inst) Name() string              { return in.name }
func (in *inst) Tokens() []string          { return in.tokens }
func (in *inst) Comment() string           { return in.comment }
func (in *inst) SetComment(comment string) { in.comment = comment }

func (in *inst) ToLine() string {
	return lineFrom(in.tokens, in.comment)
}

func (in *inst) String() string {
	return fmt.Sprintf("%s(%d)", in.name, in.id)
}

func lineFrom(tokens []string, comment string) string {
	line := strings.Join(tokens, ", ")
	if comment != "" {
		line += " #" + comment
	}
	return line
}
