package kerntrace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/sarchlab/helink/isa"
)

// ErrNotFound reports a missing trace file or a missing required trace
// column.
var ErrNotFound = errors.New("not found")

// Required trace columns. Any number of additional "arg*" columns bind
// the invocation's arguments, collected in ascending lexicographic
// order of their column name.
const (
	colInstruction = "instruction"
	colScheme      = "scheme"
	colPolyDegree  = "poly_modulus_degree"
	colKeyRNSTerms = "keyrns_terms"
)

// ParseKernelOps reads a trace file and returns its kernel invocations
// in row order. A missing file fails before any parsing begins.
func ParseKernelOps(filename string) ([]*KernelOp, error) {
	f, err := os.Open(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: trace file %q", ErrNotFound, filename)
		}
		return nil, err
	}
	defer f.Close()

	ops, err := ReadKernelOps(f)
	if err != nil {
		return nil, fmt.Errorf("trace file %q: %w", filename, err)
	}
	return ops, nil
}

// ReadKernelOps parses trace rows from r. The first line is the header
// naming the columns; every following non-empty line is one kernel
// invocation. Rows are tokenized with the same separator and comment
// conventions as instruction lines. A malformed row aborts the whole
// parse; an empty input yields no kernel operations.
func ReadKernelOps(r io.Reader) ([]*KernelOp, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, nil
	}

	header, _ := isa.TokenizeLine(sc.Text())
	colIdx := make(map[string]int, len(header))
	var argCols []string
	for i, name := range header {
		colIdx[name] = i
		if strings.HasPrefix(name, "arg") {
			argCols = append(argCols, name)
		}
	}
	sort.Strings(argCols)

	var ops []*KernelOp
	for lineNum := 2; sc.Scan(); lineNum++ {
		tokens, _ := isa.TokenizeLine(sc.Text())
		if len(tokens) == 0 || tokens[0] == "" {
			continue
		}
		op, err := parseKernelOpRow(tokens, colIdx, argCols, lineNum)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ops, nil
}

func parseKernelOpRow(tokens []string, colIdx map[string]int, argCols []string, lineNum int) (*KernelOp, error) {
	name, err := requiredField(tokens, colIdx, colInstruction, lineNum)
	if err != nil {
		return nil, err
	}
	scheme, err := requiredField(tokens, colIdx, colScheme, lineNum)
	if err != nil {
		return nil, err
	}
	degree, err := requiredIntField(tokens, colIdx, colPolyDegree, lineNum)
	if err != nil {
		return nil, err
	}
	keyRNSTerms, err := requiredIntField(tokens, colIdx, colKeyRNSTerms, lineNum)
	if err != nil {
		return nil, err
	}

	// Blank argument cells are skipped so that rows may bind fewer
	// arguments than the widest row in the trace.
	var args []string
	for _, col := range argCols {
		if idx := colIdx[col]; idx < len(tokens) && tokens[idx] != "" {
			args = append(args, tokens[idx])
		}
	}

	ctx := ContextConfig{Scheme: scheme, PolyModDegree: degree, KeyRNSTerms: keyRNSTerms}
	op, err := NewKernelOp(name, ctx, args)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", lineNum, err)
	}
	return op, nil
}

func requiredField(tokens []string, colIdx map[string]int, name string, lineNum int) (string, error) {
	idx, ok := colIdx[name]
	if !ok {
		return "", fmt.Errorf("%w: required column %q for line %d", ErrNotFound, name, lineNum)
	}
	if idx >= len(tokens) {
		return "", fmt.Errorf("%w: line %d has no field for column %q", ErrFormat, lineNum, name)
	}
	return tokens[idx], nil
}

func requiredIntField(tokens []string, colIdx map[string]int, name string, lineNum int) (int, error) {
	field, err := requiredField(tokens, colIdx, name, lineNum)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: column %q: invalid integer %q", ErrFormat, lineNum, name, field)
	}
	return value, nil
}
