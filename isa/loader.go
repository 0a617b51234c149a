package isa

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

var (
	_ Instruction = (*DInst)(nil)
	_ Instruction = (*MInst)(nil)
	_ Instruction = (*CInst)(nil)
	_ Instruction = (*XInst)(nil)
)

// Stream loading is fail-fast: the first line that no candidate variant
// accepts aborts the whole load with the 1-based line number and the
// raw text. No partial stream is ever returned.

// LoadDInsts parses one data queue stream from r, in input order.
func LoadDInsts(c *Counter, r io.Reader) ([]*DInst, error) {
	var out []*DInst
	err := loadStream(c, r, DFactory(), func(in Instruction) {
		out = append(out, in.(*DInst))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LoadMInsts parses one scratchpad transfer queue stream from r.
func LoadMInsts(c *Counter, r io.Reader) ([]*MInst, error) {
	var out []*MInst
	err := loadStream(c, r, MFactory(), func(in Instruction) {
		out = append(out, in.(*MInst))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LoadCInsts parses one control queue stream from r.
func LoadCInsts(c *Counter, r io.Reader) ([]*CInst, error) {
	var out []*CInst
	err := loadStream(c, r, CFactory(), func(in Instruction) {
		out = append(out, in.(*CInst))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LoadXInsts parses one compute queue stream from r.
func LoadXInsts(c *Counter, r io.Reader) ([]*XInst, error) {
	var out []*XInst
	err := loadStream(c, r, XFactory(), func(in Instruction) {
		out = append(out, in.(*XInst))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func loadStream(c *Counter, r io.Reader, candidates []TryParse, emit func(Instruction)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		in, ok := ParseLine(c, line, candidates)
		if !ok {
			return fmt.Errorf("%w: line %d: %q", ErrParse, n, line)
		}
		emit(in)
	}
	return sc.Err()
}

// LoadDInstsFromFile loads a data queue stream from filename.
func LoadDInstsFromFile(c *Counter, filename string) ([]*DInst, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	out, err := LoadDInsts(c, f)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", filename, err)
	}
	return out, nil
}

// LoadMInstsFromFile loads a scratchpad transfer queue stream from
// filename.
func LoadMInstsFromFile(c *Counter, filename string) ([]*MInst, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	out, err := LoadMInsts(c, f)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", filename, err)
	}
	return out, nil
}

// LoadCInstsFromFile loads a control queue stream from filename.
func LoadCInstsFromFile(c *Counter, filename string) ([]*CInst, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	out, err := LoadCInsts(c, f)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", filename, err)
	}
	return out, nil
}

// LoadXInstsFromFile loads a compute queue stream from filename.
func LoadXInstsFromFile(c *Counter, filename string) ([]*XInst, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	out, err := LoadXInsts(c, f)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", filename, err)
	}
	return out, nil
}
