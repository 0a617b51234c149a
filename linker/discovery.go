package linker

import (
	"fmt"
	"regexp"

	"github.com/sarchlab/helink/isa"
)

var varNameRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// DiscoverMInstVars returns the variable names referenced by a
// scratchpad transfer queue stream, in stream order. Sync instructions
// reference no variables and are skipped. An operand that is not a
// valid variable name aborts the scan.
func DiscoverMInstVars(minsts []*isa.MInst) ([]string, error) {
	var names []string
	for idx, m := range minsts {
		var name string
		switch {
		case m.IsLoad():
			name = m.Source()
		case m.IsStore():
			name = m.Dest()
		default:
			continue
		}
		if !varNameRe.MatchString(name) {
			return nil, fmt.Errorf("%w: invalid variable name %q in instruction %d, %s",
				ErrFormat, name, idx, m.ToLine())
		}
		names = append(names, name)
	}
	return names, nil
}

// DiscoverCInstVars returns the variable names referenced by a control
// queue stream, in stream order.
func DiscoverCInstVars(cinsts []*isa.CInst) ([]string, error) {
	var names []string
	for idx, ci := range cinsts {
		var name string
		switch {
		case ci.IsLoad():
			name = ci.Source()
		case ci.IsStore():
			name = ci.Dest()
		default:
			continue
		}
		if !varNameRe.MatchString(name) {
			return nil, fmt.Errorf("%w: invalid variable name %q in instruction %d, %s",
				ErrFormat, name, idx, ci.ToLine())
		}
		names = append(names, name)
	}
	return names, nil
}
