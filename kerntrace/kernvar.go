// Package kerntrace models the kernel execution trace consumed by the
// linker: one KernelOp per trace row, each binding a kernel template's
// arguments to concrete ciphertext/plaintext variables.
package kerntrace

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrFormat reports a malformed kernel variable string or trace field.
var ErrFormat = errors.New("invalid trace format")

// KernVar is one trace-bound kernel argument: a named polynomial value
// with its ring dimension and current RNS level.
type KernVar struct {
	Label  string
	Degree int
	Level  int
}

// ParseKernVar parses the dash joined "label-degree-level" form, e.g.
// "input-8192-3". All three fields are required; degree and level must
// be pure digit strings and the label must be non-empty.
func ParseKernVar(s string) (KernVar, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return KernVar{}, fmt.Errorf("%w: kernel variable %q, want label-degree-level", ErrFormat, s)
	}
	if parts[0] == "" {
		return KernVar{}, fmt.Errorf("%w: empty label in kernel variable %q", ErrFormat, s)
	}
	if !isDigits(parts[1]) || !isDigits(parts[2]) {
		return KernVar{}, fmt.Errorf("%w: invalid degree or level in kernel variable %q", ErrFormat, s)
	}
	degree, _ := strconv.Atoi(parts[1])
	level, _ := strconv.Atoi(parts[2])
	return KernVar{Label: parts[0], Degree: degree, Level: level}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
