package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Token is a parsed Bun version triple (major, minor, patch).
// The zero Token together with ok=false from Parse represents an
// unparseable version string.
type Token struct {
	Major int
	Minor int
	Patch int
}

// Parse parses a version string into a Token.
// Accepted prefixes are "bun-v" and "v" (stripped in that order, longest
// first). The remainder must be exactly three dot-separated non-negative
// integers; build metadata after '+' in the patch component is ignored.
// Returns ok=false for anything else.
func Parse(s string) (Token, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "bun-v")
	s = strings.TrimPrefix(s, "v")

	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Token{}, false
	}

	// Drop build metadata from the patch component (e.g. "3+canary").
	parts[2], _, _ = strings.Cut(parts[2], "+")

	nums := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Token{}, false
		}
		nums[i] = n
	}

	return Token{Major: nums[0], Minor: nums[1], Patch: nums[2]}, true
}

// String returns the canonical dotted form, e.g. "1.3.3".
func (t Token) String() string {
	return fmt.Sprintf("%d.%d.%d", t.Major, t.Minor, t.Patch)
}

// Compare returns -1, 0, or 1 ordering t against other lexicographically
// by (major, minor, patch).
func (t Token) Compare(other Token) int {
	if c := cmpInt(t.Major, other.Major); c != 0 {
		return c
	}
	if c := cmpInt(t.Minor, other.Minor); c != 0 {
		return c
	}
	return cmpInt(t.Patch, other.Patch)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
