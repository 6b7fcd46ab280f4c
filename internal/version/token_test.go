package version

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Token
		ok    bool
	}{
		{"plain", "1.3.3", Token{1, 3, 3}, true},
		{"v prefix", "v1.3.3", Token{1, 3, 3}, true},
		{"bun-v prefix", "bun-v1.3.3", Token{1, 3, 3}, true},
		{"build metadata stripped", "1.2.3+canary.42", Token{1, 2, 3}, true},
		{"whitespace trimmed", "  1.0.0\n", Token{1, 0, 0}, true},
		{"zeros", "0.0.0", Token{0, 0, 0}, true},
		{"invalid text", "invalid", Token{}, false},
		{"two components", "1.3", Token{}, false},
		{"four components", "1.2.3.4", Token{}, false},
		{"non-numeric component", "1.x.3", Token{}, false},
		{"negative component", "1.-2.3", Token{}, false},
		{"empty", "", Token{}, false},
		{"bare prefix", "bun-v", Token{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			if ok != tt.ok {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenString(t *testing.T) {
	if got := (Token{1, 3, 3}).String(); got != "1.3.3" {
		t.Errorf("String() = %q, want %q", got, "1.3.3")
	}
}

func TestTokenCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Token
		want int
	}{
		{"equal", Token{1, 3, 3}, Token{1, 3, 3}, 0},
		{"major wins", Token{2, 0, 0}, Token{1, 9, 9}, 1},
		{"minor wins", Token{1, 4, 0}, Token{1, 3, 9}, 1},
		{"patch wins", Token{1, 3, 4}, Token{1, 3, 3}, 1},
		{"less", Token{0, 9, 9}, Token{1, 0, 0}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
