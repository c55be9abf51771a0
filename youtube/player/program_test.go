package player

import (
	"testing"
)

func TestDecipherSignature_PrimitiveOps(t *testing.T) {
	tests := []struct {
		name string
		ops  []Op
		in   string
		want string
	}{
		{"swap", []Op{{Kind: OpSwap, Arg: 2}}, "abcdef", "cbadef"},
		{"swap wraps modulo length", []Op{{Kind: OpSwap, Arg: 8}}, "abcdef", "cbadef"},
		{"splice", []Op{{Kind: OpSplice, Arg: 3}}, "abcdef", "def"},
		{"reverse", []Op{{Kind: OpReverse}}, "abcdef", "fedcba"},
		{"composite", []Op{{Kind: OpSwap, Arg: 2}, {Kind: OpSplice, Arg: 1}, {Kind: OpReverse}}, "abcdef", "fedab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Program{SigOps: tt.ops}
			got, err := p.DecipherSignature(tt.in)
			if err != nil {
				t.Fatalf("DecipherSignature failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("DecipherSignature(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecipherSignature_OrderSensitive(t *testing.T) {
	forward := &Program{SigOps: []Op{{Kind: OpSwap, Arg: 2}, {Kind: OpSplice, Arg: 1}, {Kind: OpReverse}}}
	swapped := &Program{SigOps: []Op{{Kind: OpSplice, Arg: 1}, {Kind: OpSwap, Arg: 2}, {Kind: OpReverse}}}

	a, err := forward.DecipherSignature("abcdef")
	if err != nil {
		t.Fatal(err)
	}
	b, err := swapped.DecipherSignature("abcdef")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Errorf("Reordering operations must change the result, both gave %q", a)
	}
}

func TestDecipherSignature_InvalidInput(t *testing.T) {
	p := &Program{SigOps: []Op{{Kind: OpReverse}}}
	if _, err := p.DecipherSignature(""); !IsInvalidInput(err) {
		t.Errorf("Empty signature should be invalid input, got %v", err)
	}

	p = &Program{SigOps: []Op{{Kind: OpSplice, Arg: 10}}}
	if _, err := p.DecipherSignature("abc"); !IsInvalidInput(err) {
		t.Errorf("Splice past the end should be invalid input, got %v", err)
	}
}

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{Op{Kind: OpSwap, Arg: 3}, "swap(3)"},
		{Op{Kind: OpSplice, Arg: 1}, "splice(1)"},
		{Op{Kind: OpReverse}, "reverse"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op.String() = %q, want %q", got, tt.want)
		}
	}
}
