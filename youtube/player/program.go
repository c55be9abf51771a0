package player

import "fmt"

// OpKind is one of the three primitive descrambling operations.
type OpKind int

const (
	// OpSwap exchanges the first character with the one at index arg mod length.
	OpSwap OpKind = iota
	// OpSplice drops the first arg characters.
	OpSplice
	// OpReverse inverts the whole sequence.
	OpReverse
)

func (k OpKind) String() string {
	switch k {
	case OpSwap:
		return "swap"
	case OpSplice:
		return "splice"
	case OpReverse:
		return "reverse"
	default:
		return "unknown"
	}
}

// Op is a single typed operation. Arg is meaningful for swap and splice.
type Op struct {
	Kind OpKind
	Arg  int
}

func (o Op) String() string {
	if o.Kind == OpReverse {
		return o.Kind.String()
	}
	return fmt.Sprintf("%s(%d)", o.Kind, o.Arg)
}

// Program is the descrambling recipe extracted from one player script
// version. A version's code is immutable, so a Program never expires; it is
// dropped only by explicit cache eviction.
type Program struct {
	Version string
	// SigOps descrambles the s parameter, applied left to right.
	SigOps []Op
	// NOps transforms the throttling n parameter. Empty when the script's
	// n-function did not reduce to the known operation set; the n value then
	// passes through unchanged.
	NOps []Op
}

// apply runs an operation list over the signature characters. Operations
// are non-commutative; order is preserved from the entry function.
func apply(ops []Op, value string) (string, error) {
	if value == "" {
		return "", NewError(ErrCodeInvalidCipherInput, "empty cipher input")
	}
	bs := []byte(value)
	for _, op := range ops {
		switch op.Kind {
		case OpReverse:
			for l, r := 0, len(bs)-1; l < r; l, r = l+1, r-1 {
				bs[l], bs[r] = bs[r], bs[l]
			}
		case OpSwap:
			if len(bs) == 0 {
				return "", NewError(ErrCodeInvalidCipherInput, "swap on empty input", op.String())
			}
			pos := op.Arg % len(bs)
			bs[0], bs[pos] = bs[pos], bs[0]
		case OpSplice:
			if op.Arg < 0 || op.Arg > len(bs) {
				return "", NewError(ErrCodeInvalidCipherInput, "splice index out of bounds", op.String())
			}
			bs = bs[op.Arg:]
		}
	}
	return string(bs), nil
}

// DecipherSignature applies the signature operation list to an obfuscated
// signature. Pure and deterministic; no IO.
func (p *Program) DecipherSignature(signature string) (string, error) {
	return apply(p.SigOps, signature)
}

// ResolveNParam applies the n-parameter transform. A program without a
// recognized n-transform returns the value unchanged.
func (p *Program) ResolveNParam(value string) (string, error) {
	if len(p.NOps) == 0 {
		return value, nil
	}
	return apply(p.NOps, value)
}
