package qsim

import "strings"

// Syndrome is an ordered sequence of 0/1 parity bits. The repetition
// code produces 2 bits; the Shor code produces 8 (6 bit-flip followed by
// 2 phase-flip).
type Syndrome []int

func (s Syndrome) IsZero() bool {
	for _, b := range s {
		if b != 0 {
			return false
		}
	}
	return true
}

func (s Syndrome) Equal(other Syndrome) bool {
	if len(s) != len(other) {
		return false
	}
	for i, b := range s {
		if b != other[i] {
			return false
		}
	}
	return true
}

func (s Syndrome) Clone() Syndrome {
	if s == nil {
		return nil
	}
	out := make(Syndrome, len(s))
	copy(out, s)
	return out
}

func (s Syndrome) String() string {
	var b strings.Builder
	for _, bit := range s {
		if bit != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

/*
ReconcileSyndromes isolates the error-caused component of a measured
syndrome. When deliberate gates are interleaved with errors, the
intentional gates alone imply an expected syndrome; XORing it against the
actually measured one leaves exactly the bits the errors flipped, which
is what the correction routine consumes. Pure function, no system access.
*/
func ReconcileSyndromes(expected, measured Syndrome) (Syndrome, error) {
	if len(expected) != len(measured) {
		return nil, &ConfigurationError{
			Field:  "syndrome",
			Detail: "expected and measured syndromes differ in length",
		}
	}
	out := make(Syndrome, len(measured))
	for i := range measured {
		out[i] = expected[i] ^ measured[i]
	}
	return out, nil
}
