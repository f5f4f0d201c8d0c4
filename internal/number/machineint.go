package number

import (
	"fmt"
	"math/big"
)

// Width is a supported machine-integer bit width. The analyzer only models
// the widths LLVM lowers scalar integers to; any other width is rejected
// at construction rather than silently truncated.
type Width int

const (
	Width1  Width = 1
	Width8  Width = 8
	Width16 Width = 16
	Width32 Width = 32
	Width64 Width = 64
)

// ValidWidth reports whether w is one of the supported machine-integer
// widths.
func ValidWidth(w int) bool {
	switch Width(w) {
	case Width1, Width8, Width16, Width32, Width64:
		return true
	default:
		return false
	}
}

// MachineInt is a fixed-width, wraparound integer: the value LLVM's i1/i8/
// i16/i32/i64 scalars carry. Signedness is a property of the interpretation,
// not of the bit pattern, mirroring LLVM IR.
type MachineInt struct {
	width  Width
	signed bool
	value  *big.Int // always normalized into the representable range
}

// ErrUnsupportedWidth is returned by NewMachineInt for any width outside
// {1,8,16,32,64}.
type ErrUnsupportedWidth struct{ Width int }

func (e ErrUnsupportedWidth) Error() string {
	return fmt.Sprintf("unsupported machine integer width: %d", e.Width)
}

func modulus(width Width) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(width))
}

func wrap(v *big.Int, width Width, signed bool) *big.Int {
	m := modulus(width)
	r := new(big.Int).Mod(v, m)
	if r.Sign() < 0 {
		r.Add(r, m)
	}
	if signed {
		half := new(big.Int).Rsh(m, 1)
		if r.Cmp(half) >= 0 {
			r.Sub(r, m)
		}
	}
	return r
}

// NewMachineInt builds a MachineInt, wrapping v into the representable
// range for width/signed. It fails only when width is unsupported.
func NewMachineInt(v int64, width int, signed bool) (MachineInt, error) {
	if !ValidWidth(width) {
		return MachineInt{}, ErrUnsupportedWidth{Width: width}
	}
	w := Width(width)
	return MachineInt{width: w, signed: signed, value: wrap(big.NewInt(v), w, signed)}, nil
}

// MachineIntFromZ wraps an arbitrary-precision value into the
// representable range for width/signed, the reduction every machine
// arithmetic result goes through. It fails only when width is
// unsupported.
func MachineIntFromZ(v Z, width int, signed bool) (MachineInt, error) {
	if !ValidWidth(width) {
		return MachineInt{}, ErrUnsupportedWidth{Width: width}
	}
	w := Width(width)
	return MachineInt{width: w, signed: signed, value: wrap(v.big(), w, signed)}, nil
}

// MustMachineInt is NewMachineInt, panicking on an invalid width. Reserved
// for call sites that construct from a compile-time-known width.
func MustMachineInt(v int64, width int, signed bool) MachineInt {
	m, err := NewMachineInt(v, width, signed)
	if err != nil {
		panic(err)
	}
	return m
}

func (m MachineInt) Width() int    { return int(m.width) }
func (m MachineInt) IsSigned() bool { return m.signed }
func (m MachineInt) Z() Z          { return ZFromBigInt(m.value) }

func (m MachineInt) sameShape(o MachineInt) {
	if m.width != o.width || m.signed != o.signed {
		panic("machine integers of mismatched width/signedness combined")
	}
}

func (m MachineInt) bin(o MachineInt, f func(a, b *big.Int) *big.Int) MachineInt {
	m.sameShape(o)
	return MachineInt{width: m.width, signed: m.signed, value: wrap(f(m.value, o.value), m.width, m.signed)}
}

func (m MachineInt) Add(o MachineInt) MachineInt {
	return m.bin(o, func(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) })
}
func (m MachineInt) Sub(o MachineInt) MachineInt {
	return m.bin(o, func(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) })
}
func (m MachineInt) Mul(o MachineInt) MachineInt {
	return m.bin(o, func(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) })
}

// Div performs truncating division. The caller must reject a zero divisor
// via a DivisionByZero structural error before calling.
func (m MachineInt) Div(o MachineInt) MachineInt {
	return m.bin(o, func(a, b *big.Int) *big.Int { return new(big.Int).Quo(a, b) })
}

func (m MachineInt) Mod(o MachineInt) MachineInt {
	return m.bin(o, func(a, b *big.Int) *big.Int { return new(big.Int).Rem(a, b) })
}

func (m MachineInt) Neg() MachineInt {
	return MachineInt{width: m.width, signed: m.signed, value: wrap(new(big.Int).Neg(m.value), m.width, m.signed)}
}

func (m MachineInt) Cmp(o MachineInt) int {
	m.sameShape(o)
	return m.value.Cmp(o.value)
}

func (m MachineInt) IsZero() bool { return m.value.Sign() == 0 }
func (m MachineInt) Sign() int    { return m.value.Sign() }

// MinValue returns the smallest representable value for this width/sign.
func (m MachineInt) MinValue() MachineInt {
	if !m.signed {
		return MachineInt{width: m.width, signed: m.signed, value: big.NewInt(0)}
	}
	half := new(big.Int).Rsh(modulus(m.width), 1)
	return MachineInt{width: m.width, signed: m.signed, value: new(big.Int).Neg(half)}
}

// MaxValue returns the largest representable value for this width/sign.
func (m MachineInt) MaxValue() MachineInt {
	mod := modulus(m.width)
	if !m.signed {
		return MachineInt{width: m.width, signed: m.signed, value: new(big.Int).Sub(mod, big.NewInt(1))}
	}
	half := new(big.Int).Rsh(mod, 1)
	return MachineInt{width: m.width, signed: m.signed, value: new(big.Int).Sub(half, big.NewInt(1))}
}

func (m MachineInt) String() string {
	return m.value.String()
}
