package number

import "math/big"

// Q is an arbitrary-precision rational number.
type Q struct {
	v *big.Rat
}

var ZeroQ = Q{v: big.NewRat(0, 1)}
var OneQ = Q{v: big.NewRat(1, 1)}

// NewQ builds a rational num/den.
func NewQ(num, den int64) Q {
	return Q{v: big.NewRat(num, den)}
}

// QFromZ lifts an integer into Q.
func QFromZ(z Z) Q {
	return Q{v: new(big.Rat).SetInt(z.big())}
}

func (q Q) big() *big.Rat {
	if q.v == nil {
		return big.NewRat(0, 1)
	}
	return q.v
}

func (q Q) Add(o Q) Q { return Q{v: new(big.Rat).Add(q.big(), o.big())} }
func (q Q) Sub(o Q) Q { return Q{v: new(big.Rat).Sub(q.big(), o.big())} }
func (q Q) Mul(o Q) Q { return Q{v: new(big.Rat).Mul(q.big(), o.big())} }
func (q Q) Neg() Q    { return Q{v: new(big.Rat).Neg(q.big())} }

// Div divides by o. The caller must have already rejected a zero divisor.
func (q Q) Div(o Q) Q {
	return Q{v: new(big.Rat).Quo(q.big(), o.big())}
}

func (q Q) Cmp(o Q) int    { return q.big().Cmp(o.big()) }
func (q Q) Sign() int      { return q.big().Sign() }
func (q Q) IsZero() bool   { return q.Sign() == 0 }
func (q Q) String() string { return q.big().RatString() }

func (q Q) Lt(o Q) bool  { return q.Cmp(o) < 0 }
func (q Q) Lte(o Q) bool { return q.Cmp(o) <= 0 }
func (q Q) Gt(o Q) bool  { return q.Cmp(o) > 0 }
func (q Q) Gte(o Q) bool { return q.Cmp(o) >= 0 }
func (q Q) Eq(o Q) bool  { return q.Cmp(o) == 0 }

// IsInteger reports whether q has denominator 1.
func (q Q) IsInteger() bool {
	return q.big().IsInt()
}

// Floor returns the greatest integer <= q.
func (q Q) Floor() Z {
	num := q.big().Num()
	den := q.big().Denom()
	d := new(big.Int).Div(num, den)
	return ZFromBigInt(d)
}

// Ceil returns the smallest integer >= q.
func (q Q) Ceil() Z {
	f := q.Floor()
	if QFromZ(f).Eq(q) {
		return f
	}
	return f.Add(OneZ)
}

func MinQ(a, b Q) Q {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

func MaxQ(a, b Q) Q {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}
