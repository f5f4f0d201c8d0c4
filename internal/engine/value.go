package engine

import (
	"ikos/internal/ar"
	"ikos/internal/interval"
	"ikos/internal/memloc"
	"ikos/internal/memory"
	"ikos/internal/nullity"
	"ikos/internal/number"
	"ikos/internal/numdomain"
	"ikos/internal/pointsto"
)

// evalScalar resolves an AR value to its abstract integer interval under
// num: a variable resolves through the current environment, an integer
// constant is a singleton, and anything else (float, pointer
// bit-patterns) is unknown at the integer level.
func evalScalar(num numdomain.IntervalDomain[*ar.Variable], v ar.Value) interval.Interval[number.Z] {
	switch val := v.(type) {
	case ar.VarValue:
		return num.Get(val.Var)
	case ar.IntConstant:
		return interval.Singleton(number.NewZ(val.Value))
	default:
		return interval.Top[number.Z]()
	}
}

// evalPointer resolves an AR value to its pointer abstract value.
func evalPointer(mem memory.Domain[*ar.Variable], v ar.Value) memory.Pointer {
	switch val := v.(type) {
	case ar.VarValue:
		return mem.PointerOf(val.Var)
	case ar.NullConstant:
		// null points at the absolute-zero location rather than nowhere:
		// an empty points-to set collapses the whole value to Bottom
		// (infeasible), which null must not be, since dereferencing it is
		// a real, reachable fault, not an impossible path.
		return memory.Pointer{
			Points: pointsto.Singleton(memloc.AbsoluteZero),
			Offset: interval.Singleton(number.ZeroZ),
			Null:   nullity.Null,
		}
	default:
		return pointsto.TopValue[*memloc.Location]()
	}
}
