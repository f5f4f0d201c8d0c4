package ar

// Statement is a non-terminating instruction within a basic block. The set
// of concrete kinds below mirrors the AR instruction set: each one maps to
// exactly one execution-engine transfer function.
type Statement interface {
	Position() Position
	statementNode()
}

type base struct{ Pos Position }

func (b base) Position() Position { return b.Pos }
func (base) statementNode()       {}

// Assignment is a direct copy: LHS = RHS.
type Assignment struct {
	base
	LHS *Variable
	RHS Value
}

// UnaryOp names a unary arithmetic/bitwise operator.
type UnaryOp int

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
	UnaryTrunc
	UnarySext
	UnaryZext
	UnaryPtrToInt
	UnaryIntToPtr
	UnaryBitcast
)

// UnaryOperation is LHS = Op(Operand).
type UnaryOperation struct {
	base
	Op      UnaryOp
	LHS     *Variable
	Operand Value
}

// BinaryOp names a binary arithmetic/bitwise operator.
type BinaryOp int

const (
	BinaryAdd BinaryOp = iota
	BinarySub
	BinaryMul
	BinarySDiv
	BinaryUDiv
	BinarySRem
	BinaryURem
	BinaryShl
	BinaryLShr
	BinaryAShr
	BinaryAnd
	BinaryOr
	BinaryXor
)

// BinaryOperation is LHS = Left Op Right.
type BinaryOperation struct {
	base
	Op          BinaryOp
	LHS         *Variable
	Left, Right Value
	// ExactOverflow is true when the source annotates the op as UB on
	// overflow (e.g. nsw/nuw in LLVM); false means wraparound is expected
	// and reported facts about it should never surface.
	ExactOverflow bool
}

// Predicate names a comparison operator.
type Predicate int

const (
	CmpEQ Predicate = iota
	CmpNE
	CmpSLT
	CmpSLE
	CmpSGT
	CmpSGE
	CmpULT
	CmpULE
	CmpUGT
	CmpUGE
)

// Comparison is LHS = (Left Pred Right), a boolean-valued integer result.
type Comparison struct {
	base
	Pred        Predicate
	LHS         *Variable
	Left, Right Value
}

// Allocate is LHS = alloca(ElementType, ArraySize): a new stack/heap
// allocation site, sized in units of ElementType.
type Allocate struct {
	base
	LHS         *Variable
	ElementType Type
	ArraySize   Value
}

// PointerShift is LHS = Base + Offset (a getelementptr-style computation,
// with Offset already resolved to a byte count by the front-end).
type PointerShift struct {
	base
	LHS    *Variable
	Base   Value
	Offset Value
}

// Load is LHS = *Pointer.
type Load struct {
	base
	LHS     *Variable
	Pointer Value
}

// Store is *Pointer = Value.
type Store struct {
	base
	Pointer Value
	Value   Value
}

// ExtractElement is LHS = Aggregate[Offset], reading a scalar field out of
// a struct or array value held in an SSA register (not memory).
type ExtractElement struct {
	base
	LHS       *Variable
	Aggregate Value
	Offset    int
}

// InsertElement is LHS = Aggregate with [Offset] replaced by Value.
type InsertElement struct {
	base
	LHS       *Variable
	Aggregate Value
	Offset    int
	Value     Value
}

// ShuffleVector is LHS = shuffle(Left, Right, Mask), retained from the
// vector instruction set; the engine treats its result as fully unknown
// within its element type.
type ShuffleVector struct {
	base
	LHS         *Variable
	Left, Right Value
	Mask        []int
}

// Intrinsic names a recognized runtime/libc function whose semantics the
// engine models directly instead of treating as an opaque call.
//
// IkosPrintInvariant, IkosPrintValues, and IkosPartitioningVar (the
// remaining members of the closed set the checker front-end recognizes)
// are deliberately not in this enum: they are debugging/partitioning
// directives consumed by a checker pass, not statements the numerical or
// memory transfer functions themselves need to interpret.
type Intrinsic int

const (
	IntrinsicNone Intrinsic = iota
	IntrinsicMalloc
	IntrinsicFree
	IntrinsicMemcpy
	IntrinsicMemset
	IntrinsicMemmove
	IntrinsicAssert
	IntrinsicAbort
	// IntrinsicErrnoLocation is __errno_location(): it returns a pointer
	// to the single process-wide LibcErrno memory location rather than
	// an opaque, unconstrained address.
	IntrinsicErrnoLocation
)

// knownIntrinsics maps a callee's bare name to the Intrinsic it models,
// the classification a front-end lowering a call statement consults so
// the engine never has to pattern-match on Callee strings itself.
var knownIntrinsics = map[string]Intrinsic{
	"malloc":           IntrinsicMalloc,
	"free":             IntrinsicFree,
	"memcpy":           IntrinsicMemcpy,
	"memset":           IntrinsicMemset,
	"memmove":          IntrinsicMemmove,
	"__ikos_assert":    IntrinsicAssert,
	"assert":           IntrinsicAssert,
	"abort":            IntrinsicAbort,
	"__errno_location": IntrinsicErrnoLocation,
}

// ClassifyIntrinsic resolves a callee name to the Intrinsic it models, or
// IntrinsicNone for an ordinary (non-intrinsic) call.
func ClassifyIntrinsic(callee string) Intrinsic {
	return knownIntrinsics[callee]
}

// Call is LHS = Callee(Args...). LHS is nil when the callee returns void.
type Call struct {
	base
	LHS       *Variable
	Callee    string
	Args      []Value
	Intrinsic Intrinsic
}

// LandingPad marks a block as an exception landing pad, binding LHS to the
// caught exception object.
type LandingPad struct {
	base
	LHS *Variable
}

// Unreachable marks a program point the front-end has proven can never
// execute; reaching it at runtime is undefined behavior.
type Unreachable struct {
	base
}
