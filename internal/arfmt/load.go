package arfmt

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"

	"ikos/internal/ar"
)

var parser = participle.MustBuild[Program](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(4),
)

// Load reads a textual AR bundle from path and lowers it to an *ar.Bundle.
func Load(path string) (*ar.Bundle, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("arfmt: reading %s: %w", path, err)
	}
	return Parse(path, string(source))
}

// Parse lowers src (named path for diagnostics) to an *ar.Bundle.
func Parse(path, src string) (*ar.Bundle, error) {
	prog, err := parser.ParseString(path, src)
	if err != nil {
		return nil, fmt.Errorf("arfmt: %w", err)
	}
	return lowerBundle(prog.Bundle), nil
}

func lowerBundle(b *Bundle) *ar.Bundle {
	bundle := ar.NewBundle(b.Name, ar.DataLayout{PointerWidth: 64})
	for _, g := range b.Globals {
		bundle.Globals[strings.TrimPrefix(g.Name, "%")] = &ar.GlobalVariable{
			Name:    strings.TrimPrefix(g.Name, "%"),
			Ty:      lowerType(g.Type),
			Initial: lowerGlobalInit(g.Init, lowerType(g.Type)),
		}
	}
	for _, f := range b.Functions {
		fn := lowerFunction(f)
		bundle.Functions[fn.Name] = fn
	}
	return bundle
}

func lowerType(t *Type) ar.Type {
	if t == nil {
		return ar.VoidType{}
	}
	switch t.Name {
	case "ptr":
		return ar.PointerType{}
	case "void":
		return ar.VoidType{}
	}
	signed := strings.HasPrefix(t.Name, "i")
	if !signed && !strings.HasPrefix(t.Name, "u") {
		return ar.VoidType{}
	}
	width, err := strconv.Atoi(t.Name[1:])
	if err != nil {
		return ar.VoidType{}
	}
	return ar.IntegerType{Width: width, Signed: signed}
}

func lowerGlobalInit(v *Value, ty ar.Type) ar.Value {
	if v == nil {
		return ar.UndefConstant{Ty: ty}
	}
	switch {
	case v.Integer != nil:
		if it, ok := ty.(ar.IntegerType); ok {
			return ar.IntConstant{Ty: it, Value: *v.Integer}
		}
		return ar.IntConstant{Ty: ar.IntegerType{Width: 64, Signed: true}, Value: *v.Integer}
	case v.Null:
		return ar.NullConstant{Ty: ar.PointerType{}}
	default:
		return ar.UndefConstant{Ty: ty}
	}
}

// funcScope resolves register names to *ar.Variable within one function,
// and block labels to *ar.BasicBlock so forward references (a branch to
// a block not yet lowered) resolve correctly.
type funcScope struct {
	vars   map[string]*ar.Variable
	blocks map[string]*ar.BasicBlock
}

func newFuncScope() *funcScope {
	return &funcScope{vars: make(map[string]*ar.Variable), blocks: make(map[string]*ar.BasicBlock)}
}

func (s *funcScope) variable(name string, ty ar.Type) *ar.Variable {
	name = strings.TrimPrefix(name, "%")
	if v, ok := s.vars[name]; ok {
		return v
	}
	v := &ar.Variable{Name: name, Ty: ty}
	s.vars[name] = v
	return v
}

func (s *funcScope) block(name string) *ar.BasicBlock {
	name = strings.TrimSuffix(name, ":")
	if b, ok := s.blocks[name]; ok {
		return b
	}
	b := ar.NewBasicBlock(name)
	s.blocks[name] = b
	return b
}

func lowerFunction(f *Function) *ar.Function {
	fn := &ar.Function{Name: f.Name, ReturnType: lowerType(f.Return)}
	scope := newFuncScope()
	for _, p := range f.Params {
		fn.Params = append(fn.Params, scope.variable(p.Name, lowerType(p.Type)))
	}
	if f.External || len(f.Blocks) == 0 {
		return fn
	}

	for _, bd := range f.Blocks {
		scope.block(bd.Name)
	}

	var code *ar.Code
	for i, bd := range f.Blocks {
		b := scope.block(bd.Name)
		for _, st := range bd.Statements {
			b.Statements = append(b.Statements, lowerStmt(st, scope))
		}
		b.Terminator = lowerTerminator(bd.Term, scope)
		if i == 0 {
			code = ar.NewCode(b)
		} else {
			code.AddBlock(b)
		}
	}
	fn.Body = code
	return fn
}

func lowerValue(v *Value, scope *funcScope) ar.Value {
	switch {
	case v == nil:
		return ar.UndefConstant{}
	case v.Register != "":
		return ar.VarValue{Var: scope.variable(v.Register, nil)}
	case v.Null:
		return ar.NullConstant{Ty: ar.PointerType{}}
	case v.Integer != nil:
		return ar.IntConstant{Ty: ar.IntegerType{Width: 64, Signed: true}, Value: *v.Integer}
	default:
		return ar.UndefConstant{}
	}
}

var binaryOps = map[string]ar.BinaryOp{
	"add": ar.BinaryAdd, "sub": ar.BinarySub, "mul": ar.BinaryMul,
	"sdiv": ar.BinarySDiv, "udiv": ar.BinaryUDiv, "srem": ar.BinarySRem, "urem": ar.BinaryURem,
	"shl": ar.BinaryShl, "lshr": ar.BinaryLShr, "ashr": ar.BinaryAShr,
	"and": ar.BinaryAnd, "or": ar.BinaryOr, "xor": ar.BinaryXor,
}

var unaryOps = map[string]ar.UnaryOp{
	"neg": ar.UnaryNeg, "not": ar.UnaryNot, "trunc": ar.UnaryTrunc,
	"sext": ar.UnarySext, "zext": ar.UnaryZext,
	"ptrtoint": ar.UnaryPtrToInt, "inttoptr": ar.UnaryIntToPtr, "bitcast": ar.UnaryBitcast,
}

var comparisons = map[string]ar.Predicate{
	"icmp_eq": ar.CmpEQ, "icmp_ne": ar.CmpNE,
	"icmp_slt": ar.CmpSLT, "icmp_sle": ar.CmpSLE, "icmp_sgt": ar.CmpSGT, "icmp_sge": ar.CmpSGE,
	"icmp_ult": ar.CmpULT, "icmp_ule": ar.CmpULE, "icmp_ugt": ar.CmpUGT, "icmp_uge": ar.CmpUGE,
}

func lowerStmt(st *Stmt, scope *funcScope) ar.Statement {
	args := make([]ar.Value, len(st.Args))
	for i, a := range st.Args {
		args[i] = lowerValue(a, scope)
	}

	switch {
	case st.Op == "alloca":
		elem := lowerType(st.Type)
		lhs := scope.variable(st.LHS, ar.PointerType{})
		var size ar.Value
		if len(args) > 0 {
			size = args[0]
		}
		return ar.Allocate{LHS: lhs, ElementType: elem, ArraySize: size}

	case st.Op == "gep":
		lhs := scope.variable(st.LHS, ar.PointerType{})
		return ar.PointerShift{LHS: lhs, Base: args[0], Offset: args[1]}

	case st.Op == "load":
		ty := lowerType(st.Type)
		lhs := scope.variable(st.LHS, ty)
		return ar.Load{LHS: lhs, Pointer: args[0]}

	case st.Op == "store":
		return ar.Store{Pointer: args[0], Value: args[1]}

	case st.Op == "call":
		var lhs *ar.Variable
		if st.LHS != "" {
			lhs = scope.variable(st.LHS, lowerType(st.Type))
		}
		return ar.Call{LHS: lhs, Callee: st.Callee, Args: args, Intrinsic: ar.ClassifyIntrinsic(st.Callee)}
	}

	if op, ok := binaryOps[st.Op]; ok {
		lhs := scope.variable(st.LHS, lowerType(st.Type))
		return ar.BinaryOperation{Op: op, LHS: lhs, Left: args[0], Right: args[1]}
	}
	if op, ok := unaryOps[st.Op]; ok {
		lhs := scope.variable(st.LHS, lowerType(st.Type))
		return ar.UnaryOperation{Op: op, LHS: lhs, Operand: args[0]}
	}
	if pred, ok := comparisons[st.Op]; ok {
		lhs := scope.variable(st.LHS, ar.IntegerType{Width: 1})
		return ar.Comparison{Pred: pred, LHS: lhs, Left: args[0], Right: args[1]}
	}
	return ar.Assignment{LHS: scope.variable(st.LHS, lowerType(st.Type)), RHS: args[0]}
}

func lowerTerminator(t *Terminator, scope *funcScope) ar.Terminator {
	switch t.Op {
	case "ret":
		var v ar.Value
		if t.Value != nil {
			v = lowerValue(t.Value, scope)
		}
		return ar.ReturnValue{Value: v}
	case "br":
		if len(t.Targets) == 0 {
			return ar.ReturnValue{}
		}
		return ar.UnconditionalBranch{Target: scope.block(t.Targets[0])}
	case "condbr":
		if t.Value == nil || len(t.Targets) < 2 {
			return ar.ReturnValue{}
		}
		return ar.ConditionalBranch{
			Cond:        lowerValue(t.Value, scope),
			TrueTarget:  scope.block(t.Targets[0]),
			FalseTarget: scope.block(t.Targets[1]),
		}
	default:
		return ar.ReturnValue{}
	}
}
