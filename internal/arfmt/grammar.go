// Package arfmt implements a small human-writable textual encoding of an
// AR bundle, parsed with participle the same way the rest of this
// toolchain's source-level front ends are built. It exists for tests and
// command-line demos: a real AR bundle is produced by lowering LLVM
// bitcode, a step that lives outside this module.
package arfmt

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `;[^\n]*`, nil},
		{"Arrow", `->`, nil},
		{"Register", `%[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Label", `[a-zA-Z_][a-zA-Z0-9_]*:`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_.]*`, nil},
		{"Integer", `-?[0-9]+`, nil},
		{"Punctuation", `[{}()\[\],:=*]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})

// Program is one parsed textual unit: a single bundle declaration.
type Program struct {
	Bundle *Bundle `@@`
}

type Bundle struct {
	Name      string      `"bundle" @Ident "{"`
	Globals   []*Global   `@@*`
	Functions []*Function `@@*`
	Close     string      `"}"`
}

type Global struct {
	Name string `"global" @Register ":"`
	Type *Type  `@@ "="`
	Init *Value `@@`
}

type Function struct {
	External bool         `[ @"extern" ]`
	Name     string       `"func" @Ident "("`
	Params   []*Param     `[ @@ { "," @@ } ] ")"`
	Return   *Type        `[ Arrow @@ ]`
	Blocks   []*BlockDecl `[ "{" @@* "}" ]`
}

type Param struct {
	Name string `@Register ":"`
	Type *Type  `@@`
}

// Type names one of the machine types the engine's abstract domains
// understand: a fixed-width integer ("i32", "u64", ...), "ptr", or
// "void". Width/signedness is parsed out of Name by load.go, since the
// lexer cannot otherwise tell "i32" apart from a plain identifier.
type Type struct {
	Name string `@Ident`
}

type BlockDecl struct {
	Name       string      `@Label`
	Statements []*Stmt     `@@*`
	Term       *Terminator `@@`
}

// Stmt is one non-terminating instruction, written
// "[%lhs =] op [type] [callee] args...". Callee is only meaningful when
// Op is "call": the name of the function being invoked. An identifier
// that is a statement or terminator keyword is never taken as Callee, so
// it starts the next statement or the terminator. Op is restricted
// to a fixed keyword set (rather than a bare @Ident) so the parser can
// tell a statement apart from a block's closing Terminator without
// backtracking across the whole block.
type Stmt struct {
	LHS    string   `[ @Register "=" ]`
	Op     string   `@( "alloca" | "gep" | "load" | "store" | "call" | "add" | "sub" | "mul" | "sdiv" | "udiv" | "srem" | "urem" | "shl" | "lshr" | "ashr" | "and" | "or" | "xor" | "neg" | "not" | "trunc" | "sext" | "zext" | "ptrtoint" | "inttoptr" | "bitcast" | "icmp_eq" | "icmp_ne" | "icmp_slt" | "icmp_sle" | "icmp_sgt" | "icmp_sge" | "icmp_ult" | "icmp_ule" | "icmp_ugt" | "icmp_uge" | "assign" )`
	Type   *Type    `[ "[" @@ "]" ]`
	Callee string   `[ (?! ( "alloca" | "gep" | "load" | "store" | "call" | "add" | "sub" | "mul" | "sdiv" | "udiv" | "srem" | "urem" | "shl" | "lshr" | "ashr" | "and" | "or" | "xor" | "neg" | "not" | "trunc" | "sext" | "zext" | "ptrtoint" | "inttoptr" | "bitcast" | "icmp_eq" | "icmp_ne" | "icmp_slt" | "icmp_sle" | "icmp_sgt" | "icmp_sge" | "icmp_ult" | "icmp_ule" | "icmp_ugt" | "icmp_uge" | "assign" | "ret" | "br" | "condbr" ) ) @Ident ]`
	Args   []*Value `[ @@ { "," @@ } ]`
}

// Terminator is a block's final instruction: "ret [value]", "br label",
// or "condbr cond, trueLabel, falseLabel". Its Op keyword set is
// disjoint from Stmt's so a block's statement list (@@*) stops cleanly
// right before it.
type Terminator struct {
	Op      string   `@( "ret" | "br" | "condbr" )`
	Value   *Value   `[ @@ [ "," ] ]`
	Targets []string `[ @Ident { "," @Ident } ]`
}

// Value is an operand: a register reference, an integer constant, or the
// null literal.
type Value struct {
	Register string `  @Register`
	Null     bool   `| @"null"`
	Integer  *int64 `| @Integer`
}
