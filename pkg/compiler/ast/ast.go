// Package ast defines the syntax tree taxonomy produced by
// pkg/compiler/parser, mirroring the shape of Python's own ast module
// (https://docs.python.org/3/library/ast.html) restricted to the core
// subset this front-end supports.
//
// The original C++ this project was distilled from used a class
// hierarchy with double-dispatch visitors; here each node category
// (module root, statement, expression) is its own Go interface with a
// small marker method, and traversal happens through the Visitor
// interface and each node's Accept method below, the direct Go
// analog of the original's virtual Visit dispatch.
package ast

// Node is any node in the syntax tree. Accept drives the standard
// double-dispatch traversal: it calls back into the one Visitor method
// that matches the node's concrete type.
type Node interface {
	Accept(Visitor)
}

// Root is the top-level node of a parsed program: Module, Interactive,
// or Expression.
type Root interface {
	Node
	rootNode()
}

// Statement is a top-level unit of execution inside a Block.
type Statement interface {
	Node
	stmtNode()
}

// Expr is a node that yields a value.
type Expr interface {
	Node
	exprNode()
}

// Block is an ordered sequence of statements sharing one indentation
// level.
type Block []Statement

// ---------------------------------------------------------------------------
// Subcontext tags.
// ---------------------------------------------------------------------------

// ExprContext distinguishes why a Name node appears where it does.
type ExprContext int

const (
	Load ExprContext = iota
	Store
	Del
)

func (c ExprContext) String() string {
	switch c {
	case Load:
		return "Load"
	case Store:
		return "Store"
	case Del:
		return "Del"
	default:
		return "Load"
	}
}

// UnaryOpType is the operator of a UnaryOp node.
type UnaryOpType int

const (
	Invert UnaryOpType = iota
	Not
	Positive
	Negative
)

func (o UnaryOpType) String() string {
	switch o {
	case Invert:
		return "Invert"
	case Not:
		return "Not"
	case Positive:
		return "Positive"
	case Negative:
		return "Negative"
	default:
		return "Invert"
	}
}

// BinaryOpType is the operator of a BinaryOp node.
type BinaryOpType int

const (
	Add BinaryOpType = iota
	Subtract
	Multiply
	Matmul
	Divide
	Modulo
	Power
	LeftShift
	RightShift
	BitwiseOr
	BitwiseXor
	BitwiseAnd
	FloorDivide
)

func (o BinaryOpType) String() string {
	switch o {
	case Add:
		return "Add"
	case Subtract:
		return "Subtract"
	case Multiply:
		return "Multiply"
	case Matmul:
		return "Matmul"
	case Divide:
		return "Divide"
	case Modulo:
		return "Modulo"
	case Power:
		return "Power"
	case LeftShift:
		return "Left shift"
	case RightShift:
		return "Right shift"
	case BitwiseOr:
		return "Bitwise or"
	case BitwiseXor:
		return "Bitwise xor"
	case BitwiseAnd:
		return "Bitwise and"
	case FloorDivide:
		return "Floor divide"
	default:
		return "Add"
	}
}

// CompareOpType is one operator in a chained Compare node.
type CompareOpType int

const (
	Equals CompareOpType = iota
	NotEquals
	LessThan
	LessEqual
	GreaterThan
	GreaterEqual
	Is
	IsNot
	In
	NotIn
)

func (o CompareOpType) String() string {
	switch o {
	case Equals:
		return "Equals"
	case NotEquals:
		return "Not equals"
	case LessThan:
		return "Less than"
	case LessEqual:
		return "Less equal"
	case GreaterThan:
		return "Greater than"
	case GreaterEqual:
		return "Greater equal"
	case Is:
		return "Is"
	case IsNot:
		return "Is not"
	case In:
		return "In"
	case NotIn:
		return "Not in"
	default:
		return "Equals"
	}
}

// ---------------------------------------------------------------------------
// Constant payload.
// ---------------------------------------------------------------------------

// ConstantValue is the value carried by a Constant node: one of int64,
// float64, string, bool, or nil (representing Python's None).
type ConstantValue interface{}

// ---------------------------------------------------------------------------
// Root nodes.
// ---------------------------------------------------------------------------

// Module is a script: a top-level sequence of statements.
type Module struct {
	Body Block
}

func (*Module) rootNode()          {}
func (n *Module) Accept(v Visitor) { v.VisitModule(n) }

// Interactive is a REPL input: a top-level sequence of statements,
// distinguished from Module only by tag (both share the same shape).
type Interactive struct {
	Body Block
}

func (*Interactive) rootNode()          {}
func (n *Interactive) Accept(v Visitor) { v.VisitInteractive(n) }

// Expression is a single-expression program.
type Expression struct {
	Body Expr
}

func (*Expression) rootNode()          {}
func (n *Expression) Accept(v Visitor) { v.VisitExpression(n) }

// ---------------------------------------------------------------------------
// Statement nodes.
// ---------------------------------------------------------------------------

// Delete is `del a, b, c`. Every target is a Name with Ctx == Del.
type Delete struct {
	Targets []Expr
}

func (*Delete) stmtNode()          {}
func (n *Delete) Accept(v Visitor) { v.VisitDelete(n) }

// Assign is `a = b = ... = value`. Chained assignment flattens into a
// single node with multiple targets.
type Assign struct {
	Targets []Expr
	Value   Expr
}

func (*Assign) stmtNode()          {}
func (n *Assign) Accept(v Visitor) { v.VisitAssign(n) }

// If is a conditional. Then and Else are blocks; Else is empty when
// there is no else-clause. An elif chain is represented by nesting an
// If as the single statement inside Else.
type If struct {
	Test Expr
	Then Block
	Else Block
}

func (*If) stmtNode()          {}
func (n *If) Accept(v Visitor) { v.VisitIf(n) }

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	Value Expr
}

func (*ExprStmt) stmtNode()          {}
func (n *ExprStmt) Accept(v Visitor) { v.VisitExprStmt(n) }

// ---------------------------------------------------------------------------
// Expression nodes.
// ---------------------------------------------------------------------------

// Constant is a literal int, float, string, bool, or None.
type Constant struct {
	Value ConstantValue
}

func (*Constant) exprNode()          {}
func (n *Constant) Accept(v Visitor) { v.VisitConstant(n) }

// Name is an identifier reference, tagged with the context in which it
// appears.
type Name struct {
	ID  string
	Ctx ExprContext
}

func (*Name) exprNode()          {}
func (n *Name) Accept(v Visitor) { v.VisitName(n) }

// UnaryOp is a prefix operator applied to a single operand.
type UnaryOp struct {
	Op      UnaryOpType
	Operand Expr
}

func (*UnaryOp) exprNode()          {}
func (n *UnaryOp) Accept(v Visitor) { v.VisitUnaryOp(n) }

// BinaryOp is an infix arithmetic or bitwise operator.
type BinaryOp struct {
	LHS Expr
	Op  BinaryOpType
	RHS Expr
}

func (*BinaryOp) exprNode()          {}
func (n *BinaryOp) Accept(v Visitor) { v.VisitBinaryOp(n) }

// Compare is a (possibly chained) comparison: `a OP1 b OP2 c ...`.
// len(Ops) == len(Comparators) >= 1.
type Compare struct {
	LHS         Expr
	Ops         []CompareOpType
	Comparators []Expr
}

func (*Compare) exprNode()          {}
func (n *Compare) Accept(v Visitor) { v.VisitCompare(n) }

// Visitor defines one callback per concrete node type. It is the Go
// analog of the original's abstract SyntaxTreeVisitor base class.
type Visitor interface {
	VisitModule(*Module)
	VisitInteractive(*Interactive)
	VisitExpression(*Expression)

	VisitDelete(*Delete)
	VisitAssign(*Assign)
	VisitIf(*If)
	VisitExprStmt(*ExprStmt)

	VisitConstant(*Constant)
	VisitName(*Name)
	VisitUnaryOp(*UnaryOp)
	VisitBinaryOp(*BinaryOp)
	VisitCompare(*Compare)
}
