// Package expression provides the immutable expression trees attached to
// plan nodes during query compilation.
//
// Pattern filters arrive from the parser referencing pattern-local labels
// ("v.age", "e.likeness"). The runtime only understands vertex- and
// edge-scoped attribute references, so every filter is rewritten (see
// rewrite.go) before it is attached to a plan node. Expressions are built
// once and never mutated; attaching the same tree to two nodes requires a
// Clone.
package expression

import (
	"fmt"
	"strings"
)

// Kind identifies the concrete type of an expression node.
type Kind int

const (
	KindConstant Kind = iota
	KindLabel
	KindLabelAttribute
	KindAttribute
	KindVertex
	KindEdge
	KindInputProperty
	KindFunctionCall
	KindRelational
	KindNot
	KindPathBuild
)

// String returns a readable name for the expression kind.
func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "Constant"
	case KindLabel:
		return "Label"
	case KindLabelAttribute:
		return "LabelAttribute"
	case KindAttribute:
		return "Attribute"
	case KindVertex:
		return "Vertex"
	case KindEdge:
		return "Edge"
	case KindInputProperty:
		return "InputProperty"
	case KindFunctionCall:
		return "FunctionCall"
	case KindRelational:
		return "Relational"
	case KindNot:
		return "Not"
	case KindPathBuild:
		return "PathBuild"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Expression is an immutable node in a predicate or value tree.
// Clone returns a deep copy with no shared children.
type Expression interface {
	Kind() Kind
	Clone() Expression
	String() string
}

// Constant is a literal value.
type Constant struct {
	value any
}

// NewConstant returns a literal expression.
func NewConstant(value any) *Constant { return &Constant{value: value} }

func (c *Constant) Kind() Kind { return KindConstant }
func (c *Constant) Value() any { return c.value }
func (c *Constant) Clone() Expression { return &Constant{value: c.value} }
func (c *Constant) String() string { return fmt.Sprintf("%v", c.value) }

// Label is a pattern-local reference to a whole entity, e.g. the "v" in
// MATCH (v). It only exists before rewriting.
type Label struct {
	name string
}

// NewLabel returns a bare label reference.
func NewLabel(name string) *Label { return &Label{name: name} }

func (l *Label) Kind() Kind { return KindLabel }
func (l *Label) Name() string { return l.name }
func (l *Label) Clone() Expression { return &Label{name: l.name} }
func (l *Label) String() string { return l.name }

// LabelAttribute is a pattern-local property reference, e.g. "v.age".
// It only exists before rewriting.
type LabelAttribute struct {
	label     string
	attribute string
}

// NewLabelAttribute returns a label property reference.
func NewLabelAttribute(label, attribute string) *LabelAttribute {
	return &LabelAttribute{label: label, attribute: attribute}
}

func (l *LabelAttribute) Kind() Kind { return KindLabelAttribute }
func (l *LabelAttribute) Label() string { return l.label }
func (l *LabelAttribute) Attribute() string { return l.attribute }
func (l *LabelAttribute) Clone() Expression {
	return &LabelAttribute{label: l.label, attribute: l.attribute}
}
func (l *LabelAttribute) String() string { return l.label + "." + l.attribute }

// Attribute is a runtime property access on a computed object, typically
// the current vertex or edge. This is what label references rewrite into.
type Attribute struct {
	object    Expression
	attribute string
}

// NewAttribute returns a runtime attribute access.
func NewAttribute(object Expression, attribute string) *Attribute {
	return &Attribute{object: object, attribute: attribute}
}

func (a *Attribute) Kind() Kind { return KindAttribute }
func (a *Attribute) Object() Expression { return a.object }
func (a *Attribute) Attribute() string { return a.attribute }
func (a *Attribute) Clone() Expression {
	return &Attribute{object: a.object.Clone(), attribute: a.attribute}
}
func (a *Attribute) String() string { return a.object.String() + "." + a.attribute }

// Vertex refers to the vertex produced by the enclosing fetch stage.
type Vertex struct{}

// NewVertex returns the current-vertex value reference.
func NewVertex() *Vertex { return &Vertex{} }

func (v *Vertex) Kind() Kind { return KindVertex }
func (v *Vertex) Clone() Expression { return &Vertex{} }
func (v *Vertex) String() string { return "vertex" }

// Edge refers to the edge produced by the enclosing fetch stage.
type Edge struct{}

// NewEdge returns the current-edge value reference.
func NewEdge() *Edge { return &Edge{} }

func (e *Edge) Kind() Kind { return KindEdge }
func (e *Edge) Clone() Expression { return &Edge{} }
func (e *Edge) String() string { return "edge" }

// InputProperty reads a column from the node's runtime input dataset.
type InputProperty struct {
	column string
}

// NewInputProperty returns a reference to an input column.
func NewInputProperty(column string) *InputProperty {
	return &InputProperty{column: column}
}

func (i *InputProperty) Kind() Kind { return KindInputProperty }
func (i *InputProperty) Column() string { return i.column }
func (i *InputProperty) Clone() Expression { return &InputProperty{column: i.column} }
func (i *InputProperty) String() string { return "$-." + i.column }

// FunctionCall invokes a runtime builtin such as length or relationships.
type FunctionCall struct {
	name string
	args []Expression
}

// NewFunctionCall returns a builtin invocation.
func NewFunctionCall(name string, args ...Expression) *FunctionCall {
	return &FunctionCall{name: name, args: args}
}

func (f *FunctionCall) Kind() Kind { return KindFunctionCall }
func (f *FunctionCall) Name() string { return f.name }
func (f *FunctionCall) Args() []Expression { return f.args }
func (f *FunctionCall) Clone() Expression {
	args := make([]Expression, len(f.args))
	for i, a := range f.args {
		args[i] = a.Clone()
	}
	return &FunctionCall{name: f.name, args: args}
}
func (f *FunctionCall) String() string {
	parts := make([]string, len(f.args))
	for i, a := range f.args {
		parts[i] = a.String()
	}
	return f.name + "(" + strings.Join(parts, ", ") + ")"
}

// RelOp is a binary comparison operator.
type RelOp int

const (
	OpEQ RelOp = iota
	OpGE
	OpGT
	OpLE
	OpLT
	OpNE
)

// String returns the operator's source form.
func (op RelOp) String() string {
	switch op {
	case OpEQ:
		return "=="
	case OpGE:
		return ">="
	case OpGT:
		return ">"
	case OpLE:
		return "<="
	case OpLT:
		return "<"
	case OpNE:
		return "!="
	default:
		return fmt.Sprintf("RelOp(%d)", int(op))
	}
}

// Relational is a binary comparison.
type Relational struct {
	op    RelOp
	left  Expression
	right Expression
}

// NewRelational returns a comparison expression.
func NewRelational(op RelOp, left, right Expression) *Relational {
	return &Relational{op: op, left: left, right: right}
}

func (r *Relational) Kind() Kind { return KindRelational }
func (r *Relational) Op() RelOp { return r.op }
func (r *Relational) Left() Expression { return r.left }
func (r *Relational) Right() Expression { return r.right }
func (r *Relational) Clone() Expression {
	return &Relational{op: r.op, left: r.left.Clone(), right: r.right.Clone()}
}
func (r *Relational) String() string {
	return "(" + r.left.String() + " " + r.op.String() + " " + r.right.String() + ")"
}

// Not is logical negation.
type Not struct {
	operand Expression
}

// NewNot returns the negation of operand.
func NewNot(operand Expression) *Not { return &Not{operand: operand} }

func (n *Not) Kind() Kind { return KindNot }
func (n *Not) Operand() Expression { return n.operand }
func (n *Not) Clone() Expression { return &Not{operand: n.operand.Clone()} }
func (n *Not) String() string { return "!(" + n.operand.String() + ")" }

// PathBuild assembles a path value from an alternating sequence of vertex
// and edge items, or concatenates previously built path columns.
type PathBuild struct {
	items []Expression
}

// NewPathBuild returns a path assembly over items.
func NewPathBuild(items ...Expression) *PathBuild { return &PathBuild{items: items} }

func (p *PathBuild) Kind() Kind { return KindPathBuild }
func (p *PathBuild) Items() []Expression { return p.items }
func (p *PathBuild) Clone() Expression {
	items := make([]Expression, len(p.items))
	for i, it := range p.items {
		items[i] = it.Clone()
	}
	return &PathBuild{items: items}
}
func (p *PathBuild) String() string {
	parts := make([]string, len(p.items))
	for i, it := range p.items {
		parts[i] = it.String()
	}
	return "PathBuild[" + strings.Join(parts, ", ") + "]"
}
