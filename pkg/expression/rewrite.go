// Label rewriting for pattern filters.
//
// The rewrites are pure: they return a freshly built tree and never touch
// the input, so a filter can be rewritten once per attachment site without
// aliasing surprises.

package expression

import (
	"errors"
	"fmt"
)

// ErrBadReference reports a filter containing a reference kind the rewrite
// contract does not allow. Inputs are validated upstream, so hitting this
// means the pattern resolver produced an inconsistent filter.
var ErrBadReference = errors.New("unexpected reference in pattern filter")

// RewriteLabelsToVertex replaces every pattern-local reference in expr with
// its vertex-scoped runtime form: label attributes become attribute reads on
// the current vertex, bare labels become the vertex value itself.
func RewriteLabelsToVertex(expr Expression) (Expression, error) {
	return rewrite(expr, func(e Expression) (Expression, error) {
		switch e := e.(type) {
		case *LabelAttribute:
			return NewAttribute(NewVertex(), e.Attribute()), nil
		case *Label:
			return NewVertex(), nil
		default:
			return nil, fmt.Errorf("%w: %s in vertex filter", ErrBadReference, e.Kind())
		}
	})
}

// RewriteLabelsToEdge replaces every label-attribute reference in expr with
// an attribute read on the current edge. Edge filters cannot reference the
// edge as a whole, so a bare label is a contract violation here.
func RewriteLabelsToEdge(expr Expression) (Expression, error) {
	return rewrite(expr, func(e Expression) (Expression, error) {
		la, ok := e.(*LabelAttribute)
		if !ok {
			return nil, fmt.Errorf("%w: %s in edge filter", ErrBadReference, e.Kind())
		}
		return NewAttribute(NewEdge(), la.Attribute()), nil
	})
}

// rewrite walks expr and rebuilds it, handing every reference leaf to
// replace. Structural nodes are reconstructed around the rewritten
// children; literals are cloned as-is. Routing all reference kinds through
// replace lets each rule reject the kinds its contract forbids.
func rewrite(expr Expression, replace func(Expression) (Expression, error)) (Expression, error) {
	switch e := expr.(type) {
	case *Label, *LabelAttribute, *Attribute, *InputProperty, *Vertex, *Edge:
		return replace(e)
	case *FunctionCall:
		args := make([]Expression, len(e.Args()))
		for i, a := range e.Args() {
			arg, err := rewrite(a, replace)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return NewFunctionCall(e.Name(), args...), nil
	case *Relational:
		left, err := rewrite(e.Left(), replace)
		if err != nil {
			return nil, err
		}
		right, err := rewrite(e.Right(), replace)
		if err != nil {
			return nil, err
		}
		return NewRelational(e.Op(), left, right), nil
	case *Not:
		op, err := rewrite(e.Operand(), replace)
		if err != nil {
			return nil, err
		}
		return NewNot(op), nil
	case *PathBuild:
		items := make([]Expression, len(e.Items()))
		for i, it := range e.Items() {
			item, err := rewrite(it, replace)
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return NewPathBuild(items...), nil
	default:
		return expr.Clone(), nil
	}
}
