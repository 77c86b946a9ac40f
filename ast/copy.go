package ast

import "fmt"

// CopyExpr returns a deep, independent copy of an expression tree. No
// sub-structure is shared between the original and the copy, so later
// edits to one can never affect the other.
//
// onCopy, if non-nil, is invoked with each (original, clone) node pair,
// innermost nodes first. Callers use it to mirror side-table data (such
// as formatting store entries) onto the cloned nodes.
func CopyExpr(x Expr, onCopy func(orig, clone Node)) Expr {
	if x == nil {
		return nil
	}
	var clone Expr
	switch n := x.(type) {
	case *Name:
		c := *n
		clone = &c
	case *Num:
		c := *n
		clone = &c
	case *Str:
		c := *n
		clone = &c
	case *Bytes:
		c := *n
		clone = &c
	case *Constant:
		c := *n
		clone = &c
	case *FString:
		c := &FString{ValuePos: n.ValuePos}
		for _, part := range n.Parts {
			c.Parts = append(c.Parts, CopyExpr(part, onCopy))
		}
		clone = c
	case *FormattedValue:
		clone = &FormattedValue{Value: CopyExpr(n.Value, onCopy)}
	case *Attribute:
		clone = &Attribute{
			X:       CopyExpr(n.X, onCopy),
			AttrPos: n.AttrPos,
			Attr:    n.Attr,
		}
	case *Call:
		c := &Call{
			Fun:    CopyExpr(n.Fun, onCopy),
			Rparen: n.Rparen,
		}
		for _, arg := range n.Args {
			c.Args = append(c.Args, CopyExpr(arg, onCopy))
		}
		for _, kw := range n.Keywords {
			kc := &Keyword{
				ArgPos: kw.ArgPos,
				Arg:    kw.Arg,
				Value:  CopyExpr(kw.Value, onCopy),
			}
			if onCopy != nil {
				onCopy(kw, kc)
			}
			c.Keywords = append(c.Keywords, kc)
		}
		clone = c
	case *BinOp:
		clone = &BinOp{
			X:  CopyExpr(n.X, onCopy),
			Op: n.Op,
			Y:  CopyExpr(n.Y, onCopy),
		}
	case *UnaryOp:
		clone = &UnaryOp{OpPos: n.OpPos, Op: n.Op, X: CopyExpr(n.X, onCopy)}
	case *Compare:
		c := &Compare{X: CopyExpr(n.X, onCopy)}
		c.Ops = append(c.Ops, n.Ops...)
		for _, cmp := range n.Comparators {
			c.Comparators = append(c.Comparators, CopyExpr(cmp, onCopy))
		}
		clone = c
	case *Tuple:
		c := &Tuple{}
		for _, e := range n.Elts {
			c.Elts = append(c.Elts, CopyExpr(e, onCopy))
		}
		clone = c
	case *List:
		c := &List{Lbrack: n.Lbrack, Rbrack: n.Rbrack}
		for _, e := range n.Elts {
			c.Elts = append(c.Elts, CopyExpr(e, onCopy))
		}
		clone = c
	default:
		panic(fmt.Sprintf("ast: cannot copy node kind %T", x))
	}
	if onCopy != nil {
		onCopy(x, clone)
	}
	return clone
}
