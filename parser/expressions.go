package parser

import (
	"fmt"

	"github.com/deepnoodle-ai/pyrite/ast"
	"github.com/deepnoodle-ai/pyrite/token"
)

// canStartExpr reports whether a token of the given type can begin an
// expression. Used to detect trailing commas.
func canStartExpr(typ token.Type) bool {
	switch typ {
	case token.IDENT, token.INT, token.FLOAT, token.STRING, token.BYTES,
		token.FSTRING, token.TRUE, token.FALSE, token.NONE, token.ELLIPSIS,
		token.LPAREN, token.LBRACKET, token.MINUS, token.PLUS, token.NOT:
		return true
	}
	return false
}

// parseExprList parses a comma-separated expression list. A bare list of
// two or more items, or a single item followed by a trailing comma,
// becomes a tuple; comma fragments are stored on the tuple.
func (p *Parser) parseExprList() (ast.Expr, error) {
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.cur().Type != token.COMMA {
		return first, nil
	}
	elts := []ast.Expr{first}
	var commaFrags []string
	for p.cur().Type == token.COMMA {
		frag, err := p.fragAround(token.COMMA)
		if err != nil {
			return nil, err
		}
		commaFrags = append(commaFrags, frag)
		if !canStartExpr(p.cur().Type) {
			break
		}
		next, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elts = append(elts, next)
	}
	tuple := &ast.Tuple{Elts: elts}
	for i, frag := range commaFrags {
		p.store.Set(tuple, fmt.Sprintf("comma_%d", i), frag)
	}
	return tuple, nil
}

func (p *Parser) parseExpr() (ast.Expr, error) {
	if p.cur().Type == token.NOT {
		opTok := p.take()
		frag := opTok.Literal + p.skipText()
		x, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		expr := &ast.UnaryOp{OpPos: opTok.StartPosition, Op: "not", X: x}
		p.store.Set(expr, "op", frag)
		p.store.SetDep(expr, "op", expr.Op)
		return expr, nil
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	x, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	var ops []string
	var comparators []ast.Expr
	var opFrags []string
	for isComparisonOp(p.cur().Type) {
		op := string(p.cur().Type)
		frag, err := p.fragAround(p.cur().Type)
		if err != nil {
			return nil, err
		}
		y, err := p.parseArith()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		comparators = append(comparators, y)
		opFrags = append(opFrags, frag)
	}
	if len(ops) == 0 {
		return x, nil
	}
	expr := &ast.Compare{X: x, Ops: ops, Comparators: comparators}
	for i, frag := range opFrags {
		attr := fmt.Sprintf("op_%d", i)
		p.store.Set(expr, attr, frag)
		p.store.SetDep(expr, attr, ops[i])
	}
	return expr, nil
}

func isComparisonOp(typ token.Type) bool {
	switch typ {
	case token.EQ, token.NOT_EQ, token.LT, token.LT_EQ, token.GT, token.GT_EQ:
		return true
	}
	return false
}

func (p *Parser) parseArith() (ast.Expr, error) {
	x, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.cur().Type == token.PLUS || p.cur().Type == token.MINUS {
		op := string(p.cur().Type)
		frag, err := p.fragAround(p.cur().Type)
		if err != nil {
			return nil, err
		}
		y, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		x = p.newBinOp(x, op, y, frag)
	}
	return x, nil
}

func (p *Parser) parseTerm() (ast.Expr, error) {
	x, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Type {
		case token.ASTERISK, token.SLASH, token.SLASH_SLASH, token.MOD:
			op := string(p.cur().Type)
			frag, err := p.fragAround(p.cur().Type)
			if err != nil {
				return nil, err
			}
			y, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			x = p.newBinOp(x, op, y, frag)
		default:
			return x, nil
		}
	}
}

// parseFactor parses unary plus, minus, and not applied to a power
// expression. Exponentiation binds tighter than a unary operator on its
// left but admits one on its right.
func (p *Parser) parseFactor() (ast.Expr, error) {
	switch p.cur().Type {
	case token.MINUS, token.PLUS:
		opTok := p.take()
		frag := opTok.Literal + p.skipText()
		x, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		expr := &ast.UnaryOp{OpPos: opTok.StartPosition, Op: string(opTok.Type), X: x}
		p.store.Set(expr, "op", frag)
		p.store.SetDep(expr, "op", expr.Op)
		return expr, nil
	}
	return p.parsePower()
}

func (p *Parser) parsePower() (ast.Expr, error) {
	x, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if p.cur().Type != token.POW {
		return x, nil
	}
	frag, err := p.fragAround(token.POW)
	if err != nil {
		return nil, err
	}
	y, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	return p.newBinOp(x, "**", y, frag), nil
}

func (p *Parser) newBinOp(x ast.Expr, op string, y ast.Expr, frag string) *ast.BinOp {
	expr := &ast.BinOp{X: x, Op: op, Y: y}
	p.store.Set(expr, "op", frag)
	p.store.SetDep(expr, "op", op)
	return expr
}

// parsePostfix parses attribute access and call trailers.
func (p *Parser) parsePostfix() (ast.Expr, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Type {
		case token.DOT:
			dot, err := p.fragAround(token.DOT)
			if err != nil {
				return nil, err
			}
			nameTok, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			attr := &ast.Attribute{X: x, AttrPos: nameTok.StartPosition, Attr: nameTok.Literal}
			p.store.Set(attr, "dot", dot)
			p.store.Set(attr, "attr", nameTok.Literal)
			p.store.SetDep(attr, "attr", attr.Attr)
			x = attr
		case token.LPAREN:
			call, err := p.parseCall(x)
			if err != nil {
				return nil, err
			}
			x = call
		default:
			return x, nil
		}
	}
}

func (p *Parser) parseCall(fun ast.Expr) (*ast.Call, error) {
	openParen, err := p.fragAround(token.LPAREN)
	if err != nil {
		return nil, err
	}
	call := &ast.Call{Fun: fun}
	p.store.Set(call, "open_paren", openParen)

	commas := 0
	for p.cur().Type != token.RPAREN {
		if p.cur().Type == token.IDENT && p.peek().Type == token.ASSIGN {
			nameTok := p.take()
			kw := &ast.Keyword{ArgPos: nameTok.StartPosition, Arg: nameTok.Literal}
			p.store.Set(kw, "name", nameTok.Literal)
			p.store.SetDep(kw, "name", kw.Arg)
			eq, err := p.fragAround(token.ASSIGN)
			if err != nil {
				return nil, err
			}
			p.store.Set(kw, "eq", eq)
			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			kw.Value = value
			call.Keywords = append(call.Keywords, kw)
		} else {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
		}
		if p.cur().Type != token.COMMA {
			break
		}
		frag, err := p.fragAround(token.COMMA)
		if err != nil {
			return nil, err
		}
		p.store.Set(call, fmt.Sprintf("comma_%d", commas), frag)
		commas++
	}

	rpTok := p.cur()
	closeParen, err := p.fragBefore(token.RPAREN)
	if err != nil {
		return nil, err
	}
	call.Rparen = rpTok.StartPosition
	p.store.Set(call, "close_paren", closeParen)
	return call, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch p.cur().Type {
	case token.IDENT:
		t := p.take()
		name := &ast.Name{NamePos: t.StartPosition, ID: t.Literal, Ctx: ast.Load}
		p.store.Set(name, "content", t.Literal)
		p.store.SetDep(name, "content", name.ID)
		return name, nil

	case token.INT, token.FLOAT:
		t := p.take()
		num := &ast.Num{ValuePos: t.StartPosition, Value: t.Literal}
		p.store.Set(num, "content", t.Literal)
		p.store.SetDep(num, "content", num.Value)
		return num, nil

	case token.STRING, token.BYTES:
		return p.parseStringLiteral(p.take())

	case token.FSTRING:
		return p.parseFString(p.take())

	case token.TRUE, token.FALSE, token.NONE, token.ELLIPSIS:
		t := p.take()
		c := &ast.Constant{ValuePos: t.StartPosition, Value: t.Literal}
		p.store.Set(c, "content", t.Literal)
		p.store.SetDep(c, "content", c.Value)
		return c, nil

	case token.LPAREN:
		openTok := p.take()
		openText := openTok.Literal + p.skipText()
		if p.cur().Type == token.RPAREN {
			return nil, p.syntaxError("expected an expression")
		}
		inner, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		closeText, err := p.fragBefore(token.RPAREN)
		if err != nil {
			return nil, err
		}
		p.prependPrefix(inner, openText)
		p.appendSuffix(inner, closeText)
		return inner, nil

	case token.LBRACKET:
		return p.parseList()

	default:
		return nil, p.syntaxError(
			fmt.Sprintf("unexpected %s in expression", tokenDescription(p.cur())))
	}
}

func (p *Parser) parseList() (*ast.List, error) {
	lbTok := p.cur()
	openBracket, err := p.fragAround(token.LBRACKET)
	if err != nil {
		return nil, err
	}
	list := &ast.List{Lbrack: lbTok.StartPosition}
	p.store.Set(list, "open_bracket", openBracket)

	commas := 0
	for p.cur().Type != token.RBRACKET {
		elt, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list.Elts = append(list.Elts, elt)
		if p.cur().Type != token.COMMA {
			break
		}
		frag, err := p.fragAround(token.COMMA)
		if err != nil {
			return nil, err
		}
		p.store.Set(list, fmt.Sprintf("comma_%d", commas), frag)
		commas++
	}

	rbTok := p.cur()
	closeBracket, err := p.fragBefore(token.RBRACKET)
	if err != nil {
		return nil, err
	}
	list.Rbrack = rbTok.StartPosition
	p.store.Set(list, "close_bracket", closeBracket)
	return list, nil
}
