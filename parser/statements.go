package parser

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/pyrite/ast"
	"github.com/deepnoodle-ai/pyrite/token"
)

// parseStatement parses one statement whose line is indented with
// blockIndent. The statement's prefix (preceding blank lines, comments,
// and indentation) is claimed here.
func (p *Parser) parseStatement(blockIndent string) (ast.Stmt, error) {
	prefix := p.skipText()

	var stmt ast.Stmt
	var err error
	switch p.cur().Type {
	case token.IF:
		stmt, err = p.parseIf(blockIndent)
	case token.WHILE:
		stmt, err = p.parseWhile(blockIndent)
	case token.FOR:
		stmt, err = p.parseFor(blockIndent)
	case token.DEF:
		stmt, err = p.parseFunctionDef(blockIndent)
	case token.CLASS:
		stmt, err = p.parseClassDef(blockIndent)
	case token.RETURN:
		stmt, err = p.parseReturn()
	case token.PASS, token.BREAK, token.CONTINUE:
		stmt, err = p.parseSmallKeyword()
	default:
		stmt, err = p.parseSimpleStatement()
	}
	if err != nil {
		return nil, err
	}
	p.setPrefix(stmt, prefix)
	return stmt, nil
}

// parseBlock parses the indented suite following a block header whose
// line is indented with parentIndent. All statements of the suite must
// share the same indentation text, which must extend parentIndent.
func (p *Parser) parseBlock(parentIndent string) ([]ast.Stmt, error) {
	if p.cur().Type == token.EOF {
		return nil, p.syntaxError("expected an indented block")
	}
	bodyIndent := p.indentOf(p.cur())
	if !strings.HasPrefix(bodyIndent, parentIndent) || len(bodyIndent) <= len(parentIndent) {
		return nil, p.syntaxError("expected an indented block")
	}
	diff := bodyIndent[len(parentIndent):]

	var stmts []ast.Stmt
	for p.cur().Type != token.EOF && p.indentOf(p.cur()) == bodyIndent {
		stmt, err := p.parseStatement(bodyIndent)
		if err != nil {
			return nil, err
		}
		p.store.Set(stmt, "indent", bodyIndent)
		p.store.Set(stmt, "indent_diff", diff)
		stmts = append(stmts, stmt)
	}

	if p.cur().Type != token.EOF {
		next := p.indentOf(p.cur())
		if len(next) > len(parentIndent) && next != bodyIndent {
			return nil, p.syntaxError("unindent does not match any outer indentation level")
		}
	}
	return stmts, nil
}

// parseSimpleStatement parses an assignment, augmented assignment, or
// bare expression statement.
func (p *Parser) parseSimpleStatement() (ast.Stmt, error) {
	first, err := p.parseExprList()
	if err != nil {
		return nil, err
	}

	switch p.cur().Type {
	case token.ASSIGN:
		exprs := []ast.Expr{first}
		var eqFrags []string
		for p.cur().Type == token.ASSIGN {
			frag, err := p.fragAround(token.ASSIGN)
			if err != nil {
				return nil, err
			}
			eqFrags = append(eqFrags, frag)
			next, err := p.parseExprList()
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, next)
		}
		stmt := &ast.Assign{
			Targets: exprs[:len(exprs)-1],
			Value:   exprs[len(exprs)-1],
		}
		for _, target := range stmt.Targets {
			markStoreContext(target)
		}
		for i, frag := range eqFrags {
			p.store.Set(stmt, fmt.Sprintf("eq_%d", i), frag)
		}
		suffix, err := p.finishLine()
		if err != nil {
			return nil, err
		}
		p.store.Set(stmt, "suffix", suffix)
		return stmt, nil

	case token.PLUS_EQ, token.MINUS_EQ, token.ASTERISK_EQ,
		token.SLASH_EQ, token.SLASH_SLASH_EQ, token.MOD_EQ:
		op := strings.TrimSuffix(string(p.cur().Type), "=")
		frag, err := p.fragAround(p.cur().Type)
		if err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt := &ast.AugAssign{Target: first, Op: op, Value: value}
		markStoreContext(stmt.Target)
		p.store.Set(stmt, "op", frag)
		p.store.SetDep(stmt, "op", op)
		suffix, err := p.finishLine()
		if err != nil {
			return nil, err
		}
		p.store.Set(stmt, "suffix", suffix)
		return stmt, nil

	default:
		stmt := &ast.ExprStmt{Value: first}
		suffix, err := p.finishLine()
		if err != nil {
			return nil, err
		}
		p.store.Set(stmt, "suffix", suffix)
		return stmt, nil
	}
}

// markStoreContext tags the names within an assignment target as writes.
func markStoreContext(target ast.Expr) {
	switch t := target.(type) {
	case *ast.Name:
		t.Ctx = ast.Store
	case *ast.Tuple:
		for _, e := range t.Elts {
			markStoreContext(e)
		}
	case *ast.List:
		for _, e := range t.Elts {
			markStoreContext(e)
		}
	}
}

func (p *Parser) parseIf(blockIndent string) (*ast.If, error) {
	kwTok := p.cur()
	kw := p.keywordFrag()
	test, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	colon, err := p.fragBefore(token.COLON)
	if err != nil {
		return nil, err
	}
	suffix, err := p.finishLine()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(blockIndent)
	if err != nil {
		return nil, err
	}

	stmt := &ast.If{IfPos: kwTok.StartPosition, Test: test, Body: body}
	p.store.Set(stmt, "keyword", kw)
	p.store.Set(stmt, "colon", colon)
	p.store.Set(stmt, "suffix", suffix)

	if p.cur().Type != token.EOF && p.indentOf(p.cur()) == blockIndent {
		switch p.cur().Type {
		case token.ELIF:
			elifPrefix := p.skipText()
			nested, err := p.parseIf(blockIndent)
			if err != nil {
				return nil, err
			}
			p.setPrefix(nested, elifPrefix)
			p.store.Set(nested, "indent", blockIndent)
			p.store.SetBool(nested, "is_elif", true)
			stmt.Orelse = []ast.Stmt{nested}
		case token.ELSE:
			elsePrefix := p.skipText()
			elseTok := p.take()
			elseColon, err := p.fragBefore(token.COLON)
			if err != nil {
				return nil, err
			}
			elseSuffix, err := p.finishLine()
			if err != nil {
				return nil, err
			}
			orelse, err := p.parseBlock(blockIndent)
			if err != nil {
				return nil, err
			}
			stmt.Orelse = orelse
			p.store.Set(stmt, "else_prefix", elsePrefix)
			p.store.Set(stmt, "else", elseTok.Literal)
			p.store.Set(stmt, "else_colon", elseColon)
			p.store.Set(stmt, "else_suffix", elseSuffix)
		}
	}
	return stmt, nil
}

func (p *Parser) parseWhile(blockIndent string) (*ast.While, error) {
	kwTok := p.cur()
	kw := p.keywordFrag()
	test, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	colon, err := p.fragBefore(token.COLON)
	if err != nil {
		return nil, err
	}
	suffix, err := p.finishLine()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(blockIndent)
	if err != nil {
		return nil, err
	}
	stmt := &ast.While{WhilePos: kwTok.StartPosition, Test: test, Body: body}
	p.store.Set(stmt, "keyword", kw)
	p.store.Set(stmt, "colon", colon)
	p.store.Set(stmt, "suffix", suffix)
	return stmt, nil
}

func (p *Parser) parseFor(blockIndent string) (*ast.For, error) {
	kwTok := p.cur()
	kw := p.keywordFrag()
	target, err := p.parseExprList()
	if err != nil {
		return nil, err
	}
	markStoreContext(target)
	inFrag, err := p.fragAround(token.IN)
	if err != nil {
		return nil, err
	}
	iter, err := p.parseExprList()
	if err != nil {
		return nil, err
	}
	colon, err := p.fragBefore(token.COLON)
	if err != nil {
		return nil, err
	}
	suffix, err := p.finishLine()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(blockIndent)
	if err != nil {
		return nil, err
	}
	stmt := &ast.For{ForPos: kwTok.StartPosition, Target: target, Iter: iter, Body: body}
	p.store.Set(stmt, "keyword", kw)
	p.store.Set(stmt, "in", inFrag)
	p.store.Set(stmt, "colon", colon)
	p.store.Set(stmt, "suffix", suffix)
	return stmt, nil
}

func (p *Parser) parseFunctionDef(blockIndent string) (*ast.FunctionDef, error) {
	kwTok := p.cur()
	kw := p.keywordFrag()
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	openParen, err := p.fragAround(token.LPAREN)
	if err != nil {
		return nil, err
	}

	var params []*ast.Param
	var commaFrags []string
	for p.cur().Type != token.RPAREN {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if p.cur().Type == token.COMMA {
			frag, err := p.fragAround(token.COMMA)
			if err != nil {
				return nil, err
			}
			commaFrags = append(commaFrags, frag)
			if p.cur().Type == token.RPAREN {
				break // trailing comma
			}
		} else {
			break
		}
	}

	closeParen, err := p.fragBefore(token.RPAREN)
	if err != nil {
		return nil, err
	}
	colon, err := p.fragBefore(token.COLON)
	if err != nil {
		return nil, err
	}
	suffix, err := p.finishLine()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(blockIndent)
	if err != nil {
		return nil, err
	}

	stmt := &ast.FunctionDef{
		DefPos: kwTok.StartPosition,
		Name:   nameTok.Literal,
		Params: params,
		Body:   body,
	}
	p.store.Set(stmt, "keyword", kw)
	p.store.Set(stmt, "name", nameTok.Literal)
	p.store.SetDep(stmt, "name", stmt.Name)
	p.store.Set(stmt, "open_paren", openParen)
	for i, frag := range commaFrags {
		p.store.Set(stmt, fmt.Sprintf("comma_%d", i), frag)
	}
	p.store.Set(stmt, "close_paren", closeParen)
	p.store.Set(stmt, "colon", colon)
	p.store.Set(stmt, "suffix", suffix)
	return stmt, nil
}

func (p *Parser) parseParam() (*ast.Param, error) {
	prefix := p.skipText()
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	param := &ast.Param{NamePos: nameTok.StartPosition, Name: nameTok.Literal}
	p.setPrefix(param, prefix)
	p.store.Set(param, "name", nameTok.Literal)
	p.store.SetDep(param, "name", param.Name)
	if p.cur().Type == token.ASSIGN {
		eq, err := p.fragAround(token.ASSIGN)
		if err != nil {
			return nil, err
		}
		p.store.Set(param, "eq", eq)
		def, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		param.Default = def
	}
	return param, nil
}

func (p *Parser) parseClassDef(blockIndent string) (*ast.ClassDef, error) {
	kwTok := p.cur()
	kw := p.keywordFrag()
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}

	stmt := &ast.ClassDef{ClassPos: kwTok.StartPosition, Name: nameTok.Literal}
	p.store.Set(stmt, "keyword", kw)
	p.store.Set(stmt, "name", nameTok.Literal)
	p.store.SetDep(stmt, "name", stmt.Name)

	if p.cur().Type == token.LPAREN {
		openParen, err := p.fragAround(token.LPAREN)
		if err != nil {
			return nil, err
		}
		p.store.Set(stmt, "open_paren", openParen)
		i := 0
		for p.cur().Type != token.RPAREN {
			base, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			stmt.Bases = append(stmt.Bases, base)
			if p.cur().Type != token.COMMA {
				break
			}
			frag, err := p.fragAround(token.COMMA)
			if err != nil {
				return nil, err
			}
			p.store.Set(stmt, fmt.Sprintf("comma_%d", i), frag)
			i++
		}
		closeParen, err := p.fragBefore(token.RPAREN)
		if err != nil {
			return nil, err
		}
		p.store.Set(stmt, "close_paren", closeParen)
	}

	colon, err := p.fragBefore(token.COLON)
	if err != nil {
		return nil, err
	}
	suffix, err := p.finishLine()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock(blockIndent)
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	p.store.Set(stmt, "colon", colon)
	p.store.Set(stmt, "suffix", suffix)
	return stmt, nil
}

func (p *Parser) parseReturn() (*ast.Return, error) {
	kwTok := p.take()
	kw := kwTok.Literal
	stmt := &ast.Return{ReturnPos: kwTok.StartPosition}
	if p.cur().Type != token.NEWLINE && p.cur().Type != token.EOF {
		kw += p.skipText()
		value, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}
	p.store.Set(stmt, "keyword", kw)
	suffix, err := p.finishLine()
	if err != nil {
		return nil, err
	}
	p.store.Set(stmt, "suffix", suffix)
	return stmt, nil
}

func (p *Parser) parseSmallKeyword() (ast.Stmt, error) {
	kwTok := p.take()
	var stmt ast.Stmt
	switch kwTok.Type {
	case token.PASS:
		stmt = &ast.Pass{PassPos: kwTok.StartPosition}
	case token.BREAK:
		stmt = &ast.Break{BreakPos: kwTok.StartPosition}
	default:
		stmt = &ast.Continue{ContinuePos: kwTok.StartPosition}
	}
	p.store.Set(stmt, "keyword", kwTok.Literal)
	suffix, err := p.finishLine()
	if err != nil {
		return nil, err
	}
	p.store.Set(stmt, "suffix", suffix)
	return stmt, nil
}
