// Package codegen regenerates source code from a syntax tree and its
// formatting store.
//
// Every node is printed from its stored fragments when they are present
// and still valid, so an unmodified tree renders back to the exact input
// text. A fragment that carries a dependency snapshot is used only while
// the snapshot matches the live field value; after an edit the printer
// falls back to a default rendering for that fragment alone, leaving the
// rest of the file untouched. Nodes with no fragments at all (nodes
// created programmatically) render entirely from defaults.
package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/deepnoodle-ai/pyrite/ast"
	"github.com/deepnoodle-ai/pyrite/format"
	"github.com/deepnoodle-ai/pyrite/internal/tmpl"
)

// PrintError indicates that a tree could not be rendered, e.g. because
// it contains a node kind the printer does not know.
type PrintError struct {
	message string
}

func (e *PrintError) Error() string {
	return "print error: " + e.message
}

// Render regenerates source code for the module from the given
// formatting store. Rendering an unmodified parse result reproduces the
// original input byte-for-byte.
func Render(mod *ast.Module, store *format.Store) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PrintError{message: fmt.Sprint(r)}
		}
	}()
	p := &printer{store: store, defaultIndent: inferDefaultIndent(mod, store)}
	if bom, ok := store.Get(mod, "bom"); ok {
		p.buf.WriteString(bom)
	}
	for _, stmt := range mod.Stmts {
		p.stmt(stmt)
	}
	if suffix, ok := store.Get(mod, "suffix"); ok {
		p.token(suffix)
	}
	return p.buf.String(), nil
}

// inferDefaultIndent picks the indentation unit used for statements that
// have no stored indentation: the most common indent step in the module,
// with ties broken toward the shorter and then lexicographically smaller
// text. A module with no indented blocks gets four spaces.
func inferDefaultIndent(mod *ast.Module, store *format.Store) string {
	counts := map[string]int{}
	ast.Inspect(mod, func(n ast.Node) bool {
		if diff, ok := store.Get(n, "indent_diff"); ok && diff != "" {
			counts[diff]++
		}
		return true
	})
	best := ""
	for diff, count := range counts {
		switch {
		case best == "", count > counts[best]:
			best = diff
		case count == counts[best] && (len(diff) < len(best) ||
			(len(diff) == len(best) && diff < best)):
			best = diff
		}
	}
	if best == "" {
		return "    "
	}
	return best
}

type printer struct {
	store         *format.Store
	buf           strings.Builder
	last          byte
	indent        string
	defaultIndent string

	// per-print emission flags, so an attribute reached through more than
	// one visit path is emitted at most once per node; entries live only
	// while the node's visit is on the stack
	emitted map[ast.Node]map[string]bool
}

func (p *printer) begin(node ast.Node) {
	if p.emitted == nil {
		p.emitted = map[ast.Node]map[string]bool{}
	}
	p.emitted[node] = map[string]bool{}
}

func (p *printer) end(node ast.Node) {
	delete(p.emitted, node)
}

// seen marks an attribute as emitted for the node and reports whether it
// had been emitted already during this print.
func (p *printer) seen(node ast.Node, name string) bool {
	set, ok := p.emitted[node]
	if !ok {
		return false
	}
	if set[name] {
		return true
	}
	set[name] = true
	return false
}

func isWordByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// token writes text to the output, inserting a separating space when the
// text would otherwise fuse with the previous token.
func (p *printer) token(s string) {
	if s == "" {
		return
	}
	if isWordByte(p.last) && isWordByte(s[0]) {
		p.buf.WriteByte(' ')
	}
	p.buf.WriteString(s)
	p.last = s[len(s)-1]
}

// frag emits the stored fragment for the named attribute, or def when
// none is stored.
func (p *printer) frag(node ast.Node, name, def string) {
	if p.seen(node, name) {
		return
	}
	if text, ok := p.store.Get(node, name); ok {
		p.token(text)
		return
	}
	p.token(def)
}

// depText returns the stored fragment for an attribute whose text
// depends on a live field value. The fragment is used only while its
// recorded snapshot matches live; a stale or missing fragment falls
// back to def.
func (p *printer) depText(node ast.Node, name, live, def string) string {
	text, ok := p.store.Get(node, name)
	if !ok {
		return def
	}
	if snap, hasDep := p.store.Dep(node, name); hasDep && snap != live {
		return def
	}
	return text
}

func (p *printer) depFrag(node ast.Node, name, live, def string) {
	if p.seen(node, name) {
		return
	}
	p.token(p.depText(node, name, live, def))
}

func (p *printer) stmt(s ast.Stmt) {
	p.begin(s)
	defer p.end(s)
	p.frag(s, "prefix", p.indent)
	switch node := s.(type) {
	case *ast.Assign:
		for i, target := range node.Targets {
			p.expr(target)
			p.frag(node, fmt.Sprintf("eq_%d", i), " = ")
		}
		p.expr(node.Value)
		p.frag(node, "suffix", "\n")
	case *ast.AugAssign:
		p.expr(node.Target)
		p.depFrag(node, "op", node.Op, " "+node.Op+"= ")
		p.expr(node.Value)
		p.frag(node, "suffix", "\n")
	case *ast.ExprStmt:
		p.expr(node.Value)
		p.frag(node, "suffix", "\n")
	case *ast.If:
		p.ifStmt(node)
	case *ast.While:
		p.frag(node, "keyword", "while ")
		p.expr(node.Test)
		p.frag(node, "colon", ":")
		p.frag(node, "suffix", "\n")
		p.block(node.Body)
	case *ast.For:
		p.frag(node, "keyword", "for ")
		p.expr(node.Target)
		p.frag(node, "in", " in ")
		p.expr(node.Iter)
		p.frag(node, "colon", ":")
		p.frag(node, "suffix", "\n")
		p.block(node.Body)
	case *ast.FunctionDef:
		p.functionDef(node)
	case *ast.ClassDef:
		p.classDef(node)
	case *ast.Return:
		p.frag(node, "keyword", "return")
		if node.Value != nil {
			p.expr(node.Value)
		}
		p.frag(node, "suffix", "\n")
	case *ast.Pass:
		p.frag(node, "keyword", "pass")
		p.frag(node, "suffix", "\n")
	case *ast.Break:
		p.frag(node, "keyword", "break")
		p.frag(node, "suffix", "\n")
	case *ast.Continue:
		p.frag(node, "keyword", "continue")
		p.frag(node, "suffix", "\n")
	default:
		panic(fmt.Sprintf("codegen: unsupported statement %s", ast.NodeKind(s)))
	}
}

func (p *printer) ifStmt(node *ast.If) {
	def := "if "
	if p.store.GetBool(node, "is_elif", false) {
		def = "elif "
	}
	p.frag(node, "keyword", def)
	p.expr(node.Test)
	p.frag(node, "colon", ":")
	p.frag(node, "suffix", "\n")
	p.block(node.Body)
	if len(node.Orelse) == 0 {
		return
	}
	if nested, ok := node.Orelse[0].(*ast.If); ok && len(node.Orelse) == 1 &&
		p.store.GetBool(nested, "is_elif", false) {
		p.stmt(nested)
		return
	}
	p.frag(node, "else_prefix", p.indent)
	p.frag(node, "else", "else")
	p.frag(node, "else_colon", ":")
	p.frag(node, "else_suffix", "\n")
	p.block(node.Orelse)
}

func (p *printer) functionDef(node *ast.FunctionDef) {
	p.frag(node, "keyword", "def ")
	p.depFrag(node, "name", node.Name, node.Name)
	p.frag(node, "open_paren", "(")
	for i, param := range node.Params {
		p.frag(param, "prefix", "")
		p.depFrag(param, "name", param.Name, param.Name)
		if param.Default != nil {
			p.frag(param, "eq", "=")
			p.expr(param.Default)
		}
		p.comma(node, i, len(node.Params))
	}
	p.frag(node, "close_paren", ")")
	p.frag(node, "colon", ":")
	p.frag(node, "suffix", "\n")
	p.block(node.Body)
}

func (p *printer) classDef(node *ast.ClassDef) {
	p.frag(node, "keyword", "class ")
	p.depFrag(node, "name", node.Name, node.Name)
	if len(node.Bases) > 0 || p.store.Has(node, "open_paren") {
		p.frag(node, "open_paren", "(")
		for i, base := range node.Bases {
			p.expr(base)
			p.comma(node, i, len(node.Bases))
		}
		p.frag(node, "close_paren", ")")
	}
	p.frag(node, "colon", ":")
	p.frag(node, "suffix", "\n")
	p.block(node.Body)
}

// comma emits the separator after element i of an n-element list: the
// stored comma fragment or ", " between elements, and a stored trailing
// comma after the last one.
func (p *printer) comma(node ast.Node, i, n int) {
	name := fmt.Sprintf("comma_%d", i)
	if i < n-1 {
		p.frag(node, name, ", ")
	} else if p.store.Has(node, name) {
		p.frag(node, name, ",")
	}
}

// block prints an indented suite. The suite's indentation is taken from
// the first statement that recorded one; a suite of freshly created
// statements extends the current indent by the module's inferred step.
func (p *printer) block(body []ast.Stmt) {
	saved := p.indent
	inner := ""
	for _, s := range body {
		if ind, ok := p.store.Get(s, "indent"); ok {
			inner = ind
			break
		}
	}
	if inner == "" {
		inner = saved + p.defaultIndent
	}
	p.indent = inner
	for _, s := range body {
		p.stmt(s)
	}
	p.indent = saved
}

func (p *printer) expr(e ast.Expr) {
	p.begin(e)
	defer p.end(e)
	p.frag(e, "prefix", "")
	switch node := e.(type) {
	case *ast.Name:
		p.depFrag(node, "content", node.ID, node.ID)
	case *ast.Num:
		p.depFrag(node, "content", node.Value, node.Value)
	case *ast.Str:
		p.str(node)
	case *ast.Bytes:
		p.depFrag(node, "content", node.Value,
			p.styledDefault(node, node.Value, "b"+strconv.Quote(node.Value)))
	case *ast.Constant:
		p.depFrag(node, "content", node.Value, node.Value)
	case *ast.FString:
		p.fstring(node)
	case *ast.FormattedValue:
		p.token("{")
		p.expr(node.Value)
		p.token("}")
	case *ast.Attribute:
		p.expr(node.X)
		p.frag(node, "dot", ".")
		p.depFrag(node, "attr", node.Attr, node.Attr)
	case *ast.Call:
		p.call(node)
	case *ast.BinOp:
		p.expr(node.X)
		p.depFrag(node, "op", node.Op, " "+node.Op+" ")
		p.expr(node.Y)
	case *ast.UnaryOp:
		p.depFrag(node, "op", node.Op, node.Op)
		p.expr(node.X)
	case *ast.Compare:
		p.expr(node.X)
		for i, op := range node.Ops {
			p.depFrag(node, fmt.Sprintf("op_%d", i), op, " "+op+" ")
			p.expr(node.Comparators[i])
		}
	case *ast.Tuple:
		for i, elt := range node.Elts {
			p.expr(elt)
			if i < len(node.Elts)-1 {
				p.frag(node, fmt.Sprintf("comma_%d", i), ", ")
			} else if len(node.Elts) == 1 {
				p.frag(node, "comma_0", ",")
			} else {
				p.comma(node, i, len(node.Elts))
			}
		}
	case *ast.List:
		p.frag(node, "open_bracket", "[")
		for i, elt := range node.Elts {
			p.expr(elt)
			p.comma(node, i, len(node.Elts))
		}
		p.frag(node, "close_bracket", "]")
	default:
		panic(fmt.Sprintf("codegen: unsupported expression %s", ast.NodeKind(e)))
	}
	p.frag(e, "suffix", "")
}

// str renders a string literal. The "fmt" fragment records the
// literal's prefix letters and opening quote run; when an edited value
// invalidates the stored content, the new value is spelled in that
// style. A node with a cross-version type prefix spells the prefix
// itself and strips any prefix letters from the literal text.
func (p *printer) str(node *ast.Str) {
	def := p.styledDefault(node, node.Value, strconv.Quote(node.Value))
	if node.Kind != "" {
		p.token(node.Kind)
		p.token(strings.TrimLeft(p.depText(node, "content", node.Value, def), "BbRrUu"))
		return
	}
	p.depFrag(node, "content", node.Value, def)
}

// styledDefault spells value in the style recorded by the node's "fmt"
// fragment, falling back to def when no style is stored or the style
// cannot spell the value.
func (p *printer) styledDefault(node ast.Node, value, def string) string {
	style, ok := p.store.Get(node, "fmt")
	if !ok || style == "" {
		return def
	}
	if out, ok := requote(style, value); ok {
		return out
	}
	return def
}

// requote spells value as a string literal with the given prefix
// letters and opening quote run. Reports false for values the style
// cannot spell, such as a raw string whose value ends in a backslash.
func requote(style, value string) (string, bool) {
	i := strings.IndexAny(style, `'"`)
	if i < 0 {
		return "", false
	}
	prefix, quote := style[:i], style[i:]
	if strings.ContainsAny(prefix, "rR") {
		if strings.Contains(value, quote) ||
			strings.HasSuffix(value, quote[:1]) ||
			strings.HasSuffix(value, "\\") ||
			(len(quote) == 1 && strings.ContainsAny(value, "\n\r")) {
			return "", false
		}
		return style + value + quote, true
	}
	body := strings.ReplaceAll(value, "\\", "\\\\")
	body = strings.ReplaceAll(body, quote[:1], "\\"+quote[:1])
	if len(quote) == 1 {
		body = strings.ReplaceAll(body, "\n", "\\n")
		body = strings.ReplaceAll(body, "\r", "\\r")
	}
	return prefix + quote + body + quote, true
}

func (p *printer) call(node *ast.Call) {
	p.expr(node.Fun)
	p.frag(node, "open_paren", "(")
	n := len(node.Args) + len(node.Keywords)
	i := 0
	for _, arg := range node.Args {
		p.expr(arg)
		p.comma(node, i, n)
		i++
	}
	for _, kw := range node.Keywords {
		p.depFrag(kw, "name", kw.Arg, kw.Arg)
		p.frag(kw, "eq", "=")
		p.expr(kw.Value)
		p.comma(node, i, n)
		i++
	}
	p.frag(node, "close_paren", ")")
}

// fstring renders an interpolated string. The stored source template has
// a positional placeholder where each interpolation sat; the
// interpolated expressions are rendered fresh and substituted in, so
// edits inside an interpolation surface while the surrounding literal
// text keeps its original form.
func (p *printer) fstring(node *ast.FString) {
	template, ok := p.store.Get(node, "content")
	if !ok {
		p.token(p.fstringDefault(node))
		return
	}
	var values []string
	for _, part := range node.Parts {
		if fv, ok := part.(*ast.FormattedValue); ok {
			values = append(values, p.renderExpr(fv))
		}
	}
	p.token(tmpl.Replace(template, values))
}

func (p *printer) fstringDefault(node *ast.FString) string {
	var b strings.Builder
	b.WriteString("f\"")
	for _, part := range node.Parts {
		switch part := part.(type) {
		case *ast.Str:
			text := strconv.Quote(part.Value)
			text = text[1 : len(text)-1]
			text = strings.ReplaceAll(text, "{", "{{")
			text = strings.ReplaceAll(text, "}", "}}")
			b.WriteString(text)
		default:
			b.WriteString(p.renderExpr(part))
		}
	}
	b.WriteString("\"")
	return b.String()
}

// renderExpr renders a subtree standalone, as for an f-string value.
func (p *printer) renderExpr(e ast.Expr) string {
	sub := &printer{
		store:         p.store,
		indent:        p.indent,
		defaultIndent: p.defaultIndent,
	}
	sub.expr(e)
	return sub.buf.String()
}
