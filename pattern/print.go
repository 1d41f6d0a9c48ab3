package pattern

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/synaptree/semtrex/symbol"
	"github.com/synaptree/semtrex/tree"
)

// Printer renders a pattern tree back into semtrex surface syntax.
// parse(Print(parse(P))) is structurally equivalent to parse(P) for any
// valid pattern string P.
type Printer struct {
	reg *symbol.Registry
}

// NewPrinter creates a Printer resolving labels through reg.
func NewPrinter(reg *symbol.Registry) *Printer {
	return &Printer{reg: reg}
}

// Print renders the pattern tree rooted at n as a semtrex pattern string.
func (p *Printer) Print(n *tree.Node) string {
	return "/" + p.render(n)
}

func (p *Printer) label(id symbol.Id) string {
	if l, ok := p.reg.LabelOf(id); ok {
		return l
	}
	return id.String()
}

func (p *Printer) opLabel(n *tree.Node) string {
	return p.label(n.Symbol)
}

// render prints n's natural form with no surrounding parens.
func (p *Printer) render(n *tree.Node) string {
	switch p.opLabel(n) {
	case "SEMTREX_SEQUENCE":
		parts := make([]string, n.ChildCount())
		for i := range parts {
			c, _ := n.ChildAt(i + 1)
			parts[i] = p.renderElement(c)
		}
		return strings.Join(parts, ",")

	case "SEMTREX_OR":
		left, _ := n.ChildAt(1)
		right, _ := n.ChildAt(2)
		return p.render(left) + "|" + p.render(right)

	case "SEMTREX_SYMBOL_LITERAL":
		sym, _ := n.ChildAt(1)
		out := p.renderSymbolRef(sym)
		if n.ChildCount() == 2 {
			descent, _ := n.ChildAt(2)
			out += "/" + p.renderElement(descent)
		}
		return out

	case "SEMTREX_SYMBOL_LITERAL_NOT":
		sym, _ := n.ChildAt(1)
		return "!" + p.renderSymbolRef(sym)

	case "SEMTREX_SYMBOL_ANY":
		return "."

	case "SEMTREX_NOT":
		child, _ := n.ChildAt(1)
		return "~" + p.renderElement(child)

	case "SEMTREX_WALK":
		child, _ := n.ChildAt(1)
		return "%" + p.renderElement(child)

	case "SEMTREX_DESCEND":
		child, _ := n.ChildAt(1)
		return "/" + p.renderElement(child)

	case "SEMTREX_GROUP":
		body, _ := n.ChildAt(1)
		return "<" + p.label(n.Surface.Ident) + ":" + p.render(body) + ">"

	case "SEMTREX_ZERO_OR_MORE":
		child, _ := n.ChildAt(1)
		return p.renderPostfixTarget(child) + "*"

	case "SEMTREX_ONE_OR_MORE":
		child, _ := n.ChildAt(1)
		return p.renderPostfixTarget(child) + "+"

	case "SEMTREX_ZERO_OR_ONE":
		child, _ := n.ChildAt(1)
		return p.renderPostfixTarget(child) + "?"

	case "SEMTREX_VALUE_LITERAL":
		sym, _ := n.ChildAt(1)
		val, _ := n.ChildAt(2)
		return p.renderSymbolRef(sym) + "=" + p.renderValueSet(val)

	case "SEMTREX_VALUE_LITERAL_NOT":
		sym, _ := n.ChildAt(1)
		val, _ := n.ChildAt(2)
		return p.renderSymbolRef(sym) + "!=" + p.renderValueSet(val)

	default:
		panic(fmt.Sprintf("pattern.Print: unexpected node symbol %s", p.opLabel(n)))
	}
}

// renderElement prints n as a grammar "element": siblings-level nodes
// (SEQUENCE, OR) must be wrapped in parens since they are only reachable as
// an element through the "(" siblings ")" atom production.
func (p *Printer) renderElement(n *tree.Node) string {
	switch p.opLabel(n) {
	case "SEMTREX_SEQUENCE", "SEMTREX_OR":
		return "(" + p.render(n) + ")"
	default:
		return p.render(n)
	}
}

// renderPostfixTarget prints n so that a trailing quantifier re-binds to
// all of n. Only constructs the grammar treats as a single quantifiable
// atom or group may appear bare; a descent-sugar literal would swallow the
// quantifier into its descent child, so it gets parens, as does everything
// at siblings level or already quantified.
func (p *Printer) renderPostfixTarget(n *tree.Node) string {
	switch p.opLabel(n) {
	case "SEMTREX_SYMBOL_LITERAL":
		if n.ChildCount() == 2 {
			return "(" + p.render(n) + ")"
		}
		return p.render(n)
	case "SEMTREX_SYMBOL_LITERAL_NOT", "SEMTREX_SYMBOL_ANY",
		"SEMTREX_VALUE_LITERAL", "SEMTREX_VALUE_LITERAL_NOT", "SEMTREX_GROUP":
		return p.render(n)
	default:
		return "(" + p.render(n) + ")"
	}
}

func (p *Printer) renderSymbolRef(n *tree.Node) string {
	switch p.opLabel(n) {
	case "SEMTREX_SYMBOL":
		return p.label(n.Surface.Ident)
	case "SEMTREX_SYMBOL_SET":
		parts := make([]string, n.ChildCount())
		for i := range parts {
			c, _ := n.ChildAt(i + 1)
			parts[i] = p.label(c.Surface.Ident)
		}
		return "{" + strings.Join(parts, ",") + "}"
	default:
		panic(fmt.Sprintf("pattern.Print: unexpected symbol-ref node %s", p.opLabel(n)))
	}
}

func (p *Printer) renderValueSet(n *tree.Node) string {
	if p.opLabel(n) == "SEMTREX_VALUE_SET" {
		parts := make([]string, n.ChildCount())
		for i := range parts {
			c, _ := n.ChildAt(i + 1)
			parts[i] = renderValue(c)
		}
		return "{" + strings.Join(parts, ",") + "}"
	}
	return renderValue(n)
}

// renderValue prints a plain value leaf's surface as a semtrex value
// literal. Numbers round-trip through Num regardless of whether the
// original token was an int or a float, so an integral value is always
// printed without a decimal point.
func renderValue(n *tree.Node) string {
	switch n.Surface.Tag {
	case tree.SurfaceNumber:
		f := n.Surface.Number
		if f == math.Trunc(f) {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	case tree.SurfaceString:
		return quoteString(n.Surface.Text)
	default:
		panic(fmt.Sprintf("pattern.Print: unexpected value surface tag %s", n.Surface.Tag))
	}
}

// quoteString escapes exactly the characters the lexer's scanString
// decodes, so Print's output always re-lexes to the same string.
func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
