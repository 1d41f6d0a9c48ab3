package pattern

import (
	"github.com/synaptree/semtrex/symbol"
	"github.com/synaptree/semtrex/tree"
)

// Parser is a hand-written recursive-descent parser for the semtrex
// grammar: a single lookahead token, one method per grammar production.
// Labels are resolved against reg; an unresolved label in a symbol or value
// literal is a parse error, while a group's capture label is defined in
// context 0 on first use.
type Parser struct {
	reg *symbol.Registry
	lex *Lexer
	cur Token
}

// NewParser creates a Parser resolving labels through reg. reg should
// already have RegisterBuiltins called on it.
func NewParser(reg *symbol.Registry) *Parser {
	return &Parser{reg: reg}
}

// Parse compiles src into a pattern tree.
func (p *Parser) Parse(src string) (*tree.Node, error) {
	p.lex = NewLexer(src)
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expect(TokSlash); err != nil {
		return nil, err
	}
	n, err := p.parseSiblings()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != TokEOF {
		return nil, UnexpectedToken{Pos: p.cur.Pos, Expected: "EOF", Got: p.cur}
	}
	tracer().Debugf("parsed pattern %q", src)
	return n, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) expect(k TokKind) error {
	if p.cur.Kind != k {
		return UnexpectedToken{Pos: p.cur.Pos, Expected: k.String(), Got: p.cur}
	}
	return p.advance()
}

func (p *Parser) sym(id int) symbol.Id {
	return symbol.Id{Context: 0, Kind: symbol.SYMBOL, Num: id}
}

func (p *Parser) node1(opId int, surface tree.Surface, child *tree.Node) *tree.Node {
	n := tree.New(p.sym(opId), surface)
	if child != nil {
		tree.AddChild(n, child)
	}
	return n
}

func (p *Parser) nodeN(opId int, children ...*tree.Node) *tree.Node {
	n := tree.New(p.sym(opId), tree.Null)
	for _, c := range children {
		tree.AddChild(n, c)
	}
	return n
}

// --- Grammar productions ---------------------------------------------------

// siblings = orExpr
func (p *Parser) parseSiblings() (*tree.Node, error) {
	return p.parseOrExpr()
}

// orExpr = seqExpr ("|" seqExpr)*
func (p *Parser) parseOrExpr() (*tree.Node, error) {
	left, err := p.parseSeqExpr()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == TokPipe {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseSeqExpr()
		if err != nil {
			return nil, err
		}
		left = p.nodeN(symbol.SEMTREX_OR, left, right)
	}
	return left, nil
}

// seqExpr = element ("," element)*
func (p *Parser) parseSeqExpr() (*tree.Node, error) {
	first, err := p.parseElement()
	if err != nil {
		return nil, err
	}
	elems := []*tree.Node{first}
	for p.cur.Kind == TokComma {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		elems = append(elems, next)
	}
	if len(elems) == 1 {
		return elems[0], nil
	}
	return p.nodeN(symbol.SEMTREX_SEQUENCE, elems...), nil
}

// element = walk | not | group (postfix)? | atom (postfix)?
func (p *Parser) parseElement() (*tree.Node, error) {
	switch p.cur.Kind {
	case TokPercent:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		return p.node1(symbol.SEMTREX_WALK, tree.Null, inner), nil
	case TokTilde:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		return p.node1(symbol.SEMTREX_NOT, tree.Null, inner), nil
	case TokLAngle:
		n, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		return p.applyPostfix(n)
	default:
		n, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return p.applyPostfix(n)
	}
}

// group = "<" LABEL ":" siblings ">"
func (p *Parser) parseGroup() (*tree.Node, error) {
	startPos := p.cur.Pos
	if err := p.expect(TokLAngle); err != nil {
		return nil, err
	}
	if p.cur.Kind != TokLabel {
		return nil, UnexpectedToken{Pos: p.cur.Pos, Expected: "label", Got: p.cur}
	}
	label := p.cur.Text
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expect(TokColon); err != nil {
		return nil, err
	}
	if p.cur.Kind == TokEOF {
		return nil, UnterminatedConstruct{Pos: startPos, What: "group"}
	}
	body, err := p.parseSiblings()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind == TokEOF {
		return nil, UnterminatedConstruct{Pos: startPos, What: "group"}
	}
	if err := p.expect(TokRAngle); err != nil {
		return nil, err
	}
	captureSym := p.resolveOrDefine(label)
	return p.node1(symbol.SEMTREX_GROUP, tree.IdentSurface(captureSym), body), nil
}

// resolveOrDefine resolves label to a symbol id, defining it in context 0
// if it is not yet known (group capture names need not pre-exist, unlike
// symbol/value literals, which must reference an existing label).
func (p *Parser) resolveOrDefine(label string) symbol.Id {
	if id, ok := p.reg.SymbolByName(label); ok {
		return id
	}
	return p.reg.DefineSymbol(0, symbol.NullStructure, label)
}

// atom = "/" element | "." | "(" siblings ")" | "!" (LABEL | "{" symset "}")
//      | LABEL postValue? | "{" symset "}"
func (p *Parser) parseAtom() (*tree.Node, error) {
	switch p.cur.Kind {
	case TokSlash:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		return p.node1(symbol.SEMTREX_DESCEND, tree.Null, inner), nil

	case TokDot:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.nodeN(symbol.SEMTREX_SYMBOL_ANY), nil

	case TokLParen:
		startPos := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseSiblings()
		if err != nil {
			return nil, err
		}
		if p.cur.Kind == TokEOF {
			return nil, UnterminatedConstruct{Pos: startPos, What: "parenthesized expression"}
		}
		if err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		return inner, nil

	case TokBang:
		if err := p.advance(); err != nil {
			return nil, err
		}
		child, err := p.parseSymbolOrSet()
		if err != nil {
			return nil, err
		}
		return p.node1(symbol.SEMTREX_SYMBOL_LITERAL_NOT, tree.Null, child), nil

	case TokLBrace:
		child, err := p.parseSymbolOrSet()
		if err != nil {
			return nil, err
		}
		return p.node1(symbol.SEMTREX_SYMBOL_LITERAL, tree.Null, child), nil

	case TokLabel:
		pos := p.cur.Pos
		label := p.cur.Text
		id, ok := p.reg.SymbolByName(label)
		if !ok {
			return nil, UnknownSymbol{Pos: pos, Label: label}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.parsePostValue(id)

	default:
		return nil, UnexpectedToken{Pos: p.cur.Pos, Expected: "pattern atom", Got: p.cur}
	}
}

// parseSymbolOrSet parses either a bare LABEL (producing a SEMTREX_SYMBOL
// node) or "{" symset "}" (producing a SEMTREX_SYMBOL_SET node).
func (p *Parser) parseSymbolOrSet() (*tree.Node, error) {
	if p.cur.Kind == TokLBrace {
		startPos := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		set, err := p.parseSymSet()
		if err != nil {
			return nil, err
		}
		if p.cur.Kind == TokEOF {
			return nil, UnterminatedConstruct{Pos: startPos, What: "symbol set"}
		}
		if err := p.expect(TokRBrace); err != nil {
			return nil, err
		}
		return set, nil
	}
	if p.cur.Kind != TokLabel {
		return nil, UnexpectedToken{Pos: p.cur.Pos, Expected: "label or '{'", Got: p.cur}
	}
	pos := p.cur.Pos
	label := p.cur.Text
	id, ok := p.reg.SymbolByName(label)
	if !ok {
		return nil, UnknownSymbol{Pos: pos, Label: label}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.symbolNode(id), nil
}

func (p *Parser) symbolNode(id symbol.Id) *tree.Node {
	return p.node1(symbol.SEMTREX_SYMBOL, tree.IdentSurface(id), nil)
}

// symset = LABEL ("," LABEL)*
func (p *Parser) parseSymSet() (*tree.Node, error) {
	var ids []*tree.Node
	for {
		if p.cur.Kind != TokLabel {
			return nil, UnexpectedToken{Pos: p.cur.Pos, Expected: "label", Got: p.cur}
		}
		pos := p.cur.Pos
		label := p.cur.Text
		id, ok := p.reg.SymbolByName(label)
		if !ok {
			return nil, UnknownSymbol{Pos: pos, Label: label}
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		ids = append(ids, p.symbolNode(id))
		if p.cur.Kind != TokComma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return p.nodeN(symbol.SEMTREX_SYMBOL_SET, ids...), nil
}

// postValue = "!" "=" value(set) | "=" value(set) | "/" element | ε
func (p *Parser) parsePostValue(id symbol.Id) (*tree.Node, error) {
	switch p.cur.Kind {
	case TokBang:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(TokEqual); err != nil {
			return nil, err
		}
		val, err := p.parseValueSet()
		if err != nil {
			return nil, err
		}
		return p.nodeN(symbol.SEMTREX_VALUE_LITERAL_NOT, p.symbolNode(id), val), nil

	case TokEqual:
		if err := p.advance(); err != nil {
			return nil, err
		}
		val, err := p.parseValueSet()
		if err != nil {
			return nil, err
		}
		return p.nodeN(symbol.SEMTREX_VALUE_LITERAL, p.symbolNode(id), val), nil

	case TokSlash:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		// Descent sugar: kept as a second child of SYMBOL_LITERAL, not
		// wrapped in SEMTREX_DESCEND, which preserves level information
		// the NFA builder relies on.
		return p.nodeN(symbol.SEMTREX_SYMBOL_LITERAL, p.symbolNode(id), inner), nil

	default:
		return p.nodeN(symbol.SEMTREX_SYMBOL_LITERAL, p.symbolNode(id)), nil
	}
}

// value(set) = value | "{" value ("," value)* "}"
func (p *Parser) parseValueSet() (*tree.Node, error) {
	if p.cur.Kind == TokLBrace {
		startPos := p.cur.Pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		var vals []*tree.Node
		for {
			v, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			vals = append(vals, v)
			if p.cur.Kind != TokComma {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		if p.cur.Kind == TokEOF {
			return nil, UnterminatedConstruct{Pos: startPos, What: "value set"}
		}
		if err := p.expect(TokRBrace); err != nil {
			return nil, err
		}
		return p.nodeN(symbol.SEMTREX_VALUE_SET, vals...), nil
	}
	return p.parseValue()
}

// value = INT | FLOAT | CHAR_LIT | STRING_LIT
// A bare value becomes a leaf node carrying the literal as its Surface; it
// is tagged with NullSymbol since the value's own label is not meaningful
// (the enclosing VALUE_LITERAL/VALUE_SET already records which symbol the
// value applies to).
func (p *Parser) parseValue() (*tree.Node, error) {
	switch p.cur.Kind {
	case TokInt:
		n := tree.New(symbol.NullSymbol, tree.Num(float64(p.cur.Int)))
		return n, p.advance()
	case TokFloat:
		n := tree.New(symbol.NullSymbol, tree.Num(p.cur.Float))
		return n, p.advance()
	case TokChar:
		n := tree.New(symbol.NullSymbol, tree.Str(string(p.cur.Char)))
		return n, p.advance()
	case TokString:
		n := tree.New(symbol.NullSymbol, tree.Str(p.cur.Text))
		return n, p.advance()
	default:
		return nil, UnexpectedToken{Pos: p.cur.Pos, Expected: "value literal", Got: p.cur}
	}
}

// postfix = "*" | "+" | "?"
func (p *Parser) applyPostfix(n *tree.Node) (*tree.Node, error) {
	switch p.cur.Kind {
	case TokStar:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.node1(symbol.SEMTREX_ZERO_OR_MORE, tree.Null, n), nil
	case TokPlus:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.node1(symbol.SEMTREX_ONE_OR_MORE, tree.Null, n), nil
	case TokQuestion:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.node1(symbol.SEMTREX_ZERO_OR_ONE, tree.Null, n), nil
	default:
		return n, nil
	}
}
