package tree

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/synaptree/semtrex/symbol"
)

// --- Text form ---------------------------------------------------------
//
// `(LABEL[:surface] child*)`, the same shape Printer emits. Parsing
// resolves LABEL through reg; an unknown label is an error.

type textParser struct {
	src []rune
	pos int
	reg *symbol.Registry
}

// ParseText parses the text form produced by Printer.Print back into a
// tree, resolving labels through reg.
func ParseText(reg *symbol.Registry, src string) (*Node, error) {
	p := &textParser{src: []rune(src), reg: reg}
	p.skipSpace()
	n, err := p.parseNode()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("trailing input at position %d", p.pos)
	}
	tracer().Debugf("parsed tree literal, root %s", n.Symbol)
	return n, nil
}

func (p *textParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n') {
		p.pos++
	}
}

func (p *textParser) parseNode() (*Node, error) {
	if p.pos >= len(p.src) || p.src[p.pos] != '(' {
		return nil, fmt.Errorf("expected '(' at position %d", p.pos)
	}
	p.pos++
	start := p.pos
	for p.pos < len(p.src) && !strings.ContainsRune(":()\t\n ", p.src[p.pos]) {
		p.pos++
	}
	label := string(p.src[start:p.pos])
	id, ok := p.reg.SymbolByName(label)
	if !ok {
		return nil, fmt.Errorf("unknown symbol label %q", label)
	}
	surface := Null
	if p.pos < len(p.src) && p.src[p.pos] == ':' {
		p.pos++
		lit, err := p.scanSurfaceLiteral()
		if err != nil {
			return nil, err
		}
		surface, err = parseSurfaceLiteral(lit)
		if err != nil {
			return nil, err
		}
	}
	n := New(id, surface)
	for {
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == ')' {
			p.pos++
			return n, nil
		}
		child, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		AddChild(n, child)
	}
}

// scanSurfaceLiteral consumes the raw text of one surface literal. Quoted
// strings may contain spaces and parens, so they are scanned up to the
// closing unescaped quote; everything else ends at the next delimiter.
func (p *textParser) scanSurfaceLiteral() (string, error) {
	start := p.pos
	if p.pos < len(p.src) && p.src[p.pos] == '"' {
		p.pos++
		for p.pos < len(p.src) {
			switch p.src[p.pos] {
			case '\\':
				p.pos += 2
			case '"':
				p.pos++
				return string(p.src[start:p.pos]), nil
			default:
				p.pos++
			}
		}
		return "", fmt.Errorf("unterminated string surface at position %d", start)
	}
	for p.pos < len(p.src) && !strings.ContainsRune("()\t\n ", p.src[p.pos]) {
		p.pos++
	}
	return string(p.src[start:p.pos]), nil
}

func parseSurfaceLiteral(s string) (Surface, error) {
	switch {
	case s == "null":
		return Null, nil
	case s == "true":
		return Bool(true), nil
	case s == "false":
		return Bool(false), nil
	case strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) && len(s) >= 2:
		unq, err := strconv.Unquote(s)
		if err != nil {
			return Surface{}, err
		}
		return Str(unq), nil
	case strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}"):
		parts := strings.Split(s[1:len(s)-1], ",")
		if len(parts) != 3 {
			return Surface{}, fmt.Errorf("malformed identifier surface %q", s)
		}
		ctx, err := strconv.Atoi(parts[0])
		if err != nil {
			return Surface{}, fmt.Errorf("malformed identifier surface %q", s)
		}
		kind, ok := symbol.KindFromName(parts[1])
		if !ok {
			return Surface{}, fmt.Errorf("unknown identifier kind in %q", s)
		}
		num, err := strconv.Atoi(parts[2])
		if err != nil {
			return Surface{}, fmt.Errorf("malformed identifier surface %q", s)
		}
		return IdentSurface(symbol.Id{Context: ctx, Kind: kind, Num: num}), nil
	case strings.HasPrefix(s, "<blob:") && strings.HasSuffix(s, ">"):
		nStr := strings.TrimSuffix(strings.TrimPrefix(s, "<blob:"), ">")
		n, err := strconv.Atoi(nStr)
		if err != nil {
			return Surface{}, err
		}
		return Blob(make([]byte, n)), nil
	default:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Surface{}, fmt.Errorf("unrecognized surface literal %q", s)
		}
		return Num(f), nil
	}
}

// --- Binary form ---------------------------------------------------------
//
// Per node: [context:i32][kind:i32][id:i32][childCount:u32][surfaceTag:u8]
// [surface bytes], children following in order (pre-order, depth-first).

// EncodeBinary serializes n and its subtree.
func EncodeBinary(n *Node) []byte {
	var buf []byte
	buf = encodeNodeBinary(buf, n)
	return buf
}

func encodeNodeBinary(buf []byte, n *Node) []byte {
	buf = appendI32(buf, int32(n.Symbol.Context))
	buf = appendI32(buf, int32(n.Symbol.Kind))
	buf = appendI32(buf, int32(n.Symbol.Num))
	buf = appendU32(buf, uint32(n.ChildCount()))
	buf = append(buf, byte(n.Surface.Tag))
	switch n.Surface.Tag {
	case SurfaceNull:
	case SurfaceNumber:
		bits := make([]byte, 8)
		binary.BigEndian.PutUint64(bits, math.Float64bits(n.Surface.Number))
		buf = append(buf, bits...)
	case SurfaceString:
		buf = appendU32(buf, uint32(len(n.Surface.Text)))
		buf = append(buf, []byte(n.Surface.Text)...)
	case SurfaceBool:
		if n.Surface.Flag {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	case SurfaceBytes:
		buf = appendU32(buf, uint32(len(n.Surface.Bytes)))
		buf = append(buf, n.Surface.Bytes...)
	case SurfaceIdent:
		buf = appendI32(buf, int32(n.Surface.Ident.Context))
		buf = appendI32(buf, int32(n.Surface.Ident.Kind))
		buf = appendI32(buf, int32(n.Surface.Ident.Num))
	}
	for _, c := range n.children {
		buf = encodeNodeBinary(buf, c)
	}
	return buf
}

// DecodeBinary deserializes a tree previously produced by EncodeBinary.
func DecodeBinary(buf []byte) (*Node, error) {
	n, rest, err := decodeNodeBinary(buf)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%d trailing bytes after decode", len(rest))
	}
	return n, nil
}

func decodeNodeBinary(buf []byte) (*Node, []byte, error) {
	if len(buf) < 4*3+4+1 {
		return nil, nil, fmt.Errorf("truncated node header")
	}
	ctx, buf := readI32(buf)
	kind, buf := readI32(buf)
	id, buf := readI32(buf)
	childCount, buf := readU32(buf)
	if len(buf) < 1 {
		return nil, nil, fmt.Errorf("truncated surface tag")
	}
	tag := SurfaceTag(buf[0])
	buf = buf[1:]
	var surf Surface
	switch tag {
	case SurfaceNull:
		surf = Null
	case SurfaceNumber:
		if len(buf) < 8 {
			return nil, nil, fmt.Errorf("truncated number surface")
		}
		surf = Num(math.Float64frombits(binary.BigEndian.Uint64(buf[:8])))
		buf = buf[8:]
	case SurfaceString:
		var n uint32
		n, buf = readU32(buf)
		if uint32(len(buf)) < n {
			return nil, nil, fmt.Errorf("truncated string surface")
		}
		surf = Str(string(buf[:n]))
		buf = buf[n:]
	case SurfaceBool:
		if len(buf) < 1 {
			return nil, nil, fmt.Errorf("truncated bool surface")
		}
		surf = Bool(buf[0] != 0)
		buf = buf[1:]
	case SurfaceBytes:
		var n uint32
		n, buf = readU32(buf)
		if uint32(len(buf)) < n {
			return nil, nil, fmt.Errorf("truncated blob surface")
		}
		surf = Blob(buf[:n])
		buf = buf[n:]
	case SurfaceIdent:
		sc, b1 := readI32(buf)
		sk, b2 := readI32(b1)
		sn, b3 := readI32(b2)
		surf = IdentSurface(symbol.Id{Context: int(sc), Kind: symbol.Kind(sk), Num: int(sn)})
		buf = b3
	default:
		return nil, nil, fmt.Errorf("unknown surface tag %d", tag)
	}
	n := New(symbol.Id{Context: int(ctx), Kind: symbol.Kind(kind), Num: int(id)}, surf)
	for i := uint32(0); i < childCount; i++ {
		var child *Node
		var err error
		child, buf, err = decodeNodeBinary(buf)
		if err != nil {
			return nil, nil, err
		}
		AddChild(n, child)
	}
	return n, buf, nil
}

func appendI32(buf []byte, v int32) []byte { return appendU32(buf, uint32(v)) }
func appendU32(buf []byte, v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return append(buf, b...)
}
func readI32(buf []byte) (int32, []byte) {
	v, rest := readU32(buf)
	return int32(v), rest
}
func readU32(buf []byte) (uint32, []byte) {
	return binary.BigEndian.Uint32(buf), buf[4:]
}

// --- JSON form -------------------------------------------------------------
//
// Mirrors the binary form's tag set, using arrays-of-bytes for blobs.

type jsonNode struct {
	Context     int        `json:"context"`
	Kind        int8       `json:"kind"`
	Id          int        `json:"id"`
	SurfaceTag  SurfaceTag `json:"surfaceTag"`
	Number      float64    `json:"number,omitempty"`
	Text        string     `json:"text,omitempty"`
	Flag        bool       `json:"flag,omitempty"`
	Bytes       []byte     `json:"bytes,omitempty"`
	IdentCtx    int        `json:"identContext,omitempty"`
	IdentKind   int8       `json:"identKind,omitempty"`
	IdentNum    int        `json:"identNum,omitempty"`
	Children    []jsonNode `json:"children,omitempty"`
}

func toJSONNode(n *Node) jsonNode {
	jn := jsonNode{
		Context:    n.Symbol.Context,
		Kind:       int8(n.Symbol.Kind),
		Id:         n.Symbol.Num,
		SurfaceTag: n.Surface.Tag,
	}
	switch n.Surface.Tag {
	case SurfaceNumber:
		jn.Number = n.Surface.Number
	case SurfaceString:
		jn.Text = n.Surface.Text
	case SurfaceBool:
		jn.Flag = n.Surface.Flag
	case SurfaceBytes:
		jn.Bytes = n.Surface.Bytes
	case SurfaceIdent:
		jn.IdentCtx = n.Surface.Ident.Context
		jn.IdentKind = int8(n.Surface.Ident.Kind)
		jn.IdentNum = n.Surface.Ident.Num
	}
	for _, c := range n.children {
		jn.Children = append(jn.Children, toJSONNode(c))
	}
	return jn
}

func (jn jsonNode) toNode() *Node {
	var surf Surface
	switch jn.SurfaceTag {
	case SurfaceNull:
		surf = Null
	case SurfaceNumber:
		surf = Num(jn.Number)
	case SurfaceString:
		surf = Str(jn.Text)
	case SurfaceBool:
		surf = Bool(jn.Flag)
	case SurfaceBytes:
		surf = Blob(jn.Bytes)
	case SurfaceIdent:
		surf = IdentSurface(symbol.Id{Context: jn.IdentCtx, Kind: symbol.Kind(jn.IdentKind), Num: jn.IdentNum})
	}
	n := New(symbol.Id{Context: jn.Context, Kind: symbol.Kind(jn.Kind), Num: jn.Id}, surf)
	for _, c := range jn.Children {
		AddChild(n, c.toNode())
	}
	return n
}

// EncodeJSON serializes n and its subtree to JSON.
func EncodeJSON(n *Node) ([]byte, error) {
	return json.Marshal(toJSONNode(n))
}

// DecodeJSON deserializes a tree previously produced by EncodeJSON.
func DecodeJSON(data []byte) (*Node, error) {
	var jn jsonNode
	if err := json.Unmarshal(data, &jn); err != nil {
		return nil, err
	}
	return jn.toNode(), nil
}
