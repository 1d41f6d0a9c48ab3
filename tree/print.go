package tree

import (
	"bytes"
	"fmt"

	"github.com/synaptree/semtrex/symbol"
)

// Printer renders trees as the parenthesized text form `(LABEL[:surface]
// child*)`, resolving symbol ids to labels via reg.
type Printer struct {
	reg *symbol.Registry
}

// NewPrinter creates a Printer that resolves labels through reg.
func NewPrinter(reg *symbol.Registry) *Printer {
	return &Printer{reg: reg}
}

// Print renders n and its subtree.
func (p *Printer) Print(n *Node) string {
	var buf bytes.Buffer
	p.write(&buf, n)
	return buf.String()
}

func (p *Printer) label(id symbol.Id) string {
	if p.reg != nil {
		if l, ok := p.reg.LabelOf(id); ok {
			return l
		}
	}
	return id.String()
}

func (p *Printer) write(buf *bytes.Buffer, n *Node) {
	if n == nil {
		buf.WriteString("()")
		return
	}
	fmt.Fprintf(buf, "(%s", p.label(n.Symbol))
	if n.Surface.Tag != SurfaceNull {
		fmt.Fprintf(buf, ":%s", n.Surface)
	}
	for _, c := range n.children {
		buf.WriteByte(' ')
		p.write(buf, c)
	}
	buf.WriteByte(')')
}
