package tree

import (
	"bytes"
	"fmt"

	"github.com/synaptree/semtrex/symbol"
)

// SurfaceTag discriminates the scalar payload a Node may carry.
type SurfaceTag int8

// The numeric tag values double as the binary serialization's surface tags,
// so their order is part of the wire format.
const (
	SurfaceNull SurfaceTag = iota
	SurfaceNumber
	SurfaceString
	SurfaceBool
	SurfaceBytes
	SurfaceIdent
)

func (t SurfaceTag) String() string {
	switch t {
	case SurfaceNull:
		return "null"
	case SurfaceNumber:
		return "number"
	case SurfaceBool:
		return "bool"
	case SurfaceString:
		return "string"
	case SurfaceBytes:
		return "bytes"
	case SurfaceIdent:
		return "ident"
	default:
		return fmt.Sprintf("SurfaceTag(%d)", int8(t))
	}
}

// Surface is the scalar value payload attached to a tree node: null, a
// signed number, a boolean, a string, a byte array, or an identifier.
type Surface struct {
	Tag    SurfaceTag
	Number float64
	Text   string
	Flag   bool
	Bytes  []byte
	Ident  symbol.Id
}

// Null is the empty surface.
var Null = Surface{Tag: SurfaceNull}

// Num wraps a numeric surface value.
func Num(n float64) Surface { return Surface{Tag: SurfaceNumber, Number: n} }

// Bool wraps a boolean surface value.
func Bool(b bool) Surface { return Surface{Tag: SurfaceBool, Flag: b} }

// Str wraps a string surface value.
func Str(s string) Surface { return Surface{Tag: SurfaceString, Text: s} }

// Blob wraps a byte-array surface value.
func Blob(b []byte) Surface { return Surface{Tag: SurfaceBytes, Bytes: append([]byte(nil), b...)} }

// IdentSurface wraps an identifier surface value.
func IdentSurface(id symbol.Id) Surface { return Surface{Tag: SurfaceIdent, Ident: id} }

// Equal reports structural equality: byte arrays compare by content,
// identifiers by component, everything else by value.
func (s Surface) Equal(o Surface) bool {
	if s.Tag != o.Tag {
		return false
	}
	switch s.Tag {
	case SurfaceNull:
		return true
	case SurfaceNumber:
		return s.Number == o.Number
	case SurfaceBool:
		return s.Flag == o.Flag
	case SurfaceString:
		return s.Text == o.Text
	case SurfaceBytes:
		return bytes.Equal(s.Bytes, o.Bytes)
	case SurfaceIdent:
		return s.Ident == o.Ident
	default:
		return false
	}
}

func (s Surface) String() string {
	switch s.Tag {
	case SurfaceNull:
		return "null"
	case SurfaceNumber:
		return fmt.Sprintf("%g", s.Number)
	case SurfaceBool:
		return fmt.Sprintf("%v", s.Flag)
	case SurfaceString:
		return fmt.Sprintf("%q", s.Text)
	case SurfaceBytes:
		return fmt.Sprintf("<blob:%d>", len(s.Bytes))
	case SurfaceIdent:
		return fmt.Sprintf("{%d,%s,%d}", s.Ident.Context, s.Ident.Kind, s.Ident.Num)
	default:
		return "?"
	}
}
