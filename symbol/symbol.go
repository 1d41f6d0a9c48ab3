/*
Package symbol implements semantic identifiers and a process-local registry
that resolves names to identifiers and back.

An identifier is a (context, kind, id) triple. Contexts are integer
namespaces (0 is the system context); kinds separate structures from
symbols, processes, receptors and protocols so that e.g. a symbol and a
structure can share the same numeric id without colliding.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package symbol

import (
	"fmt"
	"sort"
	"sync"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'semtrex.symbol'.
func tracer() tracing.Trace {
	return tracing.Select("semtrex.symbol")
}

// Kind discriminates the namespace an Id belongs to within a context.
type Kind int8

const (
	STRUCTURE Kind = iota
	SYMBOL
	PROCESS
	RECEPTOR
	PROTOCOL
)

func (k Kind) String() string {
	switch k {
	case STRUCTURE:
		return "STRUCTURE"
	case SYMBOL:
		return "SYMBOL"
	case PROCESS:
		return "PROCESS"
	case RECEPTOR:
		return "RECEPTOR"
	case PROTOCOL:
		return "PROTOCOL"
	default:
		return fmt.Sprintf("Kind(%d)", int8(k))
	}
}

// KindFromName resolves a kind's name, as printed by Kind.String, back to
// the Kind value.
func KindFromName(name string) (Kind, bool) {
	switch name {
	case "STRUCTURE":
		return STRUCTURE, true
	case "SYMBOL":
		return SYMBOL, true
	case "PROCESS":
		return PROCESS, true
	case "RECEPTOR":
		return RECEPTOR, true
	case "PROTOCOL":
		return PROTOCOL, true
	}
	return 0, false
}

// Id is a semantic identifier: a (context, kind, id) triple. Equality is
// component-wise, so Id is safely comparable with ==.
type Id struct {
	Context int
	Kind    Kind
	Num     int
}

// NullSymbol is the distinguished "no symbol" identifier.
var NullSymbol = Id{Context: 0, Kind: SYMBOL, Num: 0}

// NullStructure is the distinguished "no structure" identifier. It is
// distinct from NullSymbol even though both have Num 0, because their Kind
// differs.
var NullStructure = Id{Context: 0, Kind: STRUCTURE, Num: 0}

// IsNull reports whether id is either sentinel value.
func (id Id) IsNull() bool {
	return id == NullSymbol || id == NullStructure
}

func (id Id) String() string {
	return fmt.Sprintf("(%d,%s,%d)", id.Context, id.Kind, id.Num)
}

// SymbolDef is the stored definition of a symbol: its label and the
// structure describing the shape of values tagged with this symbol.
type SymbolDef struct {
	Label       string
	StructureId Id
}

// StructureDef is the stored definition of a structure: its label and its
// ordered parts (each part is itself an identifier, usually of a symbol or
// a nested structure).
type StructureDef struct {
	Label string
	Parts []Id
}

// partition holds all definitions local to a single context.
type partition struct {
	symbols         map[int]SymbolDef
	structures      map[int]StructureDef
	nextSymbolId    int
	nextStructureId int
}

func newPartition() *partition {
	return &partition{
		symbols:         make(map[int]SymbolDef),
		structures:      make(map[int]StructureDef),
		nextSymbolId:    1,
		nextStructureId: 1,
	}
}

// Registry is a process-local, context-partitioned symbol/structure table.
// The zero value is not usable; create one with NewRegistry.
type Registry struct {
	mu         sync.Mutex
	partitions map[int]*partition
}

// NewRegistry creates an empty registry. Call RegisterBuiltins on it before
// any user-level definitions if the fixed built-in ids are required.
func NewRegistry() *Registry {
	return &Registry{partitions: make(map[int]*partition)}
}

func (r *Registry) partitionFor(ctx int) *partition {
	p, ok := r.partitions[ctx]
	if !ok {
		p = newPartition()
		r.partitions[ctx] = p
	}
	return p
}

// DefineSymbol allocates the next symbol id in ctx and records its label and
// structure id. The assigned Id is returned.
func (r *Registry) DefineSymbol(ctx int, structureId Id, label string) Id {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.partitionFor(ctx)
	num := p.nextSymbolId
	p.nextSymbolId++
	p.symbols[num] = SymbolDef{Label: label, StructureId: structureId}
	tracer().Debugf("defined symbol %s = %q", Id{ctx, SYMBOL, num}, label)
	return Id{Context: ctx, Kind: SYMBOL, Num: num}
}

// DefineStructure allocates the next structure id in ctx and records its
// label and ordered parts.
func (r *Registry) DefineStructure(ctx int, label string, parts ...Id) Id {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.partitionFor(ctx)
	num := p.nextStructureId
	p.nextStructureId++
	p.structures[num] = StructureDef{Label: label, Parts: append([]Id(nil), parts...)}
	tracer().Debugf("defined structure %s = %q", Id{ctx, STRUCTURE, num}, label)
	return Id{Context: ctx, Kind: STRUCTURE, Num: num}
}

// LabelOf resolves an identifier to the label of its stored definition.
func (r *Registry) LabelOf(id Id) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.partitions[id.Context]
	if !ok {
		return "", false
	}
	switch id.Kind {
	case STRUCTURE:
		s, ok := p.structures[id.Num]
		return s.Label, ok
	default:
		s, ok := p.symbols[id.Num]
		return s.Label, ok
	}
}

// SymbolDefOf resolves a symbol id to its full definition.
func (r *Registry) SymbolDefOf(id Id) (SymbolDef, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.partitions[id.Context]
	if !ok {
		return SymbolDef{}, false
	}
	d, ok := p.symbols[id.Num]
	return d, ok
}

// StructureDefOf resolves a structure id to its full definition.
func (r *Registry) StructureDefOf(id Id) (StructureDef, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.partitions[id.Context]
	if !ok {
		return StructureDef{}, false
	}
	d, ok := p.structures[id.Num]
	return d, ok
}

// contextsSorted returns the registry's context ids in ascending order, the
// deterministic iteration order "by name" lookups use.
func (r *Registry) contextsSorted() []int {
	ctxs := make([]int, 0, len(r.partitions))
	for c := range r.partitions {
		ctxs = append(ctxs, c)
	}
	sort.Ints(ctxs)
	return ctxs
}

// SymbolByName resolves a label to a symbol id, searching contexts in
// ascending order and, within a context, in ascending numeric id order. It
// returns the first hit.
func (r *Registry) SymbolByName(label string) (Id, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ctx := range r.contextsSorted() {
		p := r.partitions[ctx]
		ids := make([]int, 0, len(p.symbols))
		for n := range p.symbols {
			ids = append(ids, n)
		}
		sort.Ints(ids)
		for _, n := range ids {
			if p.symbols[n].Label == label {
				return Id{Context: ctx, Kind: SYMBOL, Num: n}, true
			}
		}
	}
	return NullSymbol, false
}

// StructureByName resolves a label to a structure id, with the same
// deterministic search order as SymbolByName.
func (r *Registry) StructureByName(label string) (Id, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ctx := range r.contextsSorted() {
		p := r.partitions[ctx]
		ids := make([]int, 0, len(p.structures))
		for n := range p.structures {
			ids = append(ids, n)
		}
		sort.Ints(ids)
		for _, n := range ids {
			if p.structures[n].Label == label {
				return Id{Context: ctx, Kind: STRUCTURE, Num: n}, true
			}
		}
	}
	return NullStructure, false
}
