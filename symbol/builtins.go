package symbol

// Built-in structure ids, context 0. Fixed so that later user definitions
// never collide with them.
const (
	BIT = iota + 1
	INTEGER
	FLOAT
	CHAR
	CSTRING
	SYMBOLSTRUCT
	BLOB
	INTEGER64
	TREE
	TREE_PATH
)

// Built-in SEMTREX_* operator symbol ids, context 0.
const (
	SEMTREX_SYMBOL_LITERAL = iota + 20
	SEMTREX_SYMBOL_LITERAL_NOT
	SEMTREX_SYMBOL
	SEMTREX_SYMBOL_SET
	SEMTREX_SYMBOL_ANY
	SEMTREX_SEQUENCE
	SEMTREX_OR
	SEMTREX_NOT
	SEMTREX_ZERO_OR_MORE
	SEMTREX_ONE_OR_MORE
	SEMTREX_ZERO_OR_ONE
	SEMTREX_VALUE_LITERAL
	SEMTREX_VALUE_LITERAL_NOT
	SEMTREX_VALUE_SET
	SEMTREX_GROUP
	SEMTREX_DESCEND
	SEMTREX_WALK
)

// Match-result vocabulary, ids 40..43.
const (
	SEMTREX_MATCH = iota + 40
	MATCH_SYMBOL
	MATCH_PATH
	MATCH_SIBLINGS_COUNT
)

// Embody/replace vocabulary.
const (
	SEMANTIC_MAP = iota + 44
	SEMANTIC_LINK
	USAGE
	REPLACEMENT_VALUE
)

var builtinStructureLabels = map[int]string{
	BIT:          "BIT",
	INTEGER:      "INTEGER",
	FLOAT:        "FLOAT",
	CHAR:         "CHAR",
	CSTRING:      "CSTRING",
	SYMBOLSTRUCT: "SYMBOL",
	BLOB:         "BLOB",
	INTEGER64:    "INTEGER64",
	TREE:         "TREE",
	TREE_PATH:    "TREE_PATH",
}

var builtinSymbolLabels = map[int]string{
	SEMTREX_SYMBOL_LITERAL:     "SEMTREX_SYMBOL_LITERAL",
	SEMTREX_SYMBOL_LITERAL_NOT: "SEMTREX_SYMBOL_LITERAL_NOT",
	SEMTREX_SYMBOL:             "SEMTREX_SYMBOL",
	SEMTREX_SYMBOL_SET:         "SEMTREX_SYMBOL_SET",
	SEMTREX_SYMBOL_ANY:         "SEMTREX_SYMBOL_ANY",
	SEMTREX_SEQUENCE:           "SEMTREX_SEQUENCE",
	SEMTREX_OR:                 "SEMTREX_OR",
	SEMTREX_NOT:                "SEMTREX_NOT",
	SEMTREX_ZERO_OR_MORE:       "SEMTREX_ZERO_OR_MORE",
	SEMTREX_ONE_OR_MORE:        "SEMTREX_ONE_OR_MORE",
	SEMTREX_ZERO_OR_ONE:        "SEMTREX_ZERO_OR_ONE",
	SEMTREX_VALUE_LITERAL:      "SEMTREX_VALUE_LITERAL",
	SEMTREX_VALUE_LITERAL_NOT:  "SEMTREX_VALUE_LITERAL_NOT",
	SEMTREX_VALUE_SET:          "SEMTREX_VALUE_SET",
	SEMTREX_GROUP:              "SEMTREX_GROUP",
	SEMTREX_DESCEND:            "SEMTREX_DESCEND",
	SEMTREX_WALK:               "SEMTREX_WALK",
	SEMTREX_MATCH:              "SEMTREX_MATCH",
	MATCH_SYMBOL:               "MATCH_SYMBOL",
	MATCH_PATH:                 "MATCH_PATH",
	MATCH_SIBLINGS_COUNT:       "MATCH_SIBLINGS_COUNT",
	SEMANTIC_MAP:               "SEMANTIC_MAP",
	SEMANTIC_LINK:              "SEMANTIC_LINK",
	USAGE:                      "USAGE",
	REPLACEMENT_VALUE:          "REPLACEMENT_VALUE",
}

// RegisterBuiltins installs the fixed system structures and SEMTREX_*
// symbols directly into context 0's table, then bumps the allocator's
// next-id counters past the largest registered id so that later DefineSymbol
// / DefineStructure calls never collide with a builtin. It must be called
// before any user-level definitions in context 0.
func (r *Registry) RegisterBuiltins() {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.partitionFor(0)

	maxStruct := 0
	for num, label := range builtinStructureLabels {
		p.structures[num] = StructureDef{Label: label}
		if num > maxStruct {
			maxStruct = num
		}
	}
	if p.nextStructureId <= maxStruct {
		p.nextStructureId = maxStruct + 1
	}

	maxSym := 0
	for num, label := range builtinSymbolLabels {
		p.symbols[num] = SymbolDef{Label: label, StructureId: NullStructure}
		if num > maxSym {
			maxSym = num
		}
	}
	if p.nextSymbolId <= maxSym {
		p.nextSymbolId = maxSym + 1
	}

	tracer().Debugf("registered %d builtin structures, %d builtin symbols",
		len(builtinStructureLabels), len(builtinSymbolLabels))
}
