// Package symtab holds the append-only, order-preserving tables that carry
// state between the assembler's two passes: the symbol table, the code and
// data images, and the attributes table consumed by the emitter.
//
// Grounded on the teacher's parser.SymbolTable (parser/symbols.go): a map
// keyed by name for O(1) lookup, plus a separate ordered slice wherever
// spec.md requires emission order to match insertion order.
package symtab

// SymbolKind is the classification of a symbol, per spec.md §3. Entry is an
// attribute overlay (IsEntry), not a fourth kind, so it is not listed here.
type SymbolKind int

const (
	KindCode SymbolKind = iota
	KindData
	KindExternal
)

// Symbol is one row of the symbol table.
type Symbol struct {
	Name       string
	Value      int64
	Kind       SymbolKind
	IsEntry    bool
	IsExternal bool
}

// Table is the ordered, append-only symbol table. Names are unique; a
// second Define for an existing name is a caller error (DuplicateLabel),
// checked by the caller via Lookup before calling Define.
type Table struct {
	order []string
	byName map[string]*Symbol
}

func NewTable() *Table {
	return &Table{byName: make(map[string]*Symbol)}
}

// Lookup returns the symbol named name, if any.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	s, ok := t.byName[name]
	return s, ok
}

// Define inserts a new symbol. The caller must have already checked that
// name is not yet defined; Define panics on a duplicate insert because
// duplicate-label detection is a pass-level concern (spec.md §4.4) that
// must run before Define is ever reached.
func (t *Table) Define(name string, value int64, kind SymbolKind) *Symbol {
	if _, exists := t.byName[name]; exists {
		panic("symtab: duplicate symbol " + name)
	}
	sym := &Symbol{Name: name, Value: value, Kind: kind, IsExternal: kind == KindExternal}
	t.byName[name] = sym
	t.order = append(t.order, name)
	return sym
}

// All returns every symbol in insertion order.
func (t *Table) All() []*Symbol {
	out := make([]*Symbol, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.byName[name])
	}
	return out
}

// AddICF adds finalICF to the value of every KindData symbol, realizing
// spec.md §3's "data follows code in memory" relocation rule. Called
// exactly once, at the end of first pass.
func (t *Table) AddICF(finalICF int64) {
	for _, name := range t.order {
		sym := t.byName[name]
		if sym.Kind == KindData {
			sym.Value += finalICF
		}
	}
}

// CodeEntry is one row of the code image (spec.md §3).
type CodeEntry struct {
	LineNumber int64
	Address    int32
	Type       string // "R", "I", or "J" — mirrors isa.InstructionType.String()
	Data       uint32
}

// DataEntry is one row of the data image (spec.md §3).
type DataEntry struct {
	Address      int64
	VariableSize int
	NumVariables int
	Data         []byte
}

func (d *DataEntry) DataSize() int {
	return d.VariableSize * d.NumVariables
}

// AttributeKind distinguishes the two kinds of attribute-table row.
type AttributeKind int

const (
	AttrEntry AttributeKind = iota
	AttrExternal
)

// Attribute is one row of the attributes table (spec.md §3): one per
// occurrence of an external operand, and one per distinct entry symbol.
type Attribute struct {
	Name    string
	Kind    AttributeKind
	Address int64
}

// Image accumulates the code image, data image, and attributes table for
// one source file. It is fresh per file (spec.md §5: no shared mutable
// state between files).
type Image struct {
	Code       []*CodeEntry
	Data       []*DataEntry
	Attributes []*Attribute
}

func NewImage() *Image {
	return &Image{}
}

func (img *Image) AppendCode(e *CodeEntry) {
	img.Code = append(img.Code, e)
}

func (img *Image) AppendData(e *DataEntry) {
	img.Data = append(img.Data, e)
}

func (img *Image) AppendAttribute(a *Attribute) {
	img.Attributes = append(img.Attributes, a)
}

// RelocateData adds finalICF to the address of every data-image entry,
// exactly once, at the end of first pass (spec.md §3/§4.4).
func (img *Image) RelocateData(finalICF int64) {
	for _, d := range img.Data {
		d.Address += finalICF
	}
}
