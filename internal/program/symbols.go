package program

import (
	"go/ast"
)

type SymbolKind int

const (
	KindType SymbolKind = iota
	KindInterface
	KindFunc
	KindMethod
	KindField
	KindConst
	KindVar
)

func (k SymbolKind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindInterface:
		return "interface"
	case KindFunc:
		return "func"
	case KindMethod:
		return "method"
	case KindField:
		return "field"
	case KindConst:
		return "const"
	case KindVar:
		return "var"
	default:
		return "unknown"
	}
}

// Symbol is one declared entity: type, function, method, field, constant
// or variable. Methods are keyed by their original-definition receiver so
// that Base[T] and Base[Concrete] resolve to the same declaration.
type Symbol struct {
	ID       string // "Name" or "Recv.Name" for methods and fields
	Name     string
	Kind     SymbolKind
	UnitID   string
	Recv     string // receiver or owning type, methods and fields only
	Ident    *ast.Ident
	Decl     ast.Node
	Exported bool
}

// FieldInfo describes one named struct field.
type FieldInfo struct {
	Name     string
	TypeName string // original-definition name of the field type
	Field    *ast.Field
}

// TypeInfo aggregates everything known about one declared type.
type TypeInfo struct {
	Name        string
	UnitID      string
	Spec        *ast.TypeSpec
	IsInterface bool
	Embeds      []string // original-definition names of embedded types
	Fields      []FieldInfo
	Methods     map[string]*Symbol
	// IfaceMethods maps method name to arity, interfaces only.
	IfaceMethods map[string]int
}

// Reference is one identifier occurrence that resolves to a declared symbol.
// The declaring identifier itself is not a Reference.
type Reference struct {
	UnitID string
	Ident  *ast.Ident
}

// SymbolTable indexes declarations, type relationships and references
// across all units of one snapshot. It is derived when the snapshot is
// built and never updated afterwards; the next snapshot gets a fresh one.
type SymbolTable struct {
	symbols map[string]*Symbol
	types   map[string]*TypeInfo
	refs    map[string][]Reference
}

func buildSymbolTable(p *Program) *SymbolTable {
	st := &SymbolTable{
		symbols: make(map[string]*Symbol),
		types:   make(map[string]*TypeInfo),
		refs:    make(map[string][]Reference),
	}
	for _, unit := range p.units {
		st.collectDecls(unit)
	}
	for _, unit := range p.units {
		st.collectRefs(unit)
	}
	return st
}

func (st *SymbolTable) collectDecls(unit *SourceUnit) {
	for _, decl := range unit.File.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			st.collectFunc(unit, d)
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					st.collectType(unit, s)
				case *ast.ValueSpec:
					st.collectValues(unit, d, s)
				}
			}
		}
	}
}

func (st *SymbolTable) collectFunc(unit *SourceUnit, d *ast.FuncDecl) {
	sym := &Symbol{
		Name:     d.Name.Name,
		UnitID:   unit.ID,
		Ident:    d.Name,
		Decl:     d,
		Exported: ast.IsExported(d.Name.Name),
	}
	if d.Recv != nil && len(d.Recv.List) > 0 {
		sym.Kind = KindMethod
		sym.Recv = OriginalDefinition(d.Recv.List[0].Type)
		sym.ID = sym.Recv + "." + sym.Name
		if ti, ok := st.types[sym.Recv]; ok {
			ti.Methods[sym.Name] = sym
		} else {
			// Method seen before its receiver type; attach later.
			ti := newTypeInfo(sym.Recv, "")
			ti.Methods[sym.Name] = sym
			st.types[sym.Recv] = ti
		}
	} else {
		sym.Kind = KindFunc
		sym.ID = sym.Name
	}
	st.symbols[sym.ID] = sym
}

func newTypeInfo(name, unitID string) *TypeInfo {
	return &TypeInfo{
		Name:         name,
		UnitID:       unitID,
		Methods:      make(map[string]*Symbol),
		IfaceMethods: make(map[string]int),
	}
}

func (st *SymbolTable) collectType(unit *SourceUnit, s *ast.TypeSpec) {
	ti, ok := st.types[s.Name.Name]
	if !ok {
		ti = newTypeInfo(s.Name.Name, unit.ID)
		st.types[s.Name.Name] = ti
	}
	ti.UnitID = unit.ID
	ti.Spec = s

	kind := KindType
	switch t := s.Type.(type) {
	case *ast.StructType:
		for _, field := range t.Fields.List {
			if len(field.Names) == 0 {
				ti.Embeds = append(ti.Embeds, OriginalDefinition(field.Type))
				continue
			}
			typeName := OriginalDefinition(field.Type)
			for _, name := range field.Names {
				ti.Fields = append(ti.Fields, FieldInfo{
					Name:     name.Name,
					TypeName: typeName,
					Field:    field,
				})
				st.symbols[s.Name.Name+"."+name.Name] = &Symbol{
					ID:       s.Name.Name + "." + name.Name,
					Name:     name.Name,
					Kind:     KindField,
					UnitID:   unit.ID,
					Recv:     s.Name.Name,
					Ident:    name,
					Decl:     field,
					Exported: ast.IsExported(name.Name),
				}
			}
		}
	case *ast.InterfaceType:
		kind = KindInterface
		ti.IsInterface = true
		for _, m := range t.Methods.List {
			if len(m.Names) == 0 {
				// embedded interface
				ti.Embeds = append(ti.Embeds, OriginalDefinition(m.Type))
				continue
			}
			if ft, ok := m.Type.(*ast.FuncType); ok {
				ti.IfaceMethods[m.Names[0].Name] = paramCount(ft)
			}
		}
	}

	st.symbols[s.Name.Name] = &Symbol{
		ID:       s.Name.Name,
		Name:     s.Name.Name,
		Kind:     kind,
		UnitID:   unit.ID,
		Ident:    s.Name,
		Decl:     s,
		Exported: ast.IsExported(s.Name.Name),
	}
}

func (st *SymbolTable) collectValues(unit *SourceUnit, d *ast.GenDecl, s *ast.ValueSpec) {
	kind := KindVar
	if d.Tok.String() == "const" {
		kind = KindConst
	}
	for _, name := range s.Names {
		if name.Name == "_" {
			continue
		}
		st.symbols[name.Name] = &Symbol{
			ID:       name.Name,
			Name:     name.Name,
			Kind:     kind,
			UnitID:   unit.ID,
			Ident:    name,
			Decl:     s,
			Exported: ast.IsExported(name.Name),
		}
	}
}

func paramCount(ft *ast.FuncType) int {
	if ft.Params == nil {
		return 0
	}
	n := 0
	for _, f := range ft.Params.List {
		if len(f.Names) == 0 {
			n++
		} else {
			n += len(f.Names)
		}
	}
	return n
}

// Lookup returns the symbol with the given id ("Name" or "Recv.Name").
func (st *SymbolTable) Lookup(id string) (*Symbol, bool) {
	sym, ok := st.symbols[id]
	return sym, ok
}

// Type returns the aggregated info for a declared type.
func (st *SymbolTable) Type(name string) (*TypeInfo, bool) {
	ti, ok := st.types[name]
	return ti, ok
}

// Types returns every declared type, interfaces included.
func (st *SymbolTable) Types() []*TypeInfo {
	out := make([]*TypeInfo, 0, len(st.types))
	for _, ti := range st.types {
		out = append(out, ti)
	}
	return out
}

// ReferencesTo returns every identifier occurrence resolving to the symbol,
// the declaring identifier excluded.
func (st *SymbolTable) ReferencesTo(sym *Symbol) []Reference {
	return st.refs[sym.ID]
}

// BaseChain returns the transitive embedded types of the named type in
// original-definition form, nearest first. Cycle-safe.
func (st *SymbolTable) BaseChain(name string) []string {
	var chain []string
	seen := map[string]bool{name: true}
	queue := []string{name}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		ti, ok := st.types[current]
		if !ok {
			continue
		}
		for _, base := range ti.Embeds {
			if seen[base] {
				continue
			}
			seen[base] = true
			chain = append(chain, base)
			queue = append(queue, base)
		}
	}
	return chain
}

// MethodOn resolves a method by name on a type, promoted methods from the
// base chain included. Returns the nearest declaration.
func (st *SymbolTable) MethodOn(typeName, method string) (*Symbol, bool) {
	if ti, ok := st.types[typeName]; ok {
		if sym, ok := ti.Methods[method]; ok {
			return sym, true
		}
	}
	for _, base := range st.BaseChain(typeName) {
		if ti, ok := st.types[base]; ok {
			if sym, ok := ti.Methods[method]; ok {
				return sym, true
			}
		}
	}
	return nil, false
}

// Satisfies reports whether the named type provides every method of the
// interface, matching by name and arity. Promoted methods count.
func (st *SymbolTable) Satisfies(typeName string, iface *TypeInfo) bool {
	if !iface.IsInterface || len(iface.IfaceMethods) == 0 {
		return false
	}
	for name, arity := range iface.IfaceMethods {
		sym, ok := st.MethodOn(typeName, name)
		if !ok {
			return false
		}
		fd, ok := sym.Decl.(*ast.FuncDecl)
		if !ok || paramCount(fd.Type) != arity {
			return false
		}
	}
	return true
}

// Interfaces returns every declared interface type.
func (st *SymbolTable) Interfaces() []*TypeInfo {
	var out []*TypeInfo
	for _, ti := range st.types {
		if ti.IsInterface {
			out = append(out, ti)
		}
	}
	return out
}
