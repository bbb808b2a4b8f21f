package program

import (
	"go/ast"
)

// collectRefs records every identifier occurrence in the unit that resolves
// to a declared symbol. Resolution is syntactic: an unqualified identifier
// resolves to the package-level symbol of the same name unless a local
// declaration in the enclosing function shadows it; a selector resolves to
// a method or field when exactly one declared type owns that member name.
func (st *SymbolTable) collectRefs(unit *SourceUnit) {
	skip := st.declaringIdents(unit)
	methodOwners, fieldOwners := st.memberOwners()

	for _, decl := range unit.File.Decls {
		var locals map[string]bool
		if fd, ok := decl.(*ast.FuncDecl); ok {
			locals = localNames(fd)
		}
		ast.Inspect(decl, func(n ast.Node) bool {
			switch node := n.(type) {
			case *ast.ImportSpec:
				return false
			case *ast.SelectorExpr:
				st.resolveSelectorChain(unit, node, methodOwners, fieldOwners, skip, locals)
				return false
			case *ast.KeyValueExpr:
				// composite literal keys are field names, not free idents
				if _, ok := node.Key.(*ast.Ident); ok {
					ast.Inspect(node.Value, func(inner ast.Node) bool {
						if id, ok := inner.(*ast.Ident); ok {
							st.resolveIdent(unit, id, skip, locals)
						}
						return true
					})
					return false
				}
			case *ast.Ident:
				st.resolveIdent(unit, node, skip, locals)
			}
			return true
		})
	}
}

// resolveSelectorChain resolves a possibly nested selector chain
// (g.cnt.Inc). Every member ident in the chain goes through
// resolveSelector exactly once; only the chain's base identifier falls
// through to plain resolution, so a member sharing a package-level name
// is never recorded against that symbol.
func (st *SymbolTable) resolveSelectorChain(unit *SourceUnit, sel *ast.SelectorExpr, methodOwners, fieldOwners map[string][]string, skip map[*ast.Ident]bool, locals map[string]bool) {
	st.resolveSelector(unit, sel, methodOwners, fieldOwners)
	ast.Inspect(sel.X, func(n ast.Node) bool {
		switch inner := n.(type) {
		case *ast.SelectorExpr:
			st.resolveSelectorChain(unit, inner, methodOwners, fieldOwners, skip, locals)
			return false
		case *ast.Ident:
			st.resolveIdent(unit, inner, skip, locals)
		}
		return true
	})
}

func (st *SymbolTable) resolveIdent(unit *SourceUnit, id *ast.Ident, skip map[*ast.Ident]bool, locals map[string]bool) {
	if id.Name == "_" || skip[id] {
		return
	}
	if locals != nil && locals[id.Name] {
		return
	}
	sym, ok := st.symbols[id.Name]
	if !ok || sym.Ident == id {
		return
	}
	st.refs[sym.ID] = append(st.refs[sym.ID], Reference{UnitID: unit.ID, Ident: id})
}

// resolveSelector resolves x.M to a method or field symbol when the member
// name is owned by exactly one declared type. Ambiguous names are dropped
// rather than guessed.
func (st *SymbolTable) resolveSelector(unit *SourceUnit, sel *ast.SelectorExpr, methodOwners, fieldOwners map[string][]string) {
	name := sel.Sel.Name
	if owners := methodOwners[name]; len(owners) == 1 {
		if sym, ok := st.symbols[owners[0]+"."+name]; ok {
			st.refs[sym.ID] = append(st.refs[sym.ID], Reference{UnitID: unit.ID, Ident: sel.Sel})
			return
		}
	}
	if owners := fieldOwners[name]; len(owners) == 1 {
		if sym, ok := st.symbols[owners[0]+"."+name]; ok {
			st.refs[sym.ID] = append(st.refs[sym.ID], Reference{UnitID: unit.ID, Ident: sel.Sel})
		}
	}
}

func (st *SymbolTable) memberOwners() (methods, fields map[string][]string) {
	methods = make(map[string][]string)
	fields = make(map[string][]string)
	for _, ti := range st.types {
		for name := range ti.Methods {
			methods[name] = append(methods[name], ti.Name)
		}
		for _, f := range ti.Fields {
			fields[f.Name] = append(fields[f.Name], ti.Name)
		}
	}
	return methods, fields
}

func (st *SymbolTable) declaringIdents(unit *SourceUnit) map[*ast.Ident]bool {
	skip := make(map[*ast.Ident]bool)
	for _, sym := range st.symbols {
		if sym.UnitID == unit.ID {
			skip[sym.Ident] = true
		}
	}
	return skip
}

// localNames collects every name declared locally anywhere inside the
// function: receiver, parameters, results, short declarations, var/const
// specs, range and type-switch variables, labels. Whole-function
// granularity; a local declaration anywhere in the body shadows the
// package-level name throughout, which errs on the side of dropping
// references rather than inventing them.
func localNames(fd *ast.FuncDecl) map[string]bool {
	names := make(map[string]bool)
	addFieldList := func(fl *ast.FieldList) {
		if fl == nil {
			return
		}
		for _, f := range fl.List {
			for _, n := range f.Names {
				names[n.Name] = true
			}
		}
	}
	addFieldList(fd.Recv)
	addFieldList(fd.Type.Params)
	addFieldList(fd.Type.Results)
	if fd.Body == nil {
		return names
	}
	ast.Inspect(fd.Body, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.AssignStmt:
			if node.Tok.String() == ":=" {
				for _, lhs := range node.Lhs {
					if id, ok := lhs.(*ast.Ident); ok {
						names[id.Name] = true
					}
				}
			}
		case *ast.ValueSpec:
			for _, id := range node.Names {
				names[id.Name] = true
			}
		case *ast.RangeStmt:
			if id, ok := node.Key.(*ast.Ident); ok {
				names[id.Name] = true
			}
			if id, ok := node.Value.(*ast.Ident); ok {
				names[id.Name] = true
			}
		case *ast.FuncLit:
			addFieldList(node.Type.Params)
			addFieldList(node.Type.Results)
		case *ast.LabeledStmt:
			names[node.Label.Name] = true
		}
		return true
	})
	return names
}

// LocalOccurrences returns every identifier occurrence of name inside the
// function, declaration site included, in source order. Selector members
// and composite literal keys are excluded so a field that happens to share
// the name is untouched.
func LocalOccurrences(fd *ast.FuncDecl, name string) []*ast.Ident {
	var out []*ast.Ident
	seen := make(map[*ast.Ident]bool)

	markSelectors := func(root ast.Node) {
		ast.Inspect(root, func(n ast.Node) bool {
			switch node := n.(type) {
			case *ast.SelectorExpr:
				seen[node.Sel] = true
			case *ast.KeyValueExpr:
				if id, ok := node.Key.(*ast.Ident); ok {
					seen[id] = true
				}
			}
			return true
		})
	}
	markSelectors(fd)

	ast.Inspect(fd, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok && id.Name == name && !seen[id] {
			out = append(out, id)
		}
		return true
	})
	return out
}
