// Package analysis answers whole-program reachability questions used to
// gate destructive fixes: is a method shadowed by an embedder anywhere, is
// it required by an interface, is a symbol referenced at all. Every query
// walks the current snapshot; nothing is cached across snapshots, since a
// later edit can introduce a new shadowing method.
package analysis

import (
	"go/ast"

	"github.com/smeltwork/smelt/internal/program"
)

// IsOverridden reports whether any type in the program embeds recvType
// (transitively, compared by original definition) and declares its own
// method of the same name, shadowing the promoted one. Removing such a
// method changes which implementation embedders fall back to.
func IsOverridden(prog *program.Program, recvType, method string) bool {
	st := prog.Symbols()
	for _, ti := range st.Types() {
		if ti.IsInterface || ti.Name == recvType {
			continue
		}
		if !embeds(st, ti.Name, recvType) {
			continue
		}
		if _, ok := ti.Methods[method]; ok {
			return true
		}
	}
	return false
}

// IsOverride reports whether the method shadows a promoted method of a
// type embedded by its receiver. The receiver must declare the method
// itself; a merely promoted method shadows nothing.
func IsOverride(prog *program.Program, recvType, method string) bool {
	st := prog.Symbols()
	recv, ok := st.Type(recvType)
	if !ok {
		return false
	}
	if _, declared := recv.Methods[method]; !declared {
		return false
	}
	for _, base := range st.BaseChain(recvType) {
		ti, ok := st.Type(base)
		if !ok || ti.IsInterface {
			continue
		}
		if _, ok := ti.Methods[method]; ok {
			return true
		}
	}
	return false
}

// ImplementsInterfaceMember reports whether the method is required by any
// interface the receiver type satisfies. Matching is by name and arity
// against the full method set, so the answer stays meaningful without a
// type checker.
func ImplementsInterfaceMember(prog *program.Program, recvType, method string) bool {
	st := prog.Symbols()
	for _, iface := range st.Interfaces() {
		if _, required := iface.IfaceMethods[method]; !required {
			continue
		}
		if st.Satisfies(recvType, iface) {
			return true
		}
	}
	return false
}

// IsOverridable reports whether the method's receiver type is embedded
// anywhere in the program, i.e. the method can be promoted and therefore
// shadowed.
func IsOverridable(prog *program.Program, recvType string) bool {
	st := prog.Symbols()
	for _, ti := range st.Types() {
		if ti.Name == recvType {
			continue
		}
		if embeds(st, ti.Name, recvType) {
			return true
		}
	}
	return false
}

// IsReferenced reports whether the symbol has at least one reference
// outside its own declaration.
func IsReferenced(prog *program.Program, sym *program.Symbol) bool {
	return len(prog.Symbols().ReferencesTo(sym)) > 0
}

// FuncSpan returns the byte span of a function declaration including its
// doc comment, suitable for whole-declaration removal.
func FuncSpan(prog *program.Program, fd *ast.FuncDecl) (start, end int) {
	startPos := fd.Pos()
	if fd.Doc != nil {
		startPos = fd.Doc.Pos()
	}
	return prog.Position(startPos).Offset, prog.Position(fd.End()).Offset
}

func embeds(st *program.SymbolTable, typeName, base string) bool {
	for _, b := range st.BaseChain(typeName) {
		if b == base {
			return true
		}
	}
	return false
}
