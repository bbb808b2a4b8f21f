package fixer

import (
	"fmt"
	"go/ast"

	"github.com/smeltwork/smelt/internal/lints"
	"github.com/smeltwork/smelt/internal/program"
	tt "github.com/smeltwork/smelt/internal/types"
)

// RenameTransformer expands an abbreviated identifier everywhere the
// symbol occurs: one edit per occurrence, declaration included, all in one
// transaction. A partial rename would leave a program that no longer
// compiles, so the transformer is excluded from batch application and
// abstains whenever the occurrence set cannot be established exactly.
type RenameTransformer struct{}

func NewRenameTransformer() *RenameTransformer { return &RenameTransformer{} }

func (t *RenameTransformer) RuleID() string { return "abbreviated-identifier" }

func (t *RenameTransformer) CanBatch() bool { return false }

func (t *RenameTransformer) Transform(prog *program.Program, issue tt.Issue) (*Transaction, error) {
	unit, ok := unitFor(prog, issue)
	if !ok {
		return nil, nil
	}
	ident := identAt(prog, unit, issue)
	if ident == nil {
		return nil, nil
	}
	newName, ok := lints.Expansions[ident.Name]
	if !ok {
		return nil, nil
	}

	st := prog.Symbols()

	// Package-level symbol declared by this identifier: rename the
	// declaration plus every reference across the program.
	if sym, ok := st.Lookup(ident.Name); ok && sym.Ident == ident {
		if _, taken := st.Lookup(newName); taken {
			return nil, nil
		}
		tx := NewTransaction(fmt.Sprintf("rename %s to %s", ident.Name, newName))
		t.addEdit(prog, tx, sym.UnitID, sym.Ident, newName)
		for _, ref := range st.ReferencesTo(sym) {
			refUnit, ok := prog.Unit(ref.UnitID)
			if !ok {
				return nil, nil
			}
			// A local with the target name in a referencing function
			// would capture the renamed reference.
			if fd := enclosingFuncDecl(prog, refUnit, prog.Position(ref.Ident.Pos()).Offset); fd != nil {
				if len(program.LocalOccurrences(fd, newName)) > 0 {
					return nil, nil
				}
			}
			t.addEdit(prog, tx, ref.UnitID, ref.Ident, newName)
		}
		return tx, nil
	}

	// Otherwise a local: rename every occurrence inside the enclosing
	// function.
	fd := enclosingFuncDecl(prog, unit, prog.Position(ident.Pos()).Offset)
	if fd == nil {
		return nil, nil
	}
	occurrences := program.LocalOccurrences(fd, ident.Name)
	if len(occurrences) == 0 {
		return nil, nil
	}
	if len(program.LocalOccurrences(fd, newName)) > 0 {
		// the target name is already in use inside this function
		return nil, nil
	}
	tx := NewTransaction(fmt.Sprintf("rename %s to %s", ident.Name, newName))
	for _, occ := range occurrences {
		t.addEdit(prog, tx, unit.ID, occ, newName)
	}
	return tx, nil
}

func (t *RenameTransformer) addEdit(prog *program.Program, tx *Transaction, unitID string, id *ast.Ident, newName string) {
	start := prog.Position(id.Pos()).Offset
	end := prog.Position(id.End()).Offset
	tx.Replace(unitID, start, end, newName)
}
