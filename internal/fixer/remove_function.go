package fixer

import (
	"fmt"

	"github.com/smeltwork/smelt/internal/analysis"
	"github.com/smeltwork/smelt/internal/program"
	tt "github.com/smeltwork/smelt/internal/types"
)

// RemoveFunctionTransformer deletes a whole function declaration. It
// serves the comment-only-function and unused-function rules and abstains
// whenever removal could be observed elsewhere in the program: the method
// implements an interface member, is shadowed by (or shadows) an embedded
// declaration, or the symbol still has references.
type RemoveFunctionTransformer struct {
	rule string
}

func NewRemoveFunctionTransformer(rule string) *RemoveFunctionTransformer {
	return &RemoveFunctionTransformer{rule: rule}
}

func (t *RemoveFunctionTransformer) RuleID() string { return t.rule }

func (t *RemoveFunctionTransformer) CanBatch() bool { return true }

func (t *RemoveFunctionTransformer) Transform(prog *program.Program, issue tt.Issue) (*Transaction, error) {
	unit, ok := unitFor(prog, issue)
	if !ok {
		return nil, nil
	}
	ident := identAt(prog, unit, issue)
	if ident == nil {
		return nil, nil
	}
	fd := enclosingFuncDecl(prog, unit, prog.Position(ident.Pos()).Offset)
	if fd == nil || fd.Name != ident {
		return nil, nil
	}

	st := prog.Symbols()
	name := fd.Name.Name

	if fd.Recv != nil {
		recv := program.OriginalDefinition(fd.Recv.List[0].Type)
		if recv == "" {
			return nil, nil
		}
		if analysis.ImplementsInterfaceMember(prog, recv, name) {
			return nil, nil
		}
		if analysis.IsOverridable(prog, recv) && analysis.IsOverridden(prog, recv, name) {
			return nil, nil
		}
		if analysis.IsOverride(prog, recv, name) {
			return nil, nil
		}
		if sym, ok := st.Lookup(recv + "." + name); ok && analysis.IsReferenced(prog, sym) {
			return nil, nil
		}
	} else {
		sym, ok := st.Lookup(name)
		if !ok || analysis.IsReferenced(prog, sym) {
			return nil, nil
		}
	}

	start, end := analysis.FuncSpan(prog, fd)
	// take the trailing newline with the declaration
	if end < len(unit.Source) && unit.Source[end] == '\n' {
		end++
	}

	tx := NewTransaction(fmt.Sprintf("remove function %s", name))
	tx.Delete(unit.ID, start, end)
	return tx, nil
}
