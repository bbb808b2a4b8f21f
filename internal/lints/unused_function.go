package lints

import (
	"fmt"
	"go/ast"

	"github.com/smeltwork/smelt/internal/program"
	tt "github.com/smeltwork/smelt/internal/types"
)

// DetectUnusedFunctions flags unexported package-level functions with zero
// references anywhere in the program. The check consults the symbol
// table's reference index rather than rescanning units.
func DetectUnusedFunctions(prog *program.Program) ([]tt.Issue, error) {
	var issues []tt.Issue
	st := prog.Symbols()
	for _, unit := range prog.Units() {
		for _, decl := range unit.File.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Recv != nil {
				continue
			}
			name := fd.Name.Name
			if fd.Name.IsExported() || name == "main" || name == "init" {
				continue
			}
			sym, ok := st.Lookup(name)
			if !ok || len(st.ReferencesTo(sym)) > 0 {
				continue
			}
			issue := newIssue(prog, unit.ID, "unused-function", "dead-code", fd.Name,
				fmt.Sprintf("function %q is declared but never used", name))
			issue.Confidence = 0.8
			issue.Suggestion = "remove the function"
			issues = append(issues, issue)
		}
	}
	return issues, nil
}
