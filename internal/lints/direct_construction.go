package lints

import (
	"fmt"
	"go/ast"

	"github.com/smeltwork/smelt/internal/program"
	tt "github.com/smeltwork/smelt/internal/types"
)

// DetectDirectConstruction flags New*-constructor calls inside method
// bodies when the constructed type is declared in the program. Methods
// constructing their own collaborators cannot be tested in isolation; the
// dependency-injection transformer rewrites the call through a resolver.
func DetectDirectConstruction(prog *program.Program) ([]tt.Issue, error) {
	var issues []tt.Issue
	st := prog.Symbols()
	for _, unit := range prog.Units() {
		for _, decl := range unit.File.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Recv == nil || fd.Body == nil {
				continue
			}
			ast.Inspect(fd.Body, func(n ast.Node) bool {
				call, ok := n.(*ast.CallExpr)
				if !ok {
					return true
				}
				fn, ok := call.Fun.(*ast.Ident)
				if !ok || !hasPrefixWord(fn.Name, "New") || fn.Name == "New" {
					return true
				}
				sym, ok := st.Lookup(fn.Name)
				if !ok || sym.Kind != program.KindFunc {
					return true
				}
				issue := newIssue(prog, unit.ID, "direct-construction", "design", call,
					fmt.Sprintf("method %q constructs %s directly instead of resolving it", fd.Name.Name, fn.Name))
				issue.Confidence = 0.7
				issue.Suggestion = "resolve the dependency through a resolver"
				issues = append(issues, issue)
				return true
			})
		}
	}
	return issues, nil
}
