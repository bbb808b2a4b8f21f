package lints

import (
	"fmt"
	"go/ast"
	"go/token"

	"github.com/smeltwork/smelt/internal/program"
	tt "github.com/smeltwork/smelt/internal/types"
)

// DetectLiteralShadowsIdentifier flags string literal call arguments whose
// value is exactly the name of an identifier in scope at the call site.
// These are usually meant to be the identifier itself, or go stale the
// moment the identifier is renamed.
func DetectLiteralShadowsIdentifier(prog *program.Program) ([]tt.Issue, error) {
	var issues []tt.Issue
	for _, unit := range prog.Units() {
		for _, decl := range unit.File.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Body == nil {
				continue
			}
			scope := scopeNames(fd)
			ast.Inspect(fd.Body, func(n ast.Node) bool {
				call, ok := n.(*ast.CallExpr)
				if !ok {
					return true
				}
				for _, arg := range call.Args {
					lit, ok := arg.(*ast.BasicLit)
					if !ok || lit.Kind != token.STRING {
						continue
					}
					value := unquote(lit.Value)
					if value != "" && scope[value] {
						issues = append(issues, newIssue(prog, unit.ID,
							"literal-shadows-identifier", "correctness", lit,
							fmt.Sprintf("string literal %q matches an identifier in scope", value)))
					}
				}
				return true
			})
		}
	}
	return issues, nil
}

func scopeNames(fd *ast.FuncDecl) map[string]bool {
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
	ast.Inspect(fd.Body, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.AssignStmt:
			if node.Tok == token.DEFINE {
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
		}
		return true
	})
	return names
}
