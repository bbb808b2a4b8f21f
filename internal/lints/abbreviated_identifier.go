package lints

import (
	"fmt"
	"go/ast"
	"go/token"

	"github.com/smeltwork/smelt/internal/program"
	tt "github.com/smeltwork/smelt/internal/types"
)

// Expansions maps flagged abbreviations to their full names. Idiomatic Go
// short names (err, ctx, ok, i) are deliberately absent.
var Expansions = map[string]string{
	"rng": "randomGenerator",
	"cnt": "count",
	"idx": "index",
	"num": "number",
	"svc": "service",
}

// DetectAbbreviatedIdentifiers flags declarations of names from the
// abbreviation dictionary: package-level funcs, vars and consts, plus
// parameters and short declarations inside function bodies. The span is
// the declaring identifier, which the rename transformer resolves.
func DetectAbbreviatedIdentifiers(prog *program.Program) ([]tt.Issue, error) {
	var issues []tt.Issue
	for _, unit := range prog.Units() {
		for _, decl := range unit.File.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				// methods are keyed by receiver and out of the rename
				// transformer's reach, so only plain functions are flagged
				if d.Recv == nil {
					issues = appendAbbreviation(issues, prog, unit.ID, d.Name)
				}
				issues = append(issues, abbreviationsInFunc(prog, unit.ID, d)...)
			case *ast.GenDecl:
				for _, spec := range d.Specs {
					vs, ok := spec.(*ast.ValueSpec)
					if !ok {
						continue
					}
					for _, name := range vs.Names {
						issues = appendAbbreviation(issues, prog, unit.ID, name)
					}
				}
			}
		}
	}
	return issues, nil
}

func abbreviationsInFunc(prog *program.Program, unitID string, fd *ast.FuncDecl) []tt.Issue {
	var issues []tt.Issue
	if fd.Type.Params != nil {
		for _, f := range fd.Type.Params.List {
			for _, name := range f.Names {
				issues = appendAbbreviation(issues, prog, unitID, name)
			}
		}
	}
	if fd.Body == nil {
		return issues
	}
	ast.Inspect(fd.Body, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.AssignStmt:
			if node.Tok != token.DEFINE {
				return true
			}
			for _, lhs := range node.Lhs {
				if id, ok := lhs.(*ast.Ident); ok {
					issues = appendAbbreviation(issues, prog, unitID, id)
				}
			}
		case *ast.ValueSpec:
			for _, id := range node.Names {
				issues = appendAbbreviation(issues, prog, unitID, id)
			}
		}
		return true
	})
	return issues
}

func appendAbbreviation(issues []tt.Issue, prog *program.Program, unitID string, id *ast.Ident) []tt.Issue {
	expansion, ok := Expansions[id.Name]
	if !ok {
		return issues
	}
	issue := newIssue(prog, unitID, "abbreviated-identifier", "naming", id,
		fmt.Sprintf("identifier %q should be named %q", id.Name, expansion))
	issue.Confidence = 0.9
	issue.Suggestion = expansion
	return append(issues, issue)
}
