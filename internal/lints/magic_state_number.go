package lints

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"github.com/smeltwork/smelt/internal/program"
	tt "github.com/smeltwork/smelt/internal/types"
)

// DetectMagicStateNumbers flags bare integer literals used as state
// values: passed to a SetState-style call or compared against a State()
// result. The state-enum transformer replaces the literal with a named
// constant in the type's companion state file.
func DetectMagicStateNumbers(prog *program.Program) ([]tt.Issue, error) {
	var issues []tt.Issue
	for _, unit := range prog.Units() {
		for _, decl := range unit.File.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Body == nil {
				continue
			}
			ast.Inspect(fd.Body, func(n ast.Node) bool {
				switch node := n.(type) {
				case *ast.CallExpr:
					if !isStateCall(node) {
						return true
					}
					for _, arg := range node.Args {
						if lit := intLiteral(arg); lit != nil {
							issues = append(issues, magicStateIssue(prog, unit.ID, lit))
						}
					}
				case *ast.BinaryExpr:
					if node.Op != token.EQL && node.Op != token.NEQ {
						return true
					}
					if call, ok := node.X.(*ast.CallExpr); ok && isStateCall(call) {
						if lit := intLiteral(node.Y); lit != nil {
							issues = append(issues, magicStateIssue(prog, unit.ID, lit))
						}
					}
					if call, ok := node.Y.(*ast.CallExpr); ok && isStateCall(call) {
						if lit := intLiteral(node.X); lit != nil {
							issues = append(issues, magicStateIssue(prog, unit.ID, lit))
						}
					}
				}
				return true
			})
		}
	}
	return issues, nil
}

func magicStateIssue(prog *program.Program, unitID string, lit *ast.BasicLit) tt.Issue {
	issue := newIssue(prog, unitID, "magic-state-number", "readability", lit,
		fmt.Sprintf("magic number %s used as a state value", lit.Value))
	issue.Confidence = 0.85
	issue.Suggestion = "use a named state constant"
	return issue
}

func isStateCall(call *ast.CallExpr) bool {
	name := calleeName(call)
	return name == "SetState" || name == "State" || strings.HasSuffix(name, "State")
}

func intLiteral(expr ast.Expr) *ast.BasicLit {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.INT {
		return nil
	}
	return lit
}
