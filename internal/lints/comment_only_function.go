package lints

import (
	"fmt"
	"go/ast"

	"github.com/smeltwork/smelt/internal/program"
	tt "github.com/smeltwork/smelt/internal/types"
)

// DetectCommentOnlyFunctions flags functions whose body contains no
// statements but does contain comments, typically a leftover TODO stub.
// The reported span is the function identifier so the fix can re-locate
// the declaration.
func DetectCommentOnlyFunctions(prog *program.Program) ([]tt.Issue, error) {
	var issues []tt.Issue
	for _, unit := range prog.Units() {
		for _, decl := range unit.File.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Body == nil || len(fd.Body.List) > 0 {
				continue
			}
			if !bodyHasComments(prog, unit.File, fd) {
				continue
			}
			issue := newIssue(prog, unit.ID, "comment-only-function", "dead-code", fd.Name,
				fmt.Sprintf("function %q has no statements but contains comments", fd.Name.Name))
			issue.Confidence = 0.9
			issue.Suggestion = "remove the function or implement it"
			issues = append(issues, issue)
		}
	}
	return issues, nil
}

func bodyHasComments(prog *program.Program, file *ast.File, fd *ast.FuncDecl) bool {
	bodyStart := prog.Position(fd.Body.Lbrace).Offset
	bodyEnd := prog.Position(fd.Body.Rbrace).Offset
	for _, cg := range file.Comments {
		start := prog.Position(cg.Pos()).Offset
		if start > bodyStart && start < bodyEnd {
			return true
		}
	}
	return false
}
