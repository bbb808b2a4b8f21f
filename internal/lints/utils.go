package lints

import (
	"go/ast"
	"strings"

	"github.com/smeltwork/smelt/internal/program"
	tt "github.com/smeltwork/smelt/internal/types"
)

func newIssue(prog *program.Program, unitID, rule, category string, node ast.Node, message string) tt.Issue {
	return tt.Issue{
		Rule:     rule,
		Category: category,
		Filename: unitID,
		Message:  message,
		Start:    prog.Position(node.Pos()),
		End:      prog.Position(node.End()),
	}
}

// calleeName returns the called function's name for plain and selector
// calls, "" otherwise.
func calleeName(call *ast.CallExpr) string {
	switch fn := call.Fun.(type) {
	case *ast.Ident:
		return fn.Name
	case *ast.SelectorExpr:
		return fn.Sel.Name
	}
	return ""
}

// unquote strips the surrounding quotes of a string literal value.
func unquote(lit string) string {
	if len(lit) >= 2 && (lit[0] == '"' || lit[0] == '`') {
		return lit[1 : len(lit)-1]
	}
	return lit
}

func hasPrefixWord(name, prefix string) bool {
	if !strings.HasPrefix(name, prefix) {
		return false
	}
	rest := name[len(prefix):]
	return rest == "" || (rest[0] >= 'A' && rest[0] <= 'Z')
}
