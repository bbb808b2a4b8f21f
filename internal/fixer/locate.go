package fixer

import (
	"go/ast"

	"github.com/smeltwork/smelt/internal/program"
	tt "github.com/smeltwork/smelt/internal/types"
)

// Node re-location: every transformer starts from an issue span recorded
// against some snapshot and must find the node again in the snapshot it is
// asked to transform. A failed lookup means the issue is stale or the tree
// changed underneath it; transformers treat that as abstention, never as a
// best-effort edit.

func unitFor(prog *program.Program, issue tt.Issue) (*program.SourceUnit, bool) {
	return prog.Unit(issue.Filename)
}

func spanOffsets(prog *program.Program, issue tt.Issue) (start, end int) {
	return issue.Start.Offset, issue.End.Offset
}

// identAt returns the identifier whose span matches the issue exactly.
func identAt(prog *program.Program, unit *program.SourceUnit, issue tt.Issue) *ast.Ident {
	start, end := spanOffsets(prog, issue)
	var found *ast.Ident
	ast.Inspect(unit.File, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		if id, ok := n.(*ast.Ident); ok {
			if prog.Position(id.Pos()).Offset == start && prog.Position(id.End()).Offset == end {
				found = id
				return false
			}
		}
		return true
	})
	return found
}

// literalAt returns the basic literal whose span matches the issue exactly.
func literalAt(prog *program.Program, unit *program.SourceUnit, issue tt.Issue) *ast.BasicLit {
	start, end := spanOffsets(prog, issue)
	var found *ast.BasicLit
	ast.Inspect(unit.File, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		if lit, ok := n.(*ast.BasicLit); ok {
			if prog.Position(lit.Pos()).Offset == start && prog.Position(lit.End()).Offset == end {
				found = lit
				return false
			}
		}
		return true
	})
	return found
}

// callAt returns the call expression whose span matches the issue exactly.
func callAt(prog *program.Program, unit *program.SourceUnit, issue tt.Issue) *ast.CallExpr {
	start, end := spanOffsets(prog, issue)
	var found *ast.CallExpr
	ast.Inspect(unit.File, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		if call, ok := n.(*ast.CallExpr); ok {
			if prog.Position(call.Pos()).Offset == start && prog.Position(call.End()).Offset == end {
				found = call
				return false
			}
		}
		return true
	})
	return found
}

// enclosingFuncDecl returns the function declaration containing the offset.
func enclosingFuncDecl(prog *program.Program, unit *program.SourceUnit, offset int) *ast.FuncDecl {
	for _, decl := range unit.File.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		start := prog.Position(fd.Pos()).Offset
		end := prog.Position(fd.End()).Offset
		if offset >= start && offset < end {
			return fd
		}
	}
	return nil
}
