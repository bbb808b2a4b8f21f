package program

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
)

// SourceUnit is one parsed file together with its identity and raw source.
// A unit is immutable; an edit produces a new unit in a new snapshot.
type SourceUnit struct {
	ID     string
	Source []byte
	File   *ast.File
}

func parseUnit(fset *token.FileSet, id string, src []byte) (*SourceUnit, error) {
	file, err := parser.ParseFile(fset, id, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", id, err)
	}
	return &SourceUnit{ID: id, Source: src, File: file}, nil
}

// Offset converts a position inside this unit to a byte offset.
func (u *SourceUnit) Offset(fset *token.FileSet, pos token.Pos) int {
	return fset.Position(pos).Offset
}

// Text returns the source text covered by [start, end).
func (u *SourceUnit) Text(fset *token.FileSet, start, end token.Pos) string {
	s := fset.Position(start).Offset
	e := fset.Position(end).Offset
	if s < 0 || e > len(u.Source) || s > e {
		return ""
	}
	return string(u.Source[s:e])
}
