package program

import "go/ast"

// OriginalDefinition reduces a type expression to the bare name of its
// declaration, stripping pointers, parentheses, generic instantiations and
// package qualifiers. Base[T], Base[Concrete] and *Base all reduce to
// "Base", so relationships survive generic instantiation.
func OriginalDefinition(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return OriginalDefinition(t.X)
	case *ast.ParenExpr:
		return OriginalDefinition(t.X)
	case *ast.IndexExpr:
		return OriginalDefinition(t.X)
	case *ast.IndexListExpr:
		return OriginalDefinition(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	default:
		return ""
	}
}
