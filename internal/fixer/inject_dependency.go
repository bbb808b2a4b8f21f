package fixer

import (
	"fmt"
	"go/ast"
	"strings"
	"unicode"

	"github.com/smeltwork/smelt/internal/program"
	tt "github.com/smeltwork/smelt/internal/types"
)

// injectionStyle selects how a synthesized dependency reaches its field.
// The style is decided once per type by a capability query and dispatched
// through the strategy table below.
type injectionStyle int

const (
	// componentStyle: the type embeds Component somewhere in its base
	// chain, so the dependency arrives through the Init lifecycle method.
	componentStyle injectionStyle = iota
	// plainStyle: the dependency becomes a parameter of the New<Type>
	// constructor, created if the type has none.
	plainStyle
)

// componentBase is the marker base type for lifecycle-managed types.
const componentBase = "Component"

// InjectDependencyTransformer rewrites a direct New<T> constructor call
// inside a method into a resolver-mediated lookup. With an existing
// resolver-capable field on the receiver type (or its base chain) the fix
// is a single call-site rewrite. Without one it synthesizes the
// dependency: a private field, an extended injection point that assigns
// it, the call-site rewrite and any required imports, all in one
// transaction, since applying only part of that set leaves invalid code.
type InjectDependencyTransformer struct{}

func NewInjectDependencyTransformer() *InjectDependencyTransformer {
	return &InjectDependencyTransformer{}
}

func (t *InjectDependencyTransformer) RuleID() string { return "direct-construction" }

func (t *InjectDependencyTransformer) CanBatch() bool { return false }

func (t *InjectDependencyTransformer) Transform(prog *program.Program, issue tt.Issue) (*Transaction, error) {
	unit, ok := unitFor(prog, issue)
	if !ok {
		return nil, nil
	}
	call := callAt(prog, unit, issue)
	if call == nil {
		return nil, nil
	}
	ctor, ok := call.Fun.(*ast.Ident)
	if !ok || !strings.HasPrefix(ctor.Name, "New") {
		return nil, nil
	}
	depType := strings.TrimPrefix(ctor.Name, "New")
	if depType == "" {
		return nil, nil
	}

	fd := enclosingFuncDecl(prog, unit, prog.Position(call.Pos()).Offset)
	if fd == nil || fd.Recv == nil || len(fd.Recv.List) == 0 || len(fd.Recv.List[0].Names) == 0 {
		return nil, nil
	}
	recvName := fd.Recv.List[0].Names[0].Name
	recvType := program.OriginalDefinition(fd.Recv.List[0].Type)
	if recvName == "_" || recvType == "" {
		return nil, nil
	}

	st := prog.Symbols()

	// An existing resolver field turns this into a one-edit rewrite of
	// the call receiver; the arguments stay untouched.
	if field, ok := findResolverField(st, recvType); ok {
		tx := NewTransaction(fmt.Sprintf("resolve %s through %s.%s", depType, recvType, field))
		start := prog.Position(ctor.Pos()).Offset
		end := prog.Position(ctor.End()).Offset
		tx.Replace(unit.ID, start, end, fmt.Sprintf("%s.%s.Resolve%s", recvName, field, depType))
		for _, imp := range issue.RequiredImports {
			tx.EnsureImport(unit.ID, imp)
		}
		return tx, nil
	}

	return t.synthesize(prog, unit, issue, call, fd, recvName, recvType, depType)
}

// strategy stages the injection-point edits for one style: extend or
// create the method/constructor that assigns the new field.
type strategy func(t *InjectDependencyTransformer, prog *program.Program, tx *Transaction, ti *program.TypeInfo, fieldName, depType string) bool

var injectionStrategies = map[injectionStyle]strategy{
	componentStyle: (*InjectDependencyTransformer).injectViaLifecycle,
	plainStyle:     (*InjectDependencyTransformer).injectViaConstructor,
}

func (t *InjectDependencyTransformer) synthesize(
	prog *program.Program,
	unit *program.SourceUnit,
	issue tt.Issue,
	call *ast.CallExpr,
	fd *ast.FuncDecl,
	recvName, recvType, depType string,
) (*Transaction, error) {
	st := prog.Symbols()
	ti, ok := st.Type(recvType)
	if !ok || ti.Spec == nil {
		return nil, nil
	}
	structType, ok := ti.Spec.Type.(*ast.StructType)
	if !ok {
		return nil, nil
	}

	fieldName := lowerFirst(depType)
	for _, f := range ti.Fields {
		if f.Name == fieldName {
			return nil, nil
		}
	}

	tx := NewTransaction(fmt.Sprintf("inject %s into %s", depType, recvType))

	// (a) private field on the receiver struct
	closing := prog.Position(structType.Fields.Closing).Offset
	tx.Insert(ti.UnitID, closing, fmt.Sprintf("\t%s *%s\n", fieldName, depType))

	// (b) injection point, by style
	style := plainStyle
	for _, base := range st.BaseChain(recvType) {
		if base == componentBase {
			style = componentStyle
			break
		}
	}
	if !injectionStrategies[style](t, prog, tx, ti, fieldName, depType) {
		return nil, nil
	}

	// (c) call-site rewrite: the constructed value is now the field
	start := prog.Position(call.Pos()).Offset
	end := prog.Position(call.End()).Offset
	tx.Replace(unit.ID, start, end, fmt.Sprintf("%s.%s", recvName, fieldName))

	// (d) imports the rewritten code requires
	for _, imp := range issue.RequiredImports {
		tx.EnsureImport(unit.ID, imp)
	}
	return tx, nil
}

// injectViaLifecycle extends the Init method with the new parameter and
// assignment, creating Init when the component has none.
func (t *InjectDependencyTransformer) injectViaLifecycle(prog *program.Program, tx *Transaction, ti *program.TypeInfo, fieldName, depType string) bool {
	if sym, ok := ti.Methods["Init"]; ok {
		fd, ok := sym.Decl.(*ast.FuncDecl)
		if !ok || fd.Body == nil || fd.Recv == nil || len(fd.Recv.List[0].Names) == 0 {
			return false
		}
		recv := fd.Recv.List[0].Names[0].Name
		if recv == "_" {
			return false
		}
		param := fmt.Sprintf("%s *%s", fieldName, depType)
		if fd.Type.Params != nil && len(fd.Type.Params.List) > 0 {
			param = ", " + param
		}
		tx.Insert(sym.UnitID, prog.Position(fd.Type.Params.Closing).Offset, param)
		tx.Insert(sym.UnitID, prog.Position(fd.Body.Lbrace).Offset+1,
			fmt.Sprintf("\n\t%s.%s = %s", recv, fieldName, fieldName))
		return true
	}
	recv := strings.ToLower(ti.Name[:1])
	tx.Insert(ti.UnitID, unitEnd(prog, ti.UnitID), fmt.Sprintf(
		"\nfunc (%s *%s) Init(%s *%s) {\n\t%s.%s = %s\n}\n",
		recv, ti.Name, fieldName, depType, recv, fieldName, fieldName))
	return true
}

// injectViaConstructor adds the parameter to New<Type> and wires it into
// the returned composite literal, creating the constructor when the type
// has none.
func (t *InjectDependencyTransformer) injectViaConstructor(prog *program.Program, tx *Transaction, ti *program.TypeInfo, fieldName, depType string) bool {
	st := prog.Symbols()
	sym, ok := st.Lookup("New" + ti.Name)
	if !ok {
		tx.Insert(ti.UnitID, unitEnd(prog, ti.UnitID), fmt.Sprintf(
			"\nfunc New%s(%s *%s) *%s {\n\treturn &%s{%s: %s}\n}\n",
			ti.Name, fieldName, depType, ti.Name, ti.Name, fieldName, fieldName))
		return true
	}
	fd, ok := sym.Decl.(*ast.FuncDecl)
	if !ok || fd.Body == nil || sym.Kind != program.KindFunc {
		return false
	}
	lit := returnedLiteral(fd, ti.Name)
	if lit == nil {
		return false
	}
	param := fmt.Sprintf("%s *%s", fieldName, depType)
	if fd.Type.Params != nil && len(fd.Type.Params.List) > 0 {
		param = ", " + param
	}
	tx.Insert(sym.UnitID, prog.Position(fd.Type.Params.Closing).Offset, param)

	entry := fmt.Sprintf("%s: %s", fieldName, fieldName)
	if len(lit.Elts) > 0 {
		last := lit.Elts[len(lit.Elts)-1]
		tx.Insert(sym.UnitID, prog.Position(last.End()).Offset, ", "+entry)
	} else {
		tx.Insert(sym.UnitID, prog.Position(lit.Rbrace).Offset, entry)
	}
	return true
}

// returnedLiteral finds the composite literal of the constructed type
// inside the constructor body.
func returnedLiteral(fd *ast.FuncDecl, typeName string) *ast.CompositeLit {
	var found *ast.CompositeLit
	ast.Inspect(fd.Body, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		if lit, ok := n.(*ast.CompositeLit); ok && program.OriginalDefinition(lit.Type) == typeName {
			found = lit
			return false
		}
		return true
	})
	return found
}

// findResolverField looks for a resolver-capable field on the type or any
// type in its base chain.
func findResolverField(st *program.SymbolTable, typeName string) (string, bool) {
	check := func(ti *program.TypeInfo) (string, bool) {
		for _, f := range ti.Fields {
			if isResolverType(f.TypeName) {
				return f.Name, true
			}
		}
		return "", false
	}
	if ti, ok := st.Type(typeName); ok {
		if name, ok := check(ti); ok {
			return name, true
		}
	}
	for _, base := range st.BaseChain(typeName) {
		if ti, ok := st.Type(base); ok {
			if name, ok := check(ti); ok {
				return name, true
			}
		}
	}
	return "", false
}

func isResolverType(name string) bool {
	return name == "Resolver" ||
		strings.HasSuffix(name, "Resolver") ||
		strings.HasSuffix(name, "Container")
}

func unitEnd(prog *program.Program, unitID string) int {
	unit, ok := prog.Unit(unitID)
	if !ok {
		return 0
	}
	return len(unit.Source)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
