package fixer

import (
	"fmt"
	"go/ast"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/smeltwork/smelt/internal/program"
	tt "github.com/smeltwork/smelt/internal/types"
)

// StateEnumTransformer replaces a magic state number with a named constant
// kept in the type's companion state file (<typename>_state.go next to the
// type). The companion is appended to when it exists and synthesized when
// it does not; a constant is reused when the value already has one, so
// repeated fixes of the same value never duplicate members. The companion
// edit and the call-site rewrite land in different units, merged as one
// transaction.
type StateEnumTransformer struct{}

func NewStateEnumTransformer() *StateEnumTransformer { return &StateEnumTransformer{} }

func (t *StateEnumTransformer) RuleID() string { return "magic-state-number" }

func (t *StateEnumTransformer) CanBatch() bool { return false }

func (t *StateEnumTransformer) Transform(prog *program.Program, issue tt.Issue) (*Transaction, error) {
	unit, ok := unitFor(prog, issue)
	if !ok {
		return nil, nil
	}
	lit := literalAt(prog, unit, issue)
	if lit == nil || lit.Kind != token.INT {
		return nil, nil
	}
	value, err := strconv.Atoi(lit.Value)
	if err != nil {
		return nil, nil
	}

	fd := enclosingFuncDecl(prog, unit, prog.Position(lit.Pos()).Offset)
	if fd == nil || fd.Recv == nil || len(fd.Recv.List) == 0 {
		return nil, nil
	}
	typeName := program.OriginalDefinition(fd.Recv.List[0].Type)
	if typeName == "" {
		return nil, nil
	}
	enumType := typeName + "State"
	companionID := filepath.Join(filepath.Dir(unit.ID), strings.ToLower(typeName)+"_state.go")

	tx := NewTransaction(fmt.Sprintf("replace magic state %d with %s constant", value, enumType))

	memberName := ""
	if companion, ok := prog.Unit(companionID); ok {
		memberName = t.appendMember(prog, tx, companion, enumType, value)
	} else {
		memberName = memberNameFor(enumType, value)
		_, typeDeclared := prog.Symbols().Lookup(enumType)
		tx.AddUnit(companionID, synthesizeCompanion(unit.File.Name.Name, enumType, memberName, value, !typeDeclared))
	}
	if memberName == "" {
		return nil, nil
	}

	start := prog.Position(lit.Pos()).Offset
	end := prog.Position(lit.End()).Offset
	tx.Replace(unit.ID, start, end, fmt.Sprintf("int(%s)", memberName))
	return tx, nil
}

// appendMember returns the constant name for the value, staging an append
// to the companion's const block when the value has no member yet. Returns
// "" when the companion cannot be extended.
func (t *StateEnumTransformer) appendMember(prog *program.Program, tx *Transaction, companion *program.SourceUnit, enumType string, value int) string {
	members, block := enumMembers(companion, enumType)
	for name, v := range members {
		if v == value {
			return name
		}
	}
	name := memberNameFor(enumType, value)
	if _, taken := prog.Symbols().Lookup(name); taken {
		return ""
	}
	line := fmt.Sprintf("\t%s %s = %d\n", name, enumType, value)
	if block != nil && block.Rparen.IsValid() {
		tx.Insert(companion.ID, prog.Position(block.Rparen).Offset, line)
		return name
	}
	decl := fmt.Sprintf("\nconst %s %s = %d\n", name, enumType, value)
	tx.Insert(companion.ID, len(companion.Source), decl)
	return name
}

func memberNameFor(enumType string, value int) string {
	return fmt.Sprintf("%s%d", enumType, value)
}

// enumMembers collects name→value for constants of the enum type in the
// companion, along with the parenthesized const block declaring them.
// Explicit integer values and plain iota runs are understood.
func enumMembers(unit *program.SourceUnit, enumType string) (map[string]int, *ast.GenDecl) {
	members := make(map[string]int)
	var block *ast.GenDecl
	for _, decl := range unit.File.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.CONST {
			continue
		}
		currentType := ""
		for iotaValue, spec := range gd.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			if vs.Type != nil {
				currentType = program.OriginalDefinition(vs.Type)
			}
			if currentType != enumType {
				continue
			}
			if gd.Lparen.IsValid() {
				block = gd
			}
			for i, name := range vs.Names {
				v, ok := constValue(vs, i, iotaValue)
				if !ok {
					continue
				}
				members[name.Name] = v
			}
		}
	}
	return members, block
}

func constValue(vs *ast.ValueSpec, i, iotaValue int) (int, bool) {
	if i < len(vs.Values) {
		switch v := vs.Values[i].(type) {
		case *ast.BasicLit:
			if v.Kind == token.INT {
				n, err := strconv.Atoi(v.Value)
				return n, err == nil
			}
		case *ast.Ident:
			if v.Name == "iota" {
				return iotaValue, true
			}
		}
		return 0, false
	}
	// bare name continuing an iota run
	return iotaValue, true
}

func synthesizeCompanion(pkg, enumType, member string, value int, includeType bool) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	if includeType {
		fmt.Fprintf(&b, "type %s int\n\n", enumType)
	}
	fmt.Fprintf(&b, "const (\n\t%s %s = %d\n)\n", member, enumType, value)
	return []byte(b.String())
}
