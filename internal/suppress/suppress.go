// Package suppress implements //smelt:ignore directives. A directive
// suppresses findings on its own line and on the line directly below it,
// either for the listed rules or, with no list, for every rule.
package suppress

import (
	"go/token"
	"strings"

	"github.com/smeltwork/smelt/internal/program"
)

const directive = "//smelt:ignore"

type scope struct {
	rules    map[string]struct{} // empty means all rules
	fromLine int
	toLine   int
}

// Manager holds the parsed directives of one program snapshot.
type Manager struct {
	scopes map[string][]scope // unit id -> scopes
}

// Parse collects ignore directives from every unit of the program.
func Parse(prog *program.Program) *Manager {
	m := &Manager{scopes: make(map[string][]scope)}
	for _, unit := range prog.Units() {
		for _, cg := range unit.File.Comments {
			for _, c := range cg.List {
				s, ok := parseDirective(c.Text, prog.Position(c.Pos()))
				if !ok {
					continue
				}
				m.scopes[unit.ID] = append(m.scopes[unit.ID], s)
			}
		}
	}
	return m
}

func parseDirective(text string, pos token.Position) (scope, bool) {
	if !strings.HasPrefix(text, directive) {
		return scope{}, false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(text, directive))
	s := scope{
		rules:    make(map[string]struct{}),
		fromLine: pos.Line,
		toLine:   pos.Line + 1,
	}
	if rest != "" {
		for _, rule := range strings.Split(rest, ",") {
			rule = strings.TrimSpace(rule)
			if rule != "" {
				s.rules[rule] = struct{}{}
			}
		}
	}
	return s, true
}

// Suppressed reports whether a finding of the given rule at the given
// position is covered by a directive.
func (m *Manager) Suppressed(unitID string, line int, rule string) bool {
	for _, s := range m.scopes[unitID] {
		if line < s.fromLine || line > s.toLine {
			continue
		}
		if len(s.rules) == 0 {
			return true
		}
		if _, ok := s.rules[rule]; ok {
			return true
		}
	}
	return false
}
