package program

import (
	"fmt"
	"go/token"
	"os"
	"sort"
)

// Program is an immutable snapshot of a set of source units plus the
// symbol table derived from them. Every transaction commit derives a new
// Program; nothing mutates a snapshot in place.
type Program struct {
	fset    *token.FileSet
	units   []*SourceUnit
	byID    map[string]*SourceUnit
	symbols *SymbolTable
}

// FromSources builds a snapshot from in-memory sources keyed by unit id.
// Units are ordered by id so identical inputs yield identical snapshots.
func FromSources(sources map[string][]byte) (*Program, error) {
	ids := make([]string, 0, len(sources))
	for id := range sources {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fset := token.NewFileSet()
	p := &Program{
		fset: fset,
		byID: make(map[string]*SourceUnit, len(ids)),
	}
	for _, id := range ids {
		unit, err := parseUnit(fset, id, sources[id])
		if err != nil {
			return nil, err
		}
		p.units = append(p.units, unit)
		p.byID[id] = unit
	}
	p.symbols = buildSymbolTable(p)
	return p, nil
}

// Load builds a snapshot from files on disk.
func Load(paths []string) (*Program, error) {
	sources := make(map[string][]byte, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		sources[path] = content
	}
	return FromSources(sources)
}

// Fset returns the file set shared by all units in this snapshot.
func (p *Program) Fset() *token.FileSet { return p.fset }

// Units returns the units in id order.
func (p *Program) Units() []*SourceUnit { return p.units }

// Unit returns the unit with the given id.
func (p *Program) Unit(id string) (*SourceUnit, bool) {
	u, ok := p.byID[id]
	return u, ok
}

// Symbols returns the symbol table for this snapshot.
func (p *Program) Symbols() *SymbolTable { return p.symbols }

// Position resolves a token.Pos against this snapshot's file set.
func (p *Program) Position(pos token.Pos) token.Position {
	return p.fset.Position(pos)
}

// Sources returns a copy of every unit's source keyed by id. Transaction
// application starts from this map to derive the next snapshot.
func (p *Program) Sources() map[string][]byte {
	sources := make(map[string][]byte, len(p.units))
	for _, u := range p.units {
		src := make([]byte, len(u.Source))
		copy(src, u.Source)
		sources[u.ID] = src
	}
	return sources
}
