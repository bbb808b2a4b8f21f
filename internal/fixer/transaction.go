package fixer

import (
	"bytes"
	"fmt"
	"go/format"
	"go/parser"
	"go/token"
	"sort"
	"strconv"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/smeltwork/smelt/internal/program"
)

// Edit is a single byte-range replacement inside one unit.
type Edit struct {
	UnitID  string
	Start   int
	End     int
	NewText string
}

// NewUnitSpec is a source unit the transaction creates from scratch.
type NewUnitSpec struct {
	ID      string
	Content []byte
}

// Transaction is an atomic, possibly multi-unit set of edits. Edits are
// accumulated per unit through the builder methods and applied together or
// not at all.
type Transaction struct {
	Description string

	edits    map[string][]Edit
	order    []string // unit ids, first touch order
	newUnits []NewUnitSpec
	imports  map[string][]string
}

func NewTransaction(description string) *Transaction {
	return &Transaction{
		Description: description,
		edits:       make(map[string][]Edit),
		imports:     make(map[string][]string),
	}
}

func (tx *Transaction) touch(unitID string) {
	if _, ok := tx.edits[unitID]; !ok {
		tx.order = append(tx.order, unitID)
	}
}

// Replace stages a replacement of bytes [start, end) in the unit.
func (tx *Transaction) Replace(unitID string, start, end int, text string) {
	tx.touch(unitID)
	tx.edits[unitID] = append(tx.edits[unitID], Edit{UnitID: unitID, Start: start, End: end, NewText: text})
}

// Insert stages an insertion at the given offset.
func (tx *Transaction) Insert(unitID string, offset int, text string) {
	tx.Replace(unitID, offset, offset, text)
}

// Delete stages a deletion of bytes [start, end).
func (tx *Transaction) Delete(unitID string, start, end int) {
	tx.Replace(unitID, start, end, "")
}

// AddUnit stages creation of a new source unit.
func (tx *Transaction) AddUnit(id string, content []byte) {
	tx.newUnits = append(tx.newUnits, NewUnitSpec{ID: id, Content: content})
}

// EnsureImport stages an import declaration the unit must end up with.
func (tx *Transaction) EnsureImport(unitID, path string) {
	tx.imports[unitID] = append(tx.imports[unitID], path)
}

// Empty reports whether the transaction stages no change at all.
func (tx *Transaction) Empty() bool {
	return len(tx.edits) == 0 && len(tx.newUnits) == 0
}

// Units returns the ids of units the transaction edits, in first-touch
// order. Created units are not included.
func (tx *Transaction) Units() []string {
	return tx.order
}

// EditCount returns the number of staged range edits.
func (tx *Transaction) EditCount() int {
	n := 0
	for _, edits := range tx.edits {
		n += len(edits)
	}
	return n
}

// MultiUnit reports whether the transaction touches more than one unit,
// created units included.
func (tx *Transaction) MultiUnit() bool {
	return len(tx.order)+len(tx.newUnits) > 1
}

// Edits returns the staged edits for one unit.
func (tx *Transaction) Edits(unitID string) []Edit {
	return tx.edits[unitID]
}

// Apply commits the transaction against a snapshot and returns the next
// snapshot. It is all-or-nothing: every staged content is built and
// validated before any snapshot is derived, and any failure (overlapping
// edits, span out of range, unknown unit, duplicate new unit, unparsable
// result) returns the original program untouched.
func Apply(prog *program.Program, tx *Transaction) (*program.Program, error) {
	if tx == nil || tx.Empty() {
		return prog, fmt.Errorf("empty transaction")
	}
	sources := prog.Sources()

	for unitID, edits := range tx.edits {
		src, ok := sources[unitID]
		if !ok {
			return prog, fmt.Errorf("transaction references unknown unit %s", unitID)
		}
		spliced, err := spliceEdits(src, edits)
		if err != nil {
			return prog, fmt.Errorf("unit %s: %w", unitID, err)
		}
		sources[unitID] = spliced
	}

	for _, nu := range tx.newUnits {
		if _, exists := sources[nu.ID]; exists {
			return prog, fmt.Errorf("transaction creates unit %s which already exists", nu.ID)
		}
		sources[nu.ID] = nu.Content
	}

	for unitID, paths := range tx.imports {
		src, ok := sources[unitID]
		if !ok {
			return prog, fmt.Errorf("transaction imports into unknown unit %s", unitID)
		}
		withImports, err := ensureImports(src, paths)
		if err != nil {
			return prog, fmt.Errorf("unit %s: adding imports: %w", unitID, err)
		}
		sources[unitID] = withImports
	}

	// Validate and normalize every touched unit before deriving the next
	// snapshot; a single failure discards the whole transaction.
	for unitID := range tx.edits {
		formatted, err := format.Source(sources[unitID])
		if err != nil {
			return prog, fmt.Errorf("unit %s no longer parses after edit: %w", unitID, err)
		}
		sources[unitID] = formatted
	}
	for _, nu := range tx.newUnits {
		formatted, err := format.Source(sources[nu.ID])
		if err != nil {
			return prog, fmt.Errorf("new unit %s does not parse: %w", nu.ID, err)
		}
		sources[nu.ID] = formatted
	}

	next, err := program.FromSources(sources)
	if err != nil {
		return prog, fmt.Errorf("rebuilding program: %w", err)
	}
	return next, nil
}

// ensureImports returns src with every missing import path from paths
// added. The source must already be a valid unit, since Apply runs this
// after splicing. Untouched src comes back as-is.
func ensureImports(src []byte, paths []string) ([]byte, error) {
	if len(paths) == 0 {
		return src, nil
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", src, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	declared := make(map[string]bool, len(file.Imports))
	for _, imp := range file.Imports {
		if path, err := strconv.Unquote(imp.Path.Value); err == nil {
			declared[path] = true
		}
	}

	added := false
	for _, path := range paths {
		if !declared[path] {
			astutil.AddImport(fset, file, path)
			declared[path] = true
			added = true
		}
	}
	if !added {
		return src, nil
	}

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, file); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// spliceEdits applies edits to src in descending start order so earlier
// offsets stay valid. Overlapping edits are rejected.
func spliceEdits(src []byte, edits []Edit) ([]byte, error) {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start > sorted[j].Start
		}
		return sorted[i].End > sorted[j].End
	})

	for i, e := range sorted {
		if e.Start < 0 || e.End < e.Start || e.End > len(src) {
			return nil, fmt.Errorf("edit span [%d, %d) out of range", e.Start, e.End)
		}
		if i+1 < len(sorted) && sorted[i+1].End > e.Start {
			return nil, fmt.Errorf("overlapping edits at offset %d", e.Start)
		}
	}

	out := make([]byte, len(src))
	copy(out, src)
	for _, e := range sorted {
		out = append(out[:e.Start], append([]byte(e.NewText), out[e.End:]...)...)
	}
	return out, nil
}

// Overlaps reports whether any edit of tx overlaps any edit of other in a
// shared unit. Used by batch application to keep combined transactions
// disjoint.
func (tx *Transaction) Overlaps(other *Transaction) bool {
	for unitID, edits := range tx.edits {
		for _, a := range edits {
			for _, b := range other.edits[unitID] {
				if a.Start < b.End && b.Start < a.End {
					return true
				}
				if a.Start == b.Start && a.End == b.End {
					return true
				}
			}
		}
	}
	return false
}

// Merge folds other's edits, new units and imports into tx.
func (tx *Transaction) Merge(other *Transaction) {
	for _, unitID := range other.order {
		for _, e := range other.edits[unitID] {
			tx.Replace(unitID, e.Start, e.End, e.NewText)
		}
	}
	for _, nu := range other.newUnits {
		tx.AddUnit(nu.ID, nu.Content)
	}
	for unitID, paths := range other.imports {
		for _, p := range paths {
			tx.EnsureImport(unitID, p)
		}
	}
}
