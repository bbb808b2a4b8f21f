package fixer

import (
	"fmt"

	"github.com/smeltwork/smelt/internal/program"
	tt "github.com/smeltwork/smelt/internal/types"
)

// Transformer maps one issue to at most one transaction, or abstains by
// returning (nil, nil). Transformers never guess: an unprovable
// precondition, an unresolvable span or an ambiguous target all mean
// abstention, not a best-effort edit.
type Transformer interface {
	// RuleID returns the diagnostic identifier this transformer fixes.
	RuleID() string

	// CanBatch reports whether transactions from this transformer may be
	// combined with others in one batch application. Renames and
	// multi-unit fixes say false: their blast radius is unpredictable
	// relative to other pending transactions.
	CanBatch() bool

	Transform(prog *program.Program, issue tt.Issue) (*Transaction, error)
}

// DefaultTransformers returns the built-in transformer registry keyed by
// rule id.
func DefaultTransformers() map[string]Transformer {
	transformers := []Transformer{
		NewRemoveFunctionTransformer("comment-only-function"),
		NewRemoveFunctionTransformer("unused-function"),
		NewInjectDependencyTransformer(),
		NewStateEnumTransformer(),
		NewRenameTransformer(),
	}
	registry := make(map[string]Transformer, len(transformers))
	for _, t := range transformers {
		registry[t.RuleID()] = t
	}
	return registry
}

// AppliedFix records one committed transaction.
type AppliedFix struct {
	Rule        string
	Description string
	UnitID      string
}

// DetectFunc re-runs detection against a snapshot. The fixer calls it
// between commits because issues never outlive the snapshot that produced
// them.
type DetectFunc func(*program.Program) ([]tt.Issue, error)

// Fixer drives the detect, transform, apply loop.
type Fixer struct {
	DryRun        bool
	MinConfidence float64 // threshold for fixing issues

	transformers map[string]Transformer
}

func New(dryRun bool, threshold float64) *Fixer {
	return &Fixer{
		DryRun:        dryRun,
		MinConfidence: threshold,
		transformers:  DefaultTransformers(),
	}
}

// Propose returns the transaction for one issue, or nil when no
// transformer owns the rule or the transformer abstains.
func (f *Fixer) Propose(prog *program.Program, issue tt.Issue) (*Transaction, error) {
	t, ok := f.transformers[issue.Rule]
	if !ok {
		return nil, nil
	}
	return t.Transform(prog, issue)
}

const maxFixRounds = 100

// Run repeatedly detects and fixes until nothing more can be applied,
// returning the final snapshot and the committed fixes. Per round,
// batchable single-unit transactions are merged into one commit, skipping
// any that overlap an already accepted one; non-batchable transactions
// are committed one per round so every later proposal sees a fresh
// snapshot.
func (f *Fixer) Run(prog *program.Program, detect DetectFunc) (*program.Program, []AppliedFix, error) {
	var applied []AppliedFix
	for round := 0; round < maxFixRounds; round++ {
		issues, err := detect(prog)
		if err != nil {
			return prog, applied, err
		}

		next, committed, err := f.fixOnce(prog, issues)
		if err != nil {
			return prog, applied, err
		}
		if len(committed) == 0 {
			break
		}
		applied = append(applied, committed...)
		prog = next
	}
	return prog, applied, nil
}

func (f *Fixer) fixOnce(prog *program.Program, issues []tt.Issue) (*program.Program, []AppliedFix, error) {
	batch := NewTransaction("batch fix")
	var batchFixes []AppliedFix

	for _, issue := range issues {
		if issue.Confidence < f.MinConfidence {
			continue
		}
		t, ok := f.transformers[issue.Rule]
		if !ok {
			continue
		}
		tx, err := t.Transform(prog, issue)
		if err != nil {
			return prog, nil, fmt.Errorf("transforming %s at %s: %w", issue.Rule, issue.Filename, err)
		}
		if tx == nil {
			continue
		}

		if !t.CanBatch() || tx.MultiUnit() {
			// Commit alone; everything else waits for the next round
			// against the fresh snapshot.
			if f.DryRun {
				f.describe(issue, tx)
				continue
			}
			next, err := Apply(prog, tx)
			if err != nil {
				return prog, nil, err
			}
			return next, []AppliedFix{{Rule: issue.Rule, Description: tx.Description, UnitID: issue.Filename}}, nil
		}

		if batch.Overlaps(tx) {
			continue
		}
		if f.DryRun {
			f.describe(issue, tx)
			continue
		}
		batch.Merge(tx)
		batchFixes = append(batchFixes, AppliedFix{Rule: issue.Rule, Description: tx.Description, UnitID: issue.Filename})
	}

	if batch.Empty() {
		return prog, nil, nil
	}
	next, err := Apply(prog, batch)
	if err != nil {
		return prog, nil, err
	}
	return next, batchFixes, nil
}

func (f *Fixer) describe(issue tt.Issue, tx *Transaction) {
	fmt.Printf("Would fix %s in %s at line %d: %s\n",
		issue.Rule, issue.Filename, issue.Start.Line, tx.Description)
}
