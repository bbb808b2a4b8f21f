package internal

import (
	"github.com/smeltwork/smelt/internal/lints"
	"github.com/smeltwork/smelt/internal/program"
	tt "github.com/smeltwork/smelt/internal/types"
)

/*
* Implement each lint rule as a separate struct
 */

// LintRule defines the interface for all lint rules. A rule is stateless:
// it reads one program snapshot and returns findings. Rules run
// concurrently against the same snapshot and must not mutate it.
type LintRule interface {
	// Check runs the rule against the program and returns its findings.
	Check(prog *program.Program) ([]tt.Issue, error)

	// Name returns the diagnostic identifier the rule owns.
	Name() string

	Severity() tt.Severity
	SetSeverity(tt.Severity)
}

type severityMixin struct {
	severity tt.Severity
}

func (s *severityMixin) Severity() tt.Severity       { return s.severity }
func (s *severityMixin) SetSeverity(sev tt.Severity) { s.severity = sev }

type CommentOnlyFunctionRule struct{ severityMixin }

func NewCommentOnlyFunctionRule() LintRule {
	return &CommentOnlyFunctionRule{severityMixin{tt.SeverityWarning}}
}

func (r *CommentOnlyFunctionRule) Check(prog *program.Program) ([]tt.Issue, error) {
	return lints.DetectCommentOnlyFunctions(prog)
}

func (r *CommentOnlyFunctionRule) Name() string { return "comment-only-function" }

type UnusedFunctionRule struct{ severityMixin }

func NewUnusedFunctionRule() LintRule {
	return &UnusedFunctionRule{severityMixin{tt.SeverityWarning}}
}

func (r *UnusedFunctionRule) Check(prog *program.Program) ([]tt.Issue, error) {
	return lints.DetectUnusedFunctions(prog)
}

func (r *UnusedFunctionRule) Name() string { return "unused-function" }

type NondeterministicSimulationRule struct{ severityMixin }

func NewNondeterministicSimulationRule() LintRule {
	return &NondeterministicSimulationRule{severityMixin{tt.SeverityError}}
}

func (r *NondeterministicSimulationRule) Check(prog *program.Program) ([]tt.Issue, error) {
	return lints.DetectNondeterministicSimulation(prog)
}

func (r *NondeterministicSimulationRule) Name() string { return "nondeterministic-simulation" }

type LiteralShadowsIdentifierRule struct{ severityMixin }

func NewLiteralShadowsIdentifierRule() LintRule {
	return &LiteralShadowsIdentifierRule{severityMixin{tt.SeverityWarning}}
}

func (r *LiteralShadowsIdentifierRule) Check(prog *program.Program) ([]tt.Issue, error) {
	return lints.DetectLiteralShadowsIdentifier(prog)
}

func (r *LiteralShadowsIdentifierRule) Name() string { return "literal-shadows-identifier" }

type MagicStateNumberRule struct{ severityMixin }

func NewMagicStateNumberRule() LintRule {
	return &MagicStateNumberRule{severityMixin{tt.SeverityWarning}}
}

func (r *MagicStateNumberRule) Check(prog *program.Program) ([]tt.Issue, error) {
	return lints.DetectMagicStateNumbers(prog)
}

func (r *MagicStateNumberRule) Name() string { return "magic-state-number" }

type DirectConstructionRule struct{ severityMixin }

func NewDirectConstructionRule() LintRule {
	return &DirectConstructionRule{severityMixin{tt.SeverityInfo}}
}

func (r *DirectConstructionRule) Check(prog *program.Program) ([]tt.Issue, error) {
	return lints.DetectDirectConstruction(prog)
}

func (r *DirectConstructionRule) Name() string { return "direct-construction" }

type AbbreviatedIdentifierRule struct{ severityMixin }

func NewAbbreviatedIdentifierRule() LintRule {
	return &AbbreviatedIdentifierRule{severityMixin{tt.SeverityInfo}}
}

func (r *AbbreviatedIdentifierRule) Check(prog *program.Program) ([]tt.Issue, error) {
	return lints.DetectAbbreviatedIdentifiers(prog)
}

func (r *AbbreviatedIdentifierRule) Name() string { return "abbreviated-identifier" }
