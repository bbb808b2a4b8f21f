package internal

import (
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/smeltwork/smelt/internal/program"
	"github.com/smeltwork/smelt/internal/suppress"
	tt "github.com/smeltwork/smelt/internal/types"
)

// Engine manages the detection process: it owns the active rule set and
// runs it against program snapshots.
type Engine struct {
	ignoredRules map[string]bool
	rules        map[string]LintRule
}

// NewEngine creates a detection engine with the default rule set, adjusted
// by the given per-rule configuration.
func NewEngine(rules map[string]tt.ConfigRule) (*Engine, error) {
	engine := &Engine{}
	engine.applyRules(rules)
	return engine, nil
}

type ruleConstructor func() LintRule

type ruleMap map[string]ruleConstructor

var allRuleConstructors = ruleMap{
	"comment-only-function":       NewCommentOnlyFunctionRule,
	"unused-function":             NewUnusedFunctionRule,
	"nondeterministic-simulation": NewNondeterministicSimulationRule,
	"literal-shadows-identifier":  NewLiteralShadowsIdentifierRule,
	"magic-state-number":          NewMagicStateNumberRule,
	"direct-construction":         NewDirectConstructionRule,
	"abbreviated-identifier":      NewAbbreviatedIdentifierRule,
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) {
	e.rules = make(map[string]LintRule)
	e.registerDefaultRules()

	for key, rule := range rules {
		r := e.findRule(key)
		if r == nil {
			// unknown rule name, skip
			continue
		}
		if rule.Severity == tt.SeverityOff {
			e.IgnoreRule(key)
		}
		r.SetSeverity(rule.Severity)
	}
}

func (e *Engine) registerDefaultRules() {
	for key, construct := range allRuleConstructors {
		rule := construct()
		if rule.Severity() != tt.SeverityOff {
			e.rules[key] = rule
		}
	}
}

func (e *Engine) findRule(name string) LintRule {
	if rule, ok := e.rules[name]; ok {
		return rule
	}
	return nil
}

// IgnoreRule disables a rule by name.
func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

// Rules returns the active rule set keyed by name.
func (e *Engine) Rules() map[string]LintRule {
	return e.rules
}

// Run applies every active rule to the program snapshot and returns the
// collected findings. The snapshot is read-only, so rules run
// concurrently; findings from different rules are concatenated without
// deduplication.
func (e *Engine) Run(prog *program.Program) ([]tt.Issue, error) {
	suppressions := suppress.Parse(prog)

	var (
		mu        sync.Mutex
		allIssues []tt.Issue
	)
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for _, rule := range e.rules {
		if e.ignoredRules[rule.Name()] {
			continue
		}
		r := rule
		g.Go(func() error {
			issues, err := r.Check(prog)
			if err != nil {
				return err
			}
			severity := r.Severity()
			kept := make([]tt.Issue, 0, len(issues))
			for _, issue := range issues {
				if suppressions.Suppressed(issue.Filename, issue.Start.Line, issue.Rule) {
					continue
				}
				issue.Severity = severity
				kept = append(kept, issue)
			}
			mu.Lock()
			allIssues = append(allIssues, kept...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return allIssues, nil
}
