package fixer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smeltwork/smelt/internal/lints"
	"github.com/smeltwork/smelt/internal/program"
	tt "github.com/smeltwork/smelt/internal/types"
)

func abbreviationIssues(t *testing.T, prog *program.Program) []tt.Issue {
	t.Helper()
	issues, err := lints.DetectAbbreviatedIdentifiers(prog)
	require.NoError(t, err)
	return issues
}

func TestRenamePackageLevelSymbolAcrossUnits(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"state.go": `package game

var cnt = 0
`,
		"use.go": `package game

func bump() {
	cnt++
}

func read() int {
	return cnt
}
`,
	})

	issues := abbreviationIssues(t, prog)
	require.Len(t, issues, 1)

	transformer := NewRenameTransformer()
	tx, err := transformer.Transform(prog, issues[0])
	require.NoError(t, err)
	require.NotNil(t, tx)
	// declaration plus two references
	assert.Equal(t, 3, tx.EditCount())

	next, err := Apply(prog, tx)
	require.NoError(t, err)
	assert.Contains(t, unitText(t, next, "state.go"), "var count = 0")
	useOut := unitText(t, next, "use.go")
	assert.Contains(t, useOut, "count++")
	assert.Contains(t, useOut, "return count")
	assert.NotContains(t, useOut, "cnt")
}

func TestRenameLocalOccurrences(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"game.go": `package game

func pick(items []int) int {
	idx := 0
	idx++
	return items[idx]
}
`,
	})

	issues := abbreviationIssues(t, prog)
	require.Len(t, issues, 1)

	transformer := NewRenameTransformer()
	tx, err := transformer.Transform(prog, issues[0])
	require.NoError(t, err)
	require.NotNil(t, tx)

	next, err := Apply(prog, tx)
	require.NoError(t, err)
	out := unitText(t, next, "game.go")
	assert.Contains(t, out, "index := 0")
	assert.Contains(t, out, "index++")
	assert.Contains(t, out, "items[index]")
	assert.NotContains(t, out, "idx")
}

func TestRenameLeavesUnrelatedMembersAlone(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"game.go": `package game

type cursor struct{ idx int }

func step(c *cursor) {
	idx := c.idx
	idx++
	c.idx = idx
}
`,
	})

	issues := abbreviationIssues(t, prog)
	require.Len(t, issues, 1)

	transformer := NewRenameTransformer()
	tx, err := transformer.Transform(prog, issues[0])
	require.NoError(t, err)
	require.NotNil(t, tx)

	next, err := Apply(prog, tx)
	require.NoError(t, err)
	out := unitText(t, next, "game.go")
	assert.Contains(t, out, "type cursor struct{ idx int }", "the field keeps its name")
	assert.Contains(t, out, "index := c.idx")
	assert.Contains(t, out, "c.idx = index")
}

func TestRenameSkipsSelectorMembersOfSameName(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"game.go": `package game

var cnt = 0

type counter struct{}

func (c *counter) Inc() {}

type Game struct {
	cnt counter
}

func (g *Game) Tick() {
	g.cnt.Inc()
	cnt++
}
`,
	})

	issues := abbreviationIssues(t, prog)
	require.Len(t, issues, 1)

	transformer := NewRenameTransformer()
	tx, err := transformer.Transform(prog, issues[0])
	require.NoError(t, err)
	require.NotNil(t, tx)
	// declaration plus the bare increment; the field selector is untouched
	assert.Equal(t, 2, tx.EditCount())

	next, err := Apply(prog, tx)
	require.NoError(t, err)
	out := unitText(t, next, "game.go")
	assert.Contains(t, out, "var count = 0")
	assert.Contains(t, out, "g.cnt.Inc()")
	assert.Contains(t, out, "count++")
}

func TestRenameAbstainsWhenReferenceWouldBeCaptured(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"game.go": `package game

var rng = 1

func roll() int {
	randomGenerator := 7
	_ = randomGenerator
	return rng
}
`,
	})

	issues := abbreviationIssues(t, prog)
	require.Len(t, issues, 1)

	transformer := NewRenameTransformer()
	tx, err := transformer.Transform(prog, issues[0])
	require.NoError(t, err)
	assert.Nil(t, tx, "a local with the target name would capture the reference")
}

func TestRenameAbstainsWhenTargetNameTaken(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"game.go": `package game

var cnt = 0

var count = 1
`,
	})

	issues := abbreviationIssues(t, prog)
	require.Len(t, issues, 1)

	transformer := NewRenameTransformer()
	tx, err := transformer.Transform(prog, issues[0])
	require.NoError(t, err)
	assert.Nil(t, tx, "renaming onto an existing symbol must abstain")
}

func TestRenameAbstainsWhenLocalTargetNameTaken(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"game.go": `package game

func tally() int {
	cnt := 0
	count := 1
	return cnt + count
}
`,
	})

	issues := abbreviationIssues(t, prog)
	require.Len(t, issues, 1)

	transformer := NewRenameTransformer()
	tx, err := transformer.Transform(prog, issues[0])
	require.NoError(t, err)
	assert.Nil(t, tx)
}
