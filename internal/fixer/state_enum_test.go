package fixer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smeltwork/smelt/internal/lints"
	"github.com/smeltwork/smelt/internal/program"
	tt "github.com/smeltwork/smelt/internal/types"
)

func magicStateIssues(t *testing.T, prog *program.Program) []tt.Issue {
	t.Helper()
	issues, err := lints.DetectMagicStateNumbers(prog)
	require.NoError(t, err)
	return issues
}

func TestStateEnumSynthesizesCompanion(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"player.go": `package game

type Player struct{}

func (p *Player) SetState(s int) {}

func (p *Player) Kill() {
	p.SetState(3)
}
`,
	})

	issues := magicStateIssues(t, prog)
	require.Len(t, issues, 1)

	transformer := NewStateEnumTransformer()
	tx, err := transformer.Transform(prog, issues[0])
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.True(t, tx.MultiUnit(), "companion creation plus call-site rewrite")

	next, err := Apply(prog, tx)
	require.NoError(t, err)

	companion := unitText(t, next, "player_state.go")
	assert.Contains(t, companion, "type PlayerState int")
	assert.Contains(t, companion, "PlayerState3 PlayerState = 3")

	assert.Contains(t, unitText(t, next, "player.go"), "p.SetState(int(PlayerState3))")
}

func TestStateEnumAppendsToExistingCompanion(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"player.go": `package game

type Player struct{}

func (p *Player) SetState(s int) {}

func (p *Player) Kill() {
	p.SetState(3)
}
`,
		"player_state.go": `package game

type PlayerState int

const (
	PlayerIdle PlayerState = 0
)
`,
	})

	issues := magicStateIssues(t, prog)
	require.Len(t, issues, 1)

	transformer := NewStateEnumTransformer()
	tx, err := transformer.Transform(prog, issues[0])
	require.NoError(t, err)
	require.NotNil(t, tx)

	next, err := Apply(prog, tx)
	require.NoError(t, err)

	companion := unitText(t, next, "player_state.go")
	assert.Contains(t, companion, "PlayerIdle")
	assert.Contains(t, companion, "PlayerState3")
	assert.Contains(t, companion, "= 3")
	assert.Contains(t, unitText(t, next, "player.go"), "int(PlayerState3)")
}

func TestStateEnumReusesExistingMember(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"player.go": `package game

type Player struct{}

func (p *Player) SetState(s int) {}

func (p *Player) Kill() {
	p.SetState(3)
}
`,
		"player_state.go": `package game

type PlayerState int

const (
	PlayerDead PlayerState = 3
)
`,
	})

	issues := magicStateIssues(t, prog)
	require.Len(t, issues, 1)

	transformer := NewStateEnumTransformer()
	tx, err := transformer.Transform(prog, issues[0])
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.Equal(t, 1, tx.EditCount(), "reuse needs only the call-site rewrite")

	next, err := Apply(prog, tx)
	require.NoError(t, err)
	assert.Contains(t, unitText(t, next, "player.go"), "int(PlayerDead)")

	companion := unitText(t, next, "player_state.go")
	assert.NotContains(t, companion, "PlayerState3", "no duplicate member for a known value")
}

func TestStateEnumUnderstandsIotaRuns(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"player.go": `package game

type Player struct{}

func (p *Player) SetState(s int) {}

func (p *Player) Kill() {
	p.SetState(1)
}
`,
		"player_state.go": `package game

type PlayerState int

const (
	PlayerIdle PlayerState = iota
	PlayerDead
)
`,
	})

	issues := magicStateIssues(t, prog)
	require.Len(t, issues, 1)

	transformer := NewStateEnumTransformer()
	tx, err := transformer.Transform(prog, issues[0])
	require.NoError(t, err)
	require.NotNil(t, tx)

	next, err := Apply(prog, tx)
	require.NoError(t, err)
	assert.Contains(t, unitText(t, next, "player.go"), "int(PlayerDead)")
}

func TestStateEnumAbstainsOutsideMethods(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"game.go": `package game

func SetGlobalState(s int) {}

func reset() {
	SetGlobalState(0)
}
`,
	})

	issues := magicStateIssues(t, prog)
	require.Len(t, issues, 1)

	transformer := NewStateEnumTransformer()
	tx, err := transformer.Transform(prog, issues[0])
	require.NoError(t, err)
	assert.Nil(t, tx, "no receiver type to hang the companion on")
}
