package fixer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smeltwork/smelt/internal/lints"
	"github.com/smeltwork/smelt/internal/program"
	tt "github.com/smeltwork/smelt/internal/types"
)

func commentOnlyIssues(t *testing.T, prog *program.Program) []tt.Issue {
	t.Helper()
	issues, err := lints.DetectCommentOnlyFunctions(prog)
	require.NoError(t, err)
	return issues
}

func TestRemoveCommentOnlyFunction(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"game.go": `package game

// OnCleanup releases resources.
func OnCleanup() {
	// TODO: close handles
}

func keepMe() int { return 1 }

func caller() int { return keepMe() }
`,
	})

	issues := commentOnlyIssues(t, prog)
	require.Len(t, issues, 1)

	transformer := NewRemoveFunctionTransformer("comment-only-function")
	tx, err := transformer.Transform(prog, issues[0])
	require.NoError(t, err)
	require.NotNil(t, tx)

	next, err := Apply(prog, tx)
	require.NoError(t, err)
	out := unitText(t, next, "game.go")
	assert.NotContains(t, out, "OnCleanup")
	assert.NotContains(t, out, "releases resources", "doc comment goes with the declaration")
	assert.Contains(t, out, "func keepMe()")
}

func TestRemoveAbstainsWhenMethodImplementsInterface(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"game.go": `package game

type Saver interface {
	Save(path string)
}

type Profile struct{}

func (p *Profile) Save(path string) {
	// not implemented yet
}
`,
	})

	issues := commentOnlyIssues(t, prog)
	require.Len(t, issues, 1)

	transformer := NewRemoveFunctionTransformer("comment-only-function")
	tx, err := transformer.Transform(prog, issues[0])
	require.NoError(t, err)
	assert.Nil(t, tx, "removing an interface member must abstain")
}

func TestRemoveAbstainsWhenMethodIsShadowed(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"game.go": `package game

type Base struct{}

func (b *Base) Update() {
	// base does nothing
}

type Player struct {
	Base
}

func (p *Player) Update() { println("player") }
`,
	})

	issues := commentOnlyIssues(t, prog)
	require.Len(t, issues, 1)

	transformer := NewRemoveFunctionTransformer("comment-only-function")
	tx, err := transformer.Transform(prog, issues[0])
	require.NoError(t, err)
	assert.Nil(t, tx, "removing a shadowed base method changes promotion")
}

func TestRemoveAbstainsWhenMethodShadowsPromoted(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"game.go": `package game

type Base struct{}

func (b *Base) Update() { println("base") }

type Player struct {
	Base
}

func (p *Player) Update() {
	// stub kept to silence the base behavior
}
`,
	})

	issues := commentOnlyIssues(t, prog)
	require.Len(t, issues, 1)

	transformer := NewRemoveFunctionTransformer("comment-only-function")
	tx, err := transformer.Transform(prog, issues[0])
	require.NoError(t, err)
	assert.Nil(t, tx, "removing a shadowing method resurfaces the promoted one")
}

func TestRemoveAbstainsAcrossGenericInstantiation(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"game.go": `package game

type Base[T any] struct{}

func (b *Base[T]) Reset() {
	// intentionally empty
}

type Player struct {
	Base[Player]
}

func (p *Player) Reset() { println("reset") }
`,
	})

	issues := commentOnlyIssues(t, prog)
	require.Len(t, issues, 1)

	transformer := NewRemoveFunctionTransformer("comment-only-function")
	tx, err := transformer.Transform(prog, issues[0])
	require.NoError(t, err)
	assert.Nil(t, tx, "Base[Player] must resolve to the Base declaration")
}

func TestRemoveAbstainsWhenFunctionIsReferenced(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"game.go": `package game

func stub() {
	// pending
}

func caller() {
	stub()
}
`,
	})

	issues := commentOnlyIssues(t, prog)
	require.Len(t, issues, 1)

	transformer := NewRemoveFunctionTransformer("comment-only-function")
	tx, err := transformer.Transform(prog, issues[0])
	require.NoError(t, err)
	assert.Nil(t, tx)
}

func TestRemoveUnusedFunction(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"game.go": `package game

func orphan() int { return 1 }

func main() {}
`,
	})

	issues, err := lints.DetectUnusedFunctions(prog)
	require.NoError(t, err)
	require.Len(t, issues, 1)

	transformer := NewRemoveFunctionTransformer("unused-function")
	tx, err := transformer.Transform(prog, issues[0])
	require.NoError(t, err)
	require.NotNil(t, tx)

	next, err := Apply(prog, tx)
	require.NoError(t, err)
	assert.NotContains(t, unitText(t, next, "game.go"), "orphan")
}
