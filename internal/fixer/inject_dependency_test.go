package fixer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smeltwork/smelt/internal/lints"
	"github.com/smeltwork/smelt/internal/program"
	tt "github.com/smeltwork/smelt/internal/types"
)

func directConstructionIssues(t *testing.T, prog *program.Program) []tt.Issue {
	t.Helper()
	issues, err := lints.DetectDirectConstruction(prog)
	require.NoError(t, err)
	return issues
}

func TestInjectThroughExistingResolver(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"game.go": `package game

type Container struct{}

type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

type Game struct {
	deps *Container
}

func (g *Game) Start() {
	e := NewEngine()
	_ = e
}
`,
	})

	issues := directConstructionIssues(t, prog)
	require.Len(t, issues, 1)

	transformer := NewInjectDependencyTransformer()
	tx, err := transformer.Transform(prog, issues[0])
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.Equal(t, 1, tx.EditCount(), "existing resolver needs only the call rewrite")

	next, err := Apply(prog, tx)
	require.NoError(t, err)
	out := unitText(t, next, "game.go")
	assert.Contains(t, out, "e := g.deps.ResolveEngine()")
}

func TestInjectSynthesizesConstructorParameter(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"game.go": `package game

type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

type Game struct {
	name string
}

func NewGame(name string) *Game {
	return &Game{name: name}
}

func (g *Game) Start() {
	e := NewEngine()
	_ = e
}
`,
	})

	issues := directConstructionIssues(t, prog)
	require.Len(t, issues, 1)

	transformer := NewInjectDependencyTransformer()
	tx, err := transformer.Transform(prog, issues[0])
	require.NoError(t, err)
	require.NotNil(t, tx)

	next, err := Apply(prog, tx)
	require.NoError(t, err)
	out := unitText(t, next, "game.go")
	assert.Contains(t, out, "engine *Engine")
	assert.Contains(t, out, "func NewGame(name string, engine *Engine) *Game")
	assert.Contains(t, out, "&Game{name: name, engine: engine}")
	assert.Contains(t, out, "e := g.engine")
}

func TestInjectCreatesConstructorWhenMissing(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"game.go": `package game

type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

type Game struct {
	name string
}

func (g *Game) Start() {
	e := NewEngine()
	_ = e
}
`,
	})

	issues := directConstructionIssues(t, prog)
	require.Len(t, issues, 1)

	transformer := NewInjectDependencyTransformer()
	tx, err := transformer.Transform(prog, issues[0])
	require.NoError(t, err)
	require.NotNil(t, tx)

	next, err := Apply(prog, tx)
	require.NoError(t, err)
	out := unitText(t, next, "game.go")
	assert.Contains(t, out, "func NewGame(engine *Engine) *Game")
	assert.Contains(t, out, "return &Game{engine: engine}")
	assert.Contains(t, out, "e := g.engine")
}

func TestInjectThroughLifecycleForComponents(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"hud.go": `package game

type Component struct{}

type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

type HUD struct {
	Component
}

func (h *HUD) Init() {}

func (h *HUD) Draw() {
	r := NewRenderer()
	_ = r
}
`,
	})

	issues := directConstructionIssues(t, prog)
	require.Len(t, issues, 1)

	transformer := NewInjectDependencyTransformer()
	tx, err := transformer.Transform(prog, issues[0])
	require.NoError(t, err)
	require.NotNil(t, tx)

	next, err := Apply(prog, tx)
	require.NoError(t, err)
	out := unitText(t, next, "hud.go")
	assert.Contains(t, out, "renderer *Renderer")
	assert.Contains(t, out, "func (h *HUD) Init(renderer *Renderer)")
	assert.Contains(t, out, "h.renderer = renderer")
	assert.Contains(t, out, "r := h.renderer")
}

func TestInjectCreatesInitWhenComponentHasNone(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"hud.go": `package game

type Component struct{}

type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

type HUD struct {
	Component
}

func (h *HUD) Draw() {
	r := NewRenderer()
	_ = r
}
`,
	})

	issues := directConstructionIssues(t, prog)
	require.Len(t, issues, 1)

	transformer := NewInjectDependencyTransformer()
	tx, err := transformer.Transform(prog, issues[0])
	require.NoError(t, err)
	require.NotNil(t, tx)

	next, err := Apply(prog, tx)
	require.NoError(t, err)
	out := unitText(t, next, "hud.go")
	assert.Contains(t, out, "func (h *HUD) Init(renderer *Renderer)")
	assert.Contains(t, out, "h.renderer = renderer")
}

func TestInjectAbstainsWhenFieldNameTaken(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"game.go": `package game

type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

type Game struct {
	engine string
}

func (g *Game) Start() {
	e := NewEngine()
	_ = e
}
`,
	})

	issues := directConstructionIssues(t, prog)
	require.Len(t, issues, 1)

	transformer := NewInjectDependencyTransformer()
	tx, err := transformer.Transform(prog, issues[0])
	require.NoError(t, err)
	assert.Nil(t, tx, "field name collision must abstain")
}
