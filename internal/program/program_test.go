package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseProgram(t *testing.T, sources map[string]string) *Program {
	t.Helper()
	raw := make(map[string][]byte, len(sources))
	for id, src := range sources {
		raw[id] = []byte(src)
	}
	prog, err := FromSources(raw)
	require.NoError(t, err)
	return prog
}

func TestFromSourcesOrdersUnitsByID(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"b.go": "package main\n",
		"a.go": "package main\n",
		"c.go": "package main\n",
	})

	var ids []string
	for _, unit := range prog.Units() {
		ids = append(ids, unit.ID)
	}
	assert.Equal(t, []string{"a.go", "b.go", "c.go"}, ids)
}

func TestFromSourcesRejectsUnparsableUnit(t *testing.T) {
	t.Parallel()

	_, err := FromSources(map[string][]byte{
		"broken.go": []byte("package main\n\nfunc {"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.go")
}

func TestSourcesReturnsIndependentCopy(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"a.go": "package main\n",
	})

	sources := prog.Sources()
	sources["a.go"][0] = 'X'

	unit, ok := prog.Unit("a.go")
	require.True(t, ok)
	assert.Equal(t, byte('p'), unit.Source[0])
}

func TestUnitLookup(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"a.go": "package main\n",
	})

	_, ok := prog.Unit("a.go")
	assert.True(t, ok)
	_, ok = prog.Unit("missing.go")
	assert.False(t, ok)
}
