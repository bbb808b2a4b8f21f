package lints

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smeltwork/smelt/internal/program"
)

func parseProgram(t *testing.T, sources map[string]string) *program.Program {
	t.Helper()
	raw := make(map[string][]byte, len(sources))
	for id, src := range sources {
		raw[id] = []byte(src)
	}
	prog, err := program.FromSources(raw)
	require.NoError(t, err)
	return prog
}

func singleUnit(t *testing.T, src string) *program.Program {
	t.Helper()
	return parseProgram(t, map[string]string{"src.go": src})
}
