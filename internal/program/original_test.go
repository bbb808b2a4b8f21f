package program

import (
	"go/parser"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOriginalDefinition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		expr     string
		expected string
	}{
		{"Player", "Player"},
		{"*Player", "Player"},
		{"(*Player)", "Player"},
		{"Base[T]", "Base"},
		{"Base[Player]", "Base"},
		{"*Base[Player]", "Base"},
		{"Pair[K, V]", "Pair"},
		{"model.Player", "Player"},
		{"*model.Player", "Player"},
		{"map[string]int", ""},
		{"[]Player", ""},
	}
	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			t.Parallel()

			expr, err := parser.ParseExpr(tc.expr)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, OriginalDefinition(expr))
		})
	}
}
