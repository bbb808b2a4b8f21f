package lints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectUnusedFunctions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		code          string
		expectedIssue int
	}{
		{
			name: "unreferenced unexported function",
			code: `
package game

func helper() {}
`,
			expectedIssue: 1,
		},
		{
			name: "referenced function",
			code: `
package game

func helper() {}

func Run() {
	helper()
}
`,
			expectedIssue: 0,
		},
		{
			name: "exported function",
			code: `
package game

func Helper() {}
`,
			expectedIssue: 0,
		},
		{
			name: "main and init are entry points",
			code: `
package main

func main() {}

func init() {}
`,
			expectedIssue: 0,
		},
		{
			name: "reference taken as a value counts",
			code: `
package game

func handler() {}

var callback = handler
`,
			expectedIssue: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			prog := singleUnit(t, tc.code)
			issues, err := DetectUnusedFunctions(prog)
			require.NoError(t, err)
			require.Len(t, issues, tc.expectedIssue)
			if tc.expectedIssue > 0 {
				assert.Equal(t, "unused-function", issues[0].Rule)
			}
		})
	}
}

func TestDetectUnusedFunctionsSeesCrossUnitReferences(t *testing.T) {
	t.Parallel()

	prog := parseProgram(t, map[string]string{
		"a.go": "package game\n\nfunc helper() {}\n",
		"b.go": "package game\n\nfunc run() {\n\thelper()\n}\n",
	})

	issues, err := DetectUnusedFunctions(prog)
	require.NoError(t, err)
	// run itself is unreferenced; helper is not.
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, `"run"`)
}
