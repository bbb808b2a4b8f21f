package lints

import (
	"fmt"
	"go/ast"
	"strings"

	"github.com/smeltwork/smelt/internal/program"
	tt "github.com/smeltwork/smelt/internal/types"
)

// triggerReceivers are call receivers that make a simulation
// non-reproducible.
var triggerReceivers = map[string]bool{
	"time": true,
	"rand": true,
}

// DetectNondeterministicSimulation flags calls through the time or rand
// packages, and calls to Find*-named lookup functions, inside functions
// named Simulate or Simulate*. Simulations are expected to be
// deterministic and to receive such inputs as parameters.
func DetectNondeterministicSimulation(prog *program.Program) ([]tt.Issue, error) {
	var issues []tt.Issue
	for _, unit := range prog.Units() {
		for _, decl := range unit.File.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Body == nil || !hasPrefixWord(fd.Name.Name, "Simulate") {
				continue
			}
			ast.Inspect(fd.Body, func(n ast.Node) bool {
				call, ok := n.(*ast.CallExpr)
				if !ok {
					return true
				}
				if trigger := simulationTrigger(call); trigger != "" {
					issues = append(issues, newIssue(prog, unit.ID,
						"nondeterministic-simulation", "determinism", call,
						fmt.Sprintf("call to %s inside %q makes the simulation non-reproducible", trigger, fd.Name.Name)))
				}
				return true
			})
		}
	}
	return issues, nil
}

func simulationTrigger(call *ast.CallExpr) string {
	switch fn := call.Fun.(type) {
	case *ast.SelectorExpr:
		if recv, ok := fn.X.(*ast.Ident); ok && triggerReceivers[recv.Name] {
			return recv.Name + "." + fn.Sel.Name
		}
		if strings.HasPrefix(fn.Sel.Name, "Find") {
			return fn.Sel.Name
		}
	case *ast.Ident:
		if strings.HasPrefix(fn.Name, "Find") {
			return fn.Name
		}
	}
	return ""
}
