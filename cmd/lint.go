package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smeltwork/smelt/internal/program"
	tt "github.com/smeltwork/smelt/internal/types"
	"github.com/smeltwork/smelt/lint"
)

var (
	ignoreRules    string
	lintJsonOutput bool
	outPath        string
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Detect issues without changing anything",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := lint.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize detection engine", zap.Error(err))
		}

		if ignoreRules != "" {
			for _, rule := range strings.Split(ignoreRules, ",") {
				engine.IgnoreRule(strings.TrimSpace(rule))
			}
		}

		prog, err := lint.LoadProgram(ctx, logger, args, includeTests)
		if err != nil {
			logger.Error("Error loading program", zap.Error(err))
			os.Exit(1)
		}

		issues, err := lint.Run(engine, prog)
		if err != nil {
			logger.Error("Error running rules", zap.Error(err))
			os.Exit(1)
		}

		printIssues(prog, issues)

		if len(issues) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	lintCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of rules to ignore")
	lintCmd.Flags().BoolVar(&lintJsonOutput, "json", false, "Output issues in JSON format")
	lintCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
}

func printIssues(prog *program.Program, issues []tt.Issue) {
	if !lintJsonOutput {
		fmt.Print(lint.Format(prog, issues))
		return
	}

	issuesByFile := make(map[string][]tt.Issue)
	for _, issue := range issues {
		issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
	}
	d, err := json.Marshal(issuesByFile)
	if err != nil {
		logger.Error("Error marshalling issues to JSON", zap.Error(err))
		return
	}
	if outPath == "" {
		fmt.Println(string(d))
		return
	}
	if err := os.WriteFile(outPath, d, 0o644); err != nil {
		logger.Error("Error writing JSON output file", zap.Error(err))
	}
}
