package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smeltwork/smelt/lint"
)

var (
	dryRun              bool
	confidenceThreshold float64
)

var fixCmd = &cobra.Command{
	Use:   "fix [paths...]",
	Short: "Automatically fix issues",
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

		prog, err := lint.LoadProgram(ctx, logger, args, includeTests)
		if err != nil {
			logger.Error("Error loading program", zap.Error(err))
			os.Exit(1)
		}

		fixed, applied, err := lint.Fix(logger, engine, prog, dryRun, confidenceThreshold)
		if err != nil {
			logger.Error("Error applying fixes", zap.Error(err))
			os.Exit(1)
		}

		if dryRun {
			return
		}
		if len(applied) == 0 {
			fmt.Println("nothing to fix")
			return
		}
		if err := lint.WriteBack(logger, fixed); err != nil {
			logger.Error("Error writing fixed sources", zap.Error(err))
			os.Exit(1)
		}
		fmt.Printf("applied %d fixes\n", len(applied))
	},
}

func init() {
	fixCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run in dry-run mode (show fixes without applying them)")
	fixCmd.Flags().Float64Var(&confidenceThreshold, "confidence", 0.75, "Confidence threshold for auto-fixing (0.0 to 1.0)")
}
