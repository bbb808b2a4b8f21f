package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smeltwork/smelt/internal"
	"github.com/smeltwork/smelt/lint"
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Re-run detection whenever a watched file changes",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide directory paths to watch")
			os.Exit(1)
		}

		engine, err := lint.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize detection engine", zap.Error(err))
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			logger.Fatal("Failed to create watcher", zap.Error(err))
		}
		defer watcher.Close()

		for _, dir := range args {
			err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					return watcher.Add(path)
				}
				return nil
			})
			if err != nil {
				logger.Fatal("Failed to watch directory", zap.String("dir", dir), zap.Error(err))
			}
		}

		logger.Info("watching", zap.Strings("paths", args))
		watchLoop(watcher, engine, args)
	},
}

func watchLoop(watcher *fsnotify.Watcher, engine *internal.Engine, paths []string) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			handleFileEvent(event, engine, paths)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Error("watch error", zap.Error(err))
		}
	}
}

func handleFileEvent(event fsnotify.Event, engine *internal.Engine, paths []string) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !strings.HasSuffix(event.Name, ".go") {
		return
	}

	// wait for a while after file change to consider multiple changes as one
	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	prog, err := lint.LoadProgram(ctx, logger, paths, includeTests)
	if err != nil {
		logger.Error("error reloading program", zap.Error(err))
		return
	}
	issues, err := lint.Run(engine, prog)
	if err != nil {
		logger.Error("error running rules", zap.Error(err))
		return
	}
	if len(issues) == 0 {
		logger.Info("no issues found", zap.String("changed", event.Name))
		return
	}
	fmt.Print(lint.Format(prog, issues))
}
