package lint

import (
	"context"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/smeltwork/smelt/formatter"
	"github.com/smeltwork/smelt/internal"
	"github.com/smeltwork/smelt/internal/fixer"
	"github.com/smeltwork/smelt/internal/program"
	tt "github.com/smeltwork/smelt/internal/types"
	"github.com/smeltwork/smelt/scanner"
)

// Config represents the overall configuration with a name and a slice of rules.
type Config struct {
	Name  string                   `yaml:"name"`
	Rules map[string]tt.ConfigRule `yaml:"rules"`
}

// New builds a detection engine from an optional YAML configuration file.
func New(configurationPath string) (*internal.Engine, error) {
	config, err := parseConfigurationFile(configurationPath)
	if err != nil {
		return nil, err
	}
	return internal.NewEngine(config.Rules)
}

func parseConfigurationFile(configurationPath string) (Config, error) {
	var config Config
	if configurationPath == "" {
		return config, nil
	}

	f, err := os.Open(configurationPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil {
		return config, fmt.Errorf("parsing configuration: %w", err)
	}
	return config, nil
}

// LoadProgram builds one snapshot from the given paths. Directories are
// scanned recursively for Go files; plain files are taken as-is.
func LoadProgram(ctx context.Context, logger *zap.Logger, paths []string, includeTests bool) (*program.Program, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing %s: %w", path, err)
		}
		if info.IsDir() {
			found, err := scanner.New(path, includeTests).Scan()
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
		} else {
			files = append(files, path)
		}
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("loading"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	sources := make(map[string][]byte, len(files))
	for _, file := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		content, err := os.ReadFile(file)
		if err != nil {
			if logger != nil {
				logger.Error("Error reading file", zap.String("file", file), zap.Error(err))
			}
			return nil, err
		}
		sources[file] = content
		_ = bar.Add(1)
	}

	return program.FromSources(sources)
}

// Run executes the active rule set against the snapshot.
func Run(engine *internal.Engine, prog *program.Program) ([]tt.Issue, error) {
	return engine.Run(prog)
}

// RunSource lints a single in-memory source, for editor-style callers.
func RunSource(engine *internal.Engine, source []byte) ([]tt.Issue, error) {
	prog, err := program.FromSources(map[string][]byte{"source.go": source})
	if err != nil {
		return nil, err
	}
	return engine.Run(prog)
}

// Format renders the findings as a colored report.
func Format(prog *program.Program, issues []tt.Issue) string {
	sources := make(map[string]*formatter.SourceCode, len(prog.Units()))
	for _, unit := range prog.Units() {
		sources[unit.ID] = formatter.FromBytes(unit.Source)
	}
	return formatter.Generate(issues, sources)
}

// Fix runs the detect-transform-apply loop until it settles and returns
// the final snapshot plus the applied fixes. The caller decides whether
// to write the result back.
func Fix(logger *zap.Logger, engine *internal.Engine, prog *program.Program, dryRun bool, confidence float64) (*program.Program, []fixer.AppliedFix, error) {
	f := fixer.New(dryRun, confidence)
	fixed, applied, err := f.Run(prog, engine.Run)
	if err != nil {
		return prog, applied, err
	}
	if logger != nil {
		for _, a := range applied {
			logger.Info("applied fix", zap.String("rule", a.Rule), zap.String("unit", a.UnitID), zap.String("fix", a.Description))
		}
	}
	return fixed, applied, nil
}

// WriteBack persists every unit of the snapshot whose content differs
// from the file on disk, including units a fix created.
func WriteBack(logger *zap.Logger, prog *program.Program) error {
	for _, unit := range prog.Units() {
		existing, err := os.ReadFile(unit.ID)
		if err == nil && string(existing) == string(unit.Source) {
			continue
		}
		if err := os.WriteFile(unit.ID, unit.Source, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", unit.ID, err)
		}
		if logger != nil {
			logger.Info("wrote", zap.String("file", unit.ID))
		}
	}
	return nil
}
