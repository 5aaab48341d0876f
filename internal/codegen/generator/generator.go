package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/natefinch/atomic"

	"github.com/Alia5/tmplgen/internal/codegen/definition"
	generror "github.com/Alia5/tmplgen/internal/codegen/error"
	"github.com/Alia5/tmplgen/internal/codegen/generator/beef"
	"github.com/Alia5/tmplgen/internal/log"
)

// ErrStale is returned by Check when the registry on disk does not match the
// definition file.
var ErrStale = errors.New("generated registry is out of date")

// Config describes one generation run.
type Config struct {
	Input  string
	Output string
	// MkdirAll creates the output directory when it does not exist.
	MkdirAll bool
	Options  beef.Options
}

type Generator struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Generator {
	if cfg.Options.Source == "" {
		cfg.Options.Source = filepath.Base(cfg.Input)
	}
	return &Generator{
		cfg:    cfg,
		logger: logger,
	}
}

// Build loads the definition file and renders the registry in memory.
func (g *Generator) Build() ([]byte, *definition.Catalog, error) {
	g.logger.Info("Loading template definitions", "input", g.cfg.Input)
	cat, err := definition.LoadFile(g.cfg.Input)
	if err != nil {
		return nil, nil, err
	}
	g.logger.Info("Loaded template definitions",
		"templates", len(cat.Templates),
		"functions", cat.FunctionCount())
	for i, t := range cat.Templates {
		g.logger.Debug("Template", "index", i, "id", t.ID, "arguments", len(t.Arguments))
	}

	out, err := beef.Render(cat, g.cfg.Options)
	if err != nil {
		return nil, nil, err
	}
	g.logger.Debug("Rendered registry", "bytes", len(out))
	g.logger.Log(context.Background(), log.LevelTrace, "Registry source", "source", string(out))
	return out, cat, nil
}

// Generate writes the registry. The output file is replaced atomically, so a
// failed run leaves any previous registry untouched.
func (g *Generator) Generate() error {
	out, _, err := g.Build()
	if err != nil {
		return err
	}
	if err := g.write(out); err != nil {
		return err
	}
	g.logger.Info("Registry generation complete", "output", g.cfg.Output)
	return nil
}

func (g *Generator) write(data []byte) error {
	path := g.cfg.Output
	if g.cfg.MkdirAll {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return generror.OutputWriteFailed(path, err)
		}
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := replaceFile(path, data, mode); err != nil {
		return generror.OutputWriteFailed(path, err)
	}
	return nil
}

// replaceFile writes data to a temp file next to path, gives it mode and then
// swaps it in with atomic.ReplaceFile. A failure before the swap leaves path
// untouched and removes the temp file.
func replaceFile(path string, data []byte, mode os.FileMode) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = f.Chmod(mode); err != nil {
		return fmt.Errorf("set mode on temp file: %w", err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("flush temp file: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = atomic.ReplaceFile(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// Check regenerates the registry in memory and compares it with the file on
// disk. A mismatch returns ErrStale with a description of what changed.
func (g *Generator) Check() error {
	want, wantCat, err := g.Build()
	if err != nil {
		return err
	}

	have, err := os.ReadFile(g.cfg.Output)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s does not exist", ErrStale, g.cfg.Output)
	}
	if err != nil {
		return fmt.Errorf("read existing registry: %w", err)
	}
	if bytes.Equal(want, have) {
		g.logger.Info("Registry is up to date", "output", g.cfg.Output)
		return nil
	}

	haveCat, err := beef.Decode(have)
	if err != nil {
		return fmt.Errorf("%w: %s cannot be decoded: %v", ErrStale, g.cfg.Output, err)
	}
	diff := cmp.Diff(haveCat, wantCat, cmpopts.EquateEmpty())
	if diff == "" {
		return fmt.Errorf("%w: %s differs only in formatting", ErrStale, g.cfg.Output)
	}
	return fmt.Errorf("%w: %s (-on disk +expected):\n%s", ErrStale, g.cfg.Output, diff)
}
