// Package gen generates Columns and ExtractWith methods for structs, the
// compile-time counterpart of the reflection deriver in package xrow.
//
// For every struct marked with
//
//	//xrow:generate
//
// or listed in Config.Types, the generated Columns method resolves column
// names with the same length-grouped lookup plan the deriver uses, unrolled
// into switch statements, and ExtractWith binds each field to its column.
package gen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrStale is returned in Check mode when the generated file differs from
// what would be written.
var ErrStale = errors.New("gen: generated code is out of date")

// Result describes one processed package.
type Result struct {
	Dir     string
	Output  string
	Types   []string
	Changed bool // the output differs from the previous file
}

// Generate writes the generated file of one package, or verifies it in
// Check mode. A package without selected types produces no file.
func Generate(ctx context.Context, logger *zap.Logger, cfg Config) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.withDefaults()
	res := Result{Dir: cfg.Dir, Output: cfg.OutputPath()}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	pkg, err := Load(cfg)
	if err != nil {
		return res, err
	}
	for _, t := range pkg.Types {
		res.Types = append(res.Types, t.Name)
	}
	if len(pkg.Types) == 0 {
		logger.Info("no types selected", zap.String("dir", cfg.Dir))
		return res, nil
	}

	src, err := Render(pkg, res.Output)
	if err != nil {
		return res, err
	}
	old, err := os.ReadFile(res.Output)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return res, err
	}
	res.Changed = !bytes.Equal(old, src)

	logger.Debug("rendered package",
		zap.String("package", pkg.Name),
		zap.Strings("types", res.Types),
		zap.Bool("changed", res.Changed),
	)
	if !res.Changed {
		return res, nil
	}
	if cfg.Check {
		return res, fmt.Errorf("%w: %s", ErrStale, res.Output)
	}
	if err := os.WriteFile(res.Output, src, 0o644); err != nil {
		return res, err
	}
	logger.Info("wrote generated code", zap.String("file", res.Output), zap.Int("types", len(res.Types)))
	return res, nil
}

// Run processes every config concurrently. Results are returned in config
// order; the first error cancels the remaining work.
func Run(ctx context.Context, logger *zap.Logger, configs ...Config) ([]Result, error) {
	results := make([]Result, len(configs))
	g, ctx := errgroup.WithContext(ctx)
	for i, cfg := range configs {
		g.Go(func() error {
			res, err := Generate(ctx, logger, cfg)
			results[i] = res
			if err != nil {
				return fmt.Errorf("%s: %w", cfg.withDefaults().Dir, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
