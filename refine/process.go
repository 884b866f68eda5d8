package refine

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var desiredExtensions = map[string]bool{
	".go": true,
}

func hasDesiredExtension(path string) bool {
	return desiredExtensions[filepath.Ext(path)]
}

// ProcessSource structures one in-memory source.
func ProcessSource(ctx context.Context, engine RefineEngine, filename string, source []byte) (*FileResult, error) {
	return engine.RunSource(ctx, filename, source)
}

// ProcessFiles runs ProcessPath over every path and concatenates the
// results. Errors of individual files are collected; processing stops
// only on cancellation.
func ProcessFiles(ctx context.Context, logger *zap.Logger, engine RefineEngine, paths []string) ([]*FileResult, error) {
	var (
		all  []*FileResult
		errs *multierror.Error
	)
	for _, path := range paths {
		results, err := ProcessPath(ctx, logger, engine, path)
		all = append(all, results...)
		if err != nil {
			if ctx.Err() != nil {
				return all, err
			}
			errs = multierror.Append(errs, err)
		}
	}
	return all, errs.ErrorOrNil()
}

// ProcessPath structures a file, or every Go file below a directory on
// a bounded worker pool. Results are sorted by filename.
func ProcessPath(ctx context.Context, logger *zap.Logger, engine RefineEngine, path string) ([]*FileResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasDesiredExtension(path) {
			return nil, nil
		}
		res, err := engine.Run(ctx, path)
		if err != nil {
			return nil, err
		}
		return []*FileResult{res}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && hasDesiredExtension(filePath) {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", path, err)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
	defer bar.Finish()

	var (
		mu      sync.Mutex
		results []*FileResult
		errs    *multierror.Error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, filePath := range files {
		if gctx.Err() != nil {
			break
		}
		filePath := filePath
		g.Go(func() error {
			defer bar.Add(1)
			res, err := engine.Run(gctx, filePath)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Error("Error processing file", zap.String("file", filePath), zap.Error(err))
				errs = multierror.Append(errs, err)
				return nil
			}
			results = append(results, res)
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Filename < results[j].Filename
	})
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, errs.ErrorOrNil()
}
