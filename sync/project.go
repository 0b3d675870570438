package sync

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	gosync "sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/uf90/errors"
	"github.com/teranos/uf90/internal/util"
	"github.com/teranos/uf90/logger"
	"github.com/teranos/uf90/translate"
)

// Options configures one synchronization pass.
type Options struct {
	// Extensions selects sources by lowercase file extension, dot included.
	Extensions []string

	// ManifestName is the manifest file name at the project root.
	ManifestName string

	// OutputExtension replaces the matched source extension.
	OutputExtension string

	// DryRun and Check count pending sources without translating anything
	// or touching the manifest.
	DryRun bool
	Check  bool

	// Workers bounds concurrent translations; 0 means one per CPU.
	Workers int

	Translate translate.Options

	// Logger defaults to logger.Logger.
	Logger *zap.SugaredLogger
}

// DefaultOptions matches the documented project layout.
func DefaultOptions() Options {
	return Options{
		Extensions:      []string{translate.SourceExtension},
		ManifestName:    DefaultManifestName,
		OutputExtension: translate.OutputExtension,
		Translate:       translate.DefaultOptions(),
	}
}

// ReadOnly reports whether the pass must not write anything.
func (o Options) ReadOnly() bool {
	return o.DryRun || o.Check
}

func (o Options) withDefaults() Options {
	if len(o.Extensions) == 0 {
		o.Extensions = []string{translate.SourceExtension}
	}
	if o.ManifestName == "" {
		o.ManifestName = DefaultManifestName
	}
	if o.OutputExtension == "" {
		o.OutputExtension = translate.OutputExtension
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Logger == nil {
		o.Logger = logger.Logger
	}
	return o
}

// Result summarizes a pass.
type Result struct {
	// Pending counts sources that were (or, read-only, would be) translated.
	Pending int
	// PendingFiles lists those sources as sorted relative paths.
	PendingFiles []string
	// Translated lists committed sources as sorted relative paths.
	Translated []string
	// Pruned counts manifest entries dropped for vanished sources.
	Pruned int
	// Tree is the Merkle root over every source digest read in the pass.
	// It depends only on source paths and contents.
	Tree     string
	Duration time.Duration
}

// source is one matched file in the project tree.
type source struct {
	rel    string // manifest key
	path   string
	output string
}

// Project runs one synchronization pass over root.
//
// Every matched source is read once; its digest and its translation come
// from the same bytes. A source is pending when its digest differs from the
// manifest, is not recorded, or its output file is missing.
//
// On a writing pass the manifest is saved even when a translation fails, so
// files committed before the failure stay synced. The failed file keeps its
// old entry and is retried next time.
func Project(ctx context.Context, root string, opts Options) (Result, error) {
	start := time.Now()
	opts = opts.withDefaults()
	log := opts.Logger

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, errors.NewSourceNotFoundError(root)
		}
		return Result{}, errors.Wrapf(err, "failed to stat %s", root)
	}
	if !info.IsDir() {
		return Result{}, errors.WithHint(
			errors.Newf("project root %s is not a directory", root),
			"use 'uf90 translate' for single files")
	}

	manifestPath := filepath.Join(root, opts.ManifestName)
	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		if !errors.Is(err, ErrCorruptManifest) {
			return Result{}, err
		}
		log.Warnw("Ignoring unreadable manifest, all sources are pending",
			logger.FieldFile, manifestPath,
			logger.FieldError, err.Error())
	}

	sources, err := discover(root, opts)
	if err != nil {
		return Result{}, err
	}
	log.Debugw("Discovered sources",
		logger.FieldRoot, root,
		logger.FieldCount, len(sources),
		logger.FieldWorkers, opts.Workers)

	var (
		mu       gosync.Mutex
		result   Result
		previous = TreeOf(manifest)
		current  = NewTree()
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for _, src := range sources {
		src := src
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			data, err := translate.ReadSource(src.path)
			if err != nil {
				return err
			}
			digest := Digest(data)
			current.Insert(src.rel, digest)

			mu.Lock()
			recorded, ok := manifest[src.rel]
			mu.Unlock()
			if ok && recorded == digest && util.FileExists(src.output) {
				return nil
			}

			mu.Lock()
			result.Pending++
			result.PendingFiles = append(result.PendingFiles, src.rel)
			mu.Unlock()

			if opts.ReadOnly() {
				log.Infow("Source out of date",
					logger.FieldFile, src.rel)
				return nil
			}

			res, err := translate.WriteTranslation(src.path, src.output, data, opts.Translate)
			if err != nil {
				return err
			}
			for _, u := range res.Unmapped {
				log.Warnw("Non-ASCII character left in code",
					logger.FieldFile, src.rel,
					logger.FieldPosition, fmt.Sprintf("%d:%d", u.Line, u.Column),
					logger.FieldSymbol, fmt.Sprintf("%U", u.Rune))
			}

			mu.Lock()
			manifest[src.rel] = digest
			result.Translated = append(result.Translated, src.rel)
			mu.Unlock()

			log.Infow("Translated",
				logger.FieldFile, src.rel,
				logger.FieldDigest, shortDigest(digest))
			return nil
		})
	}
	runErr := g.Wait()
	if runErr == nil {
		// The loop may have stopped early on a cancelled parent context
		// without any worker reporting it.
		runErr = ctx.Err()
	}

	result.Tree = current.Root()
	if dirs := previous.Diff(current); len(dirs) > 0 {
		log.Debugw("Directories changed since last sync",
			"dirs", dirs,
			logger.FieldDigest, shortDigest(result.Tree))
	}

	sort.Strings(result.PendingFiles)
	sort.Strings(result.Translated)

	if !opts.ReadOnly() {
		keep := make(map[string]bool, len(sources))
		for _, src := range sources {
			keep[src.rel] = true
		}
		for _, p := range manifest.Prune(keep) {
			log.Debugw("Dropped stale manifest entry", logger.FieldFile, p)
			result.Pruned++
		}

		if err := manifest.Save(manifestPath); err != nil {
			if runErr != nil {
				log.Errorw("Failed to save manifest after failed pass",
					logger.FieldFile, manifestPath,
					logger.FieldError, err.Error())
			} else {
				runErr = err
			}
		}
	}

	result.Duration = time.Since(start)
	log.Debugw("Sync pass finished",
		logger.FieldPending, result.Pending,
		logger.FieldPruned, result.Pruned,
		logger.FieldDurationMS, result.Duration.Milliseconds())

	return result, runErr
}

// discover walks root for files with a selected extension. The output
// path replaces the matched extension.
func discover(root string, opts Options) ([]source, error) {
	exts := make(map[string]bool, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts[strings.ToLower(e)] = true
	}

	var sources []source
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		ext := filepath.Ext(path)
		if !exts[strings.ToLower(ext)] {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		sources = append(sources, source{
			rel:    filepath.ToSlash(rel),
			path:   path,
			output: strings.TrimSuffix(path, ext) + opts.OutputExtension,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk %s", root)
	}
	return sources, nil
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
