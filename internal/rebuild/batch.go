package rebuild

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"osurebuild/internal/dataset"
)

// BatchOptions controls a batch run over many folder ids.
type BatchOptions struct {
	// FolderIDs restricts the run to these ids. Empty means every folder
	// the source knows about.
	FolderIDs []string

	// Limit caps how many folders are processed; zero means no cap.
	Limit int

	// Workers bounds the folder-level worker pool. Folders share only the
	// read-only source and each one writes its own output subdirectory,
	// so there is no cross-folder coordination beyond this bound.
	Workers int

	// OnFolder, when set, is called once per finished folder. Exactly one
	// of result and err is non-nil. Calls are serialized.
	OnFolder func(result *FolderResult, err error)
}

// BatchResult aggregates a batch run.
type BatchResult struct {
	Folders   int
	Succeeded int
	Failed    int
}

// RunBatch loads and reconstructs folders through a bounded pool. A failing
// folder counts as failed and never stops its siblings; only context
// cancellation ends the run early.
func RunBatch(ctx context.Context, src dataset.Source, rec *Reconstructor, outputDir string, opts BatchOptions) (*BatchResult, error) {
	ids := opts.FolderIDs
	if len(ids) == 0 {
		var err error
		ids, err = src.FolderIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing folder ids: %w", err)
		}
	}
	if opts.Limit > 0 && len(ids) > opts.Limit {
		ids = ids[:opts.Limit]
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	result := &BatchResult{Folders: len(ids)}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, id := range ids {
		id := id
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res, err := reconstructOne(ctx, src, rec, id, outputDir)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
			} else {
				result.Succeeded++
			}
			if opts.OnFolder != nil {
				opts.OnFolder(res, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	return result, ctx.Err()
}

func reconstructOne(ctx context.Context, src dataset.Source, rec *Reconstructor, folderID, outputDir string) (*FolderResult, error) {
	ds, err := src.LoadFolder(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("loading folder %s: %w", folderID, err)
	}
	return rec.ReconstructFolder(ctx, folderID, outputDir, ds)
}
