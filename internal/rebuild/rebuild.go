// Package rebuild orchestrates folder reconstruction: it enumerates a
// folder's beatmaps, drives the assemblers, hands graphs to the encoder and
// copies referenced assets, collecting every non-fatal problem into a result
// manifest. Only a folder id absent from the dataset aborts a call.
package rebuild

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"osurebuild/internal/beatmap"
	"osurebuild/internal/dataset"
	"osurebuild/internal/encode"
	"osurebuild/internal/index"
	"osurebuild/internal/storyboard"
)

// ErrUnknownFolder is returned when a folder id has no beatmap rows at all.
var ErrUnknownFolder = errors.New("unknown folder id")

// Reconstructor rebuilds folders into an output directory, copying media
// from a shared read-only assets root.
type Reconstructor struct {
	assetsDir string
}

func New(assetsDir string) *Reconstructor {
	return &Reconstructor{assetsDir: assetsDir}
}

// FolderResult is the manifest for one reconstructed folder. Errors holds
// every per-item problem that was skipped over; callers decide whether
// partial output is acceptable.
type FolderResult struct {
	FolderID     string
	OutputPath   string
	FilesWritten []string
	AssetsCopied int
	Errors       []error
}

// ReconstructFolder rebuilds one folder from an already loaded dataset. The
// dataset must be scoped to folderID, the shape Source.LoadFolder returns:
// orphan rows carry dangling foreign keys, so they cannot be attributed to a
// folder and every orphan in ds lands in this folder's manifest.
// Each difficulty assembles and encodes independently: a failure in one
// never blocks its siblings. Re-running with the same dataset rewrites
// identical bytes.
func (r *Reconstructor) ReconstructFolder(ctx context.Context, folderID, outputDir string, ds *dataset.Dataset) (*FolderResult, error) {
	idx := index.Build(ds)

	ids := idx.FolderBeatmaps[folderID]
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFolder, folderID)
	}

	folderOut := filepath.Join(outputDir, folderID)
	if err := os.MkdirAll(folderOut, 0o755); err != nil {
		return nil, fmt.Errorf("creating output folder: %w", err)
	}

	result := &FolderResult{FolderID: folderID, OutputPath: folderOut}
	result.Errors = append(result.Errors, lo.Map(idx.Orphans, func(o index.Orphan, _ int) error { return o })...)

	for _, id := range ids {
		if err := r.reconstructBeatmap(id, folderOut, idx, result); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("beatmap %d: %w", id, err))
		}
	}

	sb, skipped := storyboard.Assemble(storyboard.Owner{FolderID: folderID}, idx)
	result.Errors = append(result.Errors, lo.Map(skipped, func(s storyboard.SkippedCommand, _ int) error { return s })...)
	if sb != nil {
		name := storyboardFileName(idx.Beatmaps[ids[0]])
		path := filepath.Join(folderOut, name)
		if err := os.WriteFile(path, encode.Storyboard(sb), 0o644); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("writing storyboard %s: %w", name, err))
		} else {
			result.FilesWritten = append(result.FilesWritten, name)
		}
	}

	copied, copyErrs := copyAssets(filepath.Join(r.assetsDir, folderID), folderOut)
	result.AssetsCopied = copied
	result.Errors = append(result.Errors, copyErrs...)

	return result, nil
}

func (r *Reconstructor) reconstructBeatmap(id int64, folderOut string, idx *index.Indices, result *FolderResult) error {
	g, skipped, err := beatmap.Assemble(id, idx)
	if err != nil {
		return err
	}
	result.Errors = append(result.Errors, lo.Map(skipped, func(s beatmap.SkippedObject, _ int) error { return s })...)

	embedded, embSkipped := storyboard.Assemble(storyboard.Owner{BeatmapID: id}, idx)
	result.Errors = append(result.Errors, lo.Map(embSkipped, func(s storyboard.SkippedCommand, _ int) error { return s })...)

	name := osuFileName(idx.Beatmaps[id])
	path := filepath.Join(folderOut, name)
	if err := os.WriteFile(path, encode.Beatmap(g, embedded), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	result.FilesWritten = append(result.FilesWritten, name)
	return nil
}

// osuFileName prefers the file name captured at extraction time and falls
// back to the client's own naming scheme when it is missing.
func osuFileName(row *dataset.BeatmapRow) string {
	if row.OsuFile != "" {
		return row.OsuFile
	}
	return sanitizeFileName(fmt.Sprintf("%s - %s (%s) [%s].osu", row.Artist, row.Title, row.Creator, row.Version))
}

func storyboardFileName(row *dataset.BeatmapRow) string {
	return sanitizeFileName(fmt.Sprintf("%s - %s (%s).osb", row.Artist, row.Title, row.Creator))
}

func sanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
