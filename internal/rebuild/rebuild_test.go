package rebuild

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"osurebuild/internal/dataset"
)

func testDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Beatmaps: []dataset.BeatmapRow{
			{ID: 1, FolderID: "100", Title: "Song", Artist: "Artist", Creator: "mapper", Version: "Easy", OsuFile: "Artist - Song (mapper) [Easy].osu"},
			{ID: 2, FolderID: "100", Title: "Song", Artist: "Artist", Creator: "mapper", Version: "Hard"},
		},
		TimingPoints: []dataset.TimingPointRow{
			{ID: 1, BeatmapID: 1, Time: 0, BeatLength: 400, Meter: 4, Uninherited: true, Volume: 60},
			{ID: 2, BeatmapID: 2, Time: 0, BeatLength: 400, Meter: 4, Uninherited: true, Volume: 60},
		},
		HitObjects: []dataset.HitObjectRow{
			{ID: 10, BeatmapID: 1, Time: 1000, Type: dataset.ObjectCircle, X: 100, Y: 200},
			{ID: 11, BeatmapID: 2, Time: 1000, Type: dataset.ObjectCircle, X: 100, Y: 200},
		},
	}
}

func TestReconstructFolder_WritesDifficulties(t *testing.T) {
	out := t.TempDir()
	rec := New(filepath.Join(t.TempDir(), "assets"))

	result, err := rec.ReconstructFolder(context.Background(), "100", out, testDataset())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.FilesWritten) != 2 {
		t.Fatalf("expected 2 files written, got %v", result.FilesWritten)
	}

	// The stored file name wins; the fallback derives one from metadata.
	for _, name := range []string{
		"Artist - Song (mapper) [Easy].osu",
		"Artist - Song (mapper) [Hard].osu",
	} {
		if _, err := os.Stat(filepath.Join(out, "100", name)); err != nil {
			t.Errorf("missing output file %s: %v", name, err)
		}
	}
}

func TestReconstructFolder_UnknownFolder(t *testing.T) {
	rec := New(t.TempDir())

	_, err := rec.ReconstructFolder(context.Background(), "999", t.TempDir(), testDataset())
	if !errors.Is(err, ErrUnknownFolder) {
		t.Fatalf("expected ErrUnknownFolder, got %v", err)
	}
}

func TestReconstructFolder_NoStoryboard(t *testing.T) {
	out := t.TempDir()
	rec := New(t.TempDir())

	result, err := rec.ReconstructFolder(context.Background(), "100", out, testDataset())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries, err := os.ReadDir(result.OutputPath)
	if err != nil {
		t.Fatalf("reading output folder: %v", err)
	}
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".osb" {
			t.Errorf("unexpected storyboard file %s", entry.Name())
		}
	}
}

func TestReconstructFolder_WritesStoryboard(t *testing.T) {
	ds := testDataset()
	ds.StoryboardElements = []dataset.StoryboardElementRow{
		{ID: 1, FolderID: "100", Layer: "Background", Type: dataset.ElementSprite, Origin: "Centre", Path: "bg.png"},
	}
	out := t.TempDir()
	rec := New(t.TempDir())

	result, err := rec.ReconstructFolder(context.Background(), "100", out, ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	path := filepath.Join(result.OutputPath, "Artist - Song (mapper).osb")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("missing storyboard: %v", err)
	}
	if !bytes.Contains(data, []byte("Sprite,Background,Centre,\"bg.png\"")) {
		t.Errorf("storyboard missing sprite line:\n%s", data)
	}
}

func TestReconstructFolder_SkipAndContinue(t *testing.T) {
	ds := testDataset()
	// A slider with no slider data row fails alone.
	ds.HitObjects = append(ds.HitObjects, dataset.HitObjectRow{
		ID: 12, BeatmapID: 1, Time: 2000, Type: dataset.ObjectSlider,
	})
	out := t.TempDir()
	rec := New(t.TempDir())

	result, err := rec.ReconstructFolder(context.Background(), "100", out, ds)
	if err != nil {
		t.Fatalf("expected partial success, got %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 recorded error, got %v", result.Errors)
	}
	if len(result.FilesWritten) != 2 {
		t.Errorf("expected both difficulties written, got %v", result.FilesWritten)
	}
}

// Orphan rows carry dangling foreign keys, so they cannot be attributed to a
// folder; with the folder-scoped datasets LoadFolder returns they all belong
// to the manifest of the folder being rebuilt.
func TestReconstructFolder_ReportsDatasetOrphans(t *testing.T) {
	ds := testDataset()
	ds.SliderData = append(ds.SliderData, dataset.SliderDataRow{
		HitObjectID: 404, CurveType: "B", RepeatCount: 1, Length: 100,
	})
	out := t.TempDir()
	rec := New(t.TempDir())

	result, err := rec.ReconstructFolder(context.Background(), "100", out, ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected the orphan in the manifest, got %v", result.Errors)
	}
	if len(result.FilesWritten) != 2 {
		t.Errorf("expected both difficulties written, got %v", result.FilesWritten)
	}
}

func TestReconstructFolder_Idempotent(t *testing.T) {
	ds := testDataset()
	out := t.TempDir()
	rec := New(t.TempDir())

	if _, err := rec.ReconstructFolder(context.Background(), "100", out, ds); err != nil {
		t.Fatalf("first run: %v", err)
	}
	path := filepath.Join(out, "100", "Artist - Song (mapper) [Easy].osu")
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading first output: %v", err)
	}

	if _, err := rec.ReconstructFolder(context.Background(), "100", out, ds); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading second output: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("reconstruction is not byte-identical across runs")
	}
}

func TestReconstructFolder_CopiesAssets(t *testing.T) {
	assets := t.TempDir()
	folderAssets := filepath.Join(assets, "100", "sb")
	if err := os.MkdirAll(folderAssets, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(assets, "100", "audio.mp3"), []byte("mp3"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(folderAssets, "bg.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := t.TempDir()
	rec := New(assets)

	result, err := rec.ReconstructFolder(context.Background(), "100", out, testDataset())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AssetsCopied != 2 {
		t.Errorf("expected 2 assets copied, got %d", result.AssetsCopied)
	}
	if _, err := os.Stat(filepath.Join(result.OutputPath, "sb", "bg.png")); err != nil {
		t.Errorf("missing nested asset: %v", err)
	}
}

func TestReconstructFolder_MissingAssetsDir(t *testing.T) {
	rec := New(filepath.Join(t.TempDir(), "does-not-exist"))

	result, err := rec.ReconstructFolder(context.Background(), "100", t.TempDir(), testDataset())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AssetsCopied != 0 || len(result.Errors) != 0 {
		t.Errorf("expected silent no-op asset copy, got copied=%d errors=%v", result.AssetsCopied, result.Errors)
	}
}

func TestSanitizeFileName(t *testing.T) {
	got := sanitizeFileName(`A/B\C:D*E?F"G<H>I|J`)
	if got != "A_B_C_D_E_F_G_H_I_J" {
		t.Errorf("unexpected sanitized name: %s", got)
	}
}
