// Package parquetfile loads the dataset from a directory of parquet files,
// one per table, the layout the dataset builder writes by default. Rows are
// filtered to the requested folder id while mapping, so only one folder's
// rows survive the read.
package parquetfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/parquet-go/parquet-go"
	"github.com/samber/lo"

	"osurebuild/internal/dataset"
)

var _ dataset.Source = (*Source)(nil)

type Source struct {
	dir string
}

func New(dir string) *Source {
	return &Source{dir: dir}
}

func (s *Source) Close(ctx context.Context) error {
	return nil
}

func (s *Source) FolderIDs(ctx context.Context) ([]string, error) {
	records, err := readTable[folderIDRecord](s.dir, "beatmaps.parquet")
	if err != nil {
		return nil, err
	}

	ids := lo.Uniq(lo.Map(records, func(r folderIDRecord, _ int) string { return r.FolderID }))
	sort.Strings(ids)
	return ids, nil
}

func (s *Source) LoadFolder(ctx context.Context, folderID string) (*dataset.Dataset, error) {
	ds := &dataset.Dataset{}

	beatmaps, err := readTable[beatmapRecord](s.dir, "beatmaps.parquet")
	if err != nil {
		return nil, err
	}
	for _, r := range beatmaps {
		if r.FolderID == folderID {
			ds.Beatmaps = append(ds.Beatmaps, r.row())
		}
	}

	hitObjects, err := readTable[hitObjectRecord](s.dir, "hit_objects.parquet")
	if err != nil {
		return nil, err
	}
	for _, r := range hitObjects {
		if r.FolderID == folderID {
			ds.HitObjects = append(ds.HitObjects, r.row())
		}
	}

	hitSamples, err := readTable[hitSampleRecord](s.dir, "hit_samples.parquet")
	if err != nil {
		return nil, err
	}
	for _, r := range hitSamples {
		if r.FolderID == folderID {
			ds.HitSamples = append(ds.HitSamples, r.row())
		}
	}

	timingPoints, err := readTable[timingPointRecord](s.dir, "timing_points.parquet")
	if err != nil {
		return nil, err
	}
	for _, r := range timingPoints {
		if r.FolderID == folderID {
			ds.TimingPoints = append(ds.TimingPoints, r.row())
		}
	}

	sliderData, err := readTable[sliderDataRecord](s.dir, "slider_data.parquet")
	if err != nil {
		return nil, err
	}
	for _, r := range sliderData {
		if r.FolderID == folderID {
			ds.SliderData = append(ds.SliderData, r.row())
		}
	}

	controlPoints, err := readTable[controlPointRecord](s.dir, "slider_control_points.parquet")
	if err != nil {
		return nil, err
	}
	for _, r := range controlPoints {
		if r.FolderID == folderID {
			ds.SliderControlPoints = append(ds.SliderControlPoints, r.row())
		}
	}

	elements, err := readTable[elementRecord](s.dir, "storyboard_elements.parquet")
	if err != nil {
		return nil, err
	}
	for _, r := range elements {
		if r.FolderID == folderID {
			ds.StoryboardElements = append(ds.StoryboardElements, r.row())
		}
	}

	commands, err := readTable[commandRecord](s.dir, "storyboard_commands.parquet")
	if err != nil {
		return nil, err
	}
	for _, r := range commands {
		if r.FolderID == folderID {
			ds.StoryboardCommands = append(ds.StoryboardCommands, r.row())
		}
	}

	breaks, err := readTable[breakRecord](s.dir, "breaks.parquet")
	if err != nil {
		return nil, err
	}
	for _, r := range breaks {
		if r.FolderID == folderID {
			ds.Breaks = append(ds.Breaks, r.row())
		}
	}

	colours, err := readTable[comboColourRecord](s.dir, "combo_colours.parquet")
	if err != nil {
		return nil, err
	}
	for _, r := range colours {
		if r.FolderID == folderID {
			ds.ComboColours = append(ds.ComboColours, r.row())
		}
	}

	return ds, nil
}

// readTable reads one parquet file into typed records. Auxiliary tables are
// absent from older datasets; a missing file is an empty table.
func readTable[T any](dir, name string) ([]T, error) {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	records, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return records, nil
}
