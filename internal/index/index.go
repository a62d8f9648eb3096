// Package index builds read-only lookup and ordering structures over a
// loaded dataset. Relational storage discards row grouping and ordering on
// purpose; everything the assemblers need to recover it lives here.
package index

import (
	"fmt"
	"sort"

	"osurebuild/internal/dataset"
)

// Orphan records a row whose foreign key resolves to nothing. Orphans are
// excluded from the indices and reported instead of aborting the build.
type Orphan struct {
	Table  string
	RowID  int64
	Reason string
}

func (o Orphan) Error() string {
	return fmt.Sprintf("orphan row in %s (id %d): %s", o.Table, o.RowID, o.Reason)
}

// Indices holds multi-maps keyed by foreign key. Every value list is
// pre-sorted per the ordering rule of its table, with stable tie-breaks so
// rows sharing an ordering key keep their original table order.
type Indices struct {
	Beatmaps       map[int64]*dataset.BeatmapRow
	FolderBeatmaps map[string][]int64

	HitObjects    map[int64][]*dataset.HitObjectRow
	HitSamples    map[int64]*dataset.HitSampleRow
	TimingPoints  map[int64][]*dataset.TimingPointRow
	SliderData    map[int64]*dataset.SliderDataRow
	ControlPoints map[int64][]*dataset.SliderControlPointRow
	Breaks        map[int64][]*dataset.BreakRow
	ComboColours  map[int64][]*dataset.ComboColourRow

	FolderElements  map[string][]*dataset.StoryboardElementRow
	BeatmapElements map[int64][]*dataset.StoryboardElementRow
	ElementCommands map[int64][]*dataset.StoryboardCommandRow
	ChildCommands   map[int64][]*dataset.StoryboardCommandRow

	Orphans []Orphan
}

var layerRank = map[string]int{
	"Background": 0,
	"Fail":       1,
	"Pass":       2,
	"Foreground": 3,
	"Overlay":    4,
}

// Build indexes a dataset. It never mutates its input; the returned indices
// reference the dataset's rows directly.
func Build(ds *dataset.Dataset) *Indices {
	idx := &Indices{
		Beatmaps:        make(map[int64]*dataset.BeatmapRow, len(ds.Beatmaps)),
		FolderBeatmaps:  make(map[string][]int64),
		HitObjects:      make(map[int64][]*dataset.HitObjectRow),
		HitSamples:      make(map[int64]*dataset.HitSampleRow, len(ds.HitSamples)),
		TimingPoints:    make(map[int64][]*dataset.TimingPointRow),
		SliderData:      make(map[int64]*dataset.SliderDataRow, len(ds.SliderData)),
		ControlPoints:   make(map[int64][]*dataset.SliderControlPointRow),
		Breaks:          make(map[int64][]*dataset.BreakRow),
		ComboColours:    make(map[int64][]*dataset.ComboColourRow),
		FolderElements:  make(map[string][]*dataset.StoryboardElementRow),
		BeatmapElements: make(map[int64][]*dataset.StoryboardElementRow),
		ElementCommands: make(map[int64][]*dataset.StoryboardCommandRow),
		ChildCommands:   make(map[int64][]*dataset.StoryboardCommandRow),
	}

	for i := range ds.Beatmaps {
		row := &ds.Beatmaps[i]
		idx.Beatmaps[row.ID] = row
		idx.FolderBeatmaps[row.FolderID] = append(idx.FolderBeatmaps[row.FolderID], row.ID)
	}

	hitObjectIDs := make(map[int64]struct{})
	for i := range ds.HitObjects {
		row := &ds.HitObjects[i]
		if _, ok := idx.Beatmaps[row.BeatmapID]; !ok {
			idx.orphan("hit_objects", row.ID, "no matching beatmap row")
			continue
		}
		hitObjectIDs[row.ID] = struct{}{}
		idx.HitObjects[row.BeatmapID] = append(idx.HitObjects[row.BeatmapID], row)
	}
	for _, rows := range idx.HitObjects {
		rows := rows
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Time < rows[j].Time })
	}

	for i := range ds.HitSamples {
		row := &ds.HitSamples[i]
		if _, ok := hitObjectIDs[row.HitObjectID]; !ok {
			idx.orphan("hit_samples", row.HitObjectID, "no matching hit object row")
			continue
		}
		idx.HitSamples[row.HitObjectID] = row
	}

	for i := range ds.TimingPoints {
		row := &ds.TimingPoints[i]
		if _, ok := idx.Beatmaps[row.BeatmapID]; !ok {
			idx.orphan("timing_points", row.ID, "no matching beatmap row")
			continue
		}
		idx.TimingPoints[row.BeatmapID] = append(idx.TimingPoints[row.BeatmapID], row)
	}
	for _, rows := range idx.TimingPoints {
		rows := rows
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Time < rows[j].Time })
	}

	for i := range ds.SliderData {
		row := &ds.SliderData[i]
		if _, ok := hitObjectIDs[row.HitObjectID]; !ok {
			idx.orphan("slider_data", row.HitObjectID, "no matching hit object row")
			continue
		}
		idx.SliderData[row.HitObjectID] = row
	}

	for i := range ds.SliderControlPoints {
		row := &ds.SliderControlPoints[i]
		if _, ok := hitObjectIDs[row.HitObjectID]; !ok {
			idx.orphan("slider_control_points", row.HitObjectID, "no matching hit object row")
			continue
		}
		idx.ControlPoints[row.HitObjectID] = append(idx.ControlPoints[row.HitObjectID], row)
	}
	for _, rows := range idx.ControlPoints {
		rows := rows
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Sequence < rows[j].Sequence })
	}

	for i := range ds.Breaks {
		row := &ds.Breaks[i]
		idx.Breaks[row.BeatmapID] = append(idx.Breaks[row.BeatmapID], row)
	}
	for _, rows := range idx.Breaks {
		rows := rows
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].StartTime < rows[j].StartTime })
	}

	for i := range ds.ComboColours {
		row := &ds.ComboColours[i]
		idx.ComboColours[row.BeatmapID] = append(idx.ComboColours[row.BeatmapID], row)
	}
	for _, rows := range idx.ComboColours {
		rows := rows
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Index < rows[j].Index })
	}

	elementIDs := make(map[int64]struct{})
	for i := range ds.StoryboardElements {
		row := &ds.StoryboardElements[i]
		elementIDs[row.ID] = struct{}{}
		if row.BeatmapID != 0 {
			idx.BeatmapElements[row.BeatmapID] = append(idx.BeatmapElements[row.BeatmapID], row)
		} else {
			idx.FolderElements[row.FolderID] = append(idx.FolderElements[row.FolderID], row)
		}
	}
	for _, rows := range idx.FolderElements {
		sortElements(rows)
	}
	for _, rows := range idx.BeatmapElements {
		sortElements(rows)
	}

	commandIDs := make(map[int64]struct{}, len(ds.StoryboardCommands))
	for i := range ds.StoryboardCommands {
		commandIDs[ds.StoryboardCommands[i].ID] = struct{}{}
	}
	for i := range ds.StoryboardCommands {
		row := &ds.StoryboardCommands[i]
		if _, ok := elementIDs[row.ElementID]; !ok {
			idx.orphan("storyboard_commands", row.ID, "no matching element row")
			continue
		}
		if row.ParentID != 0 {
			if row.ParentID == row.ID {
				idx.orphan("storyboard_commands", row.ID, "command is its own parent")
				continue
			}
			if _, ok := commandIDs[row.ParentID]; !ok {
				idx.orphan("storyboard_commands", row.ID, "no matching parent command row")
				continue
			}
			idx.ChildCommands[row.ParentID] = append(idx.ChildCommands[row.ParentID], row)
			continue
		}
		idx.ElementCommands[row.ElementID] = append(idx.ElementCommands[row.ElementID], row)
	}
	for _, rows := range idx.ElementCommands {
		sortCommands(rows)
	}
	for _, rows := range idx.ChildCommands {
		sortCommands(rows)
	}

	return idx
}

func sortElements(rows []*dataset.StoryboardElementRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return layerRank[rows[i].Layer] < layerRank[rows[j].Layer]
	})
}

func sortCommands(rows []*dataset.StoryboardCommandRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].StartTime < rows[j].StartTime
	})
}

func (idx *Indices) orphan(table string, rowID int64, reason string) {
	idx.Orphans = append(idx.Orphans, Orphan{Table: table, RowID: rowID, Reason: reason})
}
