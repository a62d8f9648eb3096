// Package verify runs referential-integrity checks over a loaded dataset
// without writing any output. It reuses the same index the reconstruction
// path uses, so what it reports is exactly what reconstruction would skip.
package verify

import (
	"fmt"

	"osurebuild/internal/dataset"
	"osurebuild/internal/index"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeOrphanRow         = "orphan_row"
	codeSliderDataMissing = "slider_data_missing"
	codeControlPointGap   = "control_point_gap"
	codeBadRepeatCount    = "bad_repeat_count"
	codeNoTimingPoints    = "no_timing_points"
	codeNoHitObjects      = "no_hit_objects"
)

type Issue struct {
	Severity Severity
	Code     string
	Message  string
	FolderID string
	Table    string
}

type Report struct {
	Issues []Issue
}

// Errors reports how many issues are error severity.
func (r *Report) Errors() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

func Run(ds *dataset.Dataset) *Report {
	idx := index.Build(ds)
	issues := make([]Issue, 0)

	for _, orphan := range idx.Orphans {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     codeOrphanRow,
			Message:  orphan.Reason,
			Table:    orphan.Table,
		})
	}

	for folderID, ids := range idx.FolderBeatmaps {
		for _, id := range ids {
			issues = append(issues, checkBeatmap(folderID, id, idx)...)
		}
	}

	return &Report{Issues: issues}
}

func checkBeatmap(folderID string, id int64, idx *index.Indices) []Issue {
	var issues []Issue

	if len(idx.TimingPoints[id]) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarn,
			Code:     codeNoTimingPoints,
			Message:  fmt.Sprintf("beatmap %d has no timing points", id),
			FolderID: folderID,
			Table:    "timing_points",
		})
	}
	if len(idx.HitObjects[id]) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarn,
			Code:     codeNoHitObjects,
			Message:  fmt.Sprintf("beatmap %d has no hit objects", id),
			FolderID: folderID,
			Table:    "hit_objects",
		})
	}

	for _, ho := range idx.HitObjects[id] {
		if ho.Type != dataset.ObjectSlider {
			continue
		}
		sd, ok := idx.SliderData[ho.ID]
		if !ok {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     codeSliderDataMissing,
				Message:  fmt.Sprintf("slider %d has no slider data row", ho.ID),
				FolderID: folderID,
				Table:    "slider_data",
			})
			continue
		}
		if sd.RepeatCount < 1 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     codeBadRepeatCount,
				Message:  fmt.Sprintf("slider %d has repeat count %d", ho.ID, sd.RepeatCount),
				FolderID: folderID,
				Table:    "slider_data",
			})
		}
		for i, cp := range idx.ControlPoints[ho.ID] {
			if cp.Sequence != i {
				issues = append(issues, Issue{
					Severity: SeverityWarn,
					Code:     codeControlPointGap,
					Message:  fmt.Sprintf("slider %d control points jump from %d to %d", ho.ID, i, cp.Sequence),
					FolderID: folderID,
					Table:    "slider_control_points",
				})
				break
			}
		}
	}

	return issues
}
