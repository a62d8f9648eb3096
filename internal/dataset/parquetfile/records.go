package parquetfile

import "osurebuild/internal/dataset"

// Record structs mirror the parquet schemas column for column. Nullable
// columns are pointers; mapping to dataset rows collapses them to zero
// values, which the assemblers already treat as "absent".

type folderIDRecord struct {
	FolderID string `parquet:"folder_id"`
}

type beatmapRecord struct {
	ID       int64  `parquet:"id"`
	FolderID string `parquet:"folder_id"`
	OsuFile  string `parquet:"osu_file"`

	FormatVersion int32 `parquet:"format_version"`

	AudioFile                string  `parquet:"audio_file"`
	AudioLeadIn              float64 `parquet:"audio_lead_in"`
	PreviewTime              int32   `parquet:"preview_time"`
	DefaultSampleSet         int32   `parquet:"default_sample_set"`
	DefaultSampleVolume      int32   `parquet:"default_sample_volume"`
	StackLeniency            float32 `parquet:"stack_leniency"`
	Mode                     int32   `parquet:"mode"`
	LetterboxInBreaks        bool    `parquet:"letterbox_in_breaks"`
	SpecialStyle             bool    `parquet:"special_style"`
	WidescreenStoryboard     bool    `parquet:"widescreen_storyboard"`
	EpilepsyWarning          bool    `parquet:"epilepsy_warning"`
	SamplesMatchPlaybackRate bool    `parquet:"samples_match_playback_rate"`
	Countdown                int32   `parquet:"countdown"`
	CountdownOffset          int32   `parquet:"countdown_offset"`

	Bookmarks       string  `parquet:"bookmarks"`
	DistanceSpacing float64 `parquet:"distance_spacing"`
	BeatDivisor     int32   `parquet:"beat_divisor"`
	GridSize        int32   `parquet:"grid_size"`
	TimelineZoom    float64 `parquet:"timeline_zoom"`

	Title         string `parquet:"title"`
	TitleUnicode  string `parquet:"title_unicode"`
	Artist        string `parquet:"artist"`
	ArtistUnicode string `parquet:"artist_unicode"`
	Creator       string `parquet:"creator"`
	Version       string `parquet:"version"`
	Source        string `parquet:"source"`
	Tags          string `parquet:"tags"`
	BeatmapID     int32  `parquet:"beatmap_id"`
	BeatmapSetID  int32  `parquet:"beatmap_set_id"`

	HPDrainRate       float32 `parquet:"hp_drain_rate"`
	CircleSize        float32 `parquet:"circle_size"`
	OverallDifficulty float32 `parquet:"overall_difficulty"`
	ApproachRate      float32 `parquet:"approach_rate"`
	SliderMultiplier  float64 `parquet:"slider_multiplier"`
	SliderTickRate    float64 `parquet:"slider_tick_rate"`

	BackgroundFile string `parquet:"background_file"`
}

func (r beatmapRecord) row() dataset.BeatmapRow {
	return dataset.BeatmapRow{
		ID:            r.ID,
		FolderID:      r.FolderID,
		OsuFile:       r.OsuFile,
		FormatVersion: int(r.FormatVersion),

		AudioFile:                r.AudioFile,
		AudioLeadIn:              r.AudioLeadIn,
		PreviewTime:              int(r.PreviewTime),
		DefaultSampleSet:         int(r.DefaultSampleSet),
		DefaultSampleVolume:      int(r.DefaultSampleVolume),
		StackLeniency:            r.StackLeniency,
		Mode:                     int(r.Mode),
		LetterboxInBreaks:        r.LetterboxInBreaks,
		SpecialStyle:             r.SpecialStyle,
		WidescreenStoryboard:     r.WidescreenStoryboard,
		EpilepsyWarning:          r.EpilepsyWarning,
		SamplesMatchPlaybackRate: r.SamplesMatchPlaybackRate,
		Countdown:                int(r.Countdown),
		CountdownOffset:          int(r.CountdownOffset),

		Bookmarks:       r.Bookmarks,
		DistanceSpacing: r.DistanceSpacing,
		BeatDivisor:     int(r.BeatDivisor),
		GridSize:        int(r.GridSize),
		TimelineZoom:    r.TimelineZoom,

		Title:         r.Title,
		TitleUnicode:  r.TitleUnicode,
		Artist:        r.Artist,
		ArtistUnicode: r.ArtistUnicode,
		Creator:       r.Creator,
		Version:       r.Version,
		Source:        r.Source,
		Tags:          r.Tags,
		BeatmapID:     int(r.BeatmapID),
		BeatmapSetID:  int(r.BeatmapSetID),

		HPDrainRate:       r.HPDrainRate,
		CircleSize:        r.CircleSize,
		OverallDifficulty: r.OverallDifficulty,
		ApproachRate:      r.ApproachRate,
		SliderMultiplier:  r.SliderMultiplier,
		SliderTickRate:    r.SliderTickRate,

		BackgroundFile: r.BackgroundFile,
	}
}

type hitObjectRecord struct {
	ID          int64    `parquet:"id"`
	FolderID    string   `parquet:"folder_id"`
	BeatmapID   int64    `parquet:"beatmap_id"`
	Time        float64  `parquet:"time"`
	Type        string   `parquet:"type"`
	X           int32    `parquet:"x"`
	Y           int32    `parquet:"y"`
	NewCombo    bool     `parquet:"new_combo"`
	ComboOffset int32    `parquet:"combo_offset"`
	HitSound    int32    `parquet:"hit_sound"`
	SampleSet   int32    `parquet:"sample_set"`
	AdditionSet int32    `parquet:"addition_set"`
	EndTime     *float64 `parquet:"end_time,optional"`
}

func (r hitObjectRecord) row() dataset.HitObjectRow {
	return dataset.HitObjectRow{
		ID:          r.ID,
		BeatmapID:   r.BeatmapID,
		Time:        r.Time,
		Type:        r.Type,
		X:           int(r.X),
		Y:           int(r.Y),
		NewCombo:    r.NewCombo,
		ComboOffset: int(r.ComboOffset),
		HitSound:    int(r.HitSound),
		SampleSet:   int(r.SampleSet),
		AdditionSet: int(r.AdditionSet),
		EndTime:     deref(r.EndTime),
	}
}

type hitSampleRecord struct {
	FolderID    string  `parquet:"folder_id"`
	HitObjectID int64   `parquet:"hit_object_id"`
	NormalSet   int32   `parquet:"normal_set"`
	AdditionSet int32   `parquet:"addition_set"`
	SampleIndex int32   `parquet:"sample_index"`
	Volume      int32   `parquet:"volume"`
	Filename    *string `parquet:"filename,optional"`
}

func (r hitSampleRecord) row() dataset.HitSampleRow {
	return dataset.HitSampleRow{
		HitObjectID: r.HitObjectID,
		NormalSet:   int(r.NormalSet),
		AdditionSet: int(r.AdditionSet),
		Index:       int(r.SampleIndex),
		Volume:      int(r.Volume),
		Filename:    deref(r.Filename),
	}
}

type timingPointRecord struct {
	ID          int64   `parquet:"id"`
	FolderID    string  `parquet:"folder_id"`
	BeatmapID   int64   `parquet:"beatmap_id"`
	Time        float64 `parquet:"time"`
	BeatLength  float64 `parquet:"beat_length"`
	Meter       int32   `parquet:"meter"`
	SampleSet   int32   `parquet:"sample_set"`
	SampleIndex int32   `parquet:"sample_index"`
	Volume      int32   `parquet:"volume"`
	Uninherited bool    `parquet:"uninherited"`
	Effects     int32   `parquet:"effects"`
}

func (r timingPointRecord) row() dataset.TimingPointRow {
	return dataset.TimingPointRow{
		ID:          r.ID,
		BeatmapID:   r.BeatmapID,
		Time:        r.Time,
		BeatLength:  r.BeatLength,
		Meter:       int(r.Meter),
		SampleSet:   int(r.SampleSet),
		SampleIndex: int(r.SampleIndex),
		Volume:      int(r.Volume),
		Uninherited: r.Uninherited,
		Effects:     int(r.Effects),
	}
}

type sliderDataRecord struct {
	FolderID    string   `parquet:"folder_id"`
	HitObjectID int64    `parquet:"hit_object_id"`
	CurveType   string   `parquet:"curve_type"`
	RepeatCount int32    `parquet:"repeat_count"`
	Length      *float64 `parquet:"length,optional"`
}

func (r sliderDataRecord) row() dataset.SliderDataRow {
	return dataset.SliderDataRow{
		HitObjectID: r.HitObjectID,
		CurveType:   r.CurveType,
		RepeatCount: int(r.RepeatCount),
		Length:      deref(r.Length),
	}
}

type controlPointRecord struct {
	FolderID    string  `parquet:"folder_id"`
	HitObjectID int64   `parquet:"hit_object_id"`
	Sequence    int32   `parquet:"sequence"`
	X           float64 `parquet:"x"`
	Y           float64 `parquet:"y"`
}

func (r controlPointRecord) row() dataset.SliderControlPointRow {
	return dataset.SliderControlPointRow{
		HitObjectID: r.HitObjectID,
		Sequence:    int(r.Sequence),
		X:           r.X,
		Y:           r.Y,
	}
}

type elementRecord struct {
	ID         int64    `parquet:"id"`
	FolderID   string   `parquet:"folder_id"`
	BeatmapID  *int64   `parquet:"beatmap_id,optional"`
	Layer      string   `parquet:"layer"`
	Type       string   `parquet:"type"`
	Origin     string   `parquet:"origin"`
	Path       string   `parquet:"path"`
	X          float64  `parquet:"x"`
	Y          float64  `parquet:"y"`
	FrameCount *int32   `parquet:"frame_count,optional"`
	FrameDelay *float64 `parquet:"frame_delay,optional"`
	LoopType   *string  `parquet:"loop_type,optional"`
	Time       *float64 `parquet:"time,optional"`
	Volume     *int32   `parquet:"volume,optional"`
}

func (r elementRecord) row() dataset.StoryboardElementRow {
	return dataset.StoryboardElementRow{
		ID:         r.ID,
		FolderID:   r.FolderID,
		BeatmapID:  deref(r.BeatmapID),
		Layer:      r.Layer,
		Type:       r.Type,
		Origin:     r.Origin,
		Path:       r.Path,
		X:          r.X,
		Y:          r.Y,
		FrameCount: int(deref(r.FrameCount)),
		FrameDelay: deref(r.FrameDelay),
		LoopType:   deref(r.LoopType),
		Time:       deref(r.Time),
		Volume:     int(deref(r.Volume)),
	}
}

type commandRecord struct {
	ID          int64   `parquet:"id"`
	FolderID    string  `parquet:"folder_id"`
	ElementID   int64   `parquet:"element_id"`
	ParentID    *int64  `parquet:"parent_id,optional"`
	Type        string  `parquet:"type"`
	Easing      int32   `parquet:"easing"`
	StartTime   float64 `parquet:"start_time"`
	EndTime     float64 `parquet:"end_time"`
	StartValue  string  `parquet:"start_value"`
	EndValue    string  `parquet:"end_value"`
	LoopCount   int32   `parquet:"loop_count"`
	TriggerName string  `parquet:"trigger_name"`
	GroupNumber int32   `parquet:"group_number"`
}

func (r commandRecord) row() dataset.StoryboardCommandRow {
	return dataset.StoryboardCommandRow{
		ID:          r.ID,
		ElementID:   r.ElementID,
		ParentID:    deref(r.ParentID),
		Type:        r.Type,
		Easing:      int(r.Easing),
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		StartValue:  r.StartValue,
		EndValue:    r.EndValue,
		LoopCount:   int(r.LoopCount),
		TriggerName: r.TriggerName,
		GroupNumber: int(r.GroupNumber),
	}
}

type breakRecord struct {
	FolderID  string  `parquet:"folder_id"`
	BeatmapID int64   `parquet:"beatmap_id"`
	StartTime float64 `parquet:"start_time"`
	EndTime   float64 `parquet:"end_time"`
}

func (r breakRecord) row() dataset.BreakRow {
	return dataset.BreakRow{
		BeatmapID: r.BeatmapID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

type comboColourRecord struct {
	FolderID  string `parquet:"folder_id"`
	BeatmapID int64  `parquet:"beatmap_id"`
	Index     int32  `parquet:"colour_index"`
	Name      string `parquet:"name"`
	Red       int32  `parquet:"red"`
	Green     int32  `parquet:"green"`
	Blue      int32  `parquet:"blue"`
}

func (r comboColourRecord) row() dataset.ComboColourRow {
	return dataset.ComboColourRow{
		BeatmapID: r.BeatmapID,
		Index:     int(r.Index),
		Name:      r.Name,
		Red:       int(r.Red),
		Green:     int(r.Green),
		Blue:      int(r.Blue),
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
