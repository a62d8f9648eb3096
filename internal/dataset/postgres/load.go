package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"osurebuild/internal/dataset"
)

// LoadFolder loads every table filtered to one folder id, in row id order so
// downstream stable sorts tie-break on insertion order.
func (c *Client) LoadFolder(ctx context.Context, folderID string) (*dataset.Dataset, error) {
	ds := &dataset.Dataset{}

	loaders := []func(context.Context, string, *dataset.Dataset) error{
		c.loadBeatmaps,
		c.loadHitObjects,
		c.loadHitSamples,
		c.loadTimingPoints,
		c.loadSliderData,
		c.loadSliderControlPoints,
		c.loadStoryboardElements,
		c.loadStoryboardCommands,
		c.loadBreaks,
		c.loadComboColours,
	}
	for _, load := range loaders {
		if err := load(ctx, folderID, ds); err != nil {
			return nil, err
		}
	}

	return ds, nil
}

func (c *Client) loadBeatmaps(ctx context.Context, folderID string, ds *dataset.Dataset) error {
	query := `
SELECT id, folder_id, osu_file, format_version,
       audio_file, audio_lead_in, preview_time,
       default_sample_set, default_sample_volume, stack_leniency, mode,
       letterbox_in_breaks, special_style, widescreen_storyboard,
       epilepsy_warning, samples_match_playback_rate, countdown, countdown_offset,
       bookmarks, distance_spacing, beat_divisor, grid_size, timeline_zoom,
       title, title_unicode, artist, artist_unicode, creator, version, source, tags,
       beatmap_id, beatmap_set_id,
       hp_drain_rate, circle_size, overall_difficulty, approach_rate,
       slider_multiplier, slider_tick_rate, background_file
FROM beatmaps WHERE folder_id = $1 ORDER BY id
`
	return c.each(ctx, query, folderID, func(rows pgx.Rows) error {
		var r dataset.BeatmapRow
		if err := rows.Scan(
			&r.ID, &r.FolderID, &r.OsuFile, &r.FormatVersion,
			&r.AudioFile, &r.AudioLeadIn, &r.PreviewTime,
			&r.DefaultSampleSet, &r.DefaultSampleVolume, &r.StackLeniency, &r.Mode,
			&r.LetterboxInBreaks, &r.SpecialStyle, &r.WidescreenStoryboard,
			&r.EpilepsyWarning, &r.SamplesMatchPlaybackRate, &r.Countdown, &r.CountdownOffset,
			&r.Bookmarks, &r.DistanceSpacing, &r.BeatDivisor, &r.GridSize, &r.TimelineZoom,
			&r.Title, &r.TitleUnicode, &r.Artist, &r.ArtistUnicode, &r.Creator, &r.Version, &r.Source, &r.Tags,
			&r.BeatmapID, &r.BeatmapSetID,
			&r.HPDrainRate, &r.CircleSize, &r.OverallDifficulty, &r.ApproachRate,
			&r.SliderMultiplier, &r.SliderTickRate, &r.BackgroundFile,
		); err != nil {
			return err
		}
		ds.Beatmaps = append(ds.Beatmaps, r)
		return nil
	})
}

func (c *Client) loadHitObjects(ctx context.Context, folderID string, ds *dataset.Dataset) error {
	query := `
SELECT id, beatmap_id, time, type, x, y, new_combo, combo_offset,
       hit_sound, sample_set, addition_set, COALESCE(end_time, 0)
FROM hit_objects WHERE folder_id = $1 ORDER BY id
`
	return c.each(ctx, query, folderID, func(rows pgx.Rows) error {
		var r dataset.HitObjectRow
		if err := rows.Scan(
			&r.ID, &r.BeatmapID, &r.Time, &r.Type, &r.X, &r.Y, &r.NewCombo, &r.ComboOffset,
			&r.HitSound, &r.SampleSet, &r.AdditionSet, &r.EndTime,
		); err != nil {
			return err
		}
		ds.HitObjects = append(ds.HitObjects, r)
		return nil
	})
}

func (c *Client) loadHitSamples(ctx context.Context, folderID string, ds *dataset.Dataset) error {
	query := `
SELECT hit_object_id, normal_set, addition_set, sample_index, volume, COALESCE(filename, '')
FROM hit_samples WHERE folder_id = $1 ORDER BY hit_object_id
`
	return c.each(ctx, query, folderID, func(rows pgx.Rows) error {
		var r dataset.HitSampleRow
		if err := rows.Scan(
			&r.HitObjectID, &r.NormalSet, &r.AdditionSet, &r.Index, &r.Volume, &r.Filename,
		); err != nil {
			return err
		}
		ds.HitSamples = append(ds.HitSamples, r)
		return nil
	})
}

func (c *Client) loadTimingPoints(ctx context.Context, folderID string, ds *dataset.Dataset) error {
	query := `
SELECT id, beatmap_id, time, beat_length, meter,
       sample_set, sample_index, volume, uninherited, effects
FROM timing_points WHERE folder_id = $1 ORDER BY id
`
	return c.each(ctx, query, folderID, func(rows pgx.Rows) error {
		var r dataset.TimingPointRow
		if err := rows.Scan(
			&r.ID, &r.BeatmapID, &r.Time, &r.BeatLength, &r.Meter,
			&r.SampleSet, &r.SampleIndex, &r.Volume, &r.Uninherited, &r.Effects,
		); err != nil {
			return err
		}
		ds.TimingPoints = append(ds.TimingPoints, r)
		return nil
	})
}

func (c *Client) loadSliderData(ctx context.Context, folderID string, ds *dataset.Dataset) error {
	query := `
SELECT hit_object_id, curve_type, repeat_count, COALESCE(length, 0)
FROM slider_data WHERE folder_id = $1 ORDER BY hit_object_id
`
	return c.each(ctx, query, folderID, func(rows pgx.Rows) error {
		var r dataset.SliderDataRow
		if err := rows.Scan(&r.HitObjectID, &r.CurveType, &r.RepeatCount, &r.Length); err != nil {
			return err
		}
		ds.SliderData = append(ds.SliderData, r)
		return nil
	})
}

func (c *Client) loadSliderControlPoints(ctx context.Context, folderID string, ds *dataset.Dataset) error {
	query := `
SELECT hit_object_id, sequence, x, y
FROM slider_control_points WHERE folder_id = $1 ORDER BY hit_object_id, sequence
`
	return c.each(ctx, query, folderID, func(rows pgx.Rows) error {
		var r dataset.SliderControlPointRow
		if err := rows.Scan(&r.HitObjectID, &r.Sequence, &r.X, &r.Y); err != nil {
			return err
		}
		ds.SliderControlPoints = append(ds.SliderControlPoints, r)
		return nil
	})
}

func (c *Client) loadStoryboardElements(ctx context.Context, folderID string, ds *dataset.Dataset) error {
	query := `
SELECT id, folder_id, COALESCE(beatmap_id, 0), layer, type, origin, path, x, y,
       COALESCE(frame_count, 0), COALESCE(frame_delay, 0), COALESCE(loop_type, ''),
       COALESCE(time, 0), COALESCE(volume, 0)
FROM storyboard_elements WHERE folder_id = $1 ORDER BY id
`
	return c.each(ctx, query, folderID, func(rows pgx.Rows) error {
		var r dataset.StoryboardElementRow
		if err := rows.Scan(
			&r.ID, &r.FolderID, &r.BeatmapID, &r.Layer, &r.Type, &r.Origin, &r.Path, &r.X, &r.Y,
			&r.FrameCount, &r.FrameDelay, &r.LoopType, &r.Time, &r.Volume,
		); err != nil {
			return err
		}
		ds.StoryboardElements = append(ds.StoryboardElements, r)
		return nil
	})
}

func (c *Client) loadStoryboardCommands(ctx context.Context, folderID string, ds *dataset.Dataset) error {
	query := `
SELECT id, element_id, COALESCE(parent_id, 0), type, easing, start_time, end_time,
       start_value, end_value, COALESCE(loop_count, 0),
       COALESCE(trigger_name, ''), COALESCE(group_number, 0)
FROM storyboard_commands WHERE folder_id = $1 ORDER BY id
`
	return c.each(ctx, query, folderID, func(rows pgx.Rows) error {
		var r dataset.StoryboardCommandRow
		if err := rows.Scan(
			&r.ID, &r.ElementID, &r.ParentID, &r.Type, &r.Easing, &r.StartTime, &r.EndTime,
			&r.StartValue, &r.EndValue, &r.LoopCount, &r.TriggerName, &r.GroupNumber,
		); err != nil {
			return err
		}
		ds.StoryboardCommands = append(ds.StoryboardCommands, r)
		return nil
	})
}

func (c *Client) loadBreaks(ctx context.Context, folderID string, ds *dataset.Dataset) error {
	query := `
SELECT beatmap_id, start_time, end_time
FROM breaks WHERE folder_id = $1 ORDER BY beatmap_id, start_time
`
	return c.each(ctx, query, folderID, func(rows pgx.Rows) error {
		var r dataset.BreakRow
		if err := rows.Scan(&r.BeatmapID, &r.StartTime, &r.EndTime); err != nil {
			return err
		}
		ds.Breaks = append(ds.Breaks, r)
		return nil
	})
}

func (c *Client) loadComboColours(ctx context.Context, folderID string, ds *dataset.Dataset) error {
	query := `
SELECT beatmap_id, colour_index, COALESCE(name, ''), red, green, blue
FROM combo_colours WHERE folder_id = $1 ORDER BY beatmap_id, colour_index
`
	return c.each(ctx, query, folderID, func(rows pgx.Rows) error {
		var r dataset.ComboColourRow
		if err := rows.Scan(&r.BeatmapID, &r.Index, &r.Name, &r.Red, &r.Green, &r.Blue); err != nil {
			return err
		}
		ds.ComboColours = append(ds.ComboColours, r)
		return nil
	})
}
