package beatmap

import (
	"fmt"

	"osurebuild/internal/dataset"
	"osurebuild/internal/index"
)

// Hit sound bitmask bits (bit 0, "normal", is implied on every object).
const (
	soundWhistle = 2
	soundFinish  = 4
	soundClap    = 8
)

// defaultBeatLength stands in for the base tempo when an inherited point
// appears before any uninherited one. 120 BPM, matching the stable client.
const defaultBeatLength = 500.0

// SkippedObject reports one hit object dropped during assembly. The rest of
// the beatmap still assembles.
type SkippedObject struct {
	HitObjectID int64
	Time        float64
	Reason      string
}

func (s SkippedObject) Error() string {
	return fmt.Sprintf("skipped hit object %d at %.0fms: %s", s.HitObjectID, s.Time, s.Reason)
}

// Assemble builds the object graph for one beatmap id. It fails only when
// the id is unknown; per-object problems become SkippedObject records and
// empty timing or object tables are valid.
func Assemble(id int64, idx *index.Indices) (*Graph, []SkippedObject, error) {
	row, ok := idx.Beatmaps[id]
	if !ok {
		return nil, nil, fmt.Errorf("unknown beatmap id %d", id)
	}

	g := &Graph{
		FormatVersion: row.FormatVersion,
		General: General{
			AudioFile:                row.AudioFile,
			AudioLeadIn:              row.AudioLeadIn,
			PreviewTime:              row.PreviewTime,
			Countdown:                row.Countdown,
			CountdownOffset:          row.CountdownOffset,
			SampleSet:                row.DefaultSampleSet,
			SampleVolume:             row.DefaultSampleVolume,
			StackLeniency:            row.StackLeniency,
			Mode:                     row.Mode,
			LetterboxInBreaks:        row.LetterboxInBreaks,
			SpecialStyle:             row.SpecialStyle,
			WidescreenStoryboard:     row.WidescreenStoryboard,
			EpilepsyWarning:          row.EpilepsyWarning,
			SamplesMatchPlaybackRate: row.SamplesMatchPlaybackRate,
		},
		Editor: Editor{
			Bookmarks:       row.Bookmarks,
			DistanceSpacing: row.DistanceSpacing,
			BeatDivisor:     row.BeatDivisor,
			GridSize:        row.GridSize,
			TimelineZoom:    row.TimelineZoom,
		},
		Metadata: Metadata{
			Title:         row.Title,
			TitleUnicode:  row.TitleUnicode,
			Artist:        row.Artist,
			ArtistUnicode: row.ArtistUnicode,
			Creator:       row.Creator,
			Version:       row.Version,
			Source:        row.Source,
			Tags:          row.Tags,
			BeatmapID:     row.BeatmapID,
			BeatmapSetID:  row.BeatmapSetID,
		},
		Difficulty: Difficulty{
			HPDrainRate:       row.HPDrainRate,
			CircleSize:        row.CircleSize,
			OverallDifficulty: row.OverallDifficulty,
			ApproachRate:      row.ApproachRate,
			SliderMultiplier:  row.SliderMultiplier,
			SliderTickRate:    row.SliderTickRate,
		},
		Background: row.BackgroundFile,
	}

	for _, br := range idx.Breaks[id] {
		g.Breaks = append(g.Breaks, Break{StartTime: br.StartTime, EndTime: br.EndTime})
	}
	for _, cc := range idx.ComboColours[id] {
		g.Colours = append(g.Colours, Colour{Name: cc.Name, Red: cc.Red, Green: cc.Green, Blue: cc.Blue})
	}

	g.TimingPoints = assembleTimingPoints(idx.TimingPoints[id])

	var skipped []SkippedObject
	g.Objects, skipped = assembleObjects(row, idx.HitObjects[id], g.TimingPoints, idx)

	return g, skipped, nil
}

// assembleTimingPoints folds over the time-ordered rows carrying the current
// uninherited beat length forward. Inherited points resolve their velocity
// against that state, so the sequence order is the whole story: a point can
// only ever scale relative to tempos already seen.
func assembleTimingPoints(rows []*dataset.TimingPointRow) []TimingPoint {
	points := make([]TimingPoint, 0, len(rows))
	base := defaultBeatLength

	for _, row := range rows {
		tp := TimingPoint{
			Time:        row.Time,
			BeatLength:  row.BeatLength,
			Meter:       row.Meter,
			SampleSet:   row.SampleSet,
			SampleIndex: row.SampleIndex,
			Volume:      row.Volume,
			Uninherited: row.Uninherited,
			Effects:     row.Effects,
		}
		if row.Uninherited {
			base = row.BeatLength
			tp.BaseBeatLength = base
			tp.Velocity = 1.0
		} else {
			tp.BaseBeatLength = base
			tp.Velocity = velocityMultiplier(row.BeatLength)
		}
		points = append(points, tp)
	}

	return points
}

// velocityMultiplier decodes an inherited point's negative beat length into
// its slider velocity multiplier.
func velocityMultiplier(beatLength float64) float64 {
	if beatLength >= 0 {
		return 1.0
	}
	return -100.0 / beatLength
}

func assembleObjects(row *dataset.BeatmapRow, objects []*dataset.HitObjectRow, points []TimingPoint, idx *index.Indices) ([]Object, []SkippedObject) {
	out := make([]Object, 0, len(objects))
	var skipped []SkippedObject

	// Objects and timing points are both time-ordered, so a single merge
	// walk finds each object's governing point.
	governing := -1
	for _, ho := range objects {
		for governing+1 < len(points) && points[governing+1].Time <= ho.Time {
			governing++
		}

		obj, err := assembleObject(row, ho, governingPoint(points, governing), idx)
		if err != nil {
			skipped = append(skipped, SkippedObject{HitObjectID: ho.ID, Time: ho.Time, Reason: err.Error()})
			continue
		}
		out = append(out, obj)
	}

	return out, skipped
}

// governingPoint returns the timing point in effect at index i, or nil when
// no point precedes the object.
func governingPoint(points []TimingPoint, i int) *TimingPoint {
	if i < 0 || i >= len(points) {
		return nil
	}
	return &points[i]
}

func assembleObject(row *dataset.BeatmapRow, ho *dataset.HitObjectRow, tp *TimingPoint, idx *index.Indices) (Object, error) {
	obj := Object{
		Time:        ho.Time,
		X:           ho.X,
		Y:           ho.Y,
		NewCombo:    ho.NewCombo,
		ComboOffset: ho.ComboOffset,
		HitSound:    ho.HitSound,
		Whistle:     ho.HitSound&soundWhistle != 0,
		Finish:      ho.HitSound&soundFinish != 0,
		Clap:        ho.HitSound&soundClap != 0,
	}

	tpSet := dataset.SampleSetNone
	tpVolume := row.DefaultSampleVolume
	if tp != nil {
		tpSet = tp.SampleSet
		tpVolume = tp.Volume
	}
	objSet, objAddSet := ho.SampleSet, ho.AdditionSet
	if hs, ok := idx.HitSamples[ho.ID]; ok {
		if hs.NormalSet != dataset.SampleSetNone {
			objSet = hs.NormalSet
		}
		if hs.AdditionSet != dataset.SampleSetNone {
			objAddSet = hs.AdditionSet
		}
		obj.SampleIndex = hs.Index
		obj.SampleFile = hs.Filename
		if hs.Volume > 0 {
			tpVolume = hs.Volume
		}
	}
	obj.SampleSet = resolveSampleSet(objSet, tpSet, row.DefaultSampleSet)
	obj.AdditionSet = resolveSampleSet(objAddSet, obj.SampleSet, row.DefaultSampleSet)
	obj.Volume = tpVolume

	switch ho.Type {
	case dataset.ObjectCircle:
		obj.Kind = KindCircle
	case dataset.ObjectSpinner:
		obj.Kind = KindSpinner
		obj.EndTime = ho.EndTime
	case dataset.ObjectHold:
		obj.Kind = KindHold
		obj.EndTime = ho.EndTime
	case dataset.ObjectSlider:
		obj.Kind = KindSlider
		slider, err := assembleSlider(ho, tp, idx)
		if err != nil {
			return Object{}, err
		}
		obj.Slider = slider
	default:
		return Object{}, fmt.Errorf("unknown hit object type %q", ho.Type)
	}

	return obj, nil
}

func assembleSlider(ho *dataset.HitObjectRow, tp *TimingPoint, idx *index.Indices) (*Slider, error) {
	sd, ok := idx.SliderData[ho.ID]
	if !ok {
		return nil, fmt.Errorf("no slider data row")
	}

	velocity := 1.0
	if tp != nil {
		velocity = tp.Velocity
	}

	slider := &Slider{
		CurveType: sd.CurveType,
		Repeats:   sd.RepeatCount,
		Length:    sd.Length,
		Velocity:  velocity,
	}
	for _, cp := range idx.ControlPoints[ho.ID] {
		slider.Points = append(slider.Points, Point{X: cp.X, Y: cp.Y})
	}

	return slider, nil
}

// resolveSampleSet applies the sample set precedence chain: an object-level
// override wins over the governing timing point, which wins over the beatmap
// default. SampleSetNone at any level defers to the next.
func resolveSampleSet(objectSet, timingPointSet, defaultSet int) int {
	if objectSet != dataset.SampleSetNone {
		return objectSet
	}
	if timingPointSet != dataset.SampleSetNone {
		return timingPointSet
	}
	return defaultSet
}
