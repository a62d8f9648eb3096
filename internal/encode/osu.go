// Package encode turns assembled graphs into map and storyboard text. The
// boundary is strict: fully resolved, ordered graph in, formatted text out.
// Nothing here joins rows or re-derives tempo state.
package encode

import (
	"fmt"
	"strconv"
	"strings"

	"osurebuild/internal/beatmap"
	"osurebuild/internal/storyboard"
)

// Hit object type bitmask.
const (
	typeCircle   = 1
	typeSlider   = 2
	typeNewCombo = 4
	typeSpinner  = 8
	typeHold     = 128
)

var sampleSetNames = [...]string{"None", "Normal", "Soft", "Drum"}

// Beatmap renders one difficulty as osu file format text. When embedded is
// non-nil its elements are written into the [Events] section, the place the
// grammar reserves for per-difficulty storyboards. Output is deterministic:
// the same graph always yields the same bytes.
func Beatmap(g *beatmap.Graph, embedded *storyboard.Graph) []byte {
	var b strings.Builder

	version := g.FormatVersion
	if version == 0 {
		version = 14
	}
	fmt.Fprintf(&b, "osu file format v%d\r\n\r\n", version)

	writeGeneral(&b, &g.General)
	writeEditor(&b, &g.Editor)
	writeMetadata(&b, &g.Metadata)
	writeDifficulty(&b, &g.Difficulty)
	writeEvents(&b, g, embedded)
	writeTimingPoints(&b, g.TimingPoints)
	writeColours(&b, g.Colours)
	writeHitObjects(&b, g.Objects)

	return []byte(b.String())
}

func writeGeneral(b *strings.Builder, s *beatmap.General) {
	b.WriteString("[General]\r\n")
	fmt.Fprintf(b, "AudioFilename: %s\r\n", s.AudioFile)
	fmt.Fprintf(b, "AudioLeadIn: %s\r\n", num(s.AudioLeadIn))
	fmt.Fprintf(b, "PreviewTime: %d\r\n", s.PreviewTime)
	fmt.Fprintf(b, "Countdown: %d\r\n", s.Countdown)
	fmt.Fprintf(b, "SampleSet: %s\r\n", sampleSetName(s.SampleSet))
	fmt.Fprintf(b, "StackLeniency: %s\r\n", num32(s.StackLeniency))
	fmt.Fprintf(b, "Mode: %d\r\n", s.Mode)
	fmt.Fprintf(b, "LetterboxInBreaks: %s\r\n", flag(s.LetterboxInBreaks))
	if s.SpecialStyle {
		b.WriteString("SpecialStyle: 1\r\n")
	}
	fmt.Fprintf(b, "WidescreenStoryboard: %s\r\n", flag(s.WidescreenStoryboard))
	if s.EpilepsyWarning {
		b.WriteString("EpilepsyWarning: 1\r\n")
	}
	if s.CountdownOffset != 0 {
		fmt.Fprintf(b, "CountdownOffset: %d\r\n", s.CountdownOffset)
	}
	if s.SamplesMatchPlaybackRate {
		b.WriteString("SamplesMatchPlaybackRate: 1\r\n")
	}
	b.WriteString("\r\n")
}

func writeEditor(b *strings.Builder, s *beatmap.Editor) {
	b.WriteString("[Editor]\r\n")
	if s.Bookmarks != "" {
		fmt.Fprintf(b, "Bookmarks: %s\r\n", s.Bookmarks)
	}
	fmt.Fprintf(b, "DistanceSpacing: %s\r\n", num(s.DistanceSpacing))
	fmt.Fprintf(b, "BeatDivisor: %d\r\n", s.BeatDivisor)
	fmt.Fprintf(b, "GridSize: %d\r\n", s.GridSize)
	fmt.Fprintf(b, "TimelineZoom: %s\r\n", num(s.TimelineZoom))
	b.WriteString("\r\n")
}

func writeMetadata(b *strings.Builder, s *beatmap.Metadata) {
	b.WriteString("[Metadata]\r\n")
	fmt.Fprintf(b, "Title:%s\r\n", s.Title)
	fmt.Fprintf(b, "TitleUnicode:%s\r\n", s.TitleUnicode)
	fmt.Fprintf(b, "Artist:%s\r\n", s.Artist)
	fmt.Fprintf(b, "ArtistUnicode:%s\r\n", s.ArtistUnicode)
	fmt.Fprintf(b, "Creator:%s\r\n", s.Creator)
	fmt.Fprintf(b, "Version:%s\r\n", s.Version)
	fmt.Fprintf(b, "Source:%s\r\n", s.Source)
	fmt.Fprintf(b, "Tags:%s\r\n", s.Tags)
	fmt.Fprintf(b, "BeatmapID:%d\r\n", s.BeatmapID)
	fmt.Fprintf(b, "BeatmapSetID:%d\r\n", s.BeatmapSetID)
	b.WriteString("\r\n")
}

func writeDifficulty(b *strings.Builder, s *beatmap.Difficulty) {
	b.WriteString("[Difficulty]\r\n")
	fmt.Fprintf(b, "HPDrainRate:%s\r\n", num32(s.HPDrainRate))
	fmt.Fprintf(b, "CircleSize:%s\r\n", num32(s.CircleSize))
	fmt.Fprintf(b, "OverallDifficulty:%s\r\n", num32(s.OverallDifficulty))
	fmt.Fprintf(b, "ApproachRate:%s\r\n", num32(s.ApproachRate))
	fmt.Fprintf(b, "SliderMultiplier:%s\r\n", num(s.SliderMultiplier))
	fmt.Fprintf(b, "SliderTickRate:%s\r\n", num(s.SliderTickRate))
	b.WriteString("\r\n")
}

func writeEvents(b *strings.Builder, g *beatmap.Graph, embedded *storyboard.Graph) {
	b.WriteString("[Events]\r\n")
	b.WriteString("//Background and Video events\r\n")
	if g.Background != "" {
		fmt.Fprintf(b, "0,0,\"%s\",0,0\r\n", g.Background)
	}
	b.WriteString("//Break Periods\r\n")
	for _, br := range g.Breaks {
		fmt.Fprintf(b, "2,%d,%d\r\n", ms(br.StartTime), ms(br.EndTime))
	}
	writeStoryboardLayers(b, embedded)
	b.WriteString("\r\n")
}

func writeTimingPoints(b *strings.Builder, points []beatmap.TimingPoint) {
	b.WriteString("[TimingPoints]\r\n")
	for _, tp := range points {
		fmt.Fprintf(b, "%d,%s,%d,%d,%d,%d,%s,%d\r\n",
			ms(tp.Time), num(tp.BeatLength), tp.Meter,
			tp.SampleSet, tp.SampleIndex, tp.Volume,
			flag(tp.Uninherited), tp.Effects)
	}
	b.WriteString("\r\n")
}

func writeColours(b *strings.Builder, colours []beatmap.Colour) {
	if len(colours) == 0 {
		return
	}
	b.WriteString("[Colours]\r\n")
	combo := 0
	for _, c := range colours {
		name := c.Name
		if name == "" {
			combo++
			name = fmt.Sprintf("Combo%d", combo)
		}
		fmt.Fprintf(b, "%s : %d,%d,%d\r\n", name, c.Red, c.Green, c.Blue)
	}
	b.WriteString("\r\n")
}

func writeHitObjects(b *strings.Builder, objects []beatmap.Object) {
	b.WriteString("[HitObjects]\r\n")
	for i := range objects {
		writeHitObject(b, &objects[i])
	}
}

func writeHitObject(b *strings.Builder, o *beatmap.Object) {
	sample := fmt.Sprintf("%d:%d:%d:%d:%s",
		o.SampleSet, o.AdditionSet, o.SampleIndex, o.Volume, o.SampleFile)

	switch o.Kind {
	case beatmap.KindCircle:
		fmt.Fprintf(b, "%d,%d,%d,%d,%d,%s\r\n",
			o.X, o.Y, ms(o.Time), objectType(o, typeCircle), o.HitSound, sample)
	case beatmap.KindSlider:
		edgeSounds, edgeSets := sliderEdges(o)
		fmt.Fprintf(b, "%d,%d,%d,%d,%d,%s,%d,%s,%s,%s,%s\r\n",
			o.X, o.Y, ms(o.Time), objectType(o, typeSlider), o.HitSound,
			sliderPath(o.Slider), o.Slider.Repeats, num(o.Slider.Length),
			edgeSounds, edgeSets, sample)
	case beatmap.KindSpinner:
		fmt.Fprintf(b, "%d,%d,%d,%d,%d,%d,%s\r\n",
			o.X, o.Y, ms(o.Time), objectType(o, typeSpinner), o.HitSound, ms(o.EndTime), sample)
	case beatmap.KindHold:
		fmt.Fprintf(b, "%d,%d,%d,%d,%d,%d:%s\r\n",
			o.X, o.Y, ms(o.Time), objectType(o, typeHold), o.HitSound, ms(o.EndTime), sample)
	}
}

func objectType(o *beatmap.Object, base int) int {
	t := base
	if o.NewCombo {
		t |= typeNewCombo
		t |= (o.ComboOffset & 0x7) << 4
	}
	return t
}

// sliderEdges renders the per-edge hit sound and sample set lists. The hit
// sound field after the length slot must be pipe-separated integers, one per
// edge (head, each repeat pass, tail); the object's own values repeat across
// every edge.
func sliderEdges(o *beatmap.Object) (sounds, sets string) {
	edges := o.Slider.Repeats + 1
	sound := strconv.Itoa(o.HitSound)
	set := fmt.Sprintf("%d:%d", o.SampleSet, o.AdditionSet)

	soundParts := make([]string, edges)
	setParts := make([]string, edges)
	for i := 0; i < edges; i++ {
		soundParts[i] = sound
		setParts[i] = set
	}
	return strings.Join(soundParts, "|"), strings.Join(setParts, "|")
}

func sliderPath(s *beatmap.Slider) string {
	parts := make([]string, 0, len(s.Points)+1)
	parts = append(parts, s.CurveType)
	for _, p := range s.Points {
		parts = append(parts, fmt.Sprintf("%s:%s", num(p.X), num(p.Y)))
	}
	return strings.Join(parts, "|")
}

func sampleSetName(set int) string {
	if set < 0 || set >= len(sampleSetNames) {
		return sampleSetNames[0]
	}
	return sampleSetNames[set]
}

// ms truncates a millisecond timestamp the way the original files stored it.
func ms(t float64) int64 {
	return int64(t)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func num32(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}

func flag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
