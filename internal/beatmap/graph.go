// Package beatmap joins timing, hit object and slider rows into the ordered
// object graph for a single difficulty. Every value in the graph is fully
// resolved; the encoder performs no lookups of its own.
package beatmap

// Kind discriminates hit object variants.
type Kind int

const (
	KindCircle Kind = iota
	KindSlider
	KindSpinner
	KindHold
)

// Graph is one assembled difficulty, ready for encoding.
type Graph struct {
	FormatVersion int

	General    General
	Editor     Editor
	Metadata   Metadata
	Difficulty Difficulty

	Background string
	Breaks     []Break
	Colours    []Colour

	TimingPoints []TimingPoint
	Objects      []Object
}

type General struct {
	AudioFile                string
	AudioLeadIn              float64
	PreviewTime              int
	Countdown                int
	CountdownOffset          int
	SampleSet                int
	SampleVolume             int
	StackLeniency            float32
	Mode                     int
	LetterboxInBreaks        bool
	SpecialStyle             bool
	WidescreenStoryboard     bool
	EpilepsyWarning          bool
	SamplesMatchPlaybackRate bool
}

type Editor struct {
	Bookmarks       string
	DistanceSpacing float64
	BeatDivisor     int
	GridSize        int
	TimelineZoom    float64
}

type Metadata struct {
	Title         string
	TitleUnicode  string
	Artist        string
	ArtistUnicode string
	Creator       string
	Version       string
	Source        string
	Tags          string
	BeatmapID     int
	BeatmapSetID  int
}

type Difficulty struct {
	HPDrainRate       float32
	CircleSize        float32
	OverallDifficulty float32
	ApproachRate      float32
	SliderMultiplier  float64
	SliderTickRate    float64
}

type Break struct {
	StartTime float64
	EndTime   float64
}

type Colour struct {
	// Empty for numbered combo colours.
	Name string

	Red   int
	Green int
	Blue  int
}

// TimingPoint carries both the raw stored values and the resolved state of
// the tempo walk at its position in the sequence.
type TimingPoint struct {
	Time        float64
	BeatLength  float64
	Meter       int
	SampleSet   int
	SampleIndex int
	Volume      int
	Uninherited bool
	Effects     int

	// BaseBeatLength is the beat length of the nearest preceding
	// uninherited point (the point itself when uninherited).
	BaseBeatLength float64

	// Velocity is the resolved slider velocity multiplier: 1.0 for
	// uninherited points, -100/BeatLength for inherited ones.
	Velocity float64
}

// Object is one hit object with its sample and velocity values already
// resolved against the governing timing point.
type Object struct {
	Kind Kind
	Time float64
	X    int
	Y    int

	NewCombo    bool
	ComboOffset int

	HitSound int
	Whistle  bool
	Finish   bool
	Clap     bool

	SampleSet   int
	AdditionSet int
	Volume      int

	// SampleIndex is the custom sample index; zero inherits the governing
	// timing point's. SampleFile names a per-object sample file and is
	// usually empty.
	SampleIndex int
	SampleFile  string

	// Spinner/hold only.
	EndTime float64

	// Slider only.
	Slider *Slider
}

// Slider describes a slider path and its resolved velocity.
type Slider struct {
	CurveType string
	Points    []Point
	Repeats   int
	Length    float64

	// Velocity is the slider velocity multiplier in effect at the
	// slider's start time.
	Velocity float64
}

type Point struct {
	X float64
	Y float64
}
