package dataset

// Row types mirror the tables produced by the dataset builder. Rows are
// opaque records: no parsing or resolution happens at this layer.

// Hit object types as stored in the hit_objects table.
const (
	ObjectCircle  = "circle"
	ObjectSlider  = "slider"
	ObjectSpinner = "spinner"
	ObjectHold    = "hold"
)

// Storyboard element types as stored in the storyboard_elements table.
const (
	ElementSprite    = "sprite"
	ElementAnimation = "animation"
	ElementSample    = "sample"
)

// Sample set codes shared by beatmaps, timing points and hit objects.
// Zero means "not specified here, inherit from the next level up".
const (
	SampleSetNone   = 0
	SampleSetNormal = 1
	SampleSetSoft   = 2
	SampleSetDrum   = 3
)

type BeatmapRow struct {
	ID       int64
	FolderID string
	OsuFile  string

	FormatVersion int

	// General section
	AudioFile                string
	AudioLeadIn              float64
	PreviewTime              int
	DefaultSampleSet         int
	DefaultSampleVolume      int
	StackLeniency            float32
	Mode                     int
	LetterboxInBreaks        bool
	SpecialStyle             bool
	WidescreenStoryboard     bool
	EpilepsyWarning          bool
	SamplesMatchPlaybackRate bool
	Countdown                int
	CountdownOffset          int

	// Editor section
	Bookmarks       string
	DistanceSpacing float64
	BeatDivisor     int
	GridSize        int
	TimelineZoom    float64

	// Metadata section
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

	// Difficulty section
	HPDrainRate       float32
	CircleSize        float32
	OverallDifficulty float32
	ApproachRate      float32
	SliderMultiplier  float64
	SliderTickRate    float64

	// Events section
	BackgroundFile string
}

type HitObjectRow struct {
	ID        int64
	BeatmapID int64
	Time      float64
	Type      string
	X         int
	Y         int

	NewCombo    bool
	ComboOffset int

	// Additive hit sound bitmask (whistle 2, finish 4, clap 8).
	HitSound int

	// Object-level sample set override; SampleSetNone inherits from the
	// governing timing point.
	SampleSet   int
	AdditionSet int

	// Spinner/hold only.
	EndTime float64
}

type TimingPointRow struct {
	ID        int64
	BeatmapID int64
	Time      float64

	// Milliseconds per beat for uninherited points; negative inverse
	// velocity percentage for inherited points.
	BeatLength float64

	Meter       int
	SampleSet   int
	SampleIndex int
	Volume      int
	Uninherited bool
	Effects     int
}

// HitSampleRow extends one hit object with its custom sample settings. Most
// objects have no row here; the banks on the hit object row and the governing
// timing point cover them.
type HitSampleRow struct {
	HitObjectID int64

	// Bank overrides; SampleSetNone defers to the hit object row.
	NormalSet   int
	AdditionSet int

	// Custom sample index (the trailing digit in soft-hitnormal2.wav);
	// zero uses the governing timing point's index.
	Index int

	// Zero inherits the governing timing point's volume.
	Volume int

	// Custom sample file; overrides everything else when set.
	Filename string
}

type SliderDataRow struct {
	HitObjectID int64
	CurveType   string
	RepeatCount int
	Length      float64
}

type SliderControlPointRow struct {
	HitObjectID int64
	Sequence    int
	X           float64
	Y           float64
}

type StoryboardElementRow struct {
	ID       int64
	FolderID string

	// Zero for folder-level (.osb) elements; non-zero when the element is
	// embedded in one difficulty's events section.
	BeatmapID int64

	Layer  string
	Type   string
	Origin string
	Path   string
	X      float64
	Y      float64

	// Animation only.
	FrameCount int
	FrameDelay float64
	LoopType   string

	// Sample only.
	Time   float64
	Volume int
}

type StoryboardCommandRow struct {
	ID        int64
	ElementID int64

	// Zero for commands attached directly to the element; otherwise the id
	// of the owning loop or trigger command. Child times are relative to
	// the parent's start.
	ParentID int64

	Type      string
	Easing    int
	StartTime float64
	EndTime   float64

	StartValue string
	EndValue   string

	// Loop only.
	LoopCount int

	// Trigger only.
	TriggerName string
	GroupNumber int
}

type BreakRow struct {
	BeatmapID int64
	StartTime float64
	EndTime   float64
}

type ComboColourRow struct {
	BeatmapID int64
	Index     int

	// Empty for numbered combo colours; set for named custom colours such
	// as SliderTrackOverride.
	Name string

	Red   int
	Green int
	Blue  int
}

// Dataset is the full set of row tables for one or more folders, loaded once
// and treated as read-only for the rest of the process.
type Dataset struct {
	Beatmaps            []BeatmapRow
	HitObjects          []HitObjectRow
	HitSamples          []HitSampleRow
	TimingPoints        []TimingPointRow
	SliderData          []SliderDataRow
	SliderControlPoints []SliderControlPointRow
	StoryboardElements  []StoryboardElementRow
	StoryboardCommands  []StoryboardCommandRow
	Breaks              []BreakRow
	ComboColours        []ComboColourRow
}
