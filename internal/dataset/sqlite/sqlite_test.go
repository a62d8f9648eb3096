package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

const testSchema = `
CREATE TABLE beatmaps (
	id INTEGER PRIMARY KEY, folder_id TEXT, osu_file TEXT, format_version INTEGER,
	audio_file TEXT, audio_lead_in REAL, preview_time INTEGER,
	default_sample_set INTEGER, default_sample_volume INTEGER, stack_leniency REAL, mode INTEGER,
	letterbox_in_breaks INTEGER, special_style INTEGER, widescreen_storyboard INTEGER,
	epilepsy_warning INTEGER, samples_match_playback_rate INTEGER, countdown INTEGER, countdown_offset INTEGER,
	bookmarks TEXT, distance_spacing REAL, beat_divisor INTEGER, grid_size INTEGER, timeline_zoom REAL,
	title TEXT, title_unicode TEXT, artist TEXT, artist_unicode TEXT, creator TEXT, version TEXT, source TEXT, tags TEXT,
	beatmap_id INTEGER, beatmap_set_id INTEGER,
	hp_drain_rate REAL, circle_size REAL, overall_difficulty REAL, approach_rate REAL,
	slider_multiplier REAL, slider_tick_rate REAL, background_file TEXT
);
CREATE TABLE hit_objects (
	id INTEGER PRIMARY KEY, folder_id TEXT, beatmap_id INTEGER, time REAL, type TEXT,
	x INTEGER, y INTEGER, new_combo INTEGER, combo_offset INTEGER,
	hit_sound INTEGER, sample_set INTEGER, addition_set INTEGER, end_time REAL
);
CREATE TABLE hit_samples (
	folder_id TEXT, hit_object_id INTEGER, normal_set INTEGER, addition_set INTEGER,
	sample_index INTEGER, volume INTEGER, filename TEXT
);
CREATE TABLE timing_points (
	id INTEGER PRIMARY KEY, folder_id TEXT, beatmap_id INTEGER, time REAL, beat_length REAL,
	meter INTEGER, sample_set INTEGER, sample_index INTEGER, volume INTEGER,
	uninherited INTEGER, effects INTEGER
);
CREATE TABLE slider_data (
	folder_id TEXT, hit_object_id INTEGER, curve_type TEXT, repeat_count INTEGER, length REAL
);
CREATE TABLE slider_control_points (
	folder_id TEXT, hit_object_id INTEGER, sequence INTEGER, x REAL, y REAL
);
CREATE TABLE storyboard_elements (
	id INTEGER PRIMARY KEY, folder_id TEXT, beatmap_id INTEGER, layer TEXT, type TEXT,
	origin TEXT, path TEXT, x REAL, y REAL,
	frame_count INTEGER, frame_delay REAL, loop_type TEXT, time REAL, volume INTEGER
);
CREATE TABLE storyboard_commands (
	id INTEGER PRIMARY KEY, folder_id TEXT, element_id INTEGER, parent_id INTEGER,
	type TEXT, easing INTEGER, start_time REAL, end_time REAL,
	start_value TEXT, end_value TEXT, loop_count INTEGER, trigger_name TEXT, group_number INTEGER
);
CREATE TABLE breaks (
	folder_id TEXT, beatmap_id INTEGER, start_time REAL, end_time REAL
);
CREATE TABLE combo_colours (
	folder_id TEXT, beatmap_id INTEGER, colour_index INTEGER, name TEXT,
	red INTEGER, green INTEGER, blue INTEGER
);
`

func testClient(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()

	client, err := New(ctx, "sqlite://:memory:")
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { client.Close(ctx) })

	if _, err := client.db.ExecContext(ctx, testSchema); err != nil {
		t.Fatalf("creating schema: %v", err)
	}
	return client
}

// seedFolder inserts one folder's rows, offsetting ids so several folders
// can share a database.
func seedFolder(t *testing.T, client *Client, folderID string, base int64) {
	t.Helper()
	ctx := context.Background()

	exec := func(query string, args ...any) {
		t.Helper()
		if _, err := client.db.ExecContext(ctx, query, args...); err != nil {
			t.Fatalf("seeding row: %v", err)
		}
	}

	exec(`INSERT INTO beatmaps VALUES (?, ?, 'a.osu', 14,
		'audio.mp3', 0, -1, 1, 70, 0.7, 0, 0, 0, 1, 0, 0, 0, 0,
		'', 1.2, 4, 32, 1,
		'Song', 'Song', 'Artist', 'Artist', 'mapper', 'Easy', '', '',
		123, 456, 5, 4, 7, 9, 1.4, 1, 'bg.jpg')`, base+1, folderID)
	exec(`INSERT INTO hit_objects VALUES (?, ?, ?, 1000, 'circle', 100, 200, 0, 0, 0, 0, 0, NULL)`, base+10, folderID, base+1)
	exec(`INSERT INTO hit_objects VALUES (?, ?, ?, 2000, 'slider', 50, 60, 1, 0, 0, 0, 0, NULL)`, base+11, folderID, base+1)
	exec(`INSERT INTO hit_samples VALUES (?, ?, 3, 0, 1, 80, NULL)`, folderID, base+10)
	exec(`INSERT INTO timing_points VALUES (?, ?, ?, 0, 400, 4, 2, 0, 60, 1, 0)`, base+1, folderID, base+1)
	exec(`INSERT INTO slider_data VALUES (?, ?, 'B', 1, 150.5)`, folderID, base+11)
	exec(`INSERT INTO slider_control_points VALUES (?, ?, 0, 80, 90)`, folderID, base+11)
	exec(`INSERT INTO slider_control_points VALUES (?, ?, 1, 120, 130)`, folderID, base+11)
	exec(`INSERT INTO storyboard_elements VALUES (?, ?, NULL, 'Background', 'sprite', 'Centre', 'bg.png', 320, 240, NULL, NULL, NULL, NULL, NULL)`, base+20, folderID)
	exec(`INSERT INTO storyboard_commands VALUES (?, ?, ?, NULL, 'F', 0, 0, 1000, '0', '1', NULL, NULL, NULL)`, base+30, folderID, base+20)
	exec(`INSERT INTO breaks VALUES (?, ?, 5000, 8000)`, folderID, base+1)
	exec(`INSERT INTO combo_colours VALUES (?, ?, 0, NULL, 255, 0, 0)`, folderID, base+1)
}

func TestFolderIDs(t *testing.T) {
	client := testClient(t)
	seedFolder(t, client, "100", 0)

	ids, err := client.FolderIDs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 1 || ids[0] != "100" {
		t.Errorf("unexpected folder ids: %v", ids)
	}
}

func TestLoadFolder(t *testing.T) {
	client := testClient(t)
	seedFolder(t, client, "100", 0)
	seedFolder(t, client, "200", 1000)

	ds, err := client.LoadFolder(context.Background(), "100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ds.Beatmaps) != 1 {
		t.Fatalf("expected 1 beatmap, got %d", len(ds.Beatmaps))
	}
	bm := ds.Beatmaps[0]
	if bm.FolderID != "100" || bm.OsuFile != "a.osu" || bm.Title != "Song" {
		t.Errorf("unexpected beatmap row: %+v", bm)
	}
	if !bm.WidescreenStoryboard || bm.StackLeniency != 0.7 {
		t.Errorf("unexpected beatmap flags: %+v", bm)
	}

	if len(ds.HitObjects) != 2 {
		t.Fatalf("expected 2 hit objects, got %d", len(ds.HitObjects))
	}
	// NULL end_time collapses to zero.
	if ds.HitObjects[0].EndTime != 0 {
		t.Errorf("expected zero end time, got %f", ds.HitObjects[0].EndTime)
	}

	if len(ds.HitSamples) != 1 {
		t.Fatalf("expected 1 hit sample, got %d", len(ds.HitSamples))
	}
	hs := ds.HitSamples[0]
	if hs.HitObjectID != 10 || hs.NormalSet != 3 || hs.Index != 1 || hs.Volume != 80 {
		t.Errorf("unexpected hit sample row: %+v", hs)
	}
	// NULL filename collapses to empty.
	if hs.Filename != "" {
		t.Errorf("expected empty filename, got %q", hs.Filename)
	}

	if len(ds.TimingPoints) != 1 || !ds.TimingPoints[0].Uninherited {
		t.Errorf("unexpected timing points: %+v", ds.TimingPoints)
	}
	if len(ds.SliderData) != 1 || ds.SliderData[0].Length != 150.5 {
		t.Errorf("unexpected slider data: %+v", ds.SliderData)
	}
	if len(ds.SliderControlPoints) != 2 {
		t.Errorf("expected 2 control points, got %d", len(ds.SliderControlPoints))
	}

	if len(ds.StoryboardElements) != 1 {
		t.Fatalf("expected 1 element, got %d", len(ds.StoryboardElements))
	}
	// NULL beatmap_id marks a folder-level element.
	if ds.StoryboardElements[0].BeatmapID != 0 {
		t.Errorf("expected folder-level element, got beatmap id %d", ds.StoryboardElements[0].BeatmapID)
	}

	if len(ds.StoryboardCommands) != 1 || ds.StoryboardCommands[0].ParentID != 0 {
		t.Errorf("unexpected commands: %+v", ds.StoryboardCommands)
	}
	if len(ds.Breaks) != 1 || len(ds.ComboColours) != 1 {
		t.Errorf("expected auxiliary rows, got breaks=%d colours=%d", len(ds.Breaks), len(ds.ComboColours))
	}
}

func TestLoadFolder_UnknownFolderIsEmpty(t *testing.T) {
	client := testClient(t)
	seedFolder(t, client, "100", 0)

	ds, err := client.LoadFolder(context.Background(), "999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ds.Beatmaps) != 0 {
		t.Errorf("expected no rows, got %d beatmaps", len(ds.Beatmaps))
	}
}

// In-memory databases ignore the journal mode pragma, so this needs a real
// file.
func TestNew_EnablesWAL(t *testing.T) {
	ctx := context.Background()

	client, err := New(ctx, "sqlite://"+filepath.Join(t.TempDir(), "dataset.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { client.Close(ctx) })

	var mode string
	if err := client.db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("reading journal mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("expected wal journal mode, got %q", mode)
	}
}

func TestParseDSN(t *testing.T) {
	cases := []struct {
		name    string
		dsn     string
		want    string
		wantErr bool
	}{
		{"memory", "sqlite://:memory:", ":memory:", false},
		{"relative path", "sqlite://dataset.db", "./dataset.db", false},
		{"absolute path", "sqlite:///var/data/dataset.db", "/var/data/dataset.db", false},
		{"query preserved", "sqlite://dataset.db?mode=ro", "./dataset.db?mode=ro", false},
		{"wrong scheme", "postgres://localhost", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseDSN(tc.dsn)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
