package encode

import (
	"strings"
	"testing"

	"osurebuild/internal/storyboard"
)

func TestStoryboard_LayerBanners(t *testing.T) {
	g := &storyboard.Graph{
		Elements: []storyboard.Element{
			{Layer: "Background", Type: "sprite", Origin: "Centre", Path: "bg.png", X: 320, Y: 240},
		},
	}
	out := string(Storyboard(g))

	for _, banner := range []string{
		"//Storyboard Layer 0 (Background)",
		"//Storyboard Layer 1 (Fail)",
		"//Storyboard Layer 2 (Pass)",
		"//Storyboard Layer 3 (Foreground)",
		"//Storyboard Sound Samples",
	} {
		if !strings.Contains(out, banner+"\r\n") {
			t.Errorf("missing banner %q in:\n%s", banner, out)
		}
	}
	if strings.Contains(out, "//Storyboard Layer 4 (Overlay)") {
		t.Error("overlay banner written for a storyboard that never uses it")
	}
}

func TestStoryboard_OverlayBannerWhenUsed(t *testing.T) {
	g := &storyboard.Graph{
		Elements: []storyboard.Element{
			{Layer: "Overlay", Type: "sprite", Origin: "Centre", Path: "top.png"},
		},
	}
	out := string(Storyboard(g))
	if !strings.Contains(out, "//Storyboard Layer 4 (Overlay)\r\n") {
		t.Errorf("missing overlay banner in:\n%s", out)
	}
}

func TestStoryboard_SpriteAndCommands(t *testing.T) {
	g := &storyboard.Graph{
		Elements: []storyboard.Element{
			{
				Layer: "Background", Type: "sprite", Origin: "Centre", Path: "bg.png", X: 320, Y: 240,
				Commands: []storyboard.Node{
					{Command: storyboard.Command{Type: storyboard.CommandFade, Easing: 0, StartTime: 0, EndTime: 1000, StartValue: "0", EndValue: "1"}},
				},
			},
		},
	}
	out := string(Storyboard(g))

	if !strings.Contains(out, "Sprite,Background,Centre,\"bg.png\",320,240\r\n") {
		t.Errorf("missing sprite line in:\n%s", out)
	}
	if !strings.Contains(out, " F,0,0,1000,0,1\r\n") {
		t.Errorf("missing fade command in:\n%s", out)
	}
}

func TestStoryboard_CollapsesEqualValues(t *testing.T) {
	g := &storyboard.Graph{
		Elements: []storyboard.Element{
			{
				Layer: "Background", Type: "sprite", Origin: "Centre", Path: "bg.png",
				Commands: []storyboard.Node{
					{Command: storyboard.Command{Type: storyboard.CommandFade, StartTime: 0, EndTime: 500, StartValue: "1", EndValue: "1"}},
				},
			},
		},
	}
	out := string(Storyboard(g))
	if !strings.Contains(out, " F,0,0,500,1\r\n") {
		t.Errorf("expected collapsed value shorthand in:\n%s", out)
	}
}

func TestStoryboard_NestedCommandIndent(t *testing.T) {
	g := &storyboard.Graph{
		Elements: []storyboard.Element{
			{
				Layer: "Background", Type: "sprite", Origin: "Centre", Path: "bg.png",
				Commands: []storyboard.Node{
					{
						Command: storyboard.Command{Type: storyboard.CommandLoop, StartTime: 1000, LoopCount: 3},
						Children: []storyboard.Node{
							{Command: storyboard.Command{Type: storyboard.CommandFade, StartTime: 0, EndTime: 500, StartValue: "0", EndValue: "1"}},
						},
					},
				},
			},
		},
	}
	out := string(Storyboard(g))

	if !strings.Contains(out, "\r\n L,1000,3\r\n") {
		t.Errorf("missing loop line in:\n%s", out)
	}
	// Children indent one level deeper, times untouched.
	if !strings.Contains(out, "\r\n  F,0,0,500,0,1\r\n") {
		t.Errorf("missing indented child in:\n%s", out)
	}
}

func TestStoryboard_TriggerLine(t *testing.T) {
	g := &storyboard.Graph{
		Elements: []storyboard.Element{
			{
				Layer: "Foreground", Type: "sprite", Origin: "Centre", Path: "fg.png",
				Commands: []storyboard.Node{
					{Command: storyboard.Command{Type: storyboard.CommandTrigger, StartTime: 0, EndTime: 10000, TriggerName: "HitSoundClap"}},
					{Command: storyboard.Command{Type: storyboard.CommandTrigger, StartTime: 0, EndTime: 10000, TriggerName: "HitSoundWhistle", GroupNumber: 2}},
				},
			},
		},
	}
	out := string(Storyboard(g))

	if !strings.Contains(out, " T,HitSoundClap,0,10000\r\n") {
		t.Errorf("missing trigger line in:\n%s", out)
	}
	if !strings.Contains(out, " T,HitSoundWhistle,0,10000,2\r\n") {
		t.Errorf("missing grouped trigger line in:\n%s", out)
	}
}

func TestStoryboard_AnimationLine(t *testing.T) {
	g := &storyboard.Graph{
		Elements: []storyboard.Element{
			{Layer: "Pass", Type: "animation", Origin: "TopLeft", Path: "anim.png", X: 10, Y: 20, FrameCount: 8, FrameDelay: 41.7, LoopType: "LoopForever"},
		},
	}
	out := string(Storyboard(g))
	if !strings.Contains(out, "Animation,Pass,TopLeft,\"anim.png\",10,20,8,41.7,LoopForever\r\n") {
		t.Errorf("missing animation line in:\n%s", out)
	}
}

// Storyboard paths use backslash separators and are written verbatim between
// plain quotes, never escaped.
func TestStoryboard_BackslashPathsVerbatim(t *testing.T) {
	g := &storyboard.Graph{
		Elements: []storyboard.Element{
			{Layer: "Background", Type: "sprite", Origin: "Centre", Path: `sb\bg.png`},
			{Layer: "Pass", Type: "animation", Origin: "Centre", Path: `sb\anim.png`, FrameCount: 2, FrameDelay: 50, LoopType: "LoopOnce"},
			{Layer: "Foreground", Type: "sample", Path: `sb\clap.wav`, Time: 100, Volume: 70},
		},
	}
	out := string(Storyboard(g))

	for _, want := range []string{
		"Sprite,Background,Centre,\"sb\\bg.png\",0,0\r\n",
		"Animation,Pass,Centre,\"sb\\anim.png\",0,0,2,50,LoopOnce\r\n",
		"Sample,100,3,\"sb\\clap.wav\",70\r\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing verbatim path line %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, `\\`) {
		t.Errorf("a path was escaped in:\n%s", out)
	}
}

func TestStoryboard_SampleLine(t *testing.T) {
	g := &storyboard.Graph{
		Elements: []storyboard.Element{
			{Layer: "Foreground", Type: "sample", Path: "clap.wav", Time: 1234.9, Volume: 60},
		},
	}
	out := string(Storyboard(g))
	if !strings.Contains(out, "Sample,1234,3,\"clap.wav\",60\r\n") {
		t.Errorf("missing sample line in:\n%s", out)
	}
}
