package encode

import (
	"fmt"
	"strings"

	"osurebuild/internal/storyboard"
)

// Banner order follows the grammar's fixed layer numbering. The Overlay
// banner is only written when the storyboard uses it, matching how the
// client saves files.
var storyboardLayers = []struct {
	Name     string
	Banner   string
	Optional bool
}{
	{"Background", "//Storyboard Layer 0 (Background)", false},
	{"Fail", "//Storyboard Layer 1 (Fail)", false},
	{"Pass", "//Storyboard Layer 2 (Pass)", false},
	{"Foreground", "//Storyboard Layer 3 (Foreground)", false},
	{"Overlay", "//Storyboard Layer 4 (Overlay)", true},
}

var layerNumbers = map[string]int{
	"Background": 0,
	"Fail":       1,
	"Pass":       2,
	"Foreground": 3,
	"Overlay":    4,
}

// Storyboard renders a standalone .osb file.
func Storyboard(g *storyboard.Graph) []byte {
	var b strings.Builder
	b.WriteString("[Events]\r\n")
	b.WriteString("//Background and Video events\r\n")
	writeStoryboardLayers(&b, g)
	return []byte(b.String())
}

// writeStoryboardLayers writes sprite/animation elements grouped under their
// layer banners, then sound samples under theirs. Within a layer, element
// order is the graph's order.
func writeStoryboardLayers(b *strings.Builder, g *storyboard.Graph) {
	if g == nil {
		return
	}

	for _, layer := range storyboardLayers {
		if layer.Optional && !layerUsed(g, layer.Name) {
			continue
		}
		b.WriteString(layer.Banner)
		b.WriteString("\r\n")
		for i := range g.Elements {
			elem := &g.Elements[i]
			if elem.Layer != layer.Name || elem.Type == "sample" {
				continue
			}
			writeElement(b, elem)
		}
	}

	b.WriteString("//Storyboard Sound Samples\r\n")
	for i := range g.Elements {
		elem := &g.Elements[i]
		if elem.Type != "sample" {
			continue
		}
		fmt.Fprintf(b, "Sample,%d,%d,\"%s\",%d\r\n", ms(elem.Time), layerNumbers[elem.Layer], elem.Path, elem.Volume)
	}
}

func writeElement(b *strings.Builder, elem *storyboard.Element) {
	switch elem.Type {
	case "animation":
		fmt.Fprintf(b, "Animation,%s,%s,\"%s\",%s,%s,%d,%s,%s\r\n",
			elem.Layer, elem.Origin, elem.Path, num(elem.X), num(elem.Y),
			elem.FrameCount, num(elem.FrameDelay), elem.LoopType)
	default:
		fmt.Fprintf(b, "Sprite,%s,%s,\"%s\",%s,%s\r\n",
			elem.Layer, elem.Origin, elem.Path, num(elem.X), num(elem.Y))
	}
	for _, node := range elem.Commands {
		writeCommand(b, node, 1)
	}
}

// writeCommand writes one command line at the given nesting depth; children
// of loops and triggers indent one level deeper, their times left relative
// to the parent start.
func writeCommand(b *strings.Builder, node storyboard.Node, depth int) {
	indent := strings.Repeat(" ", depth)
	cmd := node.Command

	switch cmd.Type {
	case storyboard.CommandLoop:
		fmt.Fprintf(b, "%sL,%d,%d\r\n", indent, ms(cmd.StartTime), cmd.LoopCount)
	case storyboard.CommandTrigger:
		if cmd.GroupNumber != 0 {
			fmt.Fprintf(b, "%sT,%s,%d,%d,%d\r\n", indent, cmd.TriggerName, ms(cmd.StartTime), ms(cmd.EndTime), cmd.GroupNumber)
		} else {
			fmt.Fprintf(b, "%sT,%s,%d,%d\r\n", indent, cmd.TriggerName, ms(cmd.StartTime), ms(cmd.EndTime))
		}
	default:
		fmt.Fprintf(b, "%s%s,%d,%d,%d,%s\r\n", indent, cmd.Type, cmd.Easing,
			ms(cmd.StartTime), ms(cmd.EndTime), commandValues(cmd.StartValue, cmd.EndValue))
	}

	for _, child := range node.Children {
		writeCommand(b, child, depth+1)
	}
}

// commandValues collapses identical start and end values into the grammar's
// single-value shorthand.
func commandValues(start, end string) string {
	if end == "" || start == end {
		return start
	}
	return start + "," + end
}

func layerUsed(g *storyboard.Graph, layer string) bool {
	for i := range g.Elements {
		if g.Elements[i].Layer == layer && g.Elements[i].Type != "sample" {
			return true
		}
	}
	return false
}
