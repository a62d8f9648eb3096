// Package storyboard joins element and command rows back into the ordered
// element/command graph the flat tables discarded, including the nested
// command trees owned by loop and trigger commands.
package storyboard

import (
	"fmt"

	"osurebuild/internal/dataset"
	"osurebuild/internal/index"
)

// Command types as stored in the storyboard_commands table, matching the
// storyboard grammar's own codes.
const (
	CommandMove        = "M"
	CommandMoveX       = "MX"
	CommandMoveY       = "MY"
	CommandFade        = "F"
	CommandScale       = "S"
	CommandVectorScale = "V"
	CommandRotate      = "R"
	CommandColour      = "C"
	CommandParameter   = "P"
	CommandLoop        = "L"
	CommandTrigger     = "T"
)

// Owner identifies whose storyboard rows to assemble: a folder's standalone
// storyboard, or the elements embedded in one difficulty.
type Owner struct {
	FolderID  string
	BeatmapID int64
}

// Graph is an assembled storyboard: layer-ordered elements, each with its
// start-time-ordered command forest.
type Graph struct {
	Elements []Element
}

type Element struct {
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

	Commands []Node
}

// Node is one command in an element's tree. Children is nil for plain
// commands; loop and trigger commands carry their ordered child list, with
// child times still relative to the parent's start. No iteration expansion
// happens here: that is the encoder's and the client's business.
type Node struct {
	Command  Command
	Children []Node
}

// Container reports whether the node owns child commands.
func (n Node) Container() bool {
	return n.Command.Type == CommandLoop || n.Command.Type == CommandTrigger
}

type Command struct {
	Type      string
	Easing    int
	StartTime float64
	EndTime   float64

	StartValue string
	EndValue   string

	LoopCount   int
	TriggerName string
	GroupNumber int
}

// SkippedCommand reports one command dropped during assembly.
type SkippedCommand struct {
	CommandID int64
	Reason    string
}

func (s SkippedCommand) Error() string {
	return fmt.Sprintf("skipped storyboard command %d: %s", s.CommandID, s.Reason)
}

// Assemble builds the storyboard graph for an owner. It returns nil when the
// owner has no storyboard rows; absence is not an error.
func Assemble(owner Owner, idx *index.Indices) (*Graph, []SkippedCommand) {
	var rows []*dataset.StoryboardElementRow
	if owner.BeatmapID != 0 {
		rows = idx.BeatmapElements[owner.BeatmapID]
	} else {
		rows = idx.FolderElements[owner.FolderID]
	}
	if len(rows) == 0 {
		return nil, nil
	}

	g := &Graph{Elements: make([]Element, 0, len(rows))}
	var skipped []SkippedCommand

	for _, row := range rows {
		elem := Element{
			Layer:      row.Layer,
			Type:       row.Type,
			Origin:     row.Origin,
			Path:       row.Path,
			X:          row.X,
			Y:          row.Y,
			FrameCount: row.FrameCount,
			FrameDelay: row.FrameDelay,
			LoopType:   row.LoopType,
			Time:       row.Time,
			Volume:     row.Volume,
		}
		for _, cmd := range idx.ElementCommands[row.ID] {
			node, nodeSkipped := buildNode(cmd, idx)
			skipped = append(skipped, nodeSkipped...)
			elem.Commands = append(elem.Commands, node)
		}
		g.Elements = append(g.Elements, elem)
	}

	return g, skipped
}

// buildNode converts one command row, pulling children from the index for
// loop and trigger commands. Every row has exactly one parent, so reachable
// rows form a tree and the recursion terminates.
func buildNode(row *dataset.StoryboardCommandRow, idx *index.Indices) (Node, []SkippedCommand) {
	node := Node{Command: Command{
		Type:        row.Type,
		Easing:      row.Easing,
		StartTime:   row.StartTime,
		EndTime:     row.EndTime,
		StartValue:  row.StartValue,
		EndValue:    row.EndValue,
		LoopCount:   row.LoopCount,
		TriggerName: row.TriggerName,
		GroupNumber: row.GroupNumber,
	}}

	if row.Type != CommandLoop && row.Type != CommandTrigger {
		var skipped []SkippedCommand
		for _, child := range idx.ChildCommands[row.ID] {
			skipped = append(skipped, SkippedCommand{CommandID: child.ID, Reason: "parent command is not a loop or trigger"})
		}
		return node, skipped
	}

	var skipped []SkippedCommand
	for _, child := range idx.ChildCommands[row.ID] {
		childNode, childSkipped := buildNode(child, idx)
		skipped = append(skipped, childSkipped...)
		node.Children = append(node.Children, childNode)
	}

	return node, skipped
}
