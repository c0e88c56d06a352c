package scene

import (
	"microraster/internal/mathutil"
	"microraster/internal/raster"
)

// Op names a scene command.
type Op string

const (
	OpRect       Op = "rect"
	OpText       Op = "text"
	OpIcon       Op = "icon"
	OpClip       Op = "clip"
	OpClear      Op = "clear"
	OpLine       Op = "line"
	OpWuLine     Op = "wuline"
	OpTriangle   Op = "triangle"
	OpCircle     Op = "circle"
	OpFillCircle Op = "fillcircle"
)

// Scene is one frame's worth of draw commands.
type Scene struct {
	Name       string
	Width      int // 0 = caller's default
	Height     int
	Background *raster.Color // nil = leave the init clear
	Atlas      string        // atlas image path; "" = caller's atlas
	Commands   []Command
}

// Command is one decoded draw call. Only the fields its Op uses are set.
type Command struct {
	Op     Op
	Rect   mathutil.Rect
	Pos    mathutil.Vec2 // text origin, line start, circle center
	To     mathutil.Vec2 // line end
	Points [3]mathutil.Vec2
	Colors [3]raster.Color // Colors[0] is the color of single-color ops
	Text   string
	Icon   int
	Radius int
}
