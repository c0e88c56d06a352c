package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"microraster/internal/atlas"
	"microraster/internal/batch"
	"microraster/internal/mathutil"
	"microraster/internal/postprocess"
	"microraster/internal/raster"
)

// Palette of the demo UI.
var (
	colText       = raster.RGBA(230, 230, 230, 255)
	colBorder     = raster.RGBA(25, 25, 25, 255)
	colWindow     = raster.RGBA(50, 50, 50, 255)
	colTitle      = raster.RGBA(25, 25, 25, 255)
	colTitleText  = raster.RGBA(240, 240, 240, 255)
	colPanel      = raster.RGBA(0, 0, 0, 0x40)
	colButton     = raster.RGBA(75, 75, 75, 255)
	colButtonFace = raster.RGBA(95, 95, 95, 255)
	colBase       = raster.RGBA(30, 30, 30, 255)
)

const (
	titleHeight = 24
	padding     = 5
)

type ui struct {
	r *raster.Renderer
}

func (u ui) window(rect mathutil.Rect, title string) mathutil.Rect {
	u.r.DrawRect(mathutil.R(rect.X-1, rect.Y-1, rect.W+2, rect.H+2), colBorder)
	u.r.DrawRect(rect, colWindow)

	tr := mathutil.R(rect.X, rect.Y, rect.W, titleHeight)
	u.r.DrawRect(tr, colTitle)
	u.label(mathutil.R(tr.X+padding, tr.Y, tr.W, tr.H), title, colTitleText)
	u.r.DrawIcon(atlas.IconClose, mathutil.R(tr.MaxX()-tr.H, tr.Y, tr.H, tr.H), colTitleText)

	return mathutil.R(rect.X+padding, rect.Y+titleHeight+padding, rect.W-2*padding, rect.H-titleHeight-2*padding)
}

func (u ui) label(rect mathutil.Rect, text string, c raster.Color) {
	y := rect.Y + (rect.H-u.r.TextHeight())/2
	u.r.DrawText(text, mathutil.V(rect.X, y), c)
}

func (u ui) button(rect mathutil.Rect, text string) {
	u.r.DrawRect(rect, colButton)
	u.r.DrawRect(mathutil.R(rect.X+1, rect.Y+1, rect.W-2, rect.H-2), colButtonFace)
	w := u.r.TextWidth(text, -1)
	u.label(mathutil.R(rect.X+(rect.W-w)/2, rect.Y, w, rect.H), text, colText)
}

func (u ui) header(rect mathutil.Rect, text string, expanded bool) {
	u.r.DrawRect(rect, colButton)
	icon := atlas.IconCollapsed
	if expanded {
		icon = atlas.IconExpanded
	}
	u.r.DrawIcon(icon, mathutil.R(rect.X, rect.Y, rect.H, rect.H), colText)
	u.label(mathutil.R(rect.X+rect.H, rect.Y, rect.W-rect.H, rect.H), text, colText)
}

func (u ui) checkbox(rect mathutil.Rect, text string, checked bool) {
	box := mathutil.R(rect.X, rect.Y, rect.H, rect.H)
	u.r.DrawRect(box, colBase)
	if checked {
		u.r.DrawIcon(atlas.IconCheck, box, colText)
	}
	u.label(mathutil.R(rect.X+rect.H+padding, rect.Y, rect.W-rect.H, rect.H), text, colText)
}

// wrapped draws text word-wrapped to rect's width, clipped to rect.
func (u ui) wrapped(rect mathutil.Rect, text string) {
	prev := u.r.ClipRect()
	u.r.SetClipRect(rect.Intersect(prev))
	defer u.r.SetClipRect(prev)

	y := rect.Y
	line := ""
	for _, word := range strings.Fields(text) {
		next := word
		if line != "" {
			next = line + " " + word
		}
		if line != "" && u.r.TextWidth(next, -1) > rect.W {
			u.r.DrawText(line, mathutil.V(rect.X, y), colText)
			y += u.r.TextHeight()
			next = word
		}
		line = next
	}
	if line != "" {
		u.r.DrawText(line, mathutil.V(rect.X, y), colText)
	}
}

func demoWindow(u ui, bg raster.Color) {
	body := u.window(mathutil.R(40, 40, 300, 450), "Demo Window")
	x, y, w := body.X, body.Y, body.W
	row := func(h int) mathutil.Rect {
		r := mathutil.R(x, y, w, h)
		y += h + padding
		return r
	}

	u.header(row(22), "Window Info", false)
	u.header(row(22), "Test Buttons", true)
	r := row(22)
	u.label(mathutil.R(r.X, r.Y, 86, r.H), "Test buttons 1:", colText)
	u.button(mathutil.R(r.X+90, r.Y, 90, r.H), "Button 1")
	u.button(mathutil.R(r.X+185, r.Y, r.W-185, r.H), "Button 2")
	r = row(22)
	u.label(mathutil.R(r.X, r.Y, 86, r.H), "Test buttons 2:", colText)
	u.button(mathutil.R(r.X+90, r.Y, 90, r.H), "Button 3")
	u.button(mathutil.R(r.X+185, r.Y, r.W-185, r.H), "Popup")

	u.header(row(22), "Tree and Text", true)
	tree := row(90)
	u.r.DrawRect(tree, colPanel)
	u.checkbox(mathutil.R(tree.X+4, tree.Y+4, 130, 20), "Checkbox 1", true)
	u.checkbox(mathutil.R(tree.X+4, tree.Y+28, 130, 20), "Checkbox 2", false)
	u.checkbox(mathutil.R(tree.X+4, tree.Y+52, 130, 20), "Checkbox 3", true)
	u.wrapped(mathutil.R(tree.X+145, tree.Y+2, tree.W-150, tree.H-4),
		"Lorem ipsum dolor sit amet, consectetur adipiscing elit. Maecenas lacinia, "+
			"sem eu lacinia molestie, mi risus faucibus ipsum, eu varius magna felis a nulla.")

	u.header(row(22), "Background Color", true)
	sw := row(74)
	u.label(mathutil.R(sw.X, sw.Y, 46, 24), "Red:", colText)
	u.label(mathutil.R(sw.X, sw.Y+25, 46, 24), "Green:", colText)
	u.label(mathutil.R(sw.X, sw.Y+50, 46, 24), "Blue:", colText)
	for i, v := range []uint8{bg.R, bg.G, bg.B} {
		track := mathutil.R(sw.X+50, sw.Y+i*25+2, sw.W-130, 20)
		u.r.DrawRect(track, colBase)
		thumb := track.X + int(v)*(track.W-10)/255
		u.r.DrawRect(mathutil.R(thumb, track.Y, 10, track.H), colButtonFace)
	}
	preview := mathutil.R(sw.MaxX()-74, sw.Y, 74, 74)
	u.r.DrawRect(preview, bg)
	hex := fmt.Sprintf("#%02X%02X%02X", bg.R, bg.G, bg.B)
	tw := u.r.TextWidth(hex, -1)
	u.label(mathutil.R(preview.X+(preview.W-tw)/2, preview.Y, tw, preview.H), hex, colText)
}

func logWindow(u ui) {
	body := u.window(mathutil.R(350, 40, 300, 200), "Log Window")
	panel := mathutil.R(body.X, body.Y, body.W, body.H-25-padding)
	u.r.DrawRect(panel, colPanel)
	u.wrapped(mathutil.R(panel.X+4, panel.Y+2, panel.W-8, panel.H-4),
		"Pressed button 1 Pressed button 3 caf\xc3\xa9 ok")
	input := mathutil.R(body.X, body.MaxY()-25, body.W-75, 25)
	u.r.DrawRect(input, colBase)
	u.button(mathutil.R(input.MaxX()+5, input.Y, 70, 25), "Submit")
}

func primitivesWindow(u ui) {
	body := u.window(mathutil.R(350, 260, 300, 230), "Primitives")
	cx, cy := body.X+body.W/2, body.Y+body.H/2

	// Spokes: aliased on the left half, anti-aliased on the right.
	for i := 0; i < 12; i++ {
		a := float64(i) * math.Pi / 6
		dx := int(math.Round(math.Cos(a) * 60))
		dy := int(math.Round(math.Sin(a) * 60))
		c := raster.RGBA(uint8(120+i*10), uint8(200-i*10), 220, 255)
		if dx < 0 {
			u.r.Line(cx-70, cy, cx-70+dx/2, cy+dy/2, c)
		} else {
			u.r.WuLine(cx+70, cy, cx+70+dx/2, cy+dy/2, c)
		}
	}

	u.r.Triangle(
		mathutil.V(cx-30, cy+70), raster.RGBA(255, 0, 0, 255),
		mathutil.V(cx, cy+10), raster.RGBA(0, 255, 0, 255),
		mathutil.V(cx+30, cy+70), raster.RGBA(0, 0, 255, 255),
	)
	// Wound the other way, so culled.
	u.r.Triangle(
		mathutil.V(cx-30, cy-70), colText,
		mathutil.V(cx, cy-10), colText,
		mathutil.V(cx+30, cy-70), colText,
	)

	u.r.FillCircle(mathutil.V(cx, cy-40), 22, raster.RGBA(200, 160, 40, 255))
	u.r.Circle(mathutil.V(cx, cy-40), 28, colText)
	u.r.Circle(mathutil.V(cx-70, cy), 34, raster.RGBA(120, 200, 220, 255))
	u.r.Circle(mathutil.V(cx+70, cy), 34, raster.RGBA(220, 200, 120, 255))
}

func main() {
	output := flag.String("o", "demo.webp", "Output path; the extension selects webp or png")
	width := flag.Int("width", 800, "Frame width")
	height := flag.Int("height", 600, "Frame height")
	scale := flag.Float64("scale", 1, "Output scale factor")
	strict := flag.Bool("strict", false, "Panic on sampling or atlas-id violations")
	verbose := flag.Bool("v", false, "Log renderer flushes to stderr")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	r := raster.New(raster.NewFrameBuffer(*width, *height), nil,
		raster.WithLogger(logger),
		raster.WithStrictSampling(*strict))

	bg := raster.RGBA(90, 95, 100, 255)
	r.Clear(bg)

	u := ui{r: r}
	demoWindow(u, bg)
	logWindow(u)
	primitivesWindow(u)
	r.Present()

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(*output)), ".")
	img := postprocess.Scale(r.FrameBuffer().NRGBA(), *scale)
	if err := batch.WriteImage(*output, format, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	st := r.Stats()
	fmt.Printf("Wrote %s (%dx%d, %d commands, %d flushes, %d skipped)\n",
		*output, img.Bounds().Dx(), img.Bounds().Dy(), st.Commands, st.Flushes, st.Skipped)
}
