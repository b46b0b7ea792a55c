package overlay

import (
	"StaidreptGolang/internal/entity"
	"StaidreptGolang/pkg/geometry"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	gridLines      = 8
	gridWidth      = 2
	axisWidth      = 4
	referenceWidth = 2
	segmentWidth   = 4
	markerRadius   = 8

	labelOffsetX = 25
	labelOffsetY = -22

	// NoPoseWarning is drawn near the top of the frame when the detector
	// finds no subject.
	NoPoseWarning = "No pose detected!"
)

var (
	gridColor      = color.NRGBA{160, 160, 160, 255}
	axisColor      = color.NRGBA{0, 255, 0, 255}
	referenceColor = color.NRGBA{255, 255, 255, 255}
	labelColor     = color.NRGBA{0, 0, 0, 255}
	outlineColor   = color.NRGBA{255, 255, 255, 255}
	warningColor   = color.NRGBA{255, 0, 0, 255}

	// One stable color per segment, in segment order.
	segmentColors = map[string]color.NRGBA{
		"Shoulders": {255, 0, 0, 255},
		"Pelvis":    {0, 128, 255, 255},
		"Knees":     {0, 255, 128, 255},
		"Ankles":    {255, 128, 0, 255},
	}
)

// Annotate draws the full measurement overlay onto img in place. Drawing is
// append-only and ordered: grid, center axis, then either the no-detection
// warning (nil set) or the per-segment reference lines, measurement lines,
// markers and angle labels. A malformed segment is skipped without
// disturbing the rest of the overlay.
func Annotate(img *image.NRGBA, set *entity.LandmarkSet) {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	drawGrid(img, w, h)
	drawLine(img, geometry.Point{X: w / 2, Y: 0}, geometry.Point{X: w / 2, Y: h}, axisColor, axisWidth)

	if set == nil {
		drawOutlinedText(img, w/2-100, 20, NoPoseWarning, warningColor)
		return
	}

	for _, seg := range entity.PostureSegments() {
		drawSegment(img, set, seg, w, h)
	}
}

func drawGrid(img *image.NRGBA, w, h int) {
	for i := 0; i <= gridLines; i++ {
		x := i * w / gridLines
		drawLine(img, geometry.Point{X: x, Y: 0}, geometry.Point{X: x, Y: h}, gridColor, gridWidth)
	}
	for i := 0; i <= gridLines; i++ {
		y := i * h / gridLines
		drawLine(img, geometry.Point{X: 0, Y: y}, geometry.Point{X: w, Y: y}, gridColor, gridWidth)
	}
}

func drawSegment(img *image.NRGBA, set *entity.LandmarkSet, seg entity.SegmentPair, w, h int) {
	defer func() {
		// A single bad segment must never blank the whole overlay.
		_ = recover()
	}()

	left, ok := set.At(seg.LeftIndex)
	if !ok {
		return
	}
	right, ok := set.At(seg.RightIndex)
	if !ok {
		return
	}

	p1 := geometry.LandmarkToPixel(left.X, left.Y, w, h)
	p2 := geometry.LandmarkToPixel(right.X, right.Y, w, h)
	col := segmentColors[seg.Label]

	centerX := w / 2
	drawLine(img, geometry.Point{X: centerX, Y: p1.Y}, geometry.Point{X: centerX, Y: p2.Y}, referenceColor, referenceWidth)

	drawLine(img, p1, p2, col, segmentWidth)
	fillCircle(img, p1, markerRadius, col)
	fillCircle(img, p2, markerRadius, col)

	mid := geometry.Midpoint(p1, p2)
	label := fmt.Sprintf("%.0f°", geometry.AbsAngle(p1, p2))
	drawOutlinedText(img, centerX+labelOffsetX, mid.Y+labelOffsetY, label, labelColor)
}

// drawLine stamps a width-thick line between two pixel points, clipped to
// the image bounds.
func drawLine(img *image.NRGBA, p1, p2 geometry.Point, col color.NRGBA, width int) {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y

	steps := absInt(dx)
	if absInt(dy) > steps {
		steps = absInt(dy)
	}
	if steps == 0 {
		stamp(img, p1.X, p1.Y, col, width)
		return
	}

	for i := 0; i <= steps; i++ {
		x := p1.X + dx*i/steps
		y := p1.Y + dy*i/steps
		stamp(img, x, y, col, width)
	}
}

// stamp fills a width x width block centered on (x, y).
func stamp(img *image.NRGBA, x, y int, col color.NRGBA, width int) {
	half := width / 2
	for oy := -half; oy < width-half; oy++ {
		for ox := -half; ox < width-half; ox++ {
			setClipped(img, x+ox, y+oy, col)
		}
	}
}

func fillCircle(img *image.NRGBA, c geometry.Point, radius int, col color.NRGBA) {
	for oy := -radius; oy <= radius; oy++ {
		for ox := -radius; ox <= radius; ox++ {
			if ox*ox+oy*oy <= radius*radius {
				setClipped(img, c.X+ox, c.Y+oy, col)
			}
		}
	}
}

func setClipped(img *image.NRGBA, x, y int, col color.NRGBA) {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		img.SetNRGBA(x, y, col)
	}
}

// drawOutlinedText renders text with a one-pixel outline pass so labels stay
// legible over any background. (x, y) is the top-left corner of the text box.
func drawOutlinedText(img *image.NRGBA, x, y int, text string, col color.NRGBA) {
	baseline := y + basicfont.Face7x13.Ascent
	for oy := -1; oy <= 1; oy++ {
		for ox := -1; ox <= 1; ox++ {
			if ox == 0 && oy == 0 {
				continue
			}
			drawText(img, x+ox, baseline+oy, text, outlineColor)
		}
	}
	drawText(img, x, baseline, text, col)
}

func drawText(img *image.NRGBA, x, y int, text string, col color.NRGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
