package overlay

import (
	"StaidreptGolang/internal/entity"
	"image"
	"image/color"
	"testing"
)

func createCanvas(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{30, 30, 30, 255})
		}
	}
	return img
}

func fullLandmarkSet() *entity.LandmarkSet {
	landmarks := make([]entity.Landmark, entity.LandmarkCount)
	place := func(idx int, x, y float64) {
		landmarks[idx] = entity.Landmark{X: x, Y: y, Visibility: 0.9}
	}

	place(entity.LandmarkLeftShoulder, 0.65, 0.30)
	place(entity.LandmarkRightShoulder, 0.35, 0.30)
	place(entity.LandmarkLeftHip, 0.60, 0.50)
	place(entity.LandmarkRightHip, 0.40, 0.52)
	place(entity.LandmarkLeftKnee, 0.58, 0.65)
	place(entity.LandmarkRightKnee, 0.42, 0.65)
	place(entity.LandmarkLeftAnkle, 0.57, 0.78)
	place(entity.LandmarkRightAnkle, 0.43, 0.78)

	return &entity.LandmarkSet{Landmarks: landmarks}
}

func countColor(img *image.NRGBA, col color.NRGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y) == col {
				n++
			}
		}
	}
	return n
}

func TestAnnotate_AllSegmentsDrawn(t *testing.T) {
	img := createCanvas(400, 400)

	Annotate(img, fullLandmarkSet())

	for label, col := range segmentColors {
		if countColor(img, col) == 0 {
			t.Errorf("segment %s: no pixels drawn in its color %v", label, col)
		}
	}

	if countColor(img, referenceColor) == 0 {
		t.Error("no white reference line pixels drawn")
	}
	if countColor(img, gridColor) == 0 {
		t.Error("no grid pixels drawn")
	}
}

func TestAnnotate_MarkersSitOnTopOfLines(t *testing.T) {
	img := createCanvas(400, 400)

	Annotate(img, fullLandmarkSet())

	// Left shoulder marker center at (0.65*400, 0.30*400).
	got := img.NRGBAAt(260, 120)
	if got != segmentColors["Shoulders"] {
		t.Errorf("marker center: got %v, want %v", got, segmentColors["Shoulders"])
	}
}

func TestAnnotate_CenterAxisAboveGrid(t *testing.T) {
	img := createCanvas(400, 400)

	Annotate(img, fullLandmarkSet())

	// The axis is drawn after the grid and nothing else reaches the bottom
	// of this fixture, so the center column bottom must stay green.
	if got := img.NRGBAAt(200, 398); got != axisColor {
		t.Errorf("center axis pixel: got %v, want %v", got, axisColor)
	}

	// Vertical grid line away from any segment drawing.
	if got := img.NRGBAAt(50, 200); got != gridColor {
		t.Errorf("grid pixel: got %v, want %v", got, gridColor)
	}
}

func TestAnnotate_NoDetection(t *testing.T) {
	img := createCanvas(400, 400)

	Annotate(img, nil)

	if countColor(img, gridColor) == 0 {
		t.Error("grid must be drawn even without a subject")
	}
	if got := img.NRGBAAt(200, 398); got != axisColor {
		t.Errorf("center axis pixel: got %v, want %v", got, axisColor)
	}

	warning := countColor(img, warningColor)
	if warning == 0 {
		t.Error("warning label must be drawn when no subject is detected")
	}

	for _, label := range []string{"Pelvis", "Knees", "Ankles"} {
		if countColor(img, segmentColors[label]) != 0 {
			t.Errorf("segment %s must not be drawn without a subject", label)
		}
	}

	// The warning text sits near the top of the frame.
	for y := 60; y < 400; y++ {
		for x := 0; x < 400; x++ {
			if img.NRGBAAt(x, y) == warningColor {
				t.Fatalf("warning pixel found at (%d,%d), below the label area", x, y)
			}
		}
	}
}

func TestAnnotate_PartialLandmarksSkipSegments(t *testing.T) {
	img := createCanvas(400, 400)

	// Only shoulder indices are present; the other pairs must be skipped
	// without aborting the overlay.
	set := fullLandmarkSet()
	set.Landmarks = set.Landmarks[:entity.LandmarkRightShoulder+1]

	Annotate(img, set)

	if countColor(img, segmentColors["Shoulders"]) == 0 {
		t.Error("shoulder segment should still be drawn")
	}
	for _, label := range []string{"Pelvis", "Knees", "Ankles"} {
		if countColor(img, segmentColors[label]) != 0 {
			t.Errorf("segment %s must be skipped when its landmarks are missing", label)
		}
	}
}

func TestAnnotate_OutOfRangeLandmarksDoNotPanic(t *testing.T) {
	img := createCanvas(200, 200)

	set := fullLandmarkSet()
	set.Landmarks[entity.LandmarkLeftHip] = entity.Landmark{X: 5.0, Y: -3.0}
	set.Landmarks[entity.LandmarkRightHip] = entity.Landmark{X: -2.0, Y: 9.0}

	Annotate(img, set)

	if countColor(img, segmentColors["Shoulders"]) == 0 {
		t.Error("well-formed segments should still be drawn")
	}
}
