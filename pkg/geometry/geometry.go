package geometry

import "math"

// Point is a pixel coordinate on the normalized image.
type Point struct {
	X int
	Y int
}

// SegmentAngle reports the signed deviation of the segment p1->p2 from
// horizontal, in degrees. A perfectly level segment is 0; a vertical one is
// +90 or -90 depending on direction. The intermediate value 90 - atan2 is
// wrapped into (-180, 180] before folding, and the result is rounded to one
// decimal. Degenerate or non-finite input yields 0.
func SegmentAngle(p1, p2 Point) float64 {
	dx := float64(p2.X - p1.X)
	dy := float64(p2.Y - p1.Y)

	degrees := math.Atan2(dy, dx) * 180 / math.Pi
	angle := 90 - degrees
	if angle > 180 {
		angle -= 360
	}
	if angle < -180 {
		angle += 360
	}

	tilt := 90 - math.Abs(angle)
	if math.IsNaN(tilt) || math.IsInf(tilt, 0) {
		return 0
	}

	return math.Round(tilt*10) / 10
}

// AbsAngle is the magnitude reported to callers; the sign from SegmentAngle
// carries the tilt direction and stays available internally.
func AbsAngle(p1, p2 Point) float64 {
	return math.Abs(SegmentAngle(p1, p2))
}

// LandmarkToPixel resolves normalized [0,1] landmark coordinates to pixel
// coordinates, truncating to integers.
func LandmarkToPixel(x, y float64, width, height int) Point {
	return Point{
		X: int(x * float64(width)),
		Y: int(y * float64(height)),
	}
}

// Midpoint is the integer midpoint of two pixel points.
func Midpoint(p1, p2 Point) Point {
	return Point{
		X: (p1.X + p2.X) / 2,
		Y: (p1.Y + p2.Y) / 2,
	}
}
