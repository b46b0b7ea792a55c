package entity

// MediaPipe-style 33-point body landmark numbering. Only the left/right
// pairs below are consumed by the posture pipeline.
const (
	LandmarkLeftShoulder  = 11
	LandmarkRightShoulder = 12
	LandmarkLeftHip       = 23
	LandmarkRightHip      = 24
	LandmarkLeftKnee      = 25
	LandmarkRightKnee     = 26
	LandmarkLeftAnkle     = 27
	LandmarkRightAnkle    = 28

	LandmarkCount = 33
)

// Landmark is one anatomical point in normalized [0,1] image coordinates
// with the detector's visibility score.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Visibility float64 `json:"visibility"`
}

// LandmarkSet is the detector output for one frame, indexed by the fixed
// anatomical numbering. Read-only after detection.
type LandmarkSet struct {
	Landmarks []Landmark `json:"landmarks"`
}

// At returns the landmark at idx, reporting false when the set is missing
// that index.
func (s *LandmarkSet) At(idx int) (Landmark, bool) {
	if s == nil || idx < 0 || idx >= len(s.Landmarks) {
		return Landmark{}, false
	}
	return s.Landmarks[idx], true
}

// SegmentPair names one measured left/right body segment by its landmark
// indices. Static configuration, not request state.
type SegmentPair struct {
	Label      string
	LeftIndex  int
	RightIndex int
}

// PostureSegments returns the four measured segments in their fixed
// processing and drawing order.
func PostureSegments() []SegmentPair {
	return []SegmentPair{
		{Label: "Shoulders", LeftIndex: LandmarkLeftShoulder, RightIndex: LandmarkRightShoulder},
		{Label: "Pelvis", LeftIndex: LandmarkLeftHip, RightIndex: LandmarkRightHip},
		{Label: "Knees", LeftIndex: LandmarkLeftKnee, RightIndex: LandmarkRightKnee},
		{Label: "Ankles", LeftIndex: LandmarkLeftAnkle, RightIndex: LandmarkRightAnkle},
	}
}
