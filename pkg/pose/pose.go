package pose

import (
	"StaidreptGolang/internal/entity"
	"errors"

	"golang.org/x/net/context"
)

// ErrNoPoseDetected is the detector's explicit "no subject found" outcome.
// It is a valid result, not a pipeline failure.
var ErrNoPoseDetected = errors.New("no pose detected")

// Detector is the landmark provider contract: one JPEG frame in, either a
// landmark set or ErrNoPoseDetected out. Any other error is a provider
// fault; callers degrade it to the no-detection outcome.
type Detector interface {
	Detect(ctx context.Context, frame []byte) (*entity.LandmarkSet, error)
	Close()
}

// detectorResponse is the wire payload returned by the pose-estimation
// service for one frame.
type detectorResponse struct {
	Detected  bool              `json:"detected"`
	Landmarks []entity.Landmark `json:"landmarks"`
	Error     string            `json:"error,omitempty"`
}
