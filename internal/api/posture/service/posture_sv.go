package postureService

import (
	"StaidreptGolang/internal/api/posture"
	"StaidreptGolang/internal/entity"
	"StaidreptGolang/pkg/geometry"
	"StaidreptGolang/pkg/imageutil"
	"StaidreptGolang/pkg/log"
	"StaidreptGolang/pkg/overlay"
	"StaidreptGolang/pkg/pose"
	"errors"
	"image"

	"golang.org/x/net/context"
)

// AnalyzePosture runs the full pipeline for one uploaded photograph:
// decode -> normalize -> detect -> angle pass -> overlay pass -> encode.
// A missing subject is a valid outcome: the angles map degrades to a single
// error entry and the overlay to grid, axis and warning label.
func (s *postureService) AnalyzePosture(ctx context.Context, imageBytes []byte) (result *posture.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithFields(log.Fields{
				"request_id": log.GetRequestID(ctx),
				"panic":      r,
			}).Error("Recovered from panic in posture pipeline")
			result = nil
			err = posture.ErrInternalServerError
		}
	}()

	img, decodeErr := imageutil.DecodeRGB(imageBytes)
	if decodeErr != nil {
		s.log.WithFields(log.Fields{
			"request_id": log.GetRequestID(ctx),
			"error":      decodeErr.Error(),
		}).Warn("Uploaded bytes are not a decodable image")
		return nil, posture.ErrInvalidImage
	}

	img = imageutil.Normalize(img, imageutil.MaxWidth, imageutil.MaxHeight)

	set := s.detect(ctx, img)

	// Angle computation and overlay rendering are two independent passes
	// over the same detection result.
	angles := s.computeAngles(ctx, set, img.Bounds().Dx(), img.Bounds().Dy())
	overlay.Annotate(img, set)

	uri, encodeErr := imageutil.EncodeJPEGDataURI(img, imageutil.JPEGQuality)
	if encodeErr != nil {
		s.log.WithFields(log.Fields{
			"request_id": log.GetRequestID(ctx),
			"error":      encodeErr.Error(),
		}).Error("Failed to encode annotated image")
		return nil, posture.ErrEncodingFailed
	}

	return &posture.AnalysisResult{
		Image:  uri,
		Angles: angles,
		Status: posture.StatusSuccess,
	}, nil
}

// AnalyzeFrame is the minimal entry point used by the live websocket
// transport: same decode/normalize/detect/angle passes, no overlay.
func (s *postureService) AnalyzeFrame(ctx context.Context, frame []byte) (result *posture.FrameResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithFields(log.Fields{
				"request_id": log.GetRequestID(ctx),
				"panic":      r,
			}).Error("Recovered from panic in frame pipeline")
			result = nil
			err = posture.ErrInternalServerError
		}
	}()

	img, decodeErr := imageutil.DecodeRGB(frame)
	if decodeErr != nil {
		return nil, posture.ErrInvalidImage
	}

	img = imageutil.Normalize(img, imageutil.MaxWidth, imageutil.MaxHeight)
	set := s.detect(ctx, img)

	return &posture.FrameResult{
		Angles: s.computeAngles(ctx, set, img.Bounds().Dx(), img.Bounds().Dy()),
		Status: posture.StatusSuccess,
	}, nil
}

// detect runs the landmark provider on the normalized frame. Provider
// faults are contained here: they degrade to the no-detection outcome with
// the underlying error preserved in the logs.
func (s *postureService) detect(ctx context.Context, img *image.NRGBA) *entity.LandmarkSet {
	frame, err := imageutil.EncodeJPEG(img, imageutil.JPEGQuality)
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": log.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to encode detector frame")
		return nil
	}

	set, err := s.detector.Detect(ctx, frame)
	if err != nil {
		if !errors.Is(err, pose.ErrNoPoseDetected) {
			s.log.WithFields(log.Fields{
				"request_id": log.GetRequestID(ctx),
				"error":      err.Error(),
			}).Error("Pose detection failed")
		}
		return nil
	}

	return set
}

// computeAngles builds the per-segment angle map, one entry per configured
// segment, or a single error entry when no subject was found.
func (s *postureService) computeAngles(ctx context.Context, set *entity.LandmarkSet, width, height int) map[string]interface{} {
	angles := make(map[string]interface{})

	if set == nil {
		angles["error"] = posture.NoPoseMessage
		return angles
	}

	for _, seg := range entity.PostureSegments() {
		angles[seg.Label] = s.segmentAngle(ctx, set, seg, width, height)
	}

	return angles
}

// segmentAngle resolves one landmark pair and measures it. Any failure is
// contained to this segment and reported as a zero angle.
func (s *postureService) segmentAngle(ctx context.Context, set *entity.LandmarkSet, seg entity.SegmentPair, width, height int) (deg float64) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithFields(log.Fields{
				"request_id": log.GetRequestID(ctx),
				"segment":    seg.Label,
				"panic":      r,
			}).Error("Recovered from panic while measuring segment")
			deg = 0.0
		}
	}()

	left, ok := set.At(seg.LeftIndex)
	if !ok {
		s.log.WithFields(log.Fields{
			"request_id": log.GetRequestID(ctx),
			"segment":    seg.Label,
			"index":      seg.LeftIndex,
		}).Warn("Missing landmark for segment")
		return 0.0
	}
	right, ok := set.At(seg.RightIndex)
	if !ok {
		s.log.WithFields(log.Fields{
			"request_id": log.GetRequestID(ctx),
			"segment":    seg.Label,
			"index":      seg.RightIndex,
		}).Warn("Missing landmark for segment")
		return 0.0
	}

	p1 := geometry.LandmarkToPixel(left.X, left.Y, width, height)
	p2 := geometry.LandmarkToPixel(right.X, right.Y, width, height)

	return geometry.AbsAngle(p1, p2)
}
