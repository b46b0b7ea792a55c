package postureService

import (
	"StaidreptGolang/internal/api/posture"
	"StaidreptGolang/internal/entity"
	"StaidreptGolang/pkg/pose"
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDetector struct {
	set *entity.LandmarkSet
	err error
}

func (f *fakeDetector) Detect(ctx context.Context, frame []byte) (*entity.LandmarkSet, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.set, nil
}

func (f *fakeDetector) Close() {}

type panicDetector struct{}

func (p *panicDetector) Detect(ctx context.Context, frame []byte) (*entity.LandmarkSet, error) {
	panic("model blew up")
}

func (p *panicDetector) Close() {}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(bytes.NewBuffer(nil))
	return logger
}

func whiteImageBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func detectedLandmarks() *entity.LandmarkSet {
	landmarks := make([]entity.Landmark, entity.LandmarkCount)
	place := func(idx int, x, y float64) {
		landmarks[idx] = entity.Landmark{X: x, Y: y, Visibility: 0.9}
	}

	// Level shoulders, tilted pelvis.
	place(entity.LandmarkLeftShoulder, 0.65, 0.30)
	place(entity.LandmarkRightShoulder, 0.35, 0.30)
	place(entity.LandmarkLeftHip, 0.60, 0.50)
	place(entity.LandmarkRightHip, 0.40, 0.55)
	place(entity.LandmarkLeftKnee, 0.58, 0.65)
	place(entity.LandmarkRightKnee, 0.42, 0.65)
	place(entity.LandmarkLeftAnkle, 0.57, 0.78)
	place(entity.LandmarkRightAnkle, 0.43, 0.78)

	return &entity.LandmarkSet{Landmarks: landmarks}
}

func TestAnalyzePosture_SubjectDetected(t *testing.T) {
	svc := NewPostureService(testLogger(), &fakeDetector{set: detectedLandmarks()})

	result, err := svc.AnalyzePosture(context.Background(), whiteImageBytes(t, 800, 600))
	require.NoError(t, err)

	assert.Equal(t, posture.StatusSuccess, result.Status)
	assert.True(t, strings.HasPrefix(result.Image, "data:image/jpeg;base64,"))

	require.Len(t, result.Angles, 4)
	assert.NotContains(t, result.Angles, "error")
	for _, seg := range entity.PostureSegments() {
		require.Contains(t, result.Angles, seg.Label)
		deg, ok := result.Angles[seg.Label].(float64)
		require.True(t, ok, "angle for %s must be numeric", seg.Label)
		assert.GreaterOrEqual(t, deg, 0.0)
	}

	assert.Equal(t, 0.0, result.Angles["Shoulders"], "level shoulders must measure zero")
	assert.Greater(t, result.Angles["Pelvis"].(float64), 0.0, "tilted pelvis must measure non-zero")
}

func TestAnalyzePosture_NoSubject(t *testing.T) {
	svc := NewPostureService(testLogger(), &fakeDetector{err: pose.ErrNoPoseDetected})

	result, err := svc.AnalyzePosture(context.Background(), whiteImageBytes(t, 800, 600))
	require.NoError(t, err, "no detection is a valid outcome, not a failure")

	assert.Equal(t, posture.StatusSuccess, result.Status)
	assert.True(t, strings.HasPrefix(result.Image, "data:image/jpeg;base64,"))
	require.Len(t, result.Angles, 1)
	assert.Equal(t, posture.NoPoseMessage, result.Angles["error"])
}

func TestAnalyzePosture_DetectorFaultDegrades(t *testing.T) {
	svc := NewPostureService(testLogger(), &fakeDetector{err: errors.New("sidecar unreachable")})

	result, err := svc.AnalyzePosture(context.Background(), whiteImageBytes(t, 800, 600))
	require.NoError(t, err, "provider faults degrade to the no-detection outcome")

	assert.Equal(t, posture.NoPoseMessage, result.Angles["error"])
}

func TestAnalyzePosture_DetectorPanicIsContained(t *testing.T) {
	svc := NewPostureService(testLogger(), &panicDetector{})

	_, err := svc.AnalyzePosture(context.Background(), whiteImageBytes(t, 200, 200))
	require.ErrorIs(t, err, posture.ErrInternalServerError)
}

func TestAnalyzePosture_InvalidBytes(t *testing.T) {
	svc := NewPostureService(testLogger(), &fakeDetector{set: detectedLandmarks()})

	_, err := svc.AnalyzePosture(context.Background(), []byte("definitely not an image"))
	require.ErrorIs(t, err, posture.ErrInvalidImage)
}

func TestAnalyzePosture_PartialLandmarksYieldZero(t *testing.T) {
	set := detectedLandmarks()
	set.Landmarks = set.Landmarks[:entity.LandmarkRightShoulder+1]
	svc := NewPostureService(testLogger(), &fakeDetector{set: set})

	result, err := svc.AnalyzePosture(context.Background(), whiteImageBytes(t, 400, 400))
	require.NoError(t, err)

	require.Len(t, result.Angles, 4)
	assert.Equal(t, 0.0, result.Angles["Pelvis"], "missing pelvis landmarks degrade to zero")
	assert.Equal(t, 0.0, result.Angles["Knees"])
	assert.Equal(t, 0.0, result.Angles["Ankles"])
}

func TestAnalyzePosture_NormalizesLargeUploads(t *testing.T) {
	captured := &frameCapturingDetector{}
	svc := NewPostureService(testLogger(), captured)

	_, err := svc.AnalyzePosture(context.Background(), whiteImageBytes(t, 2000, 500))
	require.NoError(t, err)

	img, _, derr := image.Decode(bytes.NewReader(captured.frame))
	require.NoError(t, derr)
	assert.Equal(t, 1080, img.Bounds().Dx())
	assert.Equal(t, 270, img.Bounds().Dy())
}

type frameCapturingDetector struct {
	frame []byte
}

func (f *frameCapturingDetector) Detect(ctx context.Context, frame []byte) (*entity.LandmarkSet, error) {
	f.frame = frame
	return nil, pose.ErrNoPoseDetected
}

func (f *frameCapturingDetector) Close() {}

func TestAnalyzeFrame_AnglesOnly(t *testing.T) {
	svc := NewPostureService(testLogger(), &fakeDetector{set: detectedLandmarks()})

	result, err := svc.AnalyzeFrame(context.Background(), whiteImageBytes(t, 320, 240))
	require.NoError(t, err)

	assert.Equal(t, posture.StatusSuccess, result.Status)
	require.Len(t, result.Angles, 4)
	assert.Equal(t, 0.0, result.Angles["Shoulders"])
}
