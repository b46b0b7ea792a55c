package postureService

import (
	"StaidreptGolang/internal/api/posture"
	"StaidreptGolang/pkg/pose"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IPostureService interface {
	AnalyzePosture(ctx context.Context, imageBytes []byte) (*posture.AnalysisResult, error)
	AnalyzeFrame(ctx context.Context, frame []byte) (*posture.FrameResult, error)
}

type postureService struct {
	log      *logrus.Logger
	detector pose.Detector
}

func NewPostureService(
	log *logrus.Logger,
	detector pose.Detector,
) IPostureService {
	return &postureService{
		log:      log,
		detector: detector,
	}
}
