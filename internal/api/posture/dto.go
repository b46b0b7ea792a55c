package posture

// AnalyzeRequest is the JSON alternative to a multipart upload.
type AnalyzeRequest struct {
	ImageBase64 string `json:"image_base64" validate:"required"`
}

// AnalysisResult is the success envelope for one analyzed photograph.
// Angles maps each segment label to its absolute deviation in degrees, or
// holds a single "error" entry when no subject was detected.
type AnalysisResult struct {
	Image  string                 `json:"image"`
	Angles map[string]interface{} `json:"angles"`
	Status string                 `json:"status"`
}

// FrameResult is the lightweight payload streamed back per live frame.
type FrameResult struct {
	Angles map[string]interface{} `json:"angles"`
	Status string                 `json:"status"`
}

// NoPoseMessage is the angles-map error entry used when the detector finds
// no subject.
const NoPoseMessage = "No pose detected"

// StatusSuccess marks a completed pipeline run, including the degraded
// no-detection outcome.
const StatusSuccess = "success"
