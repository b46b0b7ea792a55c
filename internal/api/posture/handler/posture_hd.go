package postureHandler

import (
	"StaidreptGolang/internal/api/posture"
	contextPkg "StaidreptGolang/pkg/context"
	"StaidreptGolang/pkg/handlerUtil"
	"StaidreptGolang/pkg/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"golang.org/x/net/context"
	"time"
)

// AnalyzeImage is the rich transport shim: multipart upload or JSON base64
// body in, analysis envelope out. All pipeline logic lives in the service.
func (h *PostureHandler) AnalyzeImage(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 30*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing posture analysis request")

	var imageBytes []byte

	file, err := ctx.FormFile("image")
	if err == nil {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"file_name":  file.Filename,
			"file_size":  file.Size,
		}).Debug("Processing file upload")

		if err := h.utils.ValidateImageFile(file); err != nil {
			return errHandler.Handle(ctx, requestID, err, ctx.Path(), "validate_image_file")
		}

		fileContent, err := file.Open()
		if err != nil {
			return errHandler.Handle(ctx, requestID, err, ctx.Path(), "open_file")
		}
		defer fileContent.Close()

		imageBytes, err = h.utils.ReadFileBytes(fileContent)
		if err != nil {
			return errHandler.Handle(ctx, requestID, err, ctx.Path(), "read_file")
		}
	} else {
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
		}).Debug("Processing JSON request")

		var req posture.AnalyzeRequest
		if err := ctx.BodyParser(&req); err != nil {
			return errHandler.Handle(ctx, requestID, posture.ErrNoFileUploaded, ctx.Path(), "parse_request_body")
		}

		if err := h.validator.Struct(req); err != nil {
			return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
		}

		imageBytes, err = h.utils.DecodeBase64Image(req.ImageBase64)
		if err != nil {
			return errHandler.Handle(ctx, requestID, err, ctx.Path(), "decode_base64_image")
		}
	}

	result, err := h.postureService.AnalyzePosture(c, imageBytes)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "analyze_posture")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"angles":     result.Angles,
		}).Info("Posture analysis successful")
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

// handleLiveWebSocket is the minimal transport shim: one binary frame in,
// one angles payload out, reusing the same pipeline without the overlay.
func (h *PostureHandler) handleLiveWebSocket(c *websocket.Conn) {
	h.log.Info("Posture analysis WebSocket client connected")
	defer h.log.Info("Posture analysis WebSocket client disconnected")

	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			h.log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	maxReadTimeout := 60 * time.Second

	for {
		if err := c.SetReadDeadline(time.Now().Add(maxReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			break
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Errorf("Posture WebSocket error: %v", err)
			} else {
				h.log.Info("Posture WebSocket connection closed")
			}
			break
		}

		if messageType != websocket.BinaryMessage {
			h.log.Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		result, err := h.postureService.AnalyzeFrame(context.Background(), message)
		if err != nil {
			h.log.Errorf("Error processing frame: %v", err)
			if writeErr := c.WriteJSON(map[string]string{"error": err.Error()}); writeErr != nil {
				h.log.Errorf("Error sending error response: %v", writeErr)
				break
			}
			continue
		}

		if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
			h.log.Errorf("Error setting write deadline: %v", err)
			break
		}

		if err := c.WriteJSON(result); err != nil {
			h.log.Errorf("Error writing JSON response: %v", err)
			break
		}

		if err := c.SetWriteDeadline(time.Time{}); err != nil {
			h.log.Errorf("Error resetting write deadline: %v", err)
			break
		}
	}
}
