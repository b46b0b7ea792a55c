package postureHandler

import (
	postureService "StaidreptGolang/internal/api/posture/service"
	"StaidreptGolang/internal/middleware"
	"StaidreptGolang/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type PostureHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	postureService postureService.IPostureService
	utils          utils.IUtils
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ps postureService.IPostureService,
	utils utils.IUtils,
) *PostureHandler {
	return &PostureHandler{
		log:            log,
		validator:      validator,
		middleware:     middleware,
		postureService: ps,
		utils:          utils,
	}
}

func (h *PostureHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	posture := srv.Group("/posture")
	posture.Post("/analyze", h.middleware.NewRateLimiter, h.AnalyzeImage)
	posture.Use("/ws", wsMiddleware)
	posture.Get("/ws", websocket.New(h.handleLiveWebSocket))
}
