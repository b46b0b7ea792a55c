package main

import (
	"StaidreptGolang/internal/config"
	"StaidreptGolang/pkg/log"
	"StaidreptGolang/pkg/pose"
	"github.com/joho/godotenv"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded: %v", err)
	}

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	poseDetector := pose.NewWebSocketDetector(detectorURL())

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithPoseDetector(poseDetector),
		config.WithMiddleware(),
		config.WithUtils(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")
	poseDetector.Close()
}

func detectorURL() string {
	url := os.Getenv("POSE_DETECTOR_URL")
	if url == "" {
		url = "ws://localhost:8500/api/v1/pose/ws"
	}
	return url
}
