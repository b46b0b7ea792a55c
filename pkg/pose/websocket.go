package pose

import (
	"StaidreptGolang/internal/entity"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/net/context"
)

// webSocketDetector talks to the external pose-estimation service over a
// single websocket connection. The model is not assumed safe for concurrent
// calls, so every frame exchange is serialized behind the mutex; landmark
// state never leaks between requests because each Detect call is one full
// send/receive round trip.
type webSocketDetector struct {
	url          string
	conn         *websocket.Conn
	mu           sync.Mutex
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// NewWebSocketDetector creates a detector client for the pose service at
// url. The connection is established lazily in the background and repaired
// on demand.
func NewWebSocketDetector(url string) Detector {
	client := &webSocketDetector{
		url:          url,
		pingInterval: 30 * time.Second,
		readTimeout:  10 * time.Second,
		writeTimeout: 5 * time.Second,
	}

	go func() {
		if err := client.reconnect(); err != nil {
			log.Printf("Initial connection to pose service failed: %v. Will retry on demand.", err)
		}
	}()

	return client
}

func (c *webSocketDetector) reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	if c.url == "" {
		return fmt.Errorf("pose service URL not configured")
	}

	dialer := websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.url, err)
	}

	conn.SetPingHandler(func(appData string) error {
		if err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout)); err != nil {
			log.Printf("Error sending pong: %v", err)
		}
		return nil
	})

	c.conn = conn
	go c.keepAlive()

	return nil
}

func (c *webSocketDetector) keepAlive() {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		conn := c.conn
		if conn == nil {
			c.mu.Unlock()
			return
		}

		err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(c.writeTimeout))
		if err != nil {
			log.Printf("Ping failed, marking pose connection as dead: %v", err)
			c.conn = nil
			conn.Close()
			c.mu.Unlock()
			return
		}

		c.mu.Unlock()
	}
}

// Detect sends one JPEG frame and waits for the landmark payload. A
// no-detection reply maps to ErrNoPoseDetected.
func (c *webSocketDetector) Detect(ctx context.Context, frame []byte) (*entity.LandmarkSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		c.mu.Unlock()
		err := c.reconnect()
		c.mu.Lock()
		if err != nil {
			return nil, fmt.Errorf("cannot connect to pose service: %w", err)
		}
	}

	conn := c.conn
	if conn == nil {
		return nil, fmt.Errorf("not connected to pose service")
	}

	conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		c.conn = nil
		conn.Close()
		return nil, fmt.Errorf("error sending frame: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(c.readTimeout))
	_, message, err := conn.ReadMessage()
	if err != nil {
		c.conn = nil
		conn.Close()
		return nil, fmt.Errorf("error reading pose response: %w", err)
	}

	conn.SetReadDeadline(time.Time{})
	conn.SetWriteDeadline(time.Time{})

	var result detectorResponse
	if err := json.Unmarshal(message, &result); err != nil {
		return nil, fmt.Errorf("error unmarshaling pose response: %w", err)
	}

	if !result.Detected || len(result.Landmarks) == 0 {
		return nil, ErrNoPoseDetected
	}

	return &entity.LandmarkSet{Landmarks: result.Landmarks}, nil
}

// Close tears down the connection; in-flight calls finish first.
func (c *webSocketDetector) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}
