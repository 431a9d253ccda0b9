package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"mask-compare/internal/domain/entity"
	"mask-compare/internal/domain/port"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	clientOutboxSz = 64
)

// Envelope сообщение канала прогресса
type Envelope struct {
	Event   string               `json:"event"`
	RunID   string               `json:"run_id"`
	Payload entity.ProgressEvent `json:"payload"`
}

// ProgressHub рассылает события прогресса подписчикам по websocket.
// Медленный подписчик теряет события, но не тормозит рассылку.
type ProgressHub struct {
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu      sync.RWMutex
	clients map[string]*hubClient
}

type hubClient struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// NewProgressHub создаёт хаб
func NewProgressHub(logger *slog.Logger) *ProgressHub {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressHub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:  logger,
		clients: make(map[string]*hubClient),
	}
}

// Clients количество подписчиков
func (h *ProgressHub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RunSink получатель прогресса, помечающий события идентификатором запуска
func (h *ProgressHub) RunSink(runID string) port.ProgressSink {
	return &hubSink{hub: h, runID: runID}
}

type hubSink struct {
	hub   *ProgressHub
	runID string
}

func (s *hubSink) Notify(event entity.ProgressEvent) error {
	data, err := json.Marshal(Envelope{Event: entity.ProgressEventName, RunID: s.runID, Payload: event})
	if err != nil {
		return err
	}
	s.hub.broadcast(data)
	return nil
}

func (h *ProgressHub) broadcast(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Debug("progress subscriber is slow, event dropped", "client", c.id)
		}
	}
}

// Serve обновляет соединение до websocket и подписывает его на прогресс
func (h *ProgressHub) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	client := &hubClient{
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, clientOutboxSz),
	}
	h.mu.Lock()
	h.clients[client.id] = client
	h.mu.Unlock()
	h.logger.Info("progress subscriber connected", "client", client.id)

	go h.writeLoop(client)
	h.readLoop(client)
}

func (h *ProgressHub) remove(client *hubClient) {
	h.mu.Lock()
	if _, ok := h.clients[client.id]; ok {
		delete(h.clients, client.id)
		close(client.send)
	}
	h.mu.Unlock()
}

// readLoop читает только служебные кадры и ждёт закрытия соединения
func (h *ProgressHub) readLoop(client *hubClient) {
	defer func() {
		h.remove(client)
		client.conn.Close()
		h.logger.Info("progress subscriber disconnected", "client", client.id)
	}()

	client.conn.SetReadLimit(512)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *ProgressHub) writeLoop(client *hubClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case data, ok := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
