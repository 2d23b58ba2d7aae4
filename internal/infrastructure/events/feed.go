package events

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"stockroom/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Should be configured properly for production
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Feed broadcasts inventory change events to connected WebSocket clients.
// Auth is enforced by the middleware in front of HandleWS.
type Feed struct {
	conns map[*websocket.Conn]struct{}
	mu    sync.Mutex

	writeTimeout  time.Duration
	onCountChange func(n int)
	logger        *zap.SugaredLogger
}

func NewFeed(logger *zap.SugaredLogger) *Feed {
	return &Feed{
		conns:        make(map[*websocket.Conn]struct{}),
		writeTimeout: 10 * time.Second,
		logger:       logger,
	}
}

// OnCountChange registers a hook called with the client count after every
// connect/disconnect.
func (f *Feed) OnCountChange(fn func(n int)) {
	f.onCountChange = fn
}

// HandleWS upgrades the request and keeps the connection registered until
// the client goes away. Inbound messages are discarded.
func (f *Feed) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		f.logger.Errorw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	f.register(conn)
	defer f.unregister(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// PublishChange sends the event to every connected client. Clients that fail
// a write are dropped.
func (f *Feed) PublishChange(event domain.ChangeEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		f.logger.Errorw("failed to marshal change event", "error", err)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for conn := range f.conns {
		conn.SetWriteDeadline(time.Now().Add(f.writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			f.logger.Debugw("dropping slow feed client", "error", err)
			conn.Close()
			delete(f.conns, conn)
		}
	}
	f.notifyCount(len(f.conns))
}

// ClientCount returns the number of connected clients.
func (f *Feed) ClientCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.conns)
}

func (f *Feed) register(conn *websocket.Conn) {
	f.mu.Lock()
	f.conns[conn] = struct{}{}
	n := len(f.conns)
	f.mu.Unlock()

	f.notifyCount(n)
	f.logger.Infow("feed client connected", "clients", n)
}

func (f *Feed) unregister(conn *websocket.Conn) {
	f.mu.Lock()
	delete(f.conns, conn)
	n := len(f.conns)
	f.mu.Unlock()

	f.notifyCount(n)
	f.logger.Infow("feed client disconnected", "clients", n)
}

func (f *Feed) notifyCount(n int) {
	if f.onCountChange != nil {
		f.onCountChange(n)
	}
}
