package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/entity"
)

const (
	maxMessageSize  = 4096
	writeWait       = 10 * time.Second
	minCleanupEvery = time.Second
)

type tableUseCase interface {
	CreateTable(ctx context.Context) (*entity.Table, error)
	GetTable(ctx context.Context, id string) (*entity.Table, error)
	DeleteTable(ctx context.Context, id string) error

	SelectGridSize(ctx context.Context, id string, size int) (*entity.Table, error)
	AddPlayer(ctx context.Context, id string) (*entity.Table, error)
	RemovePlayer(ctx context.Context, id string) (*entity.Table, error)
	ApplySettings(ctx context.Context, id string) (*entity.Table, error)
	NewGame(ctx context.Context, id string) (*entity.Table, error)

	SelectEdge(ctx context.Context, id string, edgeID entity.EdgeID, playerID int) (*entity.Table, *entity.MoveResult, error)
}

type handlerFunc func(ctx context.Context, conn *connection, msg *Message) error

// connection is one browser tab. It drives at most one table.
type connection struct {
	ws *websocket.Conn

	writeMutex sync.Mutex
	tableID    string // guarded by Server.connectionsMutex
}

type Server struct {
	logger   *slog.Logger
	tables   tableUseCase
	upgrader websocket.Upgrader

	reconnectTimeout time.Duration

	connectionsMutex sync.RWMutex
	connections      map[string]*connection

	disconnectedMutex  sync.Mutex
	disconnectedTables map[string]time.Time

	handlers map[string]handlerFunc
}

// New - a table is dropped once its connection has been gone for reconnectTimeout.
func New(logger *slog.Logger, tables tableUseCase, reconnectTimeout time.Duration) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		tables: tables,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},

		reconnectTimeout: reconnectTimeout,

		connections:        make(map[string]*connection),
		disconnectedTables: make(map[string]time.Time),
		handlers:           make(map[string]handlerFunc),
	}

	server.handlers[actionTableNew] = server.handleTableNew
	server.handlers[actionTableJoin] = server.handleTableJoin
	server.handlers[actionSettingsSize] = server.handleSettingsSize
	server.handlers[actionPlayerAdd] = server.handlePlayerAdd
	server.handlers[actionPlayerRemove] = server.handlePlayerRemove
	server.handlers[actionSettingsApply] = server.handleSettingsApply
	server.handlers[actionGameNew] = server.handleGameNew
	server.handlers[actionEdgeSelect] = server.handleEdgeSelect

	return server
}

func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server and blocks until ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go that.cleanupDisconnected(ctx)

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Notify pushes a notification to the connection driving the table, if any.
func (that *Server) Notify(_ context.Context, tableID string, notification entity.Notification) {
	that.connectionsMutex.RLock()
	conn, ok := that.connections[tableID]
	that.connectionsMutex.RUnlock()

	if !ok {
		return
	}

	if err := that.sendMessage(conn, actionNotification, ResponsePayload{Notification: &notification}); err != nil {
		that.logger.Error("failed to push notification", "table", tableID, "error", err)
	}
}

func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	ws, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := &connection{ws: ws}

	defer func() {
		that.handleDisconnect(ctx, conn)
		_ = ws.Close()
	}()

	log.Info("WebSocket connection established")

	if err = that.handleMessages(ctx, conn); err != nil {
		log.Info("connection closed", "error", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages")

	conn.ws.SetReadLimit(maxMessageSize)

	for {
		_, data, err := conn.ws.ReadMessage()
		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = sonic.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)

			if err = that.sendErrorResponse(conn, actionError, nil, "malformed message"); err != nil {
				return err
			}

			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)

			if err = that.sendErrorResponse(conn, message.Action, nil, "unknown action"); err != nil {
				return err
			}

			continue
		}

		if err = handler(ctx, conn, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) attach(conn *connection, tableID string) {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	if previous, ok := that.connections[tableID]; ok && previous != conn {
		previous.tableID = ""
	}

	if conn.tableID != "" && conn.tableID != tableID {
		delete(that.connections, conn.tableID)
	}

	conn.tableID = tableID
	that.connections[tableID] = conn

	that.disconnectedMutex.Lock()
	delete(that.disconnectedTables, tableID)
	that.disconnectedMutex.Unlock()
}

// detach returns the table the connection was driving.
func (that *Server) detach(conn *connection) string {
	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	tableID := conn.tableID
	if tableID == "" {
		return ""
	}

	conn.tableID = ""
	delete(that.connections, tableID)

	return tableID
}

func (that *Server) tableOf(conn *connection) string {
	that.connectionsMutex.RLock()
	defer that.connectionsMutex.RUnlock()

	return conn.tableID
}

func (that *Server) handleDisconnect(ctx context.Context, conn *connection) {
	log := that.logger.With("method", "handleDisconnect")

	tableID := that.detach(conn)
	if tableID == "" {
		return
	}

	if that.reconnectTimeout <= 0 {
		that.dropTable(ctx, tableID)
		return
	}

	that.disconnectedMutex.Lock()
	that.disconnectedTables[tableID] = time.Now()
	that.disconnectedMutex.Unlock()

	log.Info("table driver disconnected", "table", tableID)
}

func (that *Server) cleanupDisconnected(ctx context.Context) {
	if that.reconnectTimeout <= 0 {
		return
	}

	ticker := time.NewTicker(max(that.reconnectTimeout/2, minCleanupEvery))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			for _, tableID := range that.expiredTables(now) {
				that.dropTable(ctx, tableID)
			}
		}
	}
}

func (that *Server) expiredTables(now time.Time) []string {
	that.disconnectedMutex.Lock()
	defer that.disconnectedMutex.Unlock()

	var expired []string
	for tableID, since := range that.disconnectedTables {
		if now.Sub(since) >= that.reconnectTimeout {
			expired = append(expired, tableID)
			delete(that.disconnectedTables, tableID)
		}
	}

	return expired
}

func (that *Server) dropTable(ctx context.Context, tableID string) {
	if err := that.tables.DeleteTable(ctx, tableID); err != nil {
		that.logger.Warn("failed to delete table", "table", tableID, "error", err)
		return
	}

	that.logger.Info("table dropped", "table", tableID)
}

func (that *Server) sendMessage(conn *connection, action string, payload ResponsePayload) error {
	body, err := sonic.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	data, err := sonic.Marshal(Message{Action: action, Payload: body})
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	conn.writeMutex.Lock()
	defer conn.writeMutex.Unlock()

	if err = conn.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = conn.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(conn *connection, action string, table *entity.Table, errorMsg string) error {
	payload := ResponsePayload{Table: table, Error: errorMsg}
	if err := that.sendMessage(conn, action, payload); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
