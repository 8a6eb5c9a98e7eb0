// Package feed streams match snapshots to browsers over a WebSocket and
// accepts the same player commands the gRPC service does.
package feed

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/KirkDiggler/tower-defense/internal/engine/game"
	"github.com/KirkDiggler/tower-defense/internal/entities"
	"github.com/KirkDiggler/tower-defense/internal/errors"
	"github.com/KirkDiggler/tower-defense/internal/orchestrators/match"
)

// DefaultInterval is the snapshot push rate, roughly 20 per second
const DefaultInterval = 50 * time.Millisecond

const (
	writeWait    = 5 * time.Second
	maxFrameSize = 4096
)

// Message types on the feed
const (
	TypeSnapshot = "snapshot"
	TypeAck      = "ack"
	TypeError    = "error"
	TypeEnded    = "ended"

	CommandPause   = "pause"
	CommandResume  = "resume"
	CommandRestart = "restart"
	CommandUpgrade = "upgrade"
	CommandSpeed   = "speed"
)

// ServerMessage is what the feed writes
type ServerMessage struct {
	Type     string         `json:"type"`
	Paused   bool           `json:"paused,omitempty"`
	Snapshot *game.Snapshot `json:"snapshot,omitempty"`
	Command  string         `json:"command,omitempty"`
	Code     string         `json:"code,omitempty"`
	Message  string         `json:"message,omitempty"`
}

// ClientMessage is a command read from the socket
type ClientMessage struct {
	Type       string  `json:"type"`
	Stat       string  `json:"stat,omitempty"`
	Multiplier float64 `json:"multiplier,omitempty"` // 0 cycles the speed
}

// Config configures the feed handler
type Config struct {
	MatchService match.Service
	Interval     time.Duration              // defaults to DefaultInterval
	CheckOrigin  func(r *http.Request) bool // defaults to allowing every origin
}

// Validate validates the config
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.MatchService == nil {
		vb.RequiredField("MatchService")
	}
	if c.Interval < 0 {
		vb.Field("Interval", "must not be negative")
	}
	return vb.Build()
}

// Handler serves /matches/{id}/feed
type Handler struct {
	service  match.Service
	interval time.Duration
	upgrader websocket.Upgrader
}

// NewHandler creates a feed handler
func NewHandler(cfg *Config) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	h := &Handler{
		service:  cfg.MatchService,
		interval: cfg.Interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  2048,
			WriteBufferSize: 2048,
			CheckOrigin:     cfg.CheckOrigin,
		},
	}
	if h.interval == 0 {
		h.interval = DefaultInterval
	}
	if h.upgrader.CheckOrigin == nil {
		h.upgrader.CheckOrigin = func(*http.Request) bool { return true }
	}
	return h, nil
}

// Register mounts the feed on mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /matches/{id}/feed", h.ServeFeed)
}

// conn serializes writes; gorilla allows one writer at a time
type conn struct {
	ws      *websocket.Conn
	matchID string
	mu      sync.Mutex
}

func (c *conn) send(msg ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "failed to encode feed message")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

// ServeFeed upgrades the request and streams snapshots until the client
// leaves or the match ends
func (h *Handler) ServeFeed(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	if matchID == "" {
		matchID = r.URL.Query().Get("match_id")
	}

	// Reject unknown matches before the upgrade so clients get a status code
	if _, err := h.service.GetSnapshot(r.Context(), &match.GetSnapshotInput{MatchID: matchID}); err != nil {
		http.Error(w, errors.GetMessage(err), errors.GetCode(err).HTTPStatus())
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("feed upgrade failed", "match_id", matchID, "error", err)
		return
	}
	defer func() { _ = ws.Close() }()
	ws.SetReadLimit(maxFrameSize)

	c := &conn{ws: ws, matchID: matchID}
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	slog.Info("feed connected", "match_id", matchID, "remote", r.RemoteAddr)

	go func() {
		defer cancel()
		h.readLoop(ctx, c)
	}()

	h.writeLoop(ctx, c)
	slog.Info("feed closed", "match_id", matchID)
}

// writeLoop pushes a snapshot every interval. The layout only goes out on the
// first frame and after a restart.
func (h *Handler) writeLoop(ctx context.Context, c *conn) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	var last *game.Snapshot
	for {
		out, err := h.service.GetSnapshot(ctx, &match.GetSnapshotInput{MatchID: c.matchID})
		if err != nil {
			if errors.IsNotFound(err) {
				_ = c.send(ServerMessage{Type: TypeEnded, Message: "match ended"})
				return
			}
			slog.Error("feed snapshot failed", "match_id", c.matchID, "error", err)
			return
		}

		snap := out.Snapshot
		if last != nil && snap.Restarts == last.Restarts {
			snap.Background = nil
		}
		last = snap

		if err := c.send(ServerMessage{Type: TypeSnapshot, Paused: out.Paused, Snapshot: snap}); err != nil {
			slog.Debug("feed write failed", "match_id", c.matchID, "error", err)
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (h *Handler) readLoop(ctx context.Context, c *conn) {
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("feed read failed", "match_id", c.matchID, "error", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = c.send(ServerMessage{
				Type:    TypeError,
				Code:    errors.CodeInvalidArgument.String(),
				Message: "malformed command",
			})
			continue
		}

		if err := h.apply(ctx, c.matchID, msg); err != nil {
			_ = c.send(ServerMessage{
				Type:    TypeError,
				Command: msg.Type,
				Code:    errors.GetCode(err).String(),
				Message: errors.GetMessage(err),
			})
			continue
		}
		_ = c.send(ServerMessage{Type: TypeAck, Command: msg.Type})
	}
}

func (h *Handler) apply(ctx context.Context, matchID string, msg ClientMessage) error {
	switch msg.Type {
	case CommandPause:
		_, err := h.service.Pause(ctx, &match.PauseInput{MatchID: matchID})
		return err
	case CommandResume:
		_, err := h.service.Resume(ctx, &match.ResumeInput{MatchID: matchID})
		return err
	case CommandRestart:
		_, err := h.service.Restart(ctx, &match.RestartInput{MatchID: matchID})
		return err
	case CommandUpgrade:
		out, err := h.service.Upgrade(ctx, &match.UpgradeInput{MatchID: matchID, Stat: entities.Stat(msg.Stat)})
		if err != nil {
			return err
		}
		if !out.Applied {
			return errors.FailedPrecondition("not enough gold")
		}
		return nil
	case CommandSpeed:
		_, err := h.service.SetSpeed(ctx, &match.SetSpeedInput{
			MatchID:    matchID,
			Multiplier: msg.Multiplier,
			Cycle:      msg.Multiplier == 0,
		})
		return err
	default:
		return errors.InvalidArgumentf("unknown command %q", msg.Type)
	}
}
