// Package stream serves Chicago Loop runs to spectators over websockets.
// A client picks a level, seed and rules in the query string and receives
// one JSON frame per generation followed by the run report.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/chicago-loop/internal/engine"
	"github.com/vovakirdan/chicago-loop/internal/levels"
)

const writeWait = 5 * time.Second

// Config holds configuration for the stream server.
type Config struct {
	Address  string
	Interval time.Duration // Default time between frames
	Engine   engine.Config // Default limits, overridable per request
	Catalog  []levels.Level
}

// Server is the spectator HTTP server.
type Server struct {
	config   Config
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a stream server. A nil logger uses log.Default().
func NewServer(cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		config: cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/levels", s.handleLevels)
	mux.HandleFunc("/ws", s.handleRun)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting stream server", "address", s.config.Address, "levels", len(s.config.Catalog))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	out := make([]LevelInfo, 0, len(s.config.Catalog))
	for _, l := range s.config.Catalog {
		out = append(out, NewLevelInfo(l))
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		s.logger.Warn("cannot write level list", "error", err)
	}
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRunRequest(r.URL.Query(), s.config.Catalog, s.config.Engine, s.config.Interval)
	if err != nil {
		writeRequestError(w, err)
		return
	}
	e, err := req.Seed()
	if err != nil {
		writeRequestError(w, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Control frames are only processed while reading; a read error means
	// the spectator went away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	logger := s.logger.With("level", req.Level.ID, "remote", r.RemoteAddr)
	logger.Info("stream started", "rules", req.Rules.String(), "seed", req.Pattern.String())

	report, err := s.stream(ctx, conn, req, e)
	switch {
	case err == nil:
		logger.Info("stream finished", "outcome", report.Outcome, "generations", report.TickCount)
		closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, report.Outcome)
		//nolint:errcheck // Best-effort close, the peer may already be gone
		conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(writeWait))
	case errors.Is(err, context.Canceled):
		logger.Info("stream cancelled", "generation", e.Tick())
	default:
		logger.Warn("stream failed", "generation", e.Tick(), "error", err)
	}
}

// stream pushes the start frame, one frame per generation and the report.
func (s *Server) stream(ctx context.Context, conn *websocket.Conn, req RunRequest, e *engine.Engine) (engine.Report, error) {
	if err := writeFrame(conn, StartFrame(req, e)); err != nil {
		return engine.Report{}, err
	}

	var ticker *time.Ticker
	if req.Interval > 0 {
		ticker = time.NewTicker(req.Interval)
		defer ticker.Stop()
	}

	report, err := engine.Observe(e, func(res engine.TickResult) error {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		return writeFrame(conn, TickFrame(res))
	})
	if err != nil {
		return engine.Report{}, err
	}

	if err := writeFrame(conn, ReportFrame(report)); err != nil {
		return engine.Report{}, err
	}
	return report, nil
}

func writeFrame(conn *websocket.Conn, f Frame) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(f)
}

func writeRequestError(w http.ResponseWriter, err error) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		http.Error(w, reqErr.msg, reqErr.status)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
