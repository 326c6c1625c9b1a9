package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/dots-and-boxes-backend/internal/entity"
)

type tableReader interface {
	GetTable(ctx context.Context, id string) (*entity.Table, error)
}

type resultReader interface {
	ListByTable(ctx context.Context, tableID string) ([]*entity.GameResult, error)
}

type leaderboardReader interface {
	Top(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
}

// Server is the read-only HTTP surface over hosted tables and the result archive.
type Server struct {
	logger *slog.Logger

	tables      tableReader
	results     resultReader
	leaderboard leaderboardReader
}

func New(logger *slog.Logger, tables tableReader, results resultReader, leaderboard leaderboardReader) *Server {
	return &Server{
		logger:      logger.With("component", "rest"),
		tables:      tables,
		results:     results,
		leaderboard: leaderboard,
	}
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", that.pingHandler)
	mux.HandleFunc("GET /tables/{id}", that.tableHandler)
	mux.HandleFunc("GET /tables/{id}/results", that.resultsHandler)
	mux.HandleFunc("GET /leaderboard", that.leaderboardHandler)

	return mux
}

// Start - starts HTTP server and blocks until ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
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
