package httphandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// ServerConfig bounds request handling. Zero fields fall back to defaults.
type ServerConfig struct {
	Addr           string
	HandlerTimeout time.Duration
}

const defaultHandlerTimeout = 5 * time.Second

type HTTPServer struct {
	httpServer *http.Server
}

func NewHTTPServer(cfg ServerConfig, handler http.Handler) HTTPServer {
	timeout := cfg.HandlerTimeout
	if timeout <= 0 {
		timeout = defaultHandlerTimeout
	}
	handler = http.TimeoutHandler(handler, timeout, "unavailable")
	s := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       2 * time.Second,
	}
	return HTTPServer{s}
}

func (s HTTPServer) Run(stopFn context.CancelFunc) {
	const op = "HTTPServer.Run"
	log := slog.With("op", op)

	defer stopFn()
	log.Info("listening", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return
		}
		log.Error("unexpected servers shutdown", "err", err)
	}
}

func (s HTTPServer) Close(ctx context.Context) {
	const op = "HTTPServer.Close"
	log := slog.With("op", op)

	log.Info("closing http server...")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		log.Error("failed to shutdown gracefully", "err", err)
	}
	log.Info("http server is closed")
}
