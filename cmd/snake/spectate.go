package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/vovakirdan/snake-rogue/internal/spectate"
)

// serveSpectators starts a WebSocket feed at addr/watch. stop shuts the
// listener and disconnects every watcher.
func serveSpectators(addr string) (*spectate.Hub, func(), error) {
	hub := spectate.NewHub(logger)

	mux := http.NewServeMux()
	mux.Handle("/watch", hub.Handler())

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("spectator listener: %w", err)
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("spectator server", "error", err)
		}
	}()
	logger.Info("spectator feed", "url", fmt.Sprintf("ws://%s/watch", ln.Addr()))

	stop := func() {
		hub.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		//nolint:errcheck // Shutting down
		srv.Shutdown(ctx)
	}
	return hub, stop, nil
}
