// Package server exposes a loaded skill bundle over HTTP so a host
// assistant can discover skills from the index and pull bodies lazily.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/klauern/skillshelf/internal/bundle"
	"github.com/klauern/skillshelf/internal/config"
	"github.com/klauern/skillshelf/internal/index"
	"github.com/klauern/skillshelf/internal/logging"
	"github.com/klauern/skillshelf/internal/model"
)

// Server serves a skill bundle and keeps its index current.
type Server struct {
	cfg config.ServerConfig

	mu  sync.RWMutex
	bun *model.Bundle
	idx *index.Index
}

// New loads the bundle at root and returns a server for it.
func New(root string, cfg config.ServerConfig) (*Server, error) {
	s := &Server{cfg: cfg}
	if err := s.Reload(root); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the bundle from disk and swaps in a fresh index.
func (s *Server) Reload(root string) error {
	b, err := bundle.Load(root)
	if err != nil {
		return fmt.Errorf("failed to load bundle: %w", err)
	}
	idx := index.Build(b)

	s.mu.Lock()
	s.bun = b
	s.idx = idx
	s.mu.Unlock()

	logging.Info("bundle reloaded", logging.Bundle(b.Root), logging.Count(b.Len()))
	return nil
}

func (s *Server) snapshot() (*model.Bundle, *index.Index) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bun, s.idx
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully. When
// the config enables watching, bundle changes trigger reloads.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	if s.cfg.Watch {
		stop, err := s.watch(ctx)
		if err != nil {
			return err
		}
		defer stop()
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("server listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
