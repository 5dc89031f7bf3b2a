package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"obsui/internal/config"
	"obsui/internal/httpapi"
	"obsui/internal/store"
	"obsui/internal/todo"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(opts *options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the todo app over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv, err := newServer(ctx, cfg, opts.logger)
			if err != nil {
				return err
			}
			defer srv.close()
			ln, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", cfg.Addr, err)
			}
			return srv.serve(ctx, ln)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (defaults OBSUI_ADDR or "+config.DefaultAddr+")")
	return cmd
}

// server owns the store, the todo service and the HTTP server of one serve run.
type server struct {
	log   zerolog.Logger
	store store.Store
	svc   *todo.Service
	http  *http.Server
}

func newServer(ctx context.Context, cfg config.Config, log zerolog.Logger) (*server, error) {
	st, err := store.Open(ctx, cfg.Store.Kind, cfg.Store.DSN)
	if err != nil {
		return nil, err
	}
	bc := todo.NewBroadcaster()
	svc, err := todo.New(ctx, todo.Config{
		Store:      st,
		StorageKey: cfg.Store.Key,
		StartURL:   cfg.Router.StartURL,
		Router:     cfg.RouterStart(),
		Publisher:  bc,
	})
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	httpapi.SetBaseContext(ctx)
	httpapi.SetCORSOptions(cfg.CORS.Enabled, cfg.CORS.Origins, cfg.CORS.Methods, cfg.CORS.Headers)
	return &server{
		log:   log,
		store: st,
		svc:   svc,
		http: &http.Server{
			Handler:           httpapi.NewMux(svc, bc),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// serve blocks until ctx is done or the listener fails, then shuts the HTTP
// server down gracefully.
func (s *server) serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info().Str("addr", ln.Addr().String()).Str("store", s.store.Kind()).Msg("obsuid listening")
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.http.Shutdown(sctx); err != nil {
			s.log.Warn().Err(err).Msg("graceful shutdown error")
			return err
		}
		s.log.Info().Msg("obsuid stopped")
		return nil
	})
	return g.Wait()
}

func (s *server) close() {
	if err := s.svc.Close(); err != nil {
		s.log.Warn().Err(err).Msg("close service")
	}
	if err := s.store.Close(); err != nil {
		s.log.Warn().Err(err).Msg("close store")
	}
}
