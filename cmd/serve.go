package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"healthscore/internal/api"
	"healthscore/internal/ratelimit"
)

const shutdownTimeout = 10 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup("")
		if err != nil {
			return err
		}
		defer d.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var limiterStore ratelimit.Store = ratelimit.NewMemoryStore()
		if d.cfg.Redis.Addr != "" {
			rdb, err := ratelimit.DialRedis(ctx, d.cfg.Redis.Addr)
			if err != nil {
				return fmt.Errorf("connecting to redis: %w", err)
			}
			defer rdb.Close()
			limiterStore = ratelimit.NewRedisStore(rdb)
			d.log.Info("admin limiter using redis", "addr", d.cfg.Redis.Addr)
		}

		if d.cfg.Log.Mode == "prod" {
			gin.SetMode(gin.ReleaseMode)
		}

		server := api.NewServer(api.RouterConfig{
			AssessmentHandler: api.NewAssessmentHandler(d.svc, d.log),
			AdminKey:          d.cfg.Server.AdminKey,
			AdminLimiter:      ratelimit.NewLoginLimiter(limiterStore),
			Logger:            d.log,
		})

		addr := d.cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		srv := &http.Server{
			Addr:              addr,
			Handler:           server.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			d.log.Info("http server listening", "addr", addr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		d.log.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
}
