package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"foodgram-service/internal/infrastructure"
	"foodgram-service/internal/infrastructure/authz"
	"foodgram-service/internal/interface/rest"
)

var (
	serveAddr    string
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", true, "Apply schema migrations before serving")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := openApp(cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	if serveMigrate {
		if err := a.migrate(); err != nil {
			return err
		}
	}

	svcs, err := a.buildServices(ctx)
	if err != nil {
		return err
	}
	enforcer, err := authz.NewEnforcer()
	if err != nil {
		return err
	}

	mediaDir := ""
	if cfg.Storage.Driver == "local" {
		mediaDir = cfg.Storage.LocalDir
	}

	e := rest.NewRouter(rest.Deps{
		Catalog:      svcs.catalog,
		Recipes:      svcs.recipes,
		Relations:    svcs.relations,
		Users:        svcs.users,
		ShoppingList: svcs.shoppingList,
		JWT:          infrastructure.NewJWTService(jwtSecret(cfg, log)),
		Enforcer:     enforcer,
		Limiter:      infrastructure.NewRateLimiter(ctx, cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		Metrics:      rest.NewMetrics(),
		MediaDir:     mediaDir,
		Log:          log,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
