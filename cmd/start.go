package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"allowlist-sync/core/loader"
	"allowlist-sync/core/logger"
	"allowlist-sync/core/middleware/auth"
	"allowlist-sync/core/middleware/rayid"
	"allowlist-sync/feature/accesslist"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "allowlist-sync/docs/swagger"
)

// @title allowlist-sync API
// @version 1.0
// @description Keeps DNS-derived allowlist entries of Nginx Proxy Manager in sync.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server and the periodic sync",
	Long: `Serves the accesslist API and, when server.sync_interval_seconds is set,
runs a reconciliation pass on that interval. Passes never overlap.`,
	RunE: runStart,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, logg, err := loadSettings()
	if err != nil {
		return err
	}
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	t, err := openTarget(ctx, cfg, logg)
	if errors.Is(err, errContainerAbsent) {
		return fmt.Errorf("proxy manager container %q not found", cfg.Container.Name)
	}
	if err != nil {
		return err
	}
	defer t.Close()
	logg.Info("Connected to proxy manager database")

	svc, err := newService(cfg, t, logg)
	if err != nil {
		return err
	}
	if err := svc.Prepare(ctx); err != nil {
		return fmt.Errorf("failed to prepare schema: %w", err)
	}

	app, err := newApp(cfg.Server.ApiKey, svc, logg)
	if err != nil {
		return err
	}

	if cfg.Server.SyncOnStart {
		_, _ = svc.Run(ctx, false)
	}
	var wg sync.WaitGroup
	if interval := cfg.Server.SyncInterval(); interval > 0 {
		logg.Info("Periodic sync enabled", zap.Duration("interval", interval))
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.RunEvery(ctx, interval)
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("Starting server", zap.String("port", cfg.Server.Port))
		errCh <- app.Listen(":" + cfg.Server.Port)
	}()

	var serveErr error
	select {
	case err := <-errCh:
		serveErr = fmt.Errorf("server failed: %w", err)
		stop()
	case <-ctx.Done():
	}

	logg.Info("Shutting down server...")
	shutdownErr := app.Shutdown()

	// Passes in flight finish before the database closes
	wg.Wait()
	svc.Wait()
	logg.Info("Server stopped")

	if serveErr != nil {
		return serveErr
	}
	return shutdownErr
}

// newApp builds the fiber app: ray IDs, request logging, public health and
// docs routes, then the API key protected features.
func newApp(apiKey string, svc *accesslist.Service, logg *zap.Logger) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// First, so every log line below carries the ray ID
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Get("/health", handleHealth)
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(auth.New(auth.Config{ApiKey: apiKey}))

	mgr := loader.NewManager()
	mgr.Register(accesslist.NewFeature(svc))
	if err := mgr.LoadAll(app); err != nil {
		return nil, err
	}

	return app, nil
}

// handleHealth reports liveness.
// @Summary Health Check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
