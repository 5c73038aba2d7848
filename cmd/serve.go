package cmd

import (
	"context"
	"coursebuilder/config"
	"coursebuilder/database"
	"coursebuilder/logger"
	"coursebuilder/routers"
	"coursebuilder/session"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, config.LoadConfig())
	},
}

func serve(ctx context.Context, cfg *config.Config) error {
	host, _ := os.Hostname()
	appLog := logger.NewRollbarLogger(log.New(os.Stdout, "", log.LstdFlags), logger.Options{
		Token:       cfg.RollbarToken,
		Environment: cfg.AppEnv,
		Host:        host,
		Version:     cfg.Version,
	})
	defer appLog.Close()

	db, err := database.ConnectDb(cfg)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db); err != nil {
		return err
	}

	provider, err := newSessionProvider(cfg)
	if err != nil {
		return err
	}

	app := routers.NewApp(routers.Deps{
		Config:   cfg,
		DB:       db,
		Sessions: provider,
		Logger:   appLog,
	})

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("Server is running on port " + cfg.Port)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	appLog.Info("Shutting down")
	timeout := time.Duration(cfg.ShutdownTimeoutSeconds) * time.Second
	if err := app.ShutdownWithTimeout(timeout); err != nil {
		return errors.Wrap(err, "shutdown")
	}

	sqlDB, err := db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
	return nil
}

// newSessionProvider picks the identity source named by SESSION_PROVIDER
func newSessionProvider(cfg *config.Config) (session.Provider, error) {
	switch cfg.SessionProvider {
	case "jwt":
		return session.NewJWTProvider(cfg.JWTKey, time.Duration(cfg.JWTTTLHours)*time.Hour), nil
	case "remote":
		return session.NewRemoteProvider(cfg.AuthServiceURL, cfg.AuthSessionPath, time.Duration(cfg.AuthTimeoutSeconds)*time.Second), nil
	default:
		return nil, errors.Errorf("unsupported SESSION_PROVIDER %q", cfg.SessionProvider)
	}
}
