package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	burntokens "burn_tokens_back"
	"burn_tokens_back/pkg/handler"
	"burn_tokens_back/pkg/notify"
	"burn_tokens_back/pkg/repository"
	"burn_tokens_back/pkg/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 5 * time.Second

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))
	if err := godotenv.Load(); err != nil {
		logrus.Infof("no .env loaded: %s", err)
	}

	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		logrus.Fatal(err)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	var configDir string

	load := func(cmd *cobra.Command) (Config, error) {
		if err := InitConfig(v, configDir, cmd.Flags()); err != nil {
			return Config{}, err
		}
		cfg, err := LoadConfig(v)
		if err != nil {
			return Config{}, err
		}
		if cfg.Debug {
			logrus.SetLevel(logrus.DebugLevel)
		}
		return cfg, nil
	}

	serve := func(cmd *cobra.Command, _ []string) error {
		cfg, err := load(cmd)
		if err != nil {
			return err
		}
		return runServer(cmd.Context(), cfg)
	}

	root := &cobra.Command{
		Use:           "burn-tokens",
		Short:         "Demo ledger of simulated token burns",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve,
	}
	root.PersistentFlags().StringVar(&configDir, "config-dir", "configs", "directory holding config.yml")
	root.PersistentFlags().String("port", "", "listening port (PORT)")
	root.PersistentFlags().Bool("debug", false, "debug logging and error detail (DEBUG)")
	root.PersistentFlags().String("database-url", "", "memory://, sqlite:///path or postgres://... (DATABASE_URL)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API (default)",
		RunE:  serve,
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create the burn_records table if it is missing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			return migrate(cmd.Context(), cfg)
		},
	})
	return root
}

func openRepository(ctx context.Context, cfg Config) (*repository.Repository, error) {
	dbCfg, err := repository.ParseDatabaseURL(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	repos, err := repository.Open(ctx, dbCfg)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s store", dbCfg.Driver)
	}
	logrus.WithField("driver", dbCfg.Driver).Info("burn store ready")
	return repos, nil
}

func migrate(ctx context.Context, cfg Config) error {
	repos, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	return repos.Close()
}

func runServer(ctx context.Context, cfg Config) error {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	repos, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.Close()

	notifier, err := notify.New(cfg.Notify)
	if err != nil {
		return err
	}

	services := service.NewService(repos, notifier)
	handlers := handler.NewHandler(services, handler.Options{
		Debug:        cfg.Debug,
		AllowOrigins: cfg.AllowOrigins,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := new(burntokens.Server)
	errc := make(chan error, 1)
	go func() {
		errc <- srv.Run(cfg.Port, handlers.InitRoute())
	}()
	logrus.WithField("port", cfg.Port).Info("server started")

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "run server")
		}
		return nil
	case <-ctx.Done():
	}

	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown server")
	}
	return services.Wait(shutdownCtx)
}
