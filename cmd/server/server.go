package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/zucenko/ancienttales/config"
	"github.com/zucenko/ancienttales/server"
)

type Server struct {
	router     *way.Router
	GameServer *server.GameServer
}

var cfg *config.Server

var rootCmd = &cobra.Command{
	Use:           "tales-server",
	Short:         "Serves Ancient Tales sessions over websocket and JSON",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.SetupLogging(cfg.LogLevel, cfg.LogFormat)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func run(ctx context.Context) error {
	opts, err := server.OptionsFrom(cfg)
	if err != nil {
		return err
	}
	s := Server{GameServer: server.NewGameServer(opts)}
	s.routes()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go s.GameServer.Loop(ctx)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: s.router}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warnf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on port %s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func main() {
	var err error
	cfg, err = config.LoadServer()
	if err != nil {
		log.Fatalln(err)
	}
	flags := rootCmd.Flags()
	flags.StringVar(&cfg.Port, "port", cfg.Port, "listen port")
	flags.StringVar(&cfg.Content, "content", cfg.Content, "YAML content tables (embedded defaults when empty)")
	flags.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "drop sessions idle for this long")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "logrus level")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "text or json")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalln(err)
	}
}
