package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/xxxsen/notetoc/internal/config"
	"github.com/xxxsen/notetoc/internal/directory"
	"github.com/xxxsen/notetoc/internal/handler"
	"github.com/xxxsen/notetoc/internal/job"
	"github.com/xxxsen/notetoc/internal/middleware"
	"github.com/xxxsen/notetoc/internal/notestore"
	"github.com/xxxsen/notetoc/internal/oauth"
	"github.com/xxxsen/notetoc/internal/registry"
	"github.com/xxxsen/notetoc/internal/schedule"
	"github.com/xxxsen/notetoc/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "notetoc",
		Short: "keeps a table of contents note per notebook from note store webhooks",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run notetoc server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))
			return runServer(cfg)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json or config.yaml; environment variables override it")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config) error {
	host := notestore.Host(cfg.Sandbox)
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("upstream_host", host),
		zap.String("tag", cfg.TagName),
		zap.Bool("serialize_notebooks", cfg.SerializeNotebooks()),
	)

	jwtSecret := []byte(cfg.JWTSecret)
	if len(jwtSecret) == 0 {
		jwtSecret = randomSecret()
		logutil.GetLogger(context.Background()).Warn("jwt_secret not set, sessions will not survive a restart")
	}
	upstreamClient := &http.Client{Timeout: time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second}

	users := directory.New()
	tocRegistry := registry.NewTocRegistry()
	history := service.NewWebhookHistory()

	provider, err := oauth.NewEvernoteProvider(oauth.ProviderConfig{
		ConsumerKey:    cfg.ConsumerKey,
		ConsumerSecret: cfg.ConsumerSecret,
		Host:           host,
	}, &http.Client{Timeout: 10 * time.Second})
	if err != nil {
		return fmt.Errorf("init oauth provider: %w", err)
	}
	sessionTTL := time.Hour * time.Duration(cfg.JWTTTLHours)
	oauthService := service.NewOAuthService(provider, users, cfg.CallbackURL(), jwtSecret, sessionTTL)
	dispatcher := service.NewWebhookDispatcher(
		users,
		notestore.NewFactory(host, upstreamClient, "notetoc"),
		service.NewNoteAggregator(cfg.Upstream.SearchPageSize),
		service.NewTocReconciler(cfg.TocTitle, tocRegistry, cfg.SerializeNotebooks()),
		history,
		cfg.TagName,
	)

	deps := handler.RouterDeps{
		Webhooks:  handler.NewWebhookHandler(dispatcher, history),
		OAuth:     handler.NewOAuthHandler(oauthService, cfg.ErrorPage, cfg.SuccessPage, sessionTTL),
		JWTSecret: jwtSecret,
	}

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	engine, err := webapi.NewEngine(
		"/api/v1",
		addr,
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewHistoryTrimJob(history, cfg.History.MaxEntries), cfg.History.TrimCron); err != nil {
		return fmt.Errorf("schedule history trim: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", addr))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}

func randomSecret() []byte {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return []byte(hex.EncodeToString(buf))
}
