package main

import (
	"os"
	"os/signal"
	"syscall"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"trends-desk/internal/app"
	"trends-desk/internal/command"
	"trends-desk/internal/config"
	"trends-desk/internal/dispatch"
	"trends-desk/internal/present"
	"trends-desk/pkg/logger"
	"trends-desk/pkg/trends"
)

const appID = "io.trendsdesk.app"

var args struct {
	configPath string
	debug      bool
}

var rootCmd = &cobra.Command{
	Use:           "trends-desk",
	Short:         "Desktop query tool for search-interest data",
	Long:          "Query a trends gateway for interest over time, interest by region, related topics and queries, suggestions and trending searches, and show the results as tables and charts.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&args.configPath, "config", "", "Configuration file path (defaults and TRENDS_* env when empty)")
	rootCmd.Flags().BoolVar(&args.debug, "debug", false, "Enable debug logging")
}

func main() {
	// Global panic recovery to prevent application crash
	defer func() {
		if r := recover(); r != nil {
			logger.WithField("panic", r).Error("Application panic recovered")
			os.Exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		logger.WithError(err).Error("trends-desk failed to start")
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewManager().Load(args.configPath)
	if err != nil {
		return err
	}

	logCfg := cfg.LoggerConfig()
	if args.debug {
		logCfg.Level = "debug"
	}
	logger.SetLogger(logger.New(logCfg))
	log := logger.GetLogger().WithField("component", "main")

	log.WithFields(map[string]interface{}{
		"endpoint":        logger.MaskEndpoint(cfg.Trends.Endpoint),
		"api_key":         logger.MaskSecret(cfg.Trends.APIKey),
		"language":        cfg.Trends.Language,
		"cooldown":        cfg.Cooldown().String(),
		"config_source":   configSource(args.configPath),
		"trending_region": cfg.Trends.TrendingRegion,
		"realtime_region": cfg.Trends.RealtimeRegion,
	}).Info("Configuration loaded")

	client := trends.NewHTTPClient(cfg.ClientConfig())
	defer func() {
		stats := client.Stats()
		log.WithFields(map[string]interface{}{
			"total_requests":  stats.TotalRequests,
			"failed_requests": stats.FailedRequests,
		}).Info("Trends client closed")
		client.Close()
	}()

	a := fyneapp.NewWithID(appID)
	window := a.NewWindow(app.MainWindowTitle)

	dispatcher := dispatch.NewDispatcher(app.NewNotifier(window), dispatch.WithCooldown(cfg.Cooldown()))
	presenter := present.NewPresenter(a, cfg.DisplayOptions(), present.NewFormatter(cfg.LanguageTag()))
	surface := command.NewSurface(client, dispatcher, presenter, cfg.Settings())
	session := app.NewSession(a, window, surface)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := session.Start(ctx); err != nil {
		log.WithError(err).Warn("Session did not stop cleanly")
	}
	return nil
}

func configSource(path string) string {
	if path == "" {
		return "defaults_and_env"
	}
	return path
}
