package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"phrasecorrector/internal/config"
	sc "phrasecorrector/internal/corrector"
	"phrasecorrector/internal/customdict"
	"phrasecorrector/internal/health"
	"phrasecorrector/internal/logger"
	"phrasecorrector/internal/observe"
	"phrasecorrector/internal/server"
)

var (
	configPath string
	bind       string
	port       int
	distances  string
	language   string
)

var rootCmd = &cobra.Command{
	Use:   "phrasecorrector",
	Short: "Approximate phrase correction over tab separated dictionaries",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return logger.Initialize(cfg.Log.Level, cfg.Log.JSON)
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve [dictionary.tsv...]",
	Short: "Serve GET /corrections over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg.Dictionary.Files = append(cfg.Dictionary.Files, args...)
		return serve(cmd.Context(), cfg)
	},
}

var correctCmd = &cobra.Command{
	Use:   "correct <dictionary.tsv>... -- <text>",
	Short: "Correct one query and print the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		dash := cmd.ArgsLenAtDash()
		if dash < 0 || dash == len(args) {
			return errors.New("expected dictionary files, then -- and the text to correct")
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		tries, err := loadDictionaries(append(cfg.Dictionary.Files, args[:dash]...))
		if err != nil {
			return err
		}
		corrector, err := sc.NewSpellCorrector(correctorConfig(cfg), tries, sc.WithLogger(logger.Named("corrector")))
		if err != nil {
			return err
		}
		for _, text := range args[dash:] {
			res := corrector.Correct(cmd.Context(), text, language)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%g\n", res.Text, res.Distance, res.Score)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (defaults to $CONFIG_PATH)")
	rootCmd.PersistentFlags().StringVar(&distances, "distances", "", "ascending word lengths allowing one more edit each, e.g. 4,9")

	serveCmd.Flags().StringVar(&bind, "bind", "", "host to bind (default localhost)")
	serveCmd.Flags().IntVar(&port, "port", 0, "port to listen on (default 8888)")

	correctCmd.Flags().StringVar(&language, "language", "en", "dictionary language")

	rootCmd.AddCommand(serveCmd, correctCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads file and env configuration and applies flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("bind") {
		cfg.Server.Host = bind
	}
	if flags.Changed("port") {
		cfg.Server.Port = port
	}
	if flags.Changed("distances") {
		cfg.Corrector.DistancesRaw = distances
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func correctorConfig(cfg *config.Config) sc.CorrectorConfig {
	return sc.CorrectorConfig{
		AllowedDistances: cfg.Corrector.Distances,
		MaxLookahead:     cfg.Corrector.MaxLookahead,
		CacheSize:        cfg.Corrector.CacheSize,
		CustomScore:      cfg.Corrector.CustomScore,
	}
}

func loadDictionaries(paths []string) (*sc.Tries, error) {
	log := logger.Named("loader")
	tries := sc.NewTries()
	for _, path := range paths {
		stats, err := sc.LoadFile(tries, path, log)
		if err != nil {
			return nil, err
		}
		log.Infow("dictionary loaded", "path", stats.Path, "phrases", stats.Phrases, "skipped", stats.Skipped)
	}
	return tries, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.Logger

	shutdownTelemetry, err := observe.InitProvider(ctx, observe.ProviderConfig{})
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())
	metrics := observe.DefaultMetrics()

	tries, err := loadDictionaries(cfg.Dictionary.Files)
	if err != nil {
		return err
	}

	opts := []sc.Option{sc.WithLogger(logger.Named("corrector")), sc.WithMetrics(metrics)}
	checkers := []health.Checker{}
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		dict := customdict.New(client, cfg.Redis.KeyPrefix)
		opts = append(opts, sc.WithStore(dict))
		checkers = append(checkers, health.Checker{Name: "redis", Check: dict.Ping})
	}

	corrector, err := sc.NewSpellCorrector(correctorConfig(cfg), tries, opts...)
	if err != nil {
		return err
	}
	if err := corrector.LoadCustomPhrases(ctx); err != nil {
		log.Warnw("custom phrases unavailable", "error", err)
	}

	mux := http.NewServeMux()
	server.New(corrector, corrector, logger.Named("http")).Register(mux)
	health.New(corrector, checkers...).Register(mux)
	mux.Handle("GET /metrics", observe.MetricsHandler())

	srv := server.NewHTTPServer(cfg.Server, observe.Middleware(metrics, logger.Named("http"))(mux))
	errCh := make(chan error, 1)
	go func() {
		log.Infow("listening", "addr", srv.Addr, "languages", corrector.Languages())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "serve")
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	log.Infow("shutting down")
	return srv.Shutdown(shutdownCtx)
}
