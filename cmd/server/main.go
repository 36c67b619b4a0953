// Command server is a standalone admin API for custom phrases. It writes to
// Redis only; correction servers pick the phrases up when they start.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"phrasecorrector/internal/config"
	sc "phrasecorrector/internal/corrector"
	"phrasecorrector/internal/customdict"
	"phrasecorrector/internal/health"
	"phrasecorrector/internal/logger"
	"phrasecorrector/internal/server"
)

// storeWriter validates phrases the way the correction service does before
// storing them.
type storeWriter struct {
	dict  *customdict.CustomDict
	score float64
}

func (s storeWriter) AddCustomPhrase(ctx context.Context, language, phrase string, score float64) error {
	language, phrase, err := sc.NormalizeCustomPhrase(language, phrase)
	if err != nil {
		return err
	}
	if score == 0 {
		score = s.score
	}
	return s.dict.Add(ctx, language, phrase, score)
}

func (s storeWriter) RemoveCustomPhrase(ctx context.Context, language, phrase string) error {
	language, phrase, err := sc.NormalizeCustomPhrase(language, phrase)
	if err != nil {
		return err
	}
	return s.dict.Remove(ctx, language, phrase)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	if err := logger.Initialize(cfg.Log.Level, cfg.Log.JSON); err != nil {
		return err
	}
	if cfg.Redis.Addr == "" {
		return errors.New("REDIS_ADDR is required")
	}
	log := logger.Logger

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer client.Close()
	dict := customdict.New(client, cfg.Redis.KeyPrefix)

	mux := http.NewServeMux()
	server.RegisterCustomPhrases(mux, storeWriter{dict: dict, score: cfg.Corrector.CustomScore}, logger.Named("http"))
	health.New(nil, health.Checker{Name: "redis", Check: dict.Ping}).Register(mux)

	srv := server.NewHTTPServer(cfg.Server, mux)
	log.Infow("listening", "addr", srv.Addr)
	return srv.ListenAndServe()
}
