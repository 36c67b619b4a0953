package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Redis      RedisConfig      `yaml:"redis"`
	Corrector  CorrectorConfig  `yaml:"corrector"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"HTTP_HOST"             env-default:"localhost"`
	Port            int           `yaml:"port"             env:"HTTP_PORT"             env-default:"8888"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"HTTP_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"HTTP_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"HTTP_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr joins host and port.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// RedisConfig points at the custom phrase store. An empty Addr disables it.
type RedisConfig struct {
	Addr      string `yaml:"addr"       env:"REDIS_ADDR"`
	Password  string `yaml:"password"   env:"REDIS_PASSWORD"`
	DB        int    `yaml:"db"         env:"REDIS_DB"         env-default:"0"`
	KeyPrefix string `yaml:"key_prefix" env:"REDIS_KEY_PREFIX" env-default:"custom_phrases"`
}

// CorrectorConfig holds query mapping settings.
type CorrectorConfig struct {
	// DistancesRaw lists ascending word lengths, e.g. "4,9": words up to 4
	// runes get no edits, up to 9 one edit, longer ones two.
	DistancesRaw string  `yaml:"distances"     env:"CORRECTOR_DISTANCES"     env-default:"4,9"`
	MaxLookahead int     `yaml:"max_lookahead" env:"CORRECTOR_MAX_LOOKAHEAD" env-default:"5"`
	CacheSize    int     `yaml:"cache_size"    env:"CORRECTOR_CACHE_SIZE"    env-default:"1024"`
	CustomScore  float64 `yaml:"custom_score"  env:"CORRECTOR_CUSTOM_SCORE"  env-default:"1"`

	// Distances is parsed from DistancesRaw by Validate.
	Distances []int `yaml:"-"`
}

// DictionaryConfig lists the TSV dictionary files loaded at startup.
type DictionaryConfig struct {
	Files []string `yaml:"files" env:"DICTIONARY_PATHS" env-separator:","`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	JSON  bool   `yaml:"json"  env:"LOG_JSON"  env-default:"false"`
}
