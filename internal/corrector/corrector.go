package corrector

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"phrasecorrector/internal/customdict"
	"phrasecorrector/internal/observe"
	"phrasecorrector/pkg/options"
)

var (
	ErrEmptyPhrase   = errors.New("phrase is empty")
	ErrEmptyLanguage = errors.New("language is empty")
)

// PhraseStore persists custom phrases outside the process.
type PhraseStore interface {
	Add(ctx context.Context, language, phrase string, score float64) error
	Remove(ctx context.Context, language, phrase string) error
	All(ctx context.Context) ([]customdict.Entry, error)
}

// SpellCorrector serves corrections from per-language tries. Queries run
// under a read lock; custom phrase writes take the write lock, so a query
// never sees a trie mid-insert.
type SpellCorrector struct {
	config  CorrectorConfig
	opts    []options.Options
	mu      sync.RWMutex
	tries   *Tries
	dict    PhraseStore
	cache   *lru.Cache[string, CorrectionResult]
	metrics *observe.Metrics
	log     *zap.SugaredLogger
}

type Option func(*SpellCorrector)

func WithLogger(log *zap.SugaredLogger) Option {
	return func(sc *SpellCorrector) {
		if log != nil {
			sc.log = log
		}
	}
}

func WithMetrics(m *observe.Metrics) Option {
	return func(sc *SpellCorrector) { sc.metrics = m }
}

// WithStore persists custom phrases in store. A nil store keeps them in
// memory only.
func WithStore(store PhraseStore) Option {
	return func(sc *SpellCorrector) { sc.dict = store }
}

func NewSpellCorrector(cfg CorrectorConfig, tries *Tries, opts ...Option) (*SpellCorrector, error) {
	if tries == nil {
		tries = NewTries()
	}
	sc := &SpellCorrector{
		config: cfg,
		opts:   cfg.mapperOptions(),
		tries:  tries,
		log:    zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(sc)
	}
	if cfg.CacheSize > 0 {
		cache, err := lru.New[string, CorrectionResult](cfg.CacheSize)
		if err != nil {
			return nil, errors.Wrap(err, "create result cache")
		}
		sc.cache = cache
	}
	if sc.metrics != nil {
		for _, lang := range tries.Languages() {
			sc.metrics.DictionaryPhrases.Add(context.Background(), int64(tries.Get(lang).Len()),
				metric.WithAttributes(attribute.String("language", lang)))
		}
	}
	return sc, nil
}

// Correct maps text against the dictionary of language. Unknown languages
// return the text unchanged.
func (sc *SpellCorrector) Correct(ctx context.Context, text, language string) CorrectionResult {
	start := time.Now()
	language = normalizeLanguage(language)
	query := normalizeQuery(text)

	sc.mu.RLock()
	defer sc.mu.RUnlock()

	key := cacheKey(language, query)
	if sc.cache != nil {
		if res, ok := sc.cache.Get(key); ok {
			if sc.metrics != nil {
				sc.metrics.CacheHits.Add(ctx, 1, metric.WithAttributes(attribute.String("language", language)))
			}
			return res
		}
	}

	trie := sc.tries.Get(language)
	var c Correction
	if trie == nil {
		c = NewQueryMapper(nil).Map(text)
	} else {
		c = NewQueryMapper(trie, sc.opts...).Map(query)
	}
	res := CorrectionResult{
		Text:     c.Value,
		Original: c.Original,
		Distance: c.Distance,
		Score:    c.Score,
		Language: language,
	}
	if sc.cache != nil && trie != nil {
		sc.cache.Add(key, res)
	}

	sc.record(ctx, language, res, trie != nil, time.Since(start))
	return res
}

func (sc *SpellCorrector) record(ctx context.Context, language string, res CorrectionResult, known bool, took time.Duration) {
	outcome := "unchanged"
	switch {
	case !known:
		outcome = "unknown_language"
	case res.Distance > 0:
		outcome = "corrected"
	}
	sc.log.Debugw("corrected query",
		"language", language,
		"original", res.Original,
		"text", res.Text,
		"distance", res.Distance,
		"outcome", outcome,
		"took", took,
	)
	if sc.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("language", language))
	sc.metrics.CorrectionDuration.Record(ctx, took.Seconds(), attrs)
	sc.metrics.Corrections.Add(ctx, 1, metric.WithAttributes(
		attribute.String("language", language),
		attribute.String("outcome", outcome),
	))
}

// LoadCustomPhrases merges every phrase from the store into the tries.
func (sc *SpellCorrector) LoadCustomPhrases(ctx context.Context) error {
	if sc.dict == nil {
		return nil
	}
	entries, err := sc.dict.All(ctx)
	if err != nil {
		return errors.Wrap(err, "load custom phrases")
	}
	sc.mu.Lock()
	defer sc.mu.Unlock()
	for _, e := range entries {
		sc.insertLocked(ctx, e.Language, e.Phrase, e.Score)
	}
	sc.purgeLocked()
	sc.log.Infow("custom phrases loaded", "count", len(entries))
	return nil
}

// AddCustomPhrase stores phrase and makes it available to new queries. A
// zero score falls back to the configured custom score.
func (sc *SpellCorrector) AddCustomPhrase(ctx context.Context, language, phrase string, score float64) error {
	language, phrase, err := NormalizeCustomPhrase(language, phrase)
	if err != nil {
		return err
	}
	if score == 0 {
		score = sc.config.CustomScore
	}
	if sc.dict != nil {
		if err := sc.dict.Add(ctx, language, phrase, score); err != nil {
			return err
		}
	}
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.insertLocked(ctx, language, phrase, score)
	sc.purgeLocked()
	return nil
}

// RemoveCustomPhrase deletes phrase from the store and the trie.
func (sc *SpellCorrector) RemoveCustomPhrase(ctx context.Context, language, phrase string) error {
	language, phrase, err := NormalizeCustomPhrase(language, phrase)
	if err != nil {
		return err
	}
	if sc.dict != nil {
		if err := sc.dict.Remove(ctx, language, phrase); err != nil {
			return err
		}
	}
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.tries.Remove(language, phrase) {
		sc.countPhrases(ctx, language, -1)
	}
	sc.purgeLocked()
	return nil
}

func (sc *SpellCorrector) insertLocked(ctx context.Context, language, phrase string, score float64) {
	t := sc.tries.Get(language)
	before := 0
	if t != nil {
		before = t.Len()
	}
	if sc.tries.Insert(language, phrase, score) {
		sc.countPhrases(ctx, language, int64(sc.tries.Get(language).Len()-before))
	}
}

func (sc *SpellCorrector) countPhrases(ctx context.Context, language string, delta int64) {
	if sc.metrics == nil || delta == 0 {
		return
	}
	sc.metrics.DictionaryPhrases.Add(ctx, delta, metric.WithAttributes(attribute.String("language", normalizeLanguage(language))))
}

func (sc *SpellCorrector) purgeLocked() {
	if sc.cache != nil {
		sc.cache.Purge()
	}
}

// Languages reports the phrase count per loaded language.
func (sc *SpellCorrector) Languages() map[string]int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	out := make(map[string]int)
	for _, lang := range sc.tries.Languages() {
		out[lang] = sc.tries.Get(lang).Len()
	}
	return out
}
