package corrector

import (
	"context"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"phrasecorrector/internal/customdict"
	"phrasecorrector/internal/observe"
)

type memStore struct {
	mu      sync.Mutex
	entries map[[2]string]float64
	err     error
}

func newMemStore(entries ...customdict.Entry) *memStore {
	s := &memStore{entries: make(map[[2]string]float64)}
	for _, e := range entries {
		s.entries[[2]string{e.Language, e.Phrase}] = e.Score
	}
	return s
}

func (s *memStore) Add(_ context.Context, language, phrase string, score float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.entries[[2]string{language, phrase}] = score
	return nil
}

func (s *memStore) Remove(_ context.Context, language, phrase string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	delete(s.entries, [2]string{language, phrase})
	return nil
}

func (s *memStore) All(context.Context) ([]customdict.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var out []customdict.Entry
	for k, score := range s.entries {
		out = append(out, customdict.Entry{Language: k[0], Phrase: k[1], Score: score})
	}
	return out, nil
}

var testConfig = CorrectorConfig{
	AllowedDistances: []int{3, 10},
	MaxLookahead:     5,
	CacheSize:        16,
	CustomScore:      5,
}

func newTestCorrector(t *testing.T, phrases map[string]float64, opts ...Option) *SpellCorrector {
	t.Helper()
	ts := NewTries()
	for p, s := range phrases {
		ts.Insert("en", p, s)
	}
	sc, err := NewSpellCorrector(testConfig, ts, opts...)
	require.NoError(t, err)
	return sc
}

func TestSpellCorrectorCorrect(t *testing.T) {
	sc := newTestCorrector(t, map[string]float64{"beach bar": 1, "cocktail": 2})
	ctx := context.Background()

	got := sc.Correct(ctx, "Beahc Bar cocktial", " EN")
	assert.Equal(t, CorrectionResult{
		Text:     "beach bar, cocktail",
		Original: "beahc bar cocktial",
		Distance: 2,
		Score:    3,
		Language: "en",
	}, got)

	assert.Equal(t, got, sc.Correct(ctx, "beahc bar cocktial", "en"), "served from cache")
}

func TestSpellCorrectorUnknownLanguage(t *testing.T) {
	sc := newTestCorrector(t, map[string]float64{"beach bar": 1})

	got := sc.Correct(context.Background(), "Beahc Bar", "fr")

	assert.Equal(t, "Beahc Bar", got.Text)
	assert.Zero(t, got.Distance)
	assert.Zero(t, got.Score)
}

func TestSpellCorrectorWithoutCache(t *testing.T) {
	cfg := testConfig
	cfg.CacheSize = 0
	ts := NewTries()
	ts.Insert("en", "cocktail", 2)
	sc, err := NewSpellCorrector(cfg, ts)
	require.NoError(t, err)

	assert.Nil(t, sc.cache)
	assert.Equal(t, "cocktail", sc.Correct(context.Background(), "coktail", "en").Text)
}

func TestSpellCorrectorCustomPhrases(t *testing.T) {
	store := newMemStore()
	sc := newTestCorrector(t, map[string]float64{"cocktail": 2}, WithStore(store))
	ctx := context.Background()

	assert.Equal(t, "mojto", sc.Correct(ctx, "mojto", "en").Text)

	require.NoError(t, sc.AddCustomPhrase(ctx, "EN", " Mojito ", 0))
	got := sc.Correct(ctx, "mojto", "en")
	assert.Equal(t, "mojito", got.Text, "cache is purged on insert")
	assert.Equal(t, 5.0, got.Score, "custom score applies without a score")
	assert.Equal(t, map[[2]string]float64{{"en", "mojito"}: 5}, store.entries)

	require.NoError(t, sc.RemoveCustomPhrase(ctx, "en", "MOJITO"))
	assert.Equal(t, "mojto", sc.Correct(ctx, "mojto", "en").Text, "cache is purged on removal")
	assert.Empty(t, store.entries)

	require.NoError(t, sc.AddCustomPhrase(ctx, "de", "Straße", 7))
	assert.Equal(t, map[string]int{"en": 1, "de": 1}, sc.Languages())
	assert.Equal(t, "straße", sc.Correct(ctx, "strase", "de").Text)
}

func TestSpellCorrectorCustomPhraseErrors(t *testing.T) {
	store := newMemStore()
	sc := newTestCorrector(t, map[string]float64{"cocktail": 2}, WithStore(store))
	ctx := context.Background()

	assert.ErrorIs(t, sc.AddCustomPhrase(ctx, "en", "  ", 1), ErrEmptyPhrase)
	assert.ErrorIs(t, sc.AddCustomPhrase(ctx, "", "mojito", 1), ErrEmptyLanguage)
	assert.ErrorIs(t, sc.RemoveCustomPhrase(ctx, "en", ""), ErrEmptyPhrase)

	store.err = errors.New("redis down")
	err := sc.AddCustomPhrase(ctx, "en", "mojito", 1)
	require.Error(t, err)
	assert.Equal(t, "mojto", sc.Correct(ctx, "mojto", "en").Text, "nothing inserted when the store fails")
	assert.Error(t, sc.RemoveCustomPhrase(ctx, "en", "cocktail"))
	assert.Equal(t, "cocktail", sc.Correct(ctx, "coktail", "en").Text)
}

func TestSpellCorrectorLoadCustomPhrases(t *testing.T) {
	store := newMemStore(
		customdict.Entry{Language: "en", Phrase: "mojito", Score: 3},
		customdict.Entry{Language: "de", Phrase: "schön", Score: 1},
	)
	sc, err := NewSpellCorrector(testConfig, nil, WithStore(store))
	require.NoError(t, err)
	ctx := context.Background()

	require.Empty(t, sc.Languages())
	require.NoError(t, sc.LoadCustomPhrases(ctx))

	assert.Equal(t, map[string]int{"en": 1, "de": 1}, sc.Languages())
	assert.Equal(t, "schön", sc.Correct(ctx, "schoen", "de").Text)

	store.err = errors.New("redis down")
	err = sc.LoadCustomPhrases(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load custom phrases")
}

func TestSpellCorrectorWithoutStore(t *testing.T) {
	sc := newTestCorrector(t, nil)
	ctx := context.Background()

	require.NoError(t, sc.LoadCustomPhrases(ctx))
	require.NoError(t, sc.AddCustomPhrase(ctx, "en", "mojito", 2))
	assert.Equal(t, "mojito", sc.Correct(ctx, "mojto", "en").Text)
}

func sumValues(t *testing.T, rm metricdata.ResourceMetrics, name string) map[string]int64 {
	t.Helper()
	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "%s is not a sum", name)
			for _, dp := range sum.DataPoints {
				lang, _ := dp.Attributes.Value("language")
				key := lang.AsString()
				if outcome, ok := dp.Attributes.Value("outcome"); ok {
					key += "/" + outcome.AsString()
				}
				out[key] = dp.Value
			}
		}
	}
	return out
}

func TestSpellCorrectorMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	m, err := observe.NewMetrics(mp)
	require.NoError(t, err)

	sc := newTestCorrector(t, map[string]float64{"cocktail": 2, "summer": 3}, WithMetrics(m))
	ctx := context.Background()

	sc.Correct(ctx, "coktail", "en")
	sc.Correct(ctx, "coktail", "en")
	sc.Correct(ctx, "summer", "en")
	sc.Correct(ctx, "summer", "fr")
	require.NoError(t, sc.AddCustomPhrase(ctx, "en", "mojito", 1))
	require.NoError(t, sc.AddCustomPhrase(ctx, "en", "mojito", 2))
	require.NoError(t, sc.RemoveCustomPhrase(ctx, "en", "summer"))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	assert.Equal(t, map[string]int64{
		"en/corrected":        1,
		"en/unchanged":        1,
		"fr/unknown_language": 1,
	}, sumValues(t, rm, "phrasecorrector.corrections"))
	assert.Equal(t, map[string]int64{"en": 1}, sumValues(t, rm, "phrasecorrector.cache.hits"))
	assert.Equal(t, map[string]int64{"en": 2}, sumValues(t, rm, "phrasecorrector.dictionary.phrases"))
}

func TestSpellCorrectorConcurrentWrites(t *testing.T) {
	sc := newTestCorrector(t, map[string]float64{"cocktail": 2})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range 50 {
				assert.Equal(t, "cocktail", sc.Correct(ctx, "coktail", "en").Text)
			}
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, sc.AddCustomPhrase(ctx, "en", []string{"mojito", "summer", "beach bar", "skyscraper"}[i], 1))
		}()
	}
	wg.Wait()

	assert.Equal(t, map[string]int{"en": 5}, sc.Languages())
}
