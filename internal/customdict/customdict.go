package customdict

import (
	"context"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "custom_phrases"

// Entry is one stored custom phrase.
type Entry struct {
	Language string
	Phrase   string
	Score    float64
}

// CustomDict stores custom phrases in Redis, one hash per language mapping
// phrase to score.
type CustomDict struct {
	client *redis.Client
	prefix string
}

// New creates a new CustomDict with the provided Redis client. An empty
// prefix selects "custom_phrases".
func New(client *redis.Client, prefix string) *CustomDict {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &CustomDict{client: client, prefix: prefix}
}

func (cd *CustomDict) key(language string) string {
	return cd.prefix + ":" + language
}

// Add inserts a phrase or updates its score.
func (cd *CustomDict) Add(ctx context.Context, language, phrase string, score float64) error {
	err := cd.client.HSet(ctx, cd.key(language), phrase, strconv.FormatFloat(score, 'f', -1, 64)).Err()
	return errors.Wrapf(err, "store custom phrase %q", phrase)
}

// Remove deletes a phrase from the custom dictionary.
func (cd *CustomDict) Remove(ctx context.Context, language, phrase string) error {
	err := cd.client.HDel(ctx, cd.key(language), phrase).Err()
	return errors.Wrapf(err, "delete custom phrase %q", phrase)
}

// All returns every stored phrase across languages.
func (cd *CustomDict) All(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	iter := cd.client.Scan(ctx, 0, cd.prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		language := strings.TrimPrefix(key, cd.prefix+":")
		fields, err := cd.client.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", key)
		}
		for phrase, raw := range fields {
			score, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "score of %q in %s", phrase, key)
			}
			entries = append(entries, Entry{Language: language, Phrase: phrase, Score: score})
		}
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "scan custom phrases")
	}
	return entries, nil
}

// Ping checks the connection.
func (cd *CustomDict) Ping(ctx context.Context) error {
	return cd.client.Ping(ctx).Err()
}
