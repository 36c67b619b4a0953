package customdict

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDict connects to REDIS_ADDR and isolates the test under its own
// key prefix.
func newTestDict(t *testing.T) *CustomDict {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	prefix := "test_custom_phrases_" + strconv.FormatInt(time.Now().UnixNano(), 36)
	cd := New(client, prefix)
	require.NoError(t, cd.Ping(context.Background()))
	t.Cleanup(func() {
		ctx := context.Background()
		keys, _ := client.Keys(ctx, prefix+":*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
	})
	return cd
}

func TestNewDefaultPrefix(t *testing.T) {
	cd := New(nil, "")
	assert.Equal(t, "custom_phrases:en", cd.key("en"))
	assert.Equal(t, "p:de", New(nil, "p").key("de"))
}

func TestCustomDictRoundTrip(t *testing.T) {
	cd := newTestDict(t)
	ctx := context.Background()

	require.NoError(t, cd.Add(ctx, "en", "mojito", 2.5))
	require.NoError(t, cd.Add(ctx, "en", "beach bar", 1))
	require.NoError(t, cd.Add(ctx, "de", "straße", 3))
	require.NoError(t, cd.Add(ctx, "en", "mojito", 4))

	entries, err := cd.All(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []Entry{
		{Language: "en", Phrase: "mojito", Score: 4},
		{Language: "en", Phrase: "beach bar", Score: 1},
		{Language: "de", Phrase: "straße", Score: 3},
	}, entries)

	require.NoError(t, cd.Remove(ctx, "en", "mojito"))
	require.NoError(t, cd.Remove(ctx, "en", "missing"))

	entries, err = cd.All(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestCustomDictBadScore(t *testing.T) {
	cd := newTestDict(t)
	ctx := context.Background()

	require.NoError(t, cd.client.HSet(ctx, cd.key("en"), "mojito", "many").Err())

	_, err := cd.All(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `score of "mojito"`)
}
