package config

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Validate checks the loaded values and fills derived fields. Load calls
// it; call it again after overriding fields by hand.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, errors.Newf("server.port must be in 1..65535 (got %d)", c.Server.Port))
	}
	if c.Corrector.MaxLookahead < 1 {
		errs = append(errs, errors.Newf("corrector.max_lookahead must be >= 1 (got %d)", c.Corrector.MaxLookahead))
	}
	if c.Corrector.CacheSize < 0 {
		errs = append(errs, errors.Newf("corrector.cache_size must be >= 0 (got %d)", c.Corrector.CacheSize))
	}
	distances, err := ParseDistances(c.Corrector.DistancesRaw)
	if err != nil {
		errs = append(errs, errors.Wrap(err, "corrector.distances"))
	}
	c.Corrector.Distances = distances

	return errors.Join(errs...)
}

// ParseDistances parses a comma separated list of ascending, non-negative
// word lengths. An empty string yields no thresholds.
func ParseDistances(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []int{}, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.Wrapf(err, "distance %q", p)
		}
		if n < 0 {
			return nil, errors.Newf("distance %d is negative", n)
		}
		if len(out) > 0 && n < out[len(out)-1] {
			return nil, errors.Newf("distances must be ascending (%d after %d)", n, out[len(out)-1])
		}
		out = append(out, n)
	}
	return out, nil
}
