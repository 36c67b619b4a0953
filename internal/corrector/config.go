package corrector

import "phrasecorrector/pkg/options"

type CorrectorConfig struct {
	AllowedDistances []int
	MaxLookahead     int
	// CacheSize bounds the whole-query result cache; 0 disables it.
	CacheSize int
	// CustomScore is used for custom phrases added without a score.
	CustomScore float64
}

func (c CorrectorConfig) mapperOptions() []options.Options {
	opts := []options.Options{options.WithMaxLookahead(c.MaxLookahead)}
	if c.AllowedDistances != nil {
		opts = append(opts, options.WithAllowedDistances(c.AllowedDistances...))
	}
	return opts
}

// CorrectionResult is the outcome of correcting one query.
type CorrectionResult struct {
	Text     string  `json:"text"`
	Original string  `json:"original,omitempty"`
	Distance int     `json:"distance"`
	Score    float64 `json:"score"`
	Language string  `json:"language,omitempty"`
}
