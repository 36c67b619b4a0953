package options

// DefaultOptions match the service defaults: up to five words per phrase,
// no edits up to four characters, one edit up to nine, two beyond.
var DefaultOptions = MapperOptions{
	MaxLookahead:     5,
	AllowedDistances: []int{4, 9},
}

type MapperOptions struct {
	// MaxLookahead caps how many query words one phrase may cover.
	MaxLookahead int
	// AllowedDistances holds ascending word length thresholds. A word may
	// take as many edits as there are thresholds shorter than it.
	AllowedDistances []int
}

type Options interface {
	Apply(options *MapperOptions)
}

type FuncConfig struct {
	ops func(options *MapperOptions)
}

func (w FuncConfig) Apply(conf *MapperOptions) {
	w.ops(conf)
}

func NewFuncOption(f func(options *MapperOptions)) *FuncConfig {
	return &FuncConfig{ops: f}
}

// New applies opts on top of DefaultOptions.
func New(opts ...Options) MapperOptions {
	conf := DefaultOptions
	conf.AllowedDistances = append([]int(nil), DefaultOptions.AllowedDistances...)
	for _, o := range opts {
		o.Apply(&conf)
	}
	return conf
}

func WithMaxLookahead(words int) Options {
	return NewFuncOption(func(options *MapperOptions) {
		if words > 0 {
			options.MaxLookahead = words
		}
	})
}

func WithAllowedDistances(distances ...int) Options {
	return NewFuncOption(func(options *MapperOptions) {
		options.AllowedDistances = append([]int(nil), distances...)
	})
}

// MaxEdits returns the edit budget for a word of the given length: the
// index of the first threshold not shorter than the word.
func (o MapperOptions) MaxEdits(length int) int {
	for i, bound := range o.AllowedDistances {
		if bound >= length {
			return i
		}
	}
	return len(o.AllowedDistances)
}
