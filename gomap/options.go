package gomap

// MapOption is an option for controlling the mapping from IR to Go values.
type MapOption func(*mapConfig)

type mapConfig struct {
	keySymbols bool
}

func newMapConfig(opts ...MapOption) *mapConfig {
	cfg := &mapConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// KeySymbols makes objects materialize as map[Symbol]any instead of
// map[string]any.
func KeySymbols(v bool) MapOption {
	return func(c *mapConfig) { c.keySymbols = v }
}
