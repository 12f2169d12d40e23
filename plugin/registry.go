package plugin

import (
	"fmt"

	Og "github.com/craque/ottava/glyph"
)

// Sources is a global map of MetricsProvider factories.
// Each factory builds a vector source from one config stanza.
var Sources = map[string]func(cf Og.ConfigFile) (Og.MetricsProvider, error){
	"random": func(cf Og.ConfigFile) (Og.MetricsProvider, error) {
		max := cf.MaxVal
		if max <= 0 {
			max = Og.DefaultGlyphConfig().MaxValue
		}
		return Og.NewRandomProvider(max), nil
	},
	"poll": func(cf Og.ConfigFile) (Og.MetricsProvider, error) {
		return Og.NewPollProviderFromConfig(cf)
	},
}

func SourceLookup(name string, cf Og.ConfigFile) (Og.MetricsProvider, error) {
	factory, ok := Sources[name]
	if !ok {
		return nil, fmt.Errorf("unknown source: %s", name)
	}
	return factory(cf)
}
