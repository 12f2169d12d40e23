package plugin_test

import (
	"testing"

	Og "github.com/craque/ottava/glyph"
	Mp "github.com/craque/ottava/plugin"
)

func TestSourceLookup(t *testing.T) {
	t.Run("builds the random source", func(t *testing.T) {
		p, err := Mp.SourceLookup("random", Og.ConfigFile{MaxVal: 20})
		if err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
		vec, err := p.NextVector()
		if err != nil {
			t.Fatalf("NextVector failed: %v", err)
		}
		if len(vec) != 8 {
			t.Errorf("got %d values, want 8", len(vec))
		}
	})

	t.Run("builds the poll source", func(t *testing.T) {
		cf := Og.ConfigFile{
			ID:  "TEST",
			URL: "http://localhost:19999/api/v3/allmetrics",
			Metrics: []string{
				"A_PRE", "A_POST", "B_PRE", "B_POST",
				"C_PRE", "C_POST", "D_PRE", "D_POST",
			},
		}
		if _, err := Mp.SourceLookup("poll", cf); err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
	})

	t.Run("rejects an unknown source", func(t *testing.T) {
		if _, err := Mp.SourceLookup("theremin", Og.ConfigFile{}); err == nil {
			t.Error("wanted an error but didn't get one")
		}
	})
}
