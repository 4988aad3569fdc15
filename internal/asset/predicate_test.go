package asset

import (
	"regexp"
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
)

func TestOwnerName(t *testing.T) {
	name, ok := OwnerName(geojson.Properties{"ownername": "B&NES"}, "ownername")
	assert.True(t, ok)
	assert.Equal(t, "B&NES", name)

	_, ok = OwnerName(geojson.Properties{}, "ownername")
	assert.False(t, ok)

	_, ok = OwnerName(geojson.Properties{"ownername": nil}, "ownername")
	assert.False(t, ok)

	_, ok = OwnerName(geojson.Properties{"ownername": 42.0}, "ownername")
	assert.False(t, ok)
}

func TestOwnedByExamples(t *testing.T) {
	owned := OwnedBy("ownername", regexp.MustCompile("B&NES"))

	assert.True(t, owned(geojson.Properties{"ownername": "B&NES Highways"}))
	assert.False(t, owned(geojson.Properties{"ownername": "Contractor X"}))
	assert.False(t, owned(geojson.Properties{}))
	assert.False(t, owned(nil))
}

func TestOwnershipPartition(t *testing.T) {
	bags := map[string]geojson.Properties{
		"owned":      {"ownername": "B&NES Highways"},
		"other":      {"ownername": "Contractor X"},
		"empty":      {"ownername": ""},
		"absent":     {"street": "High St"},
		"nil":        {"ownername": nil},
		"number":     {"ownername": 7.0},
		"bool":       {"ownername": true},
		"list":       {"ownername": []any{"B&NES"}},
		"nil bag":    nil,
		"wrong case": {"ownername": "b&nes"},
	}

	filter := MatchFilter("ownername", "B&NES")
	owned, notOwned := filter.Predicate(), filter.Inverse().Predicate()

	for name, props := range bags {
		t.Run(name, func(t *testing.T) {
			assert.True(t, owned(props) != notOwned(props), "exactly one side must match")
		})
	}
}

func TestFilterFromDecodedConfig(t *testing.T) {
	// Decoded filters have no compiled pattern until first use.
	f := Filter{Property: "ownername", Pattern: "B&NES"}
	assert.True(t, f.Match(geojson.Properties{"ownername": "B&NES"}))
	assert.True(t, f.Inverse().Match(geojson.Properties{"ownername": "Someone"}))
}

func TestFilterBadPatternStillPartitions(t *testing.T) {
	f := Filter{Property: "ownername", Pattern: "("}
	props := geojson.Properties{"ownername": "("}
	assert.False(t, f.Match(props))
	assert.True(t, f.Inverse().Match(props))
}

func TestZeroFilterMatchesAll(t *testing.T) {
	assert.True(t, Filter{}.Match(nil))
	assert.True(t, Filter{}.Match(geojson.Properties{"x": 1}))
	assert.True(t, Filter{}.IsZero())

	none := Filter{}.Inverse()
	assert.False(t, none.IsZero())
	assert.False(t, none.Match(nil))
	assert.False(t, none.Match(geojson.Properties{"ownername": "B&NES"}))
}
