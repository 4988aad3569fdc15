package asset

import (
	"regexp"

	"github.com/paulmach/orb/geojson"
)

// Predicate tests a feature's attributes.
type Predicate func(props geojson.Properties) bool

// OwnerName returns the owner text held under key. Absent, nil and
// non-string values report ok=false.
func OwnerName(props geojson.Properties, key string) (name string, ok bool) {
	v, present := props[key]
	if !present {
		return "", false
	}
	name, ok = v.(string)
	return name, ok
}

// OwnedBy matches features whose owner under key matches re.
// Features without owner text never match.
func OwnedBy(key string, re *regexp.Regexp) Predicate {
	return func(props geojson.Properties) bool {
		name, ok := OwnerName(props, key)
		if !ok || re == nil {
			return false
		}
		return re.MatchString(name)
	}
}

// Not inverts p.
func Not(p Predicate) Predicate {
	return func(props geojson.Properties) bool {
		return !p(props)
	}
}

// Filter is the serialisable form of an ownership predicate. The zero
// Filter matches every feature and its inverse matches none.
type Filter struct {
	Property string `json:"property,omitempty" yaml:"property,omitempty" doc:"Attribute tested" example:"ownername"`
	Pattern  string `json:"pattern,omitempty" yaml:"pattern,omitempty" doc:"Regular expression" example:"B&NES"`
	Negate   bool   `json:"negate,omitempty" yaml:"negate,omitempty" doc:"Match features the pattern rejects"`

	re *regexp.Regexp
}

// MatchFilter builds a filter for features whose property matches pattern.
// It panics if pattern does not compile.
func MatchFilter(property, pattern string) Filter {
	return Filter{Property: property, Pattern: pattern, re: regexp.MustCompile(pattern)}
}

// Inverse returns the filter matching exactly the features f rejects.
func (f Filter) Inverse() Filter {
	f.Negate = !f.Negate
	return f
}

// IsZero reports whether f is the match-all filter.
func (f Filter) IsZero() bool {
	return f.Property == "" && f.Pattern == "" && !f.Negate
}

// Predicate returns f as a function. A pattern that fails to compile
// matches no owner, so the negated filter takes those features.
func (f Filter) Predicate() Predicate {
	if f.Property == "" && f.Pattern == "" {
		return func(geojson.Properties) bool { return !f.Negate }
	}
	re := f.re
	if re == nil {
		re, _ = regexp.Compile(f.Pattern)
	}
	p := OwnedBy(f.Property, re)
	if f.Negate {
		return Not(p)
	}
	return p
}

// Match applies f to props.
func (f Filter) Match(props geojson.Properties) bool {
	return f.Predicate()(props)
}
