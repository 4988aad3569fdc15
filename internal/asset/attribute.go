package asset

import (
	"fmt"
	"sort"
	"sync"

	"github.com/paulmach/orb/geojson"
)

// Formatter derives a display string from a feature's attributes.
type Formatter func(props geojson.Properties) string

var (
	formattersMu sync.RWMutex
	formatters   = map[string]Formatter{}
)

// RegisterFormatter makes f available to derived attributes by name.
// Configs loaded from JSON or YAML only carry the name.
func RegisterFormatter(name string, f Formatter) {
	formattersMu.Lock()
	defer formattersMu.Unlock()
	formatters[name] = f
}

// LookupFormatter returns the formatter registered under name.
func LookupFormatter(name string) (Formatter, bool) {
	formattersMu.RLock()
	defer formattersMu.RUnlock()
	f, ok := formatters[name]
	return f, ok
}

// Attribute is either a reference to a feature property or a derived value.
// Exactly one of Field and Derived is set.
type Attribute struct {
	Field   string `json:"field,omitempty" yaml:"field,omitempty" doc:"Source property name"`
	Derived string `json:"derived,omitempty" yaml:"derived,omitempty" doc:"Named formatter"`

	format Formatter
}

// FieldAttr copies the named feature property.
func FieldAttr(name string) Attribute {
	return Attribute{Field: name}
}

// DerivedAttr computes the value with f, registering it under name.
func DerivedAttr(name string, f Formatter) Attribute {
	RegisterFormatter(name, f)
	return Attribute{Derived: name, format: f}
}

// IsDerived reports whether the attribute is computed rather than copied.
func (a Attribute) IsDerived() bool {
	return a.Derived != ""
}

// Resolve returns the attribute's value for a feature. Missing properties
// and unknown formatters resolve to the empty string.
func (a Attribute) Resolve(props geojson.Properties) string {
	if a.IsDerived() {
		f := a.format
		if f == nil {
			var ok bool
			if f, ok = LookupFormatter(a.Derived); !ok {
				return ""
			}
		}
		return f(props)
	}
	return PropString(props, a.Field)
}

// AttributeMap maps report attribute keys to their sources.
type AttributeMap map[string]Attribute

// Clone returns an independent copy of m.
func (m AttributeMap) Clone() AttributeMap {
	if m == nil {
		return nil
	}
	out := make(AttributeMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Keys returns the attribute keys in sorted order.
func (m AttributeMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Extract resolves every attribute against props.
func (m AttributeMap) Extract(props geojson.Properties) map[string]string {
	out := make(map[string]string, len(m))
	for k, a := range m {
		out[k] = a.Resolve(props)
	}
	return out
}

// PropString returns the named property as text. Absent and nil values are
// empty; non-string values use their default formatting.
func PropString(props geojson.Properties, key string) string {
	v, ok := props[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
