package asset

import (
	"regexp"
	"strings"

	"github.com/paulmach/orb/geojson"
)

// Symbolizer is the visual treatment for a feature.
type Symbolizer struct {
	Fill          string  `json:"fill,omitempty" yaml:"fill,omitempty" doc:"Fill color (CSS)" example:"#FFFF00"`
	FillOpacity   float64 `json:"fillOpacity,omitempty" yaml:"fill_opacity,omitempty" minimum:"0" maximum:"1" doc:"Fill opacity (0-1)"`
	Stroke        string  `json:"stroke,omitempty" yaml:"stroke,omitempty" doc:"Stroke color (CSS)"`
	StrokeOpacity float64 `json:"strokeOpacity,omitempty" yaml:"stroke_opacity,omitempty" minimum:"0" maximum:"1" doc:"Stroke opacity (0-1)"`
	StrokeWidth   float64 `json:"strokeWidth,omitempty" yaml:"stroke_width,omitempty" doc:"Stroke width"`
	PointRadius   float64 `json:"pointRadius,omitempty" yaml:"point_radius,omitempty" doc:"Point radius"`
	Title         string  `json:"title,omitempty" yaml:"title,omitempty" doc:"Popup title template, ${name} placeholders" example:"${unitdescription} ${unitno}"`
}

// Render returns s with its title expanded against props.
func (s Symbolizer) Render(props geojson.Properties) Symbolizer {
	s.Title = ExpandTitle(s.Title, props)
	return s
}

var placeholder = regexp.MustCompile(`\$\{(\w+)\}`)

// ExpandTitle substitutes ${name} placeholders with feature properties.
// Missing properties expand to the empty string; any other $ is literal.
func ExpandTitle(tmpl string, props geojson.Properties) string {
	out := placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		return PropString(props, m[2:len(m)-1])
	})
	return strings.TrimSpace(out)
}

// StyleRule applies Symbolizer to the features Filter matches.
type StyleRule struct {
	Name       string     `json:"name" yaml:"name" doc:"Rule name" example:"owned"`
	Filter     Filter     `json:"filter" yaml:"filter,omitempty" doc:"Features the rule applies to"`
	Symbolizer Symbolizer `json:"symbolizer" yaml:"symbolizer" doc:"Visual treatment"`
}

// StyleRules is an ordered rule set; the first matching rule wins, so
// narrower rules come first.
type StyleRules []StyleRule

// Clone returns an independent copy of rs.
func (rs StyleRules) Clone() StyleRules {
	if rs == nil {
		return nil
	}
	out := make(StyleRules, len(rs))
	copy(out, rs)
	return out
}

// Match returns the first rule whose filter accepts props.
func (rs StyleRules) Match(props geojson.Properties) (StyleRule, bool) {
	for _, r := range rs {
		if r.Filter.Match(props) {
			return r, true
		}
	}
	return StyleRule{}, false
}
