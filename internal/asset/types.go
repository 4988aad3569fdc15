// Package asset describes map overlay layers ("assets") that a cobrand
// registers with the host mapping platform.
//
// A layer is a plain value: connection parameters for a WFS source, display
// metadata, and the attribute and style rules the platform applies to the
// features it fetches. The package never talks WFS itself.
package asset

// WFS query parameter names.
const (
	ParamService      = "SERVICE"
	ParamVersion      = "VERSION"
	ParamRequest      = "REQUEST"
	ParamTypeName     = "TYPENAME"
	ParamSRSName      = "SRSNAME"
	ParamOutputFormat = "outputFormat"
)

// Format is the response encoding requested from the WFS endpoint.
type Format string

const (
	FormatGML     Format = "gml"
	FormatGeoJSON Format = "geojson"
)

// GeometryKind is how the platform draws and selects a layer's features.
type GeometryKind string

const (
	GeometrySpot GeometryKind = "spot"
)

// Strategy names how the platform loads features for a layer.
type Strategy string

const (
	StrategyFixed Strategy = "fixed"
	StrategyBBox  Strategy = "bbox"
)

// QueryParams are the WFS request parameters.
type QueryParams map[string]string

// Clone returns an independent copy of p.
func (p QueryParams) Clone() QueryParams {
	if p == nil {
		return nil
	}
	out := make(QueryParams, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// TypeName returns the remote feature collection selected by p.
func (p QueryParams) TypeName() string {
	return p[ParamTypeName]
}

// HTTPOptions locate the WFS data source.
type HTTPOptions struct {
	URL    string      `json:"url" yaml:"url" doc:"WFS endpoint" example:"https://isharemapstest.bathnes.gov.uk/getows.ashx"`
	Params QueryParams `json:"params" yaml:"params" doc:"WFS query parameters"`
}

// Resolution bounds the map resolutions at which a layer is shown.
type Resolution struct {
	Min float64 `json:"min" yaml:"min" doc:"Minimum map resolution"`
	Max float64 `json:"max" yaml:"max" doc:"Maximum map resolution"`
}

// Visible reports whether r lies within the bounds. A zero bound is open.
func (b Resolution) Visible(r float64) bool {
	if b.Min != 0 && r < b.Min {
		return false
	}
	if b.Max != 0 && r > b.Max {
		return false
	}
	return true
}

// LayerConfig is one asset layer as handed to the mapping platform.
type LayerConfig struct {
	ID           string       `json:"id" yaml:"id,omitempty" doc:"Layer identifier" example:"gritbins"`
	Version      int          `json:"version" yaml:"version,omitempty" doc:"Definition version" example:"2"`
	HTTPOptions  HTTPOptions  `json:"httpOptions" yaml:"http_options,omitempty" doc:"WFS connection"`
	Format       Format       `json:"format" yaml:"format,omitempty" enum:"gml,geojson" doc:"WFS response format"`
	Category     string       `json:"category" yaml:"category,omitempty" doc:"Reporting category" example:"Grit Bins"`
	Item         string       `json:"item" yaml:"item,omitempty" doc:"Asset noun" example:"grit bin"`
	Type         GeometryKind `json:"type" yaml:"type,omitempty" enum:"spot" doc:"Asset geometry kind"`
	Resolution   Resolution   `json:"resolution" yaml:"resolution,omitempty" doc:"Visible resolution range"`
	IDField      string       `json:"idField" yaml:"id_field,omitempty" doc:"Feature id property" example:"feature_no"`
	Attributes   AttributeMap `json:"attributes,omitempty" yaml:"attributes,omitempty" doc:"Attributes copied into reports"`
	Style        StyleRules   `json:"style,omitempty" yaml:"style,omitempty" doc:"Conditional styling rules"`
	GeometryName string       `json:"geometryName,omitempty" yaml:"geometry_name,omitempty" doc:"Geometry property name"`
	SRSName      string       `json:"srsName,omitempty" yaml:"srs_name,omitempty" doc:"Layer projection" example:"EPSG:27700"`
	Strategy     Strategy     `json:"strategy,omitempty" yaml:"strategy,omitempty" enum:"fixed,bbox" doc:"Feature loading strategy"`
}

// TypeName returns the WFS feature type the layer reads.
func (c LayerConfig) TypeName() string {
	return c.HTTPOptions.Params.TypeName()
}

// Clone returns a deep copy of c.
func (c LayerConfig) Clone() LayerConfig {
	out := c
	out.HTTPOptions.Params = c.HTTPOptions.Params.Clone()
	out.Attributes = c.Attributes.Clone()
	out.Style = c.Style.Clone()
	return out
}
