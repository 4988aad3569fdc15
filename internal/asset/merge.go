package asset

// Merge returns a new config: a deep copy of base with every non-zero field
// of override applied. Query parameters merge key by key. Attributes and
// Style are replaced wholesale when override sets them and inherited when
// it leaves them nil. Neither argument is modified.
func Merge(base, override LayerConfig) LayerConfig {
	out := base.Clone()

	if override.ID != "" {
		out.ID = override.ID
	}
	if override.Version != 0 {
		out.Version = override.Version
	}
	if override.HTTPOptions.URL != "" {
		out.HTTPOptions.URL = override.HTTPOptions.URL
	}
	if len(override.HTTPOptions.Params) > 0 {
		if out.HTTPOptions.Params == nil {
			out.HTTPOptions.Params = make(QueryParams, len(override.HTTPOptions.Params))
		}
		for k, v := range override.HTTPOptions.Params {
			out.HTTPOptions.Params[k] = v
		}
	}
	if override.Format != "" {
		out.Format = override.Format
	}
	if override.Category != "" {
		out.Category = override.Category
	}
	if override.Item != "" {
		out.Item = override.Item
	}
	if override.Type != "" {
		out.Type = override.Type
	}
	if override.Resolution.Min != 0 {
		out.Resolution.Min = override.Resolution.Min
	}
	if override.Resolution.Max != 0 {
		out.Resolution.Max = override.Resolution.Max
	}
	if override.IDField != "" {
		out.IDField = override.IDField
	}
	if override.Attributes != nil {
		out.Attributes = override.Attributes.Clone()
	}
	if override.Style != nil {
		out.Style = override.Style.Clone()
	}
	if override.GeometryName != "" {
		out.GeometryName = override.GeometryName
	}
	if override.SRSName != "" {
		out.SRSName = override.SRSName
	}
	if override.Strategy != "" {
		out.Strategy = override.Strategy
	}

	return out
}
