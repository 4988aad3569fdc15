package bathnes

import (
	"github.com/joeblew999/plat-assets/internal/asset"
)

// Layer IDs.
const (
	GritBinsID     = "gritbins"
	StreetLightsID = "streetlights"
)

// AssetDetails is the derived attribute name carrying a street light's
// popup text.
const AssetDetails = "asset_details"

func init() {
	asset.RegisterFormatter(AssetDetails, asset.StreetlightDetails)
}

var geoJSON = asset.LayerConfig{
	HTTPOptions: asset.HTTPOptions{
		Params: asset.QueryParams{asset.ParamOutputFormat: "application/json"},
	},
	Format:   asset.FormatGeoJSON,
	Strategy: asset.StrategyBBox,
}

// GritBinsV1 reads Gritbins as GML.
func GritBinsV1(defaults asset.LayerConfig) asset.LayerConfig {
	return asset.Merge(defaults, asset.LayerConfig{
		ID:      GritBinsID,
		Version: 1,
		HTTPOptions: asset.HTTPOptions{
			Params: asset.QueryParams{asset.ParamTypeName: "Gritbins"},
		},
		Category: "Grit Bins",
		Item:     "grit bin",
		Attributes: asset.AttributeMap{
			"feature_id": asset.FieldAttr("feature_id"),
		},
	})
}

// GritBinsV2 reads Gritbins as GeoJSON, loading by bounding box.
func GritBinsV2(defaults asset.LayerConfig) asset.LayerConfig {
	cfg := asset.Merge(GritBinsV1(defaults), geoJSON)
	cfg.Version = 2
	return cfg
}

// StreetLightsV1 reads StreetLighting as GML.
func StreetLightsV1(defaults asset.LayerConfig) asset.LayerConfig {
	return asset.Merge(defaults, asset.LayerConfig{
		ID:      StreetLightsID,
		Version: 1,
		HTTPOptions: asset.HTTPOptions{
			Params: asset.QueryParams{asset.ParamTypeName: "StreetLighting"},
		},
		Category: "Street Light Fault",
		Item:     "street light",
		Attributes: asset.AttributeMap{
			"feature_id": asset.FieldAttr("feature_id"),
		},
	})
}

// StreetLightsV2 adds GeoJSON, ownership styling and the asset_details
// popup text.
func StreetLightsV2(defaults asset.LayerConfig) asset.LayerConfig {
	cfg := asset.Merge(StreetLightsV1(defaults), geoJSON)
	return asset.Merge(cfg, asset.LayerConfig{
		Version: 2,
		Attributes: asset.AttributeMap{
			"feature_id": asset.FieldAttr("feature_id"),
			AssetDetails: asset.DerivedAttr(AssetDetails, asset.StreetlightDetails),
		},
		Style: StreetLightStyle(),
	})
}

// OwnedFilter matches street lights the council maintains.
func OwnedFilter() asset.Filter {
	return asset.MatchFilter("ownername", OwnerPattern)
}

// StreetLightStyle highlights council-owned lights; everything else gets
// the muted default.
func StreetLightStyle() asset.StyleRules {
	owned := OwnedFilter()
	return asset.StyleRules{
		{
			Name:   "owned",
			Filter: owned,
			Symbolizer: asset.Symbolizer{
				Fill:          "#FFFF00",
				FillOpacity:   0.6,
				Stroke:        "#000000",
				StrokeOpacity: 0.6,
				StrokeWidth:   2,
				PointRadius:   8,
				Title:         "${unitdescription} ${unitno}",
			},
		},
		{
			Name:   "default",
			Filter: owned.Inverse(),
			Symbolizer: asset.Symbolizer{
				Fill:          "#868686",
				FillOpacity:   0.6,
				Stroke:        "#000000",
				StrokeOpacity: 0.6,
				StrokeWidth:   2,
				PointRadius:   4,
				Title:         "${ownername}",
			},
		},
	}
}
