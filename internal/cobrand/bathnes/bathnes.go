// Package bathnes holds the Bath & North East Somerset asset layers.
package bathnes

import (
	"sort"

	"github.com/joeblew999/plat-assets/internal/asset"
)

// WFSURL is the council's iShare OWS endpoint.
const WFSURL = "https://isharemapstest.bathnes.gov.uk/getows.ashx"

// OwnerPattern identifies street lights the council itself maintains.
const OwnerPattern = "B&NES"

// Defaults is the base shared by every B&NES layer. Each call returns a
// fresh value.
func Defaults() asset.LayerConfig {
	return asset.LayerConfig{
		HTTPOptions: asset.HTTPOptions{
			URL: WFSURL,
			Params: asset.QueryParams{
				"mapsource":       "BathNES/WFS",
				asset.ParamService: "WFS",
				asset.ParamVersion: "1.1.0",
				asset.ParamRequest: "GetFeature",
				asset.ParamSRSName: "urn:ogc:def:crs:EPSG::27700",
			},
		},
		Format: asset.FormatGML,
		Type:   asset.GeometrySpot,
		Resolution: asset.Resolution{
			Min: 0.5971642833948135,
			Max: 2.388657133579254,
		},
		IDField:      "feature_no",
		GeometryName: "msGeometry",
		SRSName:      "EPSG:27700",
		Strategy:     asset.StrategyFixed,
	}
}

// Definition is one version of a layer, built over the cobrand defaults.
type Definition struct {
	ID      string
	Version int
	Build   func(defaults asset.LayerConfig) asset.LayerConfig
}

// Catalog returns every layer definition, ordered by ID then Version.
func Catalog() []Definition {
	defs := []Definition{
		{ID: GritBinsID, Version: 1, Build: GritBinsV1},
		{ID: GritBinsID, Version: 2, Build: GritBinsV2},
		{ID: StreetLightsID, Version: 1, Build: StreetLightsV1},
		{ID: StreetLightsID, Version: 2, Build: StreetLightsV2},
	}
	sort.SliceStable(defs, func(i, j int) bool {
		if defs[i].ID != defs[j].ID {
			return defs[i].ID < defs[j].ID
		}
		return defs[i].Version < defs[j].Version
	})
	return defs
}

// Layers builds each layer at the newest definition not above version.
// Version 0 selects the latest of every layer. Layers with no definition
// at or below version are left out.
func Layers(defaults asset.LayerConfig, version int) []asset.LayerConfig {
	pick := map[string]Definition{}
	var order []string
	for _, d := range Catalog() {
		if version > 0 && d.Version > version {
			continue
		}
		if _, seen := pick[d.ID]; !seen {
			order = append(order, d.ID)
		}
		pick[d.ID] = d
	}

	layers := make([]asset.LayerConfig, 0, len(order))
	for _, id := range order {
		layers = append(layers, pick[id].Build(defaults))
	}
	return layers
}
