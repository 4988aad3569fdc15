// Package service contains business logic for the asset layer service.
package service

import "github.com/joeblew999/plat-assets/internal/asset"

// Registration is a layer as registered with the map, in registration order.
type Registration struct {
	Seq   int               `json:"seq" doc:"Registration order, from 1" example:"1"`
	Layer asset.LayerConfig `json:"layer" doc:"Registered layer configuration"`
}

// StyleResult is the rule a feature matched and its rendered treatment.
type StyleResult struct {
	Rule       string           `json:"rule,omitempty" doc:"Matched rule name, empty when the layer has no rules" example:"owned"`
	Symbolizer asset.Symbolizer `json:"symbolizer" doc:"Visual treatment with the title expanded"`
}

// FeatureResult is one classified feature.
type FeatureResult struct {
	ID         string            `json:"id" doc:"Value of the layer's id field" example:"000123"`
	Visible    bool              `json:"visible" doc:"Whether the feature is styled by any rule"`
	Style      StyleResult       `json:"style" doc:"Matched style"`
	Attributes map[string]string `json:"attributes" doc:"Extracted report attributes"`
}
