package asset

import (
	"strings"

	"github.com/paulmach/orb/geojson"
)

// DetailLine pairs a label with the property it shows.
type DetailLine struct {
	Label    string
	Property string
}

// StreetlightLines is the fixed layout of a street light's details.
var StreetlightLines = []DetailLine{
	{"street", "street"},
	{"owner", "ownername"},
	{"unitno", "unitno"},
	{"lamp", "lamp"},
	{"lampclass", "lampclass"},
	{"description", "unitdescription"},
}

// Details renders one "label: value" line per entry of lines, in order.
// Missing properties leave the value empty.
func Details(lines []DetailLine, props geojson.Properties) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.Label)
		b.WriteString(": ")
		b.WriteString(PropString(props, l.Property))
	}
	return b.String()
}

// StreetlightDetails is the asset_details text for a street light.
func StreetlightDetails(props geojson.Properties) string {
	return Details(StreetlightLines, props)
}
