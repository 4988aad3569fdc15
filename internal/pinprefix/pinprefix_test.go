package pinprefix

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const page = `<!doctype html>
<html>
<head><title>Report</title></head>
<body class="mappage">
  <div id="map_box" data-pin_prefix="/cobrands/bathnes/images/pin-" data-map_type="OpenLayers.Layer.OSM"></div>
  <img src="/i/logo.png"/>
</body>
</html>`

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		global string
		page   string
		want   string
	}{
		{"global wins", "/static/pins/", page, "/static/pins/"},
		{"page attribute", "", page, "/cobrands/bathnes/images/pin-"},
		{"empty attribute skipped", "", `<div data-pin_prefix=""></div><p data-pin_prefix="/x/"></p>`, "/x/"},
		{"no attribute", "", `<div id="map_box"></div>`, Default},
		{"not html", "", "plain text", Default},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.global, strings.NewReader(tt.page)))
		})
	}
}

func TestResolveNilPage(t *testing.T) {
	assert.Equal(t, Default, Resolve("", nil))
}
