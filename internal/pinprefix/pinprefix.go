// Package pinprefix finds the image path prefix used for map pins.
package pinprefix

import (
	"io"

	"golang.org/x/net/html"
)

// Attr is the page attribute carrying the prefix when no global value is set.
const Attr = "data-pin_prefix"

// Default is used when neither source provides a prefix.
const Default = "/i/pin"

// Resolve returns global if set, else the first data-pin_prefix attribute
// in page, else Default. page may be nil.
func Resolve(global string, page io.Reader) string {
	if global != "" {
		return global
	}
	if page != nil {
		if v, ok := FromPage(page); ok {
			return v
		}
	}
	return Default
}

// FromPage scans an HTML document for the first non-empty data-pin_prefix
// attribute.
func FromPage(page io.Reader) (string, bool) {
	z := html.NewTokenizer(page)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return "", false
		case html.StartTagToken, html.SelfClosingTagToken:
			_, more := z.TagName()
			for more {
				var key, val []byte
				key, val, more = z.TagAttr()
				if string(key) == Attr && len(val) > 0 {
					return string(val), true
				}
			}
		}
	}
}
