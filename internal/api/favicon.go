package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/amterp/swatch/internal/model"
)

// GenerateFaviconSVG draws the palette as vertical stripes in a rounded square.
func GenerateFaviconSVG(p model.Palette) string {
	const size = 32
	stripe := float64(size) / float64(len(p))

	var b strings.Builder
	for i, c := range p {
		if !c.Valid() {
			c = "#6B7280" // gray for a zero palette
		}
		fmt.Fprintf(&b, `<rect x="%.1f" y="0" width="%.1f" height="%d" fill="%s"/>`,
			float64(i)*stripe, stripe+0.5, size, c)
	}

	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d"><clipPath id="r"><rect width="%d" height="%d" rx="6"/></clipPath><g clip-path="url(#r)">%s</g></svg>`,
		size, size, size, size, b.String(),
	)
}

// GetFavicon serves a favicon of the palette currently shown.
func (h *Handler) GetFavicon(w http.ResponseWriter, r *http.Request) {
	svg := GenerateFaviconSVG(h.session.State().Palette)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write([]byte(svg))
}
