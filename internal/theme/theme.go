// Package theme holds the built-in presentation themes. A theme is a fixed
// bundle of colors and fonts applied uniformly across one rendered deck.
package theme

import "sort"

// DefaultName is the theme used when a request names no theme or an
// unknown one.
const DefaultName = "modern"

// StyleBundle describes the colors and fonts of a single theme.
// Colors are hex RGB without a leading '#', as the deck renderer expects.
type StyleBundle struct {
	PrimaryColor   string
	SecondaryColor string
	TextColor      string
	TitleFont      string
	BodyFont       string
}

// catalog maps theme ids to their style bundles. Entries are compiled-in
// constants; there is no mutation path.
var catalog = map[string]StyleBundle{
	"modern": {
		PrimaryColor:   "0EA5E9",
		SecondaryColor: "7DD3FC",
		TextColor:      "374151",
		TitleFont:      "Arial",
		BodyFont:       "Arial",
	},
	"business": {
		PrimaryColor:   "1E40AF",
		SecondaryColor: "3B82F6",
		TextColor:      "1F2937",
		TitleFont:      "Calibri",
		BodyFont:       "Calibri",
	},
	"creative": {
		PrimaryColor:   "8B5CF6",
		SecondaryColor: "C4B5FD",
		TextColor:      "4B5563",
		TitleFont:      "Segoe UI",
		BodyFont:       "Segoe UI",
	},
	"minimal": {
		PrimaryColor:   "64748B",
		SecondaryColor: "94A3B8",
		TextColor:      "334155",
		TitleFont:      "Helvetica",
		BodyFont:       "Helvetica",
	},
}

// Resolve returns the style bundle for a theme id. Unrecognized ids fall
// back to the default bundle, so Resolve never fails.
func Resolve(id string) StyleBundle {
	if b, ok := catalog[id]; ok {
		return b
	}
	return catalog[DefaultName]
}

// Known reports whether a theme id has its own catalog entry.
func Known(id string) bool {
	_, ok := catalog[id]
	return ok
}

// Names returns all theme ids in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
