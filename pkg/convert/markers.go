package convert

import (
	"fmt"

	"github.com/phoscity/svg2cetz/pkg/svg"
)

// markerEntry maps an Inkscape stock marker to a CeTZ mark. An empty fill
// means the mark takes the path's own color.
type markerEntry struct {
	symbol string
	fill   string
}

// markerTable maps Inkscape's built-in marker stock ids to CeTZ mark
// symbols.
var markerTable = map[string]markerEntry{
	"Wide arrow":               {symbol: "straight"},
	"Wide, rounded arrow":      {symbol: "straight"},
	"Wide, heavy arrow":        {symbol: "straight"},
	"Triangle arrow":           {symbol: "triangle", fill: "black"},
	"Colored triangle":         {symbol: "triangle"},
	"Dart arrow":               {symbol: "triangle", fill: "black"},
	"Concave triangle arrow":   {symbol: "stealth", fill: "black"},
	"Rounded arrow":            {symbol: "triangle", fill: "black"},
	"Dot":                      {symbol: "circle", fill: "black"},
	"Colored dot":              {symbol: "circle"},
	"Square":                   {symbol: "rect", fill: "black"},
	"Colored square":           {symbol: "rect"},
	"Diamond":                  {symbol: "diamond", fill: "black"},
	"Colored diamond":          {symbol: "diamond"},
	"Stop":                     {symbol: "bar"},
	"X":                        {symbol: "x"},
	"Empty semicircle":         {symbol: "hook"},
	"Stylized triangle arrow":  {symbol: "barbed"},
}

// markerClause resolves the marker-start or marker-end property into a CeTZ
// mark clause, or "" when there is no marker to emit. side is "start" or
// "end".
func markerClause(style *svg.Style, cfg *Config, side string) string {
	ref := style.Get("marker-" + side)
	if ref == "" || ref == "none" {
		return ""
	}
	id := svg.URLRef(ref)
	if id == "" {
		return ""
	}

	stock := cfg.Doc.Markers[id]
	entry, ok := markerTable[stock]
	if !ok {
		if cfg.Markers == MarkerSkipUnknown {
			return ""
		}
		entry = markerTable["Triangle arrow"]
	}

	if entry.fill != "" {
		return fmt.Sprintf("%s: (symbol: %q, fill: %s)", side, entry.symbol, entry.fill)
	}
	return fmt.Sprintf("%s: (symbol: %q)", side, entry.symbol)
}
