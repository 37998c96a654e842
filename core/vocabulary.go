package core

import "github.com/signalsfoundry/solarwcs/model"

// DefaultProjection is the projection code used when none is requested.
const DefaultProjection = "TAN"

// axisCodes is one row of the axis-type vocabulary.
type axisCodes struct {
	kind       model.Kind
	lon, lat   string
	unit       string
	projection bool // whether type codes carry a "-PROJ" suffix
}

// vocabulary is the single table both translation directions read from.
// Matching walks it in order.
var vocabulary = []axisCodes{
	{kind: model.KindHelioprojective, lon: "HPLN", lat: "HPLT", unit: "arcsec", projection: true},
	{kind: model.KindHeliographicStonyhurst, lon: "HGLN", lat: "HGLT", unit: "deg", projection: true},
	{kind: model.KindHeliographicCarrington, lon: "CRLN", lat: "CRLT", unit: "deg", projection: true},
	{kind: model.KindHeliocentric, lon: "SOLX", lat: "SOLY", unit: "arcsec", projection: false},
}

func codesForPrefixes(x, y string) (axisCodes, bool) {
	for _, row := range vocabulary {
		if row.lon == x && row.lat == y {
			return row, true
		}
	}
	return axisCodes{}, false
}

func codesForKind(k model.Kind) (axisCodes, bool) {
	for _, row := range vocabulary {
		if row.kind == k {
			return row, true
		}
	}
	return axisCodes{}, false
}

// types returns the pair of CTYPE values for this row.
func (c axisCodes) types(projection string) (string, string) {
	if !c.projection {
		return c.lon, c.lat
	}
	return c.lon + "-" + projection, c.lat + "-" + projection
}
