package model

import "fmt"

// Length is a physical length in metres.
type Length float64

const (
	Metre     Length = 1
	Kilometre Length = 1000

	// SunRadius is the nominal photospheric solar radius, also the default
	// RSUN_REF written by most solar instruments.
	SunRadius Length = 695700 * Kilometre

	// AU is the astronomical unit.
	AU Length = 149597870700 * Metre
)

// Metres returns the length as a plain float.
func (l Length) Metres() float64 { return float64(l) }

func (l Length) String() string { return fmt.Sprintf("%g m", float64(l)) }

// Observer is the location an observation was made from. It is either a
// named body (Name set, e.g. "earth") or a position in heliographic
// Stonyhurst coordinates, or both.
type Observer struct {
	Name   string
	Lon    float64 // degrees
	Lat    float64 // degrees
	Radius Length  // distance from Sun centre
}

// Named reports whether the observer is identified only by name.
func (o Observer) Named() bool { return o.Name != "" && o.Radius == 0 }

func (o Observer) String() string {
	if o.Named() {
		return o.Name
	}
	if o.Name != "" {
		return fmt.Sprintf("%s(lon=%g deg, lat=%g deg, r=%s)", o.Name, o.Lon, o.Lat, o.Radius)
	}
	return fmt.Sprintf("(lon=%g deg, lat=%g deg, r=%s)", o.Lon, o.Lat, o.Radius)
}
