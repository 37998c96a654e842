package wcs

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/astrogo/fitsio"

	"github.com/signalsfoundry/solarwcs/model"
	"github.com/signalsfoundry/solarwcs/obstime"
)

// FITS keywords carrying the extension attributes.
const (
	KeyObserverLon  = "HGLN_OBS"
	KeyObserverLat  = "HGLT_OBS"
	KeyObserverDist = "DSUN_OBS"
	KeyObservatory  = "OBSRVTRY"
	KeySolarRadius  = "RSUN_REF"
)

// ReadFITS decodes the primary HDU header of a FITS stream.
func ReadFITS(r io.Reader) (*Header, error) {
	f, err := fitsio.Open(r)
	if err != nil {
		return nil, fmt.Errorf("open fits: %w", err)
	}
	defer f.Close()

	hdu := f.HDU(0)
	if hdu == nil {
		return nil, fmt.Errorf("open fits: no primary HDU")
	}
	return FromFITS(hdu.Header())
}

// FromFITS extracts the world coordinate description from a FITS header.
// The observer attribute is declared when OBSRVTRY or the full
// HGLN_OBS/HGLT_OBS/DSUN_OBS triple is present; the solar radius attribute
// when RSUN_REF is.
func FromFITS(hdr *fitsio.Header) (*Header, error) {
	if hdr == nil {
		return nil, ErrNoAxes
	}

	naxis := 0
	if n, ok := intValue(hdr.Get("WCSAXES")); ok {
		naxis = n
	} else {
		naxis = len(hdr.Axes())
		for i := naxis + 1; hdr.Get("CTYPE"+strconv.Itoa(i)) != nil; i++ {
			naxis = i
		}
	}
	if naxis <= 0 {
		return nil, ErrNoAxes
	}

	h := NewHeader(naxis)
	for i := range h.Axes {
		n := strconv.Itoa(i + 1)
		h.Axes[i] = Axis{
			Type: stringValue(hdr.Get("CTYPE" + n)),
			Unit: stringValue(hdr.Get("CUNIT" + n)),
		}
	}

	h.DateObs = stringValue(hdr.Get("DATE-OBS"))
	if h.DateObs == "" {
		h.DateObs = stringValue(hdr.Get("DATE_OBS"))
	}

	if obs, ok := observerFromFITS(hdr); ok {
		h.Observer.Set(&obs)
	}
	if rsun, ok := floatValue(hdr.Get(KeySolarRadius)); ok {
		l := model.Length(rsun)
		h.RSun.Set(&l)
	}
	return h, nil
}

func observerFromFITS(hdr *fitsio.Header) (model.Observer, bool) {
	var obs model.Observer
	obs.Name = stringValue(hdr.Get(KeyObservatory))

	lon, okLon := floatValue(hdr.Get(KeyObserverLon))
	lat, okLat := floatValue(hdr.Get(KeyObserverLat))
	dist, okDist := floatValue(hdr.Get(KeyObserverDist))
	if okLon && okLat && okDist {
		obs.Lon, obs.Lat, obs.Radius = lon, lat, model.Length(dist)
		return obs, true
	}
	return obs, obs.Name != ""
}

// Cards renders h as FITS header cards. Unset attributes produce no cards.
func (h *Header) Cards() []fitsio.Card {
	cards := []fitsio.Card{
		{Name: "WCSAXES", Value: len(h.Axes), Comment: "number of world coordinate axes"},
	}
	for i, a := range h.Axes {
		n := strconv.Itoa(i + 1)
		cards = append(cards, fitsio.Card{Name: "CTYPE" + n, Value: a.Type})
		if a.Unit != "" {
			cards = append(cards, fitsio.Card{Name: "CUNIT" + n, Value: a.Unit})
		}
	}

	if h.DateObs != "" {
		cards = append(cards, fitsio.Card{Name: "DATE-OBS", Value: h.DateObs})
		if t, ok := obstime.Parse(h.DateObs); ok {
			if mjd, ok := obstime.MJD(t); ok {
				cards = append(cards, fitsio.Card{Name: "MJD-OBS", Value: mjd, Comment: "modified Julian date of DATE-OBS"})
			}
		}
	}

	if obs := h.Observer.Get(); obs != nil {
		if obs.Name != "" {
			cards = append(cards, fitsio.Card{Name: KeyObservatory, Value: obs.Name})
		}
		if !obs.Named() {
			cards = append(cards,
				fitsio.Card{Name: KeyObserverLon, Value: obs.Lon, Comment: "[deg] observer Stonyhurst longitude"},
				fitsio.Card{Name: KeyObserverLat, Value: obs.Lat, Comment: "[deg] observer Stonyhurst latitude"},
				fitsio.Card{Name: KeyObserverDist, Value: obs.Radius.Metres(), Comment: "[m] observer distance from Sun centre"},
			)
		}
	}
	if rsun := h.RSun.Get(); rsun != nil {
		cards = append(cards, fitsio.Card{Name: KeySolarRadius, Value: rsun.Metres(), Comment: "[m] reference solar radius"})
	}
	return cards
}

// WriteFITS writes h as the header of a single-pixel primary image.
func WriteFITS(w io.Writer, h *Header) error {
	f, err := fitsio.Create(w)
	if err != nil {
		return fmt.Errorf("create fits: %w", err)
	}
	defer f.Close()

	im := fitsio.NewImage(-32, []int{1, 1})
	defer im.Close()

	if err := im.Header().Append(h.Cards()...); err != nil {
		return fmt.Errorf("append wcs cards: %w", err)
	}
	if err := im.Write([]float32{0}); err != nil {
		return fmt.Errorf("write image data: %w", err)
	}
	if err := f.Write(im); err != nil {
		return fmt.Errorf("write fits: %w", err)
	}
	return nil
}

func stringValue(c *fitsio.Card) string {
	if c == nil {
		return ""
	}
	if s, ok := c.Value.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func floatValue(c *fitsio.Card) (float64, bool) {
	if c == nil {
		return 0, false
	}
	switch v := c.Value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func intValue(c *fitsio.Card) (int, bool) {
	f, ok := floatValue(c)
	if !ok {
		return 0, false
	}
	return int(f), true
}
