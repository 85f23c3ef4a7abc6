// Public domain.

// Package ephem computes nightly visibility at the observatory site.
//
// Rise times order the night's queue: targets that clear the horizon first
// are observed first. The computation follows Meeus chapter 15 through the
// meeus package; anything the ephemeris cannot resolve (circumpolar
// objects, unparsable coordinates) sorts after every resolvable target.
package ephem

import (
	"fmt"
	"time"

	"github.com/soniakeys/meeus/v3/globe"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/rise"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/unit"

	"github.com/lulin-kinder/trigger/internal/astro"
)

// Site is an observer profile: geographic position and elevation.
type Site struct {
	Name string
	Lat  unit.Angle
	Lon  unit.Angle // positive west, the meeus convention
	Elev float64    // meters
}

// Lulin is the site both telescopes share: 120°52'21.5" E, 23°28'10.0" N,
// 2800 m.
var Lulin = Site{
	Name: "Lulin Observatory",
	Lat:  unit.NewAngle(' ', 23, 28, 10.0),
	Lon:  unit.NewAngle('-', 120, 52, 21.5),
	Elev: 2800,
}

// Ephemeris resolves the next rise of an equatorial position above the
// local horizon after an anchor instant. Implementations may call external
// services; any error marks the position's visibility unresolvable for the
// night.
type Ephemeris interface {
	NextRise(ra unit.RA, dec unit.Angle, anchor time.Time) (time.Time, error)
}

// Meeus is the default Ephemeris, computed locally for a fixed site.
type Meeus struct {
	Site Site
}

// Successive rises of a fixed equatorial position recur once per sidereal
// day.
const siderealDay = 23*time.Hour + 56*time.Minute + 4*time.Second

// NextRise computes the first crossing above the standard stellar horizon
// (refraction altitude -34') after anchor. Circumpolar positions, whether
// never rising or never setting at the site, return an error.
func (m Meeus) NextRise(ra unit.RA, dec unit.Angle, anchor time.Time) (time.Time, error) {
	ut := anchor.UTC()
	y, mo, d := ut.Date()
	jd0 := julian.CalendarGregorianToJD(y, int(mo), float64(d)) // 0h UT
	Th0 := sidereal.Apparent0UT(jd0)
	p := globe.Coord{Lat: m.Site.Lat, Lon: m.Site.Lon}
	tRise, _, _, err := rise.ApproxTimes(p, rise.Stdh0Stellar, Th0, ra, dec)
	if err != nil {
		return time.Time{}, fmt.Errorf("rise at %s: %w", m.Site.Name, err)
	}
	r := julian.JDToTime(jd0 + tRise.Day())
	for r.Before(anchor) {
		r = r.Add(siderealDay)
	}
	return r, nil
}

// Altitude returns the altitude of the position above the site's horizon
// at time t, used for observing-track plots.
func (m Meeus) Altitude(ra unit.RA, dec unit.Angle, t time.Time) unit.Angle {
	jd := julian.TimeToJD(t.UTC())
	st := sidereal.Apparent(jd)
	// local hour angle, longitude positive west
	H := unit.HourAngle(st.Rad() - m.Site.Lon.Rad() - ra.Rad())
	return astro.Altitude(dec, m.Site.Lat, H)
}

// NightAnchor returns the visibility anchor for the night containing now:
// 18:00 at the observatory, 10:00 UTC, the instant queue ordering is
// computed against.
func NightAnchor(now time.Time) time.Time {
	ut := now.UTC()
	return time.Date(ut.Year(), ut.Month(), ut.Day(), 10, 0, 0, 0, time.UTC)
}
