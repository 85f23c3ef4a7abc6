// Public domain.

// Package astro, coordinate handling generally useful around the observatory.
//
// Target positions arrive as free-form operator strings: either sexagesimal
// (11:18:22.087) or decimal degrees (169.592). The control script wants
// colon-delimited sexagesimal columns, the ephemeris wants typed units.
// This package converts between the three.
package astro

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/soniakeys/unit"
)

// IsDecimal reports whether s looks like a single decimal number rather
// than a sexagesimal string.
func IsDecimal(s string) bool {
	s = strings.TrimSpace(s)
	if strings.ContainsRune(s, ':') {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// EnsureHMS returns right ascension as hh:mm:ss.ss, converting from decimal
// degrees when needed. Anything already sexagesimal is returned trimmed and
// otherwise unchanged, so the function is idempotent.
func EnsureHMS(ra string) string {
	if !IsDecimal(ra) {
		return strings.TrimSpace(ra)
	}
	deg, _ := strconv.ParseFloat(strings.TrimSpace(ra), 64)
	return DegToHMS(deg)
}

// EnsureDMS returns declination as ±dd:mm:ss.ss, converting from decimal
// degrees when needed. Idempotent like EnsureHMS.
func EnsureDMS(dec string) string {
	if !IsDecimal(dec) {
		return strings.TrimSpace(dec)
	}
	deg, _ := strconv.ParseFloat(strings.TrimSpace(dec), 64)
	return DegToDMS(deg)
}

// DegToHMS converts right ascension in decimal degrees to hh:mm:ss.ss.
// Degrees are wrapped into [0,360) and divided by 15 to get hours.
func DegToHMS(deg float64) string {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	h := deg / 15
	hh := int(h)
	m := (h - float64(hh)) * 60
	mm := int(m)
	ss := (m - float64(mm)) * 60
	return fmt.Sprintf("%02d:%02d:%05.2f", hh, mm, ss)
}

// DegToDMS converts declination in decimal degrees to ±dd:mm:ss.ss.
// The sign is always written, matching the script column convention.
func DegToDMS(deg float64) string {
	sign := "+"
	if deg < 0 {
		sign = "-"
		deg = -deg
	}
	dd := int(deg)
	m := (deg - float64(dd)) * 60
	mm := int(m)
	ss := (m - float64(mm)) * 60
	return fmt.Sprintf("%s%02d:%02d:%05.2f", sign, dd, mm, ss)
}

// ParseRA parses an operator RA string, sexagesimal hours or decimal
// degrees, into a typed right ascension.
func ParseRA(s string) (unit.RA, error) {
	s = strings.TrimSpace(s)
	if IsDecimal(s) {
		deg, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		return unit.RAFromDeg(deg), nil
	}
	neg, h, m, sec, err := splitSexa(s)
	if err != nil {
		return 0, fmt.Errorf("right ascension %q: %w", s, err)
	}
	if neg {
		return 0, fmt.Errorf("right ascension %q: must not be negative", s)
	}
	return unit.NewRA(h, m, sec), nil
}

// ParseDec parses an operator Dec string, sexagesimal or decimal degrees,
// into a typed angle.
func ParseDec(s string) (unit.Angle, error) {
	s = strings.TrimSpace(s)
	if IsDecimal(s) {
		deg, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		return unit.AngleFromDeg(deg), nil
	}
	neg, d, m, sec, err := splitSexa(s)
	if err != nil {
		return 0, fmt.Errorf("declination %q: %w", s, err)
	}
	sign := byte(' ')
	if neg {
		sign = '-'
	}
	return unit.NewAngle(sign, d, m, sec), nil
}

// splitSexa splits a colon-delimited sexagesimal string into sign and
// components. Minutes and seconds may be omitted.
func splitSexa(s string) (neg bool, a, b int, c float64, err error) {
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return false, 0, 0, 0, fmt.Errorf("too many components")
	}
	if a, err = strconv.Atoi(strings.TrimSpace(parts[0])); err != nil {
		return false, 0, 0, 0, err
	}
	if len(parts) > 1 {
		if b, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
			return false, 0, 0, 0, err
		}
	}
	if len(parts) > 2 {
		if c, err = strconv.ParseFloat(strings.TrimSpace(parts[2]), 64); err != nil {
			return false, 0, 0, 0, err
		}
	}
	return neg, a, b, c, nil
}

// Altitude computes the altitude of equatorial coordinates above the local
// horizon for an observer at latitude lat, given the local hour angle H.
//
//	sin h = sin φ sin δ + cos φ cos δ cos H
func Altitude(dec, lat unit.Angle, H unit.HourAngle) unit.Angle {
	sφ, cφ := lat.Sincos()
	sδ, cδ := dec.Sincos()
	return unit.Angle(math.Asin(sφ*sδ + cφ*cδ*math.Cos(H.Rad())))
}
