// Public domain.

package ephem

import (
	"log/slog"
	"sort"
	"time"

	"github.com/lulin-kinder/trigger/internal/astro"
	"github.com/lulin-kinder/trigger/internal/target"
)

// SortByRise orders targets by ascending next rise after anchor. A target
// whose rise cannot be resolved (bad coordinates, circumpolar, service
// failure) sorts after every resolvable one, and unresolvable targets keep
// their relative order. The sort is stable throughout, so sorting twice
// yields the same order. The input slice is not modified.
func SortByRise(ts []target.Target, eph Ephemeris, anchor time.Time) []target.Target {
	type keyed struct {
		t    target.Target
		rise time.Time
		ok   bool
	}
	ks := make([]keyed, len(ts))
	for i, t := range ts {
		ks[i] = keyed{t: t}
		r, err := riseOf(t, eph, anchor)
		if err != nil {
			slog.Warn("visibility unresolvable, target sorts last",
				"target", t.Name, "error", err)
			continue
		}
		ks[i].rise, ks[i].ok = r, true
	}
	sort.SliceStable(ks, func(i, j int) bool {
		switch {
		case ks[i].ok && ks[j].ok:
			return ks[i].rise.Before(ks[j].rise)
		case ks[i].ok:
			return true
		default:
			return false
		}
	})
	out := make([]target.Target, len(ks))
	for i, k := range ks {
		out[i] = k.t
	}
	return out
}

func riseOf(t target.Target, eph Ephemeris, anchor time.Time) (time.Time, error) {
	ra, err := astro.ParseRA(t.RA)
	if err != nil {
		return time.Time{}, err
	}
	dec, err := astro.ParseDec(t.Dec)
	if err != nil {
		return time.Time{}, err
	}
	return eph.NextRise(ra, dec, anchor)
}
