// Public domain.

// Package exposure resolves a target's exposure plan, either automatically
// from magnitude or from operator-specified filter/time/count lists.
package exposure

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/lulin-kinder/trigger/internal/target"
)

// Plan is an ordered list of observation entries. Order is significant:
// the script compiler renders the entries as parallel directive columns and
// observers read the columns in this order.
type Plan []target.Observation

// Resolution outcomes that replace a target's compiled block with a
// diagnostic rather than failing the whole queue.
var (
	ErrInvalidMagnitude = errors.New("invalid magnitude")
	ErrTooFaint         = errors.New("too faint to observe")
	ErrMalformedManual  = errors.New("malformed manual exposure input")
)

func obs(filter string, sec, count int) target.Observation {
	return target.Observation{Filter: filter, ExpTime: sec, Count: count}
}

// fiveBand is the standard plan shape for bins 13 through 19: two frames in
// the u band, one in each of the others, all at the same exposure time.
func fiveBand(sec int) Plan {
	return Plan{
		obs("up", sec, 2),
		obs("gp", sec, 1),
		obs("rp", sec, 1),
		obs("ip", sec, 1),
		obs("zp", sec, 1),
	}
}

// byMagnitude is the automatic exposure table, keyed by integer magnitude
// bin. Bins 20 through 22 narrow to the r band with escalating frame counts
// as the target dims; beyond 22 nothing is observable. The table is
// read-only process-wide state: callers must not mutate returned plans.
var byMagnitude = map[int]Plan{
	12: {
		obs("up", 60, 1),
		obs("gp", 30, 1),
		obs("rp", 30, 1),
		obs("ip", 30, 1),
		obs("zp", 30, 1),
	},
	13: fiveBand(60),
	14: fiveBand(60),
	15: fiveBand(150),
	16: fiveBand(150),
	17: fiveBand(300),
	18: fiveBand(300),
	19: fiveBand(300),
	20: {obs("rp", 300, 6)},
	21: {obs("rp", 300, 12)},
	22: {obs("rp", 300, 36)},
}

// ByMagnitude resolves the automatic plan for a magnitude string. The
// magnitude is floored to an integer bin; below 12 clamps to the bin-12
// plan, above 22 the target is too faint to trigger. The survey shorthand
// ">22" resolves too-faint as well.
func ByMagnitude(mag string) (Plan, error) {
	s := strings.TrimSpace(mag)
	if s == ">22" {
		return nil, ErrTooFaint
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMagnitude, mag)
	}
	switch bin := int(math.Floor(v)); {
	case bin > 22:
		return nil, ErrTooFaint
	case bin < 12:
		return byMagnitude[12], nil
	default:
		return byMagnitude[bin], nil
	}
}

// ParseManual parses operator filter, exposure-time and frame-count input.
// If any of the three holds a comma-joined list, all three are treated as
// lists, trimmed, and zipped to the shortest length (the same truncation
// rule as the legacy schema split). Otherwise the inputs are one triple,
// with the frame count defaulting to 1 when unparsable.
func ParseManual(filter, expTime, count string) (Plan, error) {
	if strings.TrimSpace(filter) == "" {
		return nil, fmt.Errorf("%w: empty filter", ErrMalformedManual)
	}
	if !strings.ContainsRune(filter+expTime+count, ',') {
		sec, err := strconv.Atoi(strings.TrimSpace(expTime))
		if err != nil {
			return nil, fmt.Errorf("%w: exposure time %q", ErrMalformedManual, expTime)
		}
		c, err := strconv.Atoi(strings.TrimSpace(count))
		if err != nil || c < 1 {
			c = 1
		}
		return Plan{obs(strings.TrimSpace(filter), sec, c)}, nil
	}
	fs := splitTrim(filter)
	es := splitTrim(expTime)
	cs := splitTrim(count)
	n := min(len(fs), len(es), len(cs))
	if n < len(fs) || n < len(es) || n < len(cs) {
		slog.Warn("manual exposure lists have mismatched lengths, truncating",
			"filters", len(fs), "exposures", len(es), "counts", len(cs))
	}
	p := make(Plan, n)
	for i := range p {
		sec, err := strconv.Atoi(es[i])
		if err != nil {
			return nil, fmt.Errorf("%w: exposure time %q", ErrMalformedManual, es[i])
		}
		c, err := strconv.Atoi(cs[i])
		if err != nil {
			return nil, fmt.Errorf("%w: frame count %q", ErrMalformedManual, cs[i])
		}
		p[i] = obs(fs[i], sec, c)
	}
	return p, nil
}

func splitTrim(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// Resolve produces the exposure plan for a target on a telescope. The
// editing boundary already rejects automatic exposure on LOT and
// out-of-range magnitudes, but the resolver guards both again so a stale
// record cannot compile into a plan.
func Resolve(t target.Target, tel target.Telescope) (Plan, error) {
	if !t.AutoExposure {
		if len(t.Observations) == 0 {
			return nil, fmt.Errorf("%w: no observation entries", ErrMalformedManual)
		}
		return Plan(t.Observations), nil
	}
	if tel == target.LOT {
		return nil, target.ErrAutoOnLOT
	}
	return ByMagnitude(string(t.Mag))
}

// Columns renders the plan as parallel comma-joined filter, exposure-time
// and frame-count lists, the inverse of ParseManual.
func (p Plan) Columns() (filter, expTime, count string) {
	fs := make([]string, len(p))
	es := make([]string, len(p))
	cs := make([]string, len(p))
	for i, o := range p {
		fs[i] = o.Filter
		es[i] = strconv.Itoa(o.ExpTime)
		cs[i] = strconv.Itoa(o.Count)
	}
	return strings.Join(fs, ", "), strings.Join(es, ", "), strings.Join(cs, ", ")
}
