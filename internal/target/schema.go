// Public domain.

package target

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// Defaults substituted for unparsable legacy exposure fields. A bad number
// in one column must not fail the whole record.
const (
	DefaultExpTime = 300
	DefaultCount   = 1
)

// ErrUnknownSchema means the input is neither the current version nor a
// recognizable legacy collection.
var ErrUnknownSchema = errors.New("unrecognized target set schema")

// Decode reads a target set of any known schema generation. Input already
// at the current version passes through unchanged; anything else runs the
// legacy adapter chain. New schema versions get a new adapter here rather
// than field sniffing at the call sites.
func Decode(raw []byte) (*Set, error) {
	if gjson.GetBytes(raw, "version").Int() == Version {
		var s Set
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return &s, nil
	}
	return decodeV1(raw)
}

// decodeV1 migrates version-less collections: either a bare target array
// (the original trigger file) or an object with settings.IS_LOT and a
// targets array.
func decodeV1(raw []byte) (*Set, error) {
	root := gjson.ParseBytes(raw)
	tel := SLT
	if root.Get("settings.IS_LOT").String() == "True" {
		tel = LOT
	}
	list := root.Get("targets")
	if !list.Exists() && root.IsArray() {
		list = root
	}
	if !list.IsArray() {
		return nil, ErrUnknownSchema
	}
	s := &Set{Version: Version, Settings: Settings{Telescope: tel}, Targets: []Target{}}
	for _, rec := range list.Array() {
		s.Targets = append(s.Targets, v1Target(rec))
	}
	return s, nil
}

func v1Target(rec gjson.Result) Target {
	t := Target{
		Name:         rec.Get("object name").String(),
		RA:           rec.Get("RA").String(),
		Dec:          rec.Get("Dec").String(),
		Mag:          Mag(strings.TrimSpace(rec.Get("Mag").String())),
		Priority:     Priority(rec.Get("Priority").String()),
		AutoExposure: rec.Get("Exp_By_Mag").String() == "True",
	}
	if t.Priority == "" {
		t.Priority = PriorityNormal
	}
	if n, err := strconv.Atoi(strings.TrimSpace(rec.Get("Repeat").String())); err == nil && n > 0 {
		t.Repeat = n
	}
	if !t.AutoExposure {
		t.Observations = splitV1Observations(t.Name,
			rec.Get("Filter").String(),
			rec.Get("Exp_Time").String(),
			rec.Get("Num_of_Frame").String())
	}
	return t
}

// splitV1Observations zips the legacy comma-joined filter, exposure-time and
// frame-count strings into structured entries. Mismatched list lengths
// truncate to the shortest: never fabricate a triple the operator did not
// type. The truncation masks a data-entry mistake, so it is logged.
func splitV1Observations(name, filter, expTime, count string) []Observation {
	if strings.TrimSpace(filter) == "" {
		return nil
	}
	fs := splitTrim(filter)
	es := splitTrim(expTime)
	cs := splitTrim(count)
	n := min(len(fs), len(es), len(cs))
	if n < len(fs) || n < len(es) || n < len(cs) {
		slog.Warn("legacy observation lists have mismatched lengths, truncating",
			"target", name, "filters", len(fs), "exposures", len(es), "counts", len(cs))
	}
	obs := make([]Observation, n)
	for i := range obs {
		obs[i] = Observation{
			Filter:  fs[i],
			ExpTime: atoiDefault(es[i], DefaultExpTime),
			Count:   atoiDefault(cs[i], DefaultCount),
		}
	}
	return obs
}

// splitTrim splits on commas and trims each element. Empty elements are
// kept so positional zipping stays honest.
func splitTrim(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// Encode renders the set at the current schema version, indented the way
// the editing tools write it.
func (s *Set) Encode() ([]byte, error) {
	s.Version = Version
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode target set: %w", err)
	}
	return append(b, '\n'), nil
}
