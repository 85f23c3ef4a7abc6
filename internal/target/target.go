// Public domain.

// Package target defines observation targets and the versioned JSON sets
// they are persisted in.
package target

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Telescope selects a telescope profile: eligible exposure policy and
// calibration filter epoch.
type Telescope string

const (
	SLT Telescope = "SLT"
	LOT Telescope = "LOT"
)

// ParseTelescope validates an operator-supplied telescope name.
func ParseTelescope(s string) (Telescope, error) {
	switch t := Telescope(strings.ToUpper(strings.TrimSpace(s))); t {
	case SLT, LOT:
		return t, nil
	default:
		return "", fmt.Errorf("unknown telescope %q", s)
	}
}

// Priority tags how a target ranks in the night's queue.
type Priority string

const (
	PriorityNone   Priority = "None" // legacy spelling of Normal
	PriorityNormal Priority = "Normal"
	PriorityHigh   Priority = "High"
	PriorityTop    Priority = "Top"
	PriorityUrgent Priority = "Urgent"
)

// Default reports whether p needs no priority tag in compiled output.
// Legacy "None" and current "Normal" are equivalent defaults.
func (p Priority) Default() bool {
	return p == "" || p == PriorityNone || p == PriorityNormal
}

// Mag is a magnitude as entered by the operator. Legacy files carry it as a
// JSON number, current files as a string; both decode to the string form.
type Mag string

func (m *Mag) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*m = Mag(strings.TrimSpace(s))
		return nil
	}
	s := strings.TrimSpace(string(b))
	if s == "null" {
		s = ""
	}
	*m = Mag(s)
	return nil
}

// Float parses the magnitude. ok is false for empty or non-numeric input.
func (m Mag) Float() (v float64, ok bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(m)), 64)
	return v, err == nil
}

// Observation is one filter/exposure/count triple. Order within a target is
// significant: it drives the script's parallel directive columns.
type Observation struct {
	Filter  string `json:"filter"`
	ExpTime int    `json:"exp_time"`
	Count   int    `json:"count"`
}

// Target is one observation request. AutoExposure selects the exposure
// policy: true derives the plan from Mag, false uses Observations, which
// must then be non-empty.
type Target struct {
	Name         string        `json:"name"`
	RA           string        `json:"ra"`
	Dec          string        `json:"dec"`
	Mag          Mag           `json:"mag"`
	Priority     Priority      `json:"priority"`
	AutoExposure bool          `json:"auto_exposure"`
	Observations []Observation `json:"observations"`
	Repeat       int           `json:"repeat"`
	Program      string        `json:"program,omitempty"`
	Note         string        `json:"note"`
}

// Editing-boundary constraint violations. Targets carrying one of these are
// rejected before they ever reach the compiler.
var (
	ErrMissingUrgentNote = errors.New("urgent priority requires a note")
	ErrAutoOnLOT         = errors.New("LOT requires manual exposure settings")
	ErrAutoMagRange      = errors.New("auto exposure requires magnitude within 12-22")
	ErrNoObservations    = errors.New("manual exposure requires at least one observation")
	ErrMissingFields     = errors.New("name, RA and Dec are required")
)

// Validate enforces the constraints the target editor must reject:
// Urgent needs a note, LOT never computes exposure automatically, and SLT
// automatic exposure needs a magnitude resolvable to [12,22].
func (t Target) Validate(tel Telescope) error {
	if strings.TrimSpace(t.Name) == "" ||
		strings.TrimSpace(t.RA) == "" || strings.TrimSpace(t.Dec) == "" {
		return ErrMissingFields
	}
	if t.Priority == PriorityUrgent && strings.TrimSpace(t.Note) == "" {
		return ErrMissingUrgentNote
	}
	if !t.AutoExposure {
		if len(t.Observations) == 0 {
			return ErrNoObservations
		}
		return nil
	}
	if tel == LOT {
		return ErrAutoOnLOT
	}
	if v, ok := t.Mag.Float(); !ok || v < 12 || v > 22 {
		return fmt.Errorf("%w: mag %q", ErrAutoMagRange, t.Mag)
	}
	return nil
}

// Version is the current canonical schema version.
const Version = 2

// Settings is the per-set configuration block.
type Settings struct {
	Telescope Telescope `json:"telescope"`
}

// Set is a telescope's target collection as persisted on disk.
type Set struct {
	Version  int      `json:"version"`
	Settings Settings `json:"settings"`
	Targets  []Target `json:"targets"`
}

// ByProgram returns the targets tagged with a LOT observation program.
func (s *Set) ByProgram(program string) []Target {
	var out []Target
	for _, t := range s.Targets {
		if t.Program == program {
			out = append(out, t)
		}
	}
	return out
}
