// Public domain.

// Package script compiles resolved targets into ACP control-script blocks
// and parallel human-readable message blocks.
//
// A block is header, four parallel directive lines (binning, filter,
// interval, count), a magnitude comment, the target position line, and a
// wait directive. The four directive arrays must have identical
// cardinality, one element per resolved observation entry.
package script

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lulin-kinder/trigger/internal/astro"
	"github.com/lulin-kinder/trigger/internal/exposure"
	"github.com/lulin-kinder/trigger/internal/filters"
	"github.com/lulin-kinder/trigger/internal/target"
)

// ErrCardinality means the parallel directive arrays disagree on length.
// That is a compiler bug, never recovered by truncation: a misaligned
// #COUNT column would expose the wrong filter for the wrong duration.
var ErrCardinality = errors.New("directive arrays must have equal cardinality")

var nameRx = regexp.MustCompile(`[^A-Za-z0-9-]`)

// SanitizeName strips everything but letters, digits and hyphens: ACP
// target names cannot carry arbitrary characters.
func SanitizeName(name string) string {
	return nameRx.ReplaceAllString(name, "")
}

// Compiler renders targets for one telescope profile.
type Compiler struct {
	Telescope target.Telescope
}

// Compile renders one target as a control-script block. Per-target
// resolution failures (invalid magnitude, too faint, unknown filter code,
// malformed manual input) come back as a one-line diagnostic comment with a
// nil error: one bad record must not block the rest of the night's queue.
// A non-nil error means the compiler itself produced a malformed block.
func (c Compiler) Compile(t target.Target) (string, error) {
	plan, err := exposure.Resolve(t, c.Telescope)
	if err != nil {
		return diagnostic(t.Name, err), nil
	}
	d, err := c.directives(plan)
	if err != nil {
		if errors.Is(err, ErrCardinality) {
			return "", err
		}
		return diagnostic(t.Name, err), nil
	}
	return c.render(t, d), nil
}

// diagnostic is the one-line stand-in for a target that cannot compile.
// The leading semicolon keeps the concatenated script valid for the
// automation layer while telling the observer what was skipped.
func diagnostic(name string, err error) string {
	return fmt.Sprintf(";# %s: %v\n\n", SanitizeName(name), err)
}

// directives holds the four parallel script arrays.
type directives struct {
	bins, ids, intervals, counts []string
}

func (c Compiler) directives(plan exposure.Plan) (directives, error) {
	d := directives{
		bins:      make([]string, len(plan)),
		ids:       make([]string, len(plan)),
		intervals: make([]string, len(plan)),
		counts:    make([]string, len(plan)),
	}
	for i, o := range plan {
		id, err := filters.Resolve(o.Filter, c.Telescope)
		if err != nil {
			return directives{}, err
		}
		d.bins[i] = "1" // binning is always 1 on both cameras
		d.ids[i] = id
		d.intervals[i] = strconv.Itoa(o.ExpTime)
		d.counts[i] = strconv.Itoa(o.Count)
	}
	if err := d.check(len(plan)); err != nil {
		return directives{}, err
	}
	return d, nil
}

func (d directives) check(n int) error {
	if n == 0 || len(d.bins) != n || len(d.ids) != n ||
		len(d.intervals) != n || len(d.counts) != n {
		return fmt.Errorf("%w: %d/%d/%d/%d for %d entries",
			ErrCardinality, len(d.bins), len(d.ids), len(d.intervals), len(d.counts), n)
	}
	return nil
}

func (c Compiler) render(t target.Target, d directives) string {
	var b strings.Builder
	name := SanitizeName(t.Name)
	if note := strings.TrimSpace(t.Note); note != "" {
		fmt.Fprintf(&b, ";%s: %s\n", name, note)
	}
	if t.Priority.Default() {
		fmt.Fprintf(&b, ";===%s===\n\n", c.Telescope)
	} else {
		fmt.Fprintf(&b, ";===%s_%s_priority===\n\n", c.Telescope, t.Priority)
	}
	fmt.Fprintf(&b, "#BINNING %s\n", strings.Join(d.bins, ", "))
	fmt.Fprintf(&b, "#FILTER %s\n", strings.Join(d.ids, ", "))
	fmt.Fprintf(&b, "#INTERVAL %s\n", strings.Join(d.intervals, ", "))
	fmt.Fprintf(&b, "#COUNT %s\n", strings.Join(d.counts, ", "))
	fmt.Fprintf(&b, ";# mag: %s mag\n", t.Mag)
	if t.Repeat > 0 {
		// Repeat is carried through the schema but no outer repeat
		// directive is defined for the control script yet, so it is
		// surfaced to the observer as a comment only.
		fmt.Fprintf(&b, ";# repeat: %d (not applied)\n", t.Repeat)
	}
	fmt.Fprintf(&b, "%s\t%s\t%s\n", name, astro.EnsureHMS(t.RA), astro.EnsureDMS(t.Dec))
	b.WriteString("#WAITFOR 1\n\n\n")
	return b.String()
}
