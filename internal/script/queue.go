// Public domain.

package script

import (
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/iter"

	"github.com/lulin-kinder/trigger/internal/exposure"
	"github.com/lulin-kinder/trigger/internal/target"
)

// CompileQueue renders the whole queue in input order. Targets compile
// independently and concurrently; iter preserves slice order, so the
// concatenated script reads in the same order the queue was given.
func (c Compiler) CompileQueue(ts []target.Target) (string, error) {
	blocks, err := iter.MapErr(ts, func(t *target.Target) (string, error) {
		return c.Compile(*t)
	})
	if err != nil {
		return "", err
	}
	return strings.Join(blocks, ""), nil
}

// CompileMessage renders the human-readable summary of one target, the
// counterpart of Compile for the observer channel. Resolution failures
// collapse to a one-line notice just as they do in the script.
func (c Compiler) CompileMessage(t target.Target) string {
	plan, err := exposure.Resolve(t, c.Telescope)
	if err != nil {
		return fmt.Sprintf("%s: %v\n\n", t.Name, err)
	}
	var b strings.Builder
	if t.Priority.Default() {
		fmt.Fprintf(&b, "== %s ===\n", c.Telescope)
	} else {
		fmt.Fprintf(&b, "== %s === %s Priority ===\n", c.Telescope, t.Priority)
	}
	fs := make([]string, len(plan))
	es := make([]string, len(plan))
	for i, o := range plan {
		fs[i] = o.Filter
		es[i] = fmt.Sprintf("%s=%dsec*%d", o.Filter, o.ExpTime, o.Count)
	}
	fmt.Fprintf(&b, "Object: %s\n", t.Name)
	fmt.Fprintf(&b, "RA: %s\n", t.RA)
	fmt.Fprintf(&b, "Dec: %s\n", t.Dec)
	fmt.Fprintf(&b, "Filter: %s\n", strings.Join(fs, ", "))
	fmt.Fprintf(&b, "Exposure Time: %s\n", strings.Join(es, ", "))
	fmt.Fprintf(&b, "Mag: %s mag\n\n", t.Mag)
	return b.String()
}

// MessageQueue renders the queue's summary messages in input order.
func (c Compiler) MessageQueue(ts []target.Target) string {
	msgs := iter.Map(ts, func(t *target.Target) string {
		return c.CompileMessage(*t)
	})
	return strings.Join(msgs, "")
}

// Filename names the script artifact for a telescope and optional program
// tag, for example script_SLT.txt or script_LOT_ToO.txt.
func Filename(tel target.Telescope, program string) string {
	if program == "" {
		return fmt.Sprintf("script_%s.txt", tel)
	}
	return fmt.Sprintf("script_%s_%s.txt", tel, program)
}
