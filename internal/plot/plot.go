// Public domain.

// Package plot renders an SVG altitude-track chart of the night's targets,
// the visibility figure attached to the observer notification.
package plot

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/soniakeys/unit"

	"github.com/lulin-kinder/trigger/internal/astro"
	"github.com/lulin-kinder/trigger/internal/ephem"
	"github.com/lulin-kinder/trigger/internal/target"
)

const (
	width   = 900
	height  = 500
	marginL = 50
	marginR = 110
	marginT = 30
	marginB = 40
	samples = 240
)

// track colors cycle through a fixed palette.
var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Filename names the chart artifact for a telescope and optional program
// tag, mirroring the script artifact naming.
func Filename(tel target.Telescope, program string) string {
	if program == "" {
		return fmt.Sprintf("tracks_%s.svg", tel)
	}
	return fmt.Sprintf("tracks_%s_%s.svg", tel, program)
}

// NightWindow returns the plotted time span for the night containing now:
// 17:00 to 09:00 the next morning, observatory local time (UTC+8).
func NightWindow(now time.Time) (start, end time.Time) {
	local := now.In(time.FixedZone("CST", 8*3600))
	start = time.Date(local.Year(), local.Month(), local.Day(), 17, 0, 0, 0, local.Location())
	return start, start.Add(16 * time.Hour)
}

// Tracks writes the altitude chart for the targets over [start, end].
// Targets whose coordinates do not parse are skipped with a warning;
// a queue with no plottable target still yields a valid chart frame.
func Tracks(w io.Writer, ts []target.Target, eph ephem.Meeus, start, end time.Time) error {
	if _, err := fmt.Fprintf(w,
		"<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" font-family=\"sans-serif\" font-size=\"11\">\n",
		width, height); err != nil {
		return err
	}
	fmt.Fprintf(w, "<rect width=\"%d\" height=\"%d\" fill=\"white\"/>\n", width, height)
	frame(w, start, end)

	step := end.Sub(start) / samples
	n := 0
	for _, t := range ts {
		ra, err := astro.ParseRA(t.RA)
		if err != nil {
			slog.Warn("skipping track, bad RA", "target", t.Name, "error", err)
			continue
		}
		dec, err := astro.ParseDec(t.Dec)
		if err != nil {
			slog.Warn("skipping track, bad Dec", "target", t.Name, "error", err)
			continue
		}
		color := palette[n%len(palette)]
		polyline(w, eph, ra, dec, start, step, color)
		label(w, t.Name, n, color)
		n++
	}
	_, err := io.WriteString(w, "</svg>\n")
	return err
}

// frame draws the axes, horizon line and hour ticks.
func frame(w io.Writer, start, end time.Time) {
	x1, y1 := marginL, marginT
	x2, y2 := width-marginR, height-marginB
	fmt.Fprintf(w, "<rect x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\" fill=\"none\" stroke=\"black\"/>\n",
		x1, y1, x2-x1, y2-y1)
	// horizon at altitude 0
	hy := yFor(0)
	fmt.Fprintf(w, "<line x1=\"%d\" y1=\"%d\" x2=\"%d\" y2=\"%d\" stroke=\"#999\" stroke-dasharray=\"4 3\"/>\n",
		x1, hy, x2, hy)
	fmt.Fprintf(w, "<text x=\"%d\" y=\"%d\" fill=\"#666\">horizon</text>\n", x1+4, hy-4)
	for alt := -30; alt <= 90; alt += 30 {
		fmt.Fprintf(w, "<text x=\"%d\" y=\"%d\" text-anchor=\"end\">%d°</text>\n",
			x1-6, yFor(float64(alt))+4, alt)
	}
	for h := start.Truncate(time.Hour); !h.After(end); h = h.Add(2 * time.Hour) {
		if h.Before(start) {
			continue
		}
		x := xFor(h, start, end)
		fmt.Fprintf(w, "<line x1=\"%d\" y1=\"%d\" x2=\"%d\" y2=\"%d\" stroke=\"#ddd\"/>\n", x, y1, x, y2)
		fmt.Fprintf(w, "<text x=\"%d\" y=\"%d\" text-anchor=\"middle\">%s</text>\n",
			x, y2+16, h.Format("15:04"))
	}
}

func polyline(w io.Writer, eph ephem.Meeus, ra unit.RA, dec unit.Angle, start time.Time, step time.Duration, color string) {
	fmt.Fprintf(w, "<polyline fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" points=\"", color)
	for i := 0; i <= samples; i++ {
		t := start.Add(time.Duration(i) * step)
		alt := eph.Altitude(ra, dec, t).Deg()
		fmt.Fprintf(w, "%d,%d ", marginL+i*(width-marginL-marginR)/samples, yFor(alt))
	}
	io.WriteString(w, "\"/>\n")
}

func label(w io.Writer, name string, i int, color string) {
	fmt.Fprintf(w, "<text x=\"%d\" y=\"%d\" fill=\"%s\">%s</text>\n",
		width-marginR+8, marginT+14+i*16, color, name)
}

// yFor maps altitude in degrees, clamped to [-90, 90], onto the chart.
func yFor(alt float64) int {
	alt = math.Max(-90, math.Min(90, alt))
	span := float64(height - marginT - marginB)
	return marginT + int((90-alt)/180*span)
}

func xFor(t, start, end time.Time) int {
	f := float64(t.Sub(start)) / float64(end.Sub(start))
	return marginL + int(f*float64(width-marginL-marginR))
}
