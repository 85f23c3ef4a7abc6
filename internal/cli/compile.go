// Public domain.

package cli

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/lulin-kinder/trigger/internal/config"
	"github.com/lulin-kinder/trigger/internal/ephem"
	"github.com/lulin-kinder/trigger/internal/plot"
	"github.com/lulin-kinder/trigger/internal/script"
	"github.com/lulin-kinder/trigger/internal/target"
)

var (
	programFlag string
	sortFlag    string
	plotFlag    bool
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile the target set into a control script",
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().StringVar(&programFlag, "program", "",
		"compile only targets of this LOT observation program")
	compileCmd.Flags().StringVar(&sortFlag, "sort", "rise",
		"queue order: rise or insertion")
	compileCmd.Flags().BoolVar(&plotFlag, "plot", false,
		"also render the altitude-track chart")
}

func runCompile(cmd *cobra.Command, args []string) error {
	tel, err := telescope()
	if err != nil {
		return err
	}
	if programFlag != "" && tel != target.LOT {
		return fmt.Errorf("observation programs exist only on LOT")
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	set, err := target.Load(cfg.DataPath, tel)
	if err != nil {
		return err
	}
	ts := set.Targets
	if programFlag != "" {
		ts = set.ByProgram(programFlag)
	}
	if len(ts) == 0 {
		return fmt.Errorf("no targets to compile for %s", tel)
	}

	switch sortFlag {
	case "rise":
		eph := ephem.Meeus{Site: ephem.Lulin}
		ts = ephem.SortByRise(ts, eph, ephem.NightAnchor(time.Now()))
	case "insertion":
	default:
		return fmt.Errorf("unknown sort order %q", sortFlag)
	}

	c := script.Compiler{Telescope: tel}
	out, err := c.CompileQueue(ts)
	if err != nil {
		return err
	}
	fn := filepath.Join(cfg.DataPath, script.Filename(tel, programFlag))
	if err := os.WriteFile(fn, []byte(out), 0o644); err != nil {
		return err
	}
	slog.Info("script compiled", "telescope", tel, "targets", len(ts), "file", fn)

	if plotFlag {
		if err := writePlot(cfg.DataPath, ts, tel, programFlag); err != nil {
			return err
		}
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func writePlot(dir string, ts []target.Target, tel target.Telescope, program string) error {
	fn := filepath.Join(dir, plot.Filename(tel, program))
	start, end := plot.NightWindow(time.Now())
	var buf bytes.Buffer
	if err := plot.Tracks(&buf, ts, ephem.Meeus{Site: ephem.Lulin}, start, end); err != nil {
		return err
	}
	if err := os.WriteFile(fn, buf.Bytes(), 0o644); err != nil {
		return err
	}
	slog.Info("track chart rendered", "file", fn)
	return nil
}
