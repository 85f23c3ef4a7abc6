// Public domain.

package cli

import (
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/lulin-kinder/trigger/internal/config"
	"github.com/lulin-kinder/trigger/internal/exposure"
	"github.com/lulin-kinder/trigger/internal/target"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Manage the telescope's target set",
}

var addFlags struct {
	ra, dec, mag string
	priority     string
	auto         bool
	filter       string
	expTime      string
	count        string
	repeat       int
	program      string
	note         string
}

var targetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the target set",
	RunE:  runTargetsList,
}

var targetsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a target",
	Args:  cobra.ExactArgs(1),
	RunE:  runTargetsAdd,
}

var targetsRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a target by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runTargetsRemove,
}

var targetsDuplicateCmd = &cobra.Command{
	Use:   "duplicate <name>",
	Short: "Duplicate a target under a new name",
	Args:  cobra.ExactArgs(1),
	RunE:  runTargetsDuplicate,
}

func init() {
	f := targetsAddCmd.Flags()
	f.StringVar(&addFlags.ra, "ra", "", "right ascension, decimal degrees or hh:mm:ss")
	f.StringVar(&addFlags.dec, "dec", "", "declination, decimal degrees or ±dd:mm:ss")
	f.StringVar(&addFlags.mag, "mag", "", "magnitude")
	f.StringVar(&addFlags.priority, "priority", "", "priority (Normal, High, Top, Urgent)")
	f.BoolVar(&addFlags.auto, "auto", false, "derive the exposure plan from magnitude")
	f.StringVar(&addFlags.filter, "filter", "", "filter code or comma list, e.g. gp,rp")
	f.StringVar(&addFlags.expTime, "exp-time", "", "exposure seconds or comma list")
	f.StringVar(&addFlags.count, "count", "", "frame count or comma list")
	f.IntVar(&addFlags.repeat, "repeat", 0, "requested repeat count")
	f.StringVar(&addFlags.program, "program", "", "LOT observation program tag")
	f.StringVar(&addFlags.note, "note", "", "operator note")
	targetsCmd.AddCommand(targetsListCmd, targetsAddCmd, targetsRemoveCmd, targetsDuplicateCmd)
}

func loadSet() (*target.Set, string, error) {
	tel, err := telescope()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}
	set, err := target.Load(cfg.DataPath, tel)
	return set, cfg.DataPath, err
}

func runTargetsList(cmd *cobra.Command, args []string) error {
	set, _, err := loadSet()
	if err != nil {
		return err
	}
	rows := make([][]any, len(set.Targets))
	for i, t := range set.Targets {
		mode := "manual"
		if t.AutoExposure {
			mode = "auto"
		}
		rows[i] = []any{t.Name, t.RA, t.Dec, string(t.Mag),
			priorityLabel(t.Priority), mode, t.Program, t.Note}
	}
	table := tablewriter.NewTable(cmd.OutOrStdout())
	table.Header("Name", "RA", "Dec", "Mag", "Priority", "Exposure", "Program", "Note")
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// priorityLabel colors elevated priorities so they stand out in the listing.
func priorityLabel(p target.Priority) string {
	switch p {
	case target.PriorityUrgent:
		return color.New(color.FgRed, color.Bold).Sprint(p)
	case target.PriorityTop:
		return color.New(color.FgRed).Sprint(p)
	case target.PriorityHigh:
		return color.New(color.FgYellow).Sprint(p)
	default:
		return string(target.PriorityNormal)
	}
}

func runTargetsAdd(cmd *cobra.Command, args []string) error {
	set, dir, err := loadSet()
	if err != nil {
		return err
	}
	t := target.Target{
		Name:         args[0],
		RA:           addFlags.ra,
		Dec:          addFlags.dec,
		Mag:          target.Mag(addFlags.mag),
		Priority:     target.Priority(addFlags.priority),
		AutoExposure: addFlags.auto,
		Repeat:       addFlags.repeat,
		Program:      addFlags.program,
		Note:         addFlags.note,
	}
	if !t.AutoExposure {
		plan, err := exposure.ParseManual(addFlags.filter, addFlags.expTime, addFlags.count)
		if err != nil {
			return err
		}
		t.Observations = plan
	}
	if err := t.Validate(set.Settings.Telescope); err != nil {
		return err
	}
	for _, existing := range set.Targets {
		if existing.Name == t.Name {
			return fmt.Errorf("target %q already in set", t.Name)
		}
	}
	set.Targets = append(set.Targets, t)
	if err := set.Save(dir); err != nil {
		return err
	}
	slog.Info("target added", "target", t.Name, "telescope", set.Settings.Telescope)
	return nil
}

func runTargetsRemove(cmd *cobra.Command, args []string) error {
	set, dir, err := loadSet()
	if err != nil {
		return err
	}
	kept := set.Targets[:0]
	removed := 0
	for _, t := range set.Targets {
		if t.Name == args[0] {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	if removed == 0 {
		return fmt.Errorf("no target named %q", args[0])
	}
	set.Targets = kept
	if err := set.Save(dir); err != nil {
		return err
	}
	slog.Info("target removed", "target", args[0], "telescope", set.Settings.Telescope)
	return nil
}

func runTargetsDuplicate(cmd *cobra.Command, args []string) error {
	set, dir, err := loadSet()
	if err != nil {
		return err
	}
	for _, t := range set.Targets {
		if t.Name != args[0] {
			continue
		}
		dup := t
		dup.Name = t.Name + "_copy"
		set.Targets = append(set.Targets, dup)
		if err := set.Save(dir); err != nil {
			return err
		}
		slog.Info("target duplicated", "target", t.Name, "copy", dup.Name)
		return nil
	}
	return fmt.Errorf("no target named %q", args[0])
}
