// Public domain.

package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lulin-kinder/trigger/internal/config"
	"github.com/lulin-kinder/trigger/internal/ephem"
	"github.com/lulin-kinder/trigger/internal/notify"
	"github.com/lulin-kinder/trigger/internal/plot"
	"github.com/lulin-kinder/trigger/internal/script"
	"github.com/lulin-kinder/trigger/internal/target"
)

var (
	sendYes     bool
	sendProgram string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Post the night's targets to the control-room channel",
	RunE:  runSend,
}

func init() {
	sendCmd.Flags().BoolVar(&sendYes, "yes", false,
		"confirm delivery to the control room")
	sendCmd.Flags().StringVar(&sendProgram, "program", "",
		"send only targets of this LOT observation program")
}

// greeting opens every control-room message, in the channel's two working
// languages.
const greeting = "您好，若天氣允許，以下是今日的觀測目標:\n" +
	"If the weather permits, tonight's observation targets are:\n"

func runSend(cmd *cobra.Command, args []string) error {
	if !sendYes {
		return fmt.Errorf("delivery posts to the observers; pass --yes to confirm")
	}
	tel, err := telescope()
	if err != nil {
		return err
	}
	if sendProgram != "" && tel != target.LOT {
		return fmt.Errorf("observation programs exist only on LOT")
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	n, err := notify.New(cfg.SlackBotToken, cfg.SlackControlRoom)
	if err != nil {
		return err
	}
	set, err := target.Load(cfg.DataPath, tel)
	if err != nil {
		return err
	}
	ts := set.Targets
	if sendProgram != "" {
		ts = set.ByProgram(sendProgram)
	}
	if len(ts) == 0 {
		return fmt.Errorf("no targets to send for %s", tel)
	}
	ts = ephem.SortByRise(ts, ephem.Meeus{Site: ephem.Lulin}, ephem.NightAnchor(time.Now()))

	c := script.Compiler{Telescope: tel}
	var b strings.Builder
	b.WriteString(greeting)
	fmt.Fprintf(&b, "Telescope: %s\n", tel)
	if sendProgram != "" {
		fmt.Fprintf(&b, "Program: %s\n", sendProgram)
	}
	b.WriteString("\n")
	b.WriteString(c.MessageQueue(ts))

	files := []string{filepath.Join(cfg.DataPath, script.Filename(tel, sendProgram))}
	chart := filepath.Join(cfg.DataPath, plot.Filename(tel, sendProgram))
	if fileExists(chart) {
		files = append(files, chart)
	}
	if err := n.Send(b.String(), files...); err != nil {
		return err
	}
	slog.Info("targets sent", "telescope", tel, "targets", len(ts), "files", len(files))
	return nil
}

func fileExists(fn string) bool {
	_, err := os.Stat(fn)
	return err == nil
}
