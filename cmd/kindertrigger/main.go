// Public domain.

// Kindertrigger compiles observation triggers for the Lulin SLT and LOT
// telescopes into ACP control scripts, visibility charts, and observer
// notifications.
package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/soniakeys/exit"

	"github.com/lulin-kinder/trigger/internal/cli"
)

func main() {
	defer exit.Handler()
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.RFC3339,
	})))
	if err := cli.Execute(); err != nil {
		exit.Log(err)
	}
}
