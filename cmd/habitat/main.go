package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/SashaSaw/Habitat-sub000/internal/cli"
	"github.com/SashaSaw/Habitat-sub000/internal/cli/groups"
	"github.com/SashaSaw/Habitat-sub000/internal/cli/habits"
	"github.com/SashaSaw/Habitat-sub000/internal/cli/settings"
	"github.com/SashaSaw/Habitat-sub000/internal/cli/system"
	"github.com/SashaSaw/Habitat-sub000/internal/constants"
	"github.com/SashaSaw/Habitat-sub000/internal/logger"
	"github.com/SashaSaw/Habitat-sub000/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage path: .db for SQLite, .json for a plain JSON file." default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging."`

	Init     system.InitCmd       `cmd:"" help:"Initialize habitat storage."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and repair cached data."`
	Today    cli.TodayCmd         `cmd:"" help:"Show today's checklist and good-day status." default:"1"`
	Summary  cli.SummaryCmd       `cmd:"" help:"Show streaks and completion rates."`
	Remind   system.RemindCmd     `cmd:"" help:"Run the reminder daemon."`
	Habit    habits.HabitCmd      `cmd:"" help:"Manage habits and day logs."`
	Group    groups.GroupCmd      `cmd:"" help:"Manage any-N-of-M habit groups."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal habit tracker with streaks, groups, and good days"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	configPath := expandHome(CLI.Config)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(configPath),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	store := storage.ForPath(configPath)
	appCtx := cli.NewContext(store)

	// The init command handles its own loading.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
