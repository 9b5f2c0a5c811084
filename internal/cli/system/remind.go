package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/SashaSaw/Habitat-sub000/internal/cli"
	"github.com/SashaSaw/Habitat-sub000/internal/reminder"
)

type RemindCmd struct {
	Preview bool `help:"Print the morning and evening digests once and exit."`
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	sink := reminder.SinkFunc(func(text string) error {
		_, err := fmt.Println(text)
		return err
	})
	sched, err := reminder.New(eng, sink, settings)
	if err != nil {
		return err
	}
	sched.Reload = ctx.Reload

	if c.Preview {
		fmt.Println(sched.MorningDigest())
		fmt.Println()
		fmt.Println(sched.EveningSummary())
		return nil
	}

	if !settings.RemindersOn {
		return fmt.Errorf("reminders are disabled; enable with 'habitat settings --reminders'")
	}

	fmt.Printf("Reminder daemon running (morning %s, evening %s). Ctrl-C to stop.\n",
		settings.MorningReminder, settings.EveningSummary)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := sched.Run(runCtx); err != nil && runCtx.Err() == nil {
		return err
	}
	return nil
}
