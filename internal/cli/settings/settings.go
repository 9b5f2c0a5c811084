package settings

import (
	"fmt"

	"github.com/SashaSaw/Habitat-sub000/internal/cli"
	"github.com/SashaSaw/Habitat-sub000/internal/validation"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone        *string `help:"IANA timezone for day boundaries and reminders."`
	MorningReminder *string `help:"Morning digest time (HH:MM)."`
	EveningSummary  *string `help:"Evening summary time (HH:MM)."`
	DefaultLogDays  *int    `help:"Default window for 'habit log'."`
	Reminders       *bool   `help:"Enable or disable reminders."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:         %s\n", settings.Timezone)
		fmt.Printf("  Morning Reminder: %s\n", settings.MorningReminder)
		fmt.Printf("  Evening Summary:  %s\n", settings.EveningSummary)
		fmt.Printf("  Default Log Days: %d\n", settings.DefaultLogDays)
		fmt.Printf("  Reminders On:     %v\n", settings.RemindersOn)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.MorningReminder != nil {
		settings.MorningReminder = *c.MorningReminder
		updated = true
	}
	if c.EveningSummary != nil {
		settings.EveningSummary = *c.EveningSummary
		updated = true
	}
	if c.DefaultLogDays != nil {
		settings.DefaultLogDays = *c.DefaultLogDays
		updated = true
	}
	if c.Reminders != nil {
		settings.RemindersOn = *c.Reminders
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := validation.ValidateSettings(settings); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}
